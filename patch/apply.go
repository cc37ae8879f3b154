package patch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ApplyRFC6902 applies ops to a JSON round trip of current and decodes the result back into T.
func ApplyRFC6902[T any](current T, ops []Operation) (T, error) {
	var zero T

	if len(ops) == 0 {
		return current, nil
	}

	currentJSON, err := sonic.Marshal(current)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal current state: %w", err)
	}

	ops = FixOperation(currentJSON, ops)
	if len(ops) == 0 {
		return current, nil
	}

	patchJSON, err := sonic.Marshal(ops)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal patch operations: %w", err)
	}

	p, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return zero, fmt.Errorf("failed to decode patch: %w", err)
	}

	modifiedJSON, err := p.Apply(currentJSON)
	if err != nil {
		return zero, fmt.Errorf("failed to apply patch: %w", err)
	}

	var result T
	if err := sonic.Unmarshal(modifiedJSON, &result); err != nil {
		return zero, fmt.Errorf("type mismatch: patch would result in invalid type: %w", err)
	}

	return result, nil
}

// FixOperation rewrites ops so they apply to documents with omitted fields: a replace
// on a missing path becomes an add, a remove on a missing path is dropped, and missing
// parent objects are added first.
func FixOperation(currentJSON []byte, ops []Operation) []Operation {
	var doc any
	if err := sonic.Unmarshal(currentJSON, &doc); err != nil {
		return ops
	}
	if doc == nil {
		doc = map[string]any{}
	}

	created := map[string]bool{}
	fixed := make([]Operation, 0, len(ops))
	for _, op := range ops {
		switch op.Op {
		case OperationAdd, OperationReplace:
			for _, parent := range parentPaths(op.Path) {
				if created[parent] || pathExists(doc, parent) {
					continue
				}
				fixed = append(fixed, Operation{Op: OperationAdd, Path: parent, Value: map[string]any{}})
				created[parent] = true
			}
			if op.Op == OperationReplace && !created[op.Path] && !pathExists(doc, op.Path) {
				op.Op = OperationAdd
			}
			created[op.Path] = true
			fixed = append(fixed, op)
		case OperationRemove:
			if pathExists(doc, op.Path) {
				fixed = append(fixed, op)
			}
		default:
			fixed = append(fixed, op)
		}
	}

	return fixed
}

func parentPaths(path string) []string {
	if !strings.HasPrefix(path, "/") {
		return nil
	}
	tokens := strings.Split(path[1:], "/")
	parents := make([]string, 0, len(tokens)-1)
	for i := 1; i < len(tokens); i++ {
		parents = append(parents, "/"+strings.Join(tokens[:i], "/"))
	}
	return parents
}

func pathExists(doc any, path string) bool {
	if path == "" {
		return true
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}

	tokens := strings.Split(path[1:], "/")
	cur := doc
	for _, token := range tokens {
		token = strings.ReplaceAll(token, "~1", "/")
		token = strings.ReplaceAll(token, "~0", "~")
		switch node := cur.(type) {
		case map[string]any:
			value, ok := node[token]
			if !ok || value == nil {
				return false
			}
			cur = value
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(node) {
				return false
			}
			cur = node[index]
		default:
			return false
		}
	}

	return true
}

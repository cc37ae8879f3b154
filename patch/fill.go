package patch

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// FillMissing generates add operations copying every non-empty leaf of source into
// current where current has no value yet. Existing values are never replaced.
func FillMissing[T any](current, source T) ([]Operation, error) {
	currentJSON, err := sonic.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal current state: %w", err)
	}
	sourceJSON, err := sonic.Marshal(source)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal source state: %w", err)
	}

	var currentMap map[string]any
	if err := sonic.Unmarshal(currentJSON, &currentMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal current state: %w", err)
	}
	var sourceMap map[string]any
	if err := sonic.Unmarshal(sourceJSON, &sourceMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal source state: %w", err)
	}

	ops := make([]Operation, 0)
	fillFromMap("", currentMap, sourceMap, &ops)
	return ops, nil
}

func fillFromMap(prefix string, current, source map[string]any, ops *[]Operation) {
	for _, key := range sortedKeys(source) {
		sourceValue := source[key]
		if isZeroValue(sourceValue) {
			continue
		}
		path := prefix + "/" + escapeJSONPointer(key)
		currentValue := current[key]

		if sourceMap, ok := sourceValue.(map[string]any); ok {
			currentMap, _ := currentValue.(map[string]any)
			fillFromMap(path, currentMap, sourceMap, ops)
			continue
		}
		if isZeroValue(currentValue) {
			*ops = append(*ops, Operation{Op: OperationAdd, Path: path, Value: sourceValue})
		}
	}
}

func escapeJSONPointer(token string) string {
	result := ""
	for _, ch := range token {
		switch ch {
		case '~':
			result += "~0"
		case '/':
			result += "~1"
		default:
			result += string(ch)
		}
	}
	return result
}

func isZeroValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}

package patch

import (
	"fmt"
	"sort"
	"strings"
)

// ValidatePatchOperations fails on the first operation whose path is outside allowedPaths.
// An empty allow list permits everything.
func ValidatePatchOperations(ops []Operation, allowedPaths map[string]bool) error {
	for i, op := range ops {
		if !pathAllowed(op.Path, allowedPaths) {
			return fmt.Errorf("operation %d: path %q is not in the allowed paths set", i, op.Path)
		}
	}
	return nil
}

// FilterAllowed drops the operations whose path is outside allowedPaths.
func FilterAllowed(ops []Operation, allowedPaths map[string]bool) []Operation {
	out := make([]Operation, 0, len(ops))
	for _, op := range ops {
		if pathAllowed(op.Path, allowedPaths) {
			out = append(out, op)
		}
	}
	return out
}

func pathAllowed(path string, allowedPaths map[string]bool) bool {
	if len(allowedPaths) == 0 || allowedPaths[path] {
		return true
	}
	// "/a/*" allows any direct child of /a
	if idx := strings.LastIndex(path, "/"); idx > 0 {
		return allowedPaths[path[:idx]+"/*"]
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

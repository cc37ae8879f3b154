package patch

const (
	OperationAdd     = "add"
	OperationReplace = "replace"
	OperationRemove  = "remove"
)

type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Set writes value at path, creating the path when it is missing.
func Set(path string, value any) Operation {
	return Operation{Op: OperationReplace, Path: path, Value: value}
}

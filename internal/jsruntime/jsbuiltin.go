package jsruntime

import "zebra/internal/types"

// Builtin holds the data related to a particular JS builtin function or
// object: its shape, constructors, default properties, and the instance
// and static methods that can be called on it.
type Builtin struct {
	Shape         types.Shape
	Constructor   []types.ConstructorType
	Properties    []string
	Methods       []types.MethodSignature
	StaticMethods []types.MethodSignature
}

package ir

import "strconv"

// Variable is an opaque SSA-style value slot. The program builder hands
// these out sequentially; instructions reference them as inputs, outputs,
// or temporaries.
type Variable uint32

// Print renders the variable the way the lifter and debug dumps do: "v<n>".
func (v Variable) Print() string {
	return "v" + strconv.FormatUint(uint64(v), 10)
}

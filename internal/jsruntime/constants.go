// Package jsruntime holds the catalogue of JS builtins (Object, Array,
// String, Math, ArrayBuffer, TypedArray) that the program builder and
// generators draw constructors, methods, and properties from.
package jsruntime

// TypedArrayNames lists the concrete typed-array constructor names the
// generators substitute in for the generic "TypedArray" builtin.
var TypedArrayNames = []string{
	"Array",
	"Int8Array",
	"Uint8Array",
	"Uint8ClampedArray",
	"Int16Array",
	"Uint16Array",
	"Int32Array",
	"Uint32Array",
	"Float32Array",
	"Float64Array",
}

// Properties lists short property names the generators use for arbitrary
// load/store-property instructions.
var Properties = []string{"a", "b", "c", "d", "w", "x", "y", "z"}

// InterestingInts is the table of integer values historically useful for
// triggering edge-case behavior in JS engines: doubles' precisely
// representable boundary, Int32/Uint32 boundaries, and small powers of two
// around zero. Carried over from Fuzzilli via the original implementation.
var InterestingInts = []int64{
	-9007199254740993, 9007199254740992, -9007199254740991,
	-4294967297, -4294967296, -4294967295,
	-2147483649, -2147483648, -2147483647,
	-1073741824, -536870912, -268435456,
	-65537, -65536, -65535,
	-4096, -1024, -256, -128,
	-2, -1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 16, 64, 0,
	127, 128, 129,
	255, 256, 257,
	512, 1000, 1024, 4096, 10000,
	65535, 65536, 65537,
	268435456, 536870912, 1073741824,
	2147483647, 2147483648, 2147483649,
	4294967295, 4294967296, 4294967297,
	9007199254740991, 9007199254740992, 9007199254740993,
}

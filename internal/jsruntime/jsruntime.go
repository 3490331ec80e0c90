package jsruntime

import "zebra/internal/types"

// JSRuntime is the catalogue of builtins and constructors the program
// builder draws from. It is built once per fuzzer process and shared
// read-only across workers.
type JSRuntime struct {
	builtins     []Builtin
	constructors []types.ConstructorType
}

// New builds the full catalogue: Array, Math, String, Object, ArrayBuffer,
// and TypedArray.
func New() *JSRuntime {
	r := &JSRuntime{}

	r.registerArray()
	r.registerMath()
	r.registerString()
	r.registerObject()
	r.registerArrayBuffer()
	r.registerTypedArray()

	r.initConstructors()
	return r
}

func (r *JSRuntime) initConstructors() {
	for _, b := range r.builtins {
		r.constructors = append(r.constructors, b.Constructor...)
	}
}

// GetConstructors returns every constructor the runtime knows about.
func (r *JSRuntime) GetConstructors() []types.ConstructorType {
	return r.constructors
}

// GetMethods returns the instance or static methods (depending on whether
// shape carries the Static bit) available on builtins matching shape, or
// nil if none match.
func (r *JSRuntime) GetMethods(shape types.Shape) []types.MethodSignature {
	isStatic := shape.FetchClearStatic()

	if !shape.IsPureObject() {
		shape &^= types.ShapeObject
	}

	var candidates []Builtin
	for _, b := range r.builtins {
		cshape := b.Shape
		if shape.Contains(types.ShapeObject) && !b.Shape.IsPureObject() {
			cshape &^= types.ShapeObject
		}
		if cshape.Contains(shape) {
			candidates = append(candidates, b)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	var ret []types.MethodSignature
	for _, candidate := range candidates {
		if isStatic {
			if candidate.StaticMethods == nil {
				return nil
			}
			ret = append(ret, candidate.StaticMethods...)
		} else {
			if candidate.Methods == nil {
				return nil
			}
			ret = append(ret, candidate.Methods...)
		}
	}

	return ret
}

// GetProperties returns the default instance properties available on
// builtins matching shape, or nil if none match.
func (r *JSRuntime) GetProperties(shape types.Shape) []string {
	var ret []string

	var candidates []Builtin
	for _, b := range r.builtins {
		if b.Shape.Contains(shape) {
			candidates = append(candidates, b)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	for _, candidate := range candidates {
		ret = append(ret, candidate.Properties...)
	}

	return ret
}

func sig(name string, this types.Type, args []types.MethodArg, output types.Type) types.MethodSignature {
	return *types.NewMethodSignature(name, this, args, output)
}

func arg(t types.Type) types.MethodArg             { return types.PlainArg(t) }
func optArg(t types.Type) types.MethodArg           { return types.OptionalArg(t) }
func repArg(n uint8, t types.Type) types.MethodArg  { return types.RepeatArg(n, t) }

func (r *JSRuntime) registerObject() {
	staticObj := types.Obj(types.ShapeObject | types.ShapeStatic)

	constructor := []types.ConstructorType{
		types.NewCallableConstructor(types.NewMethodSignature("Object", types.Object, nil, types.Object)),
		types.NewNonCallableConstructor("Object", staticObj),
	}

	properties := []string{"constructor", "__proto__"}

	staticMethods := []types.MethodSignature{
		sig("assign", staticObj, []types.MethodArg{arg(types.Object), optArg(types.Object)}, types.Object),
		sig("create", staticObj, []types.MethodArg{arg(types.Object)}, types.Object),
		sig("defineProperty", staticObj, []types.MethodArg{arg(types.Object), arg(types.String), arg(types.Object)}, types.Object),
		sig("freeze", staticObj, []types.MethodArg{arg(types.Object)}, types.Undefined),
		sig("getOwnPropertyDescriptor", staticObj, []types.MethodArg{arg(types.Object), arg(types.String)}, types.Object),
		sig("getOwnPropertyDescriptors", staticObj, []types.MethodArg{arg(types.Object)}, types.Object),
		sig("getOwnPropertyNames", staticObj, []types.MethodArg{arg(types.Object)}, types.Array),
		sig("getOwnPropertySymbols", staticObj, []types.MethodArg{arg(types.Object)}, types.Array),
		sig("getPrototypeOf", staticObj, []types.MethodArg{arg(types.Object)}, types.Object),
		sig("is", staticObj, []types.MethodArg{arg(types.Any)}, types.Bool),
		sig("isExtensible", staticObj, []types.MethodArg{arg(types.Any)}, types.Bool),
		sig("isFrozen", staticObj, []types.MethodArg{arg(types.Any)}, types.Bool),
		sig("isSealed", staticObj, []types.MethodArg{arg(types.Any)}, types.Bool),
		sig("keys", staticObj, []types.MethodArg{arg(types.Object)}, types.Array),
		sig("preventExtensions", staticObj, []types.MethodArg{arg(types.Object)}, types.Object),
		sig("seal", staticObj, []types.MethodArg{arg(types.Object)}, types.Object),
		sig("setPrototypeOf", staticObj, []types.MethodArg{arg(types.Object), arg(types.Object)}, types.Object),
		sig("values", staticObj, []types.MethodArg{arg(types.Object)}, types.String),
	}

	r.builtins = append(r.builtins, Builtin{
		Shape:         types.ShapeObject,
		Constructor:   constructor,
		Properties:    properties,
		StaticMethods: staticMethods,
	})
}

func (r *JSRuntime) registerArray() {
	staticArray := types.Obj(types.ShapeArray | types.ShapeStatic)

	constructor := []types.ConstructorType{
		types.NewCallableConstructor(types.NewMethodSignature("Array", types.Array, []types.MethodArg{arg(types.Int)}, types.Array)),
		types.NewNonCallableConstructor("Array", staticArray),
	}

	properties := []string{"length"}

	methods := []types.MethodSignature{
		sig("push", types.Array, []types.MethodArg{arg(types.Any)}, types.Int),
		sig("pop", types.Array, nil, types.Any),
		sig("shift", types.Array, nil, types.Any),
		sig("sort", types.Array, nil, types.Array),
		sig("join", types.Array, nil, types.String),
		sig("concat", types.Array, []types.MethodArg{repArg(10, types.Any)}, types.Array),
		sig("unshift", types.Array, []types.MethodArg{repArg(10, types.Any)}, types.Int),
		sig("fill", types.Array, []types.MethodArg{arg(types.Int), repArg(2, types.Int)}, types.Array),
		sig("lastIndexOf", types.Array, []types.MethodArg{arg(types.Any)}, types.Any),
		sig("includes", types.Array, []types.MethodArg{arg(types.Any)}, types.Bool),
		sig("slice", types.Array, []types.MethodArg{arg(types.Int), optArg(types.Int)}, types.Array),
		sig("copyWithin", types.Array, []types.MethodArg{arg(types.Int), repArg(2, types.Int)}, types.Array),
		sig("splice", types.Array, []types.MethodArg{arg(types.Int), optArg(types.Int), repArg(10, types.Any)}, types.Undefined),
	}

	staticMethods := []types.MethodSignature{
		sig("from", types.Array, []types.MethodArg{arg(types.Array.Or(types.String))}, types.Array),
		sig("from", types.Array, []types.MethodArg{arg(types.Any)}, types.Bool),
		sig("of", types.Array, []types.MethodArg{repArg(100, types.Any)}, types.Array),
	}

	r.builtins = append(r.builtins, Builtin{
		Shape:         types.ShapeArray,
		Constructor:   constructor,
		Properties:    properties,
		Methods:       methods,
		StaticMethods: staticMethods,
	})
}

func (r *JSRuntime) registerString() {
	staticString := types.Obj(types.ShapeString | types.ShapeStatic)

	constructor := []types.ConstructorType{
		types.NewCallableConstructor(types.NewMethodSignature("String", types.String, nil, types.String)),
		types.NewNonCallableConstructor("String", staticString),
	}

	properties := []string{"length"}

	staticMethods := []types.MethodSignature{
		sig("fromCharCode", staticString, []types.MethodArg{repArg(20, types.Int)}, types.String),
		sig("fromCodePoint", staticString, []types.MethodArg{repArg(20, types.Int)}, types.String),
	}

	methods := []types.MethodSignature{
		sig("at", types.String, []types.MethodArg{arg(types.Int)}, types.String),
		sig("charAt", types.String, []types.MethodArg{arg(types.Int)}, types.String),
		sig("charCodeAt", types.String, []types.MethodArg{arg(types.Int)}, types.Int),
		sig("codePointAt", types.String, []types.MethodArg{arg(types.Int)}, types.Int),
		sig("concat", types.String, []types.MethodArg{repArg(20, types.String)}, types.String),
		sig("includes", types.String, []types.MethodArg{arg(types.String), optArg(types.Int)}, types.Bool),
		sig("endsWith", types.String, []types.MethodArg{arg(types.String), optArg(types.Int)}, types.Bool),
		sig("startsWith", types.String, []types.MethodArg{arg(types.String), optArg(types.Int)}, types.Bool),
		sig("indexOf", types.String, []types.MethodArg{arg(types.String), optArg(types.Int)}, types.Int),
		sig("lastIndexOf", types.String, []types.MethodArg{arg(types.String), optArg(types.Int)}, types.Int),
		sig("localeCompare", types.String, []types.MethodArg{arg(types.String), optArg(types.String), optArg(types.Object)}, types.Int),
		sig("padEnd", types.String, []types.MethodArg{arg(types.Int), optArg(types.String)}, types.String),
		sig("padStart", types.String, []types.MethodArg{arg(types.Int), optArg(types.String)}, types.Int),
		sig("repeat", types.String, []types.MethodArg{arg(types.Int)}, types.String),
		sig("replace", types.String, []types.MethodArg{arg(types.String), arg(types.String)}, types.String),
		sig("replaceAll", types.String, []types.MethodArg{arg(types.String), arg(types.String)}, types.String),
		sig("slice", types.String, []types.MethodArg{arg(types.Int), optArg(types.Int)}, types.Bool),
		sig("split", types.String, []types.MethodArg{optArg(types.String), optArg(types.Int)}, types.Array),
		sig("substring", types.String, []types.MethodArg{optArg(types.Int), optArg(types.Int)}, types.String),
		sig("toLowerCase", types.String, nil, types.String),
		sig("toUpperCase", types.String, nil, types.String),
		sig("trim", types.String, nil, types.String),
		sig("toString", types.String, nil, types.String),
		sig("trimStart", types.String, nil, types.String),
		sig("trimEnd", types.String, nil, types.String),
		sig("valueOf", types.String, nil, types.String),
	}

	r.builtins = append(r.builtins, Builtin{
		Shape:         types.ShapeString,
		Constructor:   constructor,
		Properties:    properties,
		Methods:       methods,
		StaticMethods: staticMethods,
	})
}

func (r *JSRuntime) registerMath() {
	math := types.Obj(types.ShapeMath | types.ShapeStatic)
	numeric := types.Basic(types.PInt | types.PFloat)

	constructor := []types.ConstructorType{
		types.NewNonCallableConstructor("Math", math),
	}

	properties := []string{"E", "LN2", "LN10", "LOG2E", "LOG10E", "PI", "SQRT_2", "SQRT2"}

	staticMethods := []types.MethodSignature{
		sig("random", math, nil, types.Float),
		sig("abs", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("acos", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("asin", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("asinh", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("atan", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("atanh", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("atan2", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("cbrt", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("ceil", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("clz32", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("cos", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("cosh", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("exp", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("expm1", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("floor", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("fround", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("log", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("log1p", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("log10", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("log2", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("round", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("sign", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("sin", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("sinh", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("sqrt", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("tan", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("tanh", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("trunc", math, []types.MethodArg{arg(numeric)}, types.Float),
		sig("pow", math, []types.MethodArg{arg(numeric), arg(numeric)}, types.Float),
		sig("imul", math, []types.MethodArg{arg(numeric), arg(numeric)}, types.Float),
		sig("max", math, []types.MethodArg{arg(numeric), repArg(4, numeric)}, types.Float),
		sig("min", math, []types.MethodArg{arg(numeric), repArg(4, numeric)}, types.Float),
		sig("hypot", math, []types.MethodArg{arg(numeric), repArg(4, numeric)}, types.Float),
	}

	r.builtins = append(r.builtins, Builtin{
		Shape:         types.ShapeMath,
		Constructor:   constructor,
		Properties:    properties,
		StaticMethods: staticMethods,
	})
}

func (r *JSRuntime) registerArrayBuffer() {
	arraybuf := types.Obj(types.ShapeArrayBuffer)
	arraybufStatic := types.Obj(types.ShapeArrayBuffer | types.ShapeStatic)

	constructor := []types.ConstructorType{
		types.NewCallableConstructor(types.NewMethodSignature("ArrayBuffer", arraybuf, []types.MethodArg{arg(types.Int)}, arraybuf)),
		types.NewNonCallableConstructor("ArrayBuffer", arraybufStatic),
	}

	properties := []string{"byteLength"}

	staticMethods := []types.MethodSignature{
		sig("isView", arraybufStatic, []types.MethodArg{arg(types.Any)}, types.Bool),
	}

	methods := []types.MethodSignature{
		sig("slice", arraybuf, []types.MethodArg{arg(types.Int), optArg(types.Int)}, arraybuf),
	}

	r.builtins = append(r.builtins, Builtin{
		Shape:         types.ShapeArrayBuffer,
		Constructor:   constructor,
		Properties:    properties,
		Methods:       methods,
		StaticMethods: staticMethods,
	})
}

func (r *JSRuntime) registerTypedArray() {
	typedArray := types.Obj(types.ShapeTypedArray)
	arrayBuffer := types.Obj(types.ShapeArrayBuffer)
	typedArrayStatic := types.Obj(types.ShapeTypedArray | types.ShapeStatic)

	constructor1 := types.NewMethodSignature("TypedArray", typedArray,
		[]types.MethodArg{optArg(types.Int.Or(typedArray).Or(types.Object))}, typedArray)
	constructor2 := types.NewMethodSignature("TypedArray", typedArray,
		[]types.MethodArg{arg(arrayBuffer), optArg(types.Int), optArg(types.Int)}, typedArray)

	constructor := []types.ConstructorType{
		types.NewCallableConstructor(constructor1),
		types.NewCallableConstructor(constructor2),
		types.NewNonCallableConstructor("TypedArray", typedArrayStatic),
	}

	properties := []string{"buffer", "byteLength", "byteOffset", "length"}

	staticMethods := []types.MethodSignature{
		sig("from", typedArrayStatic, []types.MethodArg{arg(types.Array)}, typedArray),
		sig("of", typedArrayStatic, []types.MethodArg{repArg(10, types.Int)}, typedArray),
	}

	intOrFloat := types.Int.Or(types.Float)

	methods := []types.MethodSignature{
		sig("at", typedArray, []types.MethodArg{arg(types.Int)}, intOrFloat),
		sig("copyWithin", typedArray, []types.MethodArg{arg(types.Int), optArg(types.Int), optArg(types.Int)}, typedArray),
		sig("fill", typedArray, []types.MethodArg{arg(intOrFloat), optArg(types.Int), optArg(types.Int)}, typedArray),
		sig("includes", typedArray, []types.MethodArg{arg(intOrFloat), optArg(types.Int)}, types.Bool),
		sig("indexOf", typedArray, []types.MethodArg{arg(intOrFloat), optArg(types.Int)}, types.Int),
		sig("join", typedArray, nil, types.String),
		sig("lastIndexOf", typedArray, []types.MethodArg{arg(intOrFloat), optArg(types.Int)}, types.Int),
		sig("reverse", typedArray, nil, types.Int),
		sig("set", typedArray, []types.MethodArg{arg(types.Array.Or(typedArray)), optArg(types.Int)}, types.Undefined),
		sig("slice", typedArray, []types.MethodArg{optArg(types.Int), optArg(types.Int)}, types.Undefined),
		sig("sort", typedArray, nil, typedArray),
		sig("subarray", typedArray, []types.MethodArg{optArg(types.Int), optArg(types.Int)}, typedArray),
		sig("toLocaleString", typedArray, nil, types.String),
	}

	r.builtins = append(r.builtins, Builtin{
		Shape:         types.ShapeTypedArray,
		Constructor:   constructor,
		Properties:    properties,
		Methods:       methods,
		StaticMethods: staticMethods,
	})
}

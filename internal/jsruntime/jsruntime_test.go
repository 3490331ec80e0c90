package jsruntime

import (
	"testing"

	"zebra/internal/types"
)

func TestNewRegistersAllBuiltins(t *testing.T) {
	r := New()
	if len(r.builtins) != 6 {
		t.Fatalf("expected 6 registered builtins, got %d", len(r.builtins))
	}
	if len(r.GetConstructors()) == 0 {
		t.Fatalf("expected at least one constructor")
	}
}

func TestGetMethodsArrayInstance(t *testing.T) {
	r := New()
	methods := r.GetMethods(types.ShapeArray)
	if len(methods) == 0 {
		t.Fatalf("expected Array instance methods")
	}
	found := false
	for _, m := range methods {
		if m.Name() == "push" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected to find push() among Array methods")
	}
}

func TestGetMethodsStaticMathHasNoInstanceVariant(t *testing.T) {
	r := New()
	methods := r.GetMethods(types.ShapeMath | types.ShapeStatic)
	if len(methods) == 0 {
		t.Fatalf("expected Math's static methods")
	}
	found := false
	for _, m := range methods {
		if m.Name() == "sqrt" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected to find sqrt() among Math static methods")
	}
	if instance := r.GetMethods(types.ShapeMath); instance != nil {
		t.Fatalf("expected no instance methods for Math, got %d", len(instance))
	}
}

func TestGetPropertiesArray(t *testing.T) {
	r := New()
	props := r.GetProperties(types.ShapeArray)
	found := false
	for _, p := range props {
		if p == "length" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Array to expose a length property")
	}
}

func TestGetMethodsUnknownShapeReturnsNil(t *testing.T) {
	r := New()
	methods := r.GetMethods(types.ShapeReflect)
	if methods != nil {
		t.Fatalf("expected no methods for an unregistered shape, got %v", methods)
	}
}

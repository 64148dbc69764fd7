package validate

import (
	"testing"

	"github.com/slicelang/slicec/reporter"
)

func TestInheritanceRejectsExceptionExtendingStruct(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct Base { x: int32 }
    exception E : Base { y: int32 }
}
`)
	if !hasCode(diags, reporter.CodeIllegalInheritance) {
		t.Fatalf("expected IllegalInheritance for exception extending a struct, got %v", diags)
	}
}

func TestInheritanceAllowsExceptionExtendingException(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    exception Base { x: int32 }
    exception Derived : Base { y: int32 }
}
`)
	if hasCode(diags, reporter.CodeIllegalInheritance) {
		t.Errorf("unexpected IllegalInheritance for valid exception hierarchy: %v", diags)
	}
}

func TestInheritanceRejectsInterfaceExtendingClass(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    class C { x: int32 }
    interface I : C {
        op() -> int32;
    }
}
`)
	if !hasCode(diags, reporter.CodeIllegalInheritance) {
		t.Fatalf("expected IllegalInheritance for interface extending a class, got %v", diags)
	}
}

func TestInheritanceDetectsCyclicInterfaceExtension(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    interface A : B {
        opA() -> int32;
    }
    interface B : A {
        opB() -> int32;
    }
}
`)
	if !hasCode(diags, reporter.CodeIllegalInheritance) {
		t.Fatalf("expected IllegalInheritance for cyclic interface extension, got %v", diags)
	}
}

func TestInheritanceRejectsNonIntegralEnumUnderlyingType(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    enum Color : float32 {
        Red,
        Green
    }
}
`)
	if !hasCode(diags, reporter.CodeInvalidEnum) {
		t.Fatalf("expected InvalidEnum for non-integral underlying type, got %v", diags)
	}
}

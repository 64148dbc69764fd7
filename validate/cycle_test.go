package validate

import (
	"testing"

	"github.com/slicelang/slicec/reporter"
)

func TestCycleDetectsDirectSelfComposition(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct S {
        self: S
    }
}
`)
	if !hasCode(diags, reporter.CodeInfiniteType) {
		t.Fatalf("expected InfiniteType for a self-referencing struct member, got %v", diags)
	}
}

func TestCycleDetectsMutualComposition(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct A {
        b: B
    }
    struct B {
        a: A
    }
}
`)
	if !hasCode(diags, reporter.CodeInfiniteType) {
		t.Fatalf("expected InfiniteType for mutually composing structs, got %v", diags)
	}
}

func TestCycleAllowsOptionalSelfReferenceOnRegularStruct(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct Node {
        next: Node?
    }
}
`)
	if hasCode(diags, reporter.CodeInfiniteType) {
		t.Errorf("unexpected InfiniteType for optional self-reference on a non-compact struct: %v", diags)
	}
}

func TestCycleRejectsOptionalSelfReferenceOnCompactStruct(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    compact struct Node {
        next: Node?
    }
}
`)
	if !hasCode(diags, reporter.CodeInfiniteType) {
		t.Fatalf("expected InfiniteType even through an optional field on a compact struct, got %v", diags)
	}
}

func TestCycleAllowsAcyclicComposition(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct Point { x: int32, y: int32 }
    struct Line { a: Point, b: Point }
}
`)
	if hasCode(diags, reporter.CodeInfiniteType) {
		t.Errorf("unexpected InfiniteType for acyclic composition: %v", diags)
	}
}

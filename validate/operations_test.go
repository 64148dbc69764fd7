package validate

import (
	"testing"

	"github.com/slicelang/slicec/reporter"
)

func TestOperationsRejectsStreamNotLast(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    interface I {
        upload(stream data: int32, label: string) -> int32;
    }
}
`)
	if !hasCode(diags, reporter.CodeSyntax) {
		t.Fatalf("expected a Syntax diagnostic for a non-final stream parameter, got %v", diags)
	}
}

func TestOperationsRejectsMultipleStreamParameters(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    interface I {
        merge(stream a: int32, stream b: int32) -> int32;
    }
}
`)
	if countCode(diags, reporter.CodeSyntax) < 1 {
		t.Fatalf("expected at least one Syntax diagnostic for multiple streamed parameters, got %v", diags)
	}
}

func TestOperationsAllowsSingleTrailingStreamParameter(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    interface I {
        upload(label: string, stream data: int32) -> int32;
    }
}
`)
	if hasCode(diags, reporter.CodeSyntax) {
		t.Errorf("unexpected Syntax diagnostic for a legal trailing stream parameter: %v", diags)
	}
}

func TestOperationsRejectsSingleElementParenthesizedReturn(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    interface Calc {
        negate(a: int32) -> (int32);
    }
}
`)
	if !hasCode(diags, reporter.CodeUnknown) {
		t.Fatalf("expected CodeUnknown for a parenthesized return with a single type, got %v", diags)
	}
}

func TestOperationsAcceptsTupleReturn(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    interface Calc {
        divmod(a: int32, b: int32) -> (int32, int32);
    }
}
`)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics for a well-formed tuple return: %v", diags)
	}
}

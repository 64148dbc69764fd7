package validate

import (
	"testing"

	"github.com/slicelang/slicec/reporter"
)

func TestTagsRejectsOutOfRangeValue(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct S {
        tag(2147483648) big: int32
    }
}
`)
	if !hasCode(diags, reporter.CodeInvalidTag) {
		t.Fatalf("expected InvalidTag for a tag value beyond 2^31-1, got %v", diags)
	}
}

func TestTagsAcceptsBoundaryValue(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct S {
        tag(2147483647) big: int32?
    }
}
`)
	if hasCode(diags, reporter.CodeInvalidTag) {
		t.Errorf("unexpected InvalidTag at the maximum legal tag value: %v", diags)
	}
}

func TestTagsRejectsDuplicateWithinContainer(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct S {
        tag(1) a: int32?,
        tag(1) b: int32?
    }
}
`)
	if !hasCode(diags, reporter.CodeInvalidTag) {
		t.Fatalf("expected InvalidTag for duplicate tag numbers, got %v", diags)
	}
}

func TestTagsRejectsNonOptionalClassReference(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    class C { x: int32 }
    struct S {
        tag(1) c: C
    }
}
`)
	if !hasCode(diags, reporter.CodeInvalidTag) {
		t.Fatalf("expected InvalidTag for a tagged non-optional class reference, got %v", diags)
	}
}

func TestTagsAcceptsOptionalClassReference(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    class C { x: int32 }
    struct S {
        tag(1) c: C?
    }
}
`)
	if hasCode(diags, reporter.CodeInvalidTag) {
		t.Errorf("unexpected InvalidTag for an optional, tagged class reference: %v", diags)
	}
}

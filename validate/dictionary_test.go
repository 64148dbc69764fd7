package validate

import (
	"testing"

	"github.com/slicelang/slicec/reporter"
)

func TestDictionaryRejectsFloatKey(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct S {
        scores: dictionary<float64, int32>
    }
}
`)
	if !hasCode(diags, reporter.CodeInvalidDictionaryKey) {
		t.Fatalf("expected InvalidDictionaryKey for a float64 key, got %v", diags)
	}
}

func TestDictionaryRejectsSequenceKey(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct S {
        grouped: dictionary<sequence<int32>, int32>
    }
}
`)
	if !hasCode(diags, reporter.CodeInvalidDictionaryKey) {
		t.Fatalf("expected InvalidDictionaryKey for a sequence key, got %v", diags)
	}
}

func TestDictionaryAcceptsStringKey(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct S {
        counts: dictionary<string, int32>
    }
}
`)
	if hasCode(diags, reporter.CodeInvalidDictionaryKey) {
		t.Errorf("unexpected InvalidDictionaryKey for a string key: %v", diags)
	}
}

func TestDictionaryAcceptsStructOfSimpleFieldsAsKey(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct Coord { x: int32, y: int32 }
    struct Grid {
        cells: dictionary<Coord, string>
    }
}
`)
	if hasCode(diags, reporter.CodeInvalidDictionaryKey) {
		t.Errorf("unexpected InvalidDictionaryKey for a struct key with simple fields: %v", diags)
	}
}

func TestDictionaryRejectsStructWithNonSimpleFieldAsKey(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct Bad { value: float64 }
    struct Grid {
        cells: dictionary<Bad, string>
    }
}
`)
	if !hasCode(diags, reporter.CodeInvalidDictionaryKey) {
		t.Fatalf("expected InvalidDictionaryKey when a struct key contains a float field, got %v", diags)
	}
}

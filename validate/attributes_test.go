package validate

import (
	"testing"

	"github.com/slicelang/slicec/reporter"
)

func TestAttributesWarnsOnUnknownName(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    [mystery]
    struct S { x: int32 }
}
`)
	if !hasCode(diags, reporter.CodeInvalidAttribute) {
		t.Fatalf("expected InvalidAttribute for an unrecognized attribute name, got %v", diags)
	}
	for _, d := range diags {
		if d.Code == reporter.CodeInvalidAttribute {
			if d.Severity != reporter.Warning {
				t.Errorf("unknown attribute should warn, got severity %v", d.Severity)
			}
		}
	}
}

func TestAttributesRejectsWrongArgumentCount(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    [[cs::namespace]]
    struct S { x: int32 }
}
`)
	if !hasCode(diags, reporter.CodeInvalidAttribute) {
		t.Fatalf("expected InvalidAttribute for cs::namespace with no arguments, got %v", diags)
	}
	found := false
	for _, d := range diags {
		if d.Code == reporter.CodeInvalidAttribute && d.Severity == reporter.Error {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the argument-count mismatch to be Error severity, got %v", diags)
	}
}

func TestAttributesAcceptsKnownShapeWithNoArguments(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    [deprecated]
    struct S { x: int32 }
}
`)
	if hasCode(diags, reporter.CodeInvalidAttribute) {
		t.Errorf("unexpected InvalidAttribute for a bare [deprecated]: %v", diags)
	}
}

func TestAttributesAcceptsDeprecatedWithReason(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    [deprecated("use T instead")]
    struct S { x: int32 }
}
`)
	if hasCode(diags, reporter.CodeInvalidAttribute) {
		t.Errorf("unexpected InvalidAttribute for [deprecated(\"reason\")]: %v", diags)
	}
}

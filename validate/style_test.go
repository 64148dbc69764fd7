package validate

import "github.com/slicelang/slicec/reporter"
import "testing"

func TestStyleWarnsOnLowercaseStructName(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct point { x: int32 }
}
`)
	if !hasCode(diags, reporter.CodeStyleWarning) {
		t.Fatalf("expected a StyleWarning for lowercase struct name, got %v", diags)
	}
	for _, d := range diags {
		if d.Code == reporter.CodeStyleWarning && d.Severity != reporter.Warning {
			t.Errorf("style mismatch should be Warning severity, got %v", d.Severity)
		}
	}
}

func TestStyleWarnsOnUppercaseMemberName(t *testing.T) {
	diags := buildAndValidate(t, `
module M {
    struct Point { X: int32 }
}
`)
	if !hasCode(diags, reporter.CodeStyleWarning) {
		t.Fatalf("expected a StyleWarning for uppercase member name, got %v", diags)
	}
}

func TestStyleAcceptsConventionalNames(t *testing.T) {
	diags := buildAndValidate(t, `
module Demo {
    struct Point {
        x: int32,
        y: int32
    }
    interface Calculator {
        add(a: int32, b: int32) -> int32;
    }
}
`)
	if hasCode(diags, reporter.CodeStyleWarning) {
		t.Errorf("unexpected StyleWarning for conventionally-cased names: %v", diags)
	}
}

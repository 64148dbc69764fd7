package reporter

import (
	"encoding/json"
	"testing"

	"github.com/slicelang/slicec/source"
)

func TestMarshalJSONShape(t *testing.T) {
	sp := source.Span{File: "a.slice", Start: source.Location{Line: 2, Column: 3}, End: source.Location{Line: 2, Column: 8}}
	diags := []Diagnostic{{
		Code:        CodeRedefinition,
		Severity:    Error,
		Message:     "duplicate name \"Foo\"",
		PrimarySpan: &sp,
		Notes:       []Note{{Message: "previously defined here", Span: &sp}},
	}}

	raw, err := MarshalJSON(diags)
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	d := decoded[0]
	if d["message"] != "duplicate name \"Foo\"" {
		t.Errorf("message = %v", d["message"])
	}
	if d["severity"] != "error" {
		t.Errorf("severity = %v, want \"error\"", d["severity"])
	}
	if d["error_code"] != string(CodeRedefinition) {
		t.Errorf("error_code = %v, want %v", d["error_code"], CodeRedefinition)
	}
	spanOut, ok := d["span"].(map[string]any)
	if !ok {
		t.Fatalf("span missing or wrong shape: %v", d["span"])
	}
	if spanOut["file"] != "a.slice" {
		t.Errorf("span.file = %v", spanOut["file"])
	}
	notes, ok := d["notes"].([]any)
	if !ok || len(notes) != 1 {
		t.Fatalf("expected one note, got %v", d["notes"])
	}
}

func TestMarshalJSONOmitsNilSpan(t *testing.T) {
	diags := []Diagnostic{{Code: CodeUnknown, Severity: Warning, Message: "no span here"}}
	raw, err := MarshalJSON(diags)
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, present := decoded[0]["span"]; present {
		t.Errorf("expected span field to be omitted, got %v", decoded[0]["span"])
	}
}

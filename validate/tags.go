package validate

import (
	"strconv"

	"github.com/slicelang/slicec/ast"
	"github.com/slicelang/slicec/reporter"
)

const maxTagValue = 2147483647 // 2^31 - 1

// validateTags enforces spec §4.8's tag rules: tags are in range, unique
// within their immediate container, and only attached to tag-capable types.
func validateTags(program *ast.Program, h *reporter.Handler) {
	for _, n := range program.Arena.All() {
		switch node := n.(type) {
		case *ast.Struct:
			checkTaggedGroup(program, memberTags(program, node.Members), h)
		case *ast.Class:
			checkTaggedGroup(program, memberTags(program, node.Members), h)
		case *ast.Exception:
			checkTaggedGroup(program, memberTags(program, node.Members), h)
		case *ast.Operation:
			checkTaggedGroup(program, parameterTags(program, node.Parameters), h)
		case *ast.Enumerator:
			checkTaggedGroup(program, fieldTags(program, node.AssociatedFields), h)
		}
	}
}

type taggedEntry struct {
	tag   int64
	typeH ast.WeakHandle
	name  *ast.Identifier
}

func memberTags(program *ast.Program, members []ast.WeakHandle) []taggedEntry {
	var out []taggedEntry
	for _, h := range members {
		n, ok := program.Arena.Get(h)
		if !ok {
			continue
		}
		dm, ok := n.(*ast.DataMember)
		if !ok || dm.Tag == nil {
			continue
		}
		out = append(out, taggedEntry{tag: *dm.Tag, typeH: dm.Type, name: dm.Ident})
	}
	return out
}

func parameterTags(program *ast.Program, params []ast.WeakHandle) []taggedEntry {
	var out []taggedEntry
	for _, h := range params {
		n, ok := program.Arena.Get(h)
		if !ok {
			continue
		}
		p, ok := n.(*ast.Parameter)
		if !ok || p.Tag == nil {
			continue
		}
		out = append(out, taggedEntry{tag: *p.Tag, typeH: p.Type, name: p.Ident})
	}
	return out
}

func fieldTags(program *ast.Program, fields []ast.WeakHandle) []taggedEntry {
	var out []taggedEntry
	for _, h := range fields {
		n, ok := program.Arena.Get(h)
		if !ok {
			continue
		}
		f, ok := n.(*ast.Field)
		if !ok || f.Tag == nil {
			continue
		}
		out = append(out, taggedEntry{tag: *f.Tag, typeH: f.Type, name: f.Ident})
	}
	return out
}

func checkTaggedGroup(program *ast.Program, entries []taggedEntry, h *reporter.Handler) {
	seen := map[int64]*ast.Identifier{}
	for _, e := range entries {
		if e.tag < 0 || e.tag > maxTagValue {
			span := e.name.Span
			h.Report(reporter.Diagnostic{
				Code:        reporter.CodeInvalidTag,
				Severity:    reporter.Error,
				Message:     "tag value out of range for \"" + e.name.Value + "\" (must be 0.." + strconv.Itoa(maxTagValue) + ")",
				PrimarySpan: &span,
			})
		} else if prev, exists := seen[e.tag]; exists {
			span := e.name.Span
			prevSpan := prev.Span
			h.Report(reporter.Diagnostic{
				Code:        reporter.CodeInvalidTag,
				Severity:    reporter.Error,
				Message:     "duplicate tag value among \"" + prev.Value + "\" and \"" + e.name.Value + "\"",
				PrimarySpan: &span,
				Notes: []reporter.Note{
					{Message: "previously used here", Span: &prevSpan},
				},
			})
		} else {
			seen[e.tag] = e.name
		}

		if !tagCapable(program, e.typeH) {
			span := e.name.Span
			h.Report(reporter.Diagnostic{
				Code:        reporter.CodeInvalidTag,
				Severity:    reporter.Error,
				Message:     "\"" + e.name.Value + "\" has a type that cannot be tagged",
				PrimarySpan: &span,
			})
		}
	}
}

// tagCapable implements the glossary's "Tagged-capable type" definition:
// primitives, enums, sequences, dictionaries, and structs are always
// taggable; classes only when the reference itself is optional.
func tagCapable(program *ast.Program, typeH ast.WeakHandle) bool {
	n, ok := program.Arena.Get(typeH)
	if !ok {
		return true // malformed elsewhere; don't cascade a second diagnostic
	}
	tr, ok := n.(*ast.TypeRef)
	if !ok {
		return true
	}
	switch tr.Form {
	case ast.FormPrimitive, ast.FormSequence, ast.FormDictionary:
		return true
	}
	target, ok := resolveThroughAliases(program, typeH)
	if !ok {
		return true
	}
	switch target.NodeKind() {
	case ast.KindEnum, ast.KindStruct:
		return true
	case ast.KindClass:
		return tr.Optional
	default:
		return false
	}
}

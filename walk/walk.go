// Package walk implements the generic AST traversal described by spec §4.9:
// a deterministic, pre-order, parent-before-children walk that an
// implementer drives by supplying callbacks for any subset of node kinds.
package walk

import "github.com/slicelang/slicec/ast"

// Visitor holds an optional callback per node kind. Traversal is
// deterministic and insertion-order stable: children are visited in the
// order they were appended to their parent during parsing.
type Visitor struct {
	OnModule     func(*ast.Module)
	OnStruct     func(*ast.Struct)
	OnClass      func(*ast.Class)
	OnException  func(*ast.Exception)
	OnInterface  func(*ast.Interface)
	OnEnum       func(*ast.Enum)
	OnEnumerator func(*ast.Enumerator)
	OnTrait      func(*ast.Trait)
	OnCustomType func(*ast.CustomType)
	OnTypeAlias  func(*ast.TypeAlias)
	OnOperation  func(*ast.Operation)
	OnParameter  func(*ast.Parameter)
	OnDataMember func(*ast.DataMember)
	OnField      func(*ast.Field)
	OnTypeRef    func(*ast.TypeRef)

	// IncludeUnpatchedTypeRefs, if false (the default), skips named TypeRef
	// nodes that have not yet been through the patcher, per spec §4.9.
	// Primitive and other anonymous TypeRefs are never patched and are
	// always visited.
	IncludeUnpatchedTypeRefs bool
}

// Walk visits every top-level module (and transitively everything it
// contains) in declaration order.
func Walk(p *ast.Program, v *Visitor) {
	for _, h := range p.TopLevel {
		walkNode(p.Arena, h, v)
	}
}

func walkNode(a *ast.Arena, h ast.WeakHandle, v *Visitor) {
	if h == ast.Root {
		return
	}
	n, ok := a.Get(h)
	if !ok {
		return
	}
	switch node := n.(type) {
	case *ast.Module:
		call(v.OnModule, node)
		for _, c := range node.Children {
			walkNode(a, c, v)
		}
	case *ast.Struct:
		call(v.OnStruct, node)
		for _, m := range node.Members {
			walkNode(a, m, v)
		}
	case *ast.Class:
		call(v.OnClass, node)
		walkTypeRef(a, node.BaseClass, v)
		for _, m := range node.Members {
			walkNode(a, m, v)
		}
	case *ast.Exception:
		call(v.OnException, node)
		walkTypeRef(a, node.BaseException, v)
		for _, m := range node.Members {
			walkNode(a, m, v)
		}
	case *ast.Interface:
		call(v.OnInterface, node)
		for _, b := range node.BaseInterfaces {
			walkTypeRef(a, b, v)
		}
		for _, op := range node.Operations {
			walkNode(a, op, v)
		}
	case *ast.Enum:
		call(v.OnEnum, node)
		walkTypeRef(a, node.UnderlyingType, v)
		for _, e := range node.Enumerators {
			walkNode(a, e, v)
		}
	case *ast.Enumerator:
		call(v.OnEnumerator, node)
		for _, f := range node.AssociatedFields {
			walkNode(a, f, v)
		}
	case *ast.Trait:
		call(v.OnTrait, node)
	case *ast.CustomType:
		call(v.OnCustomType, node)
	case *ast.TypeAlias:
		call(v.OnTypeAlias, node)
		walkTypeRef(a, node.Target, v)
	case *ast.Operation:
		call(v.OnOperation, node)
		for _, p := range node.Parameters {
			walkNode(a, p, v)
		}
		for _, r := range node.ReturnTypes {
			walkTypeRef(a, r, v)
		}
	case *ast.Parameter:
		call(v.OnParameter, node)
		walkTypeRef(a, node.Type, v)
	case *ast.DataMember:
		call(v.OnDataMember, node)
		walkTypeRef(a, node.Type, v)
	case *ast.Field:
		call(v.OnField, node)
		walkTypeRef(a, node.Type, v)
	case *ast.TypeRef:
		walkTypeRef(a, h, v)
	}
}

func walkTypeRef(a *ast.Arena, h ast.WeakHandle, v *Visitor) {
	if h == ast.Root {
		return
	}
	n, ok := a.Get(h)
	if !ok {
		return
	}
	tr, ok := n.(*ast.TypeRef)
	if !ok {
		return
	}
	if tr.Form == ast.FormNamed && tr.State == ast.Unpatched && !v.IncludeUnpatchedTypeRefs {
		return
	}
	call(v.OnTypeRef, tr)
	switch tr.Form {
	case ast.FormSequence:
		walkTypeRef(a, tr.Element, v)
	case ast.FormDictionary:
		walkTypeRef(a, tr.DictKey, v)
		walkTypeRef(a, tr.DictValue, v)
	}
}

func call[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}

package java

import (
	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// NewVariable builds the most specific variable element for n: an enum
// constant, parameter, field, local variable or plain variable. It returns
// nil when n is not variable-like.
func NewVariable(p *Plugin, n native.Node, parent uast.Element) uast.Variable {
	n = native.Unwrap(n)
	if n == nil {
		return nil
	}

	decl := uast.NewDeclarationBase(n, parent, p)

	switch variableKindOf(n) {
	case uast.KindEnumConstant:
		return &enumConstant{variable: variable{DeclarationBase: decl, p: p}}
	case uast.KindParameter:
		return &parameter{variable: variable{DeclarationBase: decl, p: p}}
	case uast.KindField:
		return &field{variable: variable{DeclarationBase: decl, p: p}}
	case uast.KindLocalVariable:
		return &localVariable{variable: variable{DeclarationBase: decl, p: p}}
	case uast.KindVariable:
		return &variable{DeclarationBase: decl, p: p}
	default:
		return nil
	}
}

func variableKindOf(n native.Node) uast.ElementKind {
	switch n.Kind() {
	case native.JavaEnumConstant:
		return uast.KindEnumConstant
	case native.JavaParameter:
		return uast.KindParameter
	case native.JavaField:
		return uast.KindField
	case native.JavaLocalVariable:
		return uast.KindLocalVariable
	case native.JavaVariable:
		// Declarators take their role from the declaration holding them.
		if parent := n.Parent(); parent != nil {
			switch parent.Kind() {
			case native.JavaField:
				return uast.KindField
			case native.JavaLocalVariableDeclaration, native.JavaFor:
				return uast.KindLocalVariable
			}
		}

		return uast.KindVariable
	default:
		return uast.KindUnknown
	}
}

// variable is the plain variable and the base of the specialized ones.
type variable struct {
	uast.DeclarationBase

	p           *Plugin
	typ         uast.Lazy[uast.TypeReference]
	initializer uast.Lazy[uast.Expression]
	annotations uast.Lazy[[]uast.Annotation]
}

var _ uast.Variable = (*variable)(nil)

func (v *variable) ElementKind() uast.ElementKind { return uast.KindVariable }

func (v *variable) Annotations() []uast.Annotation {
	return v.annotations.Get(func() []uast.Annotation {
		n := v.Unwrap()
		out := annotationsOf(v.p, n, v)

		if n.Kind() == native.JavaVariable && n.Parent() != nil {
			out = append(out, annotationsOf(v.p, n.Parent(), v)...)
		}

		return out
	})
}

// TypeReference returns the declared type, looked up on the variable and
// then on the declaration holding it.
func (v *variable) TypeReference() uast.TypeReference {
	return v.typ.Get(func() uast.TypeReference {
		n := v.Unwrap()

		typ := n.Child(native.FieldType)
		if typ == nil && n.Parent() != nil && n.Kind() == native.JavaVariable {
			typ = n.Parent().Child(native.FieldType)
		}

		if typ == nil {
			return nil
		}

		return newTypeReference(v.p, typ, v)
	})
}

func (v *variable) Initializer() uast.Expression {
	return v.initializer.Get(func() uast.Expression {
		n := v.Unwrap()

		init := n.Child(native.FieldInitializer)
		if init == nil {
			init = n.Child(native.FieldValue)
		}

		return v.p.expr(init, v)
	})
}

func (v *variable) ChildElements() []uast.Element {
	out := uast.AsElements(v.Annotations())

	if typ := v.TypeReference(); typ != nil {
		out = append(out, typ)
	}

	if init := v.Initializer(); init != nil {
		out = append(out, init)
	}

	return out
}

type parameter struct {
	variable
	uast.ParameterNode
}

var _ uast.Parameter = (*parameter)(nil)

func (p *parameter) ElementKind() uast.ElementKind { return uast.KindParameter }

type field struct {
	variable
	uast.FieldNode
}

var _ uast.Field = (*field)(nil)

func (f *field) ElementKind() uast.ElementKind { return uast.KindField }

type localVariable struct {
	variable
	uast.LocalVariableNode
}

var _ uast.LocalVariable = (*localVariable)(nil)

func (l *localVariable) ElementKind() uast.ElementKind { return uast.KindLocalVariable }

// enumConstant is a field that is also the constructor call creating it.
type enumConstant struct {
	variable
	uast.FieldNode
	uast.ExpressionNode

	arguments uast.Lazy[[]uast.Expression]
}

var _ uast.EnumConstant = (*enumConstant)(nil)

func (e *enumConstant) ElementKind() uast.ElementKind { return uast.KindEnumConstant }

func (e *enumConstant) CallKind() uast.CallKind { return uast.CallConstructor }

func (e *enumConstant) Receiver() uast.Expression { return nil }

func (e *enumConstant) MethodName() string { return e.Name() }

func (e *enumConstant) Arguments() []uast.Expression {
	return e.arguments.Get(func() []uast.Expression {
		return e.p.exprs(argumentNodes(e.Unwrap()), e)
	})
}

func (e *enumConstant) Resolve() (native.Symbol, bool) {
	return e.p.resolver.ResolveCall(e.Unwrap())
}

// TypeReference of an enum constant is its enum class.
func (e *enumConstant) TypeReference() uast.TypeReference { return nil }

func (e *enumConstant) ChildElements() []uast.Element {
	return append(uast.AsElements(e.Annotations()), uast.AsElements(e.Arguments())...)
}

// argumentNodes returns the call arguments of n.
func argumentNodes(n native.Node) []native.Node {
	list := n.Child(native.FieldArguments)
	if list == nil {
		list = native.FirstChildOfKind(n, native.JavaArgumentList)
	}

	if list == nil {
		return nil
	}

	return list.Children()
}

package kotlin

import (
	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// NewVariable builds the most specific variable element for a Java-shaped
// variable node generated for Kotlin: a light field or enum constant, a
// synthetic local variable or a synthetic parameter. It returns nil when n is
// not variable-like.
func NewVariable(p *Plugin, n native.Node, parent uast.Element) uast.Variable {
	n = native.Unwrap(n)
	if n == nil || !n.Kind().IsVariable() {
		return nil
	}

	decl := uast.NewDeclarationBase(n, parent, p)

	switch n.Kind() {
	case native.JavaEnumConstant:
		return &enumConstant{variable: variable{DeclarationBase: decl, p: p}}
	case native.JavaLocalVariable:
		return &localVariable{variable: variable{DeclarationBase: decl, p: p}}
	case native.JavaParameter:
		return &parameter{variable: variable{DeclarationBase: decl, p: p}}
	case native.JavaField:
		return &field{variable: variable{DeclarationBase: decl, p: p}}
	default:
		return &variable{DeclarationBase: decl, p: p}
	}
}

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
		return annotationsOf(v.p, kotlinOrigin(v.Unwrap()), v)
	})
}

func (v *variable) TypeReference() uast.TypeReference {
	return v.typ.Get(func() uast.TypeReference {
		typ := v.Unwrap().Child(native.FieldType)
		if typ == nil {
			return nil
		}

		ref, _ := uast.ConvertOpt[uast.TypeReference](v.p.ctx, typ, v)

		return ref
	})
}

// Initializer reads the initializer of the Kotlin variable declaration
// behind the variable. Declarations lowered from destructuring always have
// one; a missing right-hand side yields uast.Empty.
func (v *variable) Initializer() uast.Expression {
	return v.initializer.Get(func() uast.Expression {
		origin := kotlinOrigin(v.Unwrap())
		if origin == nil {
			return nil
		}

		switch origin.Kind() {
		case native.KtProperty, native.KtDestructuring, native.KtDestructuringEntry:
		default:
			return nil
		}

		init := v.Unwrap().Child(native.FieldInitializer)
		if init == nil {
			if origin.Kind() == native.KtDestructuring {
				return uast.Empty
			}

			return nil
		}

		return v.p.exprOrEmpty(init, v)
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

// enumConstant is the light field of an enum entry, read as the constructor
// call creating it.
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
		return e.p.exprs(argumentNodes(kotlinOrigin(e.Unwrap())), e)
	})
}

func (e *enumConstant) Resolve() (native.Symbol, bool) {
	origin := kotlinOrigin(e.Unwrap())
	if origin == nil {
		return native.Symbol{}, false
	}

	return e.p.resolver.ResolveCall(origin)
}

func (e *enumConstant) ChildElements() []uast.Element {
	return append(uast.AsElements(e.Annotations()), uast.AsElements(e.Arguments())...)
}

// argumentNodes returns the argument expressions of a call or enum entry:
// the values of its argument list followed by a trailing lambda.
func argumentNodes(n native.Node) []native.Node {
	if n == nil {
		return nil
	}

	list := n.Child(native.FieldArguments)
	if list == nil {
		list = native.FirstChildOfKind(n, native.KtValueArgumentList)
	}

	var out []native.Node

	if list != nil {
		for _, arg := range list.Children() {
			out = append(out, argumentValue(arg))
		}
	}

	out = append(out, native.ChildrenOfKind(n, native.KtLambda)...)

	return out
}

// argumentValue unwraps a value argument to its expression.
func argumentValue(arg native.Node) native.Node {
	if arg.Kind() != native.KtValueArgument {
		return arg
	}

	if value := arg.Child(native.FieldValue); value != nil {
		return value
	}

	children := arg.Children()
	if len(children) == 0 {
		return arg
	}

	return children[len(children)-1]
}

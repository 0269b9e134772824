package java

import (
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// convertExpression is the Java expression table. Structural kinds with no
// expression form yield nil; unmapped nodes become unknown expressions.
func (p *Plugin) convertExpression(n native.Node, parent uast.Element) uast.Expression {
	switch n.Kind() {
	case native.JavaExpressionStatement, native.JavaFinally:
		// Transparent wrappers convert to their single child.
		children := n.Children()
		if len(children) == 0 {
			return nil
		}

		return p.expr(children[0], parent)
	case native.JavaBlock:
		return &block{expr: p.base(n, parent)}
	case native.JavaLocalVariableDeclaration:
		return &declarations{expr: p.base(n, parent)}
	case native.JavaMethodCall:
		return &call{expr: p.base(n, parent), kind: uast.CallMethod}
	case native.JavaNewExpression:
		return &call{expr: p.base(n, parent), kind: uast.CallConstructor}
	case native.JavaBinary, native.JavaAssignment:
		return &binary{expr: p.base(n, parent)}
	case native.JavaPrefix:
		return &unary{expr: p.base(n, parent), kind: uast.KindPrefix}
	case native.JavaPostfix:
		return &unary{expr: p.base(n, parent), kind: uast.KindPostfix}
	case native.JavaParenthesized:
		return &parenthesized{expr: p.base(n, parent)}
	case native.JavaLiteral:
		return &literal{expr: p.base(n, parent)}
	case native.JavaStringLiteral:
		return &literal{expr: p.base(n, parent), str: true}
	case native.JavaReference, native.KindIdentifier:
		return &simpleReference{expr: p.base(n, parent)}
	case native.JavaFieldAccess:
		return &qualifiedReference{expr: p.base(n, parent)}
	case native.JavaIf:
		return &ifExpression{expr: p.base(n, parent)}
	case native.JavaTernary:
		return &ifExpression{expr: p.base(n, parent), ternary: true}
	case native.JavaWhile:
		return &conditionalLoop{expr: p.base(n, parent), kind: uast.KindWhile}
	case native.JavaDoWhile:
		return &conditionalLoop{expr: p.base(n, parent), kind: uast.KindDoWhile}
	case native.JavaFor:
		return &forLoop{expr: p.base(n, parent)}
	case native.JavaForEach:
		return &forEach{expr: p.base(n, parent)}
	case native.JavaSwitch:
		return &switchExpression{expr: p.base(n, parent)}
	case native.JavaReturn:
		return &jump{expr: p.base(n, parent), kind: uast.KindReturn}
	case native.JavaThrow:
		return &jump{expr: p.base(n, parent), kind: uast.KindThrow}
	case native.JavaBreak:
		return &jump{expr: p.base(n, parent), kind: uast.KindBreak}
	case native.JavaContinue:
		return &jump{expr: p.base(n, parent), kind: uast.KindContinue}
	case native.JavaTry:
		return &tryExpression{expr: p.base(n, parent)}
	case native.JavaLambda:
		return &lambda{expr: p.base(n, parent)}
	case native.JavaCast:
		return &binaryWithType{expr: p.base(n, parent), op: "as"}
	case native.JavaInstanceOf:
		return &binaryWithType{expr: p.base(n, parent), op: "instanceof"}
	case native.JavaArrayAccess:
		return &arrayAccess{expr: p.base(n, parent)}
	case native.JavaThis:
		return &instance{expr: p.base(n, parent), kind: uast.KindThis}
	case native.JavaSuper:
		return &instance{expr: p.base(n, parent), kind: uast.KindSuper}
	case native.JavaClassLiteral:
		return &classLiteral{expr: p.base(n, parent)}
	case native.JavaLabeled:
		return &labeled{expr: p.base(n, parent)}
	case native.JavaMethodReference:
		return &callableReference{expr: p.base(n, parent)}
	case native.JavaTypeElement:
		return newTypeReference(p, n, parent)
	case native.JavaFile, native.JavaPackage, native.JavaImport, native.JavaClassBody,
		native.JavaModifiers, native.JavaParameterList, native.JavaArgumentList,
		native.JavaSwitchLabel, native.JavaField, native.KindComment:
		return nil
	default:
		return uast.NewUnknown(n, parent, p)
	}
}

// expr is embedded by every Java expression element.
type expr struct {
	uast.ExpressionNode
	uast.Base

	p *Plugin
}

func (p *Plugin) base(n native.Node, parent uast.Element) expr {
	return expr{Base: uast.NewBase(n, parent, p), p: p}
}

// childOr returns the field child of the origin, or its index-th child.
func (e *expr) childOr(field string, index int) native.Node {
	if child := e.Origin().Child(field); child != nil {
		return child
	}

	children := e.Origin().Children()
	if index >= 0 && index < len(children) {
		return children[index]
	}

	return nil
}

func nonNil(elements ...uast.Element) []uast.Element {
	out := make([]uast.Element, 0, len(elements))

	for _, e := range elements {
		if e != nil {
			out = append(out, e)
		}
	}

	return out
}

// exprElement widens an expression to an Element, keeping nil as nil.
func exprElement(e uast.Expression) uast.Element {
	if e == nil {
		return nil
	}

	return e
}

type block struct {
	expr

	expressions uast.Lazy[[]uast.Expression]
}

func (b *block) ElementKind() uast.ElementKind { return uast.KindBlock }

func (b *block) Expressions() []uast.Expression {
	return b.expressions.Get(func() []uast.Expression {
		return b.p.exprs(b.Origin().Children(), b)
	})
}

func (b *block) ChildElements() []uast.Element { return uast.AsElements(b.Expressions()) }

type declarations struct {
	expr

	variables uast.Lazy[[]uast.Variable]
}

func (d *declarations) ElementKind() uast.ElementKind { return uast.KindVariableDeclarations }

func (d *declarations) Variables() []uast.Variable {
	return d.variables.Get(func() []uast.Variable {
		nodes := native.ChildrenOfKind(d.Origin(), native.JavaVariable, native.JavaLocalVariable)

		return uast.ConvertAll[uast.Variable](d.p.ctx, nodes, d)
	})
}

func (d *declarations) ChildElements() []uast.Element { return uast.AsElements(d.Variables()) }

type call struct {
	expr

	kind      uast.CallKind
	receiver  uast.Lazy[uast.Expression]
	arguments uast.Lazy[[]uast.Expression]
}

func (c *call) ElementKind() uast.ElementKind { return uast.KindCall }

func (c *call) CallKind() uast.CallKind { return c.kind }

func (c *call) Receiver() uast.Expression {
	return c.receiver.Get(func() uast.Expression {
		return c.p.expr(c.Origin().Child(native.FieldReceiver), c)
	})
}

// MethodName returns the invoked method, or the instantiated type for
// constructor calls.
func (c *call) MethodName() string {
	if c.kind == uast.CallConstructor {
		if typ := c.Origin().Child(native.FieldType); typ != nil {
			return strings.TrimSpace(typ.Text())
		}
	}

	return native.NameOf(c.Origin())
}

func (c *call) Arguments() []uast.Expression {
	return c.arguments.Get(func() []uast.Expression {
		return c.p.exprs(argumentNodes(c.Origin()), c)
	})
}

func (c *call) Resolve() (native.Symbol, bool) { return c.p.resolver.ResolveCall(c.Origin()) }

func (c *call) ChildElements() []uast.Element {
	return append(nonNil(exprElement(c.Receiver())), uast.AsElements(c.Arguments())...)
}

type binary struct {
	expr

	left  uast.Lazy[uast.Expression]
	right uast.Lazy[uast.Expression]
}

func (b *binary) ElementKind() uast.ElementKind { return uast.KindBinary }

func (b *binary) Left() uast.Expression {
	return b.left.Get(func() uast.Expression { return b.p.exprOrEmpty(b.childOr(native.FieldLeft, 0), b) })
}

func (b *binary) Right() uast.Expression {
	return b.right.Get(func() uast.Expression { return b.p.exprOrEmpty(b.childOr(native.FieldRight, 1), b) })
}

func (b *binary) Operator() uast.Operator { return operatorOf(b.Origin()) }

func (b *binary) ChildElements() []uast.Element { return []uast.Element{b.Left(), b.Right()} }

// operatorOf reads the operator field, falling back to "=" for assignments.
func operatorOf(n native.Node) uast.Operator {
	if op := n.Child(native.FieldOperator); op != nil {
		return uast.Operator(strings.TrimSpace(op.Text()))
	}

	if n.Kind() == native.JavaAssignment {
		return uast.OperatorAssign
	}

	return ""
}

type unary struct {
	expr

	kind    uast.ElementKind
	operand uast.Lazy[uast.Expression]
}

func (u *unary) ElementKind() uast.ElementKind { return u.kind }

func (u *unary) Operand() uast.Expression {
	return u.operand.Get(func() uast.Expression { return u.p.exprOrEmpty(u.childOr(native.FieldOperand, 0), u) })
}

// Operator reads the operator field, or derives it from the text around the
// operand.
func (u *unary) Operator() uast.Operator {
	if op := operatorOf(u.Origin()); op != "" {
		return op
	}

	text := u.Origin().Text()

	operand := u.childOr(native.FieldOperand, 0)
	if operand == nil {
		return uast.Operator(strings.TrimSpace(text))
	}

	return uast.Operator(strings.TrimSpace(strings.Replace(text, operand.Text(), "", 1)))
}

func (u *unary) ChildElements() []uast.Element { return []uast.Element{u.Operand()} }

type parenthesized struct {
	expr

	inner uast.Lazy[uast.Expression]
}

func (e *parenthesized) ElementKind() uast.ElementKind { return uast.KindParenthesized }

func (e *parenthesized) Inner() uast.Expression {
	return e.inner.Get(func() uast.Expression { return e.p.exprOrEmpty(e.childOr(native.FieldValue, 0), e) })
}

func (e *parenthesized) ChildElements() []uast.Element { return []uast.Element{e.Inner()} }

type literal struct {
	expr

	str bool
}

func (l *literal) ElementKind() uast.ElementKind { return uast.KindLiteral }

func (l *literal) IsString() bool { return l.str }

// Value returns the literal text; string literals are unquoted.
func (l *literal) Value() string {
	text := l.Origin().Text()
	if !l.str {
		return text
	}

	if strings.HasPrefix(text, `"""`) && strings.HasSuffix(text, `"""`) && len(text) >= 6 {
		return strings.TrimPrefix(text[3:len(text)-3], "\n")
	}

	if unquoted, err := strconv.Unquote(text); err == nil {
		return unquoted
	}

	return strings.Trim(text, `"`)
}

func (l *literal) ChildElements() []uast.Element { return nil }

type simpleReference struct {
	expr
}

func (s *simpleReference) ElementKind() uast.ElementKind { return uast.KindSimpleReference }

func (s *simpleReference) Identifier() string {
	if name := native.NameOf(s.Origin()); name != "" {
		return name
	}

	return strings.TrimSpace(s.Origin().Text())
}

func (s *simpleReference) Resolve() (native.Symbol, bool) { return s.p.resolver.ResolveCall(s.Origin()) }

func (s *simpleReference) ChildElements() []uast.Element { return nil }

type qualifiedReference struct {
	expr

	receiver uast.Lazy[uast.Expression]
	selector uast.Lazy[uast.Expression]
}

func (q *qualifiedReference) ElementKind() uast.ElementKind { return uast.KindQualifiedReference }

func (q *qualifiedReference) Receiver() uast.Expression {
	return q.receiver.Get(func() uast.Expression { return q.p.exprOrEmpty(q.childOr(native.FieldReceiver, 0), q) })
}

func (q *qualifiedReference) Selector() uast.Expression {
	return q.selector.Get(func() uast.Expression { return q.p.exprOrEmpty(q.childOr(native.FieldSelector, 1), q) })
}

func (q *qualifiedReference) IsSafe() bool { return false }

func (q *qualifiedReference) ChildElements() []uast.Element {
	return []uast.Element{q.Receiver(), q.Selector()}
}

type binaryWithType struct {
	expr

	op      uast.Operator
	operand uast.Lazy[uast.Expression]
	typ     uast.Lazy[uast.TypeReference]
}

func (b *binaryWithType) ElementKind() uast.ElementKind { return uast.KindBinaryWithType }

func (b *binaryWithType) Operator() uast.Operator { return b.op }

func (b *binaryWithType) Operand() uast.Expression {
	return b.operand.Get(func() uast.Expression {
		operand := b.Origin().Child(native.FieldValue)
		if operand == nil {
			operand = b.Origin().Child(native.FieldLeft)
		}

		return b.p.exprOrEmpty(operand, b)
	})
}

func (b *binaryWithType) Type() uast.TypeReference {
	return b.typ.Get(func() uast.TypeReference {
		typ := b.Origin().Child(native.FieldType)
		if typ == nil {
			typ = b.Origin().Child(native.FieldRight)
		}

		if typ == nil {
			return nil
		}

		return newTypeReference(b.p, typ, b)
	})
}

func (b *binaryWithType) ChildElements() []uast.Element {
	out := []uast.Element{b.Operand()}
	if typ := b.Type(); typ != nil {
		out = append(out, typ)
	}

	return out
}

type arrayAccess struct {
	expr

	receiver uast.Lazy[uast.Expression]
	indices  uast.Lazy[[]uast.Expression]
}

func (a *arrayAccess) ElementKind() uast.ElementKind { return uast.KindArrayAccess }

func (a *arrayAccess) Receiver() uast.Expression {
	return a.receiver.Get(func() uast.Expression { return a.p.exprOrEmpty(a.childOr(native.FieldReceiver, 0), a) })
}

func (a *arrayAccess) Indices() []uast.Expression {
	return a.indices.Get(func() []uast.Expression {
		if index := a.Origin().Child(native.FieldIndex); index != nil {
			return []uast.Expression{a.p.exprOrEmpty(index, a)}
		}

		children := a.Origin().Children()
		if len(children) < 2 {
			return nil
		}

		return a.p.exprs(children[1:], a)
	})
}

func (a *arrayAccess) ChildElements() []uast.Element {
	return append([]uast.Element{a.Receiver()}, uast.AsElements(a.Indices())...)
}

type instance struct {
	expr

	kind uast.ElementKind
}

func (i *instance) ElementKind() uast.ElementKind { return i.kind }

func (i *instance) Label() string { return "" }

func (i *instance) ChildElements() []uast.Element { return nil }

type classLiteral struct {
	expr

	typ uast.Lazy[uast.TypeReference]
}

func (c *classLiteral) ElementKind() uast.ElementKind { return uast.KindClassLiteral }

func (c *classLiteral) Type() uast.TypeReference {
	return c.typ.Get(func() uast.TypeReference {
		typ := c.childOr(native.FieldType, 0)
		if typ == nil {
			return nil
		}

		return newTypeReference(c.p, typ, c)
	})
}

func (c *classLiteral) ChildElements() []uast.Element {
	if typ := c.Type(); typ != nil {
		return []uast.Element{typ}
	}

	return nil
}

type callableReference struct {
	expr

	qualifier uast.Lazy[uast.Expression]
}

func (c *callableReference) ElementKind() uast.ElementKind { return uast.KindCallableReference }

func (c *callableReference) Qualifier() uast.Expression {
	return c.qualifier.Get(func() uast.Expression { return c.p.expr(c.childOr(native.FieldReceiver, 0), c) })
}

func (c *callableReference) CallableName() string {
	if name := native.NameOf(c.Origin()); name != "" {
		return name
	}

	text := c.Origin().Text()
	if i := strings.LastIndex(text, "::"); i >= 0 {
		return strings.TrimSpace(text[i+2:])
	}

	return ""
}

func (c *callableReference) ChildElements() []uast.Element { return nonNil(exprElement(c.Qualifier())) }

package kotlin

import (
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// convert is the Kotlin node table for everything that is not a declaration.
// Kotlin nodes with no uniform variant become unknown expressions; structural
// nodes and foreign kinds yield nil.
func (p *Plugin) convert(n native.Node, parent uast.Element) uast.Element {
	switch n.Kind() {
	case native.KtParameterList:
		return p.parameterDeclarations(n, parent)
	case native.KtParameter:
		return p.parameter(n, parent)
	case native.KtClassBody:
		return &expressionList{expr: p.base(n, parent), kind: uast.ListClassBody}
	case native.KtCatch:
		return newCatchClause(p, n, parent)
	case native.KtWhenEntry:
		return &whenEntry{expr: p.base(n, parent)}
	case native.KtAnnotationEntry:
		return newAnnotation(p, n, parent)
	case native.KtTypeReference:
		return newTypeReference(p, n, parent)
	case native.KindIdentifier:
		if n.Language() != native.Kotlin {
			return nil
		}

		return &simpleReference{expr: p.base(n, parent)}
	case native.KtFile, native.KtPackage, native.KtImport, native.KtModifiers,
		native.KtValueArgumentList, native.KtDestructuringEntry, native.KindComment,
		native.KtClass, native.KtObject, native.KtPropertyAccessor, native.KtEnumEntry:
		return nil
	}

	if !n.Kind().IsKotlin() && !(n.Kind() == native.KindUnknown && n.Language() == native.Kotlin) {
		return nil
	}

	return p.convertExpression(n, parent)
}

// convertExpression is the Kotlin expression table.
func (p *Plugin) convertExpression(n native.Node, parent uast.Element) uast.Expression {
	switch n.Kind() {
	case native.KtProperty:
		return p.localDeclaration(n, parent)
	case native.KtStringTemplate:
		return p.lowerStringTemplate(n, parent)
	case native.KtDestructuring:
		return p.lowerDestructuring(n, parent)
	case native.KtLiteralEntry, native.KtEscapeEntry, native.KtSimpleEntry, native.KtBlockEntry:
		return p.templateEntry(n, parent)
	case native.KtValueArgument:
		return p.expr(argumentValue(n), parent)
	case native.KtFinally:
		children := n.Children()
		if len(children) == 0 {
			return uast.Empty
		}

		return p.exprOrEmpty(children[0], parent)
	case native.KtLabeled:
		return &labeled{expr: p.base(n, parent)}
	case native.KtClassLiteral:
		return &classLiteral{expr: p.base(n, parent)}
	case native.KtObjectLiteral:
		return &objectLiteral{expr: p.base(n, parent)}
	case native.KtDotQualified:
		return &qualifiedReference{expr: p.base(n, parent)}
	case native.KtSafeQualified:
		return &qualifiedReference{expr: p.base(n, parent), safe: true}
	case native.KtSimpleName:
		return &simpleReference{expr: p.base(n, parent)}
	case native.KtCall:
		return &call{expr: p.base(n, parent)}
	case native.KtBinary:
		return &binary{expr: p.base(n, parent)}
	case native.KtParenthesized:
		return &parenthesized{expr: p.base(n, parent)}
	case native.KtPrefix:
		return &unary{expr: p.base(n, parent), kind: uast.KindPrefix}
	case native.KtPostfix:
		return &unary{expr: p.base(n, parent), kind: uast.KindPostfix}
	case native.KtThis:
		return &instance{expr: p.base(n, parent), kind: uast.KindThis}
	case native.KtSuper:
		return &instance{expr: p.base(n, parent), kind: uast.KindSuper}
	case native.KtCallableReference:
		return &callableReference{expr: p.base(n, parent)}
	case native.KtIs:
		return &binaryWithType{expr: p.base(n, parent), fallback: "is"}
	case native.KtBinaryWithType:
		return &binaryWithType{expr: p.base(n, parent), fallback: "as"}
	case native.KtIf:
		return &ifExpression{expr: p.base(n, parent)}
	case native.KtWhile:
		return &conditionalLoop{expr: p.base(n, parent), kind: uast.KindWhile}
	case native.KtDoWhile:
		return &conditionalLoop{expr: p.base(n, parent), kind: uast.KindDoWhile}
	case native.KtFor:
		return &forEach{expr: p.base(n, parent)}
	case native.KtWhen:
		return &when{expr: p.base(n, parent)}
	case native.KtBreak:
		return &jump{expr: p.base(n, parent), kind: uast.KindBreak}
	case native.KtContinue:
		return &jump{expr: p.base(n, parent), kind: uast.KindContinue}
	case native.KtReturn:
		return &jump{expr: p.base(n, parent), kind: uast.KindReturn}
	case native.KtThrow:
		return &jump{expr: p.base(n, parent), kind: uast.KindThrow}
	case native.KtBlock:
		return &block{expr: p.base(n, parent)}
	case native.KtConstant:
		return &literal{expr: p.base(n, parent)}
	case native.KtTry:
		return &tryExpression{expr: p.base(n, parent)}
	case native.KtArrayAccess:
		return &arrayAccess{expr: p.base(n, parent)}
	case native.KtLambda:
		return &lambda{expr: p.base(n, parent)}
	default:
		return uast.NewUnknown(n, parent, p)
	}
}

// expr is embedded by every Kotlin expression element.
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

func exprElement(e uast.Expression) uast.Element {
	if e == nil {
		return nil
	}

	return e
}

// operatorText reads the operator field of n.
func operatorText(n native.Node) uast.Operator {
	if op := n.Child(native.FieldOperator); op != nil {
		return uast.Operator(strings.TrimSpace(op.Text()))
	}

	return ""
}

// unquoteIdentifier strips the backticks of a quoted Kotlin identifier.
func unquoteIdentifier(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 && strings.HasPrefix(text, "`") && strings.HasSuffix(text, "`") {
		return text[1 : len(text)-1]
	}

	return text
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

// declarations holds variables built by this frontend rather than read from
// native children.
type declarations struct {
	expr

	variables []uast.Variable
}

func (d *declarations) ElementKind() uast.ElementKind { return uast.KindVariableDeclarations }

func (d *declarations) Variables() []uast.Variable { return d.variables }

func (d *declarations) ChildElements() []uast.Element { return uast.AsElements(d.variables) }

// expressionList is a list with no native node of its own.
type expressionList struct {
	expr

	kind        uast.ListKind
	expressions []uast.Expression
}

func (l *expressionList) ElementKind() uast.ElementKind { return uast.KindExpressionList }

func (l *expressionList) ListKind() uast.ListKind { return l.kind }

func (l *expressionList) Expressions() []uast.Expression { return l.expressions }

func (l *expressionList) ChildElements() []uast.Element { return uast.AsElements(l.expressions) }

type call struct {
	expr

	receiver  uast.Lazy[uast.Expression]
	arguments uast.Lazy[[]uast.Expression]
}

func (c *call) ElementKind() uast.ElementKind { return uast.KindCall }

// CallKind asks the oracle; unresolved calls are method calls.
func (c *call) CallKind() uast.CallKind {
	if symbol, ok := c.Resolve(); ok && symbol.Constructor {
		return uast.CallConstructor
	}

	return uast.CallMethod
}

// Receiver is the receiver of the qualified expression the call is the
// selector of.
func (c *call) Receiver() uast.Expression {
	return c.receiver.Get(func() uast.Expression {
		qualified, ok := c.ContainingElement().(uast.QualifiedReference)
		if !ok || !uast.Equal(qualified.Selector(), c) {
			return nil
		}

		return qualified.Receiver()
	})
}

func (c *call) MethodName() string {
	if callee := c.childOr(native.FieldCallee, 0); callee != nil {
		return unquoteIdentifier(callee.Text())
	}

	return ""
}

func (c *call) Arguments() []uast.Expression {
	return c.arguments.Get(func() []uast.Expression {
		return c.p.exprs(argumentNodes(c.Origin()), c)
	})
}

func (c *call) Resolve() (native.Symbol, bool) { return c.p.resolver.ResolveCall(c.Origin()) }

func (c *call) ChildElements() []uast.Element { return uast.AsElements(c.Arguments()) }

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

func (b *binary) Operator() uast.Operator { return operatorText(b.Origin()) }

func (b *binary) ChildElements() []uast.Element { return []uast.Element{b.Left(), b.Right()} }

type unary struct {
	expr

	kind    uast.ElementKind
	operand uast.Lazy[uast.Expression]
}

func (u *unary) ElementKind() uast.ElementKind { return u.kind }

func (u *unary) Operand() uast.Expression {
	return u.operand.Get(func() uast.Expression { return u.p.exprOrEmpty(u.childOr(native.FieldOperand, 0), u) })
}

func (u *unary) Operator() uast.Operator { return operatorText(u.Origin()) }

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

// literal is a constant, or a string produced by template lowering.
type literal struct {
	expr

	value *string
}

func (l *literal) ElementKind() uast.ElementKind { return uast.KindLiteral }

func (l *literal) IsString() bool { return l.value != nil }

func (l *literal) Value() string {
	if l.value != nil {
		return *l.value
	}

	text := strings.TrimSpace(l.Origin().Text())
	if strings.HasPrefix(text, `'`) {
		if unquoted, err := strconv.Unquote(text); err == nil {
			return unquoted
		}
	}

	return text
}

func (l *literal) ChildElements() []uast.Element { return nil }

func (p *Plugin) stringLiteral(n native.Node, parent uast.Element, value string) *literal {
	return &literal{expr: p.base(n, parent), value: &value}
}

type simpleReference struct {
	expr
}

func (s *simpleReference) ElementKind() uast.ElementKind { return uast.KindSimpleReference }

func (s *simpleReference) Identifier() string {
	if name := native.NameOf(s.Origin()); name != "" {
		return unquoteIdentifier(name)
	}

	return unquoteIdentifier(s.Origin().Text())
}

func (s *simpleReference) Resolve() (native.Symbol, bool) { return s.p.resolver.ResolveCall(s.Origin()) }

func (s *simpleReference) ChildElements() []uast.Element { return nil }

type qualifiedReference struct {
	expr

	safe     bool
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

func (q *qualifiedReference) IsSafe() bool { return q.safe }

func (q *qualifiedReference) ChildElements() []uast.Element {
	return []uast.Element{q.Receiver(), q.Selector()}
}

// binaryWithType covers casts and type checks. The operator field carries
// the written operator (as, as?, is, !is); fallback is used when it is absent.
type binaryWithType struct {
	expr

	fallback uast.Operator
	operand  uast.Lazy[uast.Expression]
	typ      uast.Lazy[uast.TypeReference]
}

func (b *binaryWithType) ElementKind() uast.ElementKind { return uast.KindBinaryWithType }

func (b *binaryWithType) Operator() uast.Operator {
	if op := operatorText(b.Origin()); op != "" {
		return op
	}

	return b.fallback
}

func (b *binaryWithType) Operand() uast.Expression {
	return b.operand.Get(func() uast.Expression { return b.p.exprOrEmpty(b.childOr(native.FieldLeft, 0), b) })
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
			return a.p.exprs(index.Children(), a)
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

// Label returns the qualifier of this@Label and super@Label.
func (i *instance) Label() string {
	if label := i.Origin().Child(native.FieldLabel); label != nil {
		return strings.TrimPrefix(strings.TrimSpace(label.Text()), "@")
	}

	if _, after, ok := strings.Cut(i.Origin().Text(), "@"); ok {
		return strings.TrimSpace(after)
	}

	return ""
}

func (i *instance) ChildElements() []uast.Element { return nil }

type classLiteral struct {
	expr

	typ uast.Lazy[uast.TypeReference]
}

func (c *classLiteral) ElementKind() uast.ElementKind { return uast.KindClassLiteral }

func (c *classLiteral) Type() uast.TypeReference {
	return c.typ.Get(func() uast.TypeReference {
		typ := c.childOr(native.FieldReceiver, 0)
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

// objectLiteral is an anonymous object expression. Its declaration converts
// to a class through its light class.
type objectLiteral struct {
	expr

	declaration uast.Lazy[uast.Class]
	body        uast.Lazy[uast.Expression]
}

func (o *objectLiteral) ElementKind() uast.ElementKind { return uast.KindObjectLiteral }

func (o *objectLiteral) Declaration() uast.Class {
	return o.declaration.Get(func() uast.Class {
		class, _ := uast.ConvertOpt[uast.Class](o.p.ctx, native.FirstChildOfKind(o.Origin(), native.KtObject), o)

		return class
	})
}

func (o *objectLiteral) Body() uast.Expression {
	return o.body.Get(func() uast.Expression {
		body := native.FirstChildOfKind(native.FirstChildOfKind(o.Origin(), native.KtObject), native.KtClassBody)

		return o.p.exprOrEmpty(body, o)
	})
}

func (o *objectLiteral) ChildElements() []uast.Element {
	out := make([]uast.Element, 0, 2)
	if class := o.Declaration(); class != nil {
		out = append(out, class)
	}

	return append(out, o.Body())
}

type callableReference struct {
	expr

	qualifier uast.Lazy[uast.Expression]
}

func (c *callableReference) ElementKind() uast.ElementKind { return uast.KindCallableReference }

func (c *callableReference) Qualifier() uast.Expression {
	return c.qualifier.Get(func() uast.Expression { return c.p.expr(c.Origin().Child(native.FieldReceiver), c) })
}

func (c *callableReference) CallableName() string {
	if selector := c.Origin().Child(native.FieldSelector); selector != nil {
		return unquoteIdentifier(selector.Text())
	}

	text := c.Origin().Text()
	if i := strings.LastIndex(text, "::"); i >= 0 {
		return unquoteIdentifier(text[i+2:])
	}

	return ""
}

func (c *callableReference) ChildElements() []uast.Element { return nonNil(exprElement(c.Qualifier())) }

type labeled struct {
	expr

	body uast.Lazy[uast.Expression]
}

func (l *labeled) ElementKind() uast.ElementKind { return uast.KindLabeled }

func (l *labeled) Label() string {
	if label := l.Origin().Child(native.FieldLabel); label != nil {
		return strings.TrimSuffix(strings.TrimSpace(label.Text()), "@")
	}

	before, _, _ := strings.Cut(l.Origin().Text(), "@")

	return strings.TrimSpace(before)
}

func (l *labeled) Body() uast.Expression {
	return l.body.Get(func() uast.Expression {
		if body := l.Origin().Child(native.FieldBody); body != nil {
			return l.p.exprOrEmpty(body, l)
		}

		children := l.Origin().Children()
		if len(children) == 0 {
			return uast.Empty
		}

		return l.p.exprOrEmpty(children[len(children)-1], l)
	})
}

func (l *labeled) ChildElements() []uast.Element { return []uast.Element{l.Body()} }

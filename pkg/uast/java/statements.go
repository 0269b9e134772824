package java

import (
	"strings"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

type ifExpression struct {
	expr

	ternary   bool
	condition uast.Lazy[uast.Expression]
	then      uast.Lazy[uast.Expression]
	otherwise uast.Lazy[uast.Expression]
}

func (i *ifExpression) ElementKind() uast.ElementKind { return uast.KindIf }

func (i *ifExpression) IsTernary() bool { return i.ternary }

func (i *ifExpression) Condition() uast.Expression {
	return i.condition.Get(func() uast.Expression { return i.p.exprOrEmpty(i.childOr(native.FieldCondition, 0), i) })
}

func (i *ifExpression) Then() uast.Expression {
	return i.then.Get(func() uast.Expression { return i.p.exprOrEmpty(i.childOr(native.FieldThen, 1), i) })
}

func (i *ifExpression) Else() uast.Expression {
	return i.otherwise.Get(func() uast.Expression { return i.p.expr(i.childOr(native.FieldElse, 2), i) })
}

func (i *ifExpression) ChildElements() []uast.Element {
	return nonNil(i.Condition(), i.Then(), exprElement(i.Else()))
}

type conditionalLoop struct {
	expr

	kind      uast.ElementKind
	condition uast.Lazy[uast.Expression]
	body      uast.Lazy[uast.Expression]
}

func (l *conditionalLoop) ElementKind() uast.ElementKind { return l.kind }

func (l *conditionalLoop) Condition() uast.Expression {
	return l.condition.Get(func() uast.Expression {
		return l.p.exprOrEmpty(l.Origin().Child(native.FieldCondition), l)
	})
}

func (l *conditionalLoop) Body() uast.Expression {
	return l.body.Get(func() uast.Expression { return l.p.exprOrEmpty(l.Origin().Child(native.FieldBody), l) })
}

func (l *conditionalLoop) ChildElements() []uast.Element {
	if l.kind == uast.KindDoWhile {
		return []uast.Element{l.Body(), l.Condition()}
	}

	return []uast.Element{l.Condition(), l.Body()}
}

type forLoop struct {
	expr

	declaration uast.Lazy[uast.Expression]
	condition   uast.Lazy[uast.Expression]
	update      uast.Lazy[uast.Expression]
	body        uast.Lazy[uast.Expression]
}

func (f *forLoop) ElementKind() uast.ElementKind { return uast.KindFor }

func (f *forLoop) Declaration() uast.Expression {
	return f.declaration.Get(func() uast.Expression { return f.p.expr(f.Origin().Child(native.FieldInit), f) })
}

func (f *forLoop) Condition() uast.Expression {
	return f.condition.Get(func() uast.Expression { return f.p.expr(f.Origin().Child(native.FieldCondition), f) })
}

func (f *forLoop) Update() uast.Expression {
	return f.update.Get(func() uast.Expression { return f.p.expr(f.Origin().Child(native.FieldUpdate), f) })
}

func (f *forLoop) Body() uast.Expression {
	return f.body.Get(func() uast.Expression { return f.p.exprOrEmpty(f.Origin().Child(native.FieldBody), f) })
}

func (f *forLoop) ChildElements() []uast.Element {
	return nonNil(exprElement(f.Declaration()), exprElement(f.Condition()), exprElement(f.Update()), f.Body())
}

type forEach struct {
	expr

	variable uast.Lazy[uast.Parameter]
	iterated uast.Lazy[uast.Expression]
	body     uast.Lazy[uast.Expression]
}

func (f *forEach) ElementKind() uast.ElementKind { return uast.KindForEach }

// Variable returns the loop variable. A loop written without a separate
// parameter node gets a parameter derived from the loop itself.
func (f *forEach) Variable() uast.Parameter {
	return f.variable.Get(func() uast.Parameter {
		n := f.Origin().Child(native.FieldLoopVar)
		if n == nil {
			n = native.NewSyntheticParameter(f.Origin(), f.Origin(), 0)
		}

		param, _ := uast.ConvertOpt[uast.Parameter](f.p.ctx, n, f)

		return param
	})
}

func (f *forEach) IteratedValue() uast.Expression {
	return f.iterated.Get(func() uast.Expression {
		value := f.Origin().Child(native.FieldValue)
		if value == nil {
			value = f.Origin().Child(native.FieldRange)
		}

		return f.p.exprOrEmpty(value, f)
	})
}

func (f *forEach) Body() uast.Expression {
	return f.body.Get(func() uast.Expression { return f.p.exprOrEmpty(f.Origin().Child(native.FieldBody), f) })
}

func (f *forEach) ChildElements() []uast.Element {
	out := make([]uast.Element, 0, 3)
	if v := f.Variable(); v != nil {
		out = append(out, v)
	}

	return append(out, f.IteratedValue(), f.Body())
}

type switchExpression struct {
	expr

	subject uast.Lazy[uast.Expression]
	clauses uast.Lazy[[]uast.SwitchClause]
}

func (s *switchExpression) ElementKind() uast.ElementKind { return uast.KindSwitch }

func (s *switchExpression) Subject() uast.Expression {
	return s.subject.Get(func() uast.Expression { return s.p.expr(s.Origin().Child(native.FieldCondition), s) })
}

func (s *switchExpression) Clauses() []uast.SwitchClause {
	return s.clauses.Get(func() []uast.SwitchClause {
		return uast.ConvertAll[uast.SwitchClause](s.p.ctx, native.ChildrenOfKind(s.Origin(), native.JavaSwitchCase), s)
	})
}

func (s *switchExpression) ChildElements() []uast.Element {
	return append(nonNil(exprElement(s.Subject())), uast.AsElements(s.Clauses())...)
}

// switchClause is a case group or rule. Its labels give the conditions and
// the remaining children form the body.
type switchClause struct {
	expr

	conditions uast.Lazy[[]uast.Expression]
	body       uast.Lazy[uast.Expression]
}

func newSwitchClause(p *Plugin, n native.Node, parent uast.Element) *switchClause {
	return &switchClause{expr: p.base(n, parent)}
}

func (s *switchClause) ElementKind() uast.ElementKind { return uast.KindSwitchClause }

func (s *switchClause) Conditions() []uast.Expression {
	return s.conditions.Get(func() []uast.Expression {
		var out []uast.Expression

		for _, label := range native.ChildrenOfKind(s.Origin(), native.JavaSwitchLabel) {
			out = append(out, s.p.exprs(label.Children(), s)...)
		}

		return out
	})
}

func (s *switchClause) Body() uast.Expression {
	return s.body.Get(func() uast.Expression {
		var statements []native.Node

		for _, child := range s.Origin().Children() {
			if child.Kind() != native.JavaSwitchLabel {
				statements = append(statements, child)
			}
		}

		list := &expressionList{expr: s.p.base(s.Origin(), s), kind: uast.ListStatements}
		list.expressions = s.p.exprs(statements, list)

		return list
	})
}

func (s *switchClause) ChildElements() []uast.Element {
	return append(uast.AsElements(s.Conditions()), s.Body())
}

// expressionList holds expressions with no native node of their own; it
// shares the origin of its owner.
type expressionList struct {
	expr

	kind        uast.ListKind
	expressions []uast.Expression
}

func (l *expressionList) ElementKind() uast.ElementKind { return uast.KindExpressionList }

func (l *expressionList) ListKind() uast.ListKind { return l.kind }

func (l *expressionList) Expressions() []uast.Expression { return l.expressions }

func (l *expressionList) ChildElements() []uast.Element { return uast.AsElements(l.expressions) }

type jump struct {
	expr

	kind  uast.ElementKind
	value uast.Lazy[uast.Expression]
}

func (j *jump) ElementKind() uast.ElementKind { return j.kind }

func (j *jump) Value() uast.Expression {
	return j.value.Get(func() uast.Expression {
		if j.kind != uast.KindReturn && j.kind != uast.KindThrow {
			return nil
		}

		return j.p.expr(j.childOr(native.FieldValue, 0), j)
	})
}

func (j *jump) Label() string { return labelOf(j.Origin()) }

func (j *jump) ChildElements() []uast.Element { return nonNil(exprElement(j.Value())) }

// labelOf reads the label field, or the first identifier child.
func labelOf(n native.Node) string {
	if label := n.Child(native.FieldLabel); label != nil {
		return strings.TrimSpace(label.Text())
	}

	if id := native.FirstChildOfKind(n, native.KindIdentifier); id != nil {
		return strings.TrimSpace(id.Text())
	}

	return ""
}

type tryExpression struct {
	expr

	tryBlock     uast.Lazy[uast.Expression]
	catches      uast.Lazy[[]uast.CatchClause]
	finallyBlock uast.Lazy[uast.Expression]
}

func (t *tryExpression) ElementKind() uast.ElementKind { return uast.KindTry }

func (t *tryExpression) TryBlock() uast.Expression {
	return t.tryBlock.Get(func() uast.Expression {
		body := t.Origin().Child(native.FieldBody)
		if body == nil {
			body = native.FirstChildOfKind(t.Origin(), native.JavaBlock)
		}

		return t.p.exprOrEmpty(body, t)
	})
}

func (t *tryExpression) CatchClauses() []uast.CatchClause {
	return t.catches.Get(func() []uast.CatchClause {
		return uast.ConvertAll[uast.CatchClause](t.p.ctx, native.ChildrenOfKind(t.Origin(), native.JavaCatch), t)
	})
}

func (t *tryExpression) FinallyBlock() uast.Expression {
	return t.finallyBlock.Get(func() uast.Expression {
		finally := native.FirstChildOfKind(t.Origin(), native.JavaFinally)
		if finally == nil {
			return nil
		}

		return t.p.expr(finally, t)
	})
}

func (t *tryExpression) ChildElements() []uast.Element {
	out := append([]uast.Element{t.TryBlock()}, uast.AsElements(t.CatchClauses())...)

	return append(out, nonNil(exprElement(t.FinallyBlock()))...)
}

type catchClause struct {
	uast.Base

	p          *Plugin
	parameters uast.Lazy[[]uast.Parameter]
	body       uast.Lazy[uast.Expression]
}

func newCatchClause(p *Plugin, n native.Node, parent uast.Element) *catchClause {
	return &catchClause{Base: uast.NewBase(n, parent, p), p: p}
}

func (c *catchClause) ElementKind() uast.ElementKind { return uast.KindCatchClause }

func (c *catchClause) Parameters() []uast.Parameter {
	return c.parameters.Get(func() []uast.Parameter {
		return uast.ConvertAll[uast.Parameter](c.p.ctx, native.ChildrenOfKind(c.Origin(), native.JavaParameter), c)
	})
}

func (c *catchClause) Body() uast.Expression {
	return c.body.Get(func() uast.Expression {
		body := c.Origin().Child(native.FieldBody)
		if body == nil {
			body = native.FirstChildOfKind(c.Origin(), native.JavaBlock)
		}

		return c.p.exprOrEmpty(body, c)
	})
}

func (c *catchClause) ChildElements() []uast.Element {
	return append(uast.AsElements(c.Parameters()), c.Body())
}

type lambda struct {
	expr

	parameters uast.Lazy[[]uast.Parameter]
	body       uast.Lazy[uast.Expression]
}

func (l *lambda) ElementKind() uast.ElementKind { return uast.KindLambda }

// Parameters handles both the parenthesized form and the single bare
// identifier form.
func (l *lambda) Parameters() []uast.Parameter {
	return l.parameters.Get(func() []uast.Parameter {
		params := l.Origin().Child(native.FieldParameters)
		if params == nil {
			return nil
		}

		var nodes []native.Node

		switch params.Kind() {
		case native.JavaParameter:
			nodes = []native.Node{params}
		case native.KindIdentifier:
			nodes = []native.Node{native.NewSyntheticParameter(params, l.Origin(), 0)}
		default:
			for i, child := range params.Children() {
				if child.Kind() == native.KindIdentifier {
					nodes = append(nodes, native.NewSyntheticParameter(child, l.Origin(), i))
				} else if child.Kind() == native.JavaParameter {
					nodes = append(nodes, child)
				}
			}
		}

		return uast.ConvertAll[uast.Parameter](l.p.ctx, nodes, l)
	})
}

func (l *lambda) Body() uast.Expression {
	return l.body.Get(func() uast.Expression { return l.p.exprOrEmpty(l.Origin().Child(native.FieldBody), l) })
}

func (l *lambda) ChildElements() []uast.Element {
	return append(uast.AsElements(l.Parameters()), l.Body())
}

type labeled struct {
	expr

	body uast.Lazy[uast.Expression]
}

func (l *labeled) ElementKind() uast.ElementKind { return uast.KindLabeled }

func (l *labeled) Label() string { return labelOf(l.Origin()) }

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

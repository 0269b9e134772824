package kotlin

import (
	"strings"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// ifExpression is never ternary: Kotlin has no conditional operator.
type ifExpression struct {
	expr

	condition uast.Lazy[uast.Expression]
	then      uast.Lazy[uast.Expression]
	otherwise uast.Lazy[uast.Expression]
}

func (i *ifExpression) ElementKind() uast.ElementKind { return uast.KindIf }

func (i *ifExpression) IsTernary() bool { return false }

func (i *ifExpression) Condition() uast.Expression {
	return i.condition.Get(func() uast.Expression {
		return i.p.exprOrEmpty(i.Origin().Child(native.FieldCondition), i)
	})
}

func (i *ifExpression) Then() uast.Expression {
	return i.then.Get(func() uast.Expression { return i.p.expr(i.Origin().Child(native.FieldThen), i) })
}

func (i *ifExpression) Else() uast.Expression {
	return i.otherwise.Get(func() uast.Expression { return i.p.expr(i.Origin().Child(native.FieldElse), i) })
}

func (i *ifExpression) ChildElements() []uast.Element {
	return nonNil(i.Condition(), exprElement(i.Then()), exprElement(i.Else()))
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

// forEach is the Kotlin for loop, which always iterates a range or
// collection.
type forEach struct {
	expr

	variable uast.Lazy[uast.Parameter]
	iterated uast.Lazy[uast.Expression]
	body     uast.Lazy[uast.Expression]
}

func (f *forEach) ElementKind() uast.ElementKind { return uast.KindForEach }

// Variable returns the loop parameter. A loop whose parameter is missing or
// destructured gets an unresolved parameter standing for the loop itself.
func (f *forEach) Variable() uast.Parameter {
	return f.variable.Get(func() uast.Parameter {
		var synthetic *native.SyntheticParameter

		if param := f.Origin().Child(native.FieldLoopVar); param != nil && param.Kind() == native.KtParameter {
			synthetic = native.NewSyntheticParameter(param, f.Origin(), 0)
		} else {
			synthetic = native.NewSyntheticParameter(nil, f.Origin(), 0)
		}

		param, _ := NewVariable(f.p, synthetic, f).(uast.Parameter)

		return param
	})
}

func (f *forEach) IteratedValue() uast.Expression {
	return f.iterated.Get(func() uast.Expression { return f.p.exprOrEmpty(f.Origin().Child(native.FieldRange), f) })
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

// when is a switch whose subject is optional.
type when struct {
	expr

	subject uast.Lazy[uast.Expression]
	clauses uast.Lazy[[]uast.SwitchClause]
}

func (w *when) ElementKind() uast.ElementKind { return uast.KindSwitch }

func (w *when) Subject() uast.Expression {
	return w.subject.Get(func() uast.Expression { return w.p.expr(w.Origin().Child(native.FieldValue), w) })
}

func (w *when) Clauses() []uast.SwitchClause {
	return w.clauses.Get(func() []uast.SwitchClause {
		return uast.ConvertAll[uast.SwitchClause](w.p.ctx, native.ChildrenOfKind(w.Origin(), native.KtWhenEntry), w)
	})
}

func (w *when) ChildElements() []uast.Element {
	return append(nonNil(exprElement(w.Subject())), uast.AsElements(w.Clauses())...)
}

// whenEntry is one branch of a when. Every child except the body is a
// condition; an else branch has none.
type whenEntry struct {
	expr

	conditions uast.Lazy[[]uast.Expression]
	body       uast.Lazy[uast.Expression]
}

func (w *whenEntry) ElementKind() uast.ElementKind { return uast.KindSwitchClause }

func (w *whenEntry) Conditions() []uast.Expression {
	return w.conditions.Get(func() []uast.Expression {
		body := w.Origin().Child(native.FieldBody)

		var nodes []native.Node

		for _, child := range w.Origin().Children() {
			if body != nil && native.Same(child, body) {
				continue
			}

			nodes = append(nodes, child)
		}

		return w.p.exprs(nodes, w)
	})
}

// Body returns the branch body as a when-entries list sharing the origin of
// the entry.
func (w *whenEntry) Body() uast.Expression {
	return w.body.Get(func() uast.Expression {
		list := &expressionList{expr: w.p.base(w.Origin(), w), kind: uast.ListWhenEntries}
		if body := w.p.expr(w.Origin().Child(native.FieldBody), list); body != nil {
			list.expressions = []uast.Expression{body}
		}

		return list
	})
}

func (w *whenEntry) ChildElements() []uast.Element {
	return append(uast.AsElements(w.Conditions()), w.Body())
}

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

		return j.p.expr(j.Origin().Child(native.FieldValue), j)
	})
}

// Label returns the target label of return@label, break@label and
// continue@label.
func (j *jump) Label() string {
	if label := j.Origin().Child(native.FieldLabel); label != nil {
		return strings.TrimPrefix(strings.TrimSpace(label.Text()), "@")
	}

	return ""
}

func (j *jump) ChildElements() []uast.Element { return nonNil(exprElement(j.Value())) }

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
			body = native.FirstChildOfKind(t.Origin(), native.KtBlock)
		}

		return t.p.exprOrEmpty(body, t)
	})
}

func (t *tryExpression) CatchClauses() []uast.CatchClause {
	return t.catches.Get(func() []uast.CatchClause {
		return uast.ConvertAll[uast.CatchClause](t.p.ctx, native.ChildrenOfKind(t.Origin(), native.KtCatch), t)
	})
}

func (t *tryExpression) FinallyBlock() uast.Expression {
	return t.finallyBlock.Get(func() uast.Expression {
		finally := native.FirstChildOfKind(t.Origin(), native.KtFinally)
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

var _ uast.CatchClause = (*catchClause)(nil)

func newCatchClause(p *Plugin, n native.Node, parent uast.Element) *catchClause {
	return &catchClause{Base: uast.NewBase(n, parent, p), p: p}
}

func (c *catchClause) ElementKind() uast.ElementKind { return uast.KindCatchClause }

func (c *catchClause) Parameters() []uast.Parameter {
	return c.parameters.Get(func() []uast.Parameter {
		list := c.Origin().Child(native.FieldParameters)
		if list == nil {
			list = native.FirstChildOfKind(c.Origin(), native.KtParameterList)
		}

		return parametersOf(c.p, list, c)
	})
}

func (c *catchClause) Body() uast.Expression {
	return c.body.Get(func() uast.Expression {
		body := c.Origin().Child(native.FieldBody)
		if body == nil {
			body = native.FirstChildOfKind(c.Origin(), native.KtBlock)
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

func (l *lambda) Parameters() []uast.Parameter {
	return l.parameters.Get(func() []uast.Parameter {
		list := l.Origin().Child(native.FieldParameters)
		if list == nil {
			list = native.FirstChildOfKind(l.Origin(), native.KtParameterList)
		}

		return parametersOf(l.p, list, l)
	})
}

func (l *lambda) Body() uast.Expression {
	return l.body.Get(func() uast.Expression {
		body := l.Origin().Child(native.FieldBody)
		if body == nil {
			body = native.FirstChildOfKind(l.Origin(), native.KtBlock)
		}

		return l.p.exprOrEmpty(body, l)
	})
}

func (l *lambda) ChildElements() []uast.Element {
	return append(uast.AsElements(l.Parameters()), l.Body())
}

package syntax

import (
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// reshaper rewrites a freshly built element whose grammar shape differs from
// the native shape the frontends expect. It returns the element to keep,
// which may be e itself.
type reshaper func(t *native.Tree, e *native.Element) *native.Element

var reshapers = map[string]reshaper{
	"qualified_call":  reshapeQualifiedCall,
	"catch_parameter": reshapeCatchParameter,
}

// reshapeQualifiedCall turns call(a.b, args) into a.(b(args)), the form in
// which a qualified call carries its receiver.
func reshapeQualifiedCall(t *native.Tree, e *native.Element) *native.Element {
	callee, ok := e.Child(native.FieldCallee).(*native.Element)
	if !ok || (callee.Kind() != native.KtDotQualified && callee.Kind() != native.KtSafeQualified) {
		return e
	}

	receiver, okReceiver := callee.Child(native.FieldReceiver).(*native.Element)
	selector, okSelector := callee.Child(native.FieldSelector).(*native.Element)

	if !okReceiver || !okSelector {
		return e
	}

	span := e.Span()
	call := t.NewAt(native.KtCall, native.Span{Start: selector.Span().Start, End: span.End}).
		SetGrammar(e.Grammar()).
		Field(native.FieldCallee, selector)

	for _, child := range e.Children() {
		arg, isElement := child.(*native.Element)
		if !isElement || arg == callee {
			continue
		}

		if arg.Kind() == native.KtValueArgumentList {
			call.Field(native.FieldArguments, arg)

			continue
		}

		call.Add(arg)
	}

	return t.NewAt(callee.Kind(), span).
		SetGrammar(callee.Grammar()).
		Field(native.FieldReceiver, receiver).
		Field(native.FieldSelector, call)
}

// reshapeCatchParameter groups the bare name and type of a catch block into a
// one-element parameter list.
func reshapeCatchParameter(t *native.Tree, e *native.Element) *native.Element {
	var name, typ, body *native.Element

	for _, child := range e.Children() {
		el, ok := child.(*native.Element)
		if !ok {
			continue
		}

		switch {
		case el.Kind() == native.KtSimpleName && name == nil:
			name = el
		case el.Kind() == native.KtTypeReference && typ == nil:
			typ = el
		case el.Kind() == native.KtBlock && body == nil:
			body = el
		}
	}

	if name == nil {
		return e
	}

	paramSpan := name.Span()
	if typ != nil {
		paramSpan.End = typ.Span().End
	}

	param := t.NewAt(native.KtParameter, paramSpan).
		Field(native.FieldName, name).
		Field(native.FieldType, typ)

	out := t.NewAt(native.KtCatch, e.Span()).
		SetGrammar(e.Grammar()).
		Field(native.FieldParameters, t.NewAt(native.KtParameterList, paramSpan).Add(param))

	return out.Field(native.FieldBody, body)
}

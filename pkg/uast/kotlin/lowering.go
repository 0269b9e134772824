package kotlin

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// Lowered construct names reported to the observer.
const (
	LoweringStringTemplate = "string_template"
	LoweringDestructuring  = "destructuring"
	LoweringParameterList  = "parameter_list"
)

var templateEntryKinds = []native.Kind{
	native.KtLiteralEntry, native.KtEscapeEntry, native.KtSimpleEntry, native.KtBlockEntry,
}

// lowerStringTemplate turns a string template into string literals joined by
// a left-associative chain of "+" nodes: [a, b, c] becomes (a + b) + c. An
// empty template is the empty string literal. Every node of the chain shares
// the template as its origin.
func (p *Plugin) lowerStringTemplate(n native.Node, parent uast.Element) uast.Expression {
	entries := native.ChildrenOfKind(n, templateEntryKinds...)

	p.ctx.Observer().ObserveLowering(LoweringStringTemplate, len(entries))

	switch len(entries) {
	case 0:
		return p.stringLiteral(n, parent, "")
	case 1:
		return p.templateEntry(entries[0], parent)
	default:
		return p.concatenation(n, parent, entries, len(entries)-1)
	}
}

// concatenation builds the chain for entries[0..last]. Every link, inner
// ones included, is parented to the template's parent; entries hang off the
// link that holds them.
func (p *Plugin) concatenation(n native.Node, parent uast.Element, entries []native.Node, last int) uast.Expression {
	link := &concat{expr: p.base(n, parent)}

	if last == 1 {
		link.left = p.templateEntry(entries[0], link)
	} else {
		link.left = p.concatenation(n, parent, entries, last-1)
	}

	link.right = p.templateEntry(entries[last], link)

	return link
}

// templateEntry converts one template entry: literal text and escapes become
// string literals, interpolations become their expression.
func (p *Plugin) templateEntry(entry native.Node, parent uast.Element) uast.Expression {
	switch entry.Kind() {
	case native.KtLiteralEntry:
		return p.stringLiteral(entry, parent, entry.Text())
	case native.KtEscapeEntry:
		return p.stringLiteral(entry, parent, unescape(entry.Text()))
	case native.KtSimpleEntry, native.KtBlockEntry:
		value := entry.Child(native.FieldValue)
		if value == nil {
			if children := entry.Children(); len(children) > 0 {
				value = children[0]
			}
		}

		return p.exprOrEmpty(value, parent)
	default:
		return uast.Empty
	}
}

var escapes = map[string]string{
	`\t`: "\t", `\b`: "\b", `\n`: "\n", `\r`: "\r",
	`\'`: "'", `\"`: `"`, `\\`: `\`, `\$`: "$",
}

// unescape decodes one escape entry such as \n or A.
func unescape(text string) string {
	if decoded, ok := escapes[text]; ok {
		return decoded
	}

	if strings.HasPrefix(text, `\u`) && len(text) == 6 {
		var r rune
		if _, err := fmt.Sscanf(text[2:], "%04x", &r); err == nil {
			return string(r)
		}
	}

	return text
}

// concat is one "+" link of a lowered string template.
type concat struct {
	expr

	left  uast.Expression
	right uast.Expression
}

func (c *concat) ElementKind() uast.ElementKind { return uast.KindBinary }

func (c *concat) Left() uast.Expression { return c.left }

func (c *concat) Right() uast.Expression { return c.right }

func (c *concat) Operator() uast.Operator { return uast.OperatorPlus }

func (c *concat) ChildElements() []uast.Element { return []uast.Element{c.left, c.right} }

// TempName returns the name of the hidden variable a destructuring
// declaration is lowered through. It is derived from the declaration
// identity, so repeated lowering of one declaration agrees on it.
func TempName(decl native.Node) string {
	return fmt.Sprintf("var%x", xxhash.Sum64String(native.KeyOf(decl).String()))
}

// lowerDestructuring turns val (a, b) = rhs into the declarations
// tmp = rhs, a = tmp.component1(), b = tmp.component2(), in that order. The
// variables are parented to the enclosing element, not to the declarations
// expression holding them.
func (p *Plugin) lowerDestructuring(n native.Node, parent uast.Element) uast.Expression {
	entries := native.ChildrenOfKind(n, native.KtDestructuringEntry)

	tmpName := TempName(n)
	tmp := native.NewSyntheticVariable(tmpName, n, n.Parent(), n.Child(native.FieldInitializer))

	variables := make([]uast.Variable, 0, len(entries)+1)
	if v := NewVariable(p, tmp, parent); v != nil {
		variables = append(variables, v)
	}

	synthetic := native.NewTree(n.File(), native.Kotlin, nil)

	for i, entry := range entries {
		init := componentCall(synthetic, entry, tmpName, i+1)

		component := native.NewSyntheticVariable(native.NameOf(entry), entry, tmp, init).
			WithType(entry.Child(native.FieldType))
		init.SetParent(component)

		if v := NewVariable(p, component, parent); v != nil {
			variables = append(variables, v)
		}
	}

	p.ctx.Observer().ObserveLowering(LoweringDestructuring, len(variables))

	return &declarations{expr: p.base(n, parent), variables: variables}
}

// componentCall builds the native expression tmp.componentI() for entry.
// The nodes are anchored on the entry so each has its own identity.
func componentCall(t *native.Tree, entry native.Node, tmpName string, index int) *native.Element {
	anchor := entry.Span()
	method := fmt.Sprintf("component%d", index)

	callee := t.NewAnchored(native.KtSimpleName, method, anchor, 0)
	args := t.NewAnchored(native.KtValueArgumentList, "()", anchor, 1)
	selector := t.NewAnchored(native.KtCall, method+"()", anchor, 2).
		Field(native.FieldCallee, callee).
		Field(native.FieldArguments, args)
	receiver := t.NewAnchored(native.KtSimpleName, tmpName, anchor, 3)

	return t.NewAnchored(native.KtDotQualified, tmpName+"."+method+"()", anchor, 4).
		Field(native.FieldReceiver, receiver).
		Field(native.FieldSelector, selector)
}

// localDeclaration wraps a local property in a declarations expression of
// one synthetic local variable parented to the enclosing element.
func (p *Plugin) localDeclaration(n native.Node, parent uast.Element) uast.Expression {
	var nativeParent native.Node
	if parent != nil {
		nativeParent = parent.Origin()
	}

	local := native.NewSyntheticVariable(native.NameOf(n), n, nativeParent, n.Child(native.FieldInitializer)).
		WithType(n.Child(native.FieldType))

	decls := &declarations{expr: p.base(n, parent)}
	if v := NewVariable(p, local, parent); v != nil {
		decls.variables = []uast.Variable{v}
	}

	return decls
}

// parameterDeclarations turns a parameter list into a declarations
// expression of synthetic parameters owned by it.
func (p *Plugin) parameterDeclarations(n native.Node, parent uast.Element) uast.Element {
	decls := &declarations{expr: p.base(n, parent)}

	for _, param := range parametersOf(p, n, decls) {
		decls.variables = append(decls.variables, param)
	}

	p.ctx.Observer().ObserveLowering(LoweringParameterList, len(decls.variables))

	return decls
}

// parameter converts a single KtParameter through the synthetic parameter
// standing for it at its index in the enclosing list.
func (p *Plugin) parameter(n native.Node, parent uast.Element) uast.Element {
	list := n.Parent()

	index := 0
	for i, sibling := range native.ChildrenOfKind(list, native.KtParameter) {
		if native.Same(sibling, n) {
			index = i

			break
		}
	}

	v := NewVariable(p, native.NewSyntheticParameter(n, list, index), parent)
	if v == nil {
		return nil
	}

	return v
}

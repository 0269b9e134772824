package syntax

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/uastkit/pkg/safeconv"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// unmapped is the rule of grammar types a kind map does not mention. Such
// nodes become KindUnknown elements that keep their named children.
var unmapped = &Rule{}

// slot is one child of a node after flattening, with the grammar type it was
// reached from.
type slot struct {
	node   sitter.Node
	parent string
}

// builder turns one tree-sitter tree into a native tree.
type builder struct {
	km   *KindMap
	tree *native.Tree
}

func (b *builder) span(n sitter.Node) native.Span {
	start := n.StartPoint()

	return native.Span{
		Start:  safeconv.MustUintToInt(uint(n.StartByte())),
		End:    safeconv.MustUintToInt(uint(n.EndByte())),
		Line:   safeconv.MustUintToInt(uint(start.Row)) + 1,
		Column: safeconv.MustUintToInt(uint(start.Column)) + 1,
	}
}

// root builds the element for the root node. A root that does not map to a
// single element is held by an unknown container.
func (b *builder) root(n sitter.Node) *native.Element {
	elems := b.build(n, "")
	if len(elems) == 1 {
		return elems[0]
	}

	return b.tree.NewAt(native.KindUnknown, b.span(n)).SetGrammar(n.Type()).Add(elems...)
}

// expand lists the children of n, named and anonymous, splicing in the
// children of flattened nodes and dropping skipped ones.
func (b *builder) expand(n sitter.Node, typ string) []slot {
	var out []slot

	for idx := range n.ChildCount() {
		child := n.Child(idx)
		if child.IsNull() {
			continue
		}

		if child.IsNamed() {
			if rule := b.km.Lookup(child.Type(), typ); rule != nil {
				if rule.Skip {
					continue
				}

				if rule.Flatten {
					out = append(out, b.expand(child, child.Type())...)

					continue
				}
			}
		}

		out = append(out, slot{node: child, parent: typ})
	}

	return out
}

// build converts n, reached from the grammar type parent, into zero or more
// native elements.
func (b *builder) build(n sitter.Node, parent string) []*native.Element {
	typ := n.Type()

	rule := b.km.Lookup(typ, parent)
	if rule == nil {
		rule = unmapped
	}

	if rule.Skip {
		return nil
	}

	slots := b.expand(n, typ)

	if rule.Hoist || rule.Flatten {
		var out []*native.Element

		for _, s := range slots {
			if s.node.IsNamed() {
				out = append(out, b.build(s.node, s.parent)...)
			}
		}

		return out
	}

	span := b.span(n)
	e := b.tree.NewAt(rule.kindFor(n), span).SetGrammar(typ)
	built := make([][]*native.Element, len(slots))

	if !rule.Leaf {
		holder := e
		if rule.nest != native.KindUnknown {
			holder = b.tree.NewAt(rule.nest, span).SetGrammar(typ)
			e.Add(holder)
		}

		for i, s := range slots {
			if !s.node.IsNamed() {
				continue
			}

			built[i] = b.build(s.node, s.parent)
			holder.Add(built[i]...)
		}
	}

	for _, sel := range rule.Fields {
		if target := b.pick(n, sel, slots, built); target != nil {
			e.Tag(sel.As, target)
		}
	}

	if rule.Reshape != "" {
		e = reshapers[rule.Reshape](b.tree, e)
	}

	if rule.wrap != native.KindUnknown {
		e = b.tree.NewAt(rule.wrap, span).SetGrammar(typ).Field(native.FieldValue, e)
	}

	return []*native.Element{e}
}

// pick resolves a selector against the expanded children of n.
func (b *builder) pick(n sitter.Node, sel Selector, slots []slot, built [][]*native.Element) *native.Element {
	switch {
	case sel.Field != "":
		target := n.ChildByFieldName(sel.Field)
		if target.IsNull() {
			return nil
		}

		for i, s := range slots {
			if s.node.StartByte() != target.StartByte() || s.node.EndByte() != target.EndByte() || s.node.Type() != target.Type() {
				continue
			}

			if !s.node.IsNamed() {
				return b.token(s.node)
			}

			return first(built[i])
		}
	case sel.Index != nil:
		pos := 0

		for i, s := range slots {
			if !s.node.IsNamed() {
				continue
			}

			if pos == *sel.Index {
				return first(built[i])
			}

			pos++
		}
	case sel.Type != "":
		for i, s := range slots {
			if s.node.IsNamed() && s.node.Type() == sel.Type {
				return first(built[i])
			}
		}
	case sel.After != "":
		seen := false

		for i, s := range slots {
			switch {
			case !s.node.IsNamed() && s.node.Type() == sel.After:
				seen = true
			case seen && s.node.IsNamed():
				return first(built[i])
			}
		}
	case sel.Token:
		return b.operator(slots)
	}

	return nil
}

// operator returns the first anonymous token that follows a named child, or
// the leading token of prefix forms.
func (b *builder) operator(slots []slot) *native.Element {
	var leading *native.Element

	named := false

	for _, s := range slots {
		if s.node.IsNamed() {
			named = true

			continue
		}

		if named {
			return b.token(s.node)
		}

		if leading == nil {
			leading = b.token(s.node)
		}
	}

	return leading
}

func (b *builder) token(n sitter.Node) *native.Element {
	return b.tree.NewAt(native.KindUnknown, b.span(n)).SetGrammar(n.Type())
}

func first(elems []*native.Element) *native.Element {
	if len(elems) == 0 {
		return nil
	}

	return elems[0]
}

// kindFor returns the kind of the first matching variant, or the rule kind.
func (r *Rule) kindFor(n sitter.Node) native.Kind {
	for i := range r.Variants {
		if r.Variants[i].matches(n) {
			return r.Variants[i].kind
		}
	}

	return r.kind
}

func (v *Variant) matches(n sitter.Node) bool {
	switch {
	case v.Leading:
		if n.ChildCount() == 0 {
			return false
		}

		return !n.Child(0).IsNamed()
	case v.Child != "":
		for idx := range n.NamedChildCount() {
			child := n.NamedChild(idx)
			if child.Type() == v.Child && hasToken(child, v.Token) {
				return true
			}
		}

		return false
	case v.Has != "":
		for idx := range n.NamedChildCount() {
			if n.NamedChild(idx).Type() == v.Has {
				return true
			}
		}

		return false
	case v.Token != "":
		return hasToken(n, v.Token)
	}

	return false
}

func hasToken(n sitter.Node, token string) bool {
	for idx := range n.ChildCount() {
		child := n.Child(idx)
		if !child.IsNamed() && child.Type() == token {
			return true
		}
	}

	return false
}

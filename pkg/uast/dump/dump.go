// Package dump turns uniform trees into serializable snapshots.
package dump

import (
	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// Node is the snapshot of one uniform element.
type Node struct {
	Span     *native.Span `json:"span,omitempty" yaml:"span,omitempty"`
	Kind     string       `json:"kind" yaml:"kind"`
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Value    string       `json:"value,omitempty" yaml:"value,omitempty"`
	Native   string       `json:"native,omitempty" yaml:"native,omitempty"`
	Language string       `json:"language,omitempty" yaml:"language,omitempty"`
	Children []*Node      `json:"children,omitempty" yaml:"children,omitempty"`
}

// Document is a snapshot of one converted file.
type Document struct {
	Root           *Node  `json:"root" yaml:"root"`
	File           string `json:"file" yaml:"file"`
	KindSetVersion int    `json:"kind_set_version" yaml:"kind_set_version"`
}

// NewDocument snapshots the tree rooted at root.
func NewDocument(file string, root uast.Element) *Document {
	return &Document{
		File:           file,
		KindSetVersion: native.KindSetVersion,
		Root:           Snapshot(root),
	}
}

// Snapshot captures e and its descendants. Lazy children are materialized.
func Snapshot(e uast.Element) *Node {
	if e == nil {
		return nil
	}

	node := &Node{
		Kind:  e.ElementKind().String(),
		Name:  nameOf(e),
		Value: valueOf(e),
	}

	if origin := e.Origin(); origin != nil {
		node.Native = origin.Kind().String()
		node.Language = string(origin.Language())

		if span := origin.Span(); !span.Synthetic() {
			node.Span = &span
		}
	}

	for _, child := range e.ChildElements() {
		if child == nil {
			continue
		}

		node.Children = append(node.Children, Snapshot(child))
	}

	return node
}

// Count returns the number of nodes in the snapshot.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}

	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}

	return total
}

func nameOf(e uast.Element) string {
	switch el := e.(type) {
	case uast.Class:
		return el.QualifiedName()
	case uast.Named:
		return el.Name()
	case uast.File:
		return el.Path()
	case uast.Annotation:
		return el.QualifiedName()
	}

	return ""
}

func valueOf(e uast.Element) string {
	switch el := e.(type) {
	case uast.LiteralExpression:
		return el.Value()
	case uast.SimpleReference:
		return el.Identifier()
	case uast.Call:
		return el.MethodName()
	case uast.BinaryExpression:
		return string(el.Operator())
	case uast.BinaryWithType:
		return string(el.Operator())
	case uast.UnaryExpression:
		return string(el.Operator())
	case uast.TypeReference:
		return el.TypeName()
	case uast.JumpExpression:
		return el.Label()
	case uast.ExpressionList:
		return string(el.ListKind())
	}

	return ""
}

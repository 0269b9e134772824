// Package native defines the facade through which the conversion core sees
// language-specific syntax trees: a closed kind enumeration, the Node
// interface, stable identity keys, light elements, synthetic declarations and
// the call resolution oracle.
package native

import "fmt"

// Well-known field names used by the frontends when reading structural children.
const (
	FieldName        = "name"
	FieldBody        = "body"
	FieldType        = "type"
	FieldValue       = "value"
	FieldInitializer = "initializer"
	FieldParameters  = "parameters"
	FieldArguments   = "arguments"
	FieldReceiver    = "receiver"
	FieldSelector    = "selector"
	FieldCallee      = "callee"
	FieldLeft        = "left"
	FieldRight       = "right"
	FieldOperator    = "operator"
	FieldOperand     = "operand"
	FieldCondition   = "condition"
	FieldThen        = "then"
	FieldElse        = "else"
	FieldRange       = "range"
	FieldLoopVar     = "loop_parameter"
	FieldLabel       = "label"
	FieldAnnotations = "annotations"
	FieldFinally     = "finally"
	FieldIndex       = "index"
	FieldEntries     = "entries"
	FieldInit        = "init"
	FieldUpdate      = "update"
)

// Span is the source range of a node. Offsets are bytes; Line and Column are
// 1-based and describe the start of the node. Nodes with no source counterpart
// carry negative offsets.
type Span struct {
	Start  int `json:"start" yaml:"start"`
	End    int `json:"end" yaml:"end"`
	Line   int `json:"line,omitempty" yaml:"line,omitempty"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// Synthetic reports whether the span belongs to a node with no source text.
func (s Span) Synthetic() bool {
	return s.Start < 0
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Node is a language-specific syntax node as exposed by a native frontend.
type Node interface {
	Kind() Kind
	Language() Language
	// Parent returns the structural parent, or nil for the root.
	Parent() Node
	Children() []Node
	// Child returns the child stored under the given field name, or nil.
	Child(field string) Node
	Text() string
	File() string
	Span() Span
}

// Named is implemented by nodes that know their declared name without a
// name child (synthetic declarations, light elements).
type Named interface {
	Name() string
}

// Wrapper is implemented by values that present another node through the
// Node interface, such as uniform declarations.
type Wrapper interface {
	Unwrap() Node
}

// Unwrap strips every wrapper layer and returns the innermost native node.
func Unwrap(n Node) Node {
	for n != nil {
		w, ok := n.(Wrapper)
		if !ok {
			return n
		}

		inner := w.Unwrap()
		if inner == nil {
			return n
		}

		n = inner
	}

	return n
}

// Key is the stable identity of a native node.
type Key struct {
	File     string
	Start    int
	End      int
	Kind     Kind
	Language Language
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%s[%d:%d]", k.Kind, k.File, k.Start, k.End)
}

// KeyOf returns the identity key of n. Wrappers are unwrapped first so that a
// node and any wrapper around it share one key.
func KeyOf(n Node) Key {
	n = Unwrap(n)
	if n == nil {
		return Key{}
	}

	span := n.Span()

	return Key{
		File:     n.File(),
		Start:    span.Start,
		End:      span.End,
		Kind:     n.Kind(),
		Language: n.Language(),
	}
}

// Same reports whether a and b denote the same native node.
func Same(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return KeyOf(a) == KeyOf(b)
}

// NameOf returns the declared name of n, looking at Named first and then at
// the name field.
func NameOf(n Node) string {
	if n == nil {
		return ""
	}

	if named, ok := n.(Named); ok {
		return named.Name()
	}

	if name := n.Child(FieldName); name != nil {
		return name.Text()
	}

	return ""
}

// ChildrenOfKind returns the direct children of n with one of the given kinds.
func ChildrenOfKind(n Node, kinds ...Kind) []Node {
	if n == nil {
		return nil
	}

	var out []Node

	for _, child := range n.Children() {
		for _, kind := range kinds {
			if child.Kind() == kind {
				out = append(out, child)

				break
			}
		}
	}

	return out
}

// FirstChildOfKind returns the first direct child of n with the given kind.
func FirstChildOfKind(n Node, kind Kind) Node {
	if n == nil {
		return nil
	}

	for _, child := range n.Children() {
		if child.Kind() == kind {
			return child
		}
	}

	return nil
}

// Ancestor returns the nearest strict ancestor of n with the given kind.
func Ancestor(n Node, kinds ...Kind) Node {
	if n == nil {
		return nil
	}

	for p := n.Parent(); p != nil; p = p.Parent() {
		for _, kind := range kinds {
			if p.Kind() == kind {
				return p
			}
		}
	}

	return nil
}

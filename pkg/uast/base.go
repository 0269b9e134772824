package uast

import (
	"sync"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// Base carries the three fields every element has. Frontend elements embed it.
type Base struct {
	origin native.Node
	parent Element
	plugin Plugin
}

// NewBase returns a Base for origin. Wrapped origins are unwrapped, so an
// element always holds exactly one layer of wrapping.
func NewBase(origin native.Node, parent Element, plugin Plugin) Base {
	return Base{
		origin: native.Unwrap(origin),
		parent: parent,
		plugin: plugin,
	}
}

// Origin returns the wrapped native node.
func (b *Base) Origin() native.Node { return b.origin }

// ContainingElement returns the uniform parent.
func (b *Base) ContainingElement() Element { return b.parent }

// Plugin returns the owning frontend.
func (b *Base) Plugin() Plugin { return b.plugin }

// DeclarationBase is Base for declarations. It exposes the origin through
// the native facade so the declaration can be passed back into conversion.
type DeclarationBase struct {
	native.Node
	Base
}

// NewDeclarationBase returns a DeclarationBase for origin.
func NewDeclarationBase(origin native.Node, parent Element, plugin Plugin) DeclarationBase {
	base := NewBase(origin, parent, plugin)

	return DeclarationBase{Node: base.origin, Base: base}
}

// Unwrap returns the native declaration.
func (d *DeclarationBase) Unwrap() native.Node { return d.Node }

// Name returns the declared name of the origin.
func (d *DeclarationBase) Name() string { return native.NameOf(d.Node) }

// Markers. Embedding one of these places an element in the matching shape.
type (
	// ExpressionNode marks an Expression.
	ExpressionNode struct{}
	// ParameterNode marks a Parameter.
	ParameterNode struct{}
	// FieldNode marks a Field.
	FieldNode struct{}
	// LocalVariableNode marks a LocalVariable.
	LocalVariableNode struct{}
)

func (ExpressionNode) expressionNode()       {}
func (ParameterNode) parameterNode()         {}
func (FieldNode) fieldNode()                 {}
func (LocalVariableNode) localVariableNode() {}

// Lazy is a write-once cell computed on first read. Concurrent first reads
// compute the value once.
type Lazy[T any] struct {
	once  sync.Once
	value T
}

// Get returns the cached value, computing it with compute on first use.
// compute must not read the same cell.
func (l *Lazy[T]) Get(compute func() T) T {
	l.once.Do(func() {
		l.value = compute()
	})

	return l.value
}

// EmptyExpression is the placeholder for absent or malformed expressions.
// Use the Empty singleton.
type EmptyExpression struct {
	ExpressionNode
}

// Empty is the canonical empty expression.
var Empty = &EmptyExpression{}

// Origin returns nil.
func (*EmptyExpression) Origin() native.Node { return nil }

// ContainingElement returns nil: the singleton is shared.
func (*EmptyExpression) ContainingElement() Element { return nil }

// Plugin returns nil.
func (*EmptyExpression) Plugin() Plugin { return nil }

// ElementKind returns KindEmpty.
func (*EmptyExpression) ElementKind() ElementKind { return KindEmpty }

// ChildElements returns nil.
func (*EmptyExpression) ChildElements() []Element { return nil }

// IsEmpty reports whether e is nil or the empty expression.
func IsEmpty(e Element) bool {
	if e == nil {
		return true
	}

	_, ok := e.(*EmptyExpression)

	return ok
}

// UnknownExpression wraps a native construct no frontend has a variant for.
type UnknownExpression struct {
	ExpressionNode
	Base
}

// NewUnknown wraps origin as an unknown expression.
func NewUnknown(origin native.Node, parent Element, plugin Plugin) *UnknownExpression {
	return &UnknownExpression{Base: NewBase(origin, parent, plugin)}
}

// ElementKind returns KindUnknown.
func (*UnknownExpression) ElementKind() ElementKind { return KindUnknown }

// ChildElements returns nil.
func (*UnknownExpression) ChildElements() []Element { return nil }

// KeyOf returns the identity key of e, derived from its native origin.
func KeyOf(e Element) native.Key {
	if e == nil {
		return native.Key{}
	}

	return native.KeyOf(e.Origin())
}

// Equal reports whether a and b wrap the same native origin. Elements with
// no origin are equal only to themselves.
func Equal(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Origin() == nil || b.Origin() == nil {
		return a == b
	}

	return KeyOf(a) == KeyOf(b)
}

// AsElements widens a typed slice to []Element, dropping nils.
func AsElements[E Element](elements []E) []Element {
	out := make([]Element, 0, len(elements))

	for _, e := range elements {
		if Element(e) != nil {
			out = append(out, e)
		}
	}

	return out
}

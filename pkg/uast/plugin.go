package uast

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// ErrShapeMismatch is wrapped by ShapeMismatchError.
var ErrShapeMismatch = errors.New("uast: converted element has unexpected shape")

// ShapeMismatchError is the panic value of Convert when the converted
// element does not have the requested shape.
type ShapeMismatchError struct {
	Native native.Key
	Got    string
	Want   string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%v: %s is %s, want %s", ErrShapeMismatch, e.Native, e.Got, e.Want)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// Converter converts native nodes with a known parent. Plugins and the
// Context are converters.
type Converter interface {
	// ConvertElement converts element under parent. It returns nil when the
	// element is not supported. Elements that already are uniform are
	// returned unchanged.
	ConvertElement(element any, parent Element) Element
}

// ParentConverter also discovers the parent of the converted element.
type ParentConverter interface {
	Converter
	// ConvertWithParent converts element after converting its native
	// ancestors. It returns nil when any ancestor is unsupported.
	ConvertWithParent(element any) Element
}

// Plugin is a language frontend.
type Plugin interface {
	ParentConverter
	Language() native.Language
	// Priority orders plugins; higher priority plugins are tried first.
	Priority() int
	// Extensions lists the file extensions the plugin owns, with the dot.
	Extensions() []string
	IsFileSupported(fileName string) bool
	// MethodCall converts n when it is a call to ownerFQN.methodName.
	MethodCall(n native.Node, ownerFQN, methodName string) (Call, native.Symbol, bool)
	// ConstructorCall converts n when it creates an instance of fqn.
	ConstructorCall(n native.Node, fqn string) (Call, native.Symbol, bool)
}

// HasExtension reports whether fileName ends with one of extensions.
// Matching ignores case.
func HasExtension(fileName string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return false
	}

	return slices.Contains(extensions, ext)
}

// Supports reports whether p accepts n by file or by language.
func Supports(p Plugin, n native.Node) bool {
	if n == nil {
		return false
	}

	if p.IsFileSupported(n.File()) {
		return true
	}

	return n.Language() == p.Language()
}

// NativeOf returns the native node held by element, or false when element is
// nil or not a native node.
func NativeOf(element any) (native.Node, bool) {
	switch n := element.(type) {
	case nil:
		return nil, false
	case *native.Element:
		if n == nil {
			return nil, false
		}

		return n, true
	case native.Node:
		return n, true
	default:
		return nil, false
	}
}

// ResolveWithParent implements parent-discovering conversion for a frontend.
// It converts the nearest non-transparent native ancestor first, root first,
// and converts n under the result. A nil anywhere in the chain yields nil.
// Only file-level nodes convert without a parent; any other detached node
// yields nil.
func ResolveWithParent(n native.Node, convert func(element any, parent Element) Element, transparent func(native.Node) bool) Element {
	if n == nil {
		return nil
	}

	parent := n.Parent()
	for parent != nil && transparent != nil && transparent(parent) {
		parent = parent.Parent()
	}

	if parent == nil {
		if !n.Kind().IsFile() {
			return nil
		}

		return convert(n, nil)
	}

	resolved := ResolveWithParent(parent, convert, transparent)
	if resolved == nil {
		return nil
	}

	return convert(n, resolved)
}

// ConvertOpt converts element and returns it as T, or false when conversion
// fails or yields another shape.
func ConvertOpt[T Element](c Converter, element any, parent Element) (T, bool) {
	var zero T

	converted := c.ConvertElement(element, parent)
	if converted == nil {
		return zero, false
	}

	typed, ok := converted.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

// Convert converts element and asserts it is a T. It panics with
// *ShapeMismatchError when the result has another shape. Absence is not a
// shape error: when no plugin converts element, Convert returns the zero T
// and callers that need a value must check for it.
func Convert[T Element](c Converter, element any, parent Element) T {
	var zero T

	converted := c.ConvertElement(element, parent)
	if converted == nil {
		return zero
	}

	typed, ok := converted.(T)
	if !ok {
		n, _ := NativeOf(element)

		panic(&ShapeMismatchError{
			Native: native.KeyOf(n),
			Got:    converted.ElementKind().String(),
			Want:   fmt.Sprintf("%T", (*T)(nil))[1:],
		})
	}

	return typed
}

// ConvertExpressionOrEmpty converts element to an expression, substituting
// Empty when conversion fails.
func ConvertExpressionOrEmpty(c Converter, element any, parent Element) Expression {
	if element == nil {
		return Empty
	}

	if expr, ok := ConvertOpt[Expression](c, element, parent); ok {
		return expr
	}

	return Empty
}

// ConvertAll converts each element under parent as T, skipping failures.
func ConvertAll[T Element](c Converter, elements []native.Node, parent Element) []T {
	out := make([]T, 0, len(elements))

	for _, n := range elements {
		if typed, ok := ConvertOpt[T](c, n, parent); ok {
			out = append(out, typed)
		}
	}

	return out
}

// MethodBody returns the body of the method element, which may be a native
// method or an already converted one. It returns nil when element is not a
// method or has no body.
func MethodBody(c ParentConverter, element any) Expression {
	method, ok := element.(Method)
	if !ok {
		method, ok = c.ConvertWithParent(element).(Method)
		if !ok {
			return nil
		}
	}

	return method.Body()
}

// InitializerBody returns the body of a class initializer, or Empty.
func InitializerBody(c ParentConverter, element any) Expression {
	initializer, ok := element.(ClassInitializer)
	if !ok {
		initializer, ok = c.ConvertWithParent(element).(ClassInitializer)
		if !ok {
			return Empty
		}
	}

	if body := initializer.Body(); body != nil {
		return body
	}

	return Empty
}

// VariableInitializer returns the initializer of a variable, or nil.
func VariableInitializer(c ParentConverter, element any) Expression {
	variable, ok := element.(Variable)
	if !ok {
		variable, ok = c.ConvertWithParent(element).(Variable)
		if !ok {
			return nil
		}
	}

	return variable.Initializer()
}

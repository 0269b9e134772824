package kotlin

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// convertDeclaration converts declaration-like nodes and returns nil for
// anything else.
func (p *Plugin) convertDeclaration(n native.Node, parent uast.Element) uast.Element {
	n = native.Unwrap(n)
	if n == nil {
		return nil
	}

	if n.Kind().IsJava() {
		return p.convertJavaShaped(n, parent)
	}

	switch n.Kind() {
	case native.KtFile:
		return newFile(p, n)
	case native.KtClass, native.KtObject:
		return delegate[uast.Class](p, p.lights.LightClass(n), parent)
	case native.KtFunction:
		light := p.lights.LightMethod(n)
		if light == nil {
			return nil
		}

		return newMethod(p, light, parent)
	case native.KtPropertyAccessor:
		return delegate[uast.Method](p, p.lights.LightAccessor(n), parent)
	case native.KtProperty:
		if light := p.lights.LightBackingField(n); light != nil {
			if field, ok := p.convertDeclaration(light, parent).(uast.Field); ok {
				return field
			}
		}

		// Local properties have no backing field; the declaration form of
		// the enclosing node is tried instead.
		if enclosing := n.Parent(); enclosing != nil {
			return p.convertDeclaration(enclosing, parent)
		}

		return nil
	case native.KtEnumEntry:
		if light := p.lightEnumConstant(n); light != nil {
			return NewVariable(p, light, parent)
		}

		return nil
	default:
		return nil
	}
}

// convertJavaShaped handles Java kinds: light elements for Kotlin
// declarations are built here, everything else goes to the Java frontend.
func (p *Plugin) convertJavaShaped(n native.Node, parent uast.Element) uast.Element {
	if origin, ok := native.LightOrigin(n); ok && origin.Language() == native.Kotlin {
		switch {
		case n.Kind() == native.JavaMethod:
			return newMethod(p, n, parent)
		case n.Kind() == native.JavaClass:
			return delegate[uast.Class](p, n, parent)
		case n.Kind().IsVariable():
			return NewVariable(p, n, parent)
		}
	}

	switch {
	case n.Kind() == native.JavaMethod:
		return delegate[uast.Method](p, n, parent)
	case n.Kind() == native.JavaClass:
		return delegate[uast.Class](p, n, parent)
	case n.Kind().IsVariable():
		return delegate[uast.Variable](p, n, parent)
	case n.Kind() == native.JavaAnnotation:
		return delegate[uast.Annotation](p, n, parent)
	case n.Kind() == native.JavaFile:
		return delegate[uast.File](p, n, parent)
	default:
		return nil
	}
}

// delegate converts n with the Java frontend and keeps the result only when
// it has the shape T.
func delegate[T uast.Element](p *Plugin, n native.Node, parent uast.Element) uast.Element {
	if n == nil {
		return nil
	}

	java := p.javaPlugin()
	if java == nil {
		return nil
	}

	converted := java.ConvertElement(n, parent)

	typed, ok := converted.(T)
	if !ok {
		if converted != nil {
			p.ctx.LogShapeMismatch(n, converted, fmt.Sprintf("%T", (*T)(nil))[1:])
		}

		return nil
	}

	return typed
}

// lightEnumConstant finds the light enum constant generated for entry.
func (p *Plugin) lightEnumConstant(entry native.Node) native.Node {
	owner := native.Ancestor(entry, native.KtClass)
	if owner == nil {
		return nil
	}

	class := p.lights.LightClass(owner)
	if class == nil {
		return nil
	}

	for _, member := range class.Children() {
		if member.Kind() != native.JavaEnumConstant {
			continue
		}

		if origin, ok := native.LightOrigin(member); ok && native.Same(origin, entry) {
			return member
		}
	}

	return nil
}

// annotationsOf converts the annotation entries of a Kotlin declaration,
// written directly on it or inside its modifier list.
func annotationsOf(p *Plugin, n native.Node, owner uast.Element) []uast.Annotation {
	if n == nil {
		return nil
	}

	nodes := native.ChildrenOfKind(native.FirstChildOfKind(n, native.KtModifiers), native.KtAnnotationEntry)
	nodes = append(nodes, native.ChildrenOfKind(n, native.KtAnnotationEntry)...)

	return uast.ConvertAll[uast.Annotation](p.ctx, nodes, owner)
}

// kotlinOrigin returns the Kotlin declaration behind a light element.
func kotlinOrigin(n native.Node) native.Node {
	origin, ok := native.LightOrigin(n)
	if !ok || origin.Language() != native.Kotlin {
		return nil
	}

	return origin
}

type file struct {
	uast.Base

	p            *Plugin
	classes      uast.Lazy[[]uast.Class]
	declarations uast.Lazy[[]uast.Element]
}

var _ uast.File = (*file)(nil)

func newFile(p *Plugin, n native.Node) *file {
	return &file{Base: uast.NewBase(n, nil, p), p: p}
}

func (f *file) ElementKind() uast.ElementKind { return uast.KindFile }

func (f *file) Path() string { return f.Origin().File() }

func (f *file) Classes() []uast.Class {
	return f.classes.Get(func() []uast.Class {
		nodes := native.ChildrenOfKind(f.Origin(), native.KtClass, native.KtObject)

		return uast.ConvertAll[uast.Class](f.p.ctx, nodes, f)
	})
}

// Declarations returns the top-level functions and properties.
func (f *file) Declarations() []uast.Element {
	return f.declarations.Get(func() []uast.Element {
		var out []uast.Element

		for _, n := range native.ChildrenOfKind(f.Origin(), native.KtFunction, native.KtProperty) {
			if converted := f.p.ctx.ConvertElement(n, f); converted != nil {
				out = append(out, converted)
			}
		}

		return out
	})
}

func (f *file) ChildElements() []uast.Element {
	return append(uast.AsElements(f.Classes()), f.Declarations()...)
}

// method wraps the light method of a Kotlin function or accessor.
type method struct {
	uast.DeclarationBase

	p           *Plugin
	parameters  uast.Lazy[[]uast.Parameter]
	body        uast.Lazy[uast.Expression]
	annotations uast.Lazy[[]uast.Annotation]
}

var _ uast.Method = (*method)(nil)

func newMethod(p *Plugin, light native.Node, parent uast.Element) *method {
	return &method{DeclarationBase: uast.NewDeclarationBase(light, parent, p), p: p}
}

func (m *method) ElementKind() uast.ElementKind { return uast.KindMethod }

func (m *method) Annotations() []uast.Annotation {
	return m.annotations.Get(func() []uast.Annotation {
		return annotationsOf(m.p, kotlinOrigin(m.Unwrap()), m)
	})
}

func (m *method) Parameters() []uast.Parameter {
	return m.parameters.Get(func() []uast.Parameter {
		origin := kotlinOrigin(m.Unwrap())
		if origin == nil {
			return nil
		}

		list := origin.Child(native.FieldParameters)
		if list == nil {
			list = native.FirstChildOfKind(origin, native.KtParameterList)
		}

		return parametersOf(m.p, list, m)
	})
}

func (m *method) Body() uast.Expression {
	return m.body.Get(func() uast.Expression {
		return m.p.expr(m.Unwrap().Child(native.FieldBody), m)
	})
}

// IsConstructor is false: Kotlin functions and accessors never construct.
func (m *method) IsConstructor() bool { return false }

func (m *method) ChildElements() []uast.Element {
	out := append(uast.AsElements(m.Annotations()), uast.AsElements(m.Parameters())...)

	if body := m.Body(); body != nil {
		out = append(out, body)
	}

	return out
}

// parametersOf builds parameters for the KtParameter children of list.
func parametersOf(p *Plugin, list native.Node, parent uast.Element) []uast.Parameter {
	params := native.ChildrenOfKind(list, native.KtParameter)
	out := make([]uast.Parameter, 0, len(params))

	for i, param := range params {
		if v, ok := NewVariable(p, native.NewSyntheticParameter(param, list, i), parent).(uast.Parameter); ok {
			out = append(out, v)
		}
	}

	return out
}

type annotation struct {
	uast.Base
}

func newAnnotation(p *Plugin, n native.Node, parent uast.Element) *annotation {
	return &annotation{Base: uast.NewBase(n, parent, p)}
}

func (a *annotation) ElementKind() uast.ElementKind { return uast.KindAnnotation }

func (a *annotation) ChildElements() []uast.Element { return nil }

// QualifiedName returns the annotation type as written, without use-site
// target and arguments.
func (a *annotation) QualifiedName() string {
	if name := native.NameOf(a.Origin()); name != "" {
		return name
	}

	text := strings.TrimPrefix(strings.TrimSpace(a.Origin().Text()), "@")
	if i := strings.IndexByte(text, '('); i >= 0 {
		text = text[:i]
	}

	if i := strings.IndexByte(text, ':'); i >= 0 {
		text = text[i+1:]
	}

	return strings.TrimSpace(text)
}

type typeReference struct {
	uast.ExpressionNode
	uast.Base
}

func newTypeReference(p *Plugin, n native.Node, parent uast.Element) *typeReference {
	return &typeReference{Base: uast.NewBase(n, parent, p)}
}

func (t *typeReference) ElementKind() uast.ElementKind { return uast.KindTypeReference }

func (t *typeReference) ChildElements() []uast.Element { return nil }

func (t *typeReference) TypeName() string { return strings.TrimSpace(t.Origin().Text()) }

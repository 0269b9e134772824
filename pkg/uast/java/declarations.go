package java

import (
	"strings"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

type file struct {
	uast.Base

	p       *Plugin
	classes uast.Lazy[[]uast.Class]
}

func newFile(p *Plugin, n native.Node, parent uast.Element) *file {
	return &file{Base: uast.NewBase(n, parent, p), p: p}
}

func (f *file) ElementKind() uast.ElementKind { return uast.KindFile }

func (f *file) Path() string { return f.Origin().File() }

func (f *file) Classes() []uast.Class {
	return f.classes.Get(func() []uast.Class {
		return uast.ConvertAll[uast.Class](f.p.ctx, native.ChildrenOfKind(f.Origin(), native.JavaClass), f)
	})
}

func (f *file) ChildElements() []uast.Element { return uast.AsElements(f.Classes()) }

// annotationsOf converts the annotations of a declaration, written either
// directly on it or inside its modifier list.
func annotationsOf(p *Plugin, n native.Node, owner uast.Element) []uast.Annotation {
	nodes := native.ChildrenOfKind(native.FirstChildOfKind(n, native.JavaModifiers), native.JavaAnnotation)
	nodes = append(nodes, native.ChildrenOfKind(n, native.JavaAnnotation)...)

	return uast.ConvertAll[uast.Annotation](p.ctx, nodes, owner)
}

type class struct {
	uast.DeclarationBase

	p           *Plugin
	members     uast.Lazy[[]uast.Element]
	annotations uast.Lazy[[]uast.Annotation]
}

var _ uast.Class = (*class)(nil)

func newClass(p *Plugin, n native.Node, parent uast.Element) *class {
	return &class{DeclarationBase: uast.NewDeclarationBase(n, parent, p), p: p}
}

func (c *class) ElementKind() uast.ElementKind { return uast.KindClass }

func (c *class) QualifiedName() string { return QualifiedName(c.Unwrap()) }

func (c *class) Annotations() []uast.Annotation {
	return c.annotations.Get(func() []uast.Annotation { return annotationsOf(c.p, c.Unwrap(), c) })
}

// Members converts the class members in source order. Members go through the
// dispatcher so that light members are claimed by their own frontend.
func (c *class) Members() []uast.Element {
	return c.members.Get(func() []uast.Element {
		var out []uast.Element

		for _, member := range memberNodes(c.Unwrap()) {
			if member.Kind() == native.JavaField {
				if declarators := fieldDeclarators(member); len(declarators) > 0 {
					for _, declarator := range declarators {
						if v, ok := uast.ConvertOpt[uast.Variable](c.p.ctx, declarator, c); ok {
							out = append(out, v)
						}
					}

					continue
				}
			}

			if converted := c.p.ctx.ConvertElement(member, c); converted != nil {
				out = append(out, converted)
			}
		}

		return out
	})
}

func (c *class) Methods() []uast.Method { return membersOf[uast.Method](c.Members()) }

func (c *class) Fields() []uast.Field { return membersOf[uast.Field](c.Members()) }

func (c *class) Initializers() []uast.ClassInitializer {
	return membersOf[uast.ClassInitializer](c.Members())
}

func (c *class) InnerClasses() []uast.Class { return membersOf[uast.Class](c.Members()) }

func (c *class) ChildElements() []uast.Element {
	return append(uast.AsElements(c.Annotations()), c.Members()...)
}

func membersOf[T uast.Element](members []uast.Element) []T {
	var out []T

	for _, m := range members {
		if typed, ok := m.(T); ok {
			out = append(out, typed)
		}
	}

	return out
}

var memberKinds = []native.Kind{
	native.JavaField, native.JavaEnumConstant, native.JavaMethod,
	native.JavaClassInitializer, native.JavaClass,
}

// memberNodes returns the member declarations of a class: the children of
// its body, or the children of a light class that has no body.
func memberNodes(n native.Node) []native.Node {
	if body := native.FirstChildOfKind(n, native.JavaClassBody); body != nil {
		return native.ChildrenOfKind(body, memberKinds...)
	}

	return native.ChildrenOfKind(n, memberKinds...)
}

// QualifiedName returns the dotted name of a class declaration, built from
// its enclosing classes and the package of its file.
func QualifiedName(n native.Node) string {
	n = native.Unwrap(n)
	if n == nil {
		return ""
	}

	parts := []string{native.NameOf(n)}

	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case native.JavaClass, native.KtClass, native.KtObject:
			parts = append(parts, native.NameOf(p))
		case native.JavaFile, native.KtFile:
			if pkg := packageName(p); pkg != "" {
				parts = append(parts, pkg)
			}
		}
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return strings.Join(parts, ".")
}

func packageName(file native.Node) string {
	pkg := native.FirstChildOfKind(file, native.JavaPackage)
	if pkg == nil {
		pkg = native.FirstChildOfKind(file, native.KtPackage)
	}

	if pkg == nil {
		return ""
	}

	if name := native.NameOf(pkg); name != "" {
		return name
	}

	text := strings.TrimSpace(pkg.Text())
	text = strings.TrimPrefix(text, "package")
	text = strings.TrimSuffix(text, ";")

	return strings.TrimSpace(text)
}

type method struct {
	uast.DeclarationBase

	p           *Plugin
	parameters  uast.Lazy[[]uast.Parameter]
	body        uast.Lazy[uast.Expression]
	annotations uast.Lazy[[]uast.Annotation]
}

var _ uast.Method = (*method)(nil)

func newMethod(p *Plugin, n native.Node, parent uast.Element) *method {
	return &method{DeclarationBase: uast.NewDeclarationBase(n, parent, p), p: p}
}

func (m *method) ElementKind() uast.ElementKind { return uast.KindMethod }

func (m *method) Annotations() []uast.Annotation {
	return m.annotations.Get(func() []uast.Annotation { return annotationsOf(m.p, m.Unwrap(), m) })
}

func (m *method) Parameters() []uast.Parameter {
	return m.parameters.Get(func() []uast.Parameter {
		list := m.Unwrap().Child(native.FieldParameters)
		if list == nil {
			list = native.FirstChildOfKind(m.Unwrap(), native.JavaParameterList)
		}

		return uast.ConvertAll[uast.Parameter](m.p.ctx, native.ChildrenOfKind(list, native.JavaParameter), m)
	})
}

func (m *method) Body() uast.Expression {
	return m.body.Get(func() uast.Expression {
		return m.p.expr(m.Unwrap().Child(native.FieldBody), m)
	})
}

// IsConstructor reports a method with no return type named after its class.
func (m *method) IsConstructor() bool {
	if m.Unwrap().Child(native.FieldType) != nil {
		return false
	}

	owner := native.Ancestor(m.Unwrap(), native.JavaClass)
	if owner == nil {
		owner = m.Unwrap().Parent()
	}

	return owner != nil && native.NameOf(owner) == m.Name()
}

func (m *method) ChildElements() []uast.Element {
	out := append(uast.AsElements(m.Annotations()), uast.AsElements(m.Parameters())...)

	if body := m.Body(); body != nil {
		out = append(out, body)
	}

	return out
}

type classInitializer struct {
	uast.DeclarationBase

	p    *Plugin
	body uast.Lazy[uast.Expression]
}

var _ uast.ClassInitializer = (*classInitializer)(nil)

func newClassInitializer(p *Plugin, n native.Node, parent uast.Element) *classInitializer {
	return &classInitializer{DeclarationBase: uast.NewDeclarationBase(n, parent, p), p: p}
}

func (c *classInitializer) ElementKind() uast.ElementKind { return uast.KindClassInitializer }

func (c *classInitializer) Name() string { return "" }

func (c *classInitializer) Annotations() []uast.Annotation { return nil }

func (c *classInitializer) Body() uast.Expression {
	return c.body.Get(func() uast.Expression {
		body := c.Unwrap().Child(native.FieldBody)
		if body == nil {
			body = native.FirstChildOfKind(c.Unwrap(), native.JavaBlock)
		}

		return c.p.exprOrEmpty(body, c)
	})
}

func (c *classInitializer) IsStatic() bool {
	return strings.HasPrefix(strings.TrimSpace(c.Unwrap().Text()), "static")
}

func (c *classInitializer) ChildElements() []uast.Element { return []uast.Element{c.Body()} }

type annotation struct {
	uast.Base
}

func newAnnotation(p *Plugin, n native.Node, parent uast.Element) *annotation {
	return &annotation{Base: uast.NewBase(n, parent, p)}
}

func (a *annotation) ElementKind() uast.ElementKind { return uast.KindAnnotation }

func (a *annotation) ChildElements() []uast.Element { return nil }

func (a *annotation) QualifiedName() string {
	if name := native.NameOf(a.Origin()); name != "" {
		return name
	}

	text := strings.TrimPrefix(strings.TrimSpace(a.Origin().Text()), "@")
	if i := strings.IndexByte(text, '('); i >= 0 {
		text = text[:i]
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

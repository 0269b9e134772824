package native

import "sync"

// Light is a node generated by one language's tooling to mimic another
// language's declaration surface. Kotlin classes, functions and properties
// are seen by Java-shaped consumers through light elements whose origin is
// the Kotlin declaration.
type Light interface {
	Node
	LightOrigin() Node
}

// LightOrigin returns the origin of n if it is a light element.
func LightOrigin(n Node) (Node, bool) {
	light, ok := Unwrap(n).(Light)
	if !ok {
		return nil, false
	}

	origin := light.LightOrigin()

	return origin, origin != nil
}

// LightElement is the default Light implementation. It takes its text, file
// and span from the origin and answers Child lookups from its own fields
// first and from the origin second.
type LightElement struct {
	origin   Node
	parent   Node
	fields   map[string]Node
	name     string
	children []Node
	kind     Kind
}

var _ Light = (*LightElement)(nil)

// NewLight creates a light element of the given Java kind around origin.
func NewLight(kind Kind, origin, parent Node) *LightElement {
	return &LightElement{
		kind:   kind,
		origin: origin,
		parent: parent,
		name:   NameOf(origin),
	}
}

// Kind returns the light (Java-shaped) kind.
func (l *LightElement) Kind() Kind { return l.kind }

// Language reports Java: light elements expose the Java surface.
func (l *LightElement) Language() Language { return Java }

// Parent returns the light parent.
func (l *LightElement) Parent() Node {
	if l.parent == nil {
		return nil
	}

	return l.parent
}

// Children returns the light children.
func (l *LightElement) Children() []Node { return l.children }

// Child looks up a field on the light element, then on the origin.
func (l *LightElement) Child(field string) Node {
	if child, ok := l.fields[field]; ok {
		return child
	}

	if l.origin == nil {
		return nil
	}

	return l.origin.Child(field)
}

// Text returns the origin text.
func (l *LightElement) Text() string { return textOf(l.origin) }

// File returns the origin file.
func (l *LightElement) File() string { return fileOf(l.origin) }

// Span returns the origin span.
func (l *LightElement) Span() Span { return spanOf(l.origin) }

// Name returns the declared name of the origin.
func (l *LightElement) Name() string { return l.name }

// LightOrigin returns the wrapped declaration.
func (l *LightElement) LightOrigin() Node { return l.origin }

// SetChildren replaces the light children.
func (l *LightElement) SetChildren(children ...Node) *LightElement {
	l.children = children

	return l
}

// SetField records a field lookup override.
func (l *LightElement) SetField(name string, child Node) *LightElement {
	if l.fields == nil {
		l.fields = make(map[string]Node)
	}

	l.fields[name] = child

	return l
}

// LightProvider produces light elements for Kotlin declarations. It is the
// stand-in for the compiler's light class generation.
type LightProvider interface {
	LightClass(decl Node) Node
	LightMethod(fn Node) Node
	LightAccessor(accessor Node) Node
	LightBackingField(property Node) Node
}

// StructuralLights derives light elements from the Kotlin tree shape alone.
// Results are cached per origin so repeated lookups return the same light
// element and parent links stay consistent.
type StructuralLights struct {
	cache sync.Map // lightKey -> Node
}

type lightKey struct {
	origin Key
	kind   Kind
}

var _ LightProvider = (*StructuralLights)(nil)

// NewStructuralLights creates an empty provider.
func NewStructuralLights() *StructuralLights {
	return &StructuralLights{}
}

// LightClass returns the light class of a Kotlin class or object declaration.
func (s *StructuralLights) LightClass(decl Node) Node {
	if decl == nil || (decl.Kind() != KtClass && decl.Kind() != KtObject) {
		return nil
	}

	return s.load(decl, JavaClass, func() Node {
		light := NewLight(JavaClass, decl, decl.Parent())

		var members []Node

		body := FirstChildOfKind(decl, KtClassBody)
		for _, member := range ChildrenOfKind(body, KtEnumEntry, KtFunction, KtProperty, KtClass, KtObject) {
			switch member.Kind() {
			case KtEnumEntry:
				members = append(members, s.load(member, JavaEnumConstant, func() Node {
					return NewLight(JavaEnumConstant, member, light)
				}))
			case KtFunction:
				members = append(members, s.lightMethodIn(member, light))
			case KtProperty:
				members = append(members, s.lightFieldIn(member, light))
			case KtClass, KtObject:
				members = append(members, s.LightClass(member))
			}
		}

		return light.SetChildren(members...)
	})
}

// LightMethod returns the light method of a Kotlin function declared in a
// class, object or at top level.
func (s *StructuralLights) LightMethod(fn Node) Node {
	if fn == nil || fn.Kind() != KtFunction {
		return nil
	}

	owner := Ancestor(fn, KtClass, KtObject, KtFunction, KtLambda, KtFile)
	if owner == nil {
		return nil
	}

	switch owner.Kind() {
	case KtClass, KtObject:
		return s.lightMethodIn(fn, s.LightClass(owner))
	case KtFile:
		return s.lightMethodIn(fn, owner)
	default:
		// Local functions have no light counterpart.
		return nil
	}
}

// LightAccessor returns the light method generated for a property accessor.
func (s *StructuralLights) LightAccessor(accessor Node) Node {
	if accessor == nil || accessor.Kind() != KtPropertyAccessor {
		return nil
	}

	property := accessor.Parent()
	if property == nil {
		return nil
	}

	return s.load(accessor, JavaMethod, func() Node {
		return NewLight(JavaMethod, accessor, s.containerOf(property))
	})
}

// LightBackingField returns the light field backing a member or top-level
// property. Local properties have none.
func (s *StructuralLights) LightBackingField(property Node) Node {
	if property == nil || property.Kind() != KtProperty {
		return nil
	}

	owner := Ancestor(property, KtClass, KtObject, KtFunction, KtLambda, KtFile, KtBlock)
	if owner == nil {
		return nil
	}

	switch owner.Kind() {
	case KtClass, KtObject:
		return s.lightFieldIn(property, s.LightClass(owner))
	case KtFile:
		return s.lightFieldIn(property, owner)
	default:
		return nil
	}
}

func (s *StructuralLights) lightMethodIn(fn, owner Node) Node {
	return s.load(fn, JavaMethod, func() Node {
		return NewLight(JavaMethod, fn, owner)
	})
}

func (s *StructuralLights) lightFieldIn(property, owner Node) Node {
	return s.load(property, JavaField, func() Node {
		return NewLight(JavaField, property, owner)
	})
}

func (s *StructuralLights) containerOf(property Node) Node {
	owner := Ancestor(property, KtClass, KtObject, KtFile)
	if owner == nil {
		return property.Parent()
	}

	if owner.Kind() == KtFile {
		return owner
	}

	return s.LightClass(owner)
}

func (s *StructuralLights) load(origin Node, kind Kind, build func() Node) Node {
	key := lightKey{origin: KeyOf(origin), kind: kind}

	if cached, ok := s.cache.Load(key); ok {
		if light, castOK := cached.(Node); castOK {
			return light
		}
	}

	actual, _ := s.cache.LoadOrStore(key, build())

	light, _ := actual.(Node)

	return light
}

func textOf(n Node) string {
	if n == nil {
		return ""
	}

	return n.Text()
}

func fileOf(n Node) string {
	if n == nil {
		return ""
	}

	return n.File()
}

func spanOf(n Node) Span {
	if n == nil {
		return Span{}
	}

	return n.Span()
}

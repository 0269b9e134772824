package native

// SyntheticVariable is a Java-shaped local variable with no source
// counterpart of its own. Destructuring temporaries and the variables of
// Kotlin local declarations are built from it. Its identity derives from the
// declaration it was generated for.
type SyntheticVariable struct {
	origin      Node
	parent      Node
	initializer Node
	typ         Node
	name        string
	kind        Kind
}

var (
	_ Light = (*SyntheticVariable)(nil)
	_ Named = (*SyntheticVariable)(nil)
)

// NewSyntheticVariable creates a local variable named name for the
// declaration origin, placed under the native parent.
func NewSyntheticVariable(name string, origin, parent, initializer Node) *SyntheticVariable {
	return &SyntheticVariable{
		name:        name,
		origin:      origin,
		parent:      parent,
		initializer: initializer,
		kind:        JavaLocalVariable,
	}
}

// WithType attaches a type element.
func (v *SyntheticVariable) WithType(typ Node) *SyntheticVariable {
	v.typ = typ

	return v
}

// Kind returns the variable kind.
func (v *SyntheticVariable) Kind() Kind { return v.kind }

// Language reports Java: synthetic variables expose the Java surface.
func (v *SyntheticVariable) Language() Language { return Java }

// Parent returns the native parent the variable was placed under.
func (v *SyntheticVariable) Parent() Node {
	if v.parent == nil {
		return nil
	}

	return v.parent
}

// Children returns the initializer, if any.
func (v *SyntheticVariable) Children() []Node {
	if v.initializer == nil {
		return nil
	}

	return []Node{v.initializer}
}

// Child answers the initializer and type fields.
func (v *SyntheticVariable) Child(field string) Node {
	switch field {
	case FieldInitializer:
		return v.initializer
	case FieldType:
		return v.typ
	default:
		return nil
	}
}

// Text returns the variable name.
func (v *SyntheticVariable) Text() string { return v.name }

// File returns the origin file.
func (v *SyntheticVariable) File() string { return fileOf(v.origin) }

// Span returns the origin span.
func (v *SyntheticVariable) Span() Span { return spanOf(v.origin) }

// Name returns the variable name.
func (v *SyntheticVariable) Name() string { return v.name }

// Initializer returns the initializer expression, or nil.
func (v *SyntheticVariable) Initializer() Node { return v.initializer }

// LightOrigin returns the declaration the variable was generated for.
func (v *SyntheticVariable) LightOrigin() Node { return v.origin }

// SyntheticParameter is a Java-shaped parameter generated for a Kotlin
// parameter or loop variable. A nil origin parameter stands for a loop
// variable that could not be resolved.
type SyntheticParameter struct {
	origin Node
	parent Node
	name   string
	index  int
}

var (
	_ Light = (*SyntheticParameter)(nil)
	_ Named = (*SyntheticParameter)(nil)
)

// NewSyntheticParameter creates the index-th parameter for origin under parent.
// An identifier origin names the parameter itself.
func NewSyntheticParameter(origin, parent Node, index int) *SyntheticParameter {
	name := NameOf(origin)
	if name == "" && origin != nil && origin.Kind() == KindIdentifier {
		name = origin.Text()
	}

	return &SyntheticParameter{
		origin: origin,
		parent: parent,
		name:   name,
		index:  index,
	}
}

// Kind returns JavaParameter.
func (p *SyntheticParameter) Kind() Kind { return JavaParameter }

// Language reports Java.
func (p *SyntheticParameter) Language() Language { return Java }

// Parent returns the native parent.
func (p *SyntheticParameter) Parent() Node {
	if p.parent == nil {
		return nil
	}

	return p.parent
}

// Children returns nothing: parameters are leaves on the Java surface.
func (p *SyntheticParameter) Children() []Node { return nil }

// Child delegates to the origin.
func (p *SyntheticParameter) Child(field string) Node {
	if p.origin == nil {
		return nil
	}

	return p.origin.Child(field)
}

// Text returns the parameter name.
func (p *SyntheticParameter) Text() string { return p.name }

// File returns the file of the origin, or of the parent when unresolved.
func (p *SyntheticParameter) File() string {
	if p.origin == nil {
		return fileOf(p.parent)
	}

	return fileOf(p.origin)
}

// Span returns the origin span. Unresolved parameters take the parent span.
func (p *SyntheticParameter) Span() Span {
	if p.origin == nil {
		return spanOf(p.parent)
	}

	return spanOf(p.origin)
}

// Name returns the parameter name.
func (p *SyntheticParameter) Name() string { return p.name }

// Index returns the position of the parameter in its list.
func (p *SyntheticParameter) Index() int { return p.index }

// LightOrigin returns the Kotlin parameter, or nil when unresolved.
func (p *SyntheticParameter) LightOrigin() Node {
	if p.origin == nil {
		return nil
	}

	return p.origin
}

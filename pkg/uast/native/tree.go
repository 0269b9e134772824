package native

// Tree is an in-memory native syntax tree for one source file. Frontends
// backed by a real parser fill it from their own output; tests and synthetic
// factories build it directly.
type Tree struct {
	file     string
	language Language
	source   []byte
	root     *Element
	next     int
}

// NewTree creates an empty tree for the given file.
func NewTree(file string, language Language, source []byte) *Tree {
	return &Tree{
		file:     file,
		language: language,
		source:   source,
	}
}

// File returns the file name of the tree.
func (t *Tree) File() string { return t.file }

// Language returns the language of the tree.
func (t *Tree) Language() Language { return t.language }

// Source returns the source bytes the tree was built from, if any.
func (t *Tree) Source() []byte { return t.source }

// Root returns the root element, or nil when none was set.
func (t *Tree) Root() *Element { return t.root }

// SetRoot installs root as the root of the tree.
func (t *Tree) SetRoot(root *Element) *Element {
	root.parent = nil
	t.root = root

	return root
}

// New creates a detached element with a synthetic span unique within the tree.
func (t *Tree) New(kind Kind, text string) *Element {
	t.next++

	return &Element{
		tree: t,
		kind: kind,
		text: text,
		span: Span{Start: -t.next, End: -t.next},
	}
}

// NewAnchored creates a detached element generated for the source range
// anchor. The span is synthetic and distinct per (anchor, slot), so nodes
// generated for different constructs of one file never share a Key.
// Anchored spans end before they start, which keeps them apart from the
// spans handed out by New.
func (t *Tree) NewAnchored(kind Kind, text string, anchor Span, slot int) *Element {
	start, end := anchor.Start, anchor.End
	if start >= 0 {
		start = -(start + 1)
	}

	if end >= 0 {
		end = -(end + 1)
	}

	return &Element{
		tree: t,
		kind: kind,
		text: text,
		span: Span{Start: start, End: end - slot - 1},
	}
}

// NewAt creates a detached element covering the given source range.
func (t *Tree) NewAt(kind Kind, span Span) *Element {
	return &Element{
		tree: t,
		kind: kind,
		span: span,
	}
}

// Walk visits every element of the tree in pre-order until fn returns false.
func (t *Tree) Walk(fn func(*Element) bool) {
	if t.root == nil {
		return
	}

	stack := []*Element{t.root}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(top) {
			return
		}

		for i := len(top.children) - 1; i >= 0; i-- {
			if child, ok := top.children[i].(*Element); ok {
				stack = append(stack, child)
			}
		}
	}
}

// Element is the Tree implementation of Node.
type Element struct {
	tree     *Tree
	parent   Node
	fields   map[string]Node
	grammar  string
	text     string
	children []Node
	span     Span
	kind     Kind
}

var _ Node = (*Element)(nil)

// Kind returns the native kind.
func (e *Element) Kind() Kind { return e.kind }

// Language returns the language of the owning tree.
func (e *Element) Language() Language { return e.tree.language }

// Parent returns the structural parent or nil.
func (e *Element) Parent() Node {
	if e.parent == nil {
		return nil
	}

	return e.parent
}

// Children returns the ordered structural children.
func (e *Element) Children() []Node { return e.children }

// Child returns the child stored under field, or nil.
func (e *Element) Child(field string) Node {
	child, ok := e.fields[field]
	if !ok {
		return nil
	}

	return child
}

// Text returns the explicit text of the element, falling back to the source
// slice covered by its span.
func (e *Element) Text() string {
	if e.text != "" || e.span.Synthetic() {
		return e.text
	}

	src := e.tree.source
	if e.span.Start >= 0 && e.span.End <= len(src) && e.span.Start <= e.span.End {
		return string(src[e.span.Start:e.span.End])
	}

	return ""
}

// File returns the file name of the owning tree.
func (e *Element) File() string { return e.tree.file }

// Span returns the source range.
func (e *Element) Span() Span { return e.span }

// Grammar returns the parser-specific node type the element was built from.
func (e *Element) Grammar() string { return e.grammar }

// SetGrammar records the parser-specific node type.
func (e *Element) SetGrammar(grammar string) *Element {
	e.grammar = grammar

	return e
}

// SetText overrides the element text.
func (e *Element) SetText(text string) *Element {
	e.text = text

	return e
}

// SetParent attaches e under a parent that is not an Element, such as a light
// or synthetic node, without registering it as that parent's child.
func (e *Element) SetParent(parent Node) *Element {
	e.parent = parent

	return e
}

// Add appends children in order and returns e.
func (e *Element) Add(children ...*Element) *Element {
	for _, child := range children {
		child.parent = e
		e.children = append(e.children, child)
	}

	return e
}

// Tag records child under the given field name without appending it to the
// children. A child with no parent yet is attached to e.
func (e *Element) Tag(name string, child *Element) *Element {
	if child == nil {
		return e
	}

	if child.parent == nil {
		child.parent = e
	}

	if e.fields == nil {
		e.fields = make(map[string]Node)
	}

	e.fields[name] = child

	return e
}

// Field appends child and records it under the given field name.
func (e *Element) Field(name string, child *Element) *Element {
	if child == nil {
		return e
	}

	e.Add(child)

	if e.fields == nil {
		e.fields = make(map[string]Node)
	}

	e.fields[name] = child

	return e
}

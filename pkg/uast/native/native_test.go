package native_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

func TestKindNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind native.Kind
		name string
	}{
		{native.JavaClass, "java.class"},
		{native.KtStringTemplate, "kotlin.string_template"},
		{native.KindIdentifier, "identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.name, tt.kind.String())

			kind, ok := native.KindByName(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}

	_, ok := native.KindByName("java.nope")
	assert.False(t, ok)
	assert.True(t, native.JavaField.IsJava())
	assert.True(t, native.KtProperty.IsKotlin())
	assert.True(t, native.JavaEnumConstant.IsVariable())
	assert.False(t, native.KtProperty.IsVariable())
}

func TestTreeBuilder(t *testing.T) {
	t.Parallel()

	src := []byte("class A {}")
	tree := native.NewTree("A.java", native.Java, src)

	name := tree.NewAt(native.KindIdentifier, native.Span{Start: 6, End: 7})
	class := tree.NewAt(native.JavaClass, native.Span{Start: 0, End: 10}).Field(native.FieldName, name)
	root := tree.SetRoot(tree.NewAt(native.JavaFile, native.Span{Start: 0, End: 10}).Add(class))

	assert.Nil(t, root.Parent())
	assert.Equal(t, "A", native.NameOf(class))
	assert.Equal(t, "class A {}", class.Text())
	assert.Same(t, class, name.Parent())
	assert.Nil(t, class.Child(native.FieldBody))

	var kinds []native.Kind

	tree.Walk(func(e *native.Element) bool {
		kinds = append(kinds, e.Kind())

		return true
	})

	assert.Equal(t, []native.Kind{native.JavaFile, native.JavaClass, native.KindIdentifier}, kinds)
	assert.Same(t, class, native.Ancestor(name, native.JavaClass))
	assert.Same(t, class, native.FirstChildOfKind(root, native.JavaClass))
}

func TestSyntheticSpansAreUnique(t *testing.T) {
	t.Parallel()

	tree := native.NewTree("A.java", native.Java, nil)
	a := tree.New(native.JavaLiteral, "1")
	b := tree.New(native.JavaLiteral, "1")

	assert.True(t, a.Span().Synthetic())
	assert.NotEqual(t, native.KeyOf(a), native.KeyOf(b))
	assert.False(t, native.Same(a, b))
	assert.True(t, native.Same(a, a))
	assert.Equal(t, "1", a.Text())
}

func TestTagAndAnchoredSpans(t *testing.T) {
	t.Parallel()

	src := []byte("a + b")
	tree := native.NewTree("A.java", native.Java, src)

	op := tree.NewAt(native.KindUnknown, native.Span{Start: 2, End: 3})
	binary := tree.NewAt(native.JavaBinary, native.Span{Start: 0, End: 5}).
		Add(
			tree.NewAt(native.JavaReference, native.Span{Start: 0, End: 1}),
			tree.NewAt(native.JavaReference, native.Span{Start: 4, End: 5}),
		).
		Tag(native.FieldOperator, op)

	assert.Len(t, binary.Children(), 2, "tagged nodes are not children")
	assert.Equal(t, "+", binary.Child(native.FieldOperator).Text())
	assert.Same(t, binary, op.Parent())

	anchor := native.Span{Start: 4, End: 5}
	first := tree.NewAnchored(native.JavaReference, "x", anchor, 0)
	second := tree.NewAnchored(native.JavaReference, "x", anchor, 1)

	assert.True(t, first.Span().Synthetic())
	assert.Less(t, first.Span().End, first.Span().Start)
	assert.NotEqual(t, native.KeyOf(first), native.KeyOf(second))
	assert.Equal(t, "x", first.Text())
}

type wrapper struct {
	native.Node
}

func (w wrapper) Unwrap() native.Node { return w.Node }

func TestUnwrapAndKeys(t *testing.T) {
	t.Parallel()

	tree := native.NewTree("A.java", native.Java, nil)
	node := tree.New(native.JavaMethod, "m")
	double := wrapper{wrapper{node}}

	assert.Same(t, node, native.Unwrap(double))
	assert.Equal(t, native.KeyOf(node), native.KeyOf(double))
	assert.True(t, native.Same(node, double))
	assert.Nil(t, native.Unwrap(nil))
	assert.Equal(t, native.Key{}, native.KeyOf(nil))
}

func TestStructuralLights(t *testing.T) {
	t.Parallel()

	tree := native.NewTree("A.kt", native.Kotlin, nil)
	fn := tree.New(native.KtFunction, "").Field(native.FieldName, tree.New(native.KindIdentifier, "run"))
	prop := tree.New(native.KtProperty, "").Field(native.FieldName, tree.New(native.KindIdentifier, "size"))
	local := tree.New(native.KtProperty, "").Field(native.FieldName, tree.New(native.KindIdentifier, "tmp"))
	class := tree.New(native.KtClass, "").
		Field(native.FieldName, tree.New(native.KindIdentifier, "A")).
		Add(tree.New(native.KtClassBody, "").Add(fn.Add(tree.New(native.KtBlock, "").Add(local)), prop))
	tree.SetRoot(tree.New(native.KtFile, "").Add(class))

	lights := native.NewStructuralLights()

	lightClass := lights.LightClass(class)
	require.NotNil(t, lightClass)
	assert.Equal(t, native.JavaClass, lightClass.Kind())
	assert.Equal(t, native.Java, lightClass.Language())
	assert.Equal(t, "A.kt", lightClass.File())
	assert.Same(t, lightClass, lights.LightClass(class))
	require.Len(t, lightClass.Children(), 2)

	method := lights.LightMethod(fn)
	require.NotNil(t, method)
	assert.Same(t, lightClass.Children()[0], method)
	assert.Same(t, lightClass, method.Parent())

	origin, ok := native.LightOrigin(method)
	require.True(t, ok)
	assert.Same(t, fn, origin)
	assert.Equal(t, "run", native.NameOf(method))

	field := lights.LightBackingField(prop)
	require.NotNil(t, field)
	assert.Equal(t, native.JavaField, field.Kind())
	assert.Nil(t, lights.LightBackingField(local))
	assert.Nil(t, lights.LightMethod(class))
}

func TestSyntheticDeclarations(t *testing.T) {
	t.Parallel()

	tree := native.NewTree("A.kt", native.Kotlin, nil)
	decl := tree.New(native.KtDestructuring, "val (a, b) = p")
	rhs := tree.New(native.KtSimpleName, "p")

	v := native.NewSyntheticVariable("tmp", decl, nil, rhs)
	assert.Equal(t, native.JavaLocalVariable, v.Kind())
	assert.Equal(t, "tmp", native.NameOf(v))
	assert.Same(t, rhs, v.Child(native.FieldInitializer))
	assert.Equal(t, decl.Span(), v.Span())
	assert.NotEqual(t, native.KeyOf(decl), native.KeyOf(v))

	param := native.NewSyntheticParameter(nil, decl, 0)
	assert.Equal(t, decl.Span(), param.Span())
	assert.Equal(t, "A.kt", param.File())

	_, ok := native.LightOrigin(param)
	assert.False(t, ok)
}

func TestMapResolver(t *testing.T) {
	t.Parallel()

	tree := native.NewTree("A.java", native.Java, nil)
	call := tree.New(native.JavaMethodCall, "a.b()")

	var resolver native.MapResolver

	_, ok := resolver.ResolveCall(call)
	assert.False(t, ok)

	resolver.Bind(call, native.Symbol{Name: "b", Owner: "pkg.A"})

	symbol, ok := resolver.ResolveCall(call)
	require.True(t, ok)
	assert.Equal(t, "pkg.A", symbol.Owner)

	_, ok = native.NopResolver{}.ResolveCall(call)
	assert.False(t, ok)
}

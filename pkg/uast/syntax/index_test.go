package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/syntax"
)

func TestIndexAt(t *testing.T) {
	t.Parallel()

	src := []byte("class A {\n  int x;\n}\n")
	tree := native.NewTree("A.java", native.Java, src)

	name := tree.NewAt(native.KindIdentifier, native.Span{Start: 6, End: 7})
	typ := tree.NewAt(native.JavaTypeElement, native.Span{Start: 12, End: 15})
	declarator := tree.NewAt(native.JavaVariable, native.Span{Start: 16, End: 17})
	field := tree.NewAt(native.JavaField, native.Span{Start: 12, End: 18}).Add(typ, declarator)
	body := tree.NewAt(native.JavaClassBody, native.Span{Start: 8, End: 20}).Add(field)
	class := tree.NewAt(native.JavaClass, native.Span{Start: 0, End: 20}).Add(name, body)
	file := tree.NewAt(native.JavaFile, native.Span{Start: 0, End: 21}).Add(class)
	synthetic := tree.New(native.JavaLiteral, "0")
	field.Add(synthetic)
	tree.SetRoot(file)

	idx := syntax.NewIndex(tree)
	assert.Equal(t, 7, idx.Len())

	tests := []struct {
		want   *native.Element
		name   string
		offset int
	}{
		{name: "file start", offset: 0, want: class},
		{name: "name", offset: 6, want: name},
		{name: "whitespace in class", offset: 7, want: class},
		{name: "body brace", offset: 8, want: body},
		{name: "type", offset: 13, want: typ},
		{name: "same start prefers inner", offset: 12, want: typ},
		{name: "declarator", offset: 16, want: declarator},
		{name: "semicolon", offset: 17, want: field},
		{name: "trailing newline", offset: 20, want: file},
		{name: "past end", offset: 21, want: nil},
		{name: "negative", offset: -1, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := idx.At(tt.offset)
			if tt.want == nil {
				assert.Nil(t, got)

				return
			}

			require.NotNil(t, got)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestIndexPositions(t *testing.T) {
	t.Parallel()

	src := []byte("class A {\n  int x;\n}\n")
	tree := native.NewTree("A.java", native.Java, src)
	typ := tree.NewAt(native.JavaTypeElement, native.Span{Start: 12, End: 15})
	tree.SetRoot(tree.NewAt(native.JavaFile, native.Span{Start: 0, End: 21}).Add(typ))

	idx := syntax.NewIndex(tree)

	offset, ok := idx.Offset(2, 3)
	require.True(t, ok)
	assert.Equal(t, 12, offset)

	line, column := idx.Position(12)
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, column)

	line, column = idx.Position(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, column)

	assert.Same(t, typ, idx.AtPosition(2, 4))

	_, ok = idx.Offset(0, 1)
	assert.False(t, ok)

	_, ok = idx.Offset(9, 1)
	assert.False(t, ok)

	assert.Nil(t, idx.AtPosition(2, 0))
}

func TestIndexEmptyTree(t *testing.T) {
	t.Parallel()

	idx := syntax.NewIndex(native.NewTree("A.java", native.Java, nil))

	assert.Zero(t, idx.Len())
	assert.Nil(t, idx.At(0))
}

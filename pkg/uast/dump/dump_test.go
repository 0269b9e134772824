package dump_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/dump"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/java"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// newFile converts a hand-built tree for:
//
//	class A {
//	  int m() { return 1 + x; }
//	}
func newFile(t *testing.T, literal string) uast.File {
	t.Helper()

	src := []byte("class A {\n  int m() { return 1 + x; }\n}\n")
	tree := native.NewTree("A.java", native.Java, src)
	at := func(kind native.Kind, start, end int) *native.Element {
		return tree.NewAt(kind, native.Span{Start: start, End: end})
	}

	binary := at(native.JavaBinary, 29, 34).
		Field(native.FieldLeft, tree.New(native.JavaLiteral, literal)).
		Tag(native.FieldOperator, at(native.KindUnknown, 31, 32)).
		Field(native.FieldRight, at(native.JavaReference, 33, 34))
	method := at(native.JavaMethod, 12, 37).
		Field(native.FieldType, at(native.JavaTypeElement, 12, 15)).
		Field(native.FieldName, at(native.KindIdentifier, 16, 17)).
		Field(native.FieldBody, at(native.JavaBlock, 20, 37).Add(at(native.JavaReturn, 22, 35).Add(binary)))
	class := at(native.JavaClass, 0, 39).
		Field(native.FieldName, at(native.KindIdentifier, 6, 7)).
		Add(at(native.JavaClassBody, 8, 39).Add(method))
	root := tree.SetRoot(at(native.JavaFile, 0, 40).Add(class))

	ctx := uast.NewContext(nil)
	ctx.Register(java.NewPlugin(ctx))

	file, ok := uast.ConvertOpt[uast.File](ctx, root, nil)
	require.True(t, ok)

	return file
}

func findKind(n *dump.Node, kind string) *dump.Node {
	if n == nil {
		return nil
	}

	if n.Kind == kind {
		return n
	}

	for _, child := range n.Children {
		if found := findKind(child, kind); found != nil {
			return found
		}
	}

	return nil
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	doc := dump.NewDocument("A.java", newFile(t, "1"))
	require.NotNil(t, doc.Root)

	assert.Equal(t, "File", doc.Root.Kind)
	assert.Equal(t, native.KindSetVersion, doc.KindSetVersion)

	class := findKind(doc.Root, "Class")
	require.NotNil(t, class)
	assert.Equal(t, "A", class.Name)
	assert.Equal(t, "java.class", class.Native)
	assert.Equal(t, "java", class.Language)
	require.NotNil(t, class.Span)
	assert.Equal(t, 0, class.Span.Start)

	method := findKind(doc.Root, "Method")
	require.NotNil(t, method)
	assert.Equal(t, "m", method.Name)

	binary := findKind(doc.Root, "Binary")
	require.NotNil(t, binary)
	assert.Equal(t, "+", binary.Value)

	literal := findKind(doc.Root, "Literal")
	require.NotNil(t, literal)
	assert.Equal(t, "1", literal.Value)
	assert.Nil(t, literal.Span, "synthetic spans are not dumped")

	assert.Greater(t, doc.Root.Count(), 5)
	assert.Nil(t, dump.Snapshot(nil))
	assert.Zero(t, (*dump.Node)(nil).Count())
}

func TestEncodeRoundTripAndValidate(t *testing.T) {
	t.Parallel()

	doc := dump.NewDocument("A.java", newFile(t, "1"))

	var buf bytes.Buffer
	require.NoError(t, dump.Encode(&buf, doc, dump.FormatJSON))
	require.NoError(t, dump.Validate(buf.Bytes()))

	decoded, err := dump.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	if diff := cmp.Diff(doc, decoded); diff != "" {
		t.Errorf("decoded document mismatch (-want +got):\n%s", diff)
	}

	var yamlBuf bytes.Buffer
	require.NoError(t, dump.Encode(&yamlBuf, doc, dump.FormatYAML))
	assert.Contains(t, yamlBuf.String(), "kind: File")

	var treeBuf bytes.Buffer
	require.NoError(t, dump.Encode(&treeBuf, doc, dump.FormatTree))
	assert.True(t, strings.HasPrefix(treeBuf.String(), "File"))
	assert.Contains(t, treeBuf.String(), `  Class name="A" [java.class]`)

	require.ErrorIs(t, dump.Encode(&treeBuf, doc, "xml"), dump.ErrUnknownFormat)
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	bad := map[string]any{
		"file":             "A.java",
		"kind_set_version": 1,
		"root":             map[string]any{"kind": "Widget"},
	}

	data, err := json.Marshal(bad)
	require.NoError(t, err)

	err = dump.Validate(data)
	require.ErrorIs(t, err, dump.ErrInvalidDocument)

	var verr *dump.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Problems)

	require.Error(t, dump.Validate([]byte("{")))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"json", "YAML", "tree"} {
		_, err := dump.ParseFormat(name)
		require.NoError(t, err, name)
	}

	_, err := dump.ParseFormat("xml")
	require.ErrorIs(t, err, dump.ErrUnknownFormat)
}

func TestDiff(t *testing.T) {
	t.Parallel()

	a := dump.Snapshot(newFile(t, "1"))
	b := dump.Snapshot(newFile(t, "2"))

	assert.Nil(t, dump.Diff(a, dump.Snapshot(newFile(t, "1"))))

	changes := dump.Diff(a, b)
	require.NotEmpty(t, changes)

	inserted, deleted := dump.Stats(changes)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, deleted)

	for _, c := range changes {
		switch c.Op {
		case diffmatchpatch.DiffDelete:
			assert.Contains(t, c.Line, `Literal value="1" [java.literal]`)
		case diffmatchpatch.DiffInsert:
			assert.Contains(t, c.Line, `Literal value="2" [java.literal]`)
		case diffmatchpatch.DiffEqual:
		}
	}

	unified := dump.Unified(changes)
	assert.True(t, strings.HasPrefix(unified, " File"))
	assert.Contains(t, unified, "\n-")
	assert.Contains(t, unified, "\n+")

	var ops []diffmatchpatch.Operation
	for _, c := range changes {
		ops = append(ops, c.Op)
	}

	assert.Contains(t, ops, diffmatchpatch.DiffEqual)
}

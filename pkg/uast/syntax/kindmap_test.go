package syntax_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/syntax"
)

func TestEmbeddedKindMaps(t *testing.T) {
	t.Parallel()

	maps, err := syntax.EmbeddedKindMaps()
	require.NoError(t, err)
	require.Len(t, maps, 2)

	assert.Equal(t, native.Java, maps[0].Language)
	assert.Equal(t, []string{".java"}, maps[0].Extensions)
	assert.Equal(t, native.Kotlin, maps[1].Language)
	assert.Equal(t, []string{".kt", ".kts"}, maps[1].Extensions)
	assert.Equal(t, "kotlin", maps[1].GrammarName())

	for _, km := range maps {
		assert.Equal(t, native.KindSetVersion, km.KindSetVersion)
	}
}

func TestKindMapLookup(t *testing.T) {
	t.Parallel()

	maps, err := syntax.EmbeddedKindMaps()
	require.NoError(t, err)

	kt := maps[1]

	rule := kt.Lookup("variable_declaration", "property_declaration")
	require.NotNil(t, rule)
	assert.True(t, rule.Flatten)

	rule = kt.Lookup("variable_declaration", "for_statement")
	require.NotNil(t, rule)
	assert.Equal(t, "kotlin.parameter", rule.Kind)

	rule = kt.Lookup("variable_declaration", "multi_variable_declaration")
	require.NotNil(t, rule)
	assert.Equal(t, "kotlin.destructuring_entry", rule.Kind)

	assert.Nil(t, kt.Lookup("no_such_node", ""))
	assert.True(t, kt.Lookup("line_comment", "").Skip)
}

func TestLoadKindMapErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "no language",
			doc:  "kind_set_version: 1\n",
			want: "language not set",
		},
		{
			name: "stale version",
			doc:  "language: java\nkind_set_version: 99\n",
			want: "kind set version mismatch",
		},
		{
			name: "unknown kind",
			doc:  "language: java\nkind_set_version: 1\nnodes:\n  program: {kind: java.nope}\n",
			want: "unknown native kind",
		},
		{
			name: "selector without source",
			doc:  "language: java\nkind_set_version: 1\nnodes:\n  program:\n    kind: java.file\n    fields:\n      - {as: name}\n",
			want: "exactly one source",
		},
		{
			name: "selector with two sources",
			doc:  "language: java\nkind_set_version: 1\nnodes:\n  program:\n    kind: java.file\n    fields:\n      - {as: name, index: 0, type: identifier}\n",
			want: "exactly one source",
		},
		{
			name: "unknown reshaper",
			doc:  "language: java\nkind_set_version: 1\nnodes:\n  program: {kind: java.file, reshape: twist}\n",
			want: "unknown reshaper",
		},
		{
			name: "bad within",
			doc:  "language: java\nkind_set_version: 1\nnodes:\n  program:\n    within:\n      x: {kind: java.nope}\n",
			want: "program within x",
		},
		{
			name: "not yaml",
			doc:  "language: [",
			want: "decoding kind map",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := syntax.LoadKindMap(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadKindMapNormalizes(t *testing.T) {
	t.Parallel()

	doc := "language: java\ngrammar: java\nextensions: [.JAVA]\nkind_set_version: 1\nnodes:\n  program:\n  block: {kind: java.block}\n"

	km, err := syntax.LoadKindMap(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{".java"}, km.Extensions)
	assert.NotNil(t, km.Lookup("program", ""), "empty rules load as unmapped kinds")
	assert.Equal(t, "java.block", km.Lookup("block", "program").Kind)
}

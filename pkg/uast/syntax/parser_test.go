package syntax_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/java"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/kotlin"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/syntax"
)

const javaSource = `package demo;

class Greeter {
    private String greeting = "Hi";

    String greet(String name) {
        return greeting + name;
    }
}
`

const kotlinSource = `package demo

class Greeter {
    val greeting: String = "Hi"

    fun greet(name: String): String {
        return greeting + name
    }
}
`

func newParser(t *testing.T) *syntax.Parser {
	t.Helper()

	parser, err := syntax.NewParser()
	require.NoError(t, err)

	return parser
}

func find(tree *native.Tree, kind native.Kind) []*native.Element {
	var out []*native.Element

	tree.Walk(func(e *native.Element) bool {
		if e.Kind() == kind {
			out = append(out, e)
		}

		return true
	})

	return out
}

func TestParserLanguages(t *testing.T) {
	t.Parallel()

	parser := newParser(t)

	assert.Equal(t, []native.Language{native.Java, native.Kotlin}, parser.Languages())
	assert.True(t, parser.IsSupported("src/Main.java"))
	assert.True(t, parser.IsSupported("build.gradle.KTS"))
	assert.False(t, parser.IsSupported("main.go"))
	assert.NotNil(t, parser.KindMap(native.Kotlin))
	assert.Nil(t, parser.KindMap(native.LanguageUnknown))

	lang, ok := parser.Language("Greeter.kt", nil)
	require.True(t, ok)
	assert.Equal(t, native.Kotlin, lang)
}

func TestParseJava(t *testing.T) {
	t.Parallel()

	tree, err := newParser(t).Parse(context.Background(), "Greeter.java", []byte(javaSource))
	require.NoError(t, err)

	root := tree.Root()
	require.NotNil(t, root)
	assert.Equal(t, native.JavaFile, root.Kind())
	assert.Equal(t, "program", root.Grammar())
	assert.Equal(t, 1, root.Span().Line)

	classes := find(tree, native.JavaClass)
	require.Len(t, classes, 1)
	assert.Equal(t, "Greeter", native.NameOf(classes[0]))
	assert.Equal(t, 3, classes[0].Span().Line)

	methods := find(tree, native.JavaMethod)
	require.Len(t, methods, 1)
	assert.Equal(t, "greet", native.NameOf(methods[0]))

	declarators := find(tree, native.JavaVariable)
	require.Len(t, declarators, 1)
	assert.Equal(t, "greeting", native.NameOf(declarators[0]))
	assert.Equal(t, `"Hi"`, declarators[0].Child(native.FieldInitializer).Text())

	binaries := find(tree, native.JavaBinary)
	require.Len(t, binaries, 1)
	assert.Equal(t, "+", binaries[0].Child(native.FieldOperator).Text())
	assert.Equal(t, "greeting", binaries[0].Child(native.FieldLeft).Text())

	assert.Empty(t, find(tree, native.KindComment))
}

func TestParseKotlin(t *testing.T) {
	t.Parallel()

	tree, err := newParser(t).Parse(context.Background(), "Greeter.kt", []byte(kotlinSource))
	require.NoError(t, err)

	assert.Equal(t, native.KtFile, tree.Root().Kind())

	classes := find(tree, native.KtClass)
	require.Len(t, classes, 1)
	assert.Equal(t, "Greeter", native.NameOf(classes[0]))

	functions := find(tree, native.KtFunction)
	require.Len(t, functions, 1)
	assert.Equal(t, "greet", native.NameOf(functions[0]))

	properties := find(tree, native.KtProperty)
	require.Len(t, properties, 1)
	assert.Equal(t, "greeting", native.NameOf(properties[0]))

	binaries := find(tree, native.KtBinary)
	require.Len(t, binaries, 1)
	assert.Equal(t, "+", binaries[0].Child(native.FieldOperator).Text())
}

func TestParsedTreesConvert(t *testing.T) {
	t.Parallel()

	parser := newParser(t)

	tests := []struct {
		file   string
		source string
	}{
		{file: "Greeter.java", source: javaSource},
		{file: "Greeter.kt", source: kotlinSource},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			tree, err := parser.Parse(context.Background(), tt.file, []byte(tt.source))
			require.NoError(t, err)

			ctx := uast.NewContext(nil)
			ctx.Register(java.NewPlugin(ctx))
			ctx.Register(kotlin.NewPlugin(ctx))

			file, ok := uast.ConvertOpt[uast.File](ctx, tree.Root(), nil)
			require.True(t, ok)

			classes := file.Classes()
			require.Len(t, classes, 1)
			assert.Equal(t, "demo.Greeter", classes[0].QualifiedName())

			methods := classes[0].Methods()
			require.Len(t, methods, 1)
			assert.Equal(t, "greet", methods[0].Name())
			require.Len(t, methods[0].Parameters(), 1)
			assert.Equal(t, "name", methods[0].Parameters()[0].Name())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	parser := newParser(t)

	_, err := parser.Parse(context.Background(), "notes.txt", []byte("hello"))
	require.ErrorIs(t, err, syntax.ErrUnsupportedLanguage)

	_, err = parser.ParseAs(context.Background(), "cobol", "a.cbl", nil)
	require.ErrorIs(t, err, syntax.ErrUnsupportedLanguage)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = parser.Parse(ctx, "A.java", []byte(javaSource))
	require.ErrorIs(t, err, context.Canceled)
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	lang, ok := syntax.DetectLanguage("Main.JAVA", nil)
	require.True(t, ok)
	assert.Equal(t, native.Java, lang)

	lang, ok = syntax.DetectLanguage("settings.kts", nil)
	require.True(t, ok)
	assert.Equal(t, native.Kotlin, lang)

	_, ok = syntax.DetectLanguage("README.md", []byte("# readme"))
	assert.False(t, ok)
}

package syntax

import (
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"github.com/alexaandru/go-sitter-forest/java"
	"github.com/alexaandru/go-sitter-forest/kotlin"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// grammarFuncs maps grammar names to their tree-sitter GetLanguage functions.
// Only grammars with an embedded kind map are included.
var grammarFuncs = map[string]func() unsafe.Pointer{
	"java":   java.GetLanguage,
	"kotlin": kotlin.GetLanguage,
}

var grammarCache sync.Map

// GetGrammar returns the tree-sitter language for the given grammar name, or
// nil if it is not linked in.
func GetGrammar(name string) *sitter.Language {
	if cached, ok := grammarCache.Load(name); ok {
		lang, castOK := cached.(*sitter.Language)
		if castOK {
			return lang
		}
	}

	fn, ok := grammarFuncs[name]
	if !ok {
		return nil
	}

	lang := sitter.NewLanguage(fn())
	grammarCache.Store(name, lang)

	return lang
}

// enryNames maps enry language names to native languages.
var enryNames = map[string]native.Language{
	"Java":   native.Java,
	"Kotlin": native.Kotlin,
}

// DetectLanguage guesses the language of a file, first from its extension
// and then from its content.
func DetectLanguage(filename string, content []byte) (native.Language, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".java":
		return native.Java, true
	case ".kt", ".kts":
		return native.Kotlin, true
	}

	lang, ok := enryNames[enry.GetLanguage(filepath.Base(filename), content)]

	return lang, ok
}

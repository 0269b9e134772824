// Package syntax builds native trees from source text with tree-sitter.
//
// Each supported language is described by an embedded YAML kind map that
// translates grammar node types into native kinds and fields; the frontends
// in the java and kotlin packages then convert the native tree.
package syntax

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// Sentinel errors for parsing.
var (
	ErrUnsupportedLanguage = errors.New("syntax: unsupported language")
	errGrammarNotAvailable = errors.New("syntax: tree-sitter grammar not available")
	errNoRootNode          = errors.New("syntax: no root node")
	errPoolType            = errors.New("syntax: pool returned unexpected type")
)

// Option configures a Parser.
type Option func(*Parser)

// WithKindMaps replaces the embedded kind maps.
func WithKindMaps(maps ...*KindMap) Option {
	return func(p *Parser) {
		p.maps = maps
	}
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser parses source files of every language it has a kind map for. It is
// safe for concurrent use.
type Parser struct {
	logger     *slog.Logger
	byLanguage map[native.Language]*grammarParser
	byExt      map[string]*grammarParser
	maps       []*KindMap
}

// NewParser creates a parser over the embedded kind maps. Grammars are
// loaded lazily on first use.
func NewParser(opts ...Option) (*Parser, error) {
	p := &Parser{logger: slog.Default()}

	for _, opt := range opts {
		opt(p)
	}

	if p.maps == nil {
		maps, err := EmbeddedKindMaps()
		if err != nil {
			return nil, err
		}

		p.maps = maps
	}

	p.byLanguage = make(map[native.Language]*grammarParser, len(p.maps))
	p.byExt = make(map[string]*grammarParser)

	for _, km := range p.maps {
		gp := &grammarParser{km: km}
		p.byLanguage[km.Language] = gp

		for _, ext := range km.Extensions {
			p.byExt[ext] = gp
		}
	}

	return p, nil
}

// Languages returns the languages the parser has kind maps for, sorted.
func (p *Parser) Languages() []native.Language {
	out := make([]native.Language, 0, len(p.byLanguage))
	for lang := range p.byLanguage {
		out = append(out, lang)
	}

	slices.Sort(out)

	return out
}

// KindMap returns the kind map of a language, or nil.
func (p *Parser) KindMap(lang native.Language) *KindMap {
	if gp, ok := p.byLanguage[lang]; ok {
		return gp.km
	}

	return nil
}

// IsSupported reports whether the file extension has a kind map.
func (p *Parser) IsSupported(filename string) bool {
	_, ok := p.byExt[strings.ToLower(filepath.Ext(filename))]

	return ok
}

// Language returns the language parsed for a file, judged by extension
// first and by content otherwise.
func (p *Parser) Language(filename string, content []byte) (native.Language, bool) {
	if gp, ok := p.byExt[strings.ToLower(filepath.Ext(filename))]; ok {
		return gp.km.Language, true
	}

	lang, ok := DetectLanguage(filename, content)
	if !ok {
		return native.LanguageUnknown, false
	}

	_, supported := p.byLanguage[lang]

	return lang, supported
}

// Parse builds the native tree of a file.
func (p *Parser) Parse(ctx context.Context, filename string, content []byte) (*native.Tree, error) {
	lang, ok := p.Language(filename, content)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filename)
	}

	return p.ParseAs(ctx, lang, filename, content)
}

// ParseAs builds the native tree of a file in a known language.
func (p *Parser) ParseAs(ctx context.Context, lang native.Language, filename string, content []byte) (*native.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gp, ok := p.byLanguage[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}

	tree, err := gp.parse(ctx, filename, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	p.logger.DebugContext(ctx, "parsed file",
		"file", filename, "language", string(lang), "bytes", len(content))

	return tree, nil
}

// grammarParser parses one language with a pool of tree-sitter parsers.
type grammarParser struct {
	km      *KindMap
	initErr error
	pool    sync.Pool
	once    sync.Once
}

func (gp *grammarParser) init() error {
	gp.once.Do(func() {
		lang := GetGrammar(gp.km.GrammarName())
		if lang == nil {
			gp.initErr = fmt.Errorf("%w: %s", errGrammarNotAvailable, gp.km.GrammarName())

			return
		}

		gp.pool = sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		}
	})

	return gp.initErr
}

func (gp *grammarParser) parse(ctx context.Context, filename string, content []byte) (*native.Tree, error) {
	if err := gp.init(); err != nil {
		return nil, err
	}

	tsParser, ok := gp.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer gp.pool.Put(tsParser)

	tsTree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter: %w", err)
	}
	defer tsTree.Close()

	root := tsTree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	tree := native.NewTree(filename, gp.km.Language, content)
	b := &builder{km: gp.km, tree: tree}
	tree.SetRoot(b.root(root))

	return tree, nil
}

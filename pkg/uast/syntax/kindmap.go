package syntax

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

//go:embed kindmaps/*.yaml
var kindMapFS embed.FS

// Sentinel errors for kind map loading.
var (
	errUnknownKind     = errors.New("kind map: unknown native kind")
	errStaleKindMap    = errors.New("kind map: kind set version mismatch")
	errNoLanguage      = errors.New("kind map: language not set")
	errBadSelector     = errors.New("kind map: selector needs exactly one source")
	errUnknownReshaper = errors.New("kind map: unknown reshaper")
)

// KindMap translates the node types of one tree-sitter grammar into native
// kinds and fields.
type KindMap struct {
	Nodes          map[string]*Rule `yaml:"nodes"`
	Language       native.Language  `yaml:"language"`
	Grammar        string           `yaml:"grammar"`
	Extensions     []string         `yaml:"extensions"`
	KindSetVersion int              `yaml:"kind_set_version"`
}

// Rule describes how one grammar type becomes native elements.
//
// A rule either maps the node to Kind, drops it (Skip), splices its children
// into the parent (Flatten), or replaces it by its named children (Hoist).
type Rule struct {
	// Within overrides the rule when the node is reached from the given
	// parent grammar type.
	Within   map[string]*Rule `yaml:"within"`
	Kind     string           `yaml:"kind"`
	Wrap     string           `yaml:"wrap"`
	Nest     string           `yaml:"nest"`
	Reshape  string           `yaml:"reshape"`
	Fields   []Selector       `yaml:"fields"`
	Variants []Variant        `yaml:"variants"`
	Leaf     bool             `yaml:"leaf"`
	Skip     bool             `yaml:"skip"`
	Flatten  bool             `yaml:"flatten"`
	Hoist    bool             `yaml:"hoist"`

	kind native.Kind
	wrap native.Kind
	nest native.Kind
}

// Selector picks the child recorded under the native field As. Exactly one
// of Field, Index, Type, After or Token is set.
type Selector struct {
	// Index is the position among the named children.
	Index *int `yaml:"index"`
	As    string `yaml:"as"`
	// Field is a tree-sitter field name.
	Field string `yaml:"field"`
	// Type selects the first named child of the grammar type.
	Type string `yaml:"type"`
	// After selects the first named child following the anonymous token.
	After string `yaml:"after"`
	// Token selects the first anonymous token following a named child.
	Token bool `yaml:"token"`
}

// Variant switches the kind of a node on the shape of its children.
type Variant struct {
	Kind string `yaml:"kind"`
	// Has matches when a named child of this grammar type is present.
	Has string `yaml:"has"`
	// Token matches an anonymous child with this text. With Child set, the
	// token is looked up among the children of that named child instead.
	Token string `yaml:"token"`
	Child string `yaml:"child"`
	// Leading matches when the first child is anonymous.
	Leading bool `yaml:"leading"`

	kind native.Kind
}

// LoadKindMap reads and validates a YAML kind map.
func LoadKindMap(r io.Reader) (*KindMap, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading kind map: %w", err)
	}

	var km KindMap
	if err := yaml.Unmarshal(data, &km); err != nil {
		return nil, fmt.Errorf("decoding kind map: %w", err)
	}

	if err := km.compile(); err != nil {
		return nil, err
	}

	return &km, nil
}

// EmbeddedKindMaps returns the kind maps shipped with the package, sorted by
// language.
func EmbeddedKindMaps() ([]*KindMap, error) {
	entries, err := fs.ReadDir(kindMapFS, "kindmaps")
	if err != nil {
		return nil, fmt.Errorf("listing kind maps: %w", err)
	}

	out := make([]*KindMap, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		file, err := kindMapFS.Open(path.Join("kindmaps", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("opening kind map %s: %w", entry.Name(), err)
		}

		km, err := LoadKindMap(file)
		file.Close()

		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		out = append(out, km)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Language < out[j].Language })

	return out, nil
}

// Lookup returns the rule for grammar type typ reached from parent, or nil
// when the type is unmapped.
func (km *KindMap) Lookup(typ, parent string) *Rule {
	rule, ok := km.Nodes[typ]
	if !ok {
		return nil
	}

	if override, ok := rule.Within[parent]; ok {
		return override
	}

	return rule
}

// GrammarName returns the tree-sitter grammar of the map, which defaults to
// the language name.
func (km *KindMap) GrammarName() string {
	if km.Grammar != "" {
		return km.Grammar
	}

	return string(km.Language)
}

func (km *KindMap) compile() error {
	if km.Language == "" {
		return errNoLanguage
	}

	if km.KindSetVersion != native.KindSetVersion {
		return fmt.Errorf("%w: map has %d, kinds are at %d", errStaleKindMap, km.KindSetVersion, native.KindSetVersion)
	}

	for i, ext := range km.Extensions {
		km.Extensions[i] = strings.ToLower(ext)
	}

	for typ, rule := range km.Nodes {
		if rule == nil {
			rule = &Rule{}
			km.Nodes[typ] = rule
		}

		if err := rule.compile(); err != nil {
			return fmt.Errorf("%s: %w", typ, err)
		}

		for parent, override := range rule.Within {
			if override == nil {
				override = &Rule{}
				rule.Within[parent] = override
			}

			if err := override.compile(); err != nil {
				return fmt.Errorf("%s within %s: %w", typ, parent, err)
			}
		}
	}

	return nil
}

func (r *Rule) compile() error {
	var err error

	if r.kind, err = kindOf(r.Kind); err != nil {
		return err
	}

	if r.wrap, err = kindOf(r.Wrap); err != nil {
		return err
	}

	if r.nest, err = kindOf(r.Nest); err != nil {
		return err
	}

	if r.Reshape != "" {
		if _, ok := reshapers[r.Reshape]; !ok {
			return fmt.Errorf("%w: %s", errUnknownReshaper, r.Reshape)
		}
	}

	for i := range r.Variants {
		if r.Variants[i].kind, err = kindOf(r.Variants[i].Kind); err != nil {
			return err
		}
	}

	for _, sel := range r.Fields {
		if sel.sources() != 1 || sel.As == "" {
			return fmt.Errorf("%w: %+v", errBadSelector, sel)
		}
	}

	return nil
}

func (s Selector) sources() int {
	n := 0

	for _, set := range []bool{s.Field != "", s.Index != nil, s.Type != "", s.After != "", s.Token} {
		if set {
			n++
		}
	}

	return n
}

// kindOf resolves a kind name; the empty name is KindUnknown.
func kindOf(name string) (native.Kind, error) {
	if name == "" {
		return native.KindUnknown, nil
	}

	kind, ok := native.KindByName(name)
	if !ok {
		return native.KindUnknown, fmt.Errorf("%w: %q", errUnknownKind, name)
	}

	return kind, nil
}

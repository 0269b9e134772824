package uast

import (
	"log/slog"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// Observer receives conversion outcomes. Implementations must be safe for
// concurrent use.
type Observer interface {
	// ObserveConversion is called once per dispatched native node. language
	// is the language of the plugin that converted it, or "" when none did.
	ObserveConversion(language native.Language, kind native.Kind, converted bool)
	// ObserveLowering is called when a frontend desugars construct into size
	// synthetic elements.
	ObserveLowering(construct string, size int)
}

// NopObserver discards observations.
type NopObserver struct{}

// ObserveConversion does nothing.
func (NopObserver) ObserveConversion(native.Language, native.Kind, bool) {}

// ObserveLowering does nothing.
func (NopObserver) ObserveLowering(string, int) {}

// Context dispatches native nodes to the registered plugins. Plugins get the
// Context at construction and use it to delegate to one another.
type Context struct {
	registry *Registry
	logger   *slog.Logger
	observer Observer
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the logger used for debug output about unsupported nodes.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver sets the conversion observer.
func WithObserver(observer Observer) ContextOption {
	return func(c *Context) {
		if observer != nil {
			c.observer = observer
		}
	}
}

// NewContext creates a dispatcher over registry. A nil registry is replaced
// by an empty one.
func NewContext(registry *Registry, opts ...ContextOption) *Context {
	if registry == nil {
		registry = NewRegistry()
	}

	c := &Context{
		registry: registry,
		logger:   slog.Default(),
		observer: NopObserver{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Registry returns the registry the context dispatches over.
func (c *Context) Registry() *Registry { return c.registry }

// Logger returns the context logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Observer returns the conversion observer.
func (c *Context) Observer() Observer { return c.observer }

// Register adds p to the underlying registry.
func (c *Context) Register(p Plugin) { c.registry.Register(p) }

// ConvertElement converts element under parent with the first plugin, in
// priority order, that accepts it and returns a result. Uniform input is
// returned unchanged; unsupported input yields nil.
func (c *Context) ConvertElement(element any, parent Element) Element {
	if e, ok := element.(Element); ok {
		return e
	}

	n, ok := NativeOf(element)
	if !ok {
		return nil
	}

	for _, p := range c.registry.Plugins() {
		if !Supports(p, n) {
			continue
		}

		if converted := p.ConvertElement(n, parent); converted != nil {
			c.observer.ObserveConversion(p.Language(), n.Kind(), true)

			return converted
		}
	}

	c.observer.ObserveConversion("", n.Kind(), false)
	c.logger.Debug("uast: unsupported native node",
		"kind", n.Kind().String(), "file", n.File(), "start", n.Span().Start)

	return nil
}

// ConvertWithParent converts element after resolving its ancestors to
// uniform elements. It yields nil when element or any ancestor is
// unsupported.
func (c *Context) ConvertWithParent(element any) Element {
	if e, ok := element.(Element); ok {
		return e
	}

	n, ok := NativeOf(element)
	if !ok {
		return nil
	}

	for _, p := range c.registry.Plugins() {
		if !Supports(p, n) {
			continue
		}

		if converted := p.ConvertWithParent(n); converted != nil {
			c.observer.ObserveConversion(p.Language(), n.Kind(), true)

			return converted
		}
	}

	c.observer.ObserveConversion("", n.Kind(), false)
	c.logger.Debug("uast: no ancestor chain for native node",
		"kind", n.Kind().String(), "file", n.File(), "start", n.Span().Start)

	return nil
}

// MethodCall asks each plugin in turn whether n calls ownerFQN.methodName.
func (c *Context) MethodCall(n native.Node, ownerFQN, methodName string) (Call, native.Symbol, bool) {
	for _, p := range c.registry.Plugins() {
		if !Supports(p, n) {
			continue
		}

		if call, symbol, ok := p.MethodCall(n, ownerFQN, methodName); ok {
			return call, symbol, true
		}
	}

	return nil, native.Symbol{}, false
}

// ConstructorCall asks each plugin in turn whether n creates an fqn.
func (c *Context) ConstructorCall(n native.Node, fqn string) (Call, native.Symbol, bool) {
	for _, p := range c.registry.Plugins() {
		if !Supports(p, n) {
			continue
		}

		if call, symbol, ok := p.ConstructorCall(n, fqn); ok {
			return call, symbol, true
		}
	}

	return nil, native.Symbol{}, false
}

// LogShapeMismatch records a failed typed conversion at debug level.
func (c *Context) LogShapeMismatch(n native.Node, got Element, want string) {
	kind := "nil"
	if got != nil {
		kind = got.ElementKind().String()
	}

	c.logger.Debug("uast: shape mismatch", "native", native.KeyOf(n).String(), "got", kind, "want", want)
}

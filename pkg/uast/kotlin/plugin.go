// Package kotlin is the Kotlin frontend. It claims Kotlin syntax nodes and
// the light elements generated for Kotlin declarations, delegates plain
// Java-shaped declarations to the Java frontend found in the shared registry,
// and lowers string templates and destructuring declarations into uniform
// expressions.
package kotlin

import (
	"sync/atomic"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// DefaultPriority is above the Java frontend so that light elements with a
// Kotlin origin are claimed here first.
const DefaultPriority = 10

var extensions = []string{".kt", ".kts"}

// Plugin is the Kotlin frontend.
type Plugin struct {
	ctx      *uast.Context
	resolver native.Resolver
	lights   native.LightProvider
	java     atomic.Pointer[uast.Plugin]
	priority int
}

var _ uast.Plugin = (*Plugin)(nil)

// Option configures a Plugin.
type Option func(*Plugin)

// WithResolver sets the call resolution oracle.
func WithResolver(resolver native.Resolver) Option {
	return func(p *Plugin) {
		if resolver != nil {
			p.resolver = resolver
		}
	}
}

// WithLights sets the light element provider. The default derives light
// elements from the tree shape.
func WithLights(lights native.LightProvider) Option {
	return func(p *Plugin) {
		if lights != nil {
			p.lights = lights
		}
	}
}

// WithPriority overrides DefaultPriority.
func WithPriority(priority int) Option {
	return func(p *Plugin) {
		p.priority = priority
	}
}

// NewPlugin creates the Kotlin frontend. The Java frontend is looked up in
// the registry of ctx on first use. A nil ctx gets a private context holding
// only this plugin, in which case Java delegation yields nothing.
func NewPlugin(ctx *uast.Context, opts ...Option) *Plugin {
	p := &Plugin{
		ctx:      ctx,
		resolver: native.NopResolver{},
		lights:   native.NewStructuralLights(),
		priority: DefaultPriority,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.ctx == nil {
		p.ctx = uast.NewContext(uast.NewRegistry(p))
	}

	return p
}

// Language returns native.Kotlin.
func (p *Plugin) Language() native.Language { return native.Kotlin }

// Priority returns the dispatch priority.
func (p *Plugin) Priority() int { return p.priority }

// Extensions returns the Kotlin file extensions.
func (p *Plugin) Extensions() []string { return extensions }

// IsFileSupported reports whether fileName is a Kotlin source or script.
func (p *Plugin) IsFileSupported(fileName string) bool {
	return uast.HasExtension(fileName, extensions)
}

// Context returns the dispatcher the plugin converts children through.
func (p *Plugin) Context() *uast.Context { return p.ctx }

// Lights returns the light element provider.
func (p *Plugin) Lights() native.LightProvider { return p.lights }

// ConvertElement converts a Kotlin node, a light element or a Java-shaped
// declaration under parent. Declarations are tried first, then the
// expression table.
func (p *Plugin) ConvertElement(element any, parent uast.Element) uast.Element {
	if e, ok := element.(uast.Element); ok {
		return e
	}

	n, ok := uast.NativeOf(element)
	if !ok || !p.owns(n) {
		return nil
	}

	if decl := p.convertDeclaration(n, parent); decl != nil {
		return decl
	}

	return p.convert(n, parent)
}

// ConvertWithParent converts element after converting its ancestors.
func (p *Plugin) ConvertWithParent(element any) uast.Element {
	if e, ok := element.(uast.Element); ok {
		return e
	}

	n, ok := uast.NativeOf(element)
	if !ok || !p.owns(n) {
		return nil
	}

	if n.Kind() == native.KtFile {
		return p.convertDeclaration(n, nil)
	}

	return uast.ResolveWithParent(n, p.ConvertElement, transparent)
}

// MethodCall returns the call n when the oracle resolves it to a method
// named methodName declared in ownerFQN. An empty ownerFQN matches any owner.
func (p *Plugin) MethodCall(n native.Node, ownerFQN, methodName string) (uast.Call, native.Symbol, bool) {
	if n == nil || n.Kind() != native.KtCall {
		return nil, native.Symbol{}, false
	}

	symbol, ok := p.resolver.ResolveCall(n)
	if !ok || symbol.Constructor || symbol.Name != methodName {
		return nil, native.Symbol{}, false
	}

	if ownerFQN != "" && symbol.Owner != ownerFQN {
		return nil, native.Symbol{}, false
	}

	call, ok := p.ConvertWithParent(n).(uast.Call)
	if !ok {
		return nil, native.Symbol{}, false
	}

	return call, symbol, true
}

// ConstructorCall returns the call n when the oracle resolves it to a
// constructor of fqn.
func (p *Plugin) ConstructorCall(n native.Node, fqn string) (uast.Call, native.Symbol, bool) {
	if n == nil || n.Kind() != native.KtCall {
		return nil, native.Symbol{}, false
	}

	symbol, ok := p.resolver.ResolveCall(n)
	if !ok || !symbol.Constructor || symbol.Owner != fqn {
		return nil, native.Symbol{}, false
	}

	call, ok := p.ConvertWithParent(n).(uast.Call)
	if !ok {
		return nil, native.Symbol{}, false
	}

	return call, symbol, true
}

// javaPlugin returns the Java frontend of the shared registry, or nil while
// none is registered.
func (p *Plugin) javaPlugin() uast.Plugin {
	if cached := p.java.Load(); cached != nil {
		return *cached
	}

	found := p.ctx.Registry().ByLanguage(native.Java)
	if found == nil {
		return nil
	}

	p.java.Store(&found)

	return found
}

func (p *Plugin) owns(n native.Node) bool {
	return n.Kind().IsKotlin() || n.Kind().IsJava() || n.Language() == native.Kotlin
}

// transparent reports whether n has no uniform counterpart on the parent
// chain, so its children hang off the uniform form of its parent.
func transparent(n native.Node) bool {
	switch n.Kind() {
	case native.KtClassBody, native.KtModifiers, native.KtParameterList,
		native.KtValueArgumentList, native.KtValueArgument,
		native.KtLiteralEntry, native.KtEscapeEntry, native.KtSimpleEntry, native.KtBlockEntry:
		return true
	default:
		return false
	}
}

// expr converts n to an expression under parent, or returns nil.
func (p *Plugin) expr(n native.Node, parent uast.Element) uast.Expression {
	if n == nil {
		return nil
	}

	expr, _ := uast.ConvertOpt[uast.Expression](p.ctx, n, parent)

	return expr
}

// exprOrEmpty converts n, substituting uast.Empty.
func (p *Plugin) exprOrEmpty(n native.Node, parent uast.Element) uast.Expression {
	return uast.ConvertExpressionOrEmpty(p.ctx, n, parent)
}

// exprs converts each node, skipping the ones that are not expressions.
func (p *Plugin) exprs(nodes []native.Node, parent uast.Element) []uast.Expression {
	return uast.ConvertAll[uast.Expression](p.ctx, nodes, parent)
}

// Package java is the Java frontend. It wraps Java native nodes, and the
// Java-shaped light elements other frontends generate, in uniform elements.
package java

import (
	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// DefaultPriority is the dispatch priority of the Java frontend. It is the
// lowest so that frontends producing Java-shaped light elements claim them
// first.
const DefaultPriority = 0

var extensions = []string{".java"}

// Plugin is the Java frontend.
type Plugin struct {
	ctx      *uast.Context
	resolver native.Resolver
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

// WithPriority overrides DefaultPriority.
func WithPriority(priority int) Option {
	return func(p *Plugin) {
		p.priority = priority
	}
}

// NewPlugin creates the Java frontend. Children are converted through ctx so
// that higher priority frontends see them first. A nil ctx gets a private
// context holding only this plugin.
func NewPlugin(ctx *uast.Context, opts ...Option) *Plugin {
	p := &Plugin{
		ctx:      ctx,
		resolver: native.NopResolver{},
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

// Language returns native.Java.
func (p *Plugin) Language() native.Language { return native.Java }

// Priority returns the dispatch priority.
func (p *Plugin) Priority() int { return p.priority }

// Extensions returns the Java file extensions.
func (p *Plugin) Extensions() []string { return extensions }

// IsFileSupported reports whether fileName is a Java source file.
func (p *Plugin) IsFileSupported(fileName string) bool {
	return uast.HasExtension(fileName, extensions)
}

// Context returns the dispatcher the plugin converts children through.
func (p *Plugin) Context() *uast.Context { return p.ctx }

// Resolver returns the call resolution oracle.
func (p *Plugin) Resolver() native.Resolver { return p.resolver }

// ConvertElement converts a Java native node, or a Java-shaped light
// element, under parent.
func (p *Plugin) ConvertElement(element any, parent uast.Element) uast.Element {
	if e, ok := element.(uast.Element); ok {
		return e
	}

	n, ok := uast.NativeOf(element)
	if !ok || !p.owns(n) {
		return nil
	}

	if decl := p.ConvertDeclaration(n, parent); decl != nil {
		return decl
	}

	switch n.Kind() {
	case native.JavaAnnotation:
		return newAnnotation(p, n, parent)
	case native.JavaCatch:
		return newCatchClause(p, n, parent)
	case native.JavaSwitchCase:
		return newSwitchClause(p, n, parent)
	}

	if expr := p.convertExpression(n, parent); expr != nil {
		return expr
	}

	return nil
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

	return uast.ResolveWithParent(n, p.ConvertElement, transparent)
}

// ConvertDeclaration converts declaration kinds and returns nil for anything
// else.
func (p *Plugin) ConvertDeclaration(n native.Node, parent uast.Element) uast.Element {
	n = native.Unwrap(n)
	if n == nil {
		return nil
	}

	switch n.Kind() {
	case native.JavaFile:
		return newFile(p, n, parent)
	case native.JavaClass:
		return newClass(p, n, parent)
	case native.JavaMethod:
		return newMethod(p, n, parent)
	case native.JavaClassInitializer:
		return newClassInitializer(p, n, parent)
	case native.JavaField:
		if declarators := fieldDeclarators(n); len(declarators) > 0 {
			if len(declarators) != 1 {
				return nil
			}

			return NewVariable(p, declarators[0], parent)
		}

		return NewVariable(p, n, parent)
	case native.JavaLocalVariable, native.JavaVariable, native.JavaParameter, native.JavaEnumConstant:
		return NewVariable(p, n, parent)
	default:
		return nil
	}
}

// MethodCall returns the call n when the oracle resolves it to
// ownerFQN.methodName. An empty ownerFQN matches any owner.
func (p *Plugin) MethodCall(n native.Node, ownerFQN, methodName string) (uast.Call, native.Symbol, bool) {
	if n == nil || n.Kind() != native.JavaMethodCall {
		return nil, native.Symbol{}, false
	}

	symbol, ok := p.resolver.ResolveCall(n)
	if !ok || symbol.Constructor || symbol.Name != methodName || (ownerFQN != "" && symbol.Owner != ownerFQN) {
		return nil, native.Symbol{}, false
	}

	call, ok := p.ConvertWithParent(n).(uast.Call)
	if !ok {
		return nil, native.Symbol{}, false
	}

	return call, symbol, true
}

// ConstructorCall returns the instance creation n when the oracle resolves
// it to a constructor of fqn.
func (p *Plugin) ConstructorCall(n native.Node, fqn string) (uast.Call, native.Symbol, bool) {
	if n == nil || n.Kind() != native.JavaNewExpression {
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

func (p *Plugin) owns(n native.Node) bool {
	if n.Kind().IsJava() {
		return true
	}

	return n.Language() == native.Java && (n.Kind() == native.KindIdentifier || n.Kind() == native.KindUnknown)
}

// transparent reports whether n has no uniform counterpart of its own, so
// the uniform parent of its children is the uniform form of its parent.
func transparent(n native.Node) bool {
	switch n.Kind() {
	case native.JavaClassBody, native.JavaModifiers, native.JavaParameterList,
		native.JavaArgumentList, native.JavaExpressionStatement, native.JavaFinally,
		native.JavaSwitchLabel:
		return true
	case native.JavaField:
		return len(fieldDeclarators(n)) > 0
	default:
		return false
	}
}

// fieldDeclarators returns the declarators of a field declaration written
// with several variables.
func fieldDeclarators(n native.Node) []native.Node {
	if n.Child(native.FieldName) != nil {
		return nil
	}

	return native.ChildrenOfKind(n, native.JavaVariable)
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

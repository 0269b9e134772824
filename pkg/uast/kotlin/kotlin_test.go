package kotlin_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/uastkit/pkg/uast"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/java"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/kotlin"
	"github.com/Sumatoshi-tech/uastkit/pkg/uast/native"
)

// fixture is a hand-built Kotlin tree for:
//
//	package demo
//	class Greeter {
//	  val greeting: String = "hi"
//	  fun greet(name: String): String {
//	    val (a, b) = pair()
//	    val s = "Hello, $name!"
//	    ""
//	    for (x in items) {}
//	    return s
//	  }
//	}
type fixture struct {
	tree          *native.Tree
	file          *native.Element
	class         *native.Element
	prop          *native.Element
	fn            *native.Element
	destructuring *native.Element
	pairCall      *native.Element
	template      *native.Element
	nameRef       *native.Element
	empty         *native.Element
	forLoop       *native.Element
}

func newFixture() *fixture {
	t := native.NewTree("Greeter.kt", native.Kotlin, nil)
	f := &fixture{tree: t}

	id := func(name string) *native.Element { return t.New(native.KindIdentifier, name) }
	typ := func(name string) *native.Element { return t.New(native.KtTypeReference, name) }
	ref := func(name string) *native.Element { return t.New(native.KtSimpleName, name) }

	f.prop = t.New(native.KtProperty, `val greeting: String = "hi"`).
		Field(native.FieldName, id("greeting")).
		Field(native.FieldType, typ("String")).
		Field(native.FieldInitializer, t.New(native.KtStringTemplate, `"hi"`).Add(
			t.New(native.KtLiteralEntry, "hi")))

	f.pairCall = t.New(native.KtCall, "pair()").
		Field(native.FieldCallee, ref("pair")).
		Field(native.FieldArguments, t.New(native.KtValueArgumentList, "()"))
	f.destructuring = t.New(native.KtDestructuring, "val (a, b) = pair()").
		Add(
			t.New(native.KtDestructuringEntry, "a").Field(native.FieldName, id("a")),
			t.New(native.KtDestructuringEntry, "b").Field(native.FieldName, id("b")),
		).
		Field(native.FieldInitializer, f.pairCall)

	f.nameRef = ref("name")
	f.template = t.New(native.KtStringTemplate, `"Hello, $name!"`).Add(
		t.New(native.KtLiteralEntry, "Hello, "),
		t.New(native.KtSimpleEntry, "$name").Field(native.FieldValue, f.nameRef),
		t.New(native.KtLiteralEntry, "!"),
	)
	local := t.New(native.KtProperty, `val s = "Hello, $name!"`).
		Field(native.FieldName, id("s")).
		Field(native.FieldInitializer, f.template)

	f.empty = t.New(native.KtStringTemplate, `""`)

	f.forLoop = t.New(native.KtFor, "for (x in items) {}").
		Field(native.FieldLoopVar, t.New(native.KtParameter, "x").Field(native.FieldName, id("x"))).
		Field(native.FieldRange, ref("items")).
		Field(native.FieldBody, t.New(native.KtBlock, "{}"))

	ret := t.New(native.KtReturn, "return s").Field(native.FieldValue, ref("s"))

	f.fn = t.New(native.KtFunction, "fun greet(...)").
		Field(native.FieldName, id("greet")).
		Field(native.FieldParameters, t.New(native.KtParameterList, "(name: String)").Add(
			t.New(native.KtParameter, "name: String").
				Field(native.FieldName, id("name")).
				Field(native.FieldType, typ("String")))).
		Field(native.FieldType, typ("String")).
		Field(native.FieldBody, t.New(native.KtBlock, "{...}").Add(f.destructuring, local, f.empty, f.forLoop, ret))

	f.class = t.New(native.KtClass, "class Greeter").
		Field(native.FieldName, id("Greeter")).
		Add(t.New(native.KtClassBody, "{...}").Add(f.prop, f.fn))

	f.file = t.SetRoot(t.New(native.KtFile, "").Add(
		t.New(native.KtPackage, "package demo"),
		f.class,
	))

	return f
}

func newPlugins(opts ...kotlin.Option) (*uast.Context, *kotlin.Plugin, *java.Plugin) {
	ctx := uast.NewContext(nil)
	jp := java.NewPlugin(ctx)
	kp := kotlin.NewPlugin(ctx, opts...)

	ctx.Register(jp)
	ctx.Register(kp)

	return ctx, kp, jp
}

func greetMethod(t *testing.T, ctx *uast.Context, f *fixture) uast.Method {
	t.Helper()

	method, ok := uast.ConvertOpt[uast.Method](ctx, f.fn, nil)
	require.True(t, ok)

	return method
}

func bodyExpressions(t *testing.T, ctx *uast.Context, f *fixture) []uast.Expression {
	t.Helper()

	block, ok := greetMethod(t, ctx, f).Body().(uast.Block)
	require.True(t, ok)

	exprs := block.Expressions()
	require.Len(t, exprs, 5)

	return exprs
}

func TestPluginDescriptor(t *testing.T) {
	t.Parallel()

	_, kp, _ := newPlugins()

	assert.Equal(t, native.Kotlin, kp.Language())
	assert.Equal(t, kotlin.DefaultPriority, kp.Priority())
	assert.True(t, kp.IsFileSupported("Main.kt"))
	assert.True(t, kp.IsFileSupported("build.gradle.KTS"))
	assert.False(t, kp.IsFileSupported("Main.java"))
}

func TestFileAndClassThroughLightClass(t *testing.T) {
	t.Parallel()

	ctx, kp, jp := newPlugins()
	f := newFixture()

	file, ok := uast.ConvertOpt[uast.File](ctx, f.file, nil)
	require.True(t, ok)
	assert.Same(t, kp, file.Plugin())
	assert.Equal(t, "Greeter.kt", file.Path())

	classes := file.Classes()
	require.Len(t, classes, 1)

	class := classes[0]
	assert.Same(t, jp, class.Plugin(), "classes are built by the Java frontend over the light class")
	assert.Equal(t, "Greeter", class.Name())
	assert.Equal(t, "demo.Greeter", class.QualifiedName())
	assert.Same(t, file, class.ContainingElement())

	fields := class.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, "greeting", fields[0].Name())
	assert.Same(t, kp, fields[0].Plugin())
	require.NotNil(t, fields[0].TypeReference())
	assert.Equal(t, "String", fields[0].TypeReference().TypeName())

	init, ok := fields[0].Initializer().(uast.LiteralExpression)
	require.True(t, ok)
	assert.Equal(t, "hi", init.Value())
	assert.True(t, init.IsString())

	methods := class.Methods()
	require.Len(t, methods, 1)
	assert.Equal(t, "greet", methods[0].Name())
	assert.Same(t, kp, methods[0].Plugin())
	assert.False(t, methods[0].IsConstructor())

	params := methods[0].Parameters()
	require.Len(t, params, 1)
	assert.Equal(t, "name", params[0].Name())
	assert.Equal(t, "String", params[0].TypeReference().TypeName())
	assert.Nil(t, params[0].Initializer())
}

func TestStringTemplateIsLeftAssociative(t *testing.T) {
	t.Parallel()

	ctx, _, _ := newPlugins()
	f := newFixture()

	outer, ok := ctx.ConvertWithParent(f.template).(uast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, uast.OperatorPlus, outer.Operator())
	require.NotNil(t, outer.ContainingElement())

	inner, ok := outer.Left().(uast.BinaryExpression)
	require.True(t, ok, "the left operand holds the first two segments")
	assert.Same(t, outer.ContainingElement(), inner.ContainingElement(),
		"inner links share the template's parent")
	assert.Equal(t, uast.OperatorPlus, inner.Operator())

	first, ok := inner.Left().(uast.LiteralExpression)
	require.True(t, ok)
	assert.Equal(t, "Hello, ", first.Value())

	name, ok := inner.Right().(uast.SimpleReference)
	require.True(t, ok)
	assert.Equal(t, "name", name.Identifier())

	last, ok := outer.Right().(uast.LiteralExpression)
	require.True(t, ok)
	assert.Equal(t, "!", last.Value())
	assert.Same(t, outer, last.ContainingElement())
}

func TestStringTemplateEdgeCases(t *testing.T) {
	t.Parallel()

	ctx, _, _ := newPlugins()
	f := newFixture()

	empty, ok := uast.ConvertOpt[uast.LiteralExpression](ctx, f.empty, nil)
	require.True(t, ok, "an empty template is a literal, not the empty placeholder")
	assert.Empty(t, empty.Value())
	assert.True(t, empty.IsString())
	assert.False(t, uast.IsEmpty(empty))

	single, ok := uast.ConvertOpt[uast.LiteralExpression](ctx, f.prop.Child(native.FieldInitializer), nil)
	require.True(t, ok, "a single segment converts to the segment itself")
	assert.Equal(t, "hi", single.Value())

	tree := native.NewTree("Escapes.kt", native.Kotlin, nil)
	escaped := tree.New(native.KtStringTemplate, `"\n"`).Add(tree.New(native.KtEscapeEntry, `\n`))

	lit, ok := uast.ConvertOpt[uast.LiteralExpression](ctx, escaped, nil)
	require.True(t, ok)
	assert.Equal(t, "\n", lit.Value())
}

func TestDestructuringOrder(t *testing.T) {
	t.Parallel()

	ctx, _, _ := newPlugins()
	f := newFixture()

	exprs := bodyExpressions(t, ctx, f)

	decls, ok := exprs[0].(uast.VariableDeclarations)
	require.True(t, ok)

	vars := decls.Variables()
	require.Len(t, vars, 3)

	tmpName := kotlin.TempName(f.destructuring)
	assert.True(t, strings.HasPrefix(tmpName, "var"))
	assert.Equal(t, tmpName, vars[0].Name())
	assert.Equal(t, "a", vars[1].Name())
	assert.Equal(t, "b", vars[2].Name())

	for _, v := range vars {
		_, isLocal := v.(uast.LocalVariable)
		assert.True(t, isLocal)
		assert.Same(t, decls.ContainingElement(), v.ContainingElement(),
			"lowered variables hang off the enclosing element")
	}

	rhs, ok := vars[0].Initializer().(uast.Call)
	require.True(t, ok)
	assert.Equal(t, "pair", rhs.MethodName())

	for i, want := range []string{"component1", "component2"} {
		qualified, ok := vars[i+1].Initializer().(uast.QualifiedReference)
		require.True(t, ok)

		receiver, ok := qualified.Receiver().(uast.SimpleReference)
		require.True(t, ok)
		assert.Equal(t, tmpName, receiver.Identifier())

		selector, ok := qualified.Selector().(uast.Call)
		require.True(t, ok)
		assert.Equal(t, want, selector.MethodName())
		assert.Empty(t, selector.Arguments())
		assert.True(t, uast.Equal(receiver, selector.Receiver()))
	}

	assert.False(t, uast.Equal(vars[1].Initializer(), vars[2].Initializer()),
		"component calls have distinct identities")
}

func TestDestructuringWithoutInitializer(t *testing.T) {
	t.Parallel()

	ctx, _, _ := newPlugins()

	tree := native.NewTree("Broken.kt", native.Kotlin, nil)
	decl := tree.New(native.KtDestructuring, "val (a) =").Add(
		tree.New(native.KtDestructuringEntry, "a").Field(native.FieldName, tree.New(native.KindIdentifier, "a")))

	decls, ok := uast.ConvertOpt[uast.VariableDeclarations](ctx, decl, nil)
	require.True(t, ok)

	vars := decls.Variables()
	require.Len(t, vars, 2)
	assert.Same(t, uast.Empty, vars[0].Initializer())

	_, ok = vars[1].Initializer().(uast.QualifiedReference)
	assert.True(t, ok)
}

func TestLocalPropertyAndLoop(t *testing.T) {
	t.Parallel()

	ctx, _, _ := newPlugins()
	f := newFixture()

	exprs := bodyExpressions(t, ctx, f)

	decls, ok := exprs[1].(uast.VariableDeclarations)
	require.True(t, ok)
	require.Len(t, decls.Variables(), 1)

	local := decls.Variables()[0]
	assert.Equal(t, "s", local.Name())
	assert.Same(t, decls.ContainingElement(), local.ContainingElement())

	_, ok = local.Initializer().(uast.BinaryExpression)
	assert.True(t, ok)

	_, ok = exprs[2].(uast.LiteralExpression)
	assert.True(t, ok)

	loop, ok := exprs[3].(uast.ForEachExpression)
	require.True(t, ok)
	require.NotNil(t, loop.Variable())
	assert.Equal(t, "x", loop.Variable().Name())

	items, ok := loop.IteratedValue().(uast.SimpleReference)
	require.True(t, ok)
	assert.Equal(t, "items", items.Identifier())

	ret, ok := exprs[4].(uast.JumpExpression)
	require.True(t, ok)
	assert.Equal(t, uast.KindReturn, ret.ElementKind())
}

func TestForLoopWithoutParameter(t *testing.T) {
	t.Parallel()

	ctx, kp, _ := newPlugins()

	tree := native.NewTree("Loop.kt", native.Kotlin, nil)
	loop := tree.New(native.KtFor, "for ((k, v) in m) {}").
		Field(native.FieldRange, tree.New(native.KtSimpleName, "m"))

	converted, ok := uast.ConvertOpt[uast.ForEachExpression](ctx, loop, nil)
	require.True(t, ok)

	param := converted.Variable()
	require.NotNil(t, param)
	assert.Same(t, kp, param.Plugin())
	assert.Empty(t, param.Name())
	assert.Same(t, uast.Empty, converted.Body())
}

func TestPriorityClaimsLightElements(t *testing.T) {
	t.Parallel()

	ctx, kp, jp := newPlugins()
	f := newFixture()

	light := kp.Lights().LightBackingField(f.prop)
	require.NotNil(t, light)

	viaContext := ctx.ConvertElement(light, nil)
	require.NotNil(t, viaContext)
	assert.Same(t, kp, viaContext.Plugin())

	viaJava := jp.ConvertElement(light, nil)
	require.NotNil(t, viaJava)
	assert.Same(t, jp, viaJava.Plugin())

	assert.True(t, uast.Equal(viaContext, viaJava), "both wrap the same light field")
}

func TestIdempotentAndSingleWrapping(t *testing.T) {
	t.Parallel()

	ctx, kp, _ := newPlugins()
	f := newFixture()

	first := ctx.ConvertElement(f.template, nil)
	second := ctx.ConvertElement(f.template, nil)
	require.NotNil(t, first)
	assert.True(t, uast.Equal(first, second))
	assert.Same(t, first, ctx.ConvertElement(first, nil))

	field, ok := uast.ConvertOpt[uast.Field](ctx, f.prop, nil)
	require.True(t, ok)

	rewrapped := kotlin.NewVariable(kp, field, nil)
	require.NotNil(t, rewrapped)

	_, wrapped := rewrapped.Origin().(uast.Element)
	assert.False(t, wrapped)
	assert.True(t, uast.Equal(field, rewrapped))
}

func TestConvertWithParentDiscoversChain(t *testing.T) {
	t.Parallel()

	ctx, _, _ := newPlugins()
	f := newFixture()

	converted := ctx.ConvertWithParent(f.nameRef)
	require.NotNil(t, converted)

	ref, ok := converted.(uast.SimpleReference)
	require.True(t, ok)
	assert.Equal(t, "name", ref.Identifier())

	method, ok := uast.ParentOfType[uast.Method](ref)
	require.True(t, ok)
	assert.Equal(t, "greet", method.Name())

	class, ok := uast.ParentOfType[uast.Class](ref)
	require.True(t, ok)
	assert.Equal(t, "demo.Greeter", class.QualifiedName())

	_, ok = uast.ParentOfType[uast.File](ref)
	assert.True(t, ok)

	concat, ok := uast.ParentOfType[uast.BinaryExpression](ref)
	require.True(t, ok)
	assert.Equal(t, uast.OperatorPlus, concat.Operator())
}

func TestConvertWithParentFailsOnUnsupportedAncestor(t *testing.T) {
	t.Parallel()

	ctx, _, _ := newPlugins()

	tree := native.NewTree("Imports.kt", native.Kotlin, nil)
	name := tree.New(native.KtSimpleName, "List")
	tree.SetRoot(tree.New(native.KtFile, "").Add(tree.New(native.KtImport, "import List").Add(name)))

	assert.NotNil(t, ctx.ConvertElement(name, nil))
	assert.Nil(t, ctx.ConvertWithParent(name))

	detached := native.NewTree("Detached.kt", native.Kotlin, nil).New(native.KtSimpleName, "x")
	assert.NotNil(t, ctx.ConvertElement(detached, nil))
	assert.Nil(t, ctx.ConvertWithParent(detached), "only files convert without a parent")
}

func TestEnumEntries(t *testing.T) {
	t.Parallel()

	ctx, kp, _ := newPlugins()

	tree := native.NewTree("Color.kt", native.Kotlin, nil)
	entry := tree.New(native.KtEnumEntry, "RED(1)").
		Field(native.FieldName, tree.New(native.KindIdentifier, "RED")).
		Field(native.FieldArguments, tree.New(native.KtValueArgumentList, "(1)").Add(
			tree.New(native.KtValueArgument, "1").Field(native.FieldValue, tree.New(native.KtConstant, "1"))))
	class := tree.New(native.KtClass, "enum class Color").
		Field(native.FieldName, tree.New(native.KindIdentifier, "Color")).
		Add(tree.New(native.KtClassBody, "{ RED(1) }").Add(entry))
	tree.SetRoot(tree.New(native.KtFile, "").Add(class))

	converted, ok := uast.ConvertOpt[uast.Class](ctx, class, nil)
	require.True(t, ok)

	fields := converted.Fields()
	require.Len(t, fields, 1)

	constant, ok := fields[0].(uast.EnumConstant)
	require.True(t, ok)
	assert.Same(t, kp, constant.Plugin())
	assert.Equal(t, "RED", constant.Name())
	assert.Equal(t, uast.CallConstructor, constant.CallKind())
	assert.Nil(t, constant.Receiver())

	args := constant.Arguments()
	require.Len(t, args, 1)

	lit, ok := args[0].(uast.LiteralExpression)
	require.True(t, ok)
	assert.Equal(t, "1", lit.Value())

	direct, ok := uast.ConvertOpt[uast.EnumConstant](ctx, entry, nil)
	require.True(t, ok)
	assert.True(t, uast.Equal(constant, direct))
}

func TestMethodAndConstructorCalls(t *testing.T) {
	t.Parallel()

	resolver := &native.MapResolver{}
	ctx, kp, _ := newPlugins(kotlin.WithResolver(resolver))
	f := newFixture()

	resolver.Bind(f.pairCall, native.Symbol{Name: "pair", Owner: "demo.Pairs"})

	call, symbol, ok := kp.MethodCall(f.pairCall, "demo.Pairs", "pair")
	require.True(t, ok)
	assert.Equal(t, "pair", call.MethodName())
	assert.Equal(t, "demo.Pairs", symbol.Owner)
	assert.Equal(t, uast.CallMethod, call.CallKind())

	_, ok = uast.ParentOfType[uast.VariableDeclarations](call)
	assert.True(t, ok)

	_, _, ok = kp.MethodCall(f.pairCall, "demo.Pairs", "other")
	assert.False(t, ok)

	_, _, ok = kp.ConstructorCall(f.pairCall, "demo.Pairs")
	assert.False(t, ok)

	_, _, ok = ctx.MethodCall(f.pairCall, "", "pair")
	assert.True(t, ok)

	tree := native.NewTree("New.kt", native.Kotlin, nil)
	ctor := tree.New(native.KtCall, "Pair(1, 2)").Field(native.FieldCallee, tree.New(native.KtSimpleName, "Pair"))
	tree.SetRoot(tree.New(native.KtFile, "").Add(ctor))
	resolver.Bind(ctor, native.Symbol{Name: "Pair", Owner: "kotlin.Pair", Constructor: true})

	created, _, ok := ctx.ConstructorCall(ctor, "kotlin.Pair")
	require.True(t, ok)
	assert.Equal(t, uast.CallConstructor, created.CallKind())
}

func TestParameterListLowering(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	ctx := uast.NewContext(nil, uast.WithObserver(rec))
	ctx.Register(java.NewPlugin(ctx))
	ctx.Register(kotlin.NewPlugin(ctx))

	f := newFixture()

	decls, ok := uast.ConvertOpt[uast.VariableDeclarations](ctx, f.fn.Child(native.FieldParameters), nil)
	require.True(t, ok)
	require.Len(t, decls.Variables(), 1)

	param, ok := decls.Variables()[0].(uast.Parameter)
	require.True(t, ok)
	assert.Equal(t, "name", param.Name())
	assert.Same(t, decls, param.ContainingElement())

	_, ok = uast.ConvertOpt[uast.BinaryExpression](ctx, f.template, nil)
	require.True(t, ok)

	assert.Equal(t, []int{1}, rec.sizes(kotlin.LoweringParameterList))
	assert.Equal(t, []int{3}, rec.sizes(kotlin.LoweringStringTemplate))
}

func TestLeavesAndFallbacks(t *testing.T) {
	t.Parallel()

	ctx, _, _ := newPlugins()
	tree := native.NewTree("Leaves.kt", native.Kotlin, nil)

	quoted, ok := uast.ConvertOpt[uast.SimpleReference](ctx, tree.New(native.KindIdentifier, "`fun`"), nil)
	require.True(t, ok)
	assert.Equal(t, "fun", quoted.Identifier())

	body, ok := uast.ConvertOpt[uast.ExpressionList](ctx, tree.New(native.KtClassBody, "{}"), nil)
	require.True(t, ok)
	assert.Equal(t, uast.ListClassBody, body.ListKind())
	assert.Empty(t, body.Expressions())

	unknown := ctx.ConvertElement(tree.New(native.KindUnknown, "???"), nil)
	require.NotNil(t, unknown)
	assert.Equal(t, uast.KindUnknown, unknown.ElementKind())

	assert.Nil(t, ctx.ConvertElement(tree.New(native.KtPackage, "package demo"), nil))

	safe, ok := uast.ConvertOpt[uast.QualifiedReference](ctx, tree.New(native.KtSafeQualified, "a?.b").
		Field(native.FieldReceiver, tree.New(native.KtSimpleName, "a")).
		Field(native.FieldSelector, tree.New(native.KtSimpleName, "b")), nil)
	require.True(t, ok)
	assert.True(t, safe.IsSafe())

	check, ok := uast.ConvertOpt[uast.BinaryWithType](ctx, tree.New(native.KtIs, "x is String").
		Field(native.FieldLeft, tree.New(native.KtSimpleName, "x")).
		Field(native.FieldType, tree.New(native.KtTypeReference, "String")), nil)
	require.True(t, ok)
	assert.Equal(t, uast.Operator("is"), check.Operator())
	assert.Equal(t, "String", check.Type().TypeName())

	this, ok := uast.ConvertOpt[uast.InstanceExpression](ctx, tree.New(native.KtThis, "this@Outer"), nil)
	require.True(t, ok)
	assert.Equal(t, "Outer", this.Label())
}

func TestLocalFunctionIsUnknown(t *testing.T) {
	t.Parallel()

	ctx, _, _ := newPlugins()

	tree := native.NewTree("Local.kt", native.Kotlin, nil)
	local := tree.New(native.KtFunction, "fun inner() {}").Field(native.FieldName, tree.New(native.KindIdentifier, "inner"))
	outer := tree.New(native.KtFunction, "fun outer() {...}").
		Field(native.FieldName, tree.New(native.KindIdentifier, "outer")).
		Field(native.FieldBody, tree.New(native.KtBlock, "{...}").Add(local))
	tree.SetRoot(tree.New(native.KtFile, "").Add(outer))

	converted := ctx.ConvertElement(local, nil)
	require.NotNil(t, converted)
	assert.Equal(t, uast.KindUnknown, converted.ElementKind())

	top, ok := uast.ConvertOpt[uast.Method](ctx, outer, nil)
	require.True(t, ok)
	assert.Equal(t, "outer", top.Name())
}

func TestWithoutJavaFrontend(t *testing.T) {
	t.Parallel()

	kp := kotlin.NewPlugin(nil)
	f := newFixture()

	assert.Nil(t, kp.ConvertElement(f.class, nil), "classes need the Java frontend")

	file, ok := kp.ConvertElement(f.file, nil).(uast.File)
	require.True(t, ok)
	assert.Empty(t, file.Classes())
}

func TestTempNameIsStable(t *testing.T) {
	t.Parallel()

	f := newFixture()

	assert.Equal(t, kotlin.TempName(f.destructuring), kotlin.TempName(f.destructuring))
	assert.NotEqual(t, kotlin.TempName(f.destructuring), kotlin.TempName(f.template))
}

type recorder struct {
	mu      sync.Mutex
	lowered map[string][]int
}

func (r *recorder) ObserveConversion(native.Language, native.Kind, bool) {}

func (r *recorder) ObserveLowering(construct string, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lowered == nil {
		r.lowered = make(map[string][]int)
	}

	r.lowered[construct] = append(r.lowered[construct], size)
}

func (r *recorder) sizes(construct string) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lowered[construct]
}

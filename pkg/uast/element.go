// Package uast presents heterogeneous language syntax trees through one
// uniform set of node interfaces. Frontends (plugins) convert native nodes
// into uniform elements; the Context dispatches a native node to the
// frontend that owns it.
package uast

import "github.com/Sumatoshi-tech/uastkit/pkg/uast/native"

// ElementKind enumerates the closed set of uniform element variants.
type ElementKind uint8

// Element kinds.
const (
	KindUnknown ElementKind = iota
	KindFile
	KindClass
	KindMethod
	KindClassInitializer
	KindVariable
	KindParameter
	KindField
	KindLocalVariable
	KindEnumConstant
	KindAnnotation
	KindTypeReference
	KindEmpty
	KindLiteral
	KindSimpleReference
	KindQualifiedReference
	KindCall
	KindBinary
	KindBinaryWithType
	KindPrefix
	KindPostfix
	KindParenthesized
	KindIf
	KindSwitch
	KindSwitchClause
	KindWhile
	KindDoWhile
	KindFor
	KindForEach
	KindBlock
	KindReturn
	KindThrow
	KindBreak
	KindContinue
	KindTry
	KindCatchClause
	KindLambda
	KindArrayAccess
	KindThis
	KindSuper
	KindClassLiteral
	KindObjectLiteral
	KindCallableReference
	KindLabeled
	KindVariableDeclarations
	KindExpressionList
)

var elementKindNames = [...]string{
	KindUnknown:              "Unknown",
	KindFile:                 "File",
	KindClass:                "Class",
	KindMethod:               "Method",
	KindClassInitializer:     "ClassInitializer",
	KindVariable:             "Variable",
	KindParameter:            "Parameter",
	KindField:                "Field",
	KindLocalVariable:        "LocalVariable",
	KindEnumConstant:         "EnumConstant",
	KindAnnotation:           "Annotation",
	KindTypeReference:        "TypeReference",
	KindEmpty:                "Empty",
	KindLiteral:              "Literal",
	KindSimpleReference:      "SimpleReference",
	KindQualifiedReference:   "QualifiedReference",
	KindCall:                 "Call",
	KindBinary:               "Binary",
	KindBinaryWithType:       "BinaryWithType",
	KindPrefix:               "Prefix",
	KindPostfix:              "Postfix",
	KindParenthesized:        "Parenthesized",
	KindIf:                   "If",
	KindSwitch:               "Switch",
	KindSwitchClause:         "SwitchClause",
	KindWhile:                "While",
	KindDoWhile:              "DoWhile",
	KindFor:                  "For",
	KindForEach:              "ForEach",
	KindBlock:                "Block",
	KindReturn:               "Return",
	KindThrow:                "Throw",
	KindBreak:                "Break",
	KindContinue:             "Continue",
	KindTry:                  "Try",
	KindCatchClause:          "CatchClause",
	KindLambda:               "Lambda",
	KindArrayAccess:          "ArrayAccess",
	KindThis:                 "This",
	KindSuper:                "Super",
	KindClassLiteral:         "ClassLiteral",
	KindObjectLiteral:        "ObjectLiteral",
	KindCallableReference:    "CallableReference",
	KindLabeled:              "Labeled",
	KindVariableDeclarations: "VariableDeclarations",
	KindExpressionList:       "ExpressionList",
}

func (k ElementKind) String() string {
	if int(k) < len(elementKindNames) {
		return elementKindNames[k]
	}

	return elementKindNames[KindUnknown]
}

// Element is a node of the uniform tree.
type Element interface {
	// Origin returns the native node the element wraps. Synthetic elements
	// return the native node they were generated for, or nil.
	Origin() native.Node
	// ContainingElement returns the uniform parent fixed at construction.
	ContainingElement() Element
	// Plugin returns the frontend responsible for materializing children.
	Plugin() Plugin
	ElementKind() ElementKind
	// ChildElements returns the uniform children, computing them on first use.
	ChildElements() []Element
}

// Expression is an element usable in expression position.
type Expression interface {
	Element
	expressionNode()
}

// Named is implemented by elements with a declared name.
type Named interface {
	Name() string
}

// Annotated is implemented by elements carrying annotations.
type Annotated interface {
	Annotations() []Annotation
}

// Typed is implemented by elements with a declared type.
type Typed interface {
	// TypeReference returns the declared type, or nil when it is implicit.
	TypeReference() TypeReference
}

// Resolvable is implemented by elements that refer to a declaration.
type Resolvable interface {
	Resolve() (native.Symbol, bool)
}

// Declaration is a uniform declaration. It also presents its native node
// through the native facade, so it can be handed back to a converter.
type Declaration interface {
	Element
	native.Node
	native.Wrapper
	Named
	Annotated
}

// File is the root of a uniform tree.
type File interface {
	Element
	Path() string
	Classes() []Class
}

// Class is a class, interface, enum or object declaration.
type Class interface {
	Declaration
	QualifiedName() string
	Methods() []Method
	Fields() []Field
	Initializers() []ClassInitializer
	InnerClasses() []Class
}

// Method is a method, function or constructor declaration.
type Method interface {
	Declaration
	Parameters() []Parameter
	// Body returns the method body, or nil for bodiless declarations.
	Body() Expression
	IsConstructor() bool
}

// ClassInitializer is an instance or static initializer block.
type ClassInitializer interface {
	Declaration
	Body() Expression
	IsStatic() bool
}

// Variable is any variable-like declaration.
type Variable interface {
	Declaration
	Typed
	// Initializer returns the initializer, or nil when there is none.
	Initializer() Expression
}

// Parameter is a method, lambda or loop parameter.
type Parameter interface {
	Variable
	parameterNode()
}

// Field is a class member variable.
type Field interface {
	Variable
	fieldNode()
}

// LocalVariable is a variable declared in a body.
type LocalVariable interface {
	Variable
	localVariableNode()
}

// EnumConstant is an enum entry. It is both a field and a constructor call.
type EnumConstant interface {
	Field
	Call
}

// Annotation is an annotation applied to a declaration.
type Annotation interface {
	Element
	QualifiedName() string
}

// TypeReference is a reference to a type in source.
type TypeReference interface {
	Expression
	TypeName() string
}

// Operator is the textual operator of a binary or unary expression.
type Operator string

// Operators produced by the desugaring routines.
const (
	OperatorPlus   Operator = "+"
	OperatorAssign Operator = "="
)

// LiteralExpression is a constant value.
type LiteralExpression interface {
	Expression
	Value() string
	IsString() bool
}

// SimpleReference is a reference by simple name.
type SimpleReference interface {
	Expression
	Resolvable
	Identifier() string
}

// QualifiedReference is a receiver-qualified reference such as a.b or a?.b.
type QualifiedReference interface {
	Expression
	Receiver() Expression
	Selector() Expression
	IsSafe() bool
}

// CallKind distinguishes method calls from constructor calls.
type CallKind uint8

// Call kinds.
const (
	CallMethod CallKind = iota
	CallConstructor
)

// Call is a method or constructor call.
type Call interface {
	Expression
	Resolvable
	CallKind() CallKind
	// Receiver returns the explicit receiver, or nil.
	Receiver() Expression
	MethodName() string
	Arguments() []Expression
}

// BinaryExpression is a binary operation.
type BinaryExpression interface {
	Expression
	Left() Expression
	Right() Expression
	Operator() Operator
}

// BinaryWithType is an operation between an expression and a type: casts
// and type checks.
type BinaryWithType interface {
	Expression
	Operand() Expression
	Type() TypeReference
	Operator() Operator
}

// UnaryExpression is a prefix or postfix operation.
type UnaryExpression interface {
	Expression
	Operand() Expression
	Operator() Operator
}

// Parenthesized wraps one expression.
type Parenthesized interface {
	Expression
	Inner() Expression
}

// IfExpression is an if statement, if expression or ternary.
type IfExpression interface {
	Expression
	Condition() Expression
	Then() Expression
	// Else returns the else branch, or nil.
	Else() Expression
	IsTernary() bool
}

// SwitchExpression is a switch statement or when expression.
type SwitchExpression interface {
	Expression
	// Subject returns the switched-on expression, or nil.
	Subject() Expression
	Clauses() []SwitchClause
}

// SwitchClause is one case or when entry.
type SwitchClause interface {
	Expression
	Conditions() []Expression
	Body() Expression
}

// LoopExpression is implemented by all loops.
type LoopExpression interface {
	Expression
	Body() Expression
}

// ConditionalLoop is a while or do-while loop.
type ConditionalLoop interface {
	LoopExpression
	Condition() Expression
}

// ForExpression is a classic three-clause for loop.
type ForExpression interface {
	LoopExpression
	Declaration() Expression
	Condition() Expression
	Update() Expression
}

// ForEachExpression iterates over a range or collection.
type ForEachExpression interface {
	LoopExpression
	Variable() Parameter
	IteratedValue() Expression
}

// Block is a sequence of expressions.
type Block interface {
	Expression
	Expressions() []Expression
}

// JumpExpression is return, throw, break or continue.
type JumpExpression interface {
	Expression
	// Value returns the returned or thrown value, or nil.
	Value() Expression
	// Label returns the jump label, or "".
	Label() string
}

// TryExpression is a try statement or expression.
type TryExpression interface {
	Expression
	TryBlock() Expression
	CatchClauses() []CatchClause
	// FinallyBlock returns the finally block, or nil.
	FinallyBlock() Expression
}

// CatchClause is one catch of a try.
type CatchClause interface {
	Element
	Parameters() []Parameter
	Body() Expression
}

// Lambda is a lambda or anonymous function.
type Lambda interface {
	Expression
	Parameters() []Parameter
	Body() Expression
}

// ArrayAccess is an indexing expression.
type ArrayAccess interface {
	Expression
	Receiver() Expression
	Indices() []Expression
}

// InstanceExpression is this or super.
type InstanceExpression interface {
	Expression
	Label() string
}

// ClassLiteral is a class literal such as Foo.class or Foo::class.
type ClassLiteral interface {
	Expression
	Type() TypeReference
}

// ObjectLiteral is an anonymous object expression.
type ObjectLiteral interface {
	Expression
	Body() Expression
}

// CallableReference is a method reference such as Foo::bar.
type CallableReference interface {
	Expression
	Qualifier() Expression
	CallableName() string
}

// Labeled is a labeled expression.
type Labeled interface {
	Expression
	Label() string
	Body() Expression
}

// VariableDeclarations declares one or more variables.
type VariableDeclarations interface {
	Expression
	Variables() []Variable
}

// ListKind tags an ExpressionList.
type ListKind string

// List kinds.
const (
	ListClassBody   ListKind = "class_body"
	ListStatements  ListKind = "statements"
	ListWhenEntries ListKind = "when_entries"
)

// ExpressionList is a tagged list of expressions with no dedicated variant.
type ExpressionList interface {
	Expression
	ListKind() ListKind
	Expressions() []Expression
}

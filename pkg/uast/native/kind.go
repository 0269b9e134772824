package native

// Language identifies the source language a native node belongs to.
type Language string

// Supported languages.
const (
	LanguageUnknown Language = ""
	Java            Language = "java"
	Kotlin          Language = "kotlin"
)

// KindSetVersion is bumped whenever a kind is added, removed or renumbered.
// Kind maps and persisted dumps carry it so that stale data is detected.
const KindSetVersion = 1

// Kind is the closed enumeration of native node kinds known to the frontends.
//
// Java kinds double as the kinds of light elements: wrappers that present a
// Kotlin declaration through the Java declaration surface.
type Kind uint16

// Shared kinds.
const (
	KindUnknown Kind = iota
	KindIdentifier
	KindComment
)

// Java kinds.
const (
	JavaFile Kind = iota + 100
	JavaPackage
	JavaImport
	JavaClass
	JavaClassBody
	JavaMethod
	JavaParameterList
	JavaParameter
	JavaField
	JavaLocalVariable
	JavaVariable
	JavaEnumConstant
	JavaClassInitializer
	JavaAnnotation
	JavaModifiers
	JavaTypeElement
	JavaArgumentList
	JavaBlock
	JavaExpressionStatement
	JavaLocalVariableDeclaration
	JavaMethodCall
	JavaNewExpression
	JavaBinary
	JavaAssignment
	JavaPrefix
	JavaPostfix
	JavaParenthesized
	JavaLiteral
	JavaStringLiteral
	JavaReference
	JavaFieldAccess
	JavaIf
	JavaTernary
	JavaWhile
	JavaDoWhile
	JavaFor
	JavaForEach
	JavaSwitch
	JavaReturn
	JavaThrow
	JavaBreak
	JavaContinue
	JavaTry
	JavaCatch
	JavaFinally
	JavaLambda
	JavaCast
	JavaInstanceOf
	JavaArrayAccess
	JavaThis
	JavaSuper
	JavaClassLiteral
	JavaLabeled
	JavaSwitchCase
	JavaSwitchLabel
	JavaMethodReference
)

// Kotlin kinds.
const (
	KtFile Kind = iota + 300
	KtPackage
	KtImport
	KtClass
	KtObject
	KtClassBody
	KtFunction
	KtProperty
	KtPropertyAccessor
	KtParameterList
	KtParameter
	KtTypeReference
	KtAnnotationEntry
	KtModifiers
	KtBlock
	KtDestructuring
	KtDestructuringEntry
	KtStringTemplate
	KtLiteralEntry
	KtEscapeEntry
	KtSimpleEntry
	KtBlockEntry
	KtLabeled
	KtClassLiteral
	KtObjectLiteral
	KtDotQualified
	KtSafeQualified
	KtSimpleName
	KtCall
	KtValueArgumentList
	KtValueArgument
	KtBinary
	KtParenthesized
	KtPrefix
	KtPostfix
	KtThis
	KtSuper
	KtCallableReference
	KtIs
	KtIf
	KtWhile
	KtDoWhile
	KtFor
	KtWhen
	KtWhenEntry
	KtBreak
	KtContinue
	KtReturn
	KtThrow
	KtConstant
	KtTry
	KtCatch
	KtFinally
	KtArrayAccess
	KtLambda
	KtBinaryWithType
	KtEnumEntry
)

var kindNames = map[Kind]string{
	KindUnknown:    "unknown",
	KindIdentifier: "identifier",
	KindComment:    "comment",

	JavaFile:                     "java.file",
	JavaPackage:                  "java.package",
	JavaImport:                   "java.import",
	JavaClass:                    "java.class",
	JavaClassBody:                "java.class_body",
	JavaMethod:                   "java.method",
	JavaParameterList:            "java.parameter_list",
	JavaParameter:                "java.parameter",
	JavaField:                    "java.field",
	JavaLocalVariable:            "java.local_variable",
	JavaVariable:                 "java.variable",
	JavaEnumConstant:             "java.enum_constant",
	JavaClassInitializer:         "java.class_initializer",
	JavaAnnotation:               "java.annotation",
	JavaModifiers:                "java.modifiers",
	JavaTypeElement:              "java.type_element",
	JavaArgumentList:             "java.argument_list",
	JavaBlock:                    "java.block",
	JavaExpressionStatement:      "java.expression_statement",
	JavaLocalVariableDeclaration: "java.local_variable_declaration",
	JavaMethodCall:               "java.method_call",
	JavaNewExpression:            "java.new",
	JavaBinary:                   "java.binary",
	JavaAssignment:               "java.assignment",
	JavaPrefix:                   "java.prefix",
	JavaPostfix:                  "java.postfix",
	JavaParenthesized:            "java.parenthesized",
	JavaLiteral:                  "java.literal",
	JavaStringLiteral:            "java.string_literal",
	JavaReference:                "java.reference",
	JavaFieldAccess:              "java.field_access",
	JavaIf:                       "java.if",
	JavaTernary:                  "java.ternary",
	JavaWhile:                    "java.while",
	JavaDoWhile:                  "java.do_while",
	JavaFor:                      "java.for",
	JavaForEach:                  "java.for_each",
	JavaSwitch:                   "java.switch",
	JavaReturn:                   "java.return",
	JavaThrow:                    "java.throw",
	JavaBreak:                    "java.break",
	JavaContinue:                 "java.continue",
	JavaTry:                      "java.try",
	JavaCatch:                    "java.catch",
	JavaFinally:                  "java.finally",
	JavaLambda:                   "java.lambda",
	JavaCast:                     "java.cast",
	JavaInstanceOf:               "java.instanceof",
	JavaArrayAccess:              "java.array_access",
	JavaThis:                     "java.this",
	JavaSuper:                    "java.super",
	JavaClassLiteral:             "java.class_literal",
	JavaLabeled:                  "java.labeled",
	JavaSwitchCase:               "java.switch_case",
	JavaSwitchLabel:              "java.switch_label",
	JavaMethodReference:          "java.method_reference",

	KtFile:               "kotlin.file",
	KtPackage:            "kotlin.package",
	KtImport:             "kotlin.import",
	KtClass:              "kotlin.class",
	KtObject:             "kotlin.object",
	KtClassBody:          "kotlin.class_body",
	KtFunction:           "kotlin.function",
	KtProperty:           "kotlin.property",
	KtPropertyAccessor:   "kotlin.property_accessor",
	KtParameterList:      "kotlin.parameter_list",
	KtParameter:          "kotlin.parameter",
	KtTypeReference:      "kotlin.type_reference",
	KtAnnotationEntry:    "kotlin.annotation_entry",
	KtModifiers:          "kotlin.modifiers",
	KtBlock:              "kotlin.block",
	KtDestructuring:      "kotlin.destructuring",
	KtDestructuringEntry: "kotlin.destructuring_entry",
	KtStringTemplate:     "kotlin.string_template",
	KtLiteralEntry:       "kotlin.literal_entry",
	KtEscapeEntry:        "kotlin.escape_entry",
	KtSimpleEntry:        "kotlin.simple_entry",
	KtBlockEntry:         "kotlin.block_entry",
	KtLabeled:            "kotlin.labeled",
	KtClassLiteral:       "kotlin.class_literal",
	KtObjectLiteral:      "kotlin.object_literal",
	KtDotQualified:       "kotlin.dot_qualified",
	KtSafeQualified:      "kotlin.safe_qualified",
	KtSimpleName:         "kotlin.simple_name",
	KtCall:               "kotlin.call",
	KtValueArgumentList:  "kotlin.value_argument_list",
	KtValueArgument:      "kotlin.value_argument",
	KtBinary:             "kotlin.binary",
	KtParenthesized:      "kotlin.parenthesized",
	KtPrefix:             "kotlin.prefix",
	KtPostfix:            "kotlin.postfix",
	KtThis:               "kotlin.this",
	KtSuper:              "kotlin.super",
	KtCallableReference:  "kotlin.callable_reference",
	KtIs:                 "kotlin.is",
	KtIf:                 "kotlin.if",
	KtWhile:              "kotlin.while",
	KtDoWhile:            "kotlin.do_while",
	KtFor:                "kotlin.for",
	KtWhen:               "kotlin.when",
	KtWhenEntry:          "kotlin.when_entry",
	KtBreak:              "kotlin.break",
	KtContinue:           "kotlin.continue",
	KtReturn:             "kotlin.return",
	KtThrow:              "kotlin.throw",
	KtConstant:           "kotlin.constant",
	KtTry:                "kotlin.try",
	KtCatch:              "kotlin.catch",
	KtFinally:            "kotlin.finally",
	KtArrayAccess:        "kotlin.array_access",
	KtLambda:             "kotlin.lambda",
	KtBinaryWithType:     "kotlin.binary_with_type",
	KtEnumEntry:          "kotlin.enum_entry",
}

var kindsByName = func() map[string]Kind {
	out := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		out[name] = kind
	}

	return out
}()

// String returns the stable textual name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return kindNames[KindUnknown]
}

// KindByName looks up a kind by its textual name.
func KindByName(name string) (Kind, bool) {
	kind, ok := kindsByName[name]

	return kind, ok
}

// IsJava reports whether the kind belongs to the Java kind set.
func (k Kind) IsJava() bool {
	return k >= JavaFile && k <= JavaMethodReference
}

// IsKotlin reports whether the kind belongs to the Kotlin kind set.
func (k Kind) IsKotlin() bool {
	return k >= KtFile && k <= KtEnumEntry
}

// IsFile reports whether the kind is a file-level root.
func (k Kind) IsFile() bool {
	return k == JavaFile || k == KtFile
}

// IsVariable reports whether the kind is one of the Java variable-like kinds.
func (k Kind) IsVariable() bool {
	switch k {
	case JavaField, JavaLocalVariable, JavaVariable, JavaParameter, JavaEnumConstant:
		return true
	default:
		return false
	}
}

package diag

// Kind categorizes a diagnostic. It intentionally does not attempt to model
// every parser-level kind (UNEXPECTED_MODIFIER, UNEXPECTED_TOKEN,
// UNEXPECTED_INPUT), since the parser is outside the binder's scope — those
// three are kept only as passthrough kinds a driver can surface from its
// parser collaborator using the same Bag.
type Kind int

const (
	// SymbolNotFound: no class of this qualified name exists anywhere the
	// scope can reach.
	SymbolNotFound Kind = iota
	// CannotResolve: simple-name resolution failed in scope.
	CannotResolve
	// TypeParameterQualifier: a type variable used as a qualifier.
	TypeParameterQualifier
	// CycleInClassHierarchy: cycle during supertype DFS.
	CycleInClassHierarchy
	// NotAnAnnotation: class used as annotation isn't kind=ANNOTATION.
	NotAnAnnotation
	// NotRepeatable: duplicate non-repeatable annotation.
	NotRepeatable
	// CannotResolveElement: extra or unknown annotation argument.
	CannotResolveElement
	// MissingAnnotationArgument: required element missing.
	MissingAnnotationArgument
	// InvalidAnnotationArgument: wrong shape (e.g. null, duplicate key).
	InvalidAnnotationArgument
	// ExpressionError: could not evaluate constant expression.
	ExpressionError
	// OperandType: mismatched operand types in constant op.
	OperandType
	// UnexpectedType: e.g. primitive used where a class expected.
	UnexpectedType
	// DuplicateDeclaration: same class or field declared twice in scope.
	DuplicateDeclaration
	// NonCanonicalImport: a nested type referenced via an inheriting
	// qualifier rather than its declaring class.
	NonCanonicalImport
	// UnexpectedModifier is surfaced from the parser collaborator.
	UnexpectedModifier
	// UnexpectedToken is surfaced from the parser collaborator.
	UnexpectedToken
	// UnexpectedInput is surfaced from the parser collaborator.
	UnexpectedInput
)

var kindNames = map[Kind]string{
	SymbolNotFound:            "SYMBOL_NOT_FOUND",
	CannotResolve:             "CANNOT_RESOLVE",
	TypeParameterQualifier:    "TYPE_PARAMETER_QUALIFIER",
	CycleInClassHierarchy:     "CYCLE_IN_CLASS_HIERARCHY",
	NotAnAnnotation:           "NOT_AN_ANNOTATION",
	NotRepeatable:             "NOT_REPEATABLE",
	CannotResolveElement:      "CANNOT_RESOLVE_ELEMENT",
	MissingAnnotationArgument: "MISSING_ANNOTATION_ARGUMENT",
	InvalidAnnotationArgument: "INVALID_ANNOTATION_ARGUMENT",
	ExpressionError:           "EXPRESSION_ERROR",
	OperandType:               "OPERAND_TYPE",
	UnexpectedType:            "UNEXPECTED_TYPE",
	DuplicateDeclaration:      "DUPLICATE_DECLARATION",
	NonCanonicalImport:        "NON_CANONICAL_IMPORT",
	UnexpectedModifier:        "UNEXPECTED_MODIFIER",
	UnexpectedToken:           "UNEXPECTED_TOKEN",
	UnexpectedInput:           "UNEXPECTED_INPUT",
}

// String returns the taxonomy name, e.g. "CYCLE_IN_CLASS_HIERARCHY".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

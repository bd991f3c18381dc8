package jsonschema

import "fmt"

// ErrorKind classifies the errors this package can return, distinguishing conditions that
// abort compilation or evaluation from ordinary assertion failures (which are never
// returned as errors — they populate EvaluationResult.Errors instead).
type ErrorKind int

const (
	// KindJSONParseError marks malformed JSON text.
	KindJSONParseError ErrorKind = iota
	// KindJSONPointerError marks invalid pointer syntax or an unresolvable location.
	KindJSONPointerError
	// KindURIError marks an invalid or un-normalized URI.
	KindURIError
	// KindCatalogueError marks an unknown vocabulary/format, a duplicate registration, or
	// a loader failure.
	KindCatalogueError
	// KindSchemaStructureError marks a schema that violates its metaschema or a
	// keyword-specific structural rule (e.g. a malformed $id).
	KindSchemaStructureError
	// KindKeywordValueError marks a keyword argument that fails its own pre-validation
	// (e.g. an unparsable regex in "pattern").
	KindKeywordValueError
	// KindEvaluationCancelled marks an evaluation aborted by a cancellation token.
	KindEvaluationCancelled
)

func (k ErrorKind) String() string {
	switch k {
	case KindJSONParseError:
		return "JSONParseError"
	case KindJSONPointerError:
		return "JSONPointerError"
	case KindURIError:
		return "URIError"
	case KindCatalogueError:
		return "CatalogueError"
	case KindSchemaStructureError:
		return "SchemaStructureError"
	case KindKeywordValueError:
		return "KeywordValueError"
	case KindEvaluationCancelled:
		return "EvaluationCancelled"
	default:
		return "UnknownError"
	}
}

// SchemaError wraps an underlying error with the error kind table from the engine's error
// handling design, plus an optional JSON Pointer identifying where the error occurred.
type SchemaError struct {
	Kind    ErrorKind
	Pointer string // JSON Pointer into the schema or instance, when known
	Err     error
}

func (e *SchemaError) Error() string {
	if e.Pointer != "" {
		return fmt.Sprintf("%s at %s: %v", e.Kind, e.Pointer, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// wrapKind tags an existing sentinel or wrapped error with its error kind, leaving the
// original error reachable through errors.Is/errors.As via Unwrap.
func wrapKind(kind ErrorKind, err error) *SchemaError {
	if err == nil {
		return nil
	}
	return &SchemaError{Kind: kind, Err: err}
}

func wrapKindAt(kind ErrorKind, pointer string, err error) *SchemaError {
	if err == nil {
		return nil
	}
	return &SchemaError{Kind: kind, Pointer: pointer, Err: err}
}

// RegexPatternError reports a single pattern that failed to compile under the engine's
// regex dialect (Go's RE2, documented in DESIGN.md as the supported subset of ECMA-262).
type RegexPatternError struct {
	Keyword  string
	Location string
	Pattern  string
	Err      error
}

func (e *RegexPatternError) Error() string {
	return fmt.Sprintf("%s: pattern %q at %s is invalid: %v", e.Keyword, e.Pattern, e.Location, e.Err)
}

func (e *RegexPatternError) Unwrap() error {
	return e.Err
}

// IDError reports a single $id value that is not a well-formed absolute URI once resolved
// against its enclosing base URI.
type IDError struct {
	Location string
	Value    string
	Err      error
}

func (e *IDError) Error() string {
	return fmt.Sprintf("$id %q at %s is invalid: %v", e.Value, e.Location, e.Err)
}

func (e *IDError) Unwrap() error {
	return e.Err
}

package jsonschema

import (
	"errors"
	"net/url"
	"slices"
	"strconv"

	"github.com/kaptinlin/jsonpointer"
)

var (
	// ErrIDNotAbsolute is returned when a resolved $id is not an absolute URI.
	ErrIDNotAbsolute = errors.New("$id must resolve to an absolute URI without a fragment")

	// ErrIDContainsFragment is returned when a resolved $id carries a fragment.
	ErrIDContainsFragment = errors.New("$id must not contain a fragment")
)

// validateIDSyntax walks the schema tree and checks that every declared $id resolves to a
// well-formed absolute URI without a fragment, per the core vocabulary's id keyword. It
// runs after initializeSchema, once every $id has already been resolved against its
// enclosing base URI into s.uri.
func (s *Schema) validateIDSyntax() error {
	if s == nil {
		return nil
	}

	visited := make(map[*Schema]bool)
	errs := s.collectIDErrors(nil, visited)
	if len(errs) == 0 {
		return nil
	}

	combined := append([]error{ErrIDValidation}, errs...)
	return errors.Join(combined...)
}

// collectIDErrors recursively collects $id structural errors from the schema tree, using a
// token slice to track the JSON Pointer path in the same style as collectRegexErrors.
func (s *Schema) collectIDErrors(pathTokens []string, visited map[*Schema]bool) []error {
	if s == nil || visited[s] {
		return nil
	}
	visited[s] = true

	var errs []error

	if s.ID != "" {
		location := "#" + jsonpointer.Format(pathTokens...)
		parsed, err := url.Parse(s.uri)
		switch {
		case err != nil:
			errs = append(errs, &IDError{Location: location, Value: s.ID, Err: err})
		case !parsed.IsAbs():
			errs = append(errs, &IDError{Location: location, Value: s.ID, Err: ErrIDNotAbsolute})
		case parsed.Fragment != "":
			errs = append(errs, &IDError{Location: location, Value: s.ID, Err: ErrIDContainsFragment})
		}
	}

	addSchema := func(child *Schema, token string) {
		if child == nil {
			return
		}
		errs = append(errs, child.collectIDErrors(slices.Concat(pathTokens, []string{token}), visited)...)
	}
	addSchemaMap := func(m map[string]*Schema, prefix string) {
		for key, schema := range m {
			if schema == nil {
				continue
			}
			errs = append(errs, schema.collectIDErrors(slices.Concat(pathTokens, []string{prefix, key}), visited)...)
		}
	}
	addSchemaSlice := func(children []*Schema, prefix string) {
		for i, child := range children {
			if child == nil {
				continue
			}
			errs = append(errs, child.collectIDErrors(slices.Concat(pathTokens, []string{prefix, strconv.Itoa(i)}), visited)...)
		}
	}

	if s.Defs != nil {
		addSchemaMap(s.Defs, "$defs")
	}
	if s.Properties != nil {
		addSchemaMap(map[string]*Schema(*s.Properties), "properties")
	}
	if s.PatternProperties != nil {
		addSchemaMap(map[string]*Schema(*s.PatternProperties), "patternProperties")
	}
	addSchemaSlice(s.AllOf, "allOf")
	addSchemaSlice(s.AnyOf, "anyOf")
	addSchemaSlice(s.OneOf, "oneOf")
	addSchema(s.Not, "not")
	addSchema(s.If, "if")
	addSchema(s.Then, "then")
	addSchema(s.Else, "else")
	addSchema(s.Items, "items")
	addSchemaSlice(s.PrefixItems, "prefixItems")
	addSchema(s.Contains, "contains")
	addSchema(s.AdditionalProperties, "additionalProperties")
	addSchema(s.PropertyNames, "propertyNames")
	addSchemaMap(s.DependentSchemas, "dependentSchemas")
	addSchema(s.ContentSchema, "contentSchema")
	addSchema(s.UnevaluatedItems, "unevaluatedItems")
	addSchema(s.UnevaluatedProperties, "unevaluatedProperties")

	return errs
}

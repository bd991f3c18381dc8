package jsonschema

import "github.com/go-json-experiment/json"

// NewAssertingCompiler returns a Compiler preconfigured to assert, rather than merely
// annotate, the "format" keyword — a convenience for callers that want validation-strict
// behavior without registering a catalogue. Distinct from GetDefaultCompiler
// (constructor.go), which returns the package-level compiler backing the fluent builder
// API.
func NewAssertingCompiler() *Compiler {
	compiler := NewCompiler()
	compiler.AssertFormat = true
	return compiler
}

// AnyToJSONString serializes value to a JSON string, returning the empty string if
// serialization fails.
func AnyToJSONString(value interface{}) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(data)
}

package jsonschema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVocabularyDeclarationRequiresCore(t *testing.T) {
	known := standardVocabularies()

	err := validateVocabularyDeclaration(map[string]bool{
		VocabValidation202012: true,
	}, known)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVocabularyUnknown))

	err = validateVocabularyDeclaration(map[string]bool{
		VocabCore202012:       true,
		VocabValidation202012: true,
	}, known)
	require.NoError(t, err)
}

func TestValidateVocabularyDeclarationUnknownVocabulary(t *testing.T) {
	known := standardVocabularies()

	// Unknown but merely permitted (false): ignored.
	err := validateVocabularyDeclaration(map[string]bool{
		VocabCore202012:              true,
		"https://example.com/vocab/x": false,
	}, known)
	require.NoError(t, err)

	// Unknown and required (true): rejected.
	err = validateVocabularyDeclaration(map[string]bool{
		VocabCore202012:              true,
		"https://example.com/vocab/x": true,
	}, known)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVocabularyUnknown))
}

func TestComputeActiveKeywordsNilCompilerIsUnrestricted(t *testing.T) {
	schema := &Schema{Schema: Draft202012MetaschemaURI}
	assert.Nil(t, computeActiveKeywords(nil, schema))
}

func TestComputeActiveKeywordsNoMetaschemaVocabularyIsUnrestricted(t *testing.T) {
	compiler := NewCompiler()
	schema := &Schema{Schema: "https://example.com/meta/unregistered"}
	assert.Nil(t, computeActiveKeywords(compiler, schema))
}

func TestComputeActiveKeywordsRestrictsToDeclaredVocabularies(t *testing.T) {
	compiler := NewCompiler()
	compiler.SetMetaschemaVocabulary("https://example.com/meta/validation-only", map[string]bool{
		VocabCore202012:       true,
		VocabValidation202012: true,
	})

	schema := &Schema{Schema: "https://example.com/meta/validation-only"}
	active := computeActiveKeywords(compiler, schema)
	require.NotNil(t, active)

	// Validation-vocabulary keywords are active.
	assert.True(t, active["maxLength"])
	assert.True(t, active["required"])

	// Applicator-vocabulary keywords are not, since that vocabulary wasn't declared.
	assert.False(t, active["properties"])
	assert.False(t, active["allOf"])

	// Core keywords stay active unconditionally regardless of declaration.
	assert.True(t, active["$ref"])
	assert.True(t, active["$dynamicAnchor"])
}

func TestComputeActiveKeywordsIgnoresUndeclaredVocabularies(t *testing.T) {
	compiler := NewCompiler()
	compiler.SetMetaschemaVocabulary("https://example.com/meta/optional-validation", map[string]bool{
		VocabCore202012:       true,
		VocabValidation202012: false, // merely permitted, not required
	})

	schema := &Schema{Schema: "https://example.com/meta/optional-validation"}
	active := computeActiveKeywords(compiler, schema)
	require.NotNil(t, active)
	assert.False(t, active["maxLength"])
}

func TestSchemaIsKeywordActiveHonorsGatedVocabulary(t *testing.T) {
	compiler := NewCompiler()
	compiler.SetMetaschemaVocabulary("https://example.com/meta/validation-only", map[string]bool{
		VocabCore202012:       true,
		VocabValidation202012: true,
	})
	compiler.SetDefaultBaseURI("https://example.com/meta/validation-only")

	schemaJSON := `{
		"$schema": "https://example.com/meta/validation-only",
		"type": "object",
		"properties": {"name": {"type": "string"}},
		"required": ["name"]
	}`

	schema, err := compiler.Compile([]byte(schemaJSON))
	require.NoError(t, err)

	assert.True(t, schema.isKeywordActive("type"))
	assert.True(t, schema.isKeywordActive("required"))
	assert.False(t, schema.isKeywordActive("properties"))
}

func TestSchemaIsKeywordActiveUnrestrictedWithoutVocabularyEntry(t *testing.T) {
	compiler := NewCompiler()
	schemaJSON := `{"type": "object", "properties": {"name": {"type": "string"}}}`

	schema, err := compiler.Compile([]byte(schemaJSON))
	require.NoError(t, err)

	assert.True(t, schema.isKeywordActive("properties"))
	assert.True(t, schema.isKeywordActive("anything-unknown"))
}

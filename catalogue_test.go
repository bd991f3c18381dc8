package jsonschema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueRegisterVocabularyDuplicate(t *testing.T) {
	cat := NewCatalogue()
	vocab := newVocabulary("https://example.com/vocab/custom",
		&KeywordMeta{Name: "x-custom", Class: ClassAnnotation})

	require.NoError(t, cat.RegisterVocabulary(vocab.URI, vocab))

	err := cat.RegisterVocabulary(vocab.URI, vocab)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateVocabulary))
}

func TestCatalogueGetVocabularyUnknown(t *testing.T) {
	cat := NewCatalogue()
	_, err := cat.GetVocabulary("https://example.com/vocab/missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVocabularyUnknown))
}

func TestCatalogueAddSchemaAlreadyRegistered(t *testing.T) {
	cat := CreateCatalogue()
	uri := "https://example.com/schemas/person"

	first, err := cat.Compiler().Compile([]byte(`{"type": "object"}`))
	require.NoError(t, err)
	require.NoError(t, cat.AddSchema(uri, first))

	second, err := cat.Compiler().Compile([]byte(`{"type": "string"}`))
	require.NoError(t, err)

	err = cat.AddSchema(uri, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaAlreadyRegistered))

	// Re-registering the exact same schema object at the same URI is idempotent.
	require.NoError(t, cat.AddSchema(uri, first))
}

func TestCatalogueGetSchemaNotFound(t *testing.T) {
	cat := CreateCatalogue()
	_, err := cat.GetSchema("urn:example:schemas:does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaNotFound))
}

func TestCatalogueSessionOverlay(t *testing.T) {
	cat := CreateCatalogue()
	uri := "https://example.com/schemas/widget"

	shared, err := cat.Compiler().Compile([]byte(`{"type": "object"}`))
	require.NoError(t, err)
	require.NoError(t, cat.AddSchema(uri, shared))

	tenantA := Session("tenant-a")
	overlay, err := cat.Compiler().Compile([]byte(`{"type": "array"}`))
	require.NoError(t, err)
	require.NoError(t, cat.AddSchema(uri, overlay, tenantA))

	// A session write doesn't leak into the shared registry.
	shared2, err := cat.GetSchema(uri)
	require.NoError(t, err)
	assert.Same(t, shared, shared2)

	// Reading with the session option sees the overlay instead.
	fromSession, err := cat.GetSchema(uri, WithSession(tenantA))
	require.NoError(t, err)
	assert.Same(t, overlay, fromSession)

	// A different session with no overlay entry falls through to the shared registry.
	fromOtherSession, err := cat.GetSchema(uri, WithSession(Session("tenant-b")))
	require.NoError(t, err)
	assert.Same(t, shared, fromOtherSession)

	// A second write under the same session to the same URI with a different object fails.
	other, err := cat.Compiler().Compile([]byte(`{"type": "number"}`))
	require.NoError(t, err)
	err = cat.AddSchema(uri, other, tenantA)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaAlreadyRegistered))
}

func TestCatalogueRegisterMetaschemaRejectsMissingCoreVocabulary(t *testing.T) {
	cat := CreateCatalogue()

	metaJSON := `{
		"$id": "https://example.com/meta/no-core",
		"$vocabulary": {
			"https://json-schema.org/draft/2020-12/vocab/validation": true
		}
	}`

	_, err := cat.RegisterMetaschema("https://example.com/meta/no-core", []byte(metaJSON))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVocabularyUnknown))
}

func TestCatalogueRegisterMetaschemaAcceptsDeclaredCoreVocabulary(t *testing.T) {
	cat := CreateCatalogue()

	metaJSON := `{
		"$id": "https://example.com/meta/with-core",
		"$vocabulary": {
			"https://json-schema.org/draft/2020-12/vocab/core": true,
			"https://json-schema.org/draft/2020-12/vocab/validation": true
		}
	}`

	meta, err := cat.RegisterMetaschema("https://example.com/meta/with-core", []byte(metaJSON))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/meta/with-core", meta.URI)
	assert.True(t, meta.Vocabularies[VocabCore202012])

	got, err := cat.GetMetaschema("https://example.com/meta/with-core")
	require.NoError(t, err)
	assert.Same(t, meta, got)
}

func TestCatalogueGetMetaschemaUnknown(t *testing.T) {
	cat := CreateCatalogue()
	_, err := cat.GetMetaschema("https://example.com/meta/does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMetaschemaUnknown))
}

func TestCatalogueRegisterFormatDuplicate(t *testing.T) {
	cat := CreateCatalogue()
	always := func(any) bool { return true }

	require.NoError(t, cat.RegisterFormat("x-always-valid", always))

	err := cat.RegisterFormat("x-always-valid", always)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateFormatRegistration))
}

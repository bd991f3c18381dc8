package jsonschema

import (
	"errors"
	"fmt"
	"sync"
)

// Session is an isolated overlay namespace for schema registration, letting concurrent,
// non-interfering callers compile schemas against the same catalogue (e.g. per tenant)
// without lock contention on the shared registry.
type Session string

// Metaschema is a compiled Schema whose role is to validate other schemas. It must declare
// $vocabulary, and that declaration must include a core vocabulary with value true.
type Metaschema struct {
	URI          string
	Schema       *Schema
	Vocabularies map[string]bool
}

// Catalogue is a process-scoped (or, via sessions, tenant-scoped) registry mapping URIs to
// compiled schemas, vocabularies, metaschemas, and format implementations. It wraps a
// Compiler, which continues to own URI-keyed schema caching, loaders, media types, and the
// format registry.
type Catalogue struct {
	compiler *Compiler

	mu           sync.RWMutex
	vocabularies map[string]*Vocabulary
	metaschemas  map[string]*Metaschema
	sessions     map[Session]map[string]*Schema
}

// CatalogueOption configures a Catalogue at construction time.
type CatalogueOption func(*Catalogue)

// NewCatalogue creates an empty catalogue with no bundled vocabularies or metaschemas.
func NewCatalogue(opts ...CatalogueOption) *Catalogue {
	cat := &Catalogue{
		compiler:     NewCompiler(),
		vocabularies: make(map[string]*Vocabulary),
		metaschemas:  make(map[string]*Metaschema),
		sessions:     make(map[Session]map[string]*Schema),
	}
	for _, opt := range opts {
		opt(cat)
	}
	return cat
}

// WithCompiler lets a caller supply a pre-configured Compiler (custom loaders, decoders,
// media types) instead of the catalogue constructing a bare one.
func WithCompiler(c *Compiler) CatalogueOption {
	return func(cat *Catalogue) {
		cat.compiler = c
	}
}

// CreateCatalogue bundles the standard vocabularies and metaschemas eagerly, mirroring
// create_catalogue(drafts..., default=bool). With no options it bundles both the 2019-09
// and 2020-12 drafts and defaults new schemas to 2020-12.
func CreateCatalogue(opts ...CatalogueOption) *Catalogue {
	cat := NewCatalogue(opts...)

	for uri, vocab := range standardVocabularies() {
		//nolint:errcheck
		cat.RegisterVocabulary(uri, vocab)
	}

	for uri, vocab := range standardMetaschemaVocabularies() {
		cat.compiler.SetMetaschemaVocabulary(uri, vocab)
		cat.mu.Lock()
		cat.metaschemas[uri] = &Metaschema{URI: uri, Vocabularies: vocab}
		cat.mu.Unlock()
	}

	if cat.compiler.DefaultBaseURI == "" {
		cat.compiler.SetDefaultBaseURI(Draft202012MetaschemaURI)
	}

	return cat
}

// Compiler exposes the catalogue's underlying compiler, for callers that need direct
// access to loader/decoder/media-type registration.
func (cat *Catalogue) Compiler() *Compiler {
	return cat.compiler
}

// RegisterVocabulary adds a vocabulary under uri, failing if one is already registered
// there.
func (cat *Catalogue) RegisterVocabulary(uri string, vocab *Vocabulary) error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	if _, exists := cat.vocabularies[uri]; exists {
		return wrapKind(KindCatalogueError, fmt.Errorf("%w: %s", ErrDuplicateVocabulary, uri))
	}
	cat.vocabularies[uri] = vocab
	return nil
}

// GetVocabulary looks up a previously registered vocabulary.
func (cat *Catalogue) GetVocabulary(uri string) (*Vocabulary, error) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	v, ok := cat.vocabularies[uri]
	if !ok {
		return nil, wrapKind(KindCatalogueError, fmt.Errorf("%w: %s", ErrVocabularyUnknown, uri))
	}
	return v, nil
}

// RegisterFormat registers a format implementation through the underlying compiler,
// failing if the name is already registered.
func (cat *Catalogue) RegisterFormat(name string, validator func(any) bool, typeName ...string) error {
	cat.compiler.customFormatsRW.RLock()
	_, exists := cat.compiler.customFormats[name]
	cat.compiler.customFormatsRW.RUnlock()
	if exists {
		return wrapKind(KindCatalogueError, fmt.Errorf("%w: %s", ErrDuplicateFormatRegistration, name))
	}

	cat.compiler.RegisterFormat(name, validator, typeName...)
	return nil
}

// RegisterMetaschema compiles schemaJSON as a metaschema at uri, validating its
// $vocabulary declaration against the catalogue's registered vocabularies, and records its
// vocabulary map for format assert-vs-annotate resolution.
func (cat *Catalogue) RegisterMetaschema(uri string, schemaJSON []byte) (*Metaschema, error) {
	schema, err := cat.compiler.Compile(schemaJSON, uri)
	if err != nil {
		return nil, err
	}

	if schema.Vocabulary == nil {
		return nil, wrapKind(KindCatalogueError, fmt.Errorf("%w: %s declares no $vocabulary", ErrVocabularyUnknown, uri))
	}

	{
		cat.mu.RLock()
		known := make(map[string]*Vocabulary, len(cat.vocabularies))
		for k, v := range cat.vocabularies {
			known[k] = v
		}
		cat.mu.RUnlock()

		if err := validateVocabularyDeclaration(schema.Vocabulary, known); err != nil {
			return nil, wrapKind(KindCatalogueError, err)
		}
	}

	meta := &Metaschema{URI: uri, Schema: schema, Vocabularies: schema.Vocabulary}
	cat.mu.Lock()
	cat.metaschemas[uri] = meta
	cat.mu.Unlock()

	cat.compiler.SetMetaschemaVocabulary(uri, schema.Vocabulary)

	return meta, nil
}

// GetMetaschema looks up a previously registered metaschema.
func (cat *Catalogue) GetMetaschema(uri string) (*Metaschema, error) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()

	m, ok := cat.metaschemas[uri]
	if !ok {
		return nil, wrapKind(KindCatalogueError, fmt.Errorf("%w: %s", ErrMetaschemaUnknown, uri))
	}
	return m, nil
}

// AddSchema registers a compiled schema under uri. A second registration of the same URI
// in the same session fails with ErrSchemaAlreadyRegistered unless it is the same schema
// object (idempotent re-entry during compilation). With no session, the registration lands
// in the catalogue's shared registry (the underlying compiler's schema map).
func (cat *Catalogue) AddSchema(uri string, schema *Schema, session ...Session) error {
	if len(session) > 0 && session[0] != "" {
		sess := session[0]
		cat.mu.Lock()
		defer cat.mu.Unlock()

		if cat.sessions[sess] == nil {
			cat.sessions[sess] = make(map[string]*Schema)
		}
		if existing, exists := cat.sessions[sess][uri]; exists && existing != schema {
			return wrapKind(KindCatalogueError, fmt.Errorf("%w: %s", ErrSchemaAlreadyRegistered, uri))
		}
		cat.sessions[sess][uri] = schema
		return nil
	}

	cat.compiler.mu.RLock()
	existing, exists := cat.compiler.schemas[uri]
	cat.compiler.mu.RUnlock()
	if exists && existing != schema {
		return wrapKind(KindCatalogueError, fmt.Errorf("%w: %s", ErrSchemaAlreadyRegistered, uri))
	}

	cat.compiler.SetSchema(uri, schema)
	return nil
}

// GetSchema returns a previously registered schema, or attempts to compile one from the
// underlying compiler's loaders. A session is consulted before the shared registry; on a
// read miss it falls through. A metaschema URI given with WithMetaschema is recorded but
// not used: a freshly loaded schema is compiled exactly as the loader returns it.
func (cat *Catalogue) GetSchema(uri string, opts ...GetSchemaOption) (*Schema, error) {
	cfg := &getSchemaConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.session != "" {
		cat.mu.RLock()
		schema, ok := cat.sessions[cfg.session][uri]
		cat.mu.RUnlock()
		if ok {
			return schema, nil
		}
	}

	schema, err := cat.compiler.GetSchema(uri)
	if err != nil {
		if errors.Is(err, ErrNoLoaderRegistered) {
			return nil, wrapKind(KindCatalogueError, fmt.Errorf("%w: %s: %w", ErrSchemaNotFound, uri, err))
		}
		return nil, wrapKind(KindCatalogueError, fmt.Errorf("%w: %s: %w", ErrSchemaLoadFailed, uri, err))
	}
	return schema, nil
}

type getSchemaConfig struct {
	metaschemaURI string
	session       Session
}

// GetSchemaOption configures a Catalogue.GetSchema call.
type GetSchemaOption func(*getSchemaConfig)

// WithMetaschema records a metaschema URI on the GetSchema call. GetSchema does not apply
// it to the schema it loads or returns.
func WithMetaschema(uri string) GetSchemaOption {
	return func(c *getSchemaConfig) { c.metaschemaURI = uri }
}

// WithSession scopes the lookup to a session overlay.
func WithSession(session Session) GetSchemaOption {
	return func(c *getSchemaConfig) { c.session = session }
}

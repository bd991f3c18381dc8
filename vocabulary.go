package jsonschema

import "fmt"

// Standard vocabulary URIs for the 2019-09 and 2020-12 drafts.
const (
	VocabCore201909 = "https://json-schema.org/draft/2019-09/vocab/core"
	VocabCore202012 = "https://json-schema.org/draft/2020-12/vocab/core"

	VocabApplicator201909 = "https://json-schema.org/draft/2019-09/vocab/applicator"
	VocabApplicator202012 = "https://json-schema.org/draft/2020-12/vocab/applicator"

	VocabValidation201909 = "https://json-schema.org/draft/2019-09/vocab/validation"
	VocabValidation202012 = "https://json-schema.org/draft/2020-12/vocab/validation"

	VocabUnevaluated202012 = "https://json-schema.org/draft/2020-12/vocab/unevaluated"

	VocabFormat201909         = "https://json-schema.org/draft/2019-09/vocab/format"
	VocabFormatAnnotation2020 = "https://json-schema.org/draft/2020-12/vocab/format-annotation"
	VocabFormatAssertion2020  = "https://json-schema.org/draft/2020-12/vocab/format-assertion"

	VocabContent201909 = "https://json-schema.org/draft/2019-09/vocab/content"
	VocabContent202012 = "https://json-schema.org/draft/2020-12/vocab/content"

	VocabMetaData201909 = "https://json-schema.org/draft/2019-09/vocab/meta-data"
	VocabMetaData202012 = "https://json-schema.org/draft/2020-12/vocab/meta-data"

	Draft201909MetaschemaURI = "https://json-schema.org/draft/2019-09/schema"
	Draft202012MetaschemaURI = "https://json-schema.org/draft/2020-12/schema"
)

// KeywordClass tags a keyword's evaluation shape, per the keyword model in the engine's
// component design.
type KeywordClass int

const (
	ClassApplicator KeywordClass = iota
	ClassAssertion
	ClassAnnotation
)

// KeywordMeta describes a single keyword's instance-type gate, sibling-annotation
// dependencies, and class. It does not itself evaluate anything — the struct-field
// evaluators in validate.go and its sibling files remain the execution path; KeywordMeta
// documents the contract they already satisfy and backs $vocabulary validation.
type KeywordMeta struct {
	Name      string
	Types     []string // empty means "applies to every instance type"
	DependsOn []string // sibling keywords whose annotations this keyword consumes
	Class     KeywordClass
}

// KeywordConstructor mirrors the constructor-map shape named in the design notes
// (name -> fn(parent_schema, value) -> evaluator). It is used by vocabularies to validate
// a keyword's own argument shape during compilation; the struct-based compiler invokes it
// as a meta-validation hook rather than as the dispatch mechanism itself.
type KeywordConstructor func(parent *Schema, value any) error

// Vocabulary is a named, URI-identified set of keywords. A metaschema opts into one or
// more vocabularies through its $vocabulary map.
type Vocabulary struct {
	URI      string
	Keywords map[string]*KeywordMeta
}

func newVocabulary(uri string, metas ...*KeywordMeta) *Vocabulary {
	v := &Vocabulary{URI: uri, Keywords: make(map[string]*KeywordMeta, len(metas))}
	for _, m := range metas {
		v.Keywords[m.Name] = m
	}
	return v
}

// standardVocabularies returns the built-in vocabulary set shared by the 2019-09 and
// 2020-12 drafts, keyed by vocabulary URI. A Catalogue created via CreateCatalogue
// registers all of these eagerly.
func standardVocabularies() map[string]*Vocabulary {
	core := func(uri string) *Vocabulary {
		return newVocabulary(uri,
			&KeywordMeta{Name: "$schema", Class: ClassAnnotation},
			&KeywordMeta{Name: "$id", Class: ClassAnnotation},
			&KeywordMeta{Name: "$ref", Class: ClassApplicator},
			&KeywordMeta{Name: "$anchor", Class: ClassAnnotation},
			&KeywordMeta{Name: "$dynamicRef", Class: ClassApplicator},
			&KeywordMeta{Name: "$dynamicAnchor", Class: ClassAnnotation},
			&KeywordMeta{Name: "$defs", Class: ClassAnnotation},
			&KeywordMeta{Name: "$comment", Class: ClassAnnotation},
			&KeywordMeta{Name: "$vocabulary", Class: ClassAnnotation},
		)
	}

	applicator := func(uri string) *Vocabulary {
		return newVocabulary(uri,
			&KeywordMeta{Name: "allOf", Class: ClassApplicator},
			&KeywordMeta{Name: "anyOf", Class: ClassApplicator},
			&KeywordMeta{Name: "oneOf", Class: ClassApplicator},
			&KeywordMeta{Name: "not", Class: ClassApplicator},
			&KeywordMeta{Name: "if", Class: ClassApplicator},
			&KeywordMeta{Name: "then", Class: ClassApplicator, DependsOn: []string{"if"}},
			&KeywordMeta{Name: "else", Class: ClassApplicator, DependsOn: []string{"if"}},
			&KeywordMeta{Name: "dependentSchemas", Types: []string{"object"}, Class: ClassApplicator},
			&KeywordMeta{Name: "items", Types: []string{"array"}, Class: ClassApplicator, DependsOn: []string{"prefixItems"}},
			&KeywordMeta{Name: "prefixItems", Types: []string{"array"}, Class: ClassApplicator},
			&KeywordMeta{Name: "contains", Types: []string{"array"}, Class: ClassApplicator},
			&KeywordMeta{Name: "properties", Types: []string{"object"}, Class: ClassApplicator},
			&KeywordMeta{Name: "patternProperties", Types: []string{"object"}, Class: ClassApplicator},
			&KeywordMeta{Name: "additionalProperties", Types: []string{"object"}, Class: ClassApplicator, DependsOn: []string{"properties", "patternProperties"}},
			&KeywordMeta{Name: "propertyNames", Types: []string{"object"}, Class: ClassApplicator},
		)
	}

	validation := func(uri string) *Vocabulary {
		return newVocabulary(uri,
			&KeywordMeta{Name: "type", Class: ClassAssertion},
			&KeywordMeta{Name: "enum", Class: ClassAssertion},
			&KeywordMeta{Name: "const", Class: ClassAssertion},
			&KeywordMeta{Name: "multipleOf", Types: []string{"number", "integer"}, Class: ClassAssertion},
			&KeywordMeta{Name: "maximum", Types: []string{"number", "integer"}, Class: ClassAssertion},
			&KeywordMeta{Name: "exclusiveMaximum", Types: []string{"number", "integer"}, Class: ClassAssertion},
			&KeywordMeta{Name: "minimum", Types: []string{"number", "integer"}, Class: ClassAssertion},
			&KeywordMeta{Name: "exclusiveMinimum", Types: []string{"number", "integer"}, Class: ClassAssertion},
			&KeywordMeta{Name: "maxLength", Types: []string{"string"}, Class: ClassAssertion},
			&KeywordMeta{Name: "minLength", Types: []string{"string"}, Class: ClassAssertion},
			&KeywordMeta{Name: "pattern", Types: []string{"string"}, Class: ClassAssertion},
			&KeywordMeta{Name: "maxItems", Types: []string{"array"}, Class: ClassAssertion},
			&KeywordMeta{Name: "minItems", Types: []string{"array"}, Class: ClassAssertion},
			&KeywordMeta{Name: "uniqueItems", Types: []string{"array"}, Class: ClassAssertion},
			&KeywordMeta{Name: "maxContains", Types: []string{"array"}, Class: ClassAssertion, DependsOn: []string{"contains"}},
			&KeywordMeta{Name: "minContains", Types: []string{"array"}, Class: ClassAssertion, DependsOn: []string{"contains"}},
			&KeywordMeta{Name: "maxProperties", Types: []string{"object"}, Class: ClassAssertion},
			&KeywordMeta{Name: "minProperties", Types: []string{"object"}, Class: ClassAssertion},
			&KeywordMeta{Name: "required", Types: []string{"object"}, Class: ClassAssertion},
			&KeywordMeta{Name: "dependentRequired", Types: []string{"object"}, Class: ClassAssertion},
		)
	}

	metadata := func(uri string) *Vocabulary {
		return newVocabulary(uri,
			&KeywordMeta{Name: "title", Class: ClassAnnotation},
			&KeywordMeta{Name: "description", Class: ClassAnnotation},
			&KeywordMeta{Name: "default", Class: ClassAnnotation},
			&KeywordMeta{Name: "examples", Class: ClassAnnotation},
			&KeywordMeta{Name: "deprecated", Class: ClassAnnotation},
			&KeywordMeta{Name: "readOnly", Class: ClassAnnotation},
			&KeywordMeta{Name: "writeOnly", Class: ClassAnnotation},
		)
	}

	content := func(uri string) *Vocabulary {
		return newVocabulary(uri,
			&KeywordMeta{Name: "contentEncoding", Types: []string{"string"}, Class: ClassAnnotation},
			&KeywordMeta{Name: "contentMediaType", Types: []string{"string"}, Class: ClassAnnotation},
			&KeywordMeta{Name: "contentSchema", Types: []string{"string"}, Class: ClassAnnotation, DependsOn: []string{"contentMediaType"}},
		)
	}

	format := func(uri string, asserts bool) *Vocabulary {
		class := ClassAnnotation
		if asserts {
			class = ClassAssertion
		}
		return newVocabulary(uri, &KeywordMeta{Name: "format", Class: class})
	}

	unevaluated := newVocabulary(VocabUnevaluated202012,
		&KeywordMeta{Name: "unevaluatedItems", Types: []string{"array"}, Class: ClassApplicator, DependsOn: []string{"items", "prefixItems", "contains"}},
		&KeywordMeta{Name: "unevaluatedProperties", Types: []string{"object"}, Class: ClassApplicator, DependsOn: []string{"properties", "patternProperties", "additionalProperties"}},
	)

	return map[string]*Vocabulary{
		VocabCore201909:          core(VocabCore201909),
		VocabCore202012:          core(VocabCore202012),
		VocabApplicator201909:    applicator(VocabApplicator201909),
		VocabApplicator202012:    applicator(VocabApplicator202012),
		VocabValidation201909:    validation(VocabValidation201909),
		VocabValidation202012:    validation(VocabValidation202012),
		VocabUnevaluated202012:   unevaluated,
		VocabFormat201909:        format(VocabFormat201909, false),
		VocabFormatAnnotation2020: format(VocabFormatAnnotation2020, false),
		VocabFormatAssertion2020: format(VocabFormatAssertion2020, true),
		VocabContent201909:       content(VocabContent201909),
		VocabContent202012:       content(VocabContent202012),
		VocabMetaData201909:      metadata(VocabMetaData201909),
		VocabMetaData202012:      metadata(VocabMetaData202012),
	}
}

// standardMetaschemaVocabularies returns, for each bundled metaschema URI, the
// $vocabulary map it declares. Used to seed a Compiler's metaschema vocabulary cache so
// format assertion behavior can be derived without fetching metaschema documents over the
// network.
func standardMetaschemaVocabularies() map[string]map[string]bool {
	return map[string]map[string]bool{
		Draft201909MetaschemaURI: {
			VocabCore201909:       true,
			VocabApplicator201909: true,
			VocabValidation201909: true,
			VocabMetaData201909:   true,
			VocabFormat201909:     true,
			VocabContent201909:    true,
		},
		Draft202012MetaschemaURI: {
			VocabCore202012:          true,
			VocabApplicator202012:    true,
			VocabValidation202012:    true,
			VocabUnevaluated202012:   true,
			VocabFormatAnnotation2020: true,
			VocabContent202012:       true,
			VocabMetaData202012:      true,
		},
	}
}

// validateVocabularyDeclaration checks a metaschema's $vocabulary map against the
// registered vocabularies: the core vocabulary for its draft must be present and true;
// unknown vocabularies declared as required (true) are an error, unknown vocabularies
// declared as optional (false) are silently ignored. Mirrors VocabularyKeyword in the
// reference implementation.
func validateVocabularyDeclaration(vocab map[string]bool, known map[string]*Vocabulary) error {
	hasCore := false
	for uri, required := range vocab {
		v, ok := known[uri]
		if !ok {
			if required {
				return fmt.Errorf("%w: unknown required vocabulary %q", ErrVocabularyUnknown, uri)
			}
			continue
		}
		if v.URI == VocabCore201909 || v.URI == VocabCore202012 {
			hasCore = required
		}
	}
	if !hasCore {
		return fmt.Errorf("%w: metaschema must require a core vocabulary", ErrVocabularyUnknown)
	}
	return nil
}

// alwaysActiveKeywords are recognized regardless of which vocabularies a metaschema opts
// into: without them reference resolution, anchoring, and recursion into subschemas would
// break even for a metaschema that declares none of the standard vocabularies.
var alwaysActiveKeywords = []string{
	"$id", "$schema", "$ref", "$anchor", "$dynamicRef", "$dynamicAnchor",
	"$defs", "$comment", "$vocabulary",
}

// computeActiveKeywords derives the effective keyword set a schema's evaluator should
// recognize, per the keyword model's vocabulary gating (component design, keyword model
// section): the union of every keyword belonging to a vocabulary the schema's governing
// metaschema declares as required. Returns nil ("every keyword active") when the compiler
// carries no metaschema vocabulary entry for the schema's $schema — the behavior a schema
// compiled without a Catalogue has always had, so bare Compiler.Compile use is unaffected.
func computeActiveKeywords(compiler *Compiler, s *Schema) map[string]bool {
	if compiler == nil {
		return nil
	}
	declared, ok := compiler.GetMetaschemaVocabulary(s.effectiveMetaschemaURI())
	if !ok {
		return nil
	}

	active := make(map[string]bool)
	for _, name := range alwaysActiveKeywords {
		active[name] = true
	}

	standard := standardVocabularies()
	for vocabURI, required := range declared {
		if !required {
			continue
		}
		vocab, ok := standard[vocabURI]
		if !ok {
			continue
		}
		for name := range vocab.Keywords {
			active[name] = true
		}
	}
	return active
}

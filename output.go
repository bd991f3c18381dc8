package jsonschema

// Output is the shape shared by the basic, detailed, and verbose standard output formats.
// Unlike List (result.go), every path on an Output is absolute: it has been accumulated
// down from the root result rather than left relative to its own parent, so a caller can
// locate a failure without re-walking the hierarchy.
type Output struct {
	Valid                   bool              `json:"valid"`
	KeywordLocation         string            `json:"keywordLocation"`
	AbsoluteKeywordLocation string            `json:"absoluteKeywordLocation,omitempty"`
	InstanceLocation        string            `json:"instanceLocation"`
	Annotations             map[string]any    `json:"annotations,omitempty"`
	Errors                  map[string]string `json:"errors,omitempty"`
	Details                 []*Output         `json:"details,omitempty"`
}

// ToBasic produces the flag-plus-flat-list output format: a single-level array of every
// node in the evaluation tree that failed, each carrying absolute keyword and instance
// locations. Passing branches are omitted entirely, matching the "basic" format's intent
// of a short, actionable error list.
func (e *EvaluationResult) ToBasic() *Output {
	out := &Output{
		Valid:            e.Valid,
		KeywordLocation:  e.EvaluationPath,
		InstanceLocation: e.InstanceLocation,
	}
	if e.Valid {
		return out
	}

	out.Details = make([]*Output, 0)
	e.collectFailures(out, e.EvaluationPath, e.SchemaLocation, e.InstanceLocation)
	return out
}

// collectFailures walks the Details hierarchy accumulating absolute paths, appending one
// flat Output entry per node that reports at least one error.
func (e *EvaluationResult) collectFailures(into *Output, evalPath, schemaLoc, instLoc string) {
	if len(e.Errors) > 0 {
		into.Details = append(into.Details, &Output{
			Valid:                   false,
			KeywordLocation:         evalPath,
			AbsoluteKeywordLocation: schemaLoc,
			InstanceLocation:        instLoc,
			Errors:                  e.convertErrors(nil),
		})
	}

	for _, detail := range e.Details {
		childEvalPath := evalPath + detail.EvaluationPath
		childSchemaLoc := schemaLoc + detail.SchemaLocation
		childInstLoc := instLoc + detail.InstanceLocation
		detail.collectFailures(into, childEvalPath, childSchemaLoc, childInstLoc)
	}
}

// ToDetailed produces the hierarchical output format: the evaluation tree is preserved,
// but branches that are entirely valid and carry no annotations are pruned, so only the
// structure relevant to understanding a failure (or the annotations a caller asked for)
// survives.
func (e *EvaluationResult) ToDetailed() *Output {
	return e.toOutputTree("", "", "", true)
}

// ToVerbose produces the complete output format: every node the evaluator visited, valid
// or not, with absolute paths and its own annotations.
func (e *EvaluationResult) ToVerbose() *Output {
	return e.toOutputTree("", "", "", false)
}

func (e *EvaluationResult) toOutputTree(evalPrefix, schemaPrefix, instPrefix string, pruneValid bool) *Output {
	evalPath := evalPrefix + e.EvaluationPath
	schemaLoc := schemaPrefix + e.SchemaLocation
	instLoc := instPrefix + e.InstanceLocation

	out := &Output{
		Valid:                   e.Valid,
		KeywordLocation:         evalPath,
		AbsoluteKeywordLocation: schemaLoc,
		InstanceLocation:        instLoc,
	}
	if len(e.Errors) > 0 {
		out.Errors = e.convertErrors(nil)
	}
	if len(e.Annotations) > 0 {
		out.Annotations = e.Annotations
	}

	for _, detail := range e.Details {
		if pruneValid && detail.Valid && len(detail.Annotations) == 0 && !detail.hasFailingDescendant() {
			continue
		}
		child := detail.toOutputTree(evalPath, schemaLoc, instLoc, pruneValid)
		out.Details = append(out.Details, child)
	}

	return out
}

// hasFailingDescendant reports whether any node beneath e (inclusive) failed, so a valid,
// annotation-free branch that merely contains a failing descendant is not pruned away.
func (e *EvaluationResult) hasFailingDescendant() bool {
	if !e.Valid {
		return true
	}
	for _, detail := range e.Details {
		if detail.hasFailingDescendant() {
			return true
		}
	}
	return false
}

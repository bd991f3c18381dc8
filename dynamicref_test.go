package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLookupDynamicAnchorBubblesToOutermost reproduces the nested-$dynamicAnchor-shadowing
// scenario: an outer schema and a middle schema both declare $dynamicAnchor "items", and a
// $dynamicRef resolved from an inner scope must bind to the outermost declaration on the
// active call stack, not the first one found walking inward from the top, nor the nearest
// enclosing one.
func TestLookupDynamicAnchorBubblesToOutermost(t *testing.T) {
	outerItems := &Schema{ID: "https://example.com/outer#items"}
	middleItems := &Schema{ID: "https://example.com/middle#items"}

	outer := &Schema{
		ID:             "https://example.com/outer",
		dynamicAnchors: map[string]*Schema{"items": outerItems},
	}
	middle := &Schema{
		ID:             "https://example.com/middle",
		dynamicAnchors: map[string]*Schema{"items": middleItems},
	}
	inner := &Schema{ID: "https://example.com/inner"}

	scope := NewDynamicScope()
	// Mirrors evaluate()'s push order: outermost schema entered first, innermost last.
	scope.Push(outer)
	scope.Push(middle)
	scope.Push(inner)

	resolved := scope.LookupDynamicAnchor("items")
	assert.Same(t, outerItems, resolved, "dynamicAnchor resolution must bubble up to the outermost declaring scope")
	assert.NotSame(t, middleItems, resolved)
}

// TestLookupDynamicAnchorFallsBackWhenOuterLacksAnchor confirms that when only an inner
// scope declares the anchor, lookup still finds it rather than stopping at an outer scope
// with no matching entry.
func TestLookupDynamicAnchorFallsBackWhenOuterLacksAnchor(t *testing.T) {
	outer := &Schema{ID: "https://example.com/outer"}
	innerItems := &Schema{ID: "https://example.com/inner#items"}
	inner := &Schema{
		ID:             "https://example.com/inner",
		dynamicAnchors: map[string]*Schema{"items": innerItems},
	}

	scope := NewDynamicScope()
	scope.Push(outer)
	scope.Push(inner)

	resolved := scope.LookupDynamicAnchor("items")
	assert.Same(t, innerItems, resolved)
}

// TestLookupDynamicAnchorReturnsNilWhenAbsent confirms an unmatched anchor name yields no
// schema rather than panicking or matching an unrelated anchor.
func TestLookupDynamicAnchorReturnsNilWhenAbsent(t *testing.T) {
	outer := &Schema{
		ID:             "https://example.com/outer",
		dynamicAnchors: map[string]*Schema{"items": {ID: "https://example.com/outer#items"}},
	}

	scope := NewDynamicScope()
	scope.Push(outer)

	assert.Nil(t, scope.LookupDynamicAnchor("absent"))
}

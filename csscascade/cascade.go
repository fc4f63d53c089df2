// Package csscascade implements the C3 component: cascaded declarations, a
// per-element collapsed view built by iterating matched rules in reverse
// cascade order and merging each aggregate in first-writer-wins order
// (spec §4.2).
package csscascade

import (
	"fmt"

	"github.com/cssflow/core/cssvalue"
)

// Cascaded is the short-lived, per-element collapsed view described in
// spec §3: a sparse aggregate_tag -> aggregate_value map, plus an optional
// `all` CSS-wide keyword. Storage is proportional only to the aggregates
// actually touched for this element (spec §4.2's "storage cost proportional
// to the number of distinct aggregates actually touched").
type Cascaded struct {
	values map[cssvalue.AggregateTag]any
	allSet bool
	all    cssvalue.CssWideKeyword
}

// New returns an empty cascaded-declarations view.
func New() *Cascaded {
	return &Cascaded{}
}

// SetAll records the `all` keyword once and for all: repeated calls after
// the first are no-ops (spec §4.2).
func (c *Cascaded) SetAll(kw cssvalue.CssWideKeyword) {
	if c.allSet {
		return
	}
	c.allSet = true
	c.all = kw
}

// All reports the `all` keyword recorded for this element, if any.
func (c *Cascaded) All() (cssvalue.CssWideKeyword, bool) {
	return c.all, c.allSet
}

// SetAggregate merges value's present fields into the element's running
// aggregate for tag, writing only fields still Undeclared (first-writer-
// wins, spec §4.2). If `all` has already been set, this is a no-op and the
// map is never touched — not even to create an entry — matching spec §8
// scenario 2, where get(box_style) stays None even after `all` is set,
// because no field of box_style was ever successfully written.
func (c *Cascaded) SetAggregate(tag cssvalue.AggregateTag, value any) error {
	if c.allSet {
		return nil
	}
	if c.values == nil {
		c.values = make(map[cssvalue.AggregateTag]any)
	}
	existing, ok := c.values[tag]
	if !ok {
		existing = cssvalue.New(tag)
	}
	if err := cssvalue.MergeInto(tag, existing, value); err != nil {
		return fmt.Errorf("csscascade: set_aggregate %s: %w", tag, err)
	}
	c.values[tag] = existing
	return nil
}

// Get returns the element's collapsed value for tag, or (nil, false) if
// that aggregate was never touched by SetAggregate.
func (c *Cascaded) Get(tag cssvalue.AggregateTag) (any, bool) {
	v, ok := c.values[tag]
	return v, ok
}

// Len reports how many distinct aggregates have been touched, for tests and
// diagnostics.
func (c *Cascaded) Len() int {
	return len(c.values)
}

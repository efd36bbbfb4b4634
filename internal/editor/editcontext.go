package editor

import (
	"errors"
	"fmt"
)

// ErrUnknownField indicates a field that was never tracked.
var ErrUnknownField = errors.New("unknown field")

// EditContext tracks the original and current text of each form field.
type EditContext struct {
	order    []string
	original map[string]string
	current  map[string]string
}

// NewEditContext creates an empty EditContext.
func NewEditContext() *EditContext {
	return &EditContext{
		original: make(map[string]string),
		current:  make(map[string]string),
	}
}

// Track starts tracking field with its stored value. Tracking a field again
// resets it.
func (c *EditContext) Track(field, original string) {
	if _, ok := c.original[field]; !ok {
		c.order = append(c.order, field)
	}
	c.original[field] = original
	c.current[field] = original
}

// Set updates field and reports whether any field now differs from its
// original value.
func (c *EditContext) Set(field, value string) (bool, error) {
	if _, ok := c.original[field]; !ok {
		return false, fmt.Errorf("edit context: set %q: %w", field, ErrUnknownField)
	}
	c.current[field] = value
	return c.IsModified(), nil
}

// Value returns the current text of field.
func (c *EditContext) Value(field string) string {
	return c.current[field]
}

// Original returns the stored text of field.
func (c *EditContext) Original(field string) string {
	return c.original[field]
}

// Fields returns the tracked fields in tracking order.
func (c *EditContext) Fields() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// IsModified reports whether any field differs from its original value.
func (c *EditContext) IsModified() bool {
	for _, f := range c.order {
		if c.current[f] != c.original[f] {
			return true
		}
	}
	return false
}

// ModifiedFields lists the fields that differ, in tracking order.
func (c *EditContext) ModifiedFields() []string {
	var out []string
	for _, f := range c.order {
		if c.current[f] != c.original[f] {
			out = append(out, f)
		}
	}
	return out
}

// MarkUnmodified makes the current values the new originals, after a save.
func (c *EditContext) MarkUnmodified() {
	for _, f := range c.order {
		c.original[f] = c.current[f]
	}
}

// Reset discards edits and restores the original values.
func (c *EditContext) Reset() {
	for _, f := range c.order {
		c.current[f] = c.original[f]
	}
}

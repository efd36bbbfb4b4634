// Package view holds the descriptor of what is rendered and the manager that
// switches between views and a modal overlay.
package view

import (
	"fmt"
	"maps"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Type identifies a view implementation. It is a tag, never a live instance.
type Type string

// ParamID is the parameter that carries the record a view is bound to.
const ParamID = "id"

// Data describes which view to render with which parameters.
// A Data is immutable: New copies the parameter map and accessors return copies.
type Data struct {
	viewType Type
	params   map[string]any
}

// New builds a Data for t.
func New(t Type, params map[string]any) Data {
	var copied map[string]any
	if len(params) > 0 {
		copied = maps.Clone(params)
	}
	return Data{viewType: t, params: copied}
}

// Type returns the view type.
func (d Data) Type() Type {
	return d.viewType
}

// IsZero reports whether d describes no view at all.
func (d Data) IsZero() bool {
	return d.viewType == ""
}

// Params returns a copy of the parameters.
func (d Data) Params() map[string]any {
	return maps.Clone(d.params)
}

// Param returns a single parameter.
func (d Data) Param(name string) (any, bool) {
	v, ok := d.params[name]
	return v, ok
}

// String returns a parameter formatted as a string, or "".
func (d Data) String(name string) string {
	v, ok := d.params[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int64 returns a numeric parameter. String values are parsed.
func (d Data) Int64(name string) (int64, bool) {
	switch v := d.params[name].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// RecordID returns the id parameter, 0 when absent.
func (d Data) RecordID() int64 {
	id, _ := d.Int64(ParamID)
	return id
}

// With returns a new Data with name set to value. d is left unchanged.
func (d Data) With(name string, value any) Data {
	params := maps.Clone(d.params)
	if params == nil {
		params = make(map[string]any, 1)
	}
	params[name] = value
	return Data{viewType: d.viewType, params: params}
}

// Equal reports whether both descriptors have the same type and parameters.
func (d Data) Equal(other Data) bool {
	if d.viewType != other.viewType || len(d.params) != len(other.params) {
		return false
	}
	return reflect.DeepEqual(d.params, other.params) || (len(d.params) == 0 && len(other.params) == 0)
}

// Describe formats d for logs: "type{k=v k=v}" with sorted keys.
func (d Data) Describe() string {
	if len(d.params) == 0 {
		return string(d.viewType)
	}
	keys := make([]string, 0, len(d.params))
	for k := range d.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, d.params[k]))
	}
	return fmt.Sprintf("%s{%s}", d.viewType, strings.Join(parts, " "))
}

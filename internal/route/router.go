// Package route maps URLs to view descriptors and back.
package route

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/cristianoliveira/forecast-desk/internal/logging"
	"github.com/cristianoliveira/forecast-desk/internal/view"
)

var (
	// ErrNoRoute indicates a URL or view type without a registered route.
	ErrNoRoute = errors.New("no route")
	// ErrInvalidPattern indicates a malformed route pattern.
	ErrInvalidPattern = errors.New("invalid route pattern")
	// ErrMissingParam indicates URL could not fill a pattern parameter.
	ErrMissingParam = errors.New("missing route parameter")
)

// Loader receives the resolved view. *view.Manager implements it.
type Loader interface {
	LoadView(ctx context.Context, d view.Data) error
}

type route struct {
	pattern  string
	segments []string
	viewType view.Type
}

// Router resolves URLs like "/forecasts/{id}" to view descriptors.
// Routes are matched in registration order.
type Router struct {
	routes []route
	loader Loader
	logger logging.Logger
}

// New creates a Router that loads resolved views into loader.
func New(loader Loader) *Router {
	return &Router{loader: loader, logger: logging.With("component", "route")}
}

// Register maps pattern to t. A segment written as {name} captures a
// parameter; {id} captures the record id as an int64.
func (r *Router) Register(pattern string, t view.Type) error {
	segments := split(pattern)
	seen := make(map[string]bool)
	for _, seg := range segments {
		if !isParam(seg) {
			continue
		}
		name := paramName(seg)
		if name == "" || seen[name] {
			return fmt.Errorf("route: register %q: %w", pattern, ErrInvalidPattern)
		}
		seen[name] = true
	}
	r.routes = append(r.routes, route{pattern: pattern, segments: segments, viewType: t})
	return nil
}

// MustRegister is Register that panics on a malformed pattern.
func (r *Router) MustRegister(pattern string, t view.Type) {
	if err := r.Register(pattern, t); err != nil {
		panic(err)
	}
}

// Resolve turns rawURL into a view descriptor. Path parameters and query
// values both become view parameters; path parameters win on conflict.
func (r *Router) Resolve(rawURL string) (view.Data, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return view.Data{}, fmt.Errorf("route: resolve %q: %w", rawURL, err)
	}
	parts := split(u.Path)

	for _, rt := range r.routes {
		params, ok := rt.match(parts)
		if !ok {
			continue
		}
		for key, values := range u.Query() {
			if _, taken := params[key]; taken || len(values) == 0 {
				continue
			}
			params[key] = values[0]
		}
		return view.New(rt.viewType, params), nil
	}
	return view.Data{}, fmt.Errorf("route: resolve %q: %w", rawURL, ErrNoRoute)
}

// URL builds a URL for t. Among the routes for t whose path parameters are
// all present in params, the one with the most path parameters wins, then the
// first registered. Remaining parameters are encoded as a sorted query string.
func (r *Router) URL(t view.Type, params map[string]any) (string, error) {
	var (
		best    *route
		bestN   = -1
		missing string
	)
	for i := range r.routes {
		rt := &r.routes[i]
		if rt.viewType != t {
			continue
		}
		n, absent := rt.fill(params)
		if absent != "" {
			if missing == "" {
				missing = absent
			}
			continue
		}
		if n > bestN {
			best, bestN = rt, n
		}
	}
	if best == nil {
		if missing != "" {
			return "", fmt.Errorf("route: url for %q: %w: %s", t, ErrMissingParam, missing)
		}
		return "", fmt.Errorf("route: url for %q: %w", t, ErrNoRoute)
	}

	used := make(map[string]bool)
	path := make([]string, 0, len(best.segments))
	for _, seg := range best.segments {
		if !isParam(seg) {
			path = append(path, seg)
			continue
		}
		name := paramName(seg)
		used[name] = true
		path = append(path, url.PathEscape(fmt.Sprint(params[name])))
	}

	out := "/" + strings.Join(path, "/")
	query := url.Values{}
	for k, v := range params {
		if !used[k] {
			query.Set(k, fmt.Sprint(v))
		}
	}
	if len(query) > 0 {
		out += "?" + query.Encode()
	}
	return out, nil
}

// fill counts the path parameters of rt, or names the first one params lacks.
func (rt route) fill(params map[string]any) (int, string) {
	n := 0
	for _, seg := range rt.segments {
		if !isParam(seg) {
			continue
		}
		name := paramName(seg)
		if _, ok := params[name]; !ok {
			return 0, name
		}
		n++
	}
	return n, ""
}

// URLFor is URL for a descriptor.
func (r *Router) URLFor(d view.Data) (string, error) {
	return r.URL(d.Type(), d.Params())
}

// NavigateTo resolves rawURL and loads the view.
func (r *Router) NavigateTo(ctx context.Context, rawURL string) error {
	d, err := r.Resolve(rawURL)
	if err != nil {
		return err
	}
	r.logger.Debug("route resolved", "url", rawURL, "view", d.Describe())
	if err := r.loader.LoadView(ctx, d); err != nil {
		return fmt.Errorf("route: navigate to %q: %w", rawURL, err)
	}
	return nil
}

// Patterns lists the registered patterns, sorted.
func (r *Router) Patterns() []string {
	out := make([]string, len(r.routes))
	for i, rt := range r.routes {
		out[i] = rt.pattern
	}
	sort.Strings(out)
	return out
}

func (rt route) match(parts []string) (map[string]any, bool) {
	if len(parts) != len(rt.segments) {
		return nil, false
	}
	params := make(map[string]any)
	for i, seg := range rt.segments {
		if !isParam(seg) {
			if seg != parts[i] {
				return nil, false
			}
			continue
		}
		value, err := url.PathUnescape(parts[i])
		if err != nil {
			return nil, false
		}
		name := paramName(seg)
		if name == view.ParamID {
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, false
			}
			params[name] = id
			continue
		}
		params[name] = value
	}
	return params, true
}

func split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func isParam(seg string) bool {
	return strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")
}

func paramName(seg string) string {
	return strings.TrimSpace(strings.Trim(seg, "{}"))
}

// Package target resolves the --app/--pid/--window/--attr flags shared by the
// CLI and the MCP server into a root element and a search predicate.
package target

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/model"
)

// Options selects a root element and what to look for beneath it.
type Options struct {
	App    string   // Application name, case-insensitive
	PID    int      // Process ID; wins over App
	Window string   // Window title substring; empty selects the application element
	Attrs  []string // "key=value" predicate pairs
	CName  string   // Combined name shorthand for c_name=...
}

// ErrNoTarget is returned when no application can be chosen.
var ErrNoTarget = errors.New("--app or --pid is required when no application is active")

// HasPredicate reports whether any predicate flag is set.
func (o Options) HasPredicate() bool {
	return len(o.Attrs) > 0 || o.CName != ""
}

// ParseAttrs converts "key=value" pairs into a predicate. Values stay
// textual; element matching compares them against typed attributes by their
// printed form.
func ParseAttrs(pairs []string) (element.Predicate, error) {
	pred := make(element.Predicate, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid attribute %q (use key=value)", pair)
		}
		pred[k] = v
	}
	return pred, nil
}

// Predicate builds the search predicate from Attrs and CName.
func (o Options) Predicate() (element.Predicate, error) {
	pred, err := ParseAttrs(o.Attrs)
	if err != nil {
		return nil, err
	}
	if o.CName != "" {
		pred[element.KeyCombinedName] = o.CName
	}
	return pred, nil
}

// ResolveApp picks the application described by o. PID wins; otherwise an
// exact (case-insensitive) name match beats a unique substring match; with
// neither set, the active application is used.
func ResolveApp(apps []model.Application, o Options) (model.Application, error) {
	if o.PID != 0 {
		for _, a := range apps {
			if a.PID == o.PID {
				return a, nil
			}
		}
		return model.Application{}, fmt.Errorf("no application with pid %d", o.PID)
	}
	if o.App == "" {
		for _, a := range apps {
			if a.Active {
				return a, nil
			}
		}
		return model.Application{}, ErrNoTarget
	}

	var partial []model.Application
	needle := strings.ToLower(o.App)
	for _, a := range apps {
		if strings.EqualFold(a.Name, o.App) {
			return a, nil
		}
		if strings.Contains(strings.ToLower(a.Name), needle) {
			partial = append(partial, a)
		}
	}
	switch len(partial) {
	case 0:
		return model.Application{}, fmt.Errorf("no application matching %q", o.App)
	case 1:
		return partial[0], nil
	default:
		names := make([]string, len(partial))
		for i, a := range partial {
			names[i] = fmt.Sprintf("%s (pid %d)", a.Name, a.PID)
		}
		return model.Application{}, fmt.Errorf("multiple applications match %q: %s; use --pid", o.App, strings.Join(names, ", "))
	}
}

// Root resolves the root element: the application element, or its first
// window whose name contains o.Window (case-insensitive).
func Root(b *element.Backend, o Options) (*element.Element, error) {
	apps, err := b.Apps.Applications()
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	app, err := ResolveApp(apps, o)
	if err != nil {
		return nil, err
	}
	root, err := element.ForApplication(b, app.PID)
	if err != nil {
		return nil, err
	}
	if o.Window == "" {
		return root, nil
	}
	windows, err := root.Windows()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(o.Window)
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Name()), needle) {
			return w, nil
		}
	}
	return nil, fmt.Errorf("no window matching %q in %s", o.Window, app.Name)
}

// Element resolves the root and finds the first element matching the
// predicate beneath it. Without a predicate the root itself is returned.
func Element(b *element.Backend, o Options) (*element.Element, error) {
	root, err := Root(b, o)
	if err != nil {
		return nil, err
	}
	if !o.HasPredicate() {
		return root, nil
	}
	pred, err := o.Predicate()
	if err != nil {
		return nil, err
	}
	return root.Find(pred)
}

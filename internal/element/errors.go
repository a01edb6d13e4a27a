package element

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is wrapped by every NotFoundError.
var ErrNotFound = errors.New("element not found")

// NotFoundError reports a search that matched nothing.
type NotFoundError struct {
	Attributes Predicate
}

func (e *NotFoundError) Error() string {
	return `can't find element with attributes "` + e.Attributes.String() + `"`
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// String renders the predicate as "k1=v1; k2=v2", sorted by key.
func (p Predicate) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, p[k])
	}
	return strings.Join(parts, "; ")
}

// Package registry provides read-only lookup over the loaded quality
// catalog. The registry is immutable after construction.
package registry

import (
	"log/slog"
	"regexp"

	"github.com/nholt/zeelore/types"
)

// Registry is the immutable quality catalog.
type Registry struct {
	byID    map[int]*types.Quality
	ordered []*types.Quality
	log     *slog.Logger
}

// New builds a registry from loaded qualities. Duplicate ids are reported
// to the logger as data-integrity warnings; the first entry wins.
func New(qualities []*types.Quality, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	r := &Registry{
		byID: make(map[int]*types.Quality, len(qualities)),
		log:  log,
	}
	for _, q := range qualities {
		if _, ok := r.byID[q.ID]; ok {
			log.Warn("duplicate quality id in catalog", "id", q.ID, "name", q.Name)
			continue
		}
		r.byID[q.ID] = q
		r.ordered = append(r.ordered, q)
	}
	return r
}

// Get returns the quality with the given id, or nil if not in the catalog.
func (r *Registry) Get(id int) *types.Quality {
	return r.byID[id]
}

// Find returns all qualities whose name matches the pattern,
// case-insensitively, in catalog order. An empty pattern returns every
// quality.
func (r *Registry) Find(pattern string) ([]*types.Quality, error) {
	if pattern == "" {
		out := make([]*types.Quality, len(r.ordered))
		copy(out, r.ordered)
		return out, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	var out []*types.Quality
	for _, q := range r.ordered {
		if re.MatchString(q.Name) {
			out = append(out, q)
		}
	}
	return out, nil
}

// Len returns the number of catalog entries.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// All returns the catalog entries in load order.
func (r *Registry) All() []*types.Quality {
	out := make([]*types.Quality, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// StatusAt looks up the descriptive text for a level in a status map:
// the entry with the greatest threshold not greater than level wins.
// Returns "" when the map is empty or every threshold exceeds level.
func StatusAt(m types.StatusMap, level int) string {
	text := ""
	for _, e := range m {
		if e.Threshold > level {
			break
		}
		text = e.Text
	}
	return text
}

// Dummy creates a placeholder quality for an id the catalog does not
// contain, so operator sets referencing it stay renderable.
func Dummy(id int, name string) *types.Quality {
	return &types.Quality{ID: id, Name: name}
}

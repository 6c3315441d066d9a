// Package refs resolves embedded [key:value] markers in free text and in
// operator values, substituting live quality data or dice-roll
// descriptions. The grammar allows one level of nesting inside a d: value.
package refs

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/nholt/zeelore/engine/registry"
	"github.com/nholt/zeelore/engine/savestate"
)

// markerRE matches one top-level [key:value] marker. The value may contain
// a single bracketed sub-marker, which is how dice expressions embed
// quality references.
var markerRE = regexp.MustCompile(`\[([a-z]+):((?:[^\[\]]+|\[[^\[\]]+\])+)\]`)

// Templates are the caller-supplied substitution formats. Quality is
// expanded with {name}, {id}, {value} and {cap} placeholders; the others
// are fmt formats taking one string operand.
type Templates struct {
	Quality     string // numeric q:/qb: markers
	QualityName string // non-numeric q: markers, no registry lookup
	Dice        string // d: markers, wrapping the resolved inner expression
	NotFound    string // numeric q:/qb: markers missing from the catalog
}

// DefaultTemplates returns the standard display templates.
func DefaultTemplates() Templates {
	return Templates{
		Quality:     "[{name}]",
		QualityName: "[<%s>]",
		Dice:        "[1 to %s]",
		NotFound:    "[Quality(%s)]",
	}
}

// Resolver substitutes markers against the quality catalog and,
// optionally, a save snapshot for live values. It has no side effects
// beyond registry reads.
type Resolver struct {
	reg  *registry.Registry
	save *savestate.Save // optional; nil means all values read as 0
	log  *slog.Logger
}

// New creates a resolver. The save may be nil when no snapshot is loaded;
// {value} then expands to 0.
func New(reg *registry.Registry, save *savestate.Save, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Resolver{reg: reg, save: save, log: log}
}

// Resolve replaces every top-level marker in text using the given
// templates. Each substitution replaces the first occurrence of the exact
// matched substring; substitutions are not reparsed. Text without markers
// is returned unchanged.
func (r *Resolver) Resolve(text string, t Templates) string {
	result := text
	for _, m := range markerRE.FindAllStringSubmatch(text, -1) {
		matched, key, value := m[0], m[1], m[2]
		subst, ok := r.substitute(key, value, t)
		if !ok {
			continue
		}
		result = strings.Replace(result, matched, subst, 1)
	}
	return result
}

func (r *Resolver) substitute(key, value string, t Templates) (string, bool) {
	switch key {
	case "q":
		return r.qualityMarker(value, t, false), true
	case "qb":
		return r.qualityMarker(value, t, true), true
	case "d":
		// The dice expression may itself contain quality markers;
		// resolve them first, then wrap.
		return fmt.Sprintf(t.Dice, r.Resolve(value, t)), true
	default:
		r.log.Warn("unknown reference marker", "key", key, "value", value)
		return "", false
	}
}

// qualityMarker resolves a q:/qb: marker. A numeric value is a catalog
// lookup bound to the effective (or, for qb, base) save value; anything
// else is a literal name with no lookup.
func (r *Resolver) qualityMarker(value string, t Templates, base bool) string {
	id, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Sprintf(t.QualityName, value)
	}
	q := r.reg.Get(id)
	if q == nil {
		r.log.Warn("reference to unknown quality", "id", id)
		return fmt.Sprintf(t.NotFound, value)
	}
	v, mod := 0, 0
	if r.save != nil {
		v, mod = r.save.Peek(id)
	}
	if !base {
		v += mod
	}
	return strings.NewReplacer(
		"{name}", q.Name,
		"{id}", strconv.Itoa(q.ID),
		"{value}", strconv.Itoa(v),
		"{cap}", strconv.Itoa(q.Cap),
	).Replace(t.Quality)
}

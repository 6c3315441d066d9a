// Package savestate holds the mutable per-quality player state that
// effects write and requirements read. Entries materialize lazily at
// level 0 on first access.
package savestate

import (
	"log/slog"
	"regexp"

	"github.com/nholt/zeelore/engine/registry"
	"github.com/nholt/zeelore/types"
)

// Save is the mutable state of one player snapshot: quality id →
// SaveQuality. A Save is owned by a single caller for the duration of a
// resolution pass; it performs no locking.
type Save struct {
	reg       *registry.Registry
	qualities map[int]*SaveQuality
	order     []int // materialization order, kept stable for write-out
	log       *slog.Logger
}

// SaveQuality is the mutable counterpart of a catalog quality: current
// level, a display-only modifier, and the pyramid-progress XP counter.
type SaveQuality struct {
	quality  *types.Quality
	value    int
	modifier int
	xp       int
}

// New creates an empty save bound to the quality catalog.
func New(reg *registry.Registry, log *slog.Logger) *Save {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Save{
		reg:       reg,
		qualities: map[int]*SaveQuality{},
		log:       log,
	}
}

// Quality returns the save entry for a quality id, materializing a new
// entry at level 0 if none exists. An id missing from the catalog gets a
// placeholder quality and a warning.
func (s *Save) Quality(id int) *SaveQuality {
	return s.Materialize(id, "")
}

// Materialize is Quality with a fallback name for ids missing from the
// catalog, so entries loaded from modded saves keep their display name.
func (s *Save) Materialize(id int, name string) *SaveQuality {
	if sq, ok := s.qualities[id]; ok {
		return sq
	}
	q := s.reg.Get(id)
	if q == nil {
		s.log.Warn("save references quality not in catalog", "id", id, "name", name)
		q = registry.Dummy(id, name)
	}
	sq := &SaveQuality{quality: q}
	s.qualities[id] = sq
	s.order = append(s.order, id)
	return sq
}

// Peek reads the current value and modifier of a quality without
// materializing an entry.
func (s *Save) Peek(id int) (value, modifier int) {
	if sq, ok := s.qualities[id]; ok {
		return sq.value, sq.modifier
	}
	return 0, 0
}

// Has reports whether an entry exists for the quality id.
func (s *Save) Has(id int) bool {
	_, ok := s.qualities[id]
	return ok
}

// All returns the save entries in materialization order.
func (s *Save) All() []*SaveQuality {
	out := make([]*SaveQuality, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.qualities[id])
	}
	return out
}

// Len returns the number of materialized entries.
func (s *Save) Len() int {
	return len(s.order)
}

// Find returns save entries whose quality name matches the pattern,
// case-insensitively, in materialization order.
func (s *Save) Find(pattern string) ([]*SaveQuality, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, err
	}
	var out []*SaveQuality
	for _, id := range s.order {
		sq := s.qualities[id]
		if re.MatchString(sq.quality.Name) {
			out = append(out, sq)
		}
	}
	return out, nil
}

// Quality returns the catalog entry this save entry belongs to.
func (sq *SaveQuality) Quality() *types.Quality {
	return sq.quality
}

// Value returns the current level.
func (sq *SaveQuality) Value() int {
	return sq.value
}

// SetValue writes the current level, clamped to [0, cap] (cap 0 =
// unbounded above). A negative value is silently discarded: persistent
// trackers must never go below zero from an ordinary decrement.
func (sq *SaveQuality) SetValue(v int) {
	if v < 0 {
		return
	}
	if cap := sq.quality.Cap; cap > 0 && v > cap {
		v = cap
	}
	sq.value = v
}

// Restore loads stored fields verbatim, bypassing the mutation clamp.
// Only save-file loading uses it: a stored out-of-range level must
// survive a load-save round trip untouched, so clamping is left to
// actual mutations.
func (sq *SaveQuality) Restore(value, modifier, xp int) {
	sq.value = value
	sq.modifier = modifier
	sq.xp = xp
}

// Modifier returns the additive display-only bonus. Effects never touch it.
func (sq *SaveQuality) Modifier() int {
	return sq.modifier
}

// SetModifier writes the display modifier (save-editor surface only).
func (sq *SaveQuality) SetModifier(m int) {
	sq.modifier = m
}

// XP returns the pyramid-progress counter.
func (sq *SaveQuality) XP() int {
	return sq.xp
}

// SetXP writes the pyramid-progress counter (save-editor surface only).
func (sq *SaveQuality) SetXP(xp int) {
	sq.xp = xp
}

// Effective returns the displayed level: value plus modifier.
func (sq *SaveQuality) Effective() int {
	return sq.value + sq.modifier
}

// pyramidLimit is the XP needed beyond the current level before the next
// level-up: the current value, lowered by the per-quality override when
// one is configured.
func (sq *SaveQuality) pyramidLimit() int {
	limit := sq.value
	if o := sq.quality.PyramidLimit; o > 0 && o < limit {
		limit = o
	}
	return limit
}

// IncreaseBy changes the level by a signed amount. Qualities using
// pyramid numbers accumulate XP point by point: each level-up needs more
// XP than the last, because the threshold tracks the current value.
func (sq *SaveQuality) IncreaseBy(n int) {
	if !sq.quality.UsePyramidNumbers || n < 0 {
		sq.SetValue(sq.value + n)
		return
	}
	for i := 0; i < n; i++ {
		sq.xp++
		if sq.xp > sq.pyramidLimit() {
			sq.SetValue(sq.value + 1)
			sq.xp = 0
		}
	}
}

// Status returns the journal description for the current level, if the
// quality defines one.
func (sq *SaveQuality) Status() string {
	return registry.StatusAt(sq.quality.LevelStatus, sq.value)
}

// ChangeStatus returns the change description for the current level, if
// the quality defines one.
func (sq *SaveQuality) ChangeStatus() string {
	return registry.StatusAt(sq.quality.ChangeStatus, sq.value)
}

// Package loader reads a game export directory (qualities.json,
// areas.json, events.json), compiles the raw operator maps into token
// streams, and returns the immutable catalog the engine runs against.
package loader

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/nholt/zeelore/engine/registry"
	"github.com/nholt/zeelore/engine/rules"
	"github.com/nholt/zeelore/types"
)

// Options controls loading. Integrity enables the referential report;
// loading itself never fails on data defects, only on unreadable input.
type Options struct {
	Integrity bool
	Log       *slog.Logger
}

// Defs is the compiled, immutable ruleset.
type Defs struct {
	Qualities *registry.Registry
	Locations map[int]*types.Location
	Events    map[int]*types.Event
}

// rawRef is the {"Id": n} sub-object the export uses for references.
type rawRef struct {
	ID int `json:"Id"`
}

type rawQuality struct {
	ID                         int     `json:"Id"`
	Name                       string  `json:"Name"`
	Description                string  `json:"Description"`
	Category                   int     `json:"Category"`
	Nature                     int     `json:"Nature"`
	Tag                        string  `json:"Tag"`
	Cap                        int     `json:"Cap"`
	Persistent                 bool    `json:"Persistent"`
	DifficultyScaler           int     `json:"DifficultyScaler"`
	UsePyramidNumbers          bool    `json:"UsePyramidNumbers"`
	PyramidNumberIncreaseLimit int     `json:"PyramidNumberIncreaseLimit"`
	AssignToSlot               *rawRef `json:"AssignToSlot"`
	LevelDescriptionText       string  `json:"LevelDescriptionText"`
	ChangeDescriptionText      string  `json:"ChangeDescriptionText"`
}

type rawArea struct {
	ID          int    `json:"Id"`
	Name        string `json:"Name"`
	Description string `json:"Description"`
	MoveMessage string `json:"MoveMessage"`
}

type rawOutcome struct {
	ID                int              `json:"Id"`
	Name              string           `json:"Name"`
	Description       string           `json:"Description"`
	QualitiesAffected []map[string]any `json:"QualitiesAffected"`
	LinkToEvent       *rawRef          `json:"LinkToEvent"`
	MoveToArea        *rawRef          `json:"MoveToArea"`
	ExoticEffects     string           `json:"ExoticEffects"`
}

type rawBranch struct {
	ID                     int              `json:"Id"`
	Name                   string           `json:"Name"`
	Description            string           `json:"Description"`
	QualitiesRequired      []map[string]any `json:"QualitiesRequired"`
	DefaultEvent           *rawOutcome      `json:"DefaultEvent"`
	RareDefaultEvent       *rawOutcome      `json:"RareDefaultEvent"`
	SuccessEvent           *rawOutcome      `json:"SuccessEvent"`
	RareSuccessEvent       *rawOutcome      `json:"RareSuccessEvent"`
	RareDefaultEventChance int              `json:"RareDefaultEventChance"`
	RareSuccessEventChance int              `json:"RareSuccessEventChance"`
}

type rawEvent struct {
	ID                int              `json:"Id"`
	Name              string           `json:"Name"`
	Description       string           `json:"Description"`
	Category          int              `json:"Category"`
	Autofire          bool             `json:"Autofire"`
	LimitedToArea     *rawRef          `json:"LimitedToArea"`
	QualitiesRequired []map[string]any `json:"QualitiesRequired"`
	QualitiesAffected []map[string]any `json:"QualitiesAffected"`
	ChildBranches     []rawBranch      `json:"ChildBranches"`
}

// Load reads the export files from dir and compiles them. Data defects
// are logged and, with opts.Integrity set, collected into the Report;
// they never abort the load.
func Load(dir string, opts Options) (*Defs, *Report, error) {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	var rawQualities []rawQuality
	if err := readJSON(filepath.Join(dir, "qualities.json"), &rawQualities); err != nil {
		return nil, nil, err
	}
	var rawAreas []rawArea
	if err := readJSON(filepath.Join(dir, "areas.json"), &rawAreas); err != nil {
		return nil, nil, err
	}
	var rawEvents []rawEvent
	if err := readJSON(filepath.Join(dir, "events.json"), &rawEvents); err != nil {
		return nil, nil, err
	}

	qualities := make([]*types.Quality, 0, len(rawQualities))
	for _, rq := range rawQualities {
		qualities = append(qualities, compileQuality(rq))
	}
	reg := registry.New(qualities, log)

	c := &compiler{reg: reg, log: log}

	defs := &Defs{
		Qualities: reg,
		Locations: make(map[int]*types.Location, len(rawAreas)),
		Events:    make(map[int]*types.Event, len(rawEvents)),
	}
	for _, ra := range rawAreas {
		defs.Locations[ra.ID] = &types.Location{
			ID:          ra.ID,
			Name:        ra.Name,
			Description: ra.Description,
			MoveMessage: ra.MoveMessage,
		}
	}
	for _, re := range rawEvents {
		ev := c.compileEvent(re)
		if _, dup := defs.Events[ev.ID]; dup {
			log.Warn("duplicate event id, keeping first", "id", ev.ID)
			continue
		}
		defs.Events[ev.ID] = ev
	}

	rep := &Report{}
	if opts.Integrity {
		rep = validate(defs)
		for _, w := range rep.Warnings {
			log.Warn(w)
		}
		for _, e := range rep.Errors {
			log.Error(e)
		}
	}
	return defs, rep, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func compileQuality(rq rawQuality) *types.Quality {
	q := &types.Quality{
		ID:                rq.ID,
		Name:              rq.Name,
		Description:       rq.Description,
		Cap:               rq.Cap,
		Category:          rq.Category,
		Nature:            rq.Nature,
		Tag:               rq.Tag,
		Persistent:        rq.Persistent,
		DifficultyScaler:  rq.DifficultyScaler,
		IsLuck:            rq.Category == types.CategoryLuck,
		UsePyramidNumbers: rq.UsePyramidNumbers,
		PyramidLimit:      rq.PyramidNumberIncreaseLimit,
		LevelStatus:       parseStatusMap(rq.LevelDescriptionText),
		ChangeStatus:      parseStatusMap(rq.ChangeDescriptionText),
	}
	if rq.AssignToSlot != nil {
		q.AssignToSlot = rq.AssignToSlot.ID
	}
	return q
}

// parseStatusMap parses the export's "threshold|text~threshold|text"
// encoding into an ascending status map. Malformed segments are dropped.
func parseStatusMap(s string) types.StatusMap {
	if s == "" {
		return nil
	}
	var out types.StatusMap
	for _, seg := range strings.Split(s, "~") {
		threshold, text, ok := strings.Cut(seg, "|")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(threshold))
		if err != nil {
			continue
		}
		out = append(out, types.StatusEntry{Threshold: n, Text: text})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Threshold < out[j].Threshold
	})
	return out
}

// compiler resolves quality references and tokenizes operator maps while
// events are built.
type compiler struct {
	reg *registry.Registry
	log *slog.Logger
}

// ops extracts the operator map from a raw requirement or effect object,
// stripping the structural keys and null values.
func ops(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == "AssociatedQuality" || k == "Id" || v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

func (c *compiler) quality(raw map[string]any) *types.Quality {
	id := 0
	if ref, ok := raw["AssociatedQuality"].(map[string]any); ok {
		if n, ok := ref["Id"].(float64); ok {
			id = int(n)
		}
	}
	if q := c.reg.Get(id); q != nil {
		return q
	}
	c.log.Warn("reference to quality not in catalog", "id", id)
	return registry.Dummy(id, "")
}

func rowID(raw map[string]any) int {
	if n, ok := raw["Id"].(float64); ok {
		return int(n)
	}
	return 0
}

func (c *compiler) compileRequirements(raws []map[string]any) []types.Requirement {
	out := make([]types.Requirement, 0, len(raws))
	for _, raw := range raws {
		req := types.Requirement{
			ID:      rowID(raw),
			Quality: c.quality(raw),
			Ops:     ops(raw),
		}
		req.Tokens = rules.TokenizeRequirement(req, c.log)
		out = append(out, req)
	}
	return out
}

func (c *compiler) compileEffects(raws []map[string]any) []types.Effect {
	out := make([]types.Effect, 0, len(raws))
	for _, raw := range raws {
		eff := types.Effect{
			ID:      rowID(raw),
			Quality: c.quality(raw),
			Ops:     ops(raw),
		}
		eff.Tokens = rules.TokenizeEffect(eff, c.log)
		out = append(out, eff)
	}
	return out
}

func (c *compiler) compileOutcome(kind types.OutcomeKind, ro *rawOutcome, chance int) *types.Outcome {
	if ro == nil {
		return nil
	}
	out := &types.Outcome{
		Kind:        kind,
		Name:        ro.Name,
		Description: ro.Description,
		Chance:      chance,
		Effects:     c.compileEffects(ro.QualitiesAffected),
		Exotic:      ro.ExoticEffects,
	}
	if ro.LinkToEvent != nil {
		out.Trigger = ro.LinkToEvent.ID
	}
	if ro.MoveToArea != nil {
		out.MoveToArea = ro.MoveToArea.ID
	}
	return out
}

func (c *compiler) compileAction(rb rawBranch) types.Action {
	act := types.Action{
		ID:           rb.ID,
		Name:         rb.Name,
		Description:  rb.Description,
		Requirements: c.compileRequirements(rb.QualitiesRequired),
	}
	act.Outcomes[types.OutcomeDefault] = c.compileOutcome(types.OutcomeDefault, rb.DefaultEvent, 0)
	act.Outcomes[types.OutcomeRareDefault] = c.compileOutcome(types.OutcomeRareDefault, rb.RareDefaultEvent, rb.RareDefaultEventChance)
	act.Outcomes[types.OutcomeSuccess] = c.compileOutcome(types.OutcomeSuccess, rb.SuccessEvent, 0)
	act.Outcomes[types.OutcomeRareSuccess] = c.compileOutcome(types.OutcomeRareSuccess, rb.RareSuccessEvent, rb.RareSuccessEventChance)
	return act
}

func (c *compiler) compileEvent(re rawEvent) *types.Event {
	ev := &types.Event{
		ID:           re.ID,
		Name:         re.Name,
		Description:  re.Description,
		Category:     re.Category,
		Autofire:     re.Autofire,
		Requirements: c.compileRequirements(re.QualitiesRequired),
		Effects:      c.compileEffects(re.QualitiesAffected),
	}
	if re.LimitedToArea != nil {
		ev.LocationID = re.LimitedToArea.ID
	}
	ev.Actions = make([]types.Action, 0, len(re.ChildBranches))
	for _, rb := range re.ChildBranches {
		ev.Actions = append(ev.Actions, c.compileAction(rb))
	}
	return ev
}

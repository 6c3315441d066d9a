package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nholt/zeelore/types"
)

const qualitiesJSON = `[
  {"Id": 102898, "Name": "Iron", "Cap": 200, "DifficultyScaler": 60},
  {"Id": 102899, "Name": "Luck", "Category": 2000, "DifficultyScaler": 10},
  {"Id": 500, "Name": "Favours", "UsePyramidNumbers": true, "PyramidNumberIncreaseLimit": 5,
   "AssignToSlot": {"Id": 900},
   "LevelDescriptionText": "0|A stranger.~5|A friend.~10|An ally."}
]`

const areasJSON = `[
  {"Id": 100, "Name": "Fallen London", "Description": "Home port."}
]`

const eventsJSON = `[
  {
    "Id": 7000, "Name": "A Dockside Bargain", "Description": "Crates, unlabelled.",
    "LimitedToArea": {"Id": 100},
    "ChildBranches": [
      {
        "Id": 7001, "Name": "Haggle",
        "QualitiesRequired": [
          {"Id": 1, "AssociatedQuality": {"Id": 102898}, "MinLevel": 50}
        ],
        "DefaultEvent": {
          "Id": 7002, "Name": "A fair price",
          "QualitiesAffected": [
            {"Id": 2, "AssociatedQuality": {"Id": 500}, "Level": 1}
          ]
        },
        "RareDefaultEvent": {
          "Id": 7003, "Name": "A suspicious discount",
          "QualitiesAffected": []
        },
        "RareDefaultEventChance": 20
      }
    ]
  }
]`

func writeFixture(t *testing.T, qualities, areas, events string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"qualities.json": qualities,
		"areas.json":     areas,
		"events.json":    events,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}
	return dir
}

func TestLoad_Qualities(t *testing.T) {
	dir := writeFixture(t, qualitiesJSON, areasJSON, eventsJSON)
	defs, _, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.Qualities.Len() != 3 {
		t.Fatalf("expected 3 qualities, got %d", defs.Qualities.Len())
	}
	iron := defs.Qualities.Get(102898)
	if iron.Name != "Iron" || iron.Cap != 200 || iron.DifficultyScaler != 60 {
		t.Errorf("unexpected Iron: %+v", iron)
	}
	if !defs.Qualities.Get(102899).IsLuck {
		t.Error("category 2000 should mark the quality as luck")
	}
	fav := defs.Qualities.Get(500)
	if !fav.UsePyramidNumbers || fav.PyramidLimit != 5 || fav.AssignToSlot != 900 {
		t.Errorf("unexpected Favours: %+v", fav)
	}
}

func TestLoad_StatusMap(t *testing.T) {
	dir := writeFixture(t, qualitiesJSON, areasJSON, eventsJSON)
	defs, _, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	sm := defs.Qualities.Get(500).LevelStatus
	if len(sm) != 3 {
		t.Fatalf("expected 3 status entries, got %d", len(sm))
	}
	if sm[1].Threshold != 5 || sm[1].Text != "A friend." {
		t.Errorf("unexpected middle entry: %+v", sm[1])
	}
}

func TestLoad_EventCompilation(t *testing.T) {
	dir := writeFixture(t, qualitiesJSON, areasJSON, eventsJSON)
	defs, _, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	ev := defs.Events[7000]
	if ev == nil {
		t.Fatal("event 7000 missing")
	}
	if ev.LocationID != 100 {
		t.Errorf("expected area 100, got %d", ev.LocationID)
	}
	if len(ev.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(ev.Actions))
	}
	act := ev.Actions[0]

	if len(act.Requirements) != 1 {
		t.Fatalf("expected 1 requirement, got %d", len(act.Requirements))
	}
	req := act.Requirements[0]
	if req.Quality.ID != 102898 {
		t.Errorf("requirement bound to wrong quality %d", req.Quality.ID)
	}
	if len(req.Tokens) != 1 || req.Tokens[0].Kind != types.TokenMin || req.Tokens[0].Value != 50 {
		t.Errorf("requirement should compile to MIN 50, got %+v", req.Tokens)
	}

	def := act.Outcomes[types.OutcomeDefault]
	if def == nil || len(def.Effects) != 1 {
		t.Fatal("default outcome with 1 effect expected")
	}
	if def.Effects[0].Tokens[0].Kind != types.TokenAdd {
		t.Errorf("effect should compile to ADD, got %+v", def.Effects[0].Tokens)
	}

	rare := act.Outcomes[types.OutcomeRareDefault]
	if rare == nil || rare.Chance != 20 {
		t.Errorf("rare default with chance 20 expected, got %+v", rare)
	}
	if act.Outcomes[types.OutcomeSuccess] != nil {
		t.Error("no success branch was defined")
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := Load(dir, Options{}); err == nil {
		t.Fatal("expected an error for a directory without export files")
	}
}

func TestLoad_MalformedJSONFails(t *testing.T) {
	dir := writeFixture(t, "{not json", areasJSON, eventsJSON)
	if _, _, err := Load(dir, Options{}); err == nil {
		t.Fatal("expected a parse error")
	}
}

// Package save implements JSON serialization and deserialization of the
// on-disk save format: a flat list of possessed qualities.
package save

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nholt/zeelore/engine/savestate"
)

// Entry is one possessed quality as stored on disk.
type Entry struct {
	ID       int    `json:"Id"`
	Name     string `json:"Name"`
	Level    int    `json:"Level"`
	Modifier int    `json:"EffectiveLevelModifier"`
	XP       int    `json:"XP"`
}

// SaveData is the JSON-serializable save format.
type SaveData struct {
	QualitiesPossessedList []Entry `json:"QualitiesPossessedList"`
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.QualitiesPossessedList == nil {
		sd.QualitiesPossessedList = []Entry{}
	}
	return &sd, nil
}

// Apply materializes loaded entries onto a save, in file order. File
// order becomes the save's write-out order, so a load-save round trip
// preserves entries the session never touched.
func Apply(sd *SaveData, sv *savestate.Save) {
	for _, e := range sd.QualitiesPossessedList {
		sv.Materialize(e.ID, e.Name).Restore(e.Level, e.Modifier, e.XP)
	}
}

// Snapshot collects the save's entries, in materialization order, into
// the serializable form.
func Snapshot(sv *savestate.Save) *SaveData {
	entries := make([]Entry, 0, sv.Len())
	for _, sq := range sv.All() {
		entries = append(entries, Entry{
			ID:       sq.Quality().ID,
			Name:     sq.Quality().Name,
			Level:    sq.Value(),
			Modifier: sq.Modifier(),
			XP:       sq.XP(),
		})
	}
	return &SaveData{QualitiesPossessedList: entries}
}

// Write serializes a save to JSON bytes.
func Write(sv *savestate.Save) ([]byte, error) {
	return json.MarshalIndent(Snapshot(sv), "", "  ")
}

// LoadFile reads a save file and applies it onto sv.
func LoadFile(path string, sv *savestate.Save) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading save: %w", err)
	}
	sd, err := Load(data)
	if err != nil {
		return fmt.Errorf("parsing save %s: %w", path, err)
	}
	Apply(sd, sv)
	return nil
}

// WriteFile serializes sv and writes it to path.
func WriteFile(path string, sv *savestate.Save) error {
	data, err := Write(sv)
	if err != nil {
		return fmt.Errorf("serializing save: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	return nil
}

package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/asteroid-belt/trickplanner/internal/models"
)

// snapshotKeys are the top-level members every snapshot document carries.
var snapshotKeys = []string{"categories", "tricks", "templates", "challenges", "trainingPlans"}

var indentOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: true,
}

// EncodeSnapshot renders snap as compact JSON with object keys sorted.
func EncodeSnapshot(snap models.Snapshot) ([]byte, error) {
	snap.Normalize()
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return pretty.Ugly(pretty.PrettyOptions(data, indentOptions)), nil
}

// EncodeSnapshotIndent renders snap as indented JSON with object keys
// sorted, the backup file format.
func EncodeSnapshotIndent(snap models.Snapshot) ([]byte, error) {
	snap.Normalize()
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return pretty.PrettyOptions(data, indentOptions), nil
}

// DecodeSnapshot parses a snapshot document. Every error is a
// *DecodeError.
func DecodeSnapshot(data []byte) (models.Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return models.Snapshot{}, &DecodeError{Err: errors.New("invalid JSON")}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return models.Snapshot{}, &DecodeError{Err: errors.New("document is not an object")}
	}

	var missing []string
	for i, member := range gjson.GetManyBytes(data, snapshotKeys...) {
		if !member.Exists() {
			missing = append(missing, snapshotKeys[i])
		}
	}
	if len(missing) > 0 {
		return models.Snapshot{}, &DecodeError{Err: fmt.Errorf("missing %s", strings.Join(missing, ", "))}
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, &DecodeError{Err: err}
	}
	snap.Normalize()
	return snap, nil
}

// Export renders the current snapshot as a backup document.
func (s *Store) Export() ([]byte, error) {
	return EncodeSnapshotIndent(s.Snapshot())
}

// Import replaces the whole state with a backup document and schedules a
// push. Nothing changes when the document does not decode.
func (s *Store) Import(data []byte) (models.Snapshot, error) {
	snap, err := DecodeSnapshot(data)
	if err != nil {
		return models.Snapshot{}, err
	}
	s.ApplySnapshot(snap, ApplyLocally)
	return s.Snapshot(), nil
}

// Package output provides JSON serialization for snapshots and display views.
package output

import (
	"encoding/json"

	"github.com/ukaji3/cellgrid-go/pkg/cellgrid/models"
)

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// SnapshotToJSON serializes a snapshot. A nil style map is written as an
// empty object so readers always see both fields.
func SnapshotToJSON(snap models.Snapshot, pretty bool) ([]byte, error) {
	if snap.Styles == nil {
		snap.Styles = map[models.CellKey]models.Style{}
	}
	if snap.Grid == nil {
		snap.Grid = [][]string{}
	}
	return ToJSON(snap, pretty)
}

// DisplayViewToJSON serializes an evaluated view.
func DisplayViewToJSON(view *models.DisplayView, pretty bool) ([]byte, error) {
	return ToJSON(view, pretty)
}

package models

import deepcopy "github.com/tiendc/go-deepcopy"

// Snapshot is the serialized form of a sheet: raw cell contents plus the
// style map.
type Snapshot struct {
	// Grid holds raw cell contents, row-major.
	Grid [][]string `json:"grid"`
	// Styles maps "row-col" keys to style overrides.
	Styles map[CellKey]Style `json:"styles"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() (Snapshot, error) {
	var out Snapshot
	if err := deepcopy.Copy(&out, &s); err != nil {
		return Snapshot{}, err
	}
	if out.Styles == nil {
		out.Styles = map[CellKey]Style{}
	}
	return out, nil
}

package status

import "sort"

// TableRow is one entry of a state table, exported for the protocol
// reference document.
type TableRow struct {
	// Symbols is the payload symbol pattern the row matches.
	Symbols []int
	// Tag is the state tag assigned to the pattern.
	Tag string
	// Description is the human-readable meaning, when one exists.
	Description string
}

// DoorStateRows returns the door-state table in ascending symbol order.
func DoorStateRows() []TableRow {
	rows := make([]TableRow, 0, len(doorStates))
	for key, tag := range doorStates {
		rows = append(rows, TableRow{
			Symbols:     []int{key[0], key[1]},
			Tag:         tag,
			Description: doorDescriptions[tag],
		})
	}

	sortRows(rows)

	return rows
}

// SubStateRows returns the sub-state table in ascending symbol order.
func SubStateRows() []TableRow {
	rows := make([]TableRow, 0, len(subStates))
	for key, tag := range subStates {
		rows = append(rows, TableRow{
			Symbols: []int{key[0], key[1], key[2]},
			Tag:     tag,
		})
	}

	sortRows(rows)

	return rows
}

// LightPatternRows returns the work-light pattern table in ascending
// symbol order.
func LightPatternRows() []TableRow {
	rows := make([]TableRow, 0, len(lightPatterns))
	for key, tag := range lightPatterns {
		rows = append(rows, TableRow{
			Symbols: []int{key[0], key[1], key[2], key[3]},
			Tag:     tag,
		})
	}

	sortRows(rows)

	return rows
}

// sortRows orders rows lexicographically by their symbol patterns so the
// rendered tables are deterministic.
func sortRows(rows []TableRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].Symbols, rows[j].Symbols
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}

		return false
	})
}

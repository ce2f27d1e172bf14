package models

import "sort"

// Zone is a named cluster zone keyed by row number.
type Zone struct {
	ZoneName string
	Rows     map[int]*Row
}

func NewZone(zoneName string) *Zone {
	return &Zone{
		ZoneName: zoneName,
		Rows:     make(map[int]*Row),
	}
}

// Row returns the row with the given number, creating it on first reference.
func (z *Zone) Row(rowNumber int) *Row {
	row, ok := z.Rows[rowNumber]
	if !ok {
		row = NewRow(rowNumber)
		z.Rows[rowNumber] = row
	}
	return row
}

// SortedRows returns the zone's rows ordered by row number.
func (z *Zone) SortedRows() []*Row {
	rows := make([]*Row, 0, len(z.Rows))
	for _, r := range z.Rows {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].RowNumber < rows[j].RowNumber })
	return rows
}

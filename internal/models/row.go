package models

import "sort"

// Row is a numbered row of computers keyed by position.
type Row struct {
	RowNumber int
	Computers map[int]*Computer
}

func NewRow(rowNumber int) *Row {
	return &Row{
		RowNumber: rowNumber,
		Computers: make(map[int]*Computer),
	}
}

// Computer returns the computer at the given position, creating it on first
// reference with the given host name.
func (r *Row) Computer(position int, name string) *Computer {
	computer, ok := r.Computers[position]
	if !ok {
		computer = NewComputer(position, name)
		r.Computers[position] = computer
	}
	return computer
}

// SortedComputers returns the row's computers ordered by position.
func (r *Row) SortedComputers() []*Computer {
	computers := make([]*Computer, 0, len(r.Computers))
	for _, c := range r.Computers {
		computers = append(computers, c)
	}
	sort.Slice(computers, func(i, j int) bool { return computers[i].Position < computers[j].Position })
	return computers
}

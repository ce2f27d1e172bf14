package aggregators

import (
	"fmt"
	"strconv"
	"strings"
)

// HostAddress is the decoded position of a host string like "z1r12p1":
// zone "z1", row 12, position 1.
type HostAddress struct {
	Zone     string
	Row      int
	Position int
}

// ParseHost decodes a host string of the shape <zone>r<row>p<position>.
func ParseHost(host string) (HostAddress, error) {
	zone, rest, ok := strings.Cut(host, "r")
	if !ok {
		return HostAddress{}, fmt.Errorf("unexpected host format (missing 'r'): %q", host)
	}
	rowPart, positionPart, ok := strings.Cut(rest, "p")
	if !ok {
		return HostAddress{}, fmt.Errorf("unexpected host format (missing 'p'): %q", host)
	}
	row, err := strconv.Atoi(rowPart)
	if err != nil {
		return HostAddress{}, fmt.Errorf("unexpected host format (bad row %q): %q", rowPart, host)
	}
	position, err := strconv.Atoi(positionPart)
	if err != nil {
		return HostAddress{}, fmt.Errorf("unexpected host format (bad position %q): %q", positionPart, host)
	}
	return HostAddress{Zone: zone, Row: row, Position: position}, nil
}

// HostName rebuilds the host string the address was parsed from.
func (a HostAddress) HostName() string {
	return a.Zone + "r" + strconv.Itoa(a.Row) + "p" + strconv.Itoa(a.Position)
}

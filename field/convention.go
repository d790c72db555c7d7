package field

import (
	"fmt"
	"sort"
)

// Role is a logical dataset dimension.
type Role int

const (
	Longitude Role = iota
	Latitude
	Level
	Time
)

func (r Role) String() string {
	switch r {
	case Longitude:
		return "longitude"
	case Latitude:
		return "latitude"
	case Level:
		return "level"
	case Time:
		return "time"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Convention maps logical roles to the column or dimension names a particular
// dataset family uses. A role may accept several aliases; the first one found
// in a dataset wins.
type Convention struct {
	Name  string
	Names map[Role][]string
}

// Built-in conventions.
var (
	// CF follows the common climate/forecast naming used by most ocean products.
	CF = Convention{
		Name: "cf",
		Names: map[Role][]string{
			Longitude: {"lon"},
			Latitude:  {"lat"},
			Level:     {"lev1", "lev"},
			Time:      {"time"},
		},
	}

	// SouthSea is the projected-grid naming of the regional South China Sea model.
	SouthSea = Convention{
		Name: "south_sea",
		Names: map[Role][]string{
			Longitude: {"x"},
			Latitude:  {"y"},
			Level:     {"z"},
			Time:      {"t"},
		},
	}
)

var conventions = map[string]Convention{
	CF.Name:       CF,
	SouthSea.Name: SouthSea,
}

// LookupConvention returns the built-in convention with the given name.
// An empty name selects CF.
func LookupConvention(name string) (Convention, error) {
	if name == "" {
		return CF, nil
	}
	c, ok := conventions[name]
	if !ok {
		known := make([]string, 0, len(conventions))
		for k := range conventions {
			known = append(known, k)
		}
		sort.Strings(known)
		return Convention{}, fmt.Errorf("unknown dimension convention %q (known: %v)", name, known)
	}
	return c, nil
}

// Resolve returns the first alias of role present in columns.
func (c Convention) Resolve(role Role, columns map[string]bool) (string, bool) {
	for _, name := range c.Names[role] {
		if columns[name] {
			return name, true
		}
	}
	return "", false
}

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrInvalidTable = errors.New("invalid virtual group table")

// VirtualGroup is a legacy category bucket that exists only in
// configuration. Aliases are category names, compared after Normalize.
type VirtualGroup struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Aliases     []string `json:"aliases"`
}

// Rule routes a slug to Group when the normalized slug contains any of
// Keywords. Rules are evaluated in table order.
type Rule struct {
	Group    string   `json:"group"`
	Keywords []string `json:"keywords"`
}

func (r Rule) Matches(slug string) bool {
	for _, k := range r.Keywords {
		if k != "" && strings.Contains(slug, Normalize(k)) {
			return true
		}
	}
	return false
}

type GroupTable struct {
	Version int            `json:"version"`
	Groups  []VirtualGroup `json:"groups"`
	Rules   []Rule         `json:"rules"`
}

func (t *GroupTable) Group(key string) *VirtualGroup {
	for i := range t.Groups {
		if t.Groups[i].Key == key {
			return &t.Groups[i]
		}
	}
	return nil
}

func (t *GroupTable) Validate() error {
	seen := make(map[string]struct{}, len(t.Groups))
	for _, g := range t.Groups {
		if g.Key == "" {
			return fmt.Errorf("%w: group with empty key", ErrInvalidTable)
		}
		if g.Key != Normalize(g.Key) {
			return fmt.Errorf("%w: group key %q is not normalized", ErrInvalidTable, g.Key)
		}
		if _, dup := seen[g.Key]; dup {
			return fmt.Errorf("%w: duplicate group key %q", ErrInvalidTable, g.Key)
		}
		seen[g.Key] = struct{}{}
	}
	for i, r := range t.Rules {
		if _, ok := seen[r.Group]; !ok {
			return fmt.Errorf("%w: rule %d points at unknown group %q", ErrInvalidTable, i, r.Group)
		}
		if len(r.Keywords) == 0 {
			return fmt.Errorf("%w: rule %d has no keywords", ErrInvalidTable, i)
		}
	}
	return nil
}

// LoadTable reads a JSON group table. An empty path yields DefaultTable.
func LoadTable(path string) (*GroupTable, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read group table: %w", err)
	}
	var t GroupTable
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// DefaultTable returns the three legacy buckets and their keyword rules.
func DefaultTable() *GroupTable {
	return &GroupTable{
		Version: 1,
		Groups: []VirtualGroup{
			{
				Key:         "arbeitsbuehnen",
				Title:       "Arbeitsbühnen mieten",
				Description: "Scheren-, Gelenk-, Teleskop- und Anhängerarbeitsbühnen für jede Arbeitshöhe.",
				Aliases: []string{
					"Arbeitsbühnen",
					"Scherenbühnen",
					"Gelenkteleskopbühnen",
					"Teleskopbühnen",
					"Anhängerarbeitsbühnen",
					"LKW-Arbeitsbühnen",
					"Raupenarbeitsbühnen",
					"Mastbühnen",
				},
			},
			{
				Key:         "stapler",
				Title:       "Stapler mieten",
				Description: "Gabelstapler, Teleskopstapler und Hubwagen für Lager, Baustelle und Logistik.",
				Aliases: []string{
					"Stapler",
					"Gabelstapler",
					"Teleskopstapler",
					"Elektrostapler",
					"Dieselstapler",
					"Hubwagen",
				},
			},
			{
				Key:         "baumaschinen",
				Title:       "Baumaschinen mieten",
				Description: "Bagger, Radlader und Dumper für Erdarbeiten und Materialtransport.",
				Aliases: []string{
					"Baumaschinen",
					"Bagger",
					"Minibagger",
					"Radlader",
					"Kompaktlader",
					"Dumper",
				},
			},
		},
		Rules: []Rule{
			{Group: "arbeitsbuehnen", Keywords: []string{"buehne"}},
			{Group: "stapler", Keywords: []string{"stapler", "hubwagen"}},
			{Group: "baumaschinen", Keywords: []string{"bagger", "lader", "baumaschine"}},
		},
	}
}

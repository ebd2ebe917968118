// Package scenario reads battle setups from YAML files.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"se4x/engine"
	"se4x/game"
)

// Scenario is the on-disk description of one battle.
type Scenario struct {
	Name      string     `yaml:"name"`
	Asteroids bool       `yaml:"asteroids"`
	Nebula    bool       `yaml:"nebula"`
	Ships     []ShipSpec `yaml:"ships"` // custom archetypes, added to the catalog
	Attacker  FleetSpec  `yaml:"attacker"`
	Defender  FleetSpec  `yaml:"defender"`
	Rolls     []int      `yaml:"rolls"` // optional scripted die results for replays
}

type FleetSpec struct {
	Upgrades game.Upgrades `yaml:"upgrades"`
	Fleet    []Group       `yaml:"fleet"`
}

// Group is a number of identical ships. Count defaults to 1.
type Group struct {
	Ship  string `yaml:"ship"`
	Count int    `yaml:"count"`
}

type ShipSpec struct {
	Code     string   `yaml:"code"`
	Name     string   `yaml:"name"`
	Cost     int      `yaml:"cost"`
	Priority int      `yaml:"priority"`
	Attack   int      `yaml:"attack"`
	Defense  int      `yaml:"defense"`
	Size     int      `yaml:"size"`
	Traits   []string `yaml:"traits"`
}

// Battle is a scenario resolved against a catalog, ready to fight.
type Battle struct {
	Name        string
	Attacker    engine.Fleet
	Defender    engine.Fleet
	Environment engine.Environment
	Rolls       []int
}

func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func Parse(b []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &s, nil
}

func (s ShipSpec) shipType() (*game.ShipType, error) {
	var traits game.Trait
	for _, name := range s.Traits {
		tr, err := game.ParseTrait(name)
		if err != nil {
			return nil, fmt.Errorf("ship type %s: %w", s.Code, err)
		}
		traits |= tr
	}
	return &game.ShipType{
		Code:     s.Code,
		Name:     s.Name,
		Cost:     s.Cost,
		Priority: s.Priority,
		Attack:   s.Attack,
		Defense:  s.Defense,
		Size:     s.Size,
		Traits:   traits,
	}, nil
}

// Resolve registers the custom ships in catalog and expands both fleets.
// The catalog is modified in place.
func (s *Scenario) Resolve(catalog game.Catalog) (Battle, error) {
	for _, spec := range s.Ships {
		t, err := spec.shipType()
		if err != nil {
			return Battle{}, err
		}
		if err := catalog.Add(t); err != nil {
			return Battle{}, err
		}
	}

	for _, roll := range s.Rolls {
		if err := game.ValidateRoll(roll); err != nil {
			return Battle{}, fmt.Errorf("scripted rolls: %w", err)
		}
	}

	attacker, err := s.Attacker.resolve(catalog)
	if err != nil {
		return Battle{}, fmt.Errorf("attacker: %w", err)
	}
	defender, err := s.Defender.resolve(catalog)
	if err != nil {
		return Battle{}, fmt.Errorf("defender: %w", err)
	}

	return Battle{
		Name:        s.Name,
		Attacker:    attacker,
		Defender:    defender,
		Environment: engine.Environment{Asteroids: s.Asteroids, Nebula: s.Nebula},
		Rolls:       s.Rolls,
	}, nil
}

func (f FleetSpec) resolve(catalog game.Catalog) (engine.Fleet, error) {
	if err := f.Upgrades.Validate(); err != nil {
		return engine.Fleet{}, err
	}

	fleet := engine.Fleet{Upgrades: f.Upgrades}
	for _, g := range f.Fleet {
		t, err := catalog.Lookup(g.Ship)
		if err != nil {
			return engine.Fleet{}, err
		}
		count := g.Count
		switch {
		case count < 0:
			return engine.Fleet{}, fmt.Errorf("%s: negative count %d", t.Code, count)
		case count == 0:
			count = 1
		}
		for i := 0; i < count; i++ {
			fleet.Ships = append(fleet.Ships, t)
		}
	}
	return fleet, nil
}

// Describe renders a fleet as "2xDN 1xSC".
func Describe(f engine.Fleet) string {
	var parts []string
	var last *game.ShipType
	n := 0
	flush := func() {
		if last != nil {
			parts = append(parts, fmt.Sprintf("%dx%s", n, last.Code))
		}
	}
	for _, t := range f.Ships {
		if t == last {
			n++
			continue
		}
		flush()
		last, n = t, 1
	}
	flush()
	return strings.Join(parts, " ")
}

package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownShip = errors.New("unknown ship type")

// Trait tags a ship archetype with a capability the combat rules key on.
type Trait uint16

const (
	TraitBoarding    Trait = 1 << iota // captures instead of damaging
	TraitFighter                       // benefits from fighter tech
	TraitRaider                        // benefits from cloaking tech
	TraitTitan                         // boarding immune, no auto-hit floor, double damage
	TraitCloaked                       // +1 to hit on the first round
	TraitExtendedCap                   // upgrades capped at hull size + 1 (DDX)
	TraitGround                        // ground combat unit
)

var traitNames = map[Trait]string{
	TraitBoarding:    "boarding",
	TraitFighter:     "fighter",
	TraitRaider:      "raider",
	TraitTitan:       "titan",
	TraitCloaked:     "cloaked",
	TraitExtendedCap: "extended-cap",
	TraitGround:      "ground",
}

// ParseTrait converts a trait name as used in scenario files.
func ParseTrait(name string) (Trait, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range traitNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown trait %q", name)
}

func (t Trait) String() string {
	var names []string
	for bit := TraitBoarding; bit <= TraitGround; bit <<= 1 {
		if t&bit != 0 {
			names = append(names, traitNames[bit])
		}
	}
	return strings.Join(names, "|")
}

// ShipType is a static archetype record. Instances share it and never mutate it.
type ShipType struct {
	Code     string // short catalog code, e.g. "DN"
	Name     string
	Cost     int // construction points
	Priority int // attack class, A=1 .. F=6; lower fires earlier
	Attack   int
	Defense  int
	Size     int // hull size, also the starting hit points
	Traits   Trait
}

// Has reports whether the archetype carries every trait in tr.
func (t *ShipType) Has(tr Trait) bool {
	return t.Traits&tr == tr
}

func (t *ShipType) Validate() error {
	switch {
	case t.Code == "":
		return fmt.Errorf("ship type %q: missing code", t.Name)
	case t.Name == "":
		return fmt.Errorf("ship type %s: missing name", t.Code)
	case t.Size < 1:
		return fmt.Errorf("ship type %s: hull size must be positive, got %d", t.Code, t.Size)
	case t.Cost < 0:
		return fmt.Errorf("ship type %s: negative cost %d", t.Code, t.Cost)
	case t.Priority < 0:
		return fmt.Errorf("ship type %s: negative priority %d", t.Code, t.Priority)
	}
	return nil
}

func (t *ShipType) String() string {
	return t.Name
}

// Side identifies which fleet a ship currently fights for.
type Side int

const (
	Attacker Side = iota
	Defender
)

func (s Side) String() string {
	if s == Attacker {
		return "ATT"
	}
	return "DEF"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Attacker {
		return Defender
	}
	return Attacker
}

package game

import (
	"fmt"
	"sort"
	"strings"
)

// Standard archetypes. Priority classes: A=1 B=2 C=3 D=4 E=5 F=6.
var (
	Scout         = &ShipType{Code: "SC", Name: "Scout", Cost: 6, Priority: 5, Attack: 3, Defense: 0, Size: 1}
	Destroyer     = &ShipType{Code: "DD", Name: "Destroyer", Cost: 9, Priority: 4, Attack: 4, Defense: 0, Size: 1}
	Cruiser       = &ShipType{Code: "CA", Name: "Cruiser", Cost: 12, Priority: 3, Attack: 4, Defense: 1, Size: 2}
	Battlecruiser = &ShipType{Code: "BC", Name: "Battlecruiser", Cost: 15, Priority: 2, Attack: 5, Defense: 1, Size: 2}
	Battleship    = &ShipType{Code: "BB", Name: "Battleship", Cost: 20, Priority: 1, Attack: 5, Defense: 2, Size: 3}
	Dreadnaught   = &ShipType{Code: "DN", Name: "Dreadnaught", Cost: 24, Priority: 1, Attack: 6, Defense: 3, Size: 3}
	Titan         = &ShipType{Code: "TN", Name: "Titan", Cost: 32, Priority: 1, Attack: 7, Defense: 3, Size: 5, Traits: TraitTitan}

	BoardingShip = &ShipType{Code: "BD", Name: "Boarding", Cost: 12, Priority: 6, Attack: 5, Defense: 0, Size: 2, Traits: TraitBoarding}
	Carrier      = &ShipType{Code: "CV", Name: "Carrier", Cost: 5, Priority: 5, Attack: 3, Defense: 1, Size: 1}
	Fighter      = &ShipType{Code: "F", Name: "Fighter", Cost: 5, Priority: 2, Attack: 5, Defense: 0, Size: 1, Traits: TraitFighter}
	CarrierAdv   = &ShipType{Code: "BV", Name: "Carrier adv", Cost: 5, Priority: 2, Attack: 5, Defense: 1, Size: 3}

	Transport      = &ShipType{Code: "T", Name: "Transport", Cost: 6, Priority: 5, Attack: 1, Defense: 1, Size: 1}
	Militia        = &ShipType{Code: "MIL", Name: "Militia", Cost: 0, Priority: 5, Attack: 5, Defense: 0, Size: 1, Traits: TraitGround}
	Infantry       = &ShipType{Code: "INF", Name: "Infantry", Cost: 2, Priority: 4, Attack: 5, Defense: 1, Size: 1, Traits: TraitGround}
	MarinesAtt     = &ShipType{Code: "MAR-A", Name: "Marines (att)", Cost: 3, Priority: 3, Attack: 6, Defense: 1, Size: 2, Traits: TraitGround}
	MarinesDef     = &ShipType{Code: "MAR-D", Name: "Marines (def)", Cost: 3, Priority: 4, Attack: 5, Defense: 1, Size: 2, Traits: TraitGround}
	HeavyInfAtt    = &ShipType{Code: "HI-A", Name: "Hvy inf (att)", Cost: 3, Priority: 4, Attack: 4, Defense: 2, Size: 2, Traits: TraitGround}
	HeavyInfDef    = &ShipType{Code: "HI-D", Name: "Hvy inf (def)", Cost: 3, Priority: 3, Attack: 6, Defense: 2, Size: 2, Traits: TraitGround}
	GravArmor      = &ShipType{Code: "GRAV", Name: "Grav Armor", Cost: 4, Priority: 3, Attack: 6, Defense: 2, Size: 2, Traits: TraitGround}
	Base           = &ShipType{Code: "BASE", Name: "Base", Cost: 12, Priority: 1, Attack: 7, Defense: 2, Size: 3}
	Shipyard       = &ShipType{Code: "SY", Name: "Shipyard", Cost: 6, Priority: 3, Attack: 3, Defense: 1, Size: 1}
	Raider         = &ShipType{Code: "R", Name: "Raider", Cost: 12, Priority: 4, Attack: 4, Defense: 0, Size: 2, Traits: TraitRaider}
	RaiderCloaked  = &ShipType{Code: "R-C", Name: "Raider (clkd)", Cost: 12, Priority: 1, Attack: 5, Defense: 0, Size: 2, Traits: TraitRaider | TraitCloaked}
	Sweeper        = &ShipType{Code: "SW", Name: "Sweeper", Cost: 6, Priority: 5, Attack: 1, Defense: 0, Size: 1}
	DDX            = &ShipType{Code: "DDX", Name: "DDX", Cost: 9, Priority: 4, Attack: 4, Defense: 0, Size: 1, Traits: TraitExtendedCap}
	AlienB         = &ShipType{Code: "AL-B", Name: "Alien B", Cost: 0, Priority: 2, Attack: 6, Defense: 2, Size: 1}
	AlienC         = &ShipType{Code: "AL-C", Name: "Alien C", Cost: 0, Priority: 3, Attack: 5, Defense: 2, Size: 1}
	AlienD         = &ShipType{Code: "AL-D", Name: "Alien D", Cost: 0, Priority: 4, Attack: 4, Defense: 1, Size: 1}
	Flagship       = &ShipType{Code: "FLAG", Name: "HMS Jeff", Cost: 0, Priority: 2, Attack: 4, Defense: 1, Size: 3}
	AdvFlagship    = &ShipType{Code: "FLAG-ADV", Name: "Enterpris", Cost: 0, Priority: 1, Attack: 5, Defense: 3, Size: 3}
	BoardingInsect = &ShipType{Code: "BD-INS", Name: "Boarding (insectoids)", Cost: 12, Priority: 6, Attack: 5, Defense: 0, Size: 1, Traits: TraitBoarding}

	// Cloaking geniuses
	ScoutCloaked     = &ShipType{Code: "SC-C", Name: "Scout clkd", Cost: 6, Priority: 1, Attack: 3, Defense: 0, Size: 1, Traits: TraitCloaked}
	DestroyerCloaked = &ShipType{Code: "DD-C", Name: "Destroyer clkd", Cost: 9, Priority: 1, Attack: 4, Defense: 0, Size: 1, Traits: TraitCloaked}
	CruiserCloaked   = &ShipType{Code: "CA-C", Name: "Cruiser clkd", Cost: 12, Priority: 1, Attack: 4, Defense: 1, Size: 2, Traits: TraitCloaked}
)

var standardShips = []*ShipType{
	Scout, Destroyer, Cruiser, Battlecruiser, Battleship, Dreadnaught, Titan,
	BoardingShip, Carrier, Fighter, CarrierAdv,
	Transport, Militia, Infantry, MarinesAtt, MarinesDef, HeavyInfAtt, HeavyInfDef, GravArmor,
	Base, Shipyard, Raider, RaiderCloaked, Sweeper, DDX,
	AlienB, AlienC, AlienD, Flagship, AdvFlagship, BoardingInsect,
	ScoutCloaked, DestroyerCloaked, CruiserCloaked,
}

// Catalog maps upper-cased codes to archetypes.
type Catalog map[string]*ShipType

// StandardCatalog returns a fresh catalog holding every standard archetype.
// The archetypes themselves are shared.
func StandardCatalog() Catalog {
	c := make(Catalog, len(standardShips))
	for _, t := range standardShips {
		c[strings.ToUpper(t.Code)] = t
	}
	return c
}

// Add registers a custom archetype. Codes and names must be unique, case-insensitively.
func (c Catalog) Add(t *ShipType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	key := strings.ToUpper(t.Code)
	if _, ok := c[key]; ok {
		return fmt.Errorf("ship type %s already registered", t.Code)
	}
	for _, other := range c {
		if strings.EqualFold(other.Name, t.Name) {
			return fmt.Errorf("ship type %s: name %q already used by %s", t.Code, t.Name, other.Code)
		}
	}
	c[key] = t
	return nil
}

// Lookup finds an archetype by code, falling back to a case-insensitive name match.
func (c Catalog) Lookup(ref string) (*ShipType, error) {
	ref = strings.TrimSpace(ref)
	if t, ok := c[strings.ToUpper(ref)]; ok {
		return t, nil
	}
	for _, t := range c {
		if strings.EqualFold(t.Name, ref) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShip, ref)
}

// Codes lists the registered codes in sorted order.
func (c Catalog) Codes() []string {
	codes := make([]string, 0, len(c))
	for _, t := range c {
		codes = append(codes, t.Code)
	}
	sort.Strings(codes)
	return codes
}

package game

// Shot is everything needed to resolve one ship firing at another.
// Sizes are the instances' current hull sizes, which include the giant bonus.
type Shot struct {
	Shooter     *ShipType
	ShooterSize int
	ShooterSide Side
	Own         Upgrades // shooter's side

	Target     *ShipType
	TargetSize int
	Enemy      Upgrades // target's side

	FleetBonus bool
	Round      int
}

// Attack is the outcome of a Shot.
type Attack struct {
	Damage    int
	Roll      int
	Threshold int
	// Fired is false when no real roll decided the shot: boarding a titan, or
	// ground troops still landing on the first round.
	Fired bool
}

// Hit reports whether the shot did damage or captured its target.
func (a Attack) Hit() bool {
	return a.Damage > 0
}

// Sentinel returned for attacking ground units held back on round 1.
var groundDelayed = Attack{Roll: DieSides, Threshold: 0}

// ResolveAttack rolls one shot. It has no side effects beyond drawing from dice.
func ResolveAttack(s Shot, dice Roller) Attack {
	att, def := s.Shooter, s.Target

	// Att/def upgrades are capped by hull size
	attUp := capUpgrade(s.Own.Attack, att, s.ShooterSize)
	defUp := capUpgrade(s.Enemy.Defense, def, s.TargetSize)
	if def.Has(TraitFighter) && s.Enemy.Fighter >= 3 {
		defUp++
	}

	tohit := att.Attack + attUp - def.Defense - defUp
	switch {
	case att.Has(TraitBoarding):
		tohit = att.Attack + s.Own.Boarding - 1 - s.TargetSize - s.Enemy.Security
	case att.Has(TraitFighter):
		tohit += s.Own.Fighter - 1
	case att.Has(TraitRaider):
		tohit += s.Own.Cloaking - 1
	}

	if def.Has(TraitTitan) {
		if att.Has(TraitBoarding) {
			return Attack{}
		}
		if att.Has(TraitFighter) {
			tohit++
		}
	}

	roll := dice.Roll()

	// Against titans the fleet bonus only helps fighters.
	if s.FleetBonus && !att.Has(TraitBoarding) && !att.Has(TraitGround) &&
		(!def.Has(TraitTitan) || att.Has(TraitFighter)) {
		tohit++
	}

	if s.Round == 1 && att.Has(TraitCloaked) {
		tohit++
	}

	if s.Round == 1 && att.Has(TraitGround) && s.ShooterSide == Attacker && s.Own.Transport < 3 {
		return groundDelayed
	}

	if s.Own.Hivemind && s.Round >= 4 {
		tohit++
	}
	if s.Enemy.Hivemind && s.Round >= 2 {
		tohit--
	}

	// A 1 always hits, except against titans.
	if !def.Has(TraitTitan) {
		tohit = max(tohit, 1)
	}

	a := Attack{Roll: roll, Threshold: tohit, Fired: true}
	if roll <= tohit {
		a.Damage = 1
		if att.Has(TraitTitan) {
			a.Damage = 2
		}
	}
	return a
}

func capUpgrade(level int, t *ShipType, size int) int {
	limit := size
	if t.Has(TraitExtendedCap) {
		limit++
	}
	return min(level, limit)
}

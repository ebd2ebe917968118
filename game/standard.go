package game

type StandardRules struct {
	FleetRatio     int        // bonus when outnumbering the enemy by at least this ratio
	SideOffsets    [2]float64 // firing order tie-break, indexed by Side
	TacticsDivisor float64
	CaptureMalus   float64 // applied only when the attacker captures
	FreezeRounds   int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		FleetRatio:     2,
		SideOffsets:    [2]float64{Attacker: .9, Defender: .8},
		TacticsDivisor: 5,
		CaptureMalus:   .1,
		FreezeRounds:   2,
	}
}

func (sr *StandardRules) FleetBonus(attackers, defenders int) (Side, bool) {
	switch {
	case attackers >= sr.FleetRatio*defenders:
		return Attacker, true
	case defenders >= sr.FleetRatio*attackers:
		return Defender, true
	}
	return Attacker, false
}

func (sr *StandardRules) FiringOrder(t *ShipType, side Side, tactics int, tierless bool) float64 {
	order := sr.SideOffsets[side] - float64(tactics)/sr.TacticsDivisor
	if !tierless {
		order += float64(t.Priority)
	}
	return order
}

// TODO: confirm against the official rules whether a defender capturing an attacker ship should also take the malus.
func (sr *StandardRules) CapturePenalty(captor Side) float64 {
	if captor == Attacker {
		return sr.CaptureMalus
	}
	return 0
}

func (sr *StandardRules) CaptureFreeze() int {
	return sr.FreezeRounds
}

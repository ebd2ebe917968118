package game

// Rules holds the fight-level tunables the round engine consults.
// Per-shot resolution lives in ResolveAttack.
type Rules interface {
	// FleetBonus returns the side entitled to the fleet size bonus this round.
	FleetBonus(attackers, defenders int) (Side, bool)
	// FiringOrder computes a ship's firing key; lower fires first.
	FiringOrder(t *ShipType, side Side, tactics int, tierless bool) float64
	// CapturePenalty is added to the firing key of a ship captured by captor.
	CapturePenalty(captor Side) float64
	// CaptureFreeze is the number of rounds a captured ship stays inactive.
	CaptureFreeze() int
}

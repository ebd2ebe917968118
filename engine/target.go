package engine

import (
	"se4x/game"
	"se4x/utils"
)

// Crude approximation of the best target. It ignores upgrades, so it cannot
// tell which enemy actually hits hardest.
var targetPriorities = []func(*Ship) bool{
	// finish off wounded ships
	func(s *Ship) bool { return s.Wounded() },
	// then boarders
	func(s *Ship) bool { return s.Type.Has(game.TraitBoarding) },
	func(s *Ship) bool { return s.Size == 1 },
	func(s *Ship) bool { return s.Size == 2 },
}

// SelectTarget picks the enemy of side that ships[order[...]] should fire on.
// It returns false when no living enemy remains.
func SelectTarget(ships []*Ship, order []int, side game.Side) (int, bool) {
	enemies := utils.Filter(order, func(id int) bool {
		return ships[id].Side != side && ships[id].Alive()
	})
	if len(enemies) == 0 {
		return -1, false
	}

	for _, match := range targetPriorities {
		i := utils.FindIndexFunc(enemies, func(id int) bool { return match(ships[id]) })
		if i >= 0 {
			return enemies[i], true
		}
	}
	return enemies[0], true
}

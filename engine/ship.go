package engine

import (
	"fmt"

	"se4x/game"
)

// Ship is the runtime state of one hull during a fight.
type Ship struct {
	ID        int // stable roster index
	Type      *game.ShipType
	HP        int
	Size      int // maximum hit points, giant bonus included
	Order     float64
	Fired     bool
	SkipUntil int // inactive while SkipUntil >= current round
	Side      game.Side
	Upgrades  *game.Upgrades // shared by the whole side, swapped on capture
}

func (s *Ship) Alive() bool {
	return s.HP > 0
}

func (s *Ship) Wounded() bool {
	return s.HP < s.Size
}

// Frozen reports whether the ship sits out the given round.
func (s *Ship) Frozen(round int) bool {
	return s.SkipUntil >= round
}

func (s *Ship) String() string {
	return fmt.Sprintf("%s %s [%d]", s.Side, s.Type.Name, s.ID)
}

func (s *Ship) status(round int) string {
	switch {
	case !s.Alive():
		return "DEAD"
	case s.Frozen(round):
		return "SKIP"
	case s.Fired:
		return "X"
	}
	return ""
}

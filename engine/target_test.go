package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"se4x/game"
)

func roster(ships ...*Ship) ([]*Ship, []int) {
	order := make([]int, len(ships))
	for i, s := range ships {
		s.ID = i
		order[i] = i
	}
	return ships, order
}

func newShip(t *game.ShipType, side game.Side) *Ship {
	return &Ship{Type: t, HP: t.Size, Size: t.Size, Side: side, Upgrades: &game.Upgrades{}}
}

func TestSelectTarget(t *testing.T) {
	t.Run("wounded enemies come first", func(t *testing.T) {
		wounded := newShip(game.Dreadnaught, game.Defender)
		wounded.HP = 1
		ships, order := roster(
			newShip(game.Scout, game.Attacker),
			newShip(game.BoardingShip, game.Defender),
			newShip(game.Scout, game.Defender),
			wounded,
		)

		got, ok := SelectTarget(ships, order, game.Attacker)

		require.True(t, ok)
		require.Equal(t, 3, got)
	})

	t.Run("boarding ships come before small hulls", func(t *testing.T) {
		ships, order := roster(
			newShip(game.Scout, game.Defender),
			newShip(game.BoardingShip, game.Defender),
			newShip(game.Scout, game.Attacker),
		)

		got, ok := SelectTarget(ships, order, game.Attacker)

		require.True(t, ok)
		require.Equal(t, 1, got)
	})

	t.Run("size 1 before size 2 before the rest", func(t *testing.T) {
		ships, order := roster(
			newShip(game.Dreadnaught, game.Defender),
			newShip(game.Cruiser, game.Defender),
			newShip(game.Scout, game.Defender),
		)

		got, _ := SelectTarget(ships, order, game.Attacker)
		require.Equal(t, 2, got)

		ships[2].HP = 0
		got, _ = SelectTarget(ships, order, game.Attacker)
		require.Equal(t, 1, got)

		ships[1].HP = 0
		got, _ = SelectTarget(ships, order, game.Attacker)
		require.Equal(t, 0, got)
	})

	t.Run("first match in firing order wins", func(t *testing.T) {
		ships, order := roster(
			newShip(game.Scout, game.Defender),
			newShip(game.Destroyer, game.Defender),
		)
		order = []int{1, 0}

		got, _ := SelectTarget(ships, order, game.Attacker)

		require.Equal(t, 1, got)
	})

	t.Run("no living enemy", func(t *testing.T) {
		dead := newShip(game.Scout, game.Defender)
		dead.HP = 0
		ships, order := roster(newShip(game.Scout, game.Attacker), dead)

		_, ok := SelectTarget(ships, order, game.Attacker)

		require.False(t, ok)
	})
}

func TestSelectTargetProperties(t *testing.T) {
	types := []*game.ShipType{game.Scout, game.Cruiser, game.Dreadnaught, game.BoardingShip, game.Titan}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "n")
		var ships []*Ship
		for i := 0; i < n; i++ {
			s := newShip(rapid.SampledFrom(types).Draw(rt, "type"), game.Side(rapid.IntRange(0, 1).Draw(rt, "side")))
			s.HP = rapid.IntRange(0, s.Size).Draw(rt, "hp")
			ships = append(ships, s)
		}
		ships, order := roster(ships...)
		side := game.Side(rapid.IntRange(0, 1).Draw(rt, "shooter"))

		got, ok := SelectTarget(ships, order, side)
		again, okAgain := SelectTarget(ships, order, side)

		if got != again || ok != okAgain {
			rt.Fatalf("selection is not stable: %d/%v then %d/%v", got, ok, again, okAgain)
		}
		if !ok {
			for _, s := range ships {
				if s.Side != side && s.Alive() {
					rt.Fatalf("living enemy %s was not selected", s)
				}
			}
			return
		}
		if ships[got].Side == side || !ships[got].Alive() {
			rt.Fatalf("selected %s which is not a living enemy", ships[got])
		}
	})
}

package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func ups(attack, defense int) Upgrades {
	return Upgrades{Attack: attack, Defense: defense}
}

func shot(shooter, target *ShipType, own, enemy Upgrades) Shot {
	return Shot{
		Shooter:     shooter,
		ShooterSize: shooter.Size,
		ShooterSide: Attacker,
		Own:         own,
		Target:      target,
		TargetSize:  target.Size,
		Enemy:       enemy,
		Round:       1,
	}
}

func TestResolveAttackThreshold(t *testing.T) {
	tests := []struct {
		name      string
		shot      Shot
		threshold int
	}{
		// base numbers with simple upgrades
		{"scout vs scout", shot(Scout, Scout, ups(0, 0), ups(0, 0)), 3},
		{"scout vs scout with defense tech", shot(Scout, Scout, ups(0, 0), ups(0, 1)), 2},
		{"scout with attack tech vs scout", shot(Scout, Scout, ups(1, 0), ups(0, 0)), 4},
		{"scout with attack tech vs scout with defense tech", shot(Scout, Scout, ups(1, 0), ups(0, 1)), 3},
		{"destroyer vs scout", shot(Destroyer, Scout, ups(0, 0), ups(0, 0)), 4},
		{"destroyer vs scout with defense tech", shot(Destroyer, Scout, ups(0, 0), ups(0, 1)), 3},
		{"destroyer with attack tech vs scout", shot(Destroyer, Scout, ups(1, 0), ups(0, 0)), 5},
		{"destroyer with attack tech vs scout with defense tech", shot(Destroyer, Scout, ups(1, 0), ups(0, 1)), 4},
		// shooter's defense and target's attack do not matter
		{"shooter defense ignored", shot(Scout, Scout, ups(1, 1), ups(0, 1)), 3},
		{"target attack ignored", shot(Scout, Scout, ups(0, 0), ups(1, 1)), 2},
		// hull size caps
		{"attack capped by hull size", shot(Scout, Scout, ups(2, 0), ups(0, 0)), 4},
		{"defense capped by hull size", shot(Dreadnaught, Scout, ups(0, 0), ups(0, 3)), 5},
		{"DDX cap is hull size plus one", shot(DDX, Scout, ups(3, 0), ups(0, 0)), 6},
		{"DDX defense cap is hull size plus one", shot(Dreadnaught, DDX, ups(0, 0), ups(0, 3)), 4},
		// floor
		{"threshold floors at 1", shot(Scout, Dreadnaught, ups(0, 0), ups(0, 3)), 1},
		{"no floor against titans", shot(Scout, Titan, ups(0, 0), ups(0, 3)), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAttack(tt.shot, FixedRoller(DieSides))

			require.Equal(t, tt.threshold, got.Threshold, "Threshold should match the combat table")
			require.Equal(t, DieSides, got.Roll, "Roll should come from the die")
			require.True(t, got.Fired, "Ship should have fired")
		})
	}
}

func TestResolveAttackSpecialRules(t *testing.T) {
	t.Run("boarding uses boarding tech against hull size and security", func(t *testing.T) {
		s := shot(BoardingShip, Battlecruiser, Upgrades{Boarding: 2}, Upgrades{Security: 1})

		got := ResolveAttack(s, FixedRoller(3))

		require.Equal(t, 3, got.Threshold, "5 + 2 - 1 - 2 - 1")
		require.Equal(t, 1, got.Damage, "A hit should mark a capture")
	})

	t.Run("boarding a titan fails without a roll", func(t *testing.T) {
		dice := &ScriptedRoller{Rolls: []int{1}}
		s := shot(BoardingShip, Titan, Upgrades{Boarding: 3}, Upgrades{})

		got := ResolveAttack(s, dice)

		require.Equal(t, Attack{}, got)
		require.Equal(t, 0, dice.Consumed(), "No die should be rolled")
	})

	t.Run("fighter tech adds to fighter attack", func(t *testing.T) {
		s := shot(Fighter, Scout, Upgrades{Fighter: 2}, Upgrades{})

		got := ResolveAttack(s, FixedRoller(DieSides))

		require.Equal(t, 6, got.Threshold, "5 + (2 - 1)")
	})

	t.Run("fighter tech 3 adds to fighter defense", func(t *testing.T) {
		s := shot(Destroyer, Fighter, Upgrades{}, Upgrades{Fighter: 3})

		got := ResolveAttack(s, FixedRoller(DieSides))

		require.Equal(t, 3, got.Threshold, "4 - 0 - 1")
	})

	t.Run("raider uses cloaking tech", func(t *testing.T) {
		s := shot(Raider, Scout, Upgrades{Cloaking: 2}, Upgrades{})
		s.Round = 2

		got := ResolveAttack(s, FixedRoller(DieSides))

		require.Equal(t, 5, got.Threshold, "4 + (2 - 1)")
	})

	t.Run("cloaked ships get +1 on the first round only", func(t *testing.T) {
		s := shot(DestroyerCloaked, Scout, Upgrades{}, Upgrades{})

		require.Equal(t, 5, ResolveAttack(s, FixedRoller(DieSides)).Threshold, "Round 1")
		s.Round = 2
		require.Equal(t, 4, ResolveAttack(s, FixedRoller(DieSides)).Threshold, "Round 2")
	})

	t.Run("fleet size bonus adds 1", func(t *testing.T) {
		// two fighters against a lone scout
		s := shot(Fighter, Scout, Upgrades{}, Upgrades{})
		s.FleetBonus = true

		got := ResolveAttack(s, FixedRoller(DieSides))

		require.Equal(t, 5, got.Threshold, "5 + (0 - 1) + 1")
	})

	t.Run("fleet size bonus does not apply to boarding", func(t *testing.T) {
		s := shot(BoardingShip, Scout, Upgrades{}, Upgrades{})
		s.FleetBonus = true

		got := ResolveAttack(s, FixedRoller(DieSides))

		require.Equal(t, 3, got.Threshold, "5 - 1 - 1")
	})

	t.Run("fleet size bonus does not apply to ground combat", func(t *testing.T) {
		s := shot(Infantry, Militia, Upgrades{}, Upgrades{})
		s.ShooterSide = Defender
		s.FleetBonus = true

		got := ResolveAttack(s, FixedRoller(DieSides))

		require.Equal(t, 5, got.Threshold)
	})

	t.Run("fleet size bonus against titans only helps fighters", func(t *testing.T) {
		ship := shot(Dreadnaught, Titan, Upgrades{}, Upgrades{})
		ship.FleetBonus = true
		fighter := shot(Fighter, Titan, Upgrades{}, Upgrades{})
		fighter.FleetBonus = true

		require.Equal(t, 3, ResolveAttack(ship, FixedRoller(DieSides)).Threshold, "6 - 3")
		require.Equal(t, 3, ResolveAttack(fighter, FixedRoller(DieSides)).Threshold, "5 - 3 - 1 + 1 + 1")
	})

	t.Run("titans deal two damage", func(t *testing.T) {
		s := shot(Titan, Dreadnaught, Upgrades{}, Upgrades{})

		got := ResolveAttack(s, FixedRoller(1))

		require.Equal(t, 2, got.Damage)
	})

	t.Run("a roll of 1 does not hit a titan when the threshold is below 1", func(t *testing.T) {
		s := shot(Scout, Titan, Upgrades{}, Upgrades{})

		got := ResolveAttack(s, FixedRoller(1))

		require.Equal(t, 0, got.Threshold)
		require.False(t, got.Hit())
	})

	t.Run("attacking ground units hold fire on round 1 without transport tech 3", func(t *testing.T) {
		s := shot(Infantry, Militia, Upgrades{Transport: 2}, Upgrades{})

		got := ResolveAttack(s, FixedRoller(1))

		require.Equal(t, DieSides, got.Roll, "Sentinel roll")
		require.Equal(t, 0, got.Threshold, "Sentinel threshold")
		require.False(t, got.Fired)
		require.False(t, got.Hit())
	})

	t.Run("attacking ground units fire on round 1 with transport tech 3", func(t *testing.T) {
		s := shot(Infantry, Militia, Upgrades{Transport: 3}, Upgrades{})

		got := ResolveAttack(s, FixedRoller(1))

		require.True(t, got.Fired)
		require.True(t, got.Hit())
	})

	t.Run("defending ground units fire on round 1", func(t *testing.T) {
		s := shot(Militia, Infantry, Upgrades{}, Upgrades{})
		s.ShooterSide = Defender

		got := ResolveAttack(s, FixedRoller(1))

		require.True(t, got.Fired)
		require.Equal(t, 4, got.Threshold, "5 - 1")
	})

	t.Run("hivemind shooter gains +1 from round 4", func(t *testing.T) {
		s := shot(Destroyer, Scout, Upgrades{Hivemind: true}, Upgrades{})
		s.Round = 3
		require.Equal(t, 4, ResolveAttack(s, FixedRoller(DieSides)).Threshold)
		s.Round = 4
		require.Equal(t, 5, ResolveAttack(s, FixedRoller(DieSides)).Threshold)
	})

	t.Run("hivemind target imposes -1 from round 2", func(t *testing.T) {
		s := shot(Destroyer, Scout, Upgrades{}, Upgrades{Hivemind: true})
		require.Equal(t, 4, ResolveAttack(s, FixedRoller(DieSides)).Threshold)
		s.Round = 2
		require.Equal(t, 3, ResolveAttack(s, FixedRoller(DieSides)).Threshold)
	})

	t.Run("giant ships use their enlarged hull for caps", func(t *testing.T) {
		s := shot(Scout, Scout, ups(2, 0), ups(0, 0))
		s.ShooterSize = 2

		got := ResolveAttack(s, FixedRoller(DieSides))

		require.Equal(t, 5, got.Threshold)
	})
}

func TestResolveAttackProperties(t *testing.T) {
	ships := StandardCatalog()
	codes := ships.Codes()

	rapid.Check(t, func(rt *rapid.T) {
		shooter := ships[rapid.SampledFrom(codes).Draw(rt, "shooter")]
		target := ships[rapid.SampledFrom(codes).Draw(rt, "target")]
		roll := rapid.IntRange(1, DieSides).Draw(rt, "roll")
		up := func(label string) Upgrades {
			return Upgrades{
				Attack:    rapid.IntRange(0, 3).Draw(rt, label+".attack"),
				Defense:   rapid.IntRange(0, 3).Draw(rt, label+".defense"),
				Boarding:  rapid.IntRange(0, 2).Draw(rt, label+".boarding"),
				Security:  rapid.IntRange(0, 2).Draw(rt, label+".security"),
				Fighter:   rapid.IntRange(0, 4).Draw(rt, label+".fighter"),
				Transport: rapid.IntRange(0, 3).Draw(rt, label+".transport"),
				Hivemind:  rapid.Bool().Draw(rt, label+".hivemind"),
			}
		}
		s := shot(shooter, target, up("own"), up("enemy"))
		s.Round = rapid.IntRange(1, 6).Draw(rt, "round")
		s.FleetBonus = rapid.Bool().Draw(rt, "bonus")

		got := ResolveAttack(s, FixedRoller(roll))

		if got.Fired && !target.Has(TraitTitan) && got.Threshold < 1 {
			rt.Fatalf("threshold %d below 1 against %s", got.Threshold, target)
		}
		if got.Hit() != (got.Fired && got.Roll <= got.Threshold) {
			rt.Fatalf("hit %v inconsistent with roll %d/%d", got.Hit(), got.Roll, got.Threshold)
		}
		if got.Damage > 1 && !shooter.Has(TraitTitan) {
			rt.Fatalf("%s dealt %d damage", shooter, got.Damage)
		}
	})
}

package engine

import (
	"strings"

	"github.com/rs/zerolog"

	"se4x/game"
)

// Verbose replay output. Every helper is a no-op on a disabled logger.

func (f *Fight) traceStart() {
	f.trace.Info().
		Int("attackers", f.alive[game.Attacker]).
		Int("defenders", f.alive[game.Defender]).
		Msgf("Combat starting. %d ATT vs. %d DEF", f.alive[game.Attacker], f.alive[game.Defender])
	f.traceRoster()
	f.trace.Info().Msg(strings.Repeat("-", 80))
}

func (f *Fight) traceEnd(res Result) {
	f.trace.Info().
		Str("outcome", res.Outcome.String()).
		Int("rounds", res.Rounds).
		Msgf("Combat finished. Ships left : %d ATT vs. %d DEF", res.Attackers, res.Defenders)
	f.traceRoster()
	f.trace.Info().Msg(strings.Repeat("=", 80))
}

func (f *Fight) traceRoster() {
	if f.trace.GetLevel() > zerolog.DebugLevel {
		return
	}
	for _, id := range f.order {
		s := f.ships[id]
		f.trace.Debug().Msgf("%s %-13s at %d/%d hp, prio : %.2f %s",
			s.Side, s.Type.Name, s.HP, s.Size, s.Order, s.status(f.round))
	}
}

func (f *Fight) traceRoll(shooter, target *Ship, atk game.Attack) {
	f.trace.Debug().
		Int("roll", atk.Roll).
		Int("threshold", atk.Threshold).
		Msgf("    %s %-13s [%d] rolls %2d/%2d vs. %s %-13s [%d]",
			shooter.Side, shooter.Type.Name, shooter.ID, atk.Roll, atk.Threshold,
			target.Side, target.Type.Name, target.ID)
}

// traceEvent reports what happened to target, before any side switch.
func (f *Fight) traceEvent(target, shooter *Ship, atk game.Attack, what string) {
	f.trace.Info().
		Str("event", what).
		Msgf("%s %s [%d] %s by %s [%d] (roll:%d/%d)",
			target.Side, target.Type.Name, target.ID, what, shooter.Type.Name, shooter.ID,
			atk.Roll, atk.Threshold)
}

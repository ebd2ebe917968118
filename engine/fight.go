package engine

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"se4x/game"
	"se4x/meta"
)

// Fleet is one side's roster and the upgrades shared by all of its ships.
type Fleet struct {
	Ships    []*game.ShipType
	Upgrades game.Upgrades
}

// Environment flags apply to both sides for the whole fight.
type Environment struct {
	Asteroids bool // attack upgrades ignored
	Nebula    bool // defense upgrades ignored
}

type Option func(f *Fight)

func WithRoller(dice game.Roller) Option {
	return func(f *Fight) {
		if dice != nil {
			f.dice = dice
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(f *Fight) {
		if rules != nil {
			f.rules = rules
		}
	}
}

// WithTrace sends a human-readable account of every roll to logger.
func WithTrace(logger zerolog.Logger) Option {
	return func(f *Fight) {
		f.trace = logger
	}
}

func WithEnvironment(env Environment) Option {
	return func(f *Fight) {
		f.env = env
	}
}

func WithMaxRounds(rounds int) Option {
	return func(f *Fight) {
		if rounds > 0 {
			f.maxRounds = rounds
		}
	}
}

// Fight owns all mutable state of a single battle.
type Fight struct {
	rules     game.Rules
	dice      game.Roller
	trace     zerolog.Logger
	env       Environment
	maxRounds int

	upgrades     [2]*game.Upgrades // per-fight copies, indexed by Side
	ships        []*Ship           // indexed by Ship.ID
	order        []int             // ship IDs in firing order
	alive        [2]int
	lost         [2]int
	immortalUsed bool // one absorption per round, whichever side takes it
	round        int
	resort       bool
}

// NewFight builds the roster for one battle. Exactly one of the fleets may be empty.
func NewFight(attacker, defender Fleet, options ...Option) (*Fight, error) {
	if len(attacker.Ships) == 0 && len(defender.Ships) == 0 {
		return nil, ErrEmptyFleets
	}

	f := &Fight{ // Default values
		rules:     game.NewStandardRules(),
		trace:     zerolog.Nop(),
		maxRounds: meta.MaxRounds,
		round:     1,
	}
	for _, option := range options {
		option(f)
	}
	if f.dice == nil {
		return nil, fmt.Errorf("no die roller configured")
	}

	for side, fleet := range []Fleet{game.Attacker: attacker, game.Defender: defender} {
		if err := fleet.Upgrades.Validate(); err != nil {
			return nil, fmt.Errorf("%s fleet: %w", game.Side(side), err)
		}
		up := fleet.Upgrades
		if f.env.Asteroids {
			up.Attack = 0
		}
		if f.env.Nebula {
			up.Defense = 0
		}
		f.upgrades[side] = &up
	}

	for side, fleet := range []Fleet{game.Attacker: attacker, game.Defender: defender} {
		if err := checkShips(game.Side(side), fleet.Ships); err != nil {
			return nil, err
		}
	}
	f.addFleet(game.Attacker, attacker.Ships)
	f.addFleet(game.Defender, defender.Ships)
	f.sortOrder()

	return f, nil
}

func (f *Fight) addFleet(side game.Side, types []*game.ShipType) {
	up := f.upgrades[side]
	for _, t := range types {
		size := t.Size
		if up.Giant {
			size++
		}
		s := &Ship{
			ID:       len(f.ships),
			Type:     t,
			HP:       size,
			Size:     size,
			Order:    f.rules.FiringOrder(t, side, up.Tactics, f.tierless()),
			Side:     side,
			Upgrades: up,
		}
		f.ships = append(f.ships, s)
		f.order = append(f.order, s.ID)
		f.alive[side]++
	}
}

func checkShips(side game.Side, types []*game.ShipType) error {
	for i, t := range types {
		if t == nil {
			return fmt.Errorf("%s fleet: nil ship type at index %d", side, i)
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%s fleet: %w", side, err)
		}
	}
	return nil
}

// Asteroids and nebulae drop the priority class from the firing order.
func (f *Fight) tierless() bool {
	return f.env.Asteroids || f.env.Nebula
}

func (f *Fight) sortOrder() {
	sort.Slice(f.order, func(i, j int) bool {
		a, b := f.ships[f.order[i]], f.ships[f.order[j]]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})
}

// Over reports whether one side has no ships left.
func (f *Fight) Over() bool {
	return f.alive[game.Attacker] == 0 || f.alive[game.Defender] == 0
}

// Round returns the number of the next round to play.
func (f *Fight) Round() int {
	return f.round
}

// Alive returns the number of ships left on side.
func (f *Fight) Alive(side game.Side) int {
	return f.alive[side]
}

// Lost returns the CP lost so far by side.
func (f *Fight) Lost(side game.Side) int {
	return f.lost[side]
}

// Upgrades returns the effective upgrades of side for this fight.
func (f *Fight) Upgrades(side game.Side) game.Upgrades {
	return *f.upgrades[side]
}

// Ships returns the live roster in firing order. The pointers stay owned by the fight.
func (f *Fight) Ships() []*Ship {
	out := make([]*Ship, len(f.order))
	for i, id := range f.order {
		out[i] = f.ships[id]
	}
	return out
}

// Run plays rounds until a side is eliminated or the round limit is hit.
func (f *Fight) Run() (Result, error) {
	f.traceStart()

	for !f.Over() && f.round <= f.maxRounds {
		if err := f.Step(); err != nil {
			return Result{}, err
		}
	}

	res := f.result()
	f.traceEnd(res)
	return res, nil
}

// Step plays a single combat round.
func (f *Fight) Step() error {
	if f.Over() {
		return nil
	}

	// Keep ships sorted by order if one switched side last round
	if f.resort {
		f.sortOrder()
		f.resort = false
	}

	for _, s := range f.ships {
		s.Fired = false
	}
	bonusSide, bonus := f.rules.FleetBonus(f.alive[game.Attacker], f.alive[game.Defender])
	f.immortalUsed = false

	// Iterate a snapshot of the order; captures only re-sort between rounds.
	pass := append([]int(nil), f.order...)
	for _, id := range pass {
		shooter := f.ships[id]
		if !shooter.Alive() || shooter.Frozen(f.round) {
			continue
		}
		if shooter.Fired {
			return faultf("%s selected to fire twice in round %d", shooter, f.round)
		}

		targetID, ok := SelectTarget(f.ships, f.order, shooter.Side)
		if !ok {
			f.trace.Info().Msgf("No more enemies found vs. %s. Fight finished!", shooter)
			break
		}
		target := f.ships[targetID]

		atk := game.ResolveAttack(game.Shot{
			Shooter:     shooter.Type,
			ShooterSize: shooter.Size,
			ShooterSide: shooter.Side,
			Own:         *shooter.Upgrades,
			Target:      target.Type,
			TargetSize:  target.Size,
			Enemy:       *target.Upgrades,
			FleetBonus:  bonus && shooter.Side == bonusSide,
			Round:       f.round,
		}, f.dice)
		f.traceRoll(shooter, target, atk)
		shooter.Fired = true

		if !atk.Hit() {
			continue
		}
		if shooter.Type.Has(game.TraitBoarding) {
			if err := f.capture(shooter, target, atk); err != nil {
				return err
			}
		} else if err := f.damage(shooter, target, atk); err != nil {
			return err
		}
	}

	f.trace.Info().
		Int("round", f.round).
		Int("attackers", f.alive[game.Attacker]).
		Int("defenders", f.alive[game.Defender]).
		Msgf("Combat round %d finished. Ships left : %d ATT vs. %d DEF",
			f.round, f.alive[game.Attacker], f.alive[game.Defender])
	f.round++
	return nil
}

// capture switches target to the captor's side.
func (f *Fight) capture(captor, target *Ship, atk game.Attack) error {
	if !target.Alive() {
		return faultf("%s captured %s which is already destroyed", captor, target)
	}
	from, to := target.Side, captor.Side
	if from == to {
		return faultf("%s captured friendly %s", captor, target)
	}

	f.traceEvent(target, captor, atk, "captured")

	f.alive[from]--
	f.alive[to]++
	// a capture is a gain for the captor, booked as a negative loss
	f.lost[from] += target.Type.Cost
	f.lost[to] -= target.Type.Cost

	target.Side = to
	target.Upgrades = f.upgrades[to]
	target.Order = f.rules.FiringOrder(target.Type, to, target.Upgrades.Tactics, f.tierless()) +
		f.rules.CapturePenalty(to)
	target.Fired = true
	target.SkipUntil = f.round + f.rules.CaptureFreeze()
	f.resort = true

	f.traceRoster()
	return nil
}

func (f *Fight) damage(shooter, target *Ship, atk game.Attack) error {
	if !target.Alive() {
		return faultf("%s fired at %s which is already destroyed", shooter, target)
	}

	side := target.Side
	hits := atk.Damage
	if target.Upgrades.Immortal && !f.immortalUsed {
		f.immortalUsed = true
		hits--
		f.trace.Info().Str("side", side.String()).Msg("** Immortal used **")
	}
	if hits <= 0 {
		return nil
	}

	target.HP -= hits
	f.traceEvent(target, shooter, atk, "hit")
	if !target.Alive() {
		target.HP = 0
		f.alive[side]--
		f.lost[side] += target.Type.Cost
		f.traceEvent(target, shooter, atk, "destroyed")
	}
	f.traceRoster()
	return nil
}

func (f *Fight) result() Result {
	res := Result{
		Attackers:    f.alive[game.Attacker],
		Defenders:    f.alive[game.Defender],
		AttackerLost: f.lost[game.Attacker],
		DefenderLost: f.lost[game.Defender],
		Rounds:       f.round - 1,
	}
	switch {
	case res.Attackers == 0:
		res.Outcome = DefenderWins
	case res.Defenders == 0:
		res.Outcome = AttackerWins
	default:
		res.Outcome = Stalemate
	}

	res.Ships = make([]Ship, len(f.order))
	for i, id := range f.order {
		res.Ships[i] = *f.ships[id]
	}
	return res
}

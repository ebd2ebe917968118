package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFleets is returned when neither side brings a ship.
	ErrEmptyFleets = errors.New("both fleets are empty")
	// ErrInternalFault marks broken round bookkeeping. It is never a combat outcome.
	ErrInternalFault = errors.New("internal consistency fault")
)

type Engine interface {
	// Run resolves the fight until one side is gone or the round limit is reached
	Run() (Result, error)
}

type Outcome int

const (
	AttackerWins Outcome = iota
	DefenderWins
	Stalemate
)

func (o Outcome) String() string {
	switch o {
	case AttackerWins:
		return "attacker"
	case DefenderWins:
		return "defender"
	case Stalemate:
		return "stalemate"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is the terminal state of one fight.
type Result struct {
	Outcome      Outcome
	Attackers    int // ships left
	Defenders    int
	AttackerLost int // CP lost, negative when captures gained more than was lost
	DefenderLost int
	Rounds       int    // rounds played
	Ships        []Ship // final roster in firing order
}

func faultf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternalFault, fmt.Sprintf(format, args...))
}

var _ Engine = (*Fight)(nil)

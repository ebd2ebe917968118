package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// DieSides is the die every attack is rolled on.
const DieSides = 10

// Roller produces uniform die results in [1, DieSides].
// Implementations need not be safe for concurrent use; each fight owns its roller.
type Roller interface {
	Roll() int
}

type seededRoller struct {
	r *rand.Rand
}

// NewSeededRoller returns a reproducible PCG-backed roller.
func NewSeededRoller(seed uint64) Roller {
	return &seededRoller{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRoller) Roll() int {
	return s.r.Intn(DieSides) + 1
}

// ScriptedRoller replays a fixed sequence of rolls, then repeats Fallback.
// Useful for replaying a recorded battle.
type ScriptedRoller struct {
	Rolls    []int
	Fallback int
	next     int
}

func (s *ScriptedRoller) Roll() int {
	if s.next < len(s.Rolls) {
		roll := s.Rolls[s.next]
		s.next++
		return roll
	}
	s.next++
	return s.Fallback
}

// Consumed reports how many rolls have been drawn so far.
func (s *ScriptedRoller) Consumed() int {
	return s.next
}

// ValidateRoll rejects values outside the die range.
func ValidateRoll(roll int) error {
	if roll < 1 || roll > DieSides {
		return fmt.Errorf("roll %d outside [1, %d]", roll, DieSides)
	}
	return nil
}

// FixedRoller always rolls the same value.
type FixedRoller int

func (f FixedRoller) Roll() int {
	return int(f)
}

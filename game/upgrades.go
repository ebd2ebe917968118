package game

import (
	"errors"
	"fmt"
)

var ErrInvalidUpgrades = errors.New("invalid upgrades")

// Upgrades is the technology and racial bundle shared by every ship of one side.
// It is a value type: copies are independent.
type Upgrades struct {
	// Combat tech
	Attack    int `yaml:"attack"`
	Defense   int `yaml:"defense"`
	Boarding  int `yaml:"boarding"`
	Security  int `yaml:"security"`
	Cloaking  int `yaml:"cloaking"`
	Fighter   int `yaml:"fighter"`
	Tactics   int `yaml:"tactics"`
	Transport int `yaml:"transport"`

	// Race bonus
	Immortal bool `yaml:"immortal"`
	Giant    bool `yaml:"giant"`
	Hivemind bool `yaml:"hivemind"`
}

// Validate rejects negative tech levels.
func (u Upgrades) Validate() error {
	levels := []struct {
		name  string
		value int
	}{
		{"attack", u.Attack},
		{"defense", u.Defense},
		{"boarding", u.Boarding},
		{"security", u.Security},
		{"cloaking", u.Cloaking},
		{"fighter", u.Fighter},
		{"tactics", u.Tactics},
		{"transport", u.Transport},
	}
	for _, l := range levels {
		if l.value < 0 {
			return fmt.Errorf("%w: %s level %d is negative", ErrInvalidUpgrades, l.name, l.value)
		}
	}
	return nil
}

func (u Upgrades) String() string {
	s := fmt.Sprintf("%d-%d", u.Attack, u.Defense)
	if u.Tactics > 0 {
		s += fmt.Sprintf(" tac%d", u.Tactics)
	}
	if u.Fighter > 0 {
		s += fmt.Sprintf(" ftr%d", u.Fighter)
	}
	if u.Boarding > 0 || u.Security > 0 {
		s += fmt.Sprintf(" brd%d/sec%d", u.Boarding, u.Security)
	}
	if u.Cloaking > 0 {
		s += fmt.Sprintf(" clk%d", u.Cloaking)
	}
	if u.Transport > 0 {
		s += fmt.Sprintf(" grd%d", u.Transport)
	}
	if u.Immortal {
		s += " immortal"
	}
	if u.Giant {
		s += " giant"
	}
	if u.Hivemind {
		s += " hivemind"
	}
	return s
}

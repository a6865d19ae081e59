package rpg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pikachuaaaa/RPGBot/internal/convert"
)

// DiceType is the parameter type for dice notation such as "2d6".
var DiceType = convert.Named("dice")

// Dice limits.
const (
	MaxDice  = 100
	MaxSides = 1000
)

// Dice is a number of dice with the same number of sides.
type Dice struct {
	Count int
	Sides int
}

func (d Dice) String() string {
	return fmt.Sprintf("%dd%d", d.Count, d.Sides)
}

// ParseDice parses "NdS", "dS" or a bare "S" (one die).
func ParseDice(text string) (Dice, error) {
	s := strings.ToLower(strings.TrimSpace(text))

	countText, sidesText, found := strings.Cut(s, "d")
	if !found {
		countText, sidesText = "1", s
	}
	if countText == "" {
		countText = "1"
	}

	count, err := strconv.Atoi(countText)
	if err != nil {
		return Dice{}, fmt.Errorf("invalid dice count %q", countText)
	}
	sides, err := strconv.Atoi(sidesText)
	if err != nil {
		return Dice{}, fmt.Errorf("invalid number of sides %q", sidesText)
	}

	if count < 1 || count > MaxDice {
		return Dice{}, fmt.Errorf("dice count must be between 1 and %d", MaxDice)
	}
	if sides < 2 || sides > MaxSides {
		return Dice{}, fmt.Errorf("sides must be between 2 and %d", MaxSides)
	}
	return Dice{Count: count, Sides: sides}, nil
}

// RegisterConverters adds the "dice" converter to r.
func RegisterConverters(r *convert.Registry) error {
	return r.Register(DiceType.Name, func(text string) (any, error) {
		d, err := ParseDice(text)
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}

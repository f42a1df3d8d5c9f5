// Package dice implements the Star Borg dice mechanics: plain die rolls with a
// modifier and the 3d6 ability score table.
package dice

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"starborg-web/internal/apperr"
)

// Bounds of the ability modifier table.
const (
	MinModifier = -3
	MaxModifier = 3
)

// Roll is the outcome of a single die roll with a modifier applied.
type Roll struct {
	Sides    int
	Modifier int
	Raw      int // Face value in [1, Sides]
	Total    int // Raw + Modifier
}

// Abilities holds the four Star Borg ability modifiers.
type Abilities struct {
	Agility   int
	Knowledge int
	Presence  int
	Strength  int
}

// Roller produces dice results from a seeded generator.
// A Roller is safe for concurrent use.
type Roller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRoller returns a Roller seeded with seed.
// Two rollers with the same seed produce the same sequence of results.
func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// RollDice rolls one die with the given number of sides and adds modifier.
// It returns an InvalidInput error when sides is not positive.
// There is no upper bound on sides.
func (r *Roller) RollDice(sides, modifier int) (Roll, error) {
	if sides <= 0 {
		return Roll{}, apperr.New(apperr.CodeInvalidInput, fmt.Sprintf("die must have a positive number of sides, got %d", sides))
	}
	raw := r.rollDie(sides)
	return Roll{
		Sides:    sides,
		Modifier: modifier,
		Raw:      raw,
		Total:    raw + modifier,
	}, nil
}

// RollAbility rolls 3d6 and converts the sum into an ability modifier.
func (r *Roller) RollAbility() int {
	sum := r.rollDie(6) + r.rollDie(6) + r.rollDie(6)
	return AbilityModifier(sum)
}

// RollScores rolls all four abilities in the order agility, knowledge, presence, strength.
func (r *Roller) RollScores() Abilities {
	return Abilities{
		Agility:   r.RollAbility(),
		Knowledge: r.RollAbility(),
		Presence:  r.RollAbility(),
		Strength:  r.RollAbility(),
	}
}

func (r *Roller) rollDie(sides int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(sides) + 1
}

// AbilityModifier maps a 3d6 sum to a modifier between -3 and +3.
//
// The buckets are not evenly sized:
//
//	 3-4  -3
//	 5-6  -2
//	 7-8  -1
//	9-12   0
//	13-14 +1
//	15-16 +2
//	17-18 +3
func AbilityModifier(sum int) int {
	switch {
	case sum <= 4:
		return -3
	case sum <= 6:
		return -2
	case sum <= 8:
		return -1
	case sum <= 12:
		return 0
	case sum <= 14:
		return 1
	case sum <= 16:
		return 2
	default:
		return 3
	}
}

// ParseSides extracts the number of sides from a dice spec like "d20" or "D6".
// Every "d" is stripped before parsing, so a bare "20" is accepted as well.
func ParseSides(spec string) (int, error) {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(spec)), "d", "")
	sides, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInvalidInput, fmt.Sprintf("invalid dice %q", spec), err)
	}
	if sides <= 0 {
		return 0, apperr.New(apperr.CodeInvalidInput, fmt.Sprintf("invalid dice %q", spec))
	}
	return sides, nil
}

// ApplyClassBonus is the hook for class specific ability adjustments.
// No class currently changes its scores, so it returns scores unchanged.
func ApplyClassBonus(class string, scores Abilities) Abilities {
	return scores
}

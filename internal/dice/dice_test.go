package dice

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starborg-web/internal/apperr"
)

func TestAbilityModifier(t *testing.T) {
	want := map[int]int{
		3: -3, 4: -3,
		5: -2, 6: -2,
		7: -1, 8: -1,
		9: 0, 10: 0, 11: 0, 12: 0,
		13: 1, 14: 1,
		15: 2, 16: 2,
		17: 3, 18: 3,
	}
	for sum := 3; sum <= 18; sum++ {
		assert.Equal(t, want[sum], AbilityModifier(sum), "sum %d", sum)
	}
}

func TestAbilityModifierIsMonotonic(t *testing.T) {
	prev := AbilityModifier(3)
	for sum := 4; sum <= 18; sum++ {
		got := AbilityModifier(sum)
		assert.GreaterOrEqual(t, got, prev, "sum %d", sum)
		prev = got
	}
}

func TestRollDice(t *testing.T) {
	t.Run("d20 without modifier", func(t *testing.T) {
		r := NewRoller(1)
		for i := 0; i < 200; i++ {
			roll, err := r.RollDice(20, 0)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, roll.Raw, 1)
			assert.LessOrEqual(t, roll.Raw, 20)
			assert.Equal(t, roll.Raw, roll.Total)
		}
	})
	t.Run("d6 with modifier", func(t *testing.T) {
		r := NewRoller(2)
		for i := 0; i < 200; i++ {
			roll, err := r.RollDice(6, 3)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, roll.Raw, 1)
			assert.LessOrEqual(t, roll.Raw, 6)
			assert.Equal(t, roll.Raw+3, roll.Total)
		}
	})
	t.Run("is deterministic for a seed", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		want := rng.Intn(12) + 1
		roll, err := NewRoller(42).RollDice(12, -1)
		require.NoError(t, err)
		assert.Equal(t, want, roll.Raw)
		assert.Equal(t, want-1, roll.Total)
	})
	t.Run("rejects non-positive sides", func(t *testing.T) {
		r := NewRoller(3)
		for _, sides := range []int{0, -6} {
			_, err := r.RollDice(sides, 0)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		}
	})
}

func TestRollAbility(t *testing.T) {
	r := NewRoller(7)
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		m := r.RollAbility()
		assert.GreaterOrEqual(t, m, MinModifier)
		assert.LessOrEqual(t, m, MaxModifier)
		seen[m] = true
	}
	assert.True(t, seen[0], "a neutral modifier should turn up in 2000 rolls")
}

func TestRollAbilityMatchesThreeDice(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	sum := rng.Intn(6) + 1 + rng.Intn(6) + 1 + rng.Intn(6) + 1
	assert.Equal(t, AbilityModifier(sum), NewRoller(99).RollAbility())
}

func TestParseSides(t *testing.T) {
	valid := map[string]int{
		"d20":  20,
		"D6":   6,
		"d4":   4,
		" d8 ": 8,
		"20":   20,
		"d100": 100,
	}
	for spec, want := range valid {
		got, err := ParseSides(spec)
		if assert.NoError(t, err, spec) {
			assert.Equal(t, want, got, spec)
		}
	}
	for _, spec := range []string{"foo", "", "d", "d0", "d-4", "d6+1", "d2.5"} {
		_, err := ParseSides(spec)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput, spec)
	}
}

func TestApplyClassBonusIsNoop(t *testing.T) {
	scores := Abilities{Agility: 1, Knowledge: -2, Presence: 3, Strength: 0}
	assert.Equal(t, scores, ApplyClassBonus("Bot", scores))
}

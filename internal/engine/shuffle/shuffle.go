// Package shuffle orders a weapon deck under the table's placement rules.
//
// The base order is a Fisher-Yates permutation driven by an rpg-toolkit dice
// roller. Bonus cards are then spread evenly through the deck, and the hard
// rules are repaired in priority order:
//
//  1. the top card is neither bonus nor special marker
//  2. no special marker in the first five cards of a deck larger than five
//  3. no two adjacent cards share a name
//  4. no two adjacent special markers
//
// Each repair is one left-to-right scan that swaps the offending card with a
// later card, wrapping to the front if needed, or failing that moves it to a
// new position. A change is only taken when it leaves every higher-priority
// rule no worse off. When the scans leave a hard violation behind, the deck is
// rebuilt card by card, placing the name with the most copies left first and
// backtracking, within a fixed budget. Last, a bounded lookahead tries to
// break up adjacent bonus cards without touching the hard rules.
//
// The result is not a uniform sample of all valid orders. When no order
// satisfies every rule (for example every card has the same name) the repaired
// order is kept and its residual violations are reported by Violations.
package shuffle

//go:generate mockgen -destination=mock/mock_shuffler.go -package=shufflemock github.com/KirkDiggler/weapon-deck-api/internal/engine/shuffle Shuffler

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"
	"github.com/KirkDiggler/weapon-deck-api/internal/errors"
)

const (
	// DefaultLookaheadWindow bounds the bonus adjacency search
	DefaultLookaheadWindow = 10

	// repairRounds bounds how many times the hard passes are repeated
	repairRounds = 3
)

// Card is what the engine needs to know about one instance
type Card struct {
	InstanceID   string
	DefinitionID string
	Name         string
	Category     weapons.Category
}

// Shuffler orders cards
type Shuffler interface {
	Shuffle(cards []Card) ([]Card, error)
}

// Config holds the dependencies for the shuffle engine
type Config struct {
	Roller          dice.Roller
	LookaheadWindow int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.LookaheadWindow < 0 {
		vb.Field("LookaheadWindow", "must not be negative")
	}

	return vb.Build()
}

type engine struct {
	roller    dice.Roller
	lookahead int
}

// New creates a shuffle engine
func New(cfg *Config) (Shuffler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	lookahead := cfg.LookaheadWindow
	if lookahead == 0 {
		lookahead = DefaultLookaheadWindow
	}

	return &engine{
		roller:    cfg.Roller,
		lookahead: lookahead,
	}, nil
}

// Shuffle returns a new ordering of cards; the input is not modified
func (e *engine) Shuffle(cards []Card) ([]Card, error) {
	out := make([]Card, len(cards))
	copy(out, cards)
	if len(out) < 2 {
		return out, nil
	}

	if err := e.permute(out); err != nil {
		return nil, err
	}

	out = spreadBonus(out)

	for round := 0; round < repairRounds; round++ {
		changed := false
		for ri := range hardRules {
			if repair(out, ri) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	if Violations(out).Hard() > 0 {
		if arranged, ok := arrange(out); ok {
			out = arranged
		}
	}

	e.minimizeBonusAdjacency(out)

	return out, nil
}

// permute is Fisher-Yates with the dice roller as the random source
func (e *engine) permute(cards []Card) error {
	for i := len(cards) - 1; i > 0; i-- {
		roll, err := e.roller.Roll(i + 1)
		if err != nil {
			return errors.Wrap(err, "failed to roll shuffle position")
		}
		j := roll - 1
		if j < 0 || j > i {
			return errors.Internalf("roller returned %d for a d%d", roll, i+1)
		}
		cards[i], cards[j] = cards[j], cards[i]
	}
	return nil
}

// spreadBonus pulls bonus cards out and puts the i-th of b back at
// floor(n*(i+0.5)/b). Consecutive targets are at least one apart since b <= n.
func spreadBonus(cards []Card) []Card {
	n := len(cards)
	var bonus, others []Card
	for _, c := range cards {
		if c.Category.IsBonus() {
			bonus = append(bonus, c)
		} else {
			others = append(others, c)
		}
	}
	b := len(bonus)
	if b == 0 || b == n {
		return cards
	}

	out := make([]Card, n)
	taken := make([]bool, n)
	for i, c := range bonus {
		pos := n * (2*i + 1) / (2 * b)
		out[pos] = c
		taken[pos] = true
	}

	k := 0
	for pos := range out {
		if taken[pos] {
			continue
		}
		out[pos] = others[k]
		k++
	}
	return out
}

// repair makes one scan fixing hardRules[ri] and reports whether it swapped
func repair(cards []Card, ri int) bool {
	r := hardRules[ri]
	n := len(cards)
	changed := false

	for i := 0; i < r.limit(n); i++ {
		if !r.violates(cards, i) {
			continue
		}

		target := i
		if r.pair {
			target = i + 1
		}

		pick := -1
		for _, j := range candidates(target, i, n) {
			ok, clean := trySwap(cards, target, j, i, ri)
			if !ok {
				continue
			}
			if clean {
				pick = j
				break
			}
			if pick < 0 {
				pick = j
			}
		}

		if pick >= 0 {
			cards[target], cards[pick] = cards[pick], cards[target]
			changed = true
			continue
		}
		if shift(cards, target, ri) {
			changed = true
		}
	}
	return changed
}

// shift moves the card at target to the first position, forward then
// wrapping, where that lowers rule ri's violations without raising any
// earlier rule's. It runs only when no single swap helps.
func shift(cards []Card, target, ri int) bool {
	n := len(cards)
	var before [4]int
	for h := 0; h <= ri; h++ {
		before[h] = hardRules[h].count(cards)
	}

	trial := make([]Card, n)
	for _, k := range candidates(target, -1, n) {
		moveCard(trial, cards, target, k)
		if hardRules[ri].count(trial) >= before[ri] {
			continue
		}
		worse := false
		for h := 0; h < ri; h++ {
			if hardRules[h].count(trial) > before[h] {
				worse = true
				break
			}
		}
		if !worse {
			copy(cards, trial)
			return true
		}
	}
	return false
}

// moveCard writes src into dst with the card at from taken out and put back
// at index to
func moveCard(dst, src []Card, from, to int) {
	c := src[from]
	k := 0
	for i := range src {
		if i == from {
			continue
		}
		if k == to {
			dst[k] = c
			k++
		}
		dst[k] = src[i]
		k++
	}
	if k == to {
		dst[k] = c
	}
}

// candidates lists swap partners for target: forward first, then wrapping
// to the front. at is the scan position, which is never a partner.
func candidates(target, at, n int) []int {
	out := make([]int, 0, n)
	for j := target + 1; j < n; j++ {
		out = append(out, j)
	}
	for j := 0; j < target; j++ {
		if j != at {
			out = append(out, j)
		}
	}
	return out
}

// trySwap evaluates swapping a and b for rule ri at scan position at. The swap
// is acceptable when it fixes the violation at at, strictly lowers ri's local
// count and leaves every earlier rule no worse. It is clean when no ri
// violation remains near either position.
func trySwap(cards []Card, a, b, at, ri int) (ok, clean bool) {
	var before, after [4]int
	for h := 0; h <= ri; h++ {
		before[h] = hardRules[h].around(cards, a, b)
	}

	cards[a], cards[b] = cards[b], cards[a]
	fixed := !hardRules[ri].violates(cards, at)
	for h := 0; h <= ri; h++ {
		after[h] = hardRules[h].around(cards, a, b)
	}
	cards[a], cards[b] = cards[b], cards[a]

	if !fixed || after[ri] >= before[ri] {
		return false, false
	}
	for h := 0; h < ri; h++ {
		if after[h] > before[h] {
			return false, false
		}
	}
	return true, after[ri] == 0
}

// minimizeBonusAdjacency swaps the second card of an adjacent bonus pair with
// a non-bonus card within the lookahead window when that keeps every hard rule
// intact. Pairs with no such partner are left alone.
func (e *engine) minimizeBonusAdjacency(cards []Card) {
	n := len(cards)
	for i := 0; i < n-1; i++ {
		if !ruleBonus.violates(cards, i) {
			continue
		}
		target := i + 1
		for j := target + 1; j < n && j <= target+e.lookahead; j++ {
			if cards[j].Category.IsBonus() {
				continue
			}
			if softSwapHelps(cards, target, j) {
				cards[target], cards[j] = cards[j], cards[target]
				break
			}
		}
	}
}

func softSwapHelps(cards []Card, a, b int) bool {
	var before [4]int
	for h, r := range hardRules {
		before[h] = r.around(cards, a, b)
	}
	bonusBefore := ruleBonus.around(cards, a, b)

	cards[a], cards[b] = cards[b], cards[a]
	defer func() { cards[a], cards[b] = cards[b], cards[a] }()

	for h, r := range hardRules {
		if r.around(cards, a, b) > before[h] {
			return false
		}
	}
	return ruleBonus.around(cards, a, b) < bonusBefore
}

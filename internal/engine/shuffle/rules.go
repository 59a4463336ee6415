package shuffle

import "github.com/KirkDiggler/weapon-deck-api/internal/entities/weapons"

// headLength is how many top cards must be free of special markers when the
// deck is larger than headLength
const headLength = 5

// rule is one ordering constraint. Position rules judge a single index; pair
// rules judge the pair starting at an index.
type rule struct {
	name     string
	pair     bool
	violates func(cards []Card, i int) bool
}

var (
	ruleTop = rule{
		name: "top_card",
		violates: func(cards []Card, i int) bool {
			return i == 0 && (cards[0].Category.IsBonus() || cards[0].Category.IsSpecialMarker())
		},
	}
	ruleHead = rule{
		name: "special_in_head",
		violates: func(cards []Card, i int) bool {
			return len(cards) > headLength && i < headLength && cards[i].Category.IsSpecialMarker()
		},
	}
	ruleSameName = rule{
		name: "adjacent_same_name",
		pair: true,
		violates: func(cards []Card, i int) bool {
			return cards[i].Name == cards[i+1].Name
		},
	}
	ruleSpecial = rule{
		name: "adjacent_special",
		pair: true,
		violates: func(cards []Card, i int) bool {
			return cards[i].Category.IsSpecialMarker() && cards[i+1].Category.IsSpecialMarker()
		},
	}
	ruleBonus = rule{
		name: "adjacent_bonus",
		pair: true,
		violates: func(cards []Card, i int) bool {
			return cards[i].Category.IsBonus() && cards[i+1].Category.IsBonus()
		},
	}
)

// hardRules are fixed in this order; a later pass never undoes an earlier one
var hardRules = []rule{ruleTop, ruleHead, ruleSameName, ruleSpecial}

func (r rule) limit(n int) int {
	if r.pair {
		return n - 1
	}
	return n
}

// count returns the rule's violations over the whole deck
func (r rule) count(cards []Card) int {
	total := 0
	for i := 0; i < r.limit(len(cards)); i++ {
		if r.violates(cards, i) {
			total++
		}
	}
	return total
}

// around counts violations touching positions a and b, the only ones a swap
// of a and b can change
func (r rule) around(cards []Card, a, b int) int {
	n := r.limit(len(cards))
	var idx [4]int
	k := 0
	if r.pair {
		idx = [4]int{a - 1, a, b - 1, b}
		k = 4
	} else {
		idx[0], idx[1] = a, b
		k = 2
	}

	total := 0
	for x := 0; x < k; x++ {
		i := idx[x]
		if i < 0 || i >= n || seenBefore(idx[:x], i) {
			continue
		}
		if r.violates(cards, i) {
			total++
		}
	}
	return total
}

func seenBefore(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Report counts residual rule violations in an ordered deck
type Report struct {
	TopCard          int `json:"top_card"`
	SpecialInHead    int `json:"special_in_head"`
	AdjacentSameName int `json:"adjacent_same_name"`
	AdjacentSpecial  int `json:"adjacent_special"`
	AdjacentBonus    int `json:"adjacent_bonus"`
}

// Hard is the number of hard-rule violations
func (r Report) Hard() int {
	return r.TopCard + r.SpecialInHead + r.AdjacentSameName + r.AdjacentSpecial
}

// Violations reports how far an ordering is from satisfying every rule
func Violations(cards []Card) Report {
	return Report{
		TopCard:          ruleTop.count(cards),
		SpecialInHead:    ruleHead.count(cards),
		AdjacentSameName: ruleSameName.count(cards),
		AdjacentSpecial:  ruleSpecial.count(cards),
		AdjacentBonus:    ruleBonus.count(cards),
	}
}

// SingleName reports whether every card shares one definition name, the one
// case where adjacent duplicates cannot be avoided at all
func SingleName(cards []Card) bool {
	for i := 1; i < len(cards); i++ {
		if cards[i].Name != cards[0].Name {
			return false
		}
	}
	return true
}

// CardFromDefinition builds a shuffle card for an instance
func CardFromDefinition(instanceID string, def *weapons.CardDefinition) Card {
	return Card{
		InstanceID:   instanceID,
		DefinitionID: def.ID,
		Name:         def.Name,
		Category:     def.Category,
	}
}

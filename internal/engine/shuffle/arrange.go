package shuffle

import "sort"

// searchBudget caps how many placements arrange may try before giving up
const searchBudget = 20000

// class is every card sharing a name and category; they are interchangeable
// as far as the rules go
type class struct {
	name    string
	bonus   bool
	special bool
	cards   []Card
	next    int
}

func (c *class) left() int { return len(c.cards) - c.next }

// arranger builds an order one position at a time. At each position it tries
// the name with the most copies left first and backtracks on dead ends.
type arranger struct {
	n       int
	classes []*class
	names   map[string]int
	special int
	out     []Card
	budget  int
}

// arrange looks for an order with no hard rule violation. Classes keep the
// order they first appear in cards, so a shuffled input gives a shuffled
// result. It reports false when the budget runs out or no such order exists.
func arrange(cards []Card) ([]Card, bool) {
	a := &arranger{
		n:      len(cards),
		names:  make(map[string]int),
		out:    make([]Card, len(cards)),
		budget: searchBudget,
	}

	type key struct {
		name     string
		category string
	}
	index := make(map[key]*class)
	for _, c := range cards {
		k := key{c.Name, string(c.Category)}
		cl, ok := index[k]
		if !ok {
			cl = &class{
				name:    c.Name,
				bonus:   c.Category.IsBonus(),
				special: c.Category.IsSpecialMarker(),
			}
			index[k] = cl
			a.classes = append(a.classes, cl)
		}
		cl.cards = append(cl.cards, c)
		a.names[c.Name]++
		if cl.special {
			a.special++
		}
	}

	if !a.place(0) {
		return nil, false
	}
	return a.out, true
}

func (a *arranger) place(pos int) bool {
	if pos == a.n {
		return true
	}
	if a.budget <= 0 || !a.feasible(pos) {
		return false
	}
	a.budget--

	for _, cl := range a.order(pos) {
		if !a.allowed(pos, cl) {
			continue
		}
		a.take(cl, pos)
		if a.place(pos + 1) {
			return true
		}
		a.putBack(cl)
	}
	return false
}

func (a *arranger) take(cl *class, pos int) {
	a.out[pos] = cl.cards[cl.next]
	cl.next++
	a.names[cl.name]--
	if cl.special {
		a.special--
	}
}

func (a *arranger) putBack(cl *class) {
	cl.next--
	a.names[cl.name]++
	if cl.special {
		a.special++
	}
}

// allowed checks the hard rules that involve pos and the card before it
func (a *arranger) allowed(pos int, cl *class) bool {
	if pos == 0 && (cl.bonus || cl.special) {
		return false
	}
	if cl.special && a.n > headLength && pos < headLength {
		return false
	}
	if pos > 0 {
		prev := a.out[pos-1]
		if prev.Name == cl.name {
			return false
		}
		if cl.special && prev.Category.IsSpecialMarker() {
			return false
		}
	}
	return true
}

// feasible prunes states that can no longer be completed: a name needs a gap
// between each of its copies, and so do special markers, which also cannot
// sit on top or in the head.
func (a *arranger) feasible(pos int) bool {
	left := a.n - pos
	var prev *Card
	if pos > 0 {
		prev = &a.out[pos-1]
	}

	for name, m := range a.names {
		limit := (left + 1) / 2
		if prev != nil && prev.Name == name {
			limit = left / 2
		}
		if m > limit {
			return false
		}
	}

	if a.special == 0 {
		return true
	}
	start := pos
	if start == 0 {
		start = 1
	}
	if a.n > headLength && start < headLength {
		start = headLength
	}
	avail := a.n - start
	limit := (avail + 1) / 2
	if start == pos && prev != nil && prev.Category.IsSpecialMarker() {
		limit = avail / 2
	}
	return a.special <= limit
}

// order ranks the classes still holding cards: most copies of the name left
// first, then a non-bonus after a bonus, then first appearance
func (a *arranger) order(pos int) []*class {
	prevBonus := pos > 0 && a.out[pos-1].Category.IsBonus()

	out := make([]*class, 0, len(a.classes))
	for _, cl := range a.classes {
		if cl.left() > 0 {
			out = append(out, cl)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := a.names[out[i].name], a.names[out[j].name]
		if ni != nj {
			return ni > nj
		}
		if prevBonus && out[i].bonus != out[j].bonus {
			return !out[i].bonus
		}
		return false
	})
	return out
}

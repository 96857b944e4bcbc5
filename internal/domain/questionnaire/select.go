package questionnaire

import "fmt"

var ErrEmptyVoteList = fmt.Errorf("no questionnaire votes to select from")

// Tally counts votes per recipe name and remembers the order in which each
// name was first seen.
type Tally struct {
	order  []string
	counts map[string]int
}

// NewTally folds votes into a tally.
func NewTally(votes []string) *Tally {
	t := &Tally{counts: make(map[string]int, len(votes))}
	for _, v := range votes {
		t.Add(v)
	}
	return t
}

// Add records one vote.
func (t *Tally) Add(name string) {
	if _, seen := t.counts[name]; !seen {
		t.order = append(t.order, name)
	}
	t.counts[name]++
}

// Count returns the votes recorded for name.
func (t *Tally) Count(name string) int {
	return t.counts[name]
}

// Names returns the distinct names in first-seen order.
func (t *Tally) Names() []string {
	return append([]string(nil), t.order...)
}

// Winner returns the name with the strictly greatest count; among tied names
// the one seen first wins.
func (t *Tally) Winner() (string, error) {
	if len(t.order) == 0 {
		return "", ErrEmptyVoteList
	}
	best := t.order[0]
	for _, name := range t.order[1:] {
		if t.counts[name] > t.counts[best] {
			best = name
		}
	}
	return best, nil
}

// Select picks the recommended recipe from the ordered list of votes.
func Select(votes []string) (string, error) {
	return NewTally(votes).Winner()
}

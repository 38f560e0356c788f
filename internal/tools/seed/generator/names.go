package generator

import (
	"strings"

	"golang.org/x/text/cases"
)

// nameRegistry tallies display names during a run. Names that differ only in
// case or surrounding space count as the same name.
type nameRegistry struct {
	fold   cases.Caser
	counts map[string]int
}

func newNameRegistry() *nameRegistry {
	return &nameRegistry{fold: cases.Fold(), counts: map[string]int{}}
}

// observe returns the tally for name after counting it, or 0 for a blank name.
func (r *nameRegistry) observe(name string) int {
	key := r.fold.String(strings.TrimSpace(name))
	if key == "" {
		return 0
	}
	r.counts[key]++
	return r.counts[key]
}

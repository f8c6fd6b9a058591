package survivor

import (
	"sort"
	"strings"

	"github.com/vellumlabs/vellum/internal/class"
	"github.com/vellumlabs/vellum/internal/compat"
	"github.com/vellumlabs/vellum/internal/morph"
)

// Profile is the legality-relevant shape of one class: the middles of its
// member tokens plus whether any member is atomic (middle-less). Profiles
// are derived once per run from the frozen registry and the decomposition
// table.
type Profile struct {
	ClassID string
	Middles map[string]bool
	Atomic  bool
}

// Profiles derives the per-class profiles in stable class order. decomps
// must cover every member token; members whose decomposition is unresolved
// contribute no middle.
func Profiles(reg *class.Registry, decomps map[string]morph.Decomposition) []Profile {
	classes := reg.Classes()
	out := make([]Profile, 0, len(classes))
	for _, c := range classes {
		p := Profile{ClassID: c.ID, Middles: make(map[string]bool)}
		for _, m := range c.Members {
			d, ok := decomps[m]
			if !ok || !d.Resolved() {
				continue
			}
			if d.EmptyMiddle() {
				p.Atomic = true
				continue
			}
			p.Middles[d.Middle] = true
		}
		out = append(out, p)
	}
	return out
}

// Set is the survivor set of one record: the class IDs that remain legal,
// sorted.
type Set struct {
	RecordID string   `json:"record_id"`
	Classes  []string `json:"classes"`
}

// Contains reports whether a class survived.
func (s Set) Contains(classID string) bool {
	i := sort.SearchStrings(s.Classes, classID)
	return i < len(s.Classes) && s.Classes[i] == classID
}

// Pattern returns a canonical key for the survivor pattern, used to group
// records (or classes) sharing identical legality.
func (s Set) Pattern() string { return strings.Join(s.Classes, "|") }

// Compute returns the survivor set for one record's legal vocabulary.
// Pure function: identical inputs always yield the identical set.
func Compute(recordID string, vocab compat.Vocabulary, profiles []Profile) Set {
	s := Set{RecordID: recordID}
	for _, p := range profiles {
		if p.Atomic {
			s.Classes = append(s.Classes, p.ClassID)
			continue
		}
		for m := range p.Middles {
			if vocab[m] {
				s.Classes = append(s.Classes, p.ClassID)
				break
			}
		}
	}
	sort.Strings(s.Classes)
	return s
}

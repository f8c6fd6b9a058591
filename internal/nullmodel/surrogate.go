package nullmodel

import (
	"math/rand"
	"sort"
)

// Generator produces one randomized surrogate dataset per call. Generate
// must verify its own preservation invariant and return a
// *SurrogateGenerationError if the surrogate does not satisfy it.
type Generator[T any] interface {
	// Name identifies the surrogate scheme in diagnostics.
	Name() string

	// Generate builds one surrogate from the given deterministic source.
	Generate(rng *rand.Rand) (T, error)
}

// SequenceShuffle generates frequency-matched shuffles of a token sequence:
// the surrogate is a uniform permutation, so every token keeps its exact
// corpus frequency while all ordering structure is destroyed.
type SequenceShuffle struct {
	Sequence []string
}

// Name implements Generator.
func (s *SequenceShuffle) Name() string { return "sequence_shuffle" }

// Generate implements Generator. The frequency-preservation invariant is
// checked on every surrogate; a violation aborts the test loudly.
func (s *SequenceShuffle) Generate(rng *rand.Rand) ([]string, error) {
	out := make([]string, len(s.Sequence))
	copy(out, s.Sequence)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if err := checkFrequencies(s.Sequence, out); err != nil {
		return nil, err
	}
	return out, nil
}

func checkFrequencies(original, surrogate []string) error {
	if len(original) != len(surrogate) {
		return &SurrogateGenerationError{
			Scheme:    "sequence_shuffle",
			Invariant: "length",
			Detail:    "surrogate length differs from original",
		}
	}
	counts := make(map[string]int, len(original))
	for _, t := range original {
		counts[t]++
	}
	for _, t := range surrogate {
		counts[t]--
	}
	for t, c := range counts {
		if c != 0 {
			return &SurrogateGenerationError{
				Scheme:    "sequence_shuffle",
				Invariant: "frequency_match",
				Detail:    "token " + t + " frequency not preserved",
			}
		}
	}
	return nil
}

// Association links one record to its entity set.
type Association struct {
	RecordID string
	Entities []string
}

// AssociationPermutation generates surrogates that permute record-entity
// associations: the pooled entity multiset is reshuffled across records
// while every record keeps its original cardinality.
type AssociationPermutation struct {
	Associations []Association
}

// Name implements Generator.
func (a *AssociationPermutation) Name() string { return "association_permutation" }

// Generate implements Generator.
func (a *AssociationPermutation) Generate(rng *rand.Rand) ([]Association, error) {
	var pool []string
	for _, as := range a.Associations {
		pool = append(pool, as.Entities...)
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	out := make([]Association, len(a.Associations))
	next := 0
	for i, as := range a.Associations {
		out[i] = Association{
			RecordID: as.RecordID,
			Entities: pool[next : next+len(as.Entities)],
		}
		next += len(as.Entities)
	}
	if err := a.checkInvariant(out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkInvariant verifies record cardinalities and the pooled entity
// multiset are both preserved.
func (a *AssociationPermutation) checkInvariant(out []Association) error {
	if len(out) != len(a.Associations) {
		return &SurrogateGenerationError{
			Scheme:    a.Name(),
			Invariant: "record_count",
			Detail:    "surrogate record count differs",
		}
	}
	var orig, surr []string
	for i := range a.Associations {
		if len(out[i].Entities) != len(a.Associations[i].Entities) {
			return &SurrogateGenerationError{
				Scheme:    a.Name(),
				Invariant: "record_cardinality",
				Detail:    "record " + out[i].RecordID + " cardinality not preserved",
			}
		}
		orig = append(orig, a.Associations[i].Entities...)
		surr = append(surr, out[i].Entities...)
	}
	sort.Strings(orig)
	sort.Strings(surr)
	for i := range orig {
		if orig[i] != surr[i] {
			return &SurrogateGenerationError{
				Scheme:    a.Name(),
				Invariant: "entity_multiset",
				Detail:    "pooled entity multiset not preserved",
			}
		}
	}
	return nil
}

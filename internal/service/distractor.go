package service

import (
	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/random"
)

// DistractorSelector picks wrong choices for a question, preferring species
// of the same family as the correct answer.
type DistractorSelector struct {
	names    []string
	byFamily map[string][]string
	rnd      random.Source
}

// NewDistractorSelector builds a selector over pool. Subspecies and
// duplicate names are skipped; pool order is kept.
func NewDistractorSelector(pool []domain.Species, rnd random.Source) *DistractorSelector {
	d := &DistractorSelector{
		byFamily: make(map[string][]string),
		rnd:      rnd,
	}
	seen := make(map[string]struct{}, len(pool))
	for _, sp := range pool {
		if sp.IsSubspecies || sp.LocalName == "" {
			continue
		}
		if _, dup := seen[sp.LocalName]; dup {
			continue
		}
		seen[sp.LocalName] = struct{}{}
		d.names = append(d.names, sp.LocalName)
		d.byFamily[sp.FamilyLocalized] = append(d.byFamily[sp.FamilyLocalized], sp.LocalName)
	}
	return d
}

// PoolSize returns the number of candidate names.
func (d *DistractorSelector) PoolSize() int {
	return len(d.names)
}

// Choose returns up to count names, never including correct. Same-family
// names come first; a short family is topped up with a uniform sample of the
// rest of the pool, and a large family is sampled down to exactly count.
func (d *DistractorSelector) Choose(correct, familyLocalized string, count int) []string {
	if count <= 0 {
		return []string{}
	}

	sameFamily := make([]string, 0, len(d.byFamily[familyLocalized]))
	inFamily := make(map[string]struct{})
	for _, n := range d.byFamily[familyLocalized] {
		if n == correct {
			continue
		}
		sameFamily = append(sameFamily, n)
		inFamily[n] = struct{}{}
	}

	if len(sameFamily) >= count {
		return random.Sample(d.rnd, sameFamily, count)
	}

	others := make([]string, 0, len(d.names))
	for _, n := range d.names {
		if n == correct {
			continue
		}
		if _, ok := inFamily[n]; ok {
			continue
		}
		others = append(others, n)
	}
	return append(sameFamily, random.Sample(d.rnd, others, count-len(sameFamily))...)
}

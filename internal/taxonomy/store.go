// Package taxonomy holds the reference species table in memory. The table is
// loaded once at startup and never mutated afterwards, so a Store is safe for
// concurrent readers without locking.
package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"birdcall-quiz/internal/domain"
)

var (
	// ErrNotFound is returned by Lookup for unknown local names.
	ErrNotFound = errors.New("species not found")

	// ErrDataUnavailable is returned by Load when no usable source exists.
	ErrDataUnavailable = errors.New("taxonomy data unavailable")
)

// Source yields species records in catalog order.
type Source interface {
	LoadSpecies(ctx context.Context) ([]domain.Species, error)
}

// Store is an immutable, indexed view over the species table.
type Store struct {
	records []domain.Species

	// first index of each local name, per rank
	speciesIdx map[string]int
	anyIdx     map[string]int
}

// Load reads every record from src. An error or an empty table is reported
// as ErrDataUnavailable.
func Load(ctx context.Context, src Source) (*Store, error) {
	records, err := src.LoadSpecies(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: source contains no records", ErrDataUnavailable)
	}
	return NewStore(records), nil
}

// NewStore indexes records, keeping their order.
func NewStore(records []domain.Species) *Store {
	s := &Store{
		records:    make([]domain.Species, len(records)),
		speciesIdx: make(map[string]int, len(records)),
		anyIdx:     make(map[string]int, len(records)),
	}
	copy(s.records, records)

	for i, r := range s.records {
		if _, ok := s.anyIdx[r.LocalName]; !ok {
			s.anyIdx[r.LocalName] = i
		}
		if r.IsSubspecies {
			continue
		}
		if _, ok := s.speciesIdx[r.LocalName]; !ok {
			s.speciesIdx[r.LocalName] = i
		}
	}
	return s
}

// Len returns the number of records, subspecies included.
func (s *Store) Len() int {
	return len(s.records)
}

// Lookup finds a record by local name. Species-rank records always win; a
// subspecies-rank record is only returned when includeSubspecies is set and
// no species-rank record carries the name.
func (s *Store) Lookup(localName string, includeSubspecies bool) (*domain.Species, error) {
	if i, ok := s.speciesIdx[localName]; ok {
		rec := s.records[i]
		return &rec, nil
	}
	if includeSubspecies {
		if i, ok := s.anyIdx[localName]; ok {
			rec := s.records[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, localName)
}

// SpeciesInFamily lists non-subspecies names of a family in catalog order,
// leaving out exclude.
func (s *Store) SpeciesInFamily(familyLocalized, exclude string) []string {
	var names []string
	for _, r := range s.records {
		if r.IsSubspecies || r.FamilyLocalized != familyLocalized || r.LocalName == exclude {
			continue
		}
		names = append(names, r.LocalName)
	}
	return names
}

// Species returns the species-rank records in catalog order.
func (s *Store) Species() []domain.Species {
	out := make([]domain.Species, 0, len(s.speciesIdx))
	for _, r := range s.records {
		if !r.IsSubspecies {
			out = append(out, r)
		}
	}
	return out
}

// Families counts species-rank records per family, in order of first appearance.
func (s *Store) Families() []domain.Family {
	var families []domain.Family
	pos := make(map[[2]string]int)
	for _, r := range s.records {
		if r.IsSubspecies {
			continue
		}
		key := [2]string{r.Family, r.FamilyLocalized}
		i, ok := pos[key]
		if !ok {
			i = len(families)
			pos[key] = i
			families = append(families, domain.Family{Family: r.Family, FamilyLocalized: r.FamilyLocalized})
		}
		families[i].SpeciesCount++
	}
	return families
}

// Stats summarizes the table.
type Stats struct {
	Records     int
	Species     int
	Subspecies  int
	Families    int
	Orders      int
	TopFamilies []domain.Family
}

// Stats computes table counts and the topN largest families by species count.
func (s *Store) Stats(topN int) Stats {
	st := Stats{Records: len(s.records)}
	orders := make(map[string]struct{})
	for _, r := range s.records {
		if r.IsSubspecies {
			st.Subspecies++
			continue
		}
		st.Species++
		orders[r.OrderLocalized] = struct{}{}
	}
	st.Orders = len(orders)

	families := s.Families()
	st.Families = len(families)
	sort.SliceStable(families, func(i, j int) bool {
		return families[i].SpeciesCount > families[j].SpeciesCount
	})
	if topN < len(families) {
		families = families[:topN]
	}
	st.TopFamilies = families
	return st
}

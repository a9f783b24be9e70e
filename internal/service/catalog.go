package service

import (
	"context"
	"errors"

	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/dto"
	"birdcall-quiz/internal/logger"
	"birdcall-quiz/internal/taxonomy"

	"go.uber.org/zap"
)

// DefaultSearchLimit is used when a search request carries no limit.
const DefaultSearchLimit = 5

// CatalogService answers read-only taxonomy queries.
type CatalogService interface {
	ListSpecies(ctx context.Context) (*dto.SpeciesListResponse, error)
	ListFamilies(ctx context.Context) (*dto.FamilyListResponse, error)
	GetBird(ctx context.Context, name string) (*dto.BirdDetailResponse, error)
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.BirdInfoResponse, error)
}

type catalogService struct {
	store  *taxonomy.Store
	source domain.RecordingSource
}

// NewCatalogService creates a catalog over store. A nil store makes every
// call fail with DATA_UNAVAILABLE.
func NewCatalogService(store *taxonomy.Store, source domain.RecordingSource) CatalogService {
	return &catalogService{store: store, source: source}
}

func (s *catalogService) ListSpecies(_ context.Context) (*dto.SpeciesListResponse, error) {
	if s.store == nil {
		return nil, domain.NewDataUnavailableError()
	}
	species := s.store.Species()
	out := make([]dto.SpeciesSummary, 0, len(species))
	for _, sp := range species {
		out = append(out, dto.SpeciesSummary{
			JapaneseName:   sp.LocalName,
			ScientificName: sp.ScientificName,
			FamilyJP:       sp.FamilyLocalized,
			OrderJP:        sp.OrderLocalized,
		})
	}
	return &dto.SpeciesListResponse{Species: out, Count: len(out)}, nil
}

func (s *catalogService) ListFamilies(_ context.Context) (*dto.FamilyListResponse, error) {
	if s.store == nil {
		return nil, domain.NewDataUnavailableError()
	}
	families := s.store.Families()
	out := make([]dto.FamilySummary, 0, len(families))
	for _, f := range families {
		out = append(out, dto.FamilySummary{
			Family:       f.Family,
			FamilyJP:     f.FamilyLocalized,
			SpeciesCount: f.SpeciesCount,
		})
	}
	return &dto.FamilyListResponse{Families: out, Count: len(out)}, nil
}

func (s *catalogService) lookup(name string) (*domain.Species, error) {
	if s.store == nil {
		return nil, domain.NewDataUnavailableError()
	}
	sp, err := s.store.Lookup(name, true)
	if err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			return nil, domain.NewSpeciesNotFoundError(name)
		}
		return nil, domain.NewInternalError("Failed to look up species", err)
	}
	return sp, nil
}

// GetBird returns the taxonomy record for name. Subspecies match only when
// no species carries the name.
func (s *catalogService) GetBird(_ context.Context, name string) (*dto.BirdDetailResponse, error) {
	sp, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return &dto.BirdDetailResponse{
		JapaneseName:   sp.LocalName,
		ScientificName: sp.ScientificName,
		Family:         sp.Family,
		FamilyJP:       sp.FamilyLocalized,
		Order:          sp.Order,
		OrderJP:        sp.OrderLocalized,
		Genus:          sp.Genus,
		GenusJP:        sp.GenusLocalized,
	}, nil
}

// Search returns taxonomy info plus up to limit recordings from the
// configured recording source.
func (s *catalogService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.BirdInfoResponse, error) {
	sp, err := s.lookup(req.SpeciesName)
	if err != nil {
		return nil, err
	}

	limit := DefaultSearchLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	recs := s.source.Fetch(ctx, sp, req.VoiceType, limit)
	links := make([]dto.AudioLink, 0, len(recs))
	for _, r := range recs {
		links = append(links, dto.AudioLink{
			Source:   r.Source,
			URL:      r.AudioURL,
			Type:     r.CallType,
			Location: r.Location,
		})
	}
	logger.Get().Debug("Search finished",
		zap.String("species", sp.LocalName),
		zap.Int("recordings", len(links)))

	return &dto.BirdInfoResponse{
		SpeciesName:    req.SpeciesName,
		ScientificName: sp.ScientificName,
		Family:         sp.FamilyLocalized,
		Order:          sp.OrderLocalized,
		AudioURLs:      links,
	}, nil
}

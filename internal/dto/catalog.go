package dto

type SpeciesSummary struct {
	JapaneseName   string `json:"japanese_name"`
	ScientificName string `json:"scientific_name"`
	FamilyJP       string `json:"family_jp"`
	OrderJP        string `json:"order_jp"`
}

type SpeciesListResponse struct {
	Species []SpeciesSummary `json:"species"`
	Count   int              `json:"count"`
}

type FamilySummary struct {
	Family       string `json:"family"`
	FamilyJP     string `json:"family_jp"`
	SpeciesCount int    `json:"species_count"`
}

type FamilyListResponse struct {
	Families []FamilySummary `json:"families"`
	Count    int             `json:"count"`
}

// BirdDetailResponse is the full taxonomy record of one bird.
type BirdDetailResponse struct {
	JapaneseName   string `json:"japanese_name"`
	ScientificName string `json:"scientific_name"`
	Family         string `json:"family"`
	FamilyJP       string `json:"family_jp"`
	Order          string `json:"order"`
	OrderJP        string `json:"order_jp"`
	Genus          string `json:"genus"`
	GenusJP        string `json:"genus_jp"`
}

// SearchRequest is the body of POST /api/search. Limit defaults to 5.
// @Description Bird search parameters
type SearchRequest struct {
	SpeciesName string `json:"species_name"`
	VoiceType   string `json:"voice_type,omitempty"`
	Limit       *int   `json:"limit,omitempty"`
}

type AudioLink struct {
	Source   string `json:"source"`
	URL      string `json:"url"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

// BirdInfoResponse is the search result.
type BirdInfoResponse struct {
	SpeciesName    string      `json:"species_name"`
	ScientificName string      `json:"scientific_name,omitempty"`
	Family         string      `json:"family,omitempty"`
	Order          string      `json:"order,omitempty"`
	AudioURLs      []AudioLink `json:"audio_urls"`
}

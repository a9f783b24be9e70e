package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"birdcall-quiz/internal/domain"
)

// Record is the on-disk shape of one row of the pre-parsed checklist
// (mokuroku_parsed.json).
type Record struct {
	Number         string `json:"number"`
	ScientificName string `json:"scientific_name"`
	JapaneseName   string `json:"japanese_name"`
	Genus          string `json:"genus"`
	GenusJP        string `json:"genus_jp"`
	Family         string `json:"family"`
	FamilyJP       string `json:"family_jp"`
	Order          string `json:"order"`
	OrderJP        string `json:"order_jp"`
	IsSubspecies   bool   `json:"is_subspecies"`
}

// ToDomain converts the record.
func (r Record) ToDomain() domain.Species {
	return domain.Species{
		LocalName:       r.JapaneseName,
		ScientificName:  r.ScientificName,
		Family:          r.Family,
		FamilyLocalized: r.FamilyJP,
		Order:           r.Order,
		OrderLocalized:  r.OrderJP,
		Genus:           r.Genus,
		GenusLocalized:  r.GenusJP,
		IsSubspecies:    r.IsSubspecies,
	}
}

// JSONSource reads the table from a JSON array of Records.
type JSONSource struct {
	Path string
}

// ReadRecords decodes the raw rows, keeping file order.
func (j JSONSource) ReadRecords() ([]Record, error) {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", j.Path, err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode taxonomy file %s: %w", j.Path, err)
	}
	return records, nil
}

// LoadSpecies implements Source.
func (j JSONSource) LoadSpecies(_ context.Context) ([]domain.Species, error) {
	records, err := j.ReadRecords()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Species, 0, len(records))
	for _, r := range records {
		if r.JapaneseName == "" {
			continue
		}
		out = append(out, r.ToDomain())
	}
	return out, nil
}

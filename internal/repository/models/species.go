package models

import "birdcall-quiz/internal/domain"

// Species maps one row of the species table.
type Species struct {
	Seq             int64  `db:"seq"`
	Number          string `db:"number"`
	LocalName       string `db:"local_name"`
	ScientificName  string `db:"scientific_name"`
	Family          string `db:"family"`
	FamilyLocalized string `db:"family_localized"`
	OrderName       string `db:"order_name"`
	OrderLocalized  string `db:"order_localized"`
	Genus           string `db:"genus"`
	GenusLocalized  string `db:"genus_localized"`
	IsSubspecies    bool   `db:"is_subspecies"`
}

// ToDomain converts the row.
func (s *Species) ToDomain() domain.Species {
	return domain.Species{
		LocalName:       s.LocalName,
		ScientificName:  s.ScientificName,
		Family:          s.Family,
		FamilyLocalized: s.FamilyLocalized,
		Order:           s.OrderName,
		OrderLocalized:  s.OrderLocalized,
		Genus:           s.Genus,
		GenusLocalized:  s.GenusLocalized,
		IsSubspecies:    s.IsSubspecies,
	}
}

// FromDomain builds a row; seq fixes the catalog order.
func FromDomain(seq int64, number string, sp domain.Species) Species {
	return Species{
		Seq:             seq,
		Number:          number,
		LocalName:       sp.LocalName,
		ScientificName:  sp.ScientificName,
		Family:          sp.Family,
		FamilyLocalized: sp.FamilyLocalized,
		OrderName:       sp.Order,
		OrderLocalized:  sp.OrderLocalized,
		Genus:           sp.Genus,
		GenusLocalized:  sp.GenusLocalized,
		IsSubspecies:    sp.IsSubspecies,
	}
}

package domain

import "strings"

// Species is one row of the reference taxonomy. Records are immutable once the
// taxonomy has been loaded.
type Species struct {
	LocalName       string // common (Japanese) name, unique within a rank
	ScientificName  string // "Genus species" or "Genus species subspecies"
	Family          string
	FamilyLocalized string
	Order           string
	OrderLocalized  string
	Genus           string
	GenusLocalized  string
	IsSubspecies    bool
}

// GenusAndEpithet splits the scientific name into its genus and species tokens.
// ok is false when the name carries fewer than two tokens.
func (s *Species) GenusAndEpithet() (genus, epithet string, ok bool) {
	parts := strings.Fields(s.ScientificName)
	if len(parts) < 2 {
		return strings.TrimSpace(s.ScientificName), "", false
	}
	return parts[0], parts[1], true
}

// Family groups species sharing a family for catalog listings.
type Family struct {
	Family          string
	FamilyLocalized string
	SpeciesCount    int
}

// DefaultTargetSpecies is the curated allow-list of species that may appear as
// quiz answers: common birds of Japanese parks, rivers and towns.
var DefaultTargetSpecies = []string{
	"カイツブリ", "カンムリカイツブリ", "カワウ", "アオサギ", "ダイサギ", "ミサゴ", "トビ",
	"ノスリ", "ヒドリガモ", "クイナ", "オオバン", "ユリカモメ", "ドバト", "キジバト", "コゲラ",
	"ヒバリ", "ハクセキレイ", "タヒバリ", "ヒヨドリ", "モズ", "ジョウビタキ", "シロハラ",
	"ツグミ", "ガビチョウ", "ウグイス", "シジュウカラ", "メジロ", "ホオジロ", "ホオアカ",
	"アオジ", "カワラヒワ", "ベニマシコ", "シメ", "スズメ", "ムクドリ", "ハシボソガラス",
	"ハシブトガラス",
}

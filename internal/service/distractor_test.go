package service

import (
	"testing"

	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/random"

	"github.com/stretchr/testify/assert"
)

func distractorPool() []domain.Species {
	return []domain.Species{
		{LocalName: "シジュウカラ", FamilyLocalized: "シジュウカラ科"},
		{LocalName: "ヤマガラ", FamilyLocalized: "シジュウカラ科"},
		{LocalName: "ヒガラ", FamilyLocalized: "シジュウカラ科"},
		{LocalName: "コガラ", FamilyLocalized: "シジュウカラ科"},
		{LocalName: "ハシブトガラ", FamilyLocalized: "シジュウカラ科"},
		{LocalName: "メジロ", FamilyLocalized: "メジロ科"},
		{LocalName: "ウグイス", FamilyLocalized: "ウグイス科"},
		{LocalName: "ヤブサメ", FamilyLocalized: "ウグイス科"},
		{LocalName: "スズメ", FamilyLocalized: "スズメ科"},
		{LocalName: "ニュウナイスズメ", FamilyLocalized: "スズメ科"},
		{LocalName: "リュウキュウメジロ", FamilyLocalized: "メジロ科", IsSubspecies: true},
	}
}

func TestDistractorSelector_LargeFamilySampledToCount(t *testing.T) {
	d := NewDistractorSelector(distractorPool(), random.New(1))

	got := d.Choose("シジュウカラ", "シジュウカラ科", 3)

	assert.Len(t, got, 3)
	assert.NotContains(t, got, "シジュウカラ")
	for _, n := range got {
		assert.Contains(t, []string{"ヤマガラ", "ヒガラ", "コガラ", "ハシブトガラ"}, n)
	}
}

func TestDistractorSelector_SmallFamilyToppedUp(t *testing.T) {
	d := NewDistractorSelector(distractorPool(), random.New(2))

	got := d.Choose("ウグイス", "ウグイス科", 3)

	assert.Len(t, got, 3)
	assert.Equal(t, "ヤブサメ", got[0], "same-family names come first")
	assert.NotContains(t, got, "ウグイス")
	assert.NotContains(t, got, "リュウキュウメジロ")
	assert.ElementsMatch(t, got, uniqueStrings(got))
}

func TestDistractorSelector_ShortPoolGivesShortList(t *testing.T) {
	pool := []domain.Species{
		{LocalName: "A", FamilyLocalized: "F1"},
		{LocalName: "B", FamilyLocalized: "F1"},
		{LocalName: "C", FamilyLocalized: "F2"},
	}
	d := NewDistractorSelector(pool, random.New(3))

	got := d.Choose("A", "F1", 5)

	assert.ElementsMatch(t, []string{"B", "C"}, got)
	assert.Empty(t, d.Choose("A", "F1", 0))
}

func TestDistractorSelector_NeverIncludesCorrect(t *testing.T) {
	d := NewDistractorSelector(distractorPool(), random.New(4))
	for i := 0; i < 200; i++ {
		got := d.Choose("メジロ", "メジロ科", 3)
		assert.NotContains(t, got, "メジロ")
		assert.Len(t, got, 3)
		assert.ElementsMatch(t, got, uniqueStrings(got))
	}
}

func TestDistractorSelector_DeterministicUnderSeed(t *testing.T) {
	a := NewDistractorSelector(distractorPool(), random.New(99))
	b := NewDistractorSelector(distractorPool(), random.New(99))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Choose("スズメ", "スズメ科", 3), b.Choose("スズメ", "スズメ科", 3))
	}
}

func TestDistractorSelector_PoolSkipsSubspeciesAndDuplicates(t *testing.T) {
	pool := append(distractorPool(), domain.Species{LocalName: "メジロ", FamilyLocalized: "メジロ科"})
	d := NewDistractorSelector(pool, random.New(1))
	assert.Equal(t, 10, d.PoolSize())
}

func uniqueStrings(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

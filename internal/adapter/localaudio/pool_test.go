package localaudio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestExtractSpeciesName(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"アオサギ　平塚博物館用.mp3", "アオサギ"},
		{"アオジ水辺の楽校20231105_084632アオジ　地鳴き.mp3", "アオジ"},
		{"メジロ.wav", "メジロ"},
		{"コーラス.ogg", "コーラス"},
		{"ウグイス_song.MP3", "ウグイス"},
		{"uguisu.mp3", ""},
		{"ひらがな.mp3", ""},
		{"", ""},
		// decomposed dakuten as produced by some file systems
		{norm.NFD.String("ゴジュウカラ 01.mp3"), "ゴジュウカラ"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSpeciesName(tt.file))
		})
	}
}

func writeFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "ウグイス_dir.mp3"), 0o755))
	return dir
}

func TestScan(t *testing.T) {
	dir := writeFiles(t, "メジロ 2.mp3", "メジロ 1.mp3", "notes.txt", "readme.mp3")

	entries, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{FileName: "readme.mp3", Species: ""},
		{FileName: "メジロ 1.mp3", Species: "メジロ"},
		{FileName: "メジロ 2.mp3", Species: "メジロ"},
	}, entries)

	_, err = Scan(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestPool_Fetch(t *testing.T) {
	dir := writeFiles(t,
		"ウグイス　さえずり.mp3",
		"ウグイス 地鳴き.wav",
		"ウグイス 谷渡り.ogg",
		"メジロ.mp3",
		"ナゾノトリ.mp3",
	)
	known := func(name string) bool { return name != "ナゾノトリ" }

	pool, err := NewPool(dir, "/sound/", known, random.New(7), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, pool.SpeciesCount())
	assert.Equal(t, domain.SourceLocal, pool.Name())

	recs := pool.Fetch(context.Background(), &domain.Species{LocalName: "ウグイス"}, "song", 2)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, domain.SourceLocal, r.Source)
		assert.Regexp(t, `^/sound/%E3%82%A6%E3%82%B0%E3%82%A4%E3%82%B9`, r.AudioURL)
	}
	assert.NotEqual(t, recs[0].AudioURL, recs[1].AudioURL)

	all := pool.Fetch(context.Background(), &domain.Species{LocalName: "ウグイス"}, "", 10)
	assert.Len(t, all, 3)

	one := pool.Fetch(context.Background(), &domain.Species{LocalName: "メジロ"}, "", 5)
	require.Len(t, one, 1)
	assert.Equal(t, "/sound/%E3%83%A1%E3%82%B8%E3%83%AD.mp3", one[0].AudioURL)

	none := pool.Fetch(context.Background(), &domain.Species{LocalName: "カワセミ"}, "", 5)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestPool_MissingDirectory(t *testing.T) {
	_, err := NewPool(filepath.Join(t.TempDir(), "nope"), "/sound", nil, random.New(1), nil)
	assert.Error(t, err)
}

// Package localaudio serves recordings from a directory of audio files whose
// names start with the species' Katakana name.
package localaudio

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/logger"
	"birdcall-quiz/internal/metrics"
	"birdcall-quiz/internal/random"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

var audioExtensions = []string{".mp3", ".wav", ".ogg"}

// Pool implements domain.RecordingSource over a fixed file table.
type Pool struct {
	urlPrefix string
	files     map[string][]string // species name -> file names
	rnd       random.Source
	metrics   *metrics.QuizMetrics
}

// Entry is one indexed file.
type Entry struct {
	FileName string
	Species  string
}

// ExtractSpeciesName returns the leading Katakana run of an audio file name,
// or "" when the name does not start with Katakana.
func ExtractSpeciesName(fileName string) string {
	name := norm.NFC.String(fileName)
	for _, ext := range audioExtensions {
		name = strings.ReplaceAll(name, ext, "")
	}
	end := 0
	for end < len(name) {
		r, size := utf8.DecodeRuneInString(name[end:])
		if !isKatakanaNameRune(r) {
			break
		}
		end += size
	}
	return name[:end]
}

func isKatakanaNameRune(r rune) bool {
	return (r >= 'ァ' && r <= 'ヶ') || r == 'ー'
}

func isAudioFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range audioExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Scan lists audio files in dir in name order along with their extracted
// species names. Files without an extractable name are returned with an
// empty Species.
func Scan(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound directory %s: %w", dir, err)
	}
	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !isAudioFile(de.Name()) {
			continue
		}
		entries = append(entries, Entry{FileName: de.Name(), Species: ExtractSpeciesName(de.Name())})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].FileName < entries[j].FileName })
	return entries, nil
}

// NewPool indexes dir once. known reports whether a species name exists in
// the taxonomy; unknown names are logged but still indexed. known may be nil.
func NewPool(dir, urlPrefix string, known func(name string) bool, rnd random.Source, m *metrics.QuizMetrics) (*Pool, error) {
	entries, err := Scan(dir)
	if err != nil {
		return nil, err
	}

	log := logger.Get().With(zap.String("source", domain.SourceLocal))
	p := &Pool{
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		files:     make(map[string][]string),
		rnd:       rnd,
		metrics:   m,
	}
	unmatched := 0
	for _, e := range entries {
		if e.Species == "" {
			log.Warn("could not extract a bird name from file", zap.String("file", e.FileName))
			unmatched++
			continue
		}
		if known != nil && !known(e.Species) {
			log.Warn("bird name not found in taxonomy", zap.String("file", e.FileName), zap.String("name", e.Species))
			unmatched++
		}
		p.files[e.Species] = append(p.files[e.Species], e.FileName)
	}

	log.Info("Local sound pool indexed",
		zap.String("dir", dir),
		zap.Int("files", len(entries)),
		zap.Int("species", len(p.files)),
		zap.Int("unmatched", unmatched))
	return p, nil
}

func (p *Pool) Name() string { return domain.SourceLocal }

// SpeciesCount returns the number of distinct species with at least one file.
func (p *Pool) SpeciesCount() int { return len(p.files) }

// Fetch returns a random sample of up to limit files for the species.
// callType is not tracked for local files and is ignored.
func (p *Pool) Fetch(_ context.Context, species *domain.Species, _ string, limit int) []domain.Recording {
	if species == nil {
		return nil
	}
	files := random.Sample(p.rnd, p.files[norm.NFC.String(species.LocalName)], limit)
	if len(files) == 0 {
		p.metrics.IncRecordingFetch(domain.SourceLocal, metrics.OutcomeEmpty)
		return []domain.Recording{}
	}

	out := make([]domain.Recording, 0, len(files))
	for _, f := range files {
		out = append(out, domain.Recording{
			Source:   domain.SourceLocal,
			AudioURL: p.audioURL(f),
		})
	}
	p.metrics.IncRecordingFetch(domain.SourceLocal, metrics.OutcomeHit)
	return out
}

func (p *Pool) audioURL(fileName string) string {
	return p.urlPrefix + "/" + url.PathEscape(fileName)
}

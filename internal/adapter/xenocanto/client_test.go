package xenocanto

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"birdcall-quiz/internal/domain"
	"birdcall-quiz/internal/ratelimit"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://xeno-canto.test/api/3/recordings"

var uguisu = &domain.Species{LocalName: "ウグイス", ScientificName: "Horornis diphone"}

const twoRecordings = `{
  "numRecordings": "2",
  "recordings": [
    {"id": "812345", "file": "//xeno-canto.org/812345/download", "loc": "Tokyo", "type": "song",
     "q": "A", "rec": "Taro Yamada", "cnt": "Japan", "lic": "//creativecommons.org/licenses/by-nc-sa/4.0/"},
    {"id": 798001, "file": "https://xeno-canto.org/798001/download", "loc": "Nagano", "type": "call",
     "q": "B", "rec": "Hanako Suzuki", "cnt": "Japan", "lic": "https://creativecommons.org/licenses/by/4.0/"}
  ]
}`

func newTestClient(t *testing.T, apiKey string, interval time.Duration) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	c := NewClient(Config{
		APIKey:  apiKey,
		BaseURL: testBaseURL,
		Country: "japan",
		Timeout: time.Second,
	}, ratelimit.New(interval), &http.Client{Transport: transport}, nil)
	return c, transport
}

func TestFetch_Success(t *testing.T) {
	c, transport := newTestClient(t, "secret-key", 0)

	var gotQuery, gotKey string
	transport.RegisterResponder(http.MethodGet, testBaseURL,
		func(req *http.Request) (*http.Response, error) {
			gotQuery = req.URL.Query().Get("query")
			gotKey = req.URL.Query().Get("key")
			return httpmock.NewStringResponse(http.StatusOK, twoRecordings), nil
		})

	recs := c.Fetch(context.Background(), uguisu, "song", 5)

	require.Len(t, recs, 2)
	assert.Equal(t, "gen:Horornis sp:diphone cnt:japan type:song", gotQuery)
	assert.Equal(t, "secret-key", gotKey)

	assert.Equal(t, domain.Recording{
		Source:     domain.SourceXenoCanto,
		AudioURL:   "https://xeno-canto.org/812345/download",
		Location:   "Tokyo",
		CallType:   "song",
		Quality:    "A",
		Recordist:  "Taro Yamada",
		Country:    "Japan",
		LicenseURL: "https://creativecommons.org/licenses/by-nc-sa/4.0/",
		ExternalID: "812345",
	}, recs[0])
	assert.Equal(t, "798001", recs[1].ExternalID)
	assert.Equal(t, "https://xeno-canto.org/798001/download", recs[1].AudioURL)
}

func TestFetch_TruncatesToLimit(t *testing.T) {
	c, transport := newTestClient(t, "k", 0)
	transport.RegisterResponder(http.MethodGet, testBaseURL,
		httpmock.NewStringResponder(http.StatusOK, twoRecordings))

	recs := c.Fetch(context.Background(), uguisu, "", 1)
	assert.Len(t, recs, 1)
}

func TestFetch_GenusOnlyQuery(t *testing.T) {
	c, transport := newTestClient(t, "k", 0)

	var gotQuery string
	transport.RegisterResponder(http.MethodGet, testBaseURL,
		func(req *http.Request) (*http.Response, error) {
			gotQuery = req.URL.Query().Get("query")
			return httpmock.NewStringResponse(http.StatusOK, `{"recordings":[]}`), nil
		})

	recs := c.Fetch(context.Background(), &domain.Species{LocalName: "X", ScientificName: "Horornis"}, "", 5)
	assert.Empty(t, recs)
	assert.Equal(t, "gen:Horornis cnt:japan", gotQuery)
}

func TestFetch_FailuresCollapseToEmpty(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{"http 500", httpmock.NewStringResponder(http.StatusInternalServerError, "oops")},
		{"http 401 with envelope", httpmock.NewStringResponder(http.StatusUnauthorized, `{"error":"unauthorized","message":"invalid key"}`)},
		{"error envelope with 200", httpmock.NewStringResponder(http.StatusOK, `{"error":"bad_query","message":"no such tag"}`)},
		{"malformed json", httpmock.NewStringResponder(http.StatusOK, `{"recordings": [`)},
		{"network error", httpmock.NewErrorResponder(errors.New("connection reset"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, transport := newTestClient(t, "k", 0)
			transport.RegisterResponder(http.MethodGet, testBaseURL, tt.responder)

			recs := c.Fetch(context.Background(), uguisu, "", 5)
			assert.NotNil(t, recs)
			assert.Empty(t, recs)
			assert.Equal(t, 1, transport.GetTotalCallCount())
		})
	}
}

func TestFetch_MissingKeySkipsNetworkAndLimiter(t *testing.T) {
	c, transport := newTestClient(t, "", time.Hour)

	recs := c.Fetch(context.Background(), uguisu, "song", 5)

	assert.Empty(t, recs)
	assert.Equal(t, 0, transport.GetTotalCallCount())
	assert.False(t, c.APIKeyConfigured())
	assert.Equal(t, time.Duration(0), c.limiter.TimeUntilReady())
}

func TestFetch_UsesLimiter(t *testing.T) {
	c, transport := newTestClient(t, "k", time.Hour)
	transport.RegisterResponder(http.MethodGet, testBaseURL,
		httpmock.NewStringResponder(http.StatusOK, twoRecordings))

	require.Len(t, c.Fetch(context.Background(), uguisu, "", 5), 2)
	assert.Greater(t, c.limiter.TimeUntilReady(), time.Duration(0))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	recs := c.Fetch(ctx, &domain.Species{ScientificName: "Zosterops japonicus"}, "", 5)
	assert.Empty(t, recs)
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestFetch_CollapsesIdenticalConcurrentQueries(t *testing.T) {
	c, transport := newTestClient(t, "k", 0)

	release := make(chan struct{})
	transport.RegisterResponder(http.MethodGet, testBaseURL,
		func(req *http.Request) (*http.Response, error) {
			<-release
			return httpmock.NewStringResponse(http.StatusOK, twoRecordings), nil
		})

	const callers = 5
	var wg sync.WaitGroup
	results := make([][]domain.Recording, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Fetch(context.Background(), uguisu, "song", 5)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Len(t, r, 2)
	}
	assert.LessOrEqual(t, transport.GetTotalCallCount(), callers)
	assert.GreaterOrEqual(t, transport.GetTotalCallCount(), 1)
}

func TestRequestURL_MasksKey(t *testing.T) {
	c, _ := newTestClient(t, "secret", 0)
	masked := c.requestURL("gen:Horornis sp:diphone cnt:japan", "***")
	assert.Contains(t, masked, "key=***")
	assert.NotContains(t, masked, "secret")

	assert.Equal(t, `Get "https://x/?key=***": EOF`, redact(`Get "https://x/?key=secret": EOF`, "secret"))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://xeno-canto.org/1/download", normalizeURL("//xeno-canto.org/1/download"))
	assert.Equal(t, "http://example.com/a", normalizeURL("http://example.com/a"))
	assert.Equal(t, "", normalizeURL(""))
}

package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"birdcall-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(id string, createdAt time.Time) *domain.QuizSession {
	return &domain.QuizSession{
		QuestionID:      id,
		CorrectAnswer:   "ウグイス",
		ScientificName:  "Horornis diphone",
		FamilyLocalized: "ウグイス科",
		CreatedAt:       createdAt,
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore(0, 0, 0)
	ctx := context.Background()

	s := newSession("q1", time.Now())
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, *s, *got)

	// reads do not consume the session
	again, err := store.Get(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "ウグイス", again.CorrectAnswer)

	// returned values are copies
	got.CorrectAnswer = "メジロ"
	again, _ = store.Get(ctx, "q1")
	assert.Equal(t, "ウグイス", again.CorrectAnswer)
}

func TestMemoryStore_UnknownID(t *testing.T) {
	store := NewMemoryStore(0, 0, 0)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStore_TTL(t *testing.T) {
	store := NewMemoryStore(20*time.Millisecond, 0, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, newSession("q1", time.Now())))
	_, err := store.Get(ctx, "q1")
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond)
	_, err = store.Get(ctx, "q1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStore_MaxEntriesEvictsOldest(t *testing.T) {
	store := NewMemoryStore(0, 2, 0)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.Put(ctx, newSession("q1", base)))
	require.NoError(t, store.Put(ctx, newSession("q2", base.Add(time.Second))))
	require.NoError(t, store.Put(ctx, newSession("q3", base.Add(2*time.Second))))

	assert.Equal(t, 2, store.Len())
	_, err := store.Get(ctx, "q1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = store.Get(ctx, "q3")
	assert.NoError(t, err)

	// overwriting an existing id does not evict
	require.NoError(t, store.Put(ctx, newSession("q2", base.Add(3*time.Second))))
	assert.Equal(t, 2, store.Len())
	_, err = store.Get(ctx, "q3")
	assert.NoError(t, err)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(0, 0, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("q%d", i)
			assert.NoError(t, store.Put(ctx, newSession(id, time.Now())))
			_, err := store.Get(ctx, id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, store.Len())
}

package game_test

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/database"
	"github.com/DushesAlko/telegram-country-quiz-game-bot/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary in-memory SQLite database for testing.
func setupTestStore(t *testing.T) (game.RoundStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	// Rounds reference players by chat key.
	_, err = db.Exec(`INSERT INTO players (chat_id, total_score, correct_answers, incorrect_answers, created_at, updated_at) VALUES (100, 0, 0, 0, 0, 0)`)
	require.NoError(t, err)

	return game.NewStore(db), db, dbTeardown
}

func pendingRound(id string, chatID int64) *game.Round {
	return &game.Round{
		ID:          id,
		ChatID:      chatID,
		CountryCode: "DEU",
		CountryName: "Germany",
		FlagURL:     "https://flagcdn.com/w320/de.png",
		Status:      game.StatusPending,
		PlayedAt:    1700000000,
	}
}

func TestInsertAndGet(t *testing.T) {
	store, _, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.Insert(pendingRound("r1", 100)))

	round, err := store.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, "DEU", round.CountryCode)
	assert.Equal(t, game.StatusPending, round.Status)
	assert.Nil(t, round.TimeSpent)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, game.ErrRoundNotFound)
}

func TestFindPending(t *testing.T) {
	store, _, teardown := setupTestStore(t)
	defer teardown()

	round, err := store.FindPending(100)
	require.NoError(t, err)
	assert.Nil(t, round, "no pending round yet")

	require.NoError(t, store.Insert(pendingRound("r1", 100)))

	round, err = store.FindPending(100)
	require.NoError(t, err)
	require.NotNil(t, round)
	assert.Equal(t, "r1", round.ID)
}

func TestMarkResolved(t *testing.T) {
	store, _, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.Insert(pendingRound("r1", 100)))

	resolved, err := store.MarkResolved("r1", "Germany", true, 10, 7)
	require.NoError(t, err)
	assert.Equal(t, game.StatusResolved, resolved.Status)
	assert.True(t, resolved.IsCorrect)
	assert.Equal(t, 10, resolved.Points)
	require.NotNil(t, resolved.TimeSpent)
	assert.Equal(t, int64(7), *resolved.TimeSpent)

	t.Run("second resolution fails", func(t *testing.T) {
		_, err := store.MarkResolved("r1", "France", false, -5, 9)
		assert.ErrorIs(t, err, game.ErrRoundAlreadyResolved)
	})

	t.Run("missing round", func(t *testing.T) {
		_, err := store.MarkResolved("missing", "Germany", true, 10, 1)
		assert.ErrorIs(t, err, game.ErrRoundNotFound)
	})
}

func TestMarkResolved_ConcurrentCallsSucceedOnce(t *testing.T) {
	store, _, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.Insert(pendingRound("r1", 100)))

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes, conflicts int

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.MarkResolved("r1", "Germany", true, 10, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, game.ErrRoundAlreadyResolved):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes, "exactly one resolution wins")
	assert.Equal(t, workers-1, conflicts)
}

func TestMarkPendingRevertsResolution(t *testing.T) {
	store, _, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.Insert(pendingRound("r1", 100)))
	_, err := store.MarkResolved("r1", "Germany", true, 10, 3)
	require.NoError(t, err)

	require.NoError(t, store.MarkPending("r1"))

	round, err := store.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, game.StatusPending, round.Status)
	assert.Equal(t, 0, round.Points)
	assert.Nil(t, round.TimeSpent)
}

func TestAbandonPending(t *testing.T) {
	store, _, teardown := setupTestStore(t)
	defer teardown()

	abandoned, err := store.AbandonPending(100)
	require.NoError(t, err)
	assert.False(t, abandoned, "no-op without a pending round")

	require.NoError(t, store.Insert(pendingRound("r1", 100)))

	abandoned, err = store.AbandonPending(100)
	require.NoError(t, err)
	assert.True(t, abandoned)

	round, err := store.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, game.StatusAbandoned, round.Status)

	t.Run("abandoned rounds stay abandoned", func(t *testing.T) {
		_, err := store.MarkResolved("r1", "Germany", true, 10, 1)
		assert.ErrorIs(t, err, game.ErrRoundAlreadyResolved)
	})
}

func TestRecentAndCount(t *testing.T) {
	store, _, teardown := setupTestStore(t)
	defer teardown()

	for i, id := range []string{"r1", "r2", "r3"} {
		r := pendingRound(id, 100)
		r.PlayedAt = int64(1700000000 + i)
		require.NoError(t, store.Insert(r))
	}

	recent, err := store.Recent(100, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "r3", recent[0].ID, "newest first")
	assert.Equal(t, "r2", recent[1].ID)

	count, err := store.Count(100)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCountryStats(t *testing.T) {
	store, _, teardown := setupTestStore(t)
	defer teardown()

	insertResolved := func(id, code, name string, correct bool) {
		r := pendingRound(id, 100)
		r.CountryCode = code
		r.CountryName = name
		require.NoError(t, store.Insert(r))
		points := -5
		if correct {
			points = 10
		}
		_, err := store.MarkResolved(id, name, correct, points, 1)
		require.NoError(t, err)
	}

	insertResolved("r1", "DEU", "Germany", true)
	insertResolved("r2", "DEU", "Germany", false)
	insertResolved("r3", "FRA", "France", false)
	// A pending round must not count towards the aggregates.
	require.NoError(t, store.Insert(pendingRound("r4", 100)))

	stats, err := store.CountryStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "DEU", stats[0].CountryCode)
	assert.Equal(t, 2, stats[0].Attempts)
	assert.Equal(t, 1, stats[0].Correct)
	assert.InDelta(t, 50.0, stats[0].SuccessRate, 0.01)

	hardest, err := store.Hardest(1, 1)
	require.NoError(t, err)
	require.Len(t, hardest, 1)
	assert.Equal(t, "FRA", hardest[0].CountryCode)

	t.Run("minAttempts filters out rare countries", func(t *testing.T) {
		hardest, err := store.Hardest(2, 10)
		require.NoError(t, err)
		require.Len(t, hardest, 1)
		assert.Equal(t, "DEU", hardest[0].CountryCode)
	})
}

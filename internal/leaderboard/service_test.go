package leaderboard

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(client, zerolog.Nop(), ServiceOptions{})
}

func TestRecordResultAggregatesAcrossGames(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.RecordResult(ctx, RecordRequest{
		PlayerName: "alice", Score: 300, CorrectCount: 3, QuestionCount: 5,
	}))
	assert.NoError(t, svc.RecordResult(ctx, RecordRequest{
		PlayerName: "alice", Score: 500, CorrectCount: 5, QuestionCount: 5,
	}))

	standings, err := svc.Top(ctx, WindowAllTime, 10)
	assert.NoError(t, err)
	assert.Len(t, standings, 1)

	stats := standings[0].Player.Stats
	assert.Equal(t, "alice", standings[0].Player.Name)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 800, stats.TotalScore)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 10, stats.QuestionsAnswered)
	assert.Equal(t, 8, stats.CorrectAnswers)
	assert.Equal(t, "80.00", stats.Accuracy)
}

func TestTopOrdersByScore(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, rec := range []RecordRequest{
		{PlayerName: "bob", Score: 100, CorrectCount: 1, QuestionCount: 5},
		{PlayerName: "carol", Score: 400, CorrectCount: 4, QuestionCount: 5},
		{PlayerName: "dave", Score: 200, CorrectCount: 2, QuestionCount: 5},
	} {
		assert.NoError(t, svc.RecordResult(ctx, rec))
	}

	standings, err := svc.Top(ctx, WindowAllTime, 10)
	assert.NoError(t, err)
	assert.Len(t, standings, 3)
	assert.Equal(t, "carol", standings[0].Player.Name)
	assert.Equal(t, "dave", standings[1].Player.Name)
	assert.Equal(t, "bob", standings[2].Player.Name)
}

func TestTopRemembersBestRank(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.RecordResult(ctx, RecordRequest{
		PlayerName: "erin", Score: 500, CorrectCount: 5, QuestionCount: 5,
	}))
	standings, err := svc.Top(ctx, WindowAllTime, 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, standings[0].Player.Stats.TopRank)

	// Erin drops to second, but her best rank sticks.
	assert.NoError(t, svc.RecordResult(ctx, RecordRequest{
		PlayerName: "frank", Score: 900, CorrectCount: 5, QuestionCount: 5,
	}))
	standings, err = svc.Top(ctx, WindowAllTime, 10)
	assert.NoError(t, err)
	assert.Equal(t, "frank", standings[0].Player.Name)
	assert.Equal(t, "erin", standings[1].Player.Name)
	assert.Equal(t, 1, standings[1].Player.Stats.TopRank)
}

func TestRecordResultSkipsAnonymousOrEmptyGames(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.RecordResult(ctx, RecordRequest{Score: 100, QuestionCount: 5}))
	assert.NoError(t, svc.RecordResult(ctx, RecordRequest{PlayerName: "gina"}))

	standings, err := svc.Top(ctx, WindowAllTime, 10)
	assert.NoError(t, err)
	assert.Empty(t, standings)
}

func TestRecordResultTargetsRequestedWindows(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.RecordResult(ctx, RecordRequest{
		PlayerName: "henry", Score: 100, CorrectCount: 1, QuestionCount: 5,
		Windows: []string{WindowDaily},
	}))

	daily, err := svc.Top(ctx, WindowDaily, 10)
	assert.NoError(t, err)
	assert.Len(t, daily, 1)

	allTime, err := svc.Top(ctx, WindowAllTime, 10)
	assert.NoError(t, err)
	assert.Empty(t, allTime)
}

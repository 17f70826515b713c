package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func player(name string, score int) Player {
	return Player{ID: name, Name: name, Stats: PlayerStats{TotalScore: score}}
}

func TestRankAssignsDistinctSequentialRanks(t *testing.T) {
	standings := Rank([]Player{
		player("alice", 9850),
		player("bob", 9500),
		player("carol", 9850),
	})

	assert.Len(t, standings, 3)
	// Tied scores keep input order and still get distinct ranks.
	assert.Equal(t, "alice", standings[0].Player.Name)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, "carol", standings[1].Player.Name)
	assert.Equal(t, 2, standings[1].Rank)
	assert.Equal(t, "bob", standings[2].Player.Name)
	assert.Equal(t, 3, standings[2].Rank)
}

func TestRankEmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil))
	assert.Empty(t, Rank([]Player{}))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	players := []Player{player("low", 10), player("high", 20)}
	Rank(players)

	assert.Equal(t, "low", players[0].Name)
	assert.Equal(t, "high", players[1].Name)
}

func TestFormatAccuracy(t *testing.T) {
	assert.Equal(t, "60.00", FormatAccuracy(3, 5))
	assert.Equal(t, "100.00", FormatAccuracy(5, 5))
	assert.Equal(t, "0.00", FormatAccuracy(0, 5))
	assert.Equal(t, "0.00", FormatAccuracy(0, 0))
	assert.Equal(t, "0.00", FormatAccuracy(3, -1))
	assert.Equal(t, "33.33", FormatAccuracy(1, 3))
}

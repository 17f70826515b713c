package leaderboard

import (
	"fmt"
	"sort"
)

// PlayerStats aggregates a player's lifetime totals. Accuracy is a
// 2-decimal formatted percentage string, computed, never stored raw.
type PlayerStats struct {
	TotalScore        int    `json:"total_score"`
	GamesPlayed       int    `json:"games_played"`
	QuestionsAnswered int    `json:"questions_answered"`
	CorrectAnswers    int    `json:"correct_answers"`
	Accuracy          string `json:"accuracy"`
	TopRank           int    `json:"top_rank"`
}

// Player identifies a leaderboard participant.
type Player struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Avatar string      `json:"avatar,omitempty"`
	Stats  PlayerStats `json:"stats"`
}

// Standing is a player annotated with a computed rank.
type Standing struct {
	Rank   int    `json:"rank"`
	Player Player `json:"player"`
}

// Rank sorts players descending by total score and assigns ranks 1..n by
// post-sort position. The sort is stable, so tied scores keep their input
// order and receive distinct sequential ranks; that tie-break is a
// documented policy, not an accident.
func Rank(players []Player) []Standing {
	ordered := make([]Player, len(players))
	copy(ordered, players)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Stats.TotalScore > ordered[j].Stats.TotalScore
	})

	standings := make([]Standing, len(ordered))
	for i, p := range ordered {
		standings[i] = Standing{Rank: i + 1, Player: p}
	}
	return standings
}

// FormatAccuracy renders correct/answered as a percentage with two decimals.
func FormatAccuracy(correct, answered int) string {
	if answered <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(correct)/float64(answered)*100)
}

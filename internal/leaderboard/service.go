package leaderboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Supported leaderboard windows.
const (
	WindowDaily   = "daily"
	WindowWeekly  = "weekly"
	WindowAllTime = "all_time"
)

var defaultWindows = []string{WindowDaily, WindowWeekly, WindowAllTime}

var windowTTL = map[string]time.Duration{
	WindowDaily:  24 * time.Hour,
	WindowWeekly: 7 * 24 * time.Hour,
}

// RecordRequest captures one finished game for aggregation. Players are
// keyed by display name; identity is whatever the caller authenticated,
// which is outside this service's concern.
type RecordRequest struct {
	PlayerName    string
	Score         int
	CorrectCount  int
	QuestionCount int
	Windows       []string
}

// ServiceOptions configures leaderboard behavior.
type ServiceOptions struct {
	TopN           int
	RedisKeyPrefix string
	Windows        []string
}

// Service keeps per-window score aggregates in Redis sorted sets with a
// metadata hash per player.
type Service struct {
	redis   *redis.Client
	logger  zerolog.Logger
	topN    int
	prefix  string
	windows []string
}

func NewService(redisClient *redis.Client, logger zerolog.Logger, opts ServiceOptions) *Service {
	topN := opts.TopN
	if topN <= 0 {
		topN = 50
	}
	prefix := opts.RedisKeyPrefix
	if prefix == "" {
		prefix = "lb"
	}
	windows := opts.Windows
	if len(windows) == 0 {
		windows = defaultWindows
	}

	return &Service{
		redis:   redisClient,
		logger:  logger.With().Str("component", "leaderboard").Logger(),
		topN:    topN,
		prefix:  prefix,
		windows: windows,
	}
}

// RecordResult folds one game into every applicable window.
func (s *Service) RecordResult(ctx context.Context, req RecordRequest) error {
	if req.PlayerName == "" || req.QuestionCount == 0 {
		return nil
	}

	windows := req.Windows
	if len(windows) == 0 {
		windows = s.windows
	}

	for _, window := range windows {
		if err := s.updateWindow(ctx, window, req); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) updateWindow(ctx context.Context, window string, req RecordRequest) error {
	zKey := s.boardKey(window)
	metaKey := s.metaKey(window, req.PlayerName)

	pipe := s.redis.TxPipeline()
	pipe.ZIncrBy(ctx, zKey, float64(req.Score), req.PlayerName)
	pipe.HIncrBy(ctx, metaKey, "games", 1)
	pipe.HIncrBy(ctx, metaKey, "questions", int64(req.QuestionCount))
	pipe.HIncrBy(ctx, metaKey, "correct", int64(req.CorrectCount))
	if ttl, ok := windowTTL[window]; ok {
		pipe.Expire(ctx, zKey, ttl)
		pipe.Expire(ctx, metaKey, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("update leaderboard window %s: %w", window, err)
	}
	return nil
}

// Top returns ranked standings for a window. Ranks come from the shared
// Rank computation so ties follow the stable-order policy everywhere.
func (s *Service) Top(ctx context.Context, window string, limit int) ([]Standing, error) {
	if limit <= 0 || limit > s.topN {
		limit = s.topN
	}

	zKey := s.boardKey(window)
	results, err := s.redis.ZRevRangeWithScores(ctx, zKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}

	players := make([]Player, 0, len(results))
	for _, z := range results {
		name := z.Member.(string)
		player, err := s.readMeta(ctx, window, name)
		if err != nil {
			s.logger.Warn().Err(err).Str("player", name).Msg("failed to read leaderboard metadata")
			continue
		}
		player.Stats.TotalScore = int(z.Score)
		player.Stats.Accuracy = FormatAccuracy(player.Stats.CorrectAnswers, player.Stats.QuestionsAnswered)
		players = append(players, player)
	}

	standings := Rank(players)
	s.rememberTopRanks(ctx, window, standings)
	return standings, nil
}

// rememberTopRanks records each player's best rank ever seen. Best-effort.
func (s *Service) rememberTopRanks(ctx context.Context, window string, standings []Standing) {
	pipe := s.redis.Pipeline()
	dirty := false
	for i := range standings {
		st := &standings[i]
		if st.Player.Stats.TopRank == 0 || st.Rank < st.Player.Stats.TopRank {
			st.Player.Stats.TopRank = st.Rank
			pipe.HSet(ctx, s.metaKey(window, st.Player.Name), "top_rank", st.Rank)
			dirty = true
		}
	}
	if dirty {
		if _, err := pipe.Exec(ctx); err != nil {
			s.logger.Warn().Err(err).Str("window", window).Msg("failed to persist top ranks")
		}
	}
}

func (s *Service) readMeta(ctx context.Context, window, name string) (Player, error) {
	data, err := s.redis.HGetAll(ctx, s.metaKey(window, name)).Result()
	if err != nil {
		return Player{}, err
	}

	player := Player{ID: name, Name: name}
	player.Stats.GamesPlayed = parseInt(data["games"])
	player.Stats.QuestionsAnswered = parseInt(data["questions"])
	player.Stats.CorrectAnswers = parseInt(data["correct"])
	player.Stats.TopRank = parseInt(data["top_rank"])
	return player, nil
}

// Windows lists the configured windows.
func (s *Service) Windows() []string {
	return s.windows
}

func (s *Service) boardKey(window string) string {
	return fmt.Sprintf("%s:%s", s.prefix, window)
}

func (s *Service) metaKey(window, name string) string {
	return fmt.Sprintf("%s:%s:meta:%s", s.prefix, window, name)
}

func parseInt(val string) int {
	if val == "" {
		return 0
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return i
}

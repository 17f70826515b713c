package challenge

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/sjrf7/crypto-trivia/internal/question"
)

func newTestCodec(store Store) *Codec {
	return NewCodec(question.ClassicBank(), store, zerolog.Nop())
}

func TestClassicRoundTrip(t *testing.T) {
	codec := newTestCodec(NewMemoryStore())

	token, err := codec.EncodeClassic([]int{0, 2, 4}, 300, Invite{
		ChallengerName: "alice",
		Wager:          0.01,
		Message:        "beat this if you can!",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	decoded, err := codec.Decode(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, KindClassic, decoded.Kind)
	assert.Equal(t, []int{0, 2, 4}, decoded.Refs)
	assert.Len(t, decoded.Questions, 3)
	assert.Equal(t, 0, decoded.Questions[0].OriginalIndex)
	assert.Equal(t, 2, decoded.Questions[1].OriginalIndex)
	assert.Equal(t, 300, decoded.ScoreToBeat)
	assert.Equal(t, 0.01, decoded.Wager)
	assert.Equal(t, "alice", decoded.ChallengerName)
	assert.Equal(t, "beat this if you can!", decoded.Message)
}

func TestClassicRoundTripWithoutMessage(t *testing.T) {
	codec := newTestCodec(NewMemoryStore())

	token, err := codec.EncodeClassic([]int{1}, 100, Invite{ChallengerName: "bob"})
	assert.NoError(t, err)

	decoded, err := codec.Decode(context.Background(), token)
	assert.NoError(t, err)
	assert.Empty(t, decoded.Message)
	assert.Equal(t, 0.0, decoded.Wager)
}

func TestEncodeClassicRejectsBadRefs(t *testing.T) {
	codec := newTestCodec(NewMemoryStore())

	_, err := codec.EncodeClassic(nil, 100, Invite{})
	assert.Error(t, err)
	_, err = codec.EncodeClassic([]int{-1}, 100, Invite{})
	assert.Error(t, err)
	_, err = codec.EncodeClassic([]int{codec.bank.Len()}, 100, Invite{})
	assert.Error(t, err)
}

func TestAIRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	codec := newTestCodec(store)

	payload := Payload{
		Topic: "defi",
		Questions: []question.Question{
			{Prompt: "gen1", Answer: "a", Options: []string{"a", "b", "c", "d"}, OriginalIndex: -1},
			{Prompt: "gen2", Answer: "b", Options: []string{"a", "b", "c", "d"}, OriginalIndex: -1},
		},
	}
	token, err := codec.EncodeAI(context.Background(), payload, 200, Invite{ChallengerName: "carol", Wager: 1.5})
	assert.NoError(t, err)

	decoded, err := codec.Decode(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, KindAI, decoded.Kind)
	assert.Equal(t, "defi", decoded.Topic)
	assert.Len(t, decoded.Questions, 2)
	assert.NotEmpty(t, decoded.StoreID)
	assert.Equal(t, 200, decoded.ScoreToBeat)
	assert.Equal(t, 1.5, decoded.Wager)
	assert.Equal(t, "carol", decoded.ChallengerName)
}

func TestAITokenForMissingEntry(t *testing.T) {
	codec := newTestCodec(NewMemoryStore())

	token := encodeToken([]string{"ai", "nosuchid", "100", "0", "carol"})
	_, err := codec.Decode(context.Background(), token)
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestEncodeAIWithoutStoreFails(t *testing.T) {
	codec := newTestCodec(NoopStore{})

	payload := Payload{Questions: []question.Question{{Prompt: "q", Answer: "a", Options: []string{"a", "b", "c", "d"}}}}
	_, err := codec.EncodeAI(context.Background(), payload, 100, Invite{})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestLegacyTokenDecodes(t *testing.T) {
	codec := newTestCodec(NewMemoryStore())

	token := encodeToken([]string{"0,1,2", "150", "0.5", "dave"})
	decoded, err := codec.Decode(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, KindLegacy, decoded.Kind)
	assert.Equal(t, []int{0, 1, 2}, decoded.Refs)
	assert.Equal(t, 150, decoded.ScoreToBeat)
	assert.Equal(t, 0.5, decoded.Wager)
	assert.Equal(t, "dave", decoded.ChallengerName)
}

func TestLegacyEmptyWagerDefaultsToZero(t *testing.T) {
	codec := newTestCodec(NewMemoryStore())

	token := encodeToken([]string{"0,1", "100", "", "eve"})
	decoded, err := codec.Decode(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, decoded.Wager)
}

func TestMalformedTokensAreRejected(t *testing.T) {
	codec := newTestCodec(NewMemoryStore())
	ctx := context.Background()

	cases := map[string]string{
		"not base64":         "!!!not-base64!!!",
		"empty":              "",
		"too few fields":     encodeToken([]string{"0,1", "100"}),
		"non-numeric index":  encodeToken([]string{"a,b", "100", "0", "mallory"}),
		"index out of range": encodeToken([]string{"0,999", "100", "0", "mallory"}),
		"non-numeric score":  encodeToken([]string{"0,1", "lots", "0", "mallory"}),
		"non-numeric wager":  encodeToken([]string{"0,1", "100", "much", "mallory"}),
		"negative wager":     encodeToken([]string{"0,1", "100", "-5", "mallory"}),
		"classic too short":  encodeToken([]string{"classic", "0,1", "100"}),
		"ai empty id":        encodeToken([]string{"ai", "", "100", "0", "mallory"}),
	}
	for name, token := range cases {
		_, err := codec.Decode(ctx, token)
		assert.ErrorIs(t, err, ErrMalformedToken, "case %q", name)
	}
}

func TestDecodeAcceptsPaddedStandardBase64(t *testing.T) {
	codec := newTestCodec(NewMemoryStore())

	token := base64.StdEncoding.EncodeToString([]byte("0,1|100|0|frank"))
	decoded, err := codec.Decode(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, KindLegacy, decoded.Kind)
	assert.Equal(t, "frank", decoded.ChallengerName)
}

func TestMessageSurvivesDelimiterCharacters(t *testing.T) {
	codec := newTestCodec(NewMemoryStore())

	message := "score|wager|100% my game"
	token, err := codec.EncodeClassic([]int{0}, 50, Invite{ChallengerName: "gina", Message: message})
	assert.NoError(t, err)

	decoded, err := codec.Decode(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, message, decoded.Message)
}

func TestChallengerNameSurvivesDelimiterCharacters(t *testing.T) {
	codec := newTestCodec(NewMemoryStore())
	ctx := context.Background()

	// A name containing the field delimiter must not shift field positions.
	name := "al|ice|100"

	token, err := codec.EncodeClassic([]int{0, 1}, 250, Invite{ChallengerName: name, Message: "hi"})
	assert.NoError(t, err)
	decoded, err := codec.Decode(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, KindClassic, decoded.Kind)
	assert.Equal(t, name, decoded.ChallengerName)
	assert.Equal(t, 250, decoded.ScoreToBeat)
	assert.Equal(t, "hi", decoded.Message)

	payload := Payload{Topic: "defi", Questions: []question.Question{
		{Prompt: "q", Answer: "a", Options: []string{"a", "b", "c", "d"}, OriginalIndex: -1},
	}}
	token, err = codec.EncodeAI(ctx, payload, 400, Invite{ChallengerName: name})
	assert.NoError(t, err)
	decoded, err = codec.Decode(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, KindAI, decoded.Kind)
	assert.Equal(t, name, decoded.ChallengerName)
	assert.Equal(t, 400, decoded.ScoreToBeat)
}

func TestWagerFormattingIsExact(t *testing.T) {
	assert.Equal(t, "0", formatWager(0))
	assert.Equal(t, "0.01", formatWager(0.01))
	assert.Equal(t, "1.5", formatWager(1.5))
	assert.Equal(t, "100", formatWager(100))
}

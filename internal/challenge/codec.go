package challenge

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sjrf7/crypto-trivia/internal/question"
)

const fieldDelimiter = "|"

// Token type tags. Any other leading field falls back to the legacy layout.
const (
	tagClassic = "classic"
	tagAI      = "ai"
)

// Codec turns replay parameters into opaque URL-safe tokens and back. A
// token is the challenge fields joined with "|" and base64-encoded; decoding
// is a single validating parse that either yields a fully resolved Challenge
// or a typed failure, never a half-populated game.
type Codec struct {
	bank   *question.Bank
	store  Store
	logger zerolog.Logger
}

func NewCodec(bank *question.Bank, store Store, logger zerolog.Logger) *Codec {
	if store == nil {
		store = NoopStore{}
	}
	return &Codec{
		bank:   bank,
		store:  store,
		logger: logger.With().Str("component", "challenge_codec").Logger(),
	}
}

// EncodeClassic builds a token referencing classic bank questions by index.
func (c *Codec) EncodeClassic(refs []int, scoreToBeat int, invite Invite) (string, error) {
	if len(refs) == 0 {
		return "", fmt.Errorf("encode classic challenge: no question refs")
	}
	indices := make([]string, len(refs))
	for i, ref := range refs {
		if ref < 0 || ref >= c.bank.Len() {
			return "", fmt.Errorf("encode classic challenge: ref %d outside bank", ref)
		}
		indices[i] = strconv.Itoa(ref)
	}

	fields := []string{
		tagClassic,
		strings.Join(indices, ","),
		strconv.Itoa(scoreToBeat),
		formatWager(invite.Wager),
		url.QueryEscape(invite.ChallengerName),
		url.QueryEscape(invite.Message),
	}
	return encodeToken(fields), nil
}

// EncodeAI persists the question payload in the store and builds a token
// carrying only the store ID. An unavailable store fails the encode rather
// than minting a token nobody can redeem.
func (c *Codec) EncodeAI(ctx context.Context, payload Payload, scoreToBeat int, invite Invite) (string, error) {
	if len(payload.Questions) == 0 {
		return "", fmt.Errorf("encode ai challenge: empty question payload")
	}
	id, err := c.store.Put(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("encode ai challenge: %w", err)
	}
	if id == "" {
		return "", ErrStoreUnavailable
	}

	fields := []string{
		tagAI,
		id,
		strconv.Itoa(scoreToBeat),
		formatWager(invite.Wager),
		url.QueryEscape(invite.ChallengerName),
	}
	c.logger.Debug().Str("challenge_id", id).Msg("ai challenge stored")
	return encodeToken(fields), nil
}

// Decode validates a token and resolves it into replay parameters. The
// leading field dispatches between classic, ai, and the tagless legacy
// classic layout.
func (c *Codec) Decode(ctx context.Context, token string) (*Challenge, error) {
	raw, err := decodeToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	fields := strings.Split(raw, fieldDelimiter)
	switch fields[0] {
	case tagClassic:
		return c.decodeClassic(fields)
	case tagAI:
		return c.decodeAI(ctx, fields)
	default:
		return c.decodeLegacy(fields)
	}
}

func (c *Codec) decodeClassic(fields []string) (*Challenge, error) {
	if len(fields) < 5 {
		return nil, fmt.Errorf("%w: classic token has %d fields", ErrMalformedToken, len(fields))
	}

	refs, questions, err := c.resolveRefs(fields[1])
	if err != nil {
		return nil, err
	}
	scoreToBeat, wager, err := parseStakes(fields[2], fields[3])
	if err != nil {
		return nil, err
	}

	challenger, err := url.QueryUnescape(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: challenger encoding: %v", ErrMalformedToken, err)
	}

	message := ""
	if len(fields) >= 6 && fields[5] != "" {
		decoded, err := url.QueryUnescape(fields[5])
		if err != nil {
			return nil, fmt.Errorf("%w: message encoding: %v", ErrMalformedToken, err)
		}
		message = decoded
	}

	return &Challenge{
		Kind:           KindClassic,
		Questions:      questions,
		Refs:           refs,
		ScoreToBeat:    scoreToBeat,
		Wager:          wager,
		ChallengerName: challenger,
		Message:        message,
	}, nil
}

func (c *Codec) decodeAI(ctx context.Context, fields []string) (*Challenge, error) {
	if len(fields) < 5 {
		return nil, fmt.Errorf("%w: ai token has %d fields", ErrMalformedToken, len(fields))
	}
	id := fields[1]
	if id == "" {
		return nil, fmt.Errorf("%w: ai token has empty challenge id", ErrMalformedToken)
	}
	scoreToBeat, wager, err := parseStakes(fields[2], fields[3])
	if err != nil {
		return nil, err
	}

	challenger, err := url.QueryUnescape(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: challenger encoding: %v", ErrMalformedToken, err)
	}

	payload, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read challenge store: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: id %s", ErrChallengeNotFound, id)
	}

	return &Challenge{
		Kind:           KindAI,
		Topic:          payload.Topic,
		Questions:      payload.Questions,
		StoreID:        id,
		ScoreToBeat:    scoreToBeat,
		Wager:          wager,
		ChallengerName: challenger,
	}, nil
}

// decodeLegacy handles the pre-type format: indices|scoreToBeat|wager|challenger.
func (c *Codec) decodeLegacy(fields []string) (*Challenge, error) {
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: legacy token has %d fields", ErrMalformedToken, len(fields))
	}

	refs, questions, err := c.resolveRefs(fields[0])
	if err != nil {
		return nil, err
	}
	scoreToBeat, wager, err := parseStakes(fields[1], fields[2])
	if err != nil {
		return nil, err
	}

	return &Challenge{
		Kind:           KindLegacy,
		Questions:      questions,
		Refs:           refs,
		ScoreToBeat:    scoreToBeat,
		Wager:          wager,
		ChallengerName: fields[3],
	}, nil
}

func (c *Codec) resolveRefs(field string) ([]int, []question.Question, error) {
	if field == "" {
		return nil, nil, fmt.Errorf("%w: empty question indices", ErrMalformedToken)
	}
	parts := strings.Split(field, ",")
	refs := make([]int, len(parts))
	for i, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: question index %q", ErrMalformedToken, part)
		}
		refs[i] = idx
	}
	questions, err := c.bank.Select(refs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return refs, questions, nil
}

func parseStakes(scoreField, wagerField string) (int, float64, error) {
	scoreToBeat, err := strconv.Atoi(scoreField)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: score %q", ErrMalformedToken, scoreField)
	}

	wager := 0.0
	if wagerField != "" {
		wager, err = strconv.ParseFloat(wagerField, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: wager %q", ErrMalformedToken, wagerField)
		}
	}
	if wager < 0 {
		return 0, 0, fmt.Errorf("%w: negative wager", ErrMalformedToken)
	}
	return scoreToBeat, wager, nil
}

func formatWager(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// encodeToken joins fields and applies URL-safe unpadded base64, so tokens
// drop into a URL path segment without further escaping.
func encodeToken(fields []string) string {
	joined := strings.Join(fields, fieldDelimiter)
	return base64.RawURLEncoding.EncodeToString([]byte(joined))
}

// decodeToken accepts the URL-safe alphabet plus the padded and standard
// variants so tokens minted by older clients still decode.
func decodeToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("empty token")
	}
	encodings := []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.StdEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		raw, err := enc.DecodeString(token)
		if err == nil {
			return string(raw), nil
		}
		lastErr = err
	}
	return "", lastErr
}

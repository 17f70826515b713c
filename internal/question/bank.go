package question

import (
	"fmt"
	"math/rand"
)

// classicQuestions is the canonical built-in bank. Classic challenge tokens
// reference questions by position in this slice, so the ordering is a
// compatibility contract: append only, never reorder or remove.
var classicQuestions = []Question{
	{Prompt: "Who is the pseudonymous creator of Bitcoin?", Answer: "Satoshi Nakamoto", Options: []string{"Satoshi Nakamoto", "Vitalik Buterin", "Charlie Lee", "Hal Finney"}},
	{Prompt: "What is the maximum supply of Bitcoin?", Answer: "21 million", Options: []string{"21 million", "100 million", "42 million", "There is no cap"}},
	{Prompt: "Which consensus mechanism does Ethereum use after The Merge?", Answer: "Proof of Stake", Options: []string{"Proof of Stake", "Proof of Work", "Proof of Authority", "Proof of History"}},
	{Prompt: "What does 'HODL' originally come from?", Answer: "A misspelling of 'hold' on a forum", Options: []string{"A misspelling of 'hold' on a forum", "Hold On for Dear Life", "A trading algorithm", "A hardware wallet brand"}},
	{Prompt: "What year was the Bitcoin genesis block mined?", Answer: "2009", Options: []string{"2009", "2008", "2010", "2011"}},
	{Prompt: "Which of these is a layer-2 scaling solution for Ethereum?", Answer: "Arbitrum", Options: []string{"Arbitrum", "Dogecoin", "Monero", "Cardano"}},
	{Prompt: "What is a 'gas fee' on Ethereum?", Answer: "The cost to execute a transaction", Options: []string{"The cost to execute a transaction", "A tax paid to miners' unions", "The price of ETH in USD", "A penalty for failed trades"}},
	{Prompt: "Roughly how often does the Bitcoin halving occur?", Answer: "Every four years", Options: []string{"Every four years", "Every year", "Every ten years", "Every six months"}},
	{Prompt: "Which cryptocurrency is known as 'digital silver'?", Answer: "Litecoin", Options: []string{"Litecoin", "Ripple", "Tether", "Solana"}},
	{Prompt: "What does NFT stand for?", Answer: "Non-Fungible Token", Options: []string{"Non-Fungible Token", "New Financial Technology", "Network File Transfer", "Non-Fiat Treasury"}},
	{Prompt: "Which stablecoin is issued by Circle?", Answer: "USDC", Options: []string{"USDC", "USDT", "DAI", "BUSD"}},
	{Prompt: "What is the smallest unit of Bitcoin called?", Answer: "Satoshi", Options: []string{"Satoshi", "Wei", "Gwei", "Bit"}},
	{Prompt: "Who co-founded Ethereum?", Answer: "Vitalik Buterin", Options: []string{"Vitalik Buterin", "Satoshi Nakamoto", "Sam Bankman-Fried", "Brian Armstrong"}},
	{Prompt: "What is a '51% attack'?", Answer: "Controlling most of a network's mining power", Options: []string{"Controlling most of a network's mining power", "Stealing 51% of a wallet", "A flash crash of 51%", "A type of phishing scam"}},
	{Prompt: "Which blockchain popularized smart contracts?", Answer: "Ethereum", Options: []string{"Ethereum", "Bitcoin", "Dogecoin", "Stellar"}},
	{Prompt: "What does DeFi stand for?", Answer: "Decentralized Finance", Options: []string{"Decentralized Finance", "Digital Finance", "Derivative Finance", "Distributed Fiat"}},
	{Prompt: "What is a 'cold wallet'?", Answer: "An offline crypto storage device", Options: []string{"An offline crypto storage device", "A wallet with no funds", "A frozen exchange account", "A wallet in a cold country"}},
	{Prompt: "Which exchange collapsed in November 2022?", Answer: "FTX", Options: []string{"FTX", "Binance", "Coinbase", "Kraken"}},
	{Prompt: "What animal represents a rising crypto market?", Answer: "Bull", Options: []string{"Bull", "Bear", "Whale", "Wolf"}},
	{Prompt: "What is the name of Dogecoin's mascot breed?", Answer: "Shiba Inu", Options: []string{"Shiba Inu", "Golden Retriever", "Corgi", "Akita"}},
}

// Bank is the order-stable classic question list referenced by index from
// classic challenge tokens.
type Bank struct {
	questions []Question
}

// ClassicBank returns the built-in crypto trivia bank.
func ClassicBank() *Bank {
	return &Bank{questions: classicQuestions}
}

// NewBank builds a bank from an explicit question list (used in tests).
func NewBank(questions []Question) *Bank {
	return &Bank{questions: questions}
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// ByIndex returns a copy of the question at position i with OriginalIndex set.
func (b *Bank) ByIndex(i int) (Question, error) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, fmt.Errorf("question index %d out of range [0,%d)", i, len(b.questions))
	}
	q := b.questions[i]
	q.Options = append([]string(nil), q.Options...)
	q.OriginalIndex = i
	return q, nil
}

// Select resolves an ordered index list into questions. Any out-of-range
// index fails the whole selection.
func (b *Bank) Select(indices []int) ([]Question, error) {
	questions := make([]Question, 0, len(indices))
	for _, idx := range indices {
		q, err := b.ByIndex(idx)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// Draw picks n distinct random questions from the bank.
func (b *Bank) Draw(rng *rand.Rand, n int) ([]Question, error) {
	if n <= 0 || n > len(b.questions) {
		return nil, fmt.Errorf("cannot draw %d questions from bank of %d", n, len(b.questions))
	}
	perm := rng.Perm(len(b.questions))
	questions := make([]Question, 0, n)
	for _, idx := range perm[:n] {
		q, err := b.ByIndex(idx)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

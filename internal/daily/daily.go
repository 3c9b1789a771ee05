package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Answers is the slice of the word list a Source deals from.
type Answers interface {
	Answers() []string
	RandomAnswer() string
}

// Source picks hidden words: one per calendar day, or at random.
type Source struct {
	list Answers
	salt string
}

// NewSource builds a Source over list. salt keys the daily sequence.
func NewSource(list Answers, salt string) *Source {
	return &Source{list: list, salt: salt}
}

// WordForDate returns the answer for t's UTC day and its index.
// The same date and salt always give the same word.
func (s *Source) WordForDate(t time.Time) (word string, index int) {
	answers := s.list.Answers()
	if len(answers) == 0 {
		return "", 0
	}
	index = WordIndex(t, s.salt, len(answers))
	return answers[index], index
}

// RandomWord returns a random answer.
func (s *Source) RandomWord() string {
	return s.list.RandomAnswer()
}

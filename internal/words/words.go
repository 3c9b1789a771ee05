// internal/words/words.go
//
// Word list management for Hardle.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or the embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Answer dictionary queries (IsValidWord) and hand out random answers.
//
// Word Lists:
//   - "answers": words that can be dealt as the hidden word.
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//   1. answersPath and allowedPath both set → read both files.
//   2. only allowedPath set → that file serves as both lists.
//   3. neither set → embedded defaults from the assets package.
//
// Constraints:
//   • Words must be 4 alphabetic letters; anything else is dropped.
//   • Lists are normalized to uppercase.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
)

// Len is the word length this package accepts.
const Len = 4

// List is a loaded pair of word lists.
type List struct {
	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{} // answers ∪ guesses
}

// Load reads word lists following the rules in the package comment.
// Returns an error if the answers list ends up empty.
func Load(answersPath, allowedPath string) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		return embedded()
	}
	return FromLists(ansList, allowList)
}

// FromLists builds a List from in-memory slices.
// Entries are normalized and filtered the same way as files.
func FromLists(answers, allowed []string) (*List, error) {
	ans := normalize(answers)
	if len(ans) == 0 {
		return nil, errors.New("words: answers list is empty")
	}
	l := &List{
		answers:    ans,
		answersSet: toSet(ans),
		allowedSet: toSet(ans),
	}
	for _, w := range normalize(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return normalize(out), sc.Err()
}

// normalize trims, uppercases and keeps only valid 4-letter words.
func normalize(in []string) []string {
	var out []string
	for _, line := range in {
		w := strings.ToUpper(strings.TrimSpace(line))
		if len(w) == Len && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Answers returns the answer list in file order.
func (l *List) Answers() []string { return l.answers }

// IsValidWord reports whether w is a valid guess (answers ∪ guesses).
func (l *List) IsValidWord(w string) bool {
	_, ok := l.allowedSet[strings.ToUpper(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToUpper(w)]
	return ok
}

// RandomAnswer returns a cryptographically random answer.
func (l *List) RandomAnswer() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}

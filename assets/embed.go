// Package assets embeds the default Hardle word lists.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// AnswersList returns the words that can be dealt as answers.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// AllowedList returns extra words accepted as guesses.
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}

// internal/game/snapshot.go
//
// Flat, order-preserving save records for a Game.
// Everything is plain slices of records: tiles row by row, keyboard colors and
// letter bounds as explicit letter/value pairs in alphabet order. Nothing
// depends on how the Game keeps these in memory.
//
// Restore validates the record before building a Game; any problem is reported
// as ErrBadSnapshot so callers can treat it as "no saved state".

package game

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/robalobadob/hardle/internal/deduce"
)

// SnapshotVersion is bumped whenever the record layout changes.
const SnapshotVersion = 1

// ErrBadSnapshot marks a snapshot that cannot be restored.
var ErrBadSnapshot = errors.New("game: bad snapshot")

// Snapshot is the persisted form of a Game.
type Snapshot struct {
	Version        int            `json:"version"`
	Answer         string         `json:"answer"`
	CurrentGuess   string         `json:"currentGuess"`
	Guesses        []Guess        `json:"guesses"`
	CurrentRow     int            `json:"currentRow"`
	Mode           Mode           `json:"mode"`
	GameOver       bool           `json:"gameOver"`
	Won            bool           `json:"won"`
	Tiles          [][]TileRecord `json:"tiles"`
	KeyboardColors []LetterColor  `json:"keyboardColors"`
	LetterMin      []LetterCount  `json:"letterMin"`
	LetterMax      []LetterCount  `json:"letterMax"`
}

// TileRecord is one saved tile.
type TileRecord struct {
	Letter string `json:"letter"`
	Mark   Mark   `json:"mark"`
	Dot    Mark   `json:"dot"`
}

// LetterColor pairs a letter with its keyboard color.
type LetterColor struct {
	Letter string   `json:"letter"`
	Color  KeyColor `json:"color"`
}

// LetterCount pairs a letter with a count.
type LetterCount struct {
	Letter string `json:"letter"`
	Count  int    `json:"count"`
}

// Snapshot flattens g.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Version:      SnapshotVersion,
		Answer:       g.Answer,
		CurrentGuess: g.Buffer,
		Guesses:      append([]Guess{}, g.Guesses...),
		CurrentRow:   g.CurrentRow,
		Mode:         g.Mode,
		GameOver:     g.GameOver,
		Won:          g.Won,
		Tiles:        make([][]TileRecord, Rows),
	}
	for r := range g.Tiles {
		s.Tiles[r] = make([]TileRecord, Cols)
		for c, t := range g.Tiles[r] {
			s.Tiles[r][c] = TileRecord{Letter: t.Letter, Mark: t.Mark, Dot: t.Dot}
		}
	}
	for i, c := range g.Keyboard {
		if c != KeyNone {
			s.KeyboardColors = append(s.KeyboardColors, LetterColor{Letter: letter(i), Color: c})
		}
	}
	s.LetterMin = make([]LetterCount, 26)
	s.LetterMax = make([]LetterCount, 26)
	for i := 0; i < 26; i++ {
		s.LetterMin[i] = LetterCount{Letter: letter(i), Count: g.Bounds.Min[i]}
		s.LetterMax[i] = LetterCount{Letter: letter(i), Count: g.Bounds.Max[i]}
	}
	return s
}

// Restore rebuilds a Game from s. dict is attached for future submissions.
// Letters missing from LetterMin/LetterMax keep their default bounds.
func Restore(s Snapshot, dict Dictionary) (*Game, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	g := New(s.Answer, s.Mode, dict)
	g.Buffer = s.CurrentGuess
	g.Guesses = append([]Guess{}, s.Guesses...)
	g.CurrentRow = s.CurrentRow
	g.GameOver = s.GameOver
	g.Won = s.Won
	for r := range s.Tiles {
		for c, t := range s.Tiles[r] {
			g.Tiles[r][c] = TileState{Letter: t.Letter, Mark: t.Mark, Dot: t.Dot}
		}
	}
	for _, kc := range s.KeyboardColors {
		g.Keyboard[idx(kc.Letter[0])] = kc.Color
	}
	for _, lc := range s.LetterMin {
		g.Bounds.Min[idx(lc.Letter[0])] = lc.Count
	}
	for _, lc := range s.LetterMax {
		g.Bounds.Max[idx(lc.Letter[0])] = lc.Count
	}
	for i := 0; i < 26; i++ {
		if g.Bounds.Min[i] > g.Bounds.Max[i] {
			return nil, fmt.Errorf("%w: bounds for %s", ErrBadSnapshot, letter(i))
		}
	}
	return g, nil
}

// Encode marshals s as JSON.
func (s Snapshot) Encode() ([]byte, error) { return json.Marshal(s) }

// DecodeSnapshot parses JSON produced by Encode.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	return s, nil
}

func (s Snapshot) validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrBadSnapshot}, args...)...)
	}

	if s.Version != SnapshotVersion {
		return bad("version %d", s.Version)
	}
	if !isWord(s.Answer) {
		return bad("answer %q", s.Answer)
	}
	if s.Mode != ModeHard && s.Mode != ModeEasy {
		return bad("mode %q", s.Mode)
	}
	if s.CurrentRow < 0 || s.CurrentRow > Rows || len(s.Guesses) != s.CurrentRow {
		return bad("row %d with %d guesses", s.CurrentRow, len(s.Guesses))
	}
	for _, gs := range s.Guesses {
		if !isWord(gs.Word) || gs.Score < 0 || gs.Score > Cols {
			return bad("guess %q/%d", gs.Word, gs.Score)
		}
	}
	if len(s.CurrentGuess) > Cols || (s.CurrentGuess != "" && !isLetters(s.CurrentGuess)) {
		return bad("current guess %q", s.CurrentGuess)
	}
	if len(s.Tiles) != Rows {
		return bad("%d tile rows", len(s.Tiles))
	}
	for _, row := range s.Tiles {
		if len(row) != Cols {
			return bad("%d tile cols", len(row))
		}
		for _, t := range row {
			if (t.Letter != "" && !isLetters(t.Letter)) || len(t.Letter) > 1 || !t.Mark.Valid() || !t.Dot.Valid() {
				return bad("tile %+v", t)
			}
		}
	}
	if err := s.validateProgress(); err != nil {
		return err
	}
	for _, kc := range s.KeyboardColors {
		if len(kc.Letter) != 1 || !isLetters(kc.Letter) || !kc.Color.valid() {
			return bad("keyboard %+v", kc)
		}
	}
	for _, list := range [][]LetterCount{s.LetterMin, s.LetterMax} {
		for _, lc := range list {
			if len(lc.Letter) != 1 || !isLetters(lc.Letter) || lc.Count < 0 || lc.Count > deduce.WordLen {
				return bad("bound %+v", lc)
			}
		}
	}
	return nil
}

// validateProgress checks that guesses, flags and tile letters describe a
// state SubmitGuess and the buffer edits could have produced.
// Shapes must already be valid.
func (s Snapshot) validateProgress() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrBadSnapshot}, args...)...)
	}

	last := len(s.Guesses) - 1
	for i, gs := range s.Guesses {
		if gs.Score != Score(gs.Word, s.Answer) {
			return bad("guess %q scored %d", gs.Word, gs.Score)
		}
		if gs.Word == s.Answer && i != last {
			return bad("play continued after solving on row %d", i)
		}
	}
	won := last >= 0 && s.Guesses[last].Word == s.Answer
	if s.Won != won {
		return bad("won=%v after %d guesses", s.Won, len(s.Guesses))
	}
	if over := won || s.CurrentRow == Rows; s.GameOver != over {
		return bad("gameOver=%v on row %d", s.GameOver, s.CurrentRow)
	}
	if s.GameOver && s.CurrentGuess != "" {
		return bad("current guess %q on a finished game", s.CurrentGuess)
	}

	for r, row := range s.Tiles {
		want := ""
		switch {
		case r < s.CurrentRow:
			want = s.Guesses[r].Word
		case r == s.CurrentRow:
			want = s.CurrentGuess
		}
		for c, t := range row {
			exp := ""
			if c < len(want) {
				exp = want[c : c+1]
			}
			if t.Letter != exp {
				return bad("tile %d,%d is %q, want %q", r, c, t.Letter, exp)
			}
		}
	}
	return nil
}

func letter(i int) string { return string(deduce.Letter(i)) }

func isWord(s string) bool { return len(s) == Cols && isLetters(s) }

// isLetters reports whether s is non-empty and all uppercase A–Z.
func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if idx(s[i]) < 0 {
			return false
		}
	}
	return true
}

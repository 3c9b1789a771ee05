// internal/game/engine.go
//
// Turn-based state machine for a single Hardle game.
// Responsibilities:
//   - Create new games on a fixed 8x4 board.
//   - Buffer letters for the current row, validate and score submissions.
//   - Track state transitions: active → won/lost.
//   - Hard mode: let the player cycle marks on ambiguous rows.
//   - Easy mode: re-run the deduction engine after every change.
//   - Keep the keyboard projection in step with whichever mode is active.
//
// Notes:
//   - Illegal commands are silent no-ops; the caller only needs the bool.
//   - Submission failures are reported as a Reason, never as an error.

package game

import (
	"strings"

	"github.com/robalobadob/hardle/internal/deduce"
)

// Reason explains why a submission was refused.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonTooShort Reason = "not enough letters"
	ReasonNotAWord Reason = "not a valid word"
	ReasonGameOver Reason = "game over"
)

// SubmitResult is the outcome of SubmitGuess.
type SubmitResult struct {
	OK     bool   `json:"ok"`
	Reason Reason `json:"reason,omitempty"`
	Score  int    `json:"score"`
	Won    bool   `json:"won"`
	Lost   bool   `json:"lost"`
}

// New constructs a fresh game for answer.
// A nil dict accepts any four letters (test mode).
func New(answer string, mode Mode, dict Dictionary) *Game {
	if mode != ModeEasy {
		mode = ModeHard
	}
	return &Game{
		Answer:  strings.ToUpper(strings.TrimSpace(answer)),
		Guesses: []Guess{},
		Mode:    mode,
		Bounds:  deduce.NewBounds(),
		dict:    dict,
	}
}

// AddLetter appends ch to the current row.
// Returns false if the game is over, the row is full, or ch is not a letter.
func (g *Game) AddLetter(ch string) bool {
	if g.GameOver || len(g.Buffer) >= Cols {
		return false
	}
	ch = strings.ToUpper(ch)
	if len(ch) != 1 || idx(ch[0]) < 0 {
		return false
	}
	g.Tiles[g.CurrentRow][len(g.Buffer)].Letter = ch
	g.Buffer += ch
	return true
}

// RemoveLetter pops the last buffered letter.
func (g *Game) RemoveLetter() bool {
	if g.GameOver || len(g.Buffer) == 0 {
		return false
	}
	col := len(g.Buffer) - 1
	g.Tiles[g.CurrentRow][col].Letter = ""
	g.Buffer = g.Buffer[:col]
	return true
}

// SubmitGuess scores the buffered row and advances the game.
//
// Refusals leave the state untouched. On success:
//   - the guess is appended to history;
//   - a win paints the answer's letters green, a zero score paints the
//     guess's letters red;
//   - the row advances and, in easy mode, deduction re-runs over the history;
//   - running out of rows without a win ends the game.
func (g *Game) SubmitGuess() SubmitResult {
	switch {
	case g.GameOver:
		return SubmitResult{Reason: ReasonGameOver}
	case len(g.Buffer) != Cols:
		return SubmitResult{Reason: ReasonTooShort}
	case g.dict != nil && !g.dict.IsValidWord(g.Buffer):
		return SubmitResult{Reason: ReasonNotAWord}
	}

	word := g.Buffer
	score := Score(word, g.Answer)
	g.Guesses = append(g.Guesses, Guess{Word: word, Score: score})

	if word == g.Answer {
		g.Won, g.GameOver = true, true
		g.paint(g.Answer, KeyGreen)
	} else if score == 0 {
		g.paint(word, KeyRed)
	}

	g.CurrentRow++
	g.Buffer = ""

	if g.Mode == ModeEasy {
		g.deduce()
	}

	if g.CurrentRow == Rows && !g.Won {
		g.GameOver = true
	}
	return SubmitResult{OK: true, Score: score, Won: g.Won, Lost: g.GameOver && !g.Won}
}

// ToggleTileMark cycles a hard-mode mark: none → incorrect → correct → none.
// Only submitted rows whose score is 1..3 can be marked.
func (g *Game) ToggleTileMark(row, col int) bool {
	if g.Mode != ModeHard {
		return false
	}
	if row < 0 || row >= g.CurrentRow || col < 0 || col >= Cols {
		return false
	}
	if s := g.Guesses[row].Score; s == 0 || s == Cols {
		return false
	}

	t := &g.Tiles[row][col]
	switch t.Mark {
	case MarkNone:
		t.Mark = MarkIncorrect
	case MarkIncorrect:
		t.Mark = MarkCorrect
	default:
		t.Mark = MarkNone
	}
	g.refreshOutlines()
	return true
}

// ToggleMode flips between hard and easy.
// Easy: deduce from scratch and paint the keyboard from the result.
// Hard: drop dots and bounds; the keyboard goes back to history colors plus
// outlines from the player's marks, which are kept.
func (g *Game) ToggleMode() {
	if g.Mode == ModeHard {
		g.Mode = ModeEasy
		g.deduce()
		return
	}

	g.Mode = ModeHard
	for r := range g.Tiles {
		for c := range g.Tiles[r] {
			g.Tiles[r][c].Dot = MarkNone
		}
	}
	g.Bounds = deduce.NewBounds()
	g.Keyboard = [26]KeyColor{}
	for _, gs := range g.Guesses {
		if gs.Word == g.Answer {
			g.paint(gs.Word, KeyGreen)
		} else if gs.Score == 0 {
			g.paint(gs.Word, KeyRed)
		}
	}
	g.refreshOutlines()
}

// deduce re-runs the engine over the full history and projects its output
// onto dots and keyboard.
func (g *Game) deduce() {
	rows := make([]deduce.Row, len(g.Guesses))
	for i, gs := range g.Guesses {
		rows[i] = deduce.Row{Word: gs.Word, Score: gs.Score}
	}
	res := deduce.Run(rows)

	for r := range g.Tiles {
		for c := range g.Tiles[r] {
			dot := MarkNone
			if r < len(res.Dots) {
				dot = res.Dots[r][c]
			}
			g.Tiles[r][c].Dot = dot
		}
	}
	g.Bounds = res.Bounds

	g.Keyboard = [26]KeyColor{}
	for i := range g.Keyboard {
		switch {
		case g.Bounds.Min[i] > 0:
			g.Keyboard[i] = KeyGreen
		case g.Bounds.Max[i] == 0:
			g.Keyboard[i] = KeyRed
		}
	}
}

// refreshOutlines recomputes outline colors from every marked tile.
// Solid colors are never touched.
func (g *Game) refreshOutlines() {
	var anyCorrect, anyIncorrect [26]bool
	for r := 0; r < g.CurrentRow; r++ {
		for _, t := range g.Tiles[r] {
			if t.Letter == "" {
				continue
			}
			i := idx(t.Letter[0])
			switch t.Mark {
			case MarkCorrect:
				anyCorrect[i] = true
			case MarkIncorrect:
				anyIncorrect[i] = true
			}
		}
	}

	for i, c := range g.Keyboard {
		if c.Solid() {
			continue
		}
		switch {
		case anyCorrect[i]:
			g.Keyboard[i] = KeyGreenOutline
		case anyIncorrect[i]:
			g.Keyboard[i] = KeyRedOutline
		default:
			g.Keyboard[i] = KeyNone
		}
	}
}

// paint sets a solid color on every letter of word.
func (g *Game) paint(word string, c KeyColor) {
	for i := 0; i < len(word); i++ {
		if j := idx(word[i]); j >= 0 {
			g.Keyboard[j] = c
		}
	}
}

// KeyColorOf returns the keyboard color for letter l ('A'..'Z').
func (g *Game) KeyColorOf(l byte) KeyColor {
	if i := idx(l); i >= 0 {
		return g.Keyboard[i]
	}
	return KeyNone
}

// State reports a coarse string for the game: "playing", "won" or "lost".
func (g *Game) State() string {
	if g.GameOver {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// internal/game/types.go
//
// Core type definitions for the Hardle game engine.
// Defines:
//   - Mode: hard (manual marks) or easy (engine-deduced dots).
//   - Mark: tri-state tile annotation (shared with the deduction engine).
//   - KeyColor: keyboard projection per letter.
//   - TileState, Guess, Game.

package game

import "github.com/robalobadob/hardle/internal/deduce"

const (
	Rows = 8              // guesses per game
	Cols = deduce.WordLen // letters per guess
)

// Mode selects who annotates submitted tiles.
type Mode string

const (
	ModeHard Mode = "hard" // player marks tiles by hand
	ModeEasy Mode = "easy" // deduction engine places dots
)

// Mark is a tile annotation: none, incorrect or correct.
type Mark = deduce.Mark

const (
	MarkNone      = deduce.MarkNone
	MarkIncorrect = deduce.MarkIncorrect
	MarkCorrect   = deduce.MarkCorrect
)

// KeyColor is how a letter is painted on the on-screen keyboard.
// Solid colors come from hard evidence (a win, a zero score, or deduction);
// outlines only echo the player's own marks.
type KeyColor string

const (
	KeyNone         KeyColor = ""
	KeyGreen        KeyColor = "green"
	KeyRed          KeyColor = "red"
	KeyGreenOutline KeyColor = "green-outline"
	KeyRedOutline   KeyColor = "red-outline"
)

// Solid reports whether c is a non-outline color.
func (c KeyColor) Solid() bool { return c == KeyGreen || c == KeyRed }

func (c KeyColor) valid() bool {
	switch c {
	case KeyNone, KeyGreen, KeyRed, KeyGreenOutline, KeyRedOutline:
		return true
	}
	return false
}

// TileState is one cell of the board.
type TileState struct {
	Letter string // "" or one uppercase letter
	Mark   Mark   // hard mode, player-set
	Dot    Mark   // easy mode, engine-set
}

// Guess is a submitted word and its score.
type Guess struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// Dictionary decides whether a word may be guessed.
type Dictionary interface {
	IsValidWord(word string) bool
}

// Game holds the complete state of one puzzle.
// It is owned by a single caller and mutated only through its command methods.
type Game struct {
	Answer     string // uppercase
	Buffer     string // letters typed into the current row
	Guesses    []Guess
	CurrentRow int
	Mode       Mode
	GameOver   bool
	Won        bool
	Tiles      [Rows][Cols]TileState
	Keyboard   [26]KeyColor
	Bounds     deduce.Bounds

	dict Dictionary // nil skips validation
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hardle/internal/deduce"
)

type wordSet map[string]bool

func (w wordSet) IsValidWord(s string) bool { return w[s] }

func typeWord(t *testing.T, g *Game, w string) {
	t.Helper()
	for i := 0; i < len(w); i++ {
		require.True(t, g.AddLetter(string(w[i])), "add %c", w[i])
	}
}

func submit(t *testing.T, g *Game, w string) SubmitResult {
	t.Helper()
	typeWord(t, g, w)
	res := g.SubmitGuess()
	require.True(t, res.OK, "submit %s: %s", w, res.Reason)
	return res
}

func TestNew(t *testing.T) {
	g := New(" rate ", "", nil)
	assert.Equal(t, "RATE", g.Answer)
	assert.Equal(t, ModeHard, g.Mode)
	assert.Equal(t, 0, g.CurrentRow)
	assert.Empty(t, g.Guesses)
	assert.Equal(t, "playing", g.State())

	assert.Equal(t, ModeEasy, New("RATE", ModeEasy, nil).Mode)
}

func TestAddRemoveLetter(t *testing.T) {
	g := New("RATE", ModeHard, nil)

	assert.False(t, g.AddLetter("1"))
	assert.False(t, g.AddLetter("ab"))
	assert.False(t, g.RemoveLetter())

	typeWord(t, g, "rat")
	assert.Equal(t, "RAT", g.Buffer)
	assert.Equal(t, "T", g.Tiles[0][2].Letter)

	require.True(t, g.AddLetter("E"))
	assert.False(t, g.AddLetter("S"), "row is full")

	require.True(t, g.RemoveLetter())
	assert.Equal(t, "RAT", g.Buffer)
	assert.Equal(t, "", g.Tiles[0][3].Letter)
}

func TestSubmitGuess_Refusals(t *testing.T) {
	g := New("RATE", ModeHard, wordSet{"RATE": true, "RANT": true})

	typeWord(t, g, "RAN")
	res := g.SubmitGuess()
	assert.False(t, res.OK)
	assert.Equal(t, ReasonTooShort, res.Reason)

	typeWord(t, g, "X")
	res = g.SubmitGuess()
	assert.Equal(t, ReasonNotAWord, res.Reason)
	assert.Equal(t, "RANX", g.Buffer, "refusal keeps the buffer")
	assert.Empty(t, g.Guesses)
	assert.Equal(t, 0, g.CurrentRow)

	require.True(t, g.RemoveLetter())
	submit(t, g, "T")
	assert.Equal(t, []Guess{{Word: "RANT", Score: 3}}, g.Guesses)
	assert.Equal(t, 1, g.CurrentRow)
	assert.Equal(t, "", g.Buffer)
}

func TestSubmitGuess_WinPaintsAnswerGreen(t *testing.T) {
	g := New("RATE", ModeHard, nil)

	submit(t, g, "RANT")
	res := submit(t, g, "TEAR")
	assert.Equal(t, 4, res.Score)
	assert.False(t, res.Won, "an anagram is not a win")

	res = submit(t, g, "RATE")
	assert.True(t, res.Won)
	assert.False(t, res.Lost)
	assert.True(t, g.GameOver)
	assert.True(t, g.Won)
	assert.Equal(t, 3, g.CurrentRow)
	for _, l := range []byte("RATE") {
		assert.Equal(t, KeyGreen, g.KeyColorOf(l), "%c", l)
	}
	assert.Equal(t, KeyNone, g.KeyColorOf('N'))
	assert.Equal(t, "won", g.State())

	assert.False(t, g.AddLetter("A"))
	assert.Equal(t, ReasonGameOver, g.SubmitGuess().Reason)
}

func TestSubmitGuess_EightMissesLose(t *testing.T) {
	g := New("RATE", ModeHard, nil)
	misses := []string{"BUSY", "MOON", "RANT", "TEAR", "LOUD", "PICK", "RATS", "GRAT"}

	for i, w := range misses {
		res := submit(t, g, w)
		if i < len(misses)-1 {
			assert.False(t, res.Lost)
			assert.False(t, g.GameOver)
		} else {
			assert.True(t, res.Lost)
		}
	}
	assert.True(t, g.GameOver)
	assert.False(t, g.Won)
	assert.Equal(t, Rows, g.CurrentRow)
	assert.Equal(t, "lost", g.State())
}

func TestSubmitGuess_ZeroScorePaintsRed(t *testing.T) {
	g := New("RATE", ModeHard, nil)
	res := submit(t, g, "BUSY")
	assert.Equal(t, 0, res.Score)
	for _, l := range []byte("BUSY") {
		assert.Equal(t, KeyRed, g.KeyColorOf(l), "%c", l)
	}
	assert.Equal(t, KeyNone, g.KeyColorOf('R'))
}

func TestToggleTileMark(t *testing.T) {
	g := New("EFGH", ModeHard, nil)
	submit(t, g, "ABCD") // 0
	submit(t, g, "ABEF") // 2
	submit(t, g, "EFGH") // win

	assert.False(t, g.ToggleTileMark(0, 0), "score 0 row")
	assert.False(t, g.ToggleTileMark(2, 0), "perfect row")
	assert.False(t, g.ToggleTileMark(3, 0), "unsubmitted row")
	assert.False(t, g.ToggleTileMark(1, 4), "column out of range")
	assert.False(t, g.ToggleTileMark(-1, 0))

	g = New("WXYZ", ModeHard, nil)
	submit(t, g, "ABCD") // 0
	submit(t, g, "WXEF") // 2

	require.True(t, g.ToggleTileMark(1, 2))
	assert.Equal(t, MarkIncorrect, g.Tiles[1][2].Mark)
	assert.Equal(t, KeyRedOutline, g.KeyColorOf('E'))

	require.True(t, g.ToggleTileMark(1, 2))
	assert.Equal(t, MarkCorrect, g.Tiles[1][2].Mark)
	assert.Equal(t, KeyGreenOutline, g.KeyColorOf('E'))

	require.True(t, g.ToggleTileMark(1, 2))
	assert.Equal(t, MarkNone, g.Tiles[1][2].Mark)
	assert.Equal(t, KeyNone, g.KeyColorOf('E'))

	require.True(t, g.ToggleTileMark(1, 0))
	assert.Equal(t, KeyRedOutline, g.KeyColorOf('W'))
}

func TestToggleTileMark_SolidColorsKept(t *testing.T) {
	g := New("EFGH", ModeHard, nil)
	submit(t, g, "ABCD") // 0
	submit(t, g, "ABEF") // 2

	require.True(t, g.ToggleTileMark(1, 0))
	require.True(t, g.ToggleTileMark(1, 0))
	assert.Equal(t, MarkCorrect, g.Tiles[1][0].Mark)
	assert.Equal(t, KeyRed, g.KeyColorOf('A'))
}

func TestToggleTileMark_EasyModeIgnored(t *testing.T) {
	g := New("WXYZ", ModeEasy, nil)
	submit(t, g, "WXEF")
	assert.False(t, g.ToggleTileMark(0, 0))
	assert.Equal(t, MarkNone, g.Tiles[0][0].Mark)
}

func TestEasyMode_DeducesAfterSubmit(t *testing.T) {
	g := New("EFGH", ModeEasy, nil)
	submit(t, g, "ABCD")
	submit(t, g, "ABEF")

	want := [Cols]Mark{MarkIncorrect, MarkIncorrect, MarkCorrect, MarkCorrect}
	for c := 0; c < Cols; c++ {
		assert.Equal(t, MarkIncorrect, g.Tiles[0][c].Dot)
		assert.Equal(t, want[c], g.Tiles[1][c].Dot)
	}
	for _, l := range []byte("ABCD") {
		assert.Equal(t, KeyRed, g.KeyColorOf(l), "%c", l)
	}
	assert.Equal(t, KeyGreen, g.KeyColorOf('E'))
	assert.Equal(t, KeyGreen, g.KeyColorOf('F'))
	assert.Equal(t, KeyNone, g.KeyColorOf('G'))
	assert.True(t, g.Bounds.Present('E'))
	assert.True(t, g.Bounds.Absent('A'))
}

func TestToggleMode(t *testing.T) {
	g := New("EFGH", ModeHard, nil)
	submit(t, g, "ABCD")
	submit(t, g, "ABEF")
	require.True(t, g.ToggleTileMark(1, 2))
	require.True(t, g.ToggleTileMark(1, 2)) // E correct

	for c := 0; c < Cols; c++ {
		assert.Equal(t, MarkNone, g.Tiles[1][c].Dot, "hard mode has no dots")
	}
	assert.Equal(t, KeyGreenOutline, g.KeyColorOf('E'))

	g.ToggleMode()
	assert.Equal(t, ModeEasy, g.Mode)
	assert.Equal(t, MarkCorrect, g.Tiles[1][3].Dot)
	assert.Equal(t, KeyGreen, g.KeyColorOf('E'))
	assert.Equal(t, KeyGreen, g.KeyColorOf('F'))
	assert.Equal(t, MarkCorrect, g.Tiles[1][2].Mark, "marks survive")

	g.ToggleMode()
	assert.Equal(t, ModeHard, g.Mode)
	for r := 0; r < g.CurrentRow; r++ {
		for c := 0; c < Cols; c++ {
			assert.Equal(t, MarkNone, g.Tiles[r][c].Dot)
		}
	}
	assert.Equal(t, deduce.NewBounds(), g.Bounds)
	assert.Equal(t, KeyRed, g.KeyColorOf('A'), "zero-score row stays red")
	assert.Equal(t, KeyGreenOutline, g.KeyColorOf('E'))
	assert.Equal(t, KeyNone, g.KeyColorOf('F'))
}

func TestApply(t *testing.T) {
	g := New("RATE", ModeHard, wordSet{"RATE": true})

	out := g.Apply(Command{Kind: CmdSubmit})
	assert.False(t, out.Changed)
	require.NotNil(t, out.Submit)
	assert.Equal(t, "Not enough letters", out.Notice)

	for _, l := range []string{"R", "A", "T", "S"} {
		assert.True(t, g.Apply(Command{Kind: CmdAddLetter, Letter: l}).Changed)
	}
	out = g.Apply(Command{Kind: CmdSubmit})
	assert.Equal(t, "Not a valid word", out.Notice)

	assert.True(t, g.Apply(Command{Kind: CmdRemoveLetter}).Changed)
	assert.True(t, g.Apply(Command{Kind: CmdAddLetter, Letter: "e"}).Changed)
	out = g.Apply(Command{Kind: CmdSubmit})
	assert.True(t, out.Changed)
	assert.Equal(t, "You won!", out.Notice)
	assert.True(t, out.Submit.Won)

	assert.False(t, g.Apply(Command{Kind: "jump"}).Changed)
	assert.True(t, g.Apply(Command{Kind: CmdToggleMode}).Changed)
	assert.Equal(t, ModeEasy, g.Mode)
}

func TestApply_LossNotice(t *testing.T) {
	g := New("RATE", ModeHard, nil)
	for i := 0; i < Rows-1; i++ {
		submit(t, g, "BUSY")
	}
	typeWord(t, g, "MOON")
	out := g.Apply(Command{Kind: CmdSubmit})
	assert.Equal(t, "Game over! Word was RATE", out.Notice)
	assert.True(t, out.Submit.Lost)
}

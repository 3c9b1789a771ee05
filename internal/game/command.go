// internal/game/command.go
//
// Command/result protocol between a front end and the engine.
// The front end names a command; Apply runs it and returns what changed plus
// any transient notice to show the player.

package game

import (
	"fmt"
	"strings"
)

// CommandKind names an input command.
type CommandKind string

const (
	CmdAddLetter    CommandKind = "add_letter"
	CmdRemoveLetter CommandKind = "remove_letter"
	CmdSubmit       CommandKind = "submit"
	CmdToggleMark   CommandKind = "toggle_mark"
	CmdToggleMode   CommandKind = "toggle_mode"
)

// Command is one player action. Letter is used by add_letter; Row/Col by toggle_mark.
type Command struct {
	Kind   CommandKind `json:"type"`
	Letter string      `json:"letter,omitempty"`
	Row    int         `json:"row,omitempty"`
	Col    int         `json:"col,omitempty"`
}

// Outcome reports the effect of a command.
type Outcome struct {
	Changed bool          `json:"changed"`
	Submit  *SubmitResult `json:"submit,omitempty"`
	Notice  string        `json:"notice,omitempty"`
}

// Apply executes cmd against g. Unknown kinds are no-ops.
func (g *Game) Apply(cmd Command) Outcome {
	switch cmd.Kind {
	case CmdAddLetter:
		return Outcome{Changed: g.AddLetter(cmd.Letter)}
	case CmdRemoveLetter:
		return Outcome{Changed: g.RemoveLetter()}
	case CmdToggleMark:
		return Outcome{Changed: g.ToggleTileMark(cmd.Row, cmd.Col)}
	case CmdToggleMode:
		g.ToggleMode()
		return Outcome{Changed: true}
	case CmdSubmit:
		res := g.SubmitGuess()
		return Outcome{Changed: res.OK, Submit: &res, Notice: g.notice(res)}
	}
	return Outcome{}
}

func (g *Game) notice(res SubmitResult) string {
	switch {
	case !res.OK:
		r := string(res.Reason)
		if r == "" {
			return ""
		}
		return strings.ToUpper(r[:1]) + r[1:]
	case res.Won:
		return "You won!"
	case res.Lost:
		return fmt.Sprintf("Game over! Word was %s", g.Answer)
	}
	return ""
}

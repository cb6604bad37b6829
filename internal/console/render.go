package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/robalobadob/coyotemind/internal/game"
	"github.com/robalobadob/coyotemind/internal/round"
	"github.com/robalobadob/coyotemind/internal/stats"
)

// one colour per Mastermind digit, up to the 10-colour maximum
var palette = []string{
	color.Red,
	color.Green,
	color.Yellow,
	color.Blue,
	color.Purple,
	color.Cyan,
	color.White,
	color.Gray,
	color.Bold + color.Red,
	color.Bold + color.Green,
}

// Renderer writes game output. It implements round.Reporter.
type Renderer struct {
	w     io.Writer
	color bool
	dev   bool
}

func NewRenderer(w io.Writer, colored, dev bool) *Renderer {
	return &Renderer{w: w, color: colored, dev: dev}
}

func (r *Renderer) paint(c, s string) string {
	if !r.color {
		return s
	}
	return color.Ize(c, s)
}

// Title prints the welcome banner.
func (r *Renderer) Title() {
	fmt.Fprintln(r.w, "\nWelcome to:")
	fmt.Fprintln(r.w, " ************************")
	fmt.Fprintln(r.w, " * Master Coyote Mind   *")
	fmt.Fprintln(r.w, " ************************")
	if r.dev {
		fmt.Fprintln(r.w, r.paint(color.Yellow, "Developer mode: ON"))
	}
}

// Banner announces the attempts left before a human guess.
func (r *Renderer) Banner(remaining int) {
	if remaining == 1 {
		fmt.Fprintln(r.w, "\n1 attempt left.")
		return
	}
	fmt.Fprintf(r.w, "\n%d attempts left.\n", remaining)
}

// Code renders a code; Mastermind digits are coloured.
func (r *Renderer) Code(c game.Code, f game.Family) string {
	if !r.color || f != game.Mastermind {
		return c.String()
	}
	var b strings.Builder
	for _, d := range c {
		b.WriteString(color.Ize(palette[d%len(palette)], strconv.Itoa(d)))
	}
	return b.String()
}

// FeedbackText renders feedback the way players read it.
// Pegs become "N present, M well placed"; hints stay as their =/+/- string.
func FeedbackText(fb game.Feedback) string {
	p, ok := fb.(game.Pegs)
	if !ok {
		return fb.String()
	}
	var parts []string
	switch {
	case p.Present == 1:
		parts = append(parts, "1 present")
	case p.Present > 1:
		parts = append(parts, strconv.Itoa(p.Present)+" present")
	}
	switch {
	case p.Exact == 1:
		parts = append(parts, "1 well placed")
	case p.Exact > 1:
		parts = append(parts, strconv.Itoa(p.Exact)+" well placed")
	}
	if len(parts) == 0 {
		return "0 present"
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) feedback(fb game.Feedback) string {
	text := FeedbackText(fb)
	if !r.color {
		return text
	}
	if h, ok := fb.(game.Hints); ok {
		var b strings.Builder
		for _, s := range h {
			c := color.Yellow
			if s == game.Equal {
				c = color.Green
			}
			b.WriteString(color.Ize(c, s.String()))
		}
		return b.String()
	}
	return color.Ize(color.Bold, text)
}

// Scored prints one turn.
func (r *Renderer) Scored(e round.Event) {
	who := "You"
	if e.Side == round.Computer {
		who = "Computer"
	}
	family := game.Recherche
	if _, ok := e.Feedback.(game.Pegs); ok {
		family = game.Mastermind
	}
	fmt.Fprintf(r.w, "%-8s %s -> %s.\n", who, r.Code(e.Guess, family), r.feedback(e.Feedback))
	if r.dev && e.Candidates >= 0 {
		fmt.Fprintln(r.w, r.paint(color.Gray, fmt.Sprintf("(dev) %d candidates left", e.Candidates)))
	}
}

// Reveal shows a secret in developer mode only.
func (r *Renderer) Reveal(label string, c game.Code) {
	if !r.dev {
		return
	}
	fmt.Fprintln(r.w, r.paint(color.Gray, fmt.Sprintf("(dev) %s: %s", label, c)))
}

// Verdict prints the end-of-round message. target is the code the human had
// to find, revealed when they did not.
func (r *Renderer) Verdict(v round.Verdict, mode round.Mode, target game.Code) {
	switch v {
	case round.HumanWon:
		fmt.Fprintln(r.w, r.paint(color.Green, "\nWell done! You found the code: "+target.String()))
	case round.ComputerWon:
		if mode == round.Duel {
			fmt.Fprintln(r.w, r.paint(color.Red, "\nToo bad! The computer found your code first. Its code was: "+target.String()))
			return
		}
		fmt.Fprintln(r.w, r.paint(color.Red, "\nToo bad! The computer found your code!"))
	case round.HumanFailed:
		fmt.Fprintln(r.w, r.paint(color.Red, "\nToo bad! You lost... The code was: "+target.String()))
	case round.ComputerFailed:
		fmt.Fprintln(r.w, r.paint(color.Green, "\nWell done! The computer lost!"))
	case round.Draw:
		fmt.Fprintln(r.w, r.paint(color.Yellow, "\nNobody found their code. The computer's code was: "+target.String()))
	case round.Aborted:
		fmt.Fprintln(r.w, r.paint(color.Red, "\nRound abandoned: the answers given to the computer contradict each other."))
	}
}

// Stats prints the session tally.
func (r *Renderer) Stats(entries []stats.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(r.w, "\nSession results:")
	for _, e := range entries {
		fmt.Fprintf(r.w, "\t%-22s played %d, won %d, streak %d (best %d)\n",
			e.Key, e.Record.Played, e.Record.Wins, e.Record.Streak, e.Record.BestStreak)
	}
}

// internal/console/prompt.go
//
// Blocking line-oriented input.
// Every reader re-prompts until it gets a valid answer or the input ends;
// end of input surfaces as io.EOF.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/robalobadob/coyotemind/internal/game"
)

// ErrCodeFormat is returned by ParseCode for text that is not a code of the rules.
var ErrCodeFormat = errors.New("console: malformed code")

// Prompter reads answers from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Choose lists options numbered from 1 and returns the 0-based index picked.
func (p *Prompter) Choose(title string, options []string) (int, error) {
	for {
		fmt.Fprintf(p.out, "\n%s\n", title)
		for i, o := range options {
			fmt.Fprintf(p.out, "\t%d : %s\n", i+1, o)
		}
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			fmt.Fprintf(p.out, "Please enter a number between 1 and %d.\n", len(options))
			continue
		}
		return n - 1, nil
	}
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "\n%s y/n\n", question)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes", "o", "oui":
			return true, nil
		case "n", "no", "non":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer 'y' for yes or 'n' for no.")
	}
}

// ReadCode prompts until the line is a code of rules.Width digits below rules.Alphabet().
func (p *Prompter) ReadCode(label string, rules game.Rules) (game.Code, error) {
	for {
		fmt.Fprintf(p.out, "%s (%d digits, 0-%d): ", label, rules.Width, rules.Alphabet()-1)
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		c, err := ParseCode(line, rules)
		if err != nil {
			fmt.Fprintf(p.out, "%v\n", err)
			continue
		}
		return c, nil
	}
}

// ParseCode reads a code from its digits; blanks between digits are ignored.
func ParseCode(s string, rules game.Rules) (game.Code, error) {
	k := rules.Alphabet()
	c := make(game.Code, 0, rules.Width)
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%q is not a digit: %w", r, ErrCodeFormat)
		}
		d := int(r - '0')
		if d >= k {
			return nil, fmt.Errorf("digit %d is above %d: %w", d, k-1, ErrCodeFormat)
		}
		c = append(c, d)
	}
	if len(c) != rules.Width {
		return nil, fmt.Errorf("expected %d digits, got %d: %w", rules.Width, len(c), ErrCodeFormat)
	}
	return c, nil
}

// HumanSource reads guesses from the console.
type HumanSource struct {
	Prompter *Prompter
	Rules    game.Rules
	Label    string
}

func (h *HumanSource) NextGuess(ctx context.Context) (game.Code, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	label := h.Label
	if label == "" {
		label = "Your guess"
	}
	return h.Prompter.ReadCode(label, h.Rules)
}

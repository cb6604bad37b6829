// internal/secret/secret.go
//
// Secret generation for the computer's side of a round.
// Provides:
//   - Generator: the capability the round orchestration consumes.
//   - Crypto:    a cryptographically random code.
//   - Daily:     a code that is a pure function of (date, salt, rules), so
//                every player gets the same secret on the same day.
package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"golang.org/x/crypto/hkdf"

	"github.com/robalobadob/coyotemind/internal/game"
)

// ErrRules is returned for rules no code can satisfy.
var ErrRules = errors.New("secret: rules describe no codes")

// Generator produces a code of rules.Width digits over rules.Alphabet().
type Generator interface {
	Generate(rules game.Rules) (game.Code, error)
}

// Crypto draws every digit from crypto/rand.
type Crypto struct{}

func (Crypto) Generate(rules game.Rules) (game.Code, error) {
	if err := check(rules); err != nil {
		return nil, err
	}
	k := big.NewInt(int64(rules.Alphabet()))
	c := make(game.Code, rules.Width)
	for i := range c {
		n, err := rand.Int(rand.Reader, k)
		if err != nil {
			return nil, fmt.Errorf("secret: read random digit: %w", err)
		}
		c[i] = int(n.Int64())
	}
	return c, nil
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Daily derives the day's code with HKDF-SHA256(salt, date|family|width|colors).
// Different rules on the same day yield unrelated codes.
type Daily struct {
	Salt string
	Now  func() time.Time // defaults to time.Now
}

func (d Daily) Generate(rules game.Rules) (game.Code, error) {
	if err := check(rules); err != nil {
		return nil, err
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	info := DateKey(now()) + "|" + rules.Family.String() + "|" +
		strconv.Itoa(rules.Width) + "|" + strconv.Itoa(rules.Colors)
	r := hkdf.New(sha256.New, []byte(d.Salt), nil, []byte(info))

	k := rules.Alphabet()
	// rejection sampling keeps every digit uniform
	limit := 256 - 256%k
	c := make(game.Code, rules.Width)
	var b [1]byte
	for i := range c {
		for {
			if _, err := io.ReadFull(r, b[:]); err != nil {
				return nil, fmt.Errorf("secret: derive daily digit: %w", err)
			}
			if int(b[0]) < limit {
				c[i] = int(b[0]) % k
				break
			}
		}
	}
	return c, nil
}

func check(rules game.Rules) error {
	if rules.Width < 1 || rules.Alphabet() < 1 {
		return fmt.Errorf("width %d alphabet %d: %w", rules.Width, rules.Alphabet(), ErrRules)
	}
	return nil
}

package wordlist

import (
	"strings"
	"unicode/utf8"

	"github.com/shensd/icecold"
)

// ChainGenerator builds word chains from whitespace-delimited fragments.
//
// For every chain length L in [1, MaxCombo) and every run of L consecutive
// tokens, it emits one chain per glue character in Charset. Single tokens are
// emitted once. With Smush set, each multi-token run is also emitted with no
// glue. The number of chains grows as tokens x MaxCombo x len(Charset).
type ChainGenerator struct {
	Charset   string
	MaxCombo  int
	MinLength int
	MaxLength int
	Smush     bool
}

// NewChainGenerator returns a ChainGenerator configured from cfg.
func NewChainGenerator(cfg *icecold.Config) *ChainGenerator {
	return &ChainGenerator{
		Charset:   cfg.Charset,
		MaxCombo:  cfg.MaxComboLength,
		MinLength: cfg.MinWordLength,
		MaxLength: cfg.MaxWordLength,
		Smush:     cfg.SmushWords,
	}
}

// Validate returns EINVALID if the generator cannot run.
func (g *ChainGenerator) Validate() error {
	if g.MaxCombo <= 0 {
		return icecold.Errorf(icecold.EINVALID, "max combo size must be greater than 0, %d provided", g.MaxCombo)
	}
	if g.MinLength <= 0 {
		return icecold.Errorf(icecold.EINVALID, "min word length must be greater than 0, %d provided", g.MinLength)
	}
	return nil
}

// Filter validates the generator and returns the chains of every fragment,
// in fragment order.
func (g *ChainGenerator) Filter(fragments []string) ([]string, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	var out []string
	for _, fragment := range fragments {
		out = append(out, g.Chains(fragment)...)
	}
	return out, nil
}

// Chains returns the chains of a single fragment. The generator must be valid.
func (g *ChainGenerator) Chains(fragment string) []string {
	tokens := g.tokens(fragment)
	if g.MaxCombo == 1 || len(tokens) == 0 {
		return tokens
	}

	var chains []string
	for length := 1; length < g.MaxCombo; length++ {
		for i := 0; i+length <= len(tokens); i++ {
			window := tokens[i : i+length]
			if length == 1 {
				chains = append(chains, window[0])
				continue
			}
			for _, glue := range g.Charset {
				chains = append(chains, strings.Join(window, string(glue)))
			}
			if g.Smush {
				chains = append(chains, strings.Join(window, ""))
			}
		}
	}
	return chains
}

// tokens splits fragment on whitespace and keeps tokens within length bounds.
func (g *ChainGenerator) tokens(fragment string) []string {
	fields := strings.Fields(fragment)
	tokens := fields[:0]
	for _, f := range fields {
		n := utf8.RuneCountInString(f)
		if n < g.MinLength || n > g.MaxLength {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

package wordlist

import (
	"context"

	"github.com/shensd/icecold"
)

// Ensure Pipeline implements icecold.WordProcessor at compile time.
var _ icecold.WordProcessor = (*Pipeline)(nil)

// Pipeline runs fragments through the filter stages and the chain generator
// and writes every chain to a sink. A Pipeline holds only configuration and
// may be shared by any number of pages and goroutines.
type Pipeline struct {
	stages []Stage
	chains *ChainGenerator
	sink   icecold.Sink
}

// NewPipeline creates a Pipeline using the default stages.
// Returns EINVALID if the word settings in cfg are unusable.
func NewPipeline(cfg *icecold.Config, sink icecold.Sink) (*Pipeline, error) {
	if err := cfg.ValidateWords(); err != nil {
		return nil, err
	}
	return &Pipeline{
		stages: DefaultStages(),
		chains: NewChainGenerator(cfg),
		sink:   sink,
	}, nil
}

// Normalize runs fragments through every stage in order.
func (p *Pipeline) Normalize(fragments []string) []string {
	words := apply(fragments, identity)
	for _, stage := range p.stages {
		if len(words) == 0 {
			break
		}
		words = stage(words)
	}
	return words
}

// Process normalizes the fragments and writes the chains of each one to the
// sink. Chains are written fragment by fragment so at most one fragment's
// chains are held in memory.
func (p *Pipeline) Process(ctx context.Context, fragments []string) error {
	for _, fragment := range p.Normalize(fragments) {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, chain := range p.chains.Chains(fragment) {
			if err := p.sink.Write(chain); err != nil {
				return err
			}
		}
	}
	return nil
}

func identity(s string) string { return s }

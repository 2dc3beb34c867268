package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/orbit/internal/app"
)

// Run generates a synthetic dataset, computes the orbit for the given
// layer request, and writes the result as indented JSON.
func Run(ctx context.Context, w io.Writer, subject string, layers []int, opts ...GeneratorOption) error {
	gen := NewGenerator(subject, opts...)
	svc := app.New(app.WithFetcher(gen))

	orbit, err := svc.Orbit(ctx, subject, layers)
	if err != nil {
		return fmt.Errorf("compute orbit: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(orbit); err != nil {
		return fmt.Errorf("encode orbit: %w", err)
	}
	return nil
}

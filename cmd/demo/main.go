// Command demo computes an orbit over synthetic data and prints it,
// so the pipeline can be exercised without API credentials.
package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/okian/orbit/internal/demo"
	"github.com/okian/orbit/pkg/logger"
)

func main() {
	subject := flag.String("subject", "demo", "subject screen name")
	layers := flag.String("layers", "8,15,26", "comma-separated layer sizes")
	accounts := flag.Int("accounts", 40, "number of synthetic accounts")
	posts := flag.Int("posts", 300, "number of synthetic posts")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	sizes, err := parseLayers(*layers)
	if err != nil {
		os.Stderr.WriteString("invalid -layers: " + err.Error() + "\n")
		os.Exit(2)
	}

	err = demo.Run(context.Background(), os.Stdout, *subject, sizes,
		demo.WithAccounts(*accounts),
		demo.WithPosts(*posts),
		demo.WithSeed(*seed),
	)
	if err != nil {
		os.Stderr.WriteString("demo failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func parseLayers(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		size, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

package pricing

import (
	"context"
	_ "embed"
	"fmt"
	"os"
)

//go:embed prices.yaml
var embeddedPrices []byte

// Source loads a reference price table from some backend.
type Source interface {
	// Name identifies the backend in logs and reports.
	Name() string
	// Load reads and parses the full table.
	Load(ctx context.Context) (*Table, error)
}

// Default parses the price table compiled into the binary.
func Default() (*Table, error) {
	return ParseYAML(embeddedPrices)
}

// EmbeddedSource serves the price table compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return SourceEmbedded }

func (EmbeddedSource) Load(_ context.Context) (*Table, error) {
	return Default()
}

// FileSource reads a YAML price table from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return SourceFile + ":" + s.Path }

func (s FileSource) Load(_ context.Context) (*Table, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read price table %s: %w", s.Path, err)
	}
	return ParseYAML(data)
}

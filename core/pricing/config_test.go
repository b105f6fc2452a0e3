package pricing

import (
	"context"
	"testing"
	"time"

	"loot-splitter/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	assert.True(t, Config{Source: SourceStorage}.IsValidSource())
	assert.False(t, Config{Source: "ftp"}.IsValidSource())

	assert.Equal(t, time.Duration(0), Config{CacheTTLSeconds: 0}.CacheTTL())
	assert.Equal(t, 5*time.Minute, Config{CacheTTLSeconds: 300}.CacheTTL())
}

func TestNewSource(t *testing.T) {
	t.Run("Embedded", func(t *testing.T) {
		src, err := NewSource(Config{Source: SourceEmbedded}, nil, nil, "")
		require.NoError(t, err)
		assert.Equal(t, "embedded", src.Name())
	})

	t.Run("File", func(t *testing.T) {
		src, err := NewSource(Config{Source: SourceFile, Path: "/tmp/p.yaml"}, nil, nil, "")
		require.NoError(t, err)
		assert.Equal(t, "file:/tmp/p.yaml", src.Name())
	})

	t.Run("Database Requires Connection", func(t *testing.T) {
		_, err := NewSource(Config{Source: SourceDatabase}, nil, nil, "")
		assert.Error(t, err)
	})

	t.Run("Storage", func(t *testing.T) {
		src, err := NewSource(Config{Source: SourceStorage, Object: "p.yaml"}, nil, new(mocks.Client), "loot")
		require.NoError(t, err)
		assert.Equal(t, "storage:loot/p.yaml", src.Name())
	})

	t.Run("Storage Requires Client", func(t *testing.T) {
		_, err := NewSource(Config{Source: SourceStorage}, nil, nil, "")
		assert.Error(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := NewSource(Config{Source: "ftp"}, nil, nil, "")
		assert.Error(t, err)
	})
}

func TestFileSource_Missing(t *testing.T) {
	_, err := FileSource{Path: "/nonexistent/prices.yaml"}.Load(context.Background())
	assert.Error(t, err)
}

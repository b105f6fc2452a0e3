package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"loot-splitter/core/storage"
	"loot-splitter/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{
			name: "Bare Endpoint",
			cfg: storage.Config{
				Endpoint:  "localhost:9000",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
				Bucket:    "loot-splitter",
			},
		},
		{
			name: "HTTP Scheme Stripped",
			cfg: storage.Config{
				Endpoint:  "http://localhost:9000",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
		},
		{
			name: "HTTPS With Region",
			cfg: storage.Config{
				Endpoint:       "https://s3.amazonaws.com",
				AccessKey:      "key",
				SecretKey:      "secret",
				UseSSL:         true,
				Region:         "eu-west-1",
				TimeoutSeconds: 5,
			},
		},
		{
			name: "Zero Timeout Uses Default",
			cfg: storage.Config{
				Endpoint:       "localhost:9000",
				TimeoutSeconds: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	_, err := storage.NewClient(storage.Config{Endpoint: "localhost:9000/with/path"})
	assert.Error(t, err)
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "loot").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(ctx, client, "loot", ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "loot").Return(false, nil)
		client.On("MakeBucket", ctx, "loot", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

		require.NoError(t, storage.EnsureBucket(ctx, client, "loot", "eu-west-1"))
		client.AssertExpectations(t)
	})

	t.Run("Check Fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "loot").Return(false, errors.New("access denied"))

		assert.ErrorContains(t, storage.EnsureBucket(ctx, client, "loot", ""), "access denied")
	})
}

func TestConfig_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, storage.Config{}.Timeout())
	assert.Equal(t, 5*time.Second, storage.Config{TimeoutSeconds: 5}.Timeout())
}

package pricing

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"loot-splitter/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStorageSource_Load(t *testing.T) {
	client := new(mocks.Client)
	body := io.NopCloser(strings.NewReader("items:\n  Demon Horn: 1000\n"))
	client.On("GetObject", mock.Anything, "loot", "pricing/prices.yaml", mock.Anything).Return(body, nil)

	src := NewStorageSource(client, "loot", "pricing/prices.yaml")
	assert.Equal(t, "storage:loot/pricing/prices.yaml", src.Name())

	table, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), table.Price("demon horn"))
	client.AssertExpectations(t)
}

func TestStorageSource_LoadError(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "loot", "missing.yaml", mock.Anything).Return(nil, errors.New("not found"))

	_, err := NewStorageSource(client, "loot", "missing.yaml").Load(context.Background())
	assert.Error(t, err)
}

func TestPublish(t *testing.T) {
	client := new(mocks.Client)
	var uploaded string
	client.On("PutObject", mock.Anything, "loot", "pricing/prices.yaml", mock.Anything, mock.AnythingOfType("int64"),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/yaml" })).
		Run(func(args mock.Arguments) {
			data, _ := io.ReadAll(args.Get(3).(io.Reader))
			uploaded = string(data)
		}).
		Return(minio.UploadInfo{}, nil)

	err := Publish(context.Background(), client, "loot", "pricing/prices.yaml", NewTable(map[string]int64{"Bat Wing": 50}))
	require.NoError(t, err)
	assert.Contains(t, uploaded, "Bat Wing: 50")
	client.AssertExpectations(t)
}

func TestPublish_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("denied"))

	err := Publish(context.Background(), client, "loot", "x.yaml", NewTable(nil))
	assert.Error(t, err)
}

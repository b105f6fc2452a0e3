package pricing

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"loot-splitter/core/storage"

	"github.com/minio/minio-go/v7"
)

// maxTableBytes bounds how much of a stored price table is read.
const maxTableBytes = 4 << 20

// StorageSource reads a YAML price table from an object storage bucket.
type StorageSource struct {
	client storage.Client
	bucket string
	object string
}

// NewStorageSource creates an object-storage-backed source.
func NewStorageSource(client storage.Client, bucket, object string) *StorageSource {
	return &StorageSource{client: client, bucket: bucket, object: object}
}

func (s *StorageSource) Name() string { return SourceStorage + ":" + s.bucket + "/" + s.object }

func (s *StorageSource) Load(ctx context.Context) (*Table, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.object, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxTableBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.object, err)
	}
	return ParseYAML(data)
}

// Publish uploads t as a YAML document so a StorageSource can read it back.
func Publish(ctx context.Context, client storage.Client, bucket, object string, t *Table) error {
	data, err := MarshalYAML(t)
	if err != nil {
		return fmt.Errorf("failed to encode price table: %w", err)
	}

	_, err = client.PutObject(ctx, bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", object, err)
	}
	return nil
}

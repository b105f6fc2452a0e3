package checks

import (
	"context"
	"fmt"

	"loot-splitter/core/pricing"
	"loot-splitter/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectReport describes the stored price table object.
type ObjectReport struct {
	Bucket string `json:"bucket"`
	Object string `json:"object"`
	Exists bool   `json:"exists"`
	Size   int64  `json:"size"`
}

// CheckPriceObject reports whether the price table object is present in the bucket.
func CheckPriceObject(ctx context.Context, client storage.Client, bucket, object string) (*ObjectReport, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is nil")
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	report := &ObjectReport{Bucket: bucket, Object: object}
	opts := minio.ListObjectsOptions{
		Prefix:    object,
		Recursive: false,
		MaxKeys:   1,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err == nil && obj.Key == object {
			report.Exists = true
			report.Size = obj.Size
		}
		break
	}

	return report, nil
}

// FixPriceObject uploads t as the price table object, creating the bucket if needed.
func FixPriceObject(ctx context.Context, client storage.Client, bucket, object string, t *pricing.Table, logger *zap.Logger) error {
	if err := storage.EnsureBucket(ctx, client, bucket, ""); err != nil {
		return err
	}
	if err := pricing.Publish(ctx, client, bucket, object, t); err != nil {
		logger.Error("Failed to upload price table", zap.String("object", object), zap.Error(err))
		return err
	}
	logger.Info("Uploaded price table", zap.String("object", object), zap.Int("items", t.Len()))
	return nil
}

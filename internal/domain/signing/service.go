package signing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"
)

// MaxBatchSize caps one signing call. The client-side file cap is lower; this
// only guards the endpoint against abuse.
const MaxBatchSize = 20

// Service issues one signed upload per requested file, preserving input order.
// The whole batch fails if any single presign fails.
type Service struct {
	presigner Presigner
	bucket    string
	region    string
}

func NewService(presigner Presigner, bucket, region string) *Service {
	return &Service{presigner: presigner, bucket: bucket, region: region}
}

func (s *Service) SignBatch(ctx context.Context, files []FileMeta) ([]SignedUpload, error) {
	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(files) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	results := make([]SignedUpload, 0, len(files))
	for idx, f := range files {
		key, err := s.storageKey(f.Name, idx)
		if err != nil {
			return nil, fmt.Errorf("failed to build storage key: %w", err)
		}

		uploadURL, err := s.presigner.PresignPut(ctx, key, f.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to presign %q: %w", f.Name, err)
		}

		results = append(results, SignedUpload{
			Key:       key,
			UploadURL: uploadURL,
			PublicURL: s.publicURL(key),
		})
	}

	return results, nil
}

// storageKey builds a collision-resistant object key: timestamp plus a random
// suffix plus the batch index, keeping the original extension.
func (s *Service) storageKey(fileName string, idx int) (string, error) {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("products/%d-%s-%d%s",
		time.Now().UnixMilli(), hex.EncodeToString(suffix), idx, ext), nil
}

func (s *Service) publicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

package signing

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Presigner issues a single-use presigned PUT URL for a storage key. The
// content type is bound into the signature, so the client must send it back
// verbatim.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
}

// S3Presigner signs against S3 or any S3-compatible endpoint (MinIO).
type S3Presigner struct {
	client *s3.PresignClient
	bucket string
	expiry time.Duration
}

type S3Options struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string // empty for real AWS
	Expiry    time.Duration
}

func NewS3Presigner(ctx context.Context, opts S3Options) (*S3Presigner, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	expiry := opts.Expiry
	if expiry <= 0 {
		expiry = 60 * time.Second
	}

	return &S3Presigner{
		client: s3.NewPresignClient(client),
		bucket: opts.Bucket,
		expiry: expiry,
	}, nil
}

func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

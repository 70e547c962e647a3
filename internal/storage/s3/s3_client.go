// Package s3 implements the raw-source archive on S3-compatible object
// storage. Extracted email bodies and attachment texts land here so a
// stored bill can always be traced back to the text it was read from.
package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"billscan/internal/config"
	"billscan/internal/port"
)

// archive is the S3-backed port.ObjectStorage implementation. The uploader
// handles multipart chunking for large attachment texts; the presigner
// serves audit links without proxying object bytes through the API.
type archive struct {
	api       *s3.Client
	uploader  *manager.Uploader
	presigner *s3.PresignClient
}

// NewS3Client builds the archive client from configuration. Static
// credentials and a custom endpoint are both optional; setting an endpoint
// switches to path-style addressing for MinIO and localstack.
func NewS3Client(cfg *config.S3Config) (port.ObjectStorage, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &archive{
		api:       api,
		uploader:  manager.NewUploader(api),
		presigner: s3.NewPresignClient(api),
	}, nil
}

func (a *archive) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	result, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(input.Bucket),
		Key:         aws.String(input.Key),
		Body:        input.Body,
		ContentType: aws.String(input.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("archiving %s: %w", input.Key, err)
	}
	return &port.UploadOutput{
		Location: result.Location,
		ETag:     aws.ToString(result.ETag),
	}, nil
}

func (a *archive) Delete(ctx context.Context, bucket, key string) error {
	if _, err := a.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (a *archive) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	req, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(time.Duration(expirySeconds)*time.Second))
	if err != nil {
		return "", fmt.Errorf("presigning %s: %w", key, err)
	}
	return req.URL, nil
}

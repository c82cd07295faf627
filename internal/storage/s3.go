package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Options configures the S3-compatible store driver. Endpoint is left
// empty for AWS proper and set for R2/minio style endpoints.
type S3Options struct {
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
}

// S3Store writes media to an S3-compatible bucket.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store builds an S3 client from static credentials.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:        client,
		bucket:        opts.Bucket,
		publicBaseURL: opts.PublicBaseURL,
	}, nil
}

// Put uploads an object. With overwrite disabled a conditional write rejects
// existing keys with ErrKeyExists.
func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if !overwrite {
		input.IfNoneMatch = aws.String("*")
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return "", ErrKeyExists
		}
		return "", fmt.Errorf("s3 upload: %w", err)
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the public object URL for a key.
func (s *S3Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.publicBaseURL, key)
}

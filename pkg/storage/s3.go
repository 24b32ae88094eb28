package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const defaultRegion = "us-east-1"

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads media to a bucket under an optional key prefix.
type S3 struct {
	client s3API
	bucket string
	prefix string
}

// NewS3 builds an S3 sink from the default AWS credential chain.
func NewS3(ctx context.Context, bucket, prefix, region string) (*S3, error) {
	if bucket == "" {
		return nil, errors.New("storage: bucket is required")
	}
	if region == "" {
		region = defaultRegion
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	return NewS3WithClient(bucket, prefix, s3.NewFromConfig(cfg)), nil
}

// NewS3WithClient builds an S3 sink over an existing client.
func NewS3WithClient(bucket, prefix string, client s3API) *S3 {
	return &S3{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Bucket returns the target bucket.
func (u *S3) Bucket() string { return u.bucket }

// Prefix returns the key prefix without surrounding slashes.
func (u *S3) Prefix() string { return u.prefix }

// Key returns the object key name is stored under. Only the base of name is
// kept, so keys never leave the prefix.
func (u *S3) Key(name string) string {
	name = path.Base(name)
	if u.prefix == "" {
		return name
	}

	return path.Join(u.prefix, name)
}

// Put uploads data and returns its s3:// URI.
func (u *S3) Put(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	key := u.Key(name)

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if mimeType != "" {
		input.ContentType = aws.String(mimeType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("storage: put s3://%s/%s: %s: %w", u.bucket, key, apiErr.ErrorCode(), err)
		}
		return "", fmt.Errorf("storage: put s3://%s/%s: %w", u.bucket, key, err)
	}

	return "s3://" + u.bucket + "/" + key, nil
}

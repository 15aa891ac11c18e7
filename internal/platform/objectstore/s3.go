// Package objectstore stores listing images in S3 compatible object storage.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const cacheControl = "public, max-age=31536000, immutable"

// Config is S3 bucket configuration.
type Config struct {
	Region string
	Bucket string
	// Endpoint overrides AWS endpoint, for S3 compatible storages. Path-style addressing is used with it.
	Endpoint string
	// PublicBaseURL is the base of returned object URLs, e.g. CDN in front of bucket.
	PublicBaseURL string
}

// Client is the part of s3 API used by S3.
type Client interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3 puts objects to S3 bucket.
type S3 struct {
	client  Client
	bucket  string
	baseURL string
}

// NewS3 returns S3 using AWS default credentials chain.
func NewS3(cfg Config) (*S3, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("can't create aws session: %w", err)
	}

	return NewS3WithClient(s3.New(sess), cfg), nil
}

// NewS3WithClient returns S3 using provided client.
func NewS3WithClient(client Client, cfg Config) *S3 {
	return &S3{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL(cfg),
	}
}

// Put uploads body under key, overwriting existing object, and returns object public URL.
func (s *S3) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String(cacheControl),
	})
	if err != nil {
		return "", fmt.Errorf("can't put object %s: %w", key, err)
	}

	return s.URL(key), nil
}

// URL returns public URL of object stored under key.
func (s *S3) URL(key string) string {
	segments := strings.Split(key, "/")
	for ix, segment := range segments {
		segments[ix] = url.PathEscape(segment)
	}

	return s.baseURL + "/" + strings.Join(segments, "/")
}

func baseURL(cfg Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

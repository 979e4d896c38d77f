// Copyright (c) 2026 VidTube. All rights reserved.

package media

import (
	stdctx "context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Options holds the connection settings for the object-storage gateway.
type S3Options struct {
	Bucket        string
	Region        string
	Endpoint      string // Empty for AWS; set for MinIO / Cloudflare R2
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // Base URL under which stored keys are publicly served
}

// S3Gateway implements [Gateway] on top of any S3-compatible object store.
type S3Gateway struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Gateway builds the S3 client and validates the option set.
func NewS3Gateway(context stdctx.Context, options S3Options) (*S3Gateway, error) {
	if options.Bucket == "" || options.PublicBaseURL == "" {
		return nil, fmt.Errorf("media: bucket and public base URL are required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(context,
		awsconfig.WithRegion(options.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			options.AccessKey,
			options.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("media: failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if options.Endpoint != "" {
			o.BaseEndpoint = aws.String(options.Endpoint)
			// Path-style addressing is required by MinIO-style endpoints.
			o.UsePathStyle = true
		}
	})

	return &S3Gateway{
		client:  client,
		bucket:  options.Bucket,
		baseURL: strings.TrimRight(options.PublicBaseURL, "/"),
	}, nil
}

/*
Upload pushes a staged local file into the bucket and returns its public URL.

Description: The temp file at localPath is removed on every exit path,
whether the transfer succeeds or not.

Parameters:
  - context: context.Context
  - localPath: string

Returns:
  - string: Public URL of the stored object
  - error: Open or transfer failures
*/
func (gateway *S3Gateway) Upload(context stdctx.Context, localPath string) (string, error) {

	// The temp file is released no matter how the upload attempt ends.
	defer func() { _ = os.Remove(localPath) }()

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("media: failed to open staged file: %w", err)
	}
	defer func() { _ = file.Close() }()

	key := storageKey(filepath.Ext(localPath))

	_, err = gateway.client.PutObject(context, &s3.PutObjectInput{
		Bucket:      aws.String(gateway.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentTypeFor(localPath)),
	})
	if err != nil {
		return "", fmt.Errorf("media: upload failed: %w", err)
	}

	return gateway.baseURL + "/" + key, nil
}

// storageKey builds a date-partitioned object key with a random suffix.
func storageKey(extension string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("media/%d/%02d/%02d/%s%s",
		now.Year(), now.Month(), now.Day(), uuid.New(), extension)
}

// contentTypeFor infers the MIME type from the file extension.
func contentTypeFor(path string) string {
	if contentType := mime.TypeByExtension(filepath.Ext(path)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

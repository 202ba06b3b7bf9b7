// Package objstore uploads locally staged files to an S3-compatible object
// store. Transient connection resets are retried a bounded number of times
// with a growing backoff; the staged file is always removed afterwards.
package objstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/careerhub/jobportal/internal/logging"
	sc "github.com/careerhub/jobportal/internal/server/config"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	removeFile = os.Remove
)

// AssetRef points at a stored asset after a successful upload.
type AssetRef struct {
	URL          string
	Key          string
	Size         int64
	OriginalName string
}

// UploadOptions carries per-upload metadata.
type UploadOptions struct {
	OriginalName string
	ContentType  string
}

// Uploader is the interface the account service depends on.
type Uploader interface {
	Upload(ctx context.Context, localPath string, opts UploadOptions) (*AssetRef, error)
}

// UploadError reports a failed upload together with the last underlying
// cause and the number of attempts made.
type UploadError struct {
	Attempts int
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Client implements Uploader against an S3-compatible backend.
type Client struct {
	config *sc.Config
	logger logging.Logger
}

func NewClient(config *sc.Config, logger logging.Logger) *Client {
	return &Client{config: config, logger: logger.With("component", "objstore")}
}

func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (c *Client) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.config.S3RootUser,
			c.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Upload transfers the file at localPath to the object store and returns a
// reference to the stored asset. Connection-reset failures are retried up to
// the configured attempt cap, waiting attempt × backoff-base between tries;
// any other failure is surfaced immediately. The staged file at localPath is
// removed whether or not the upload succeeds.
func (c *Client) Upload(ctx context.Context, localPath string, opts UploadOptions) (*AssetRef, error) {
	defer c.cleanup(ctx, localPath)

	info, err := os.Stat(localPath)
	if err != nil {
		return nil, &UploadError{Attempts: 0, Err: err}
	}

	client, err := c.getClient(ctx)
	if err != nil {
		return nil, &UploadError{Attempts: 0, Err: err}
	}

	bucket := c.config.S3Bucket
	key := GetRandomStorageKey()

	maxAttempts := c.config.UploadMaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	attempts := 0
	backoff := retry.WithMaxRetries(uint64(maxAttempts-1),
		retry.BackoffFunc(func() (time.Duration, bool) {
			return time.Duration(attempts) * c.config.UploadBackoffBase, false
		}))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++

		f, err := os.Open(localPath)
		if err != nil {
			return err
		}
		defer f.Close()

		in := &s3.PutObjectInput{
			Bucket:        &bucket,
			Key:           &key,
			Body:          f,
			ContentLength: aws.Int64(info.Size()),
		}
		if opts.ContentType != "" {
			in.ContentType = aws.String(opts.ContentType)
		}

		if _, err := putObject(client, ctx, in); err != nil {
			if isTransient(err) {
				c.logger.Warn(ctx, "transient upload failure, retrying",
					"key", key, "attempt", attempts, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, &UploadError{Attempts: attempts, Err: err}
	}

	c.logger.Info(ctx, "upload successful", "key", key, "size", info.Size())

	return &AssetRef{
		URL:          c.objectURL(key),
		Key:          key,
		Size:         info.Size(),
		OriginalName: opts.OriginalName,
	}, nil
}

// cleanup removes the staged file. A deletion failure is logged but never
// changes the reported outcome of the upload.
func (c *Client) cleanup(ctx context.Context, localPath string) {
	if err := removeFile(localPath); err != nil && !os.IsNotExist(err) {
		c.logger.Warn(ctx, "failed to delete staged file", "path", localPath, "error", err)
	}
}

func (c *Client) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(c.config.S3BaseEndpoint, "/"), c.config.S3Bucket, key)
}

// isTransient classifies connection resets as retryable; everything else is
// fatal.
func isTransient(err error) bool {
	if errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	return strings.Contains(err.Error(), "connection reset by peer")
}

package objstore

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/careerhub/jobportal/internal/logging"
	sc "github.com/careerhub/jobportal/internal/server/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	cfg.UploadBackoffBase = time.Millisecond
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	return NewClient(cfg, logger)
}

func stageFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte("pdf-bytes"), 0o600); err != nil {
		t.Fatalf("stage file: %v", err)
	}
	return path
}

// overridePutObject installs a fake PutObject and restores the original after
// the test.
func overridePutObject(t *testing.T, fn func(calls int) error) *int {
	t.Helper()
	calls := 0
	orig := putObject
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		calls++
		if err := fn(calls); err != nil {
			return nil, err
		}
		return &s3.PutObjectOutput{}, nil
	}
	t.Cleanup(func() { putObject = orig })
	return &calls
}

func TestUpload_Success(t *testing.T) {
	c := newTestClient(t)
	path := stageFile(t)

	calls := overridePutObject(t, func(int) error { return nil })

	ref, err := c.Upload(context.Background(), path, UploadOptions{OriginalName: "resume.pdf"})
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if *calls != 1 {
		t.Fatalf("want 1 attempt, got %d", *calls)
	}
	if ref.Size != int64(len("pdf-bytes")) {
		t.Fatalf("size = %d", ref.Size)
	}
	if ref.OriginalName != "resume.pdf" {
		t.Fatalf("original name = %q", ref.OriginalName)
	}
	if !strings.Contains(ref.URL, "/assets/uploads/") {
		t.Fatalf("unexpected url: %q", ref.URL)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("staged file still exists after success")
	}
}

func TestUpload_RetriesTransientThenSucceeds(t *testing.T) {
	c := newTestClient(t)
	path := stageFile(t)

	calls := overridePutObject(t, func(n int) error {
		if n <= 2 {
			return syscall.ECONNRESET
		}
		return nil
	})

	ref, err := c.Upload(context.Background(), path, UploadOptions{})
	if err != nil {
		t.Fatalf("Upload error after transient failures: %v", err)
	}
	if *calls != 3 {
		t.Fatalf("want 3 attempts, got %d", *calls)
	}
	if ref == nil || ref.Key == "" {
		t.Fatalf("missing asset ref: %+v", ref)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("staged file still exists after success")
	}
}

func TestUpload_NonTransientFailsImmediately(t *testing.T) {
	c := newTestClient(t)
	path := stageFile(t)

	boom := errors.New("access denied")
	calls := overridePutObject(t, func(int) error { return boom })

	_, err := c.Upload(context.Background(), path, UploadOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if *calls != 1 {
		t.Fatalf("non-transient cause retried: %d attempts", *calls)
	}

	var uerr *UploadError
	if !errors.As(err, &uerr) {
		t.Fatalf("want *UploadError, got %T", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause not preserved: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("staged file still exists after failure")
	}
}

func TestUpload_ExhaustsRetries(t *testing.T) {
	c := newTestClient(t)
	path := stageFile(t)

	calls := overridePutObject(t, func(int) error { return syscall.ECONNRESET })

	_, err := c.Upload(context.Background(), path, UploadOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if *calls != 3 {
		t.Fatalf("want 3 attempts, got %d", *calls)
	}

	var uerr *UploadError
	if !errors.As(err, &uerr) {
		t.Fatalf("want *UploadError, got %T", err)
	}
	if uerr.Attempts != 3 {
		t.Fatalf("reported attempts = %d, want 3", uerr.Attempts)
	}
	if !errors.Is(err, syscall.ECONNRESET) {
		t.Fatalf("last cause not preserved: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("staged file still exists after exhausted retries")
	}
}

func TestUpload_MissingFile(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Upload(context.Background(), filepath.Join(t.TempDir(), "missing"), UploadOptions{})
	if err == nil {
		t.Fatal("expected error for missing staged file")
	}
	var uerr *UploadError
	if !errors.As(err, &uerr) {
		t.Fatalf("want *UploadError, got %T", err)
	}
}

func TestIsTransient(t *testing.T) {
	if !isTransient(syscall.ECONNRESET) {
		t.Fatal("ECONNRESET not classified as transient")
	}
	if !isTransient(errors.New("read tcp 1.2.3.4: connection reset by peer")) {
		t.Fatal("reset message not classified as transient")
	}
	if isTransient(errors.New("NoSuchBucket")) {
		t.Fatal("permanent error classified as transient")
	}
}

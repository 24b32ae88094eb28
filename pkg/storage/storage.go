// Package storage writes generated media to a local directory or an S3
// bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/germanamz/genai/pkg/content"
)

// Sink stores one generated artefact and returns where it ended up.
type Sink interface {
	Put(ctx context.Context, name, mimeType string, data []byte) (string, error)
}

// ErrNoMedia is returned by Save when a media item carries neither inline
// data nor a file reference.
var ErrNoMedia = errors.New("storage: media has no inline data or file reference")

// Dir writes files under a local directory, creating it on first use.
type Dir struct {
	root string
}

// NewDir returns a Dir sink rooted at root ("." when empty).
func NewDir(root string) *Dir {
	if root == "" {
		root = "."
	}

	return &Dir{root: root}
}

// Root returns the directory files are written to.
func (d *Dir) Root() string { return d.root }

// Put writes data to root/name and returns the file path.
func (d *Dir) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	if err := os.MkdirAll(d.root, 0o750); err != nil {
		return "", fmt.Errorf("storage: create dir: %w", err)
	}

	p := filepath.Join(d.root, filepath.Base(name))
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", p, err)
	}

	return p, nil
}

// Open picks a sink for target: "s3://bucket/prefix" selects S3 in region,
// anything else is a local directory.
func Open(ctx context.Context, target, region string) (Sink, error) {
	if rest, ok := strings.CutPrefix(target, "s3://"); ok {
		bucket, prefix, _ := strings.Cut(rest, "/")
		return NewS3(ctx, bucket, prefix, region)
	}

	return NewDir(target), nil
}

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"audio/mpeg": ".mp3",
	"audio/mp3":  ".mp3",
	"audio/wav":  ".wav",
	"audio/ogg":  ".ogg",
	"audio/l16":  ".pcm",
}

// Extension returns the file extension for a MIME type, ".bin" when unknown.
// Parameters such as "audio/L16;rate=24000" are ignored.
func Extension(mimeType string) string {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ".bin"
	}

	if ext, ok := extensions[mt]; ok {
		return ext
	}

	if exts, err := mime.ExtensionsByType(mt); err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ".bin"
}

// FileName builds "stem-index.ext" for the index-th item of a response.
func FileName(stem string, index int, mimeType string) string {
	return fmt.Sprintf("%s-%d%s", stem, index, Extension(mimeType))
}

// Save stores the inline data of each item through sink and returns one
// location per item. Items that only reference a service file yield the file
// URI without touching the sink.
func Save(ctx context.Context, sink Sink, stem string, media []content.GeneratedMedia) ([]string, error) {
	locations := make([]string, 0, len(media))

	for i, m := range media {
		switch {
		case m.InlineData != nil:
			data, err := m.InlineData.Bytes()
			if err != nil {
				return locations, err
			}

			loc, err := sink.Put(ctx, FileName(stem, i, m.InlineData.MIMEType), m.InlineData.MIMEType, data)
			if err != nil {
				return locations, err
			}
			locations = append(locations, loc)
		case m.FileData != nil:
			locations = append(locations, m.FileData.FileURI)
		default:
			return locations, fmt.Errorf("item %d: %w", i, ErrNoMedia)
		}
	}

	return locations, nil
}

package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxDocumentSize bounds how much of a remote document is read.
const maxDocumentSize = 1 << 20

// Source fetches the raw user document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads the document from disk.
type FileSource struct {
	Path string
}

// Fetch reads the file.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

func (s FileSource) String() string {
	return s.Path
}

// HTTPSource fetches the document over http(s).
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch GETs the URL and fails on any status other than 200.
func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
}

func (s HTTPSource) String() string {
	return s.URL
}

// NewSource picks a source for location: http(s) URLs are fetched, anything
// else is a file path with a leading ~ expanded.
func NewSource(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{URL: location}
	}
	if strings.HasPrefix(location, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			location = filepath.Join(home, location[2:])
		}
	}
	return FileSource{Path: location}
}

// ErrNoSource is returned by Resolve when no source was configured.
var ErrNoSource = errors.New("no document source configured")

// Resolve fetches the user document from src and merges it over the
// defaults. It always returns a usable document: when src is nil, missing or
// malformed, the document is built from defaults alone and the returned
// error says why.
func Resolve(ctx context.Context, src Source) (*Document, error) {
	if src == nil {
		return Default(), ErrNoSource
	}

	data, err := src.Fetch(ctx)
	if err != nil {
		return Default(), fmt.Errorf("error reading document %s: %w", src, err)
	}

	user, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("error loading document %s: %w", src, err)
	}

	return Normalize(Merge(Defaults(), user)), nil
}

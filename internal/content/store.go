// Package content holds resource classification and the read-only file
// store behind the gateway. The store treats files as opaque immutable
// blobs keyed by class and filename.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"sort"
	"strings"
)

// ErrNotFound signals that the store has no such file.
var ErrNotFound = errors.New("content: file not found")

// File is one stored artifact.
type File struct {
	Data        []byte
	ContentType string
}

// Store is the read-only content collaborator consulted after the access
// decision allows a request.
type Store interface {
	Fetch(ctx context.Context, class Class, filename string) (*File, error)
	List(ctx context.Context, class Class) ([]string, error)
}

// fsStore reads from an os.Root so every open is sandboxed below the
// content directory regardless of the name it is handed.
type fsStore struct {
	root *os.Root
}

// NewFSStore wraps a sandboxed directory root.
func NewFSStore(root *os.Root) Store {
	return &fsStore{root: root}
}

// Fetch reads one file and derives its content type from the extension.
func (s *fsStore) Fetch(ctx context.Context, class Class, filename string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := path.Join(class.Dir(), filename)
	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	contentType := mime.TypeByExtension(path.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &File{Data: data, ContentType: contentType}, nil
}

// List returns the .html entries in the class directory, sorted.
func (s *fsStore) List(ctx context.Context, class Class) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := s.root.Open(class.Dir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", class.Dir(), err)
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", class.Dir(), err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(path.Ext(entry.Name()), ".html") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

package stack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"docker-up/core/storage"

	"github.com/goccy/go-yaml"
	"github.com/minio/minio-go/v7"
)

// Entries maps an entry name to its declared fields.
type Entries map[string]map[string]any

// File is a decoded stack file.
type File struct {
	Namespace string             `yaml:"namespace" json:"namespace"`
	Networks  Entries            `yaml:"networks" json:"networks,omitempty"`
	Volumes   Entries            `yaml:"volumes" json:"volumes,omitempty"`
	Secrets   Entries            `yaml:"secrets" json:"secrets,omitempty"`
	Services  Entries            `yaml:"services" json:"services,omitempty"`
	Kinds     []map[string]any   `yaml:"kinds" json:"kinds,omitempty"`
	Resources map[string]Entries `yaml:"resources" json:"resources,omitempty"`
}

// ErrEmptyFile is returned for a stack file without any document.
var ErrEmptyFile = errors.New("stack file is empty")

// ParseError reports a malformed stack file.
type ParseError struct {
	Source string
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid stack file %s: %s", e.Source, e.Detail)
}

// Parse decodes a stack file. Unknown top-level keys are rejected.
func Parse(source string, data []byte) (*File, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())

	var f File
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, &ParseError{Source: source, Detail: yaml.FormatError(err, false, true)}
	}
	if strings.ContainsAny(f.Namespace, " /_") {
		return nil, &ParseError{Source: source, Detail: fmt.Sprintf("namespace %q must not contain spaces, slashes or underscores", f.Namespace)}
	}
	return &f, nil
}

// Load reads and parses the stack file at location: a local path or an
// s3://bucket/key object fetched through store.
func Load(ctx context.Context, store storage.Client, location string) (*File, error) {
	data, err := read(ctx, store, location)
	if err != nil {
		return nil, err
	}
	return Parse(location, data)
}

func read(ctx context.Context, store storage.Client, location string) ([]byte, error) {
	rest, remote := strings.CutPrefix(location, "s3://")
	if !remote {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to read stack file: %w", err)
		}
		return data, nil
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid object location %q, expected s3://bucket/key", location)
	}
	if store == nil {
		return nil, fmt.Errorf("cannot load %s: object storage is not enabled", location)
	}
	obj, err := store.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stack file %s: %w", location, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read stack file %s: %w", location, err)
	}
	return data, nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"
)

var (
	// ErrSnapshotNotFound is returned when a requested snapshot does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrInvalidName is returned when a snapshot name is empty or escapes the archive.
	ErrInvalidName = errors.New("invalid snapshot name")
)

// Snapshot describes one stored export.
type Snapshot struct {
	Name      string
	Size      int64
	CreatedAt time.Time
}

// Archive stores export snapshots of the script table.
type Archive interface {
	// Put stores the data read from r under name, replacing any existing snapshot.
	Put(ctx context.Context, name string, r io.Reader) error

	// Get opens the snapshot stored under name.
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// List returns the stored snapshots, newest first.
	List(ctx context.Context) ([]Snapshot, error)
}

// Options configures NewArchive.
type Options struct {
	Type    string // "local" or "s3"
	BaseDir string
	Bucket  string
	Region  string
	Prefix  string
}

// NewArchive creates an Archive implementation based on configuration.
func NewArchive(ctx context.Context, opts Options) (Archive, error) {
	switch strings.ToLower(opts.Type) {
	case "local", "":
		if opts.BaseDir == "" {
			return nil, fmt.Errorf("base_dir is required for local storage")
		}
		return NewLocalArchive(opts.BaseDir)

	case "s3":
		archive, err := NewS3Archive(ctx, opts.Bucket, opts.Region, opts.Prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		return archive, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", opts.Type)
	}
}

// SnapshotName returns the file name used for a snapshot taken at t.
func SnapshotName(t time.Time) string {
	return "scripts-" + t.UTC().Format("20060102T150405Z") + ".json"
}

// validateName rejects names that are empty, nested or try to leave the archive.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if path.Clean(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func sortNewestFirst(snapshots []Snapshot) {
	sort.SliceStable(snapshots, func(i, j int) bool {
		if snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].Name > snapshots[j].Name
		}
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
}

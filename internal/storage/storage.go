package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"teamgraph/internal/util"
	"teamgraph/pkg/loader"
	ioloader "teamgraph/pkg/loader/io"
	s3loader "teamgraph/pkg/loader/s3"
)

const (
	SourceFS = "fs"
	SourceS3 = "s3"
)

// Config selects where dataset files are read from.
type Config struct {
	Source  string
	DataDir string

	Bucket    string
	Prefix    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

func ConfigFromEnv() Config {
	return Config{
		Source:    util.GetEnvString("DATA_SOURCE", SourceFS),
		DataDir:   util.GetEnvString("DATA_DIR", "data"),
		Bucket:    util.GetEnv("AWS_BUCKET"),
		Prefix:    util.GetEnv("AWS_PREFIX"),
		Endpoint:  util.GetEnv("AWS_ENDPOINT"),
		Region:    util.GetEnvString("AWS_REGION", "us-east-1"),
		AccessKey: util.GetEnv("AWS_ACCESS_KEY"),
		SecretKey: util.GetEnv("AWS_SECRET_KEY"),
	}
}

// Source is an opened dataset store.
type Source struct {
	Loader loader.DatasetFileLoader
	list   func(ctx context.Context) ([]string, error)
}

// Datasets lists the dataset ids present in the store.
func (s *Source) Datasets(ctx context.Context) ([]string, error) {
	return s.list(ctx)
}

// Open builds the loader for cfg.Source.
func Open(ctx context.Context, cfg Config) (*Source, error) {
	switch cfg.Source {
	case SourceFS:
		return &Source{
			Loader: ioloader.NewIOFileLoader(cfg.DataDir),
			list: func(context.Context) ([]string, error) {
				return ListDirDatasets(cfg.DataDir)
			},
		}, nil
	case SourceS3:
		if cfg.Bucket == "" {
			return nil, errors.New("AWS_BUCKET is required for the s3 data source")
		}
		client, err := NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Source{
			Loader: s3loader.NewS3FileLoaderWithClient(cfg.Bucket, cfg.Prefix, client),
			list: func(ctx context.Context) ([]string, error) {
				return ListS3Datasets(ctx, client, cfg.Bucket, cfg.Prefix)
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Source)
	}
}

// ListDirDatasets returns the sub directories of root that hold an event
// log, sorted.
func ListDirDatasets(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		_, err := os.Stat(filepath.Join(root, entry.Name(), loader.EventsFile))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		ids = append(ids, entry.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

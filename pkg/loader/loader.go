package loader

import (
	"context"
	"errors"
	"path"
)

// ErrFileNotFound is returned by a DatasetFileLoader when the requested file
// does not exist in the backing store.
var ErrFileNotFound = errors.New("dataset file not found")

const (
	EventsFile    = "Events.csv"
	EntitiesFile  = "EntityAttributes.csv"
	VariablesFile = "Variables.csv"
)

// DatasetFile identifies one raw file of a dataset. Dataset is the dataset
// identifier (for example "GEC2017") and Name the file name inside it.
//
// The actual file content is retrieved via a DatasetFileLoader.
type DatasetFile struct {
	Dataset string
	Name    string
}

// Path returns the slash separated location of the file relative to the
// loader root.
func (f DatasetFile) Path() string {
	return path.Join(f.Dataset, f.Name)
}

// DatasetFileLoader defines the interface for loading the contents of a
// DatasetFile. Implementations may load files from disk, cloud storage, or
// other sources and must return ErrFileNotFound (possibly wrapped) for
// missing files.
type DatasetFileLoader interface {
	GetFile(ctx context.Context, file DatasetFile) ([]byte, error)
}

// CacheKey returns the key under which loaders cache the given file.
func CacheKey(file DatasetFile) string {
	return file.Dataset + ":" + file.Name
}

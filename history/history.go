// Package history provides the implementation for tracking and persisting completed downloads.
package history

import (
	"time"

	"github.com/metafates/gache"
	"github.com/shibi-dl/shibi/filesystem"
	"github.com/shibi-dl/shibi/where"
)

// cacher provides an abstracted, disk-backed registry for download records.
var cacher = gache.New[map[string]*SavedDownload](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of download records from the persistent store.
func Get() (map[string]*SavedDownload, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedDownload), nil
	}
	return cached, nil
}

// Save persists a completed download to the registry. Re-downloading the
// same video at the same quality overwrites the previous record.
func Save(record *SavedDownload) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	if record.DownloadedAt.IsZero() {
		record.DownloadedAt = time.Now()
	}

	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a download record from the registry.
func Remove(record *SavedDownload) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}

// Package watch keeps a record snapshot in step with the CSV files behind it.
package watch

import (
	"sync/atomic"
	"time"

	"github.com/standardbeagle/idlocator/internal/debug"
	"github.com/standardbeagle/idlocator/internal/store"
)

// Dataset holds the current snapshot of one dataset location. Reload builds a
// new store wholesale and publishes it atomically; searches already running
// keep the snapshot they started with.
type Dataset struct {
	location string
	current  atomic.Pointer[store.Store]

	reloads    atomic.Int64
	failures   atomic.Int64
	lastReload atomic.Int64 // unix nanos
}

// NewDataset loads location (see store.Load) and returns it as a Dataset
func NewDataset(location string) (*Dataset, error) {
	s, err := store.Load(location)
	if err != nil {
		return nil, err
	}
	d := &Dataset{location: location}
	d.current.Store(s)
	return d, nil
}

// Location returns the path or pattern the dataset was loaded from
func (d *Dataset) Location() string {
	return d.location
}

// Snapshot returns the current store
func (d *Dataset) Snapshot() *store.Store {
	return d.current.Load()
}

// Reload rebuilds the store from disk. It reports whether the snapshot was
// replaced: identical content keeps the old snapshot. On error the old
// snapshot stays in place.
func (d *Dataset) Reload() (bool, error) {
	s, err := store.Load(d.location)
	if err != nil {
		d.failures.Add(1)
		return false, err
	}

	d.lastReload.Store(time.Now().UnixNano())
	if old := d.current.Load(); old != nil && old.Fingerprint() == s.Fingerprint() {
		debug.LogWatch("reload of %s unchanged (%d records)\n", d.location, s.Len())
		return false, nil
	}

	d.current.Store(s)
	d.reloads.Add(1)
	debug.LogWatch("swapped snapshot for %s (%d records)\n", d.location, s.Len())
	return true, nil
}

// Stats contains statistics about snapshot reloads
type Stats struct {
	Records    int
	Reloads    int64
	Failures   int64
	LastReload time.Time
}

// GetStats returns current reload statistics
func (d *Dataset) GetStats() Stats {
	stats := Stats{
		Reloads:  d.reloads.Load(),
		Failures: d.failures.Load(),
	}
	if s := d.current.Load(); s != nil {
		stats.Records = s.Len()
	}
	if ns := d.lastReload.Load(); ns != 0 {
		stats.LastReload = time.Unix(0, ns)
	}
	return stats
}

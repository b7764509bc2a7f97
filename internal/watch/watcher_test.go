package watch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	lcierrors "github.com/standardbeagle/idlocator/internal/errors"
)

// TestMain ensures the watcher goroutines and fsnotify readers are gone after
// every Stop.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

const header = "id_number,first_name,last_name,street,city,house_number\n"

func writeCSV(t *testing.T, path string, rows ...string) {
	t.Helper()
	content := header
	for _, r := range rows {
		content += r + "\n"
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDataset_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.csv")
	writeCSV(t, path, "1,אור,כהן,הרצל,תל אביב,12")

	d, err := NewDataset(path)
	require.NoError(t, err)
	first := d.Snapshot()
	assert.Equal(t, 1, first.Len())

	changed, err := d.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "identical content keeps the snapshot")
	assert.Same(t, first, d.Snapshot())

	writeCSV(t, path, "1,אור,כהן,הרצל,תל אביב,12", "2,טל,לוי,ביאליק,חיפה,5")
	changed, err = d.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, d.Snapshot().Len())
	assert.Equal(t, 1, first.Len(), "old snapshots are never mutated")

	require.NoError(t, os.Remove(path))
	changed, err = d.Reload()
	assert.False(t, changed)
	var fileErr *lcierrors.FileError
	assert.True(t, errors.As(err, &fileErr))
	assert.Equal(t, 2, d.Snapshot().Len(), "a failed reload keeps the previous snapshot")

	stats := d.GetStats()
	assert.Equal(t, 2, stats.Records)
	assert.Equal(t, int64(1), stats.Reloads)
	assert.Equal(t, int64(1), stats.Failures)
	assert.False(t, stats.LastReload.IsZero())
}

func TestDataset_Sample(t *testing.T) {
	d, err := NewDataset("")
	require.NoError(t, err)
	assert.Equal(t, 20, d.Snapshot().Len())

	_, err = NewWatcher(d, 10)
	assert.Error(t, err)
}

func TestNewDataset_Missing(t *testing.T) {
	_, err := NewDataset(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func reloadSignal(w *Watcher) <-chan bool {
	ch := make(chan bool, 16)
	w.OnReload(func(changed bool, err error) {
		select {
		case ch <- changed && err == nil:
		default:
		}
	})
	return ch
}

func waitForSwap(t *testing.T, ch <-chan bool) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ok := <-ch:
			if ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot swap")
		}
	}
}

func TestWatcher_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "people.csv")
	writeCSV(t, path, "1,אור,כהן,הרצל,תל אביב,12")

	d, err := NewDataset(path)
	require.NoError(t, err)

	w, err := NewWatcher(d, 20)
	require.NoError(t, err)
	swapped := reloadSignal(w)
	require.NoError(t, w.Start())
	defer w.Stop()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	writeCSV(t, path, "1,אור,כהן,הרצל,תל אביב,12", "2,טל,לוי,ביאליק,חיפה,5", "3,יעל,שחר,אחד העם,ירושלים,10")
	waitForSwap(t, swapped)

	assert.Eventually(t, func() bool {
		return d.Snapshot().Len() == 3
	}, 5*time.Second, 20*time.Millisecond)
	_, ok := d.Snapshot().LookupByID("3")
	assert.True(t, ok)
}

func TestWatcher_Pattern(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, filepath.Join(dir, "north", "people.csv"), "1,אור,כהן,הרצל,תל אביב,12")

	d, err := NewDataset(filepath.Join(dir, "**", "*.csv"))
	require.NoError(t, err)
	require.Equal(t, 1, d.Snapshot().Len())

	w, err := NewWatcher(d, 20)
	require.NoError(t, err)
	swapped := reloadSignal(w)
	require.NoError(t, w.Start())
	defer w.Stop()

	writeCSV(t, filepath.Join(dir, "south", "people.csv"), "2,טל,לוי,ביאליק,חיפה,5")
	waitForSwap(t, swapped)

	assert.Eventually(t, func() bool {
		return d.Snapshot().Len() == 2
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_Matches(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, filepath.Join(dir, "people.csv"), "1,a,b,c,d,1")

	d, err := NewDataset(filepath.Join(dir, "*.csv"))
	require.NoError(t, err)
	w, err := NewWatcher(d, 0)
	require.NoError(t, err)
	defer w.Stop()

	assert.Equal(t, dir, w.watchRoot())
	assert.Equal(t, defaultDebounce, w.debounce)
	assert.True(t, w.matches(filepath.Join(dir, "other.csv")))
	assert.False(t, w.matches(filepath.Join(dir, "other.txt")))
	assert.False(t, w.matches(filepath.Join(dir, "sub", "other.csv")))
}

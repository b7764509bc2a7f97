package store

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/idlocator/internal/debug"
	lcierrors "github.com/standardbeagle/idlocator/internal/errors"
	"github.com/standardbeagle/idlocator/internal/types"
)

//go:embed data/sample_people.csv
var sampleCSV []byte

const utf8BOM = "\ufeff"

// SampleSource names the embedded dataset in logs and errors
const SampleSource = "<sample>"

// ReadRecords parses a CSV stream whose first row is a header naming the
// record fields (id_number, first_name, ...). Unknown columns are ignored,
// missing columns and short rows yield empty fields. A leading UTF-8 BOM is
// skipped. An empty stream yields no records.
func ReadRecords(r io.Reader, source string) ([]types.PersonRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, csvError(source, err)
	}
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, utf8BOM)
		}
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}

	var records []types.PersonRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(source, err)
		}

		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				fields[col] = row[i]
			}
		}
		records = append(records, types.PersonFromMap(fields))
	}

	return records, nil
}

// LoadReader builds a store from a CSV stream
func LoadReader(r io.Reader) (*Store, error) {
	records, err := ReadRecords(r, "<reader>")
	if err != nil {
		return nil, err
	}
	return New(records), nil
}

// LoadCSV builds a store from one CSV file
func LoadCSV(path string) (*Store, error) {
	records, err := readFile(path)
	if err != nil {
		return nil, err
	}
	debug.LogStore("loaded %d records from %s\n", len(records), path)
	return New(records), nil
}

// LoadGlob builds one store from every file matching a doublestar pattern
// ("data/**/*.csv"), in lexical path order. Every failing file is reported
// in a MultiError; no store is returned in that case.
func LoadGlob(pattern string) (*Store, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, lcierrors.NewConfigError("dataset.path", pattern, err)
	}
	if len(paths) == 0 {
		return nil, lcierrors.NewFileError("glob", pattern, fs.ErrNotExist)
	}
	sort.Strings(paths)

	var (
		all  []types.PersonRecord
		errs []error
	)
	for _, path := range paths {
		records, err := readFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, records...)
	}
	if err := lcierrors.NewMultiError(errs).ErrOrNil(); err != nil {
		return nil, err
	}

	debug.LogStore("loaded %d records from %d files matching %s\n", len(all), len(paths), pattern)
	return New(all), nil
}

// LoadSample builds a store from the embedded sample dataset
func LoadSample() *Store {
	records, err := ReadRecords(bytes.NewReader(sampleCSV), SampleSource)
	if err != nil {
		// embedded at build time, a parse failure is a packaging bug
		panic(fmt.Sprintf("embedded sample dataset is invalid: %v", err))
	}
	return New(records)
}

// Load picks the loader for a dataset location: "" loads the embedded sample,
// a pattern with glob metacharacters goes through LoadGlob, anything else
// is a single CSV file.
func Load(location string) (*Store, error) {
	switch {
	case location == "":
		return LoadSample(), nil
	case IsPattern(location):
		return LoadGlob(location)
	default:
		return LoadCSV(location)
	}
}

// IsPattern reports whether a dataset location contains glob metacharacters
func IsPattern(location string) bool {
	return strings.ContainsAny(location, "*?[{")
}

func readFile(path string) ([]types.PersonRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, lcierrors.NewFileError("open", path, err)
	}
	defer f.Close()

	return ReadRecords(f, path)
}

func csvError(source string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return lcierrors.NewDatasetError(source, parseErr.Line, parseErr.Err)
	}
	return lcierrors.NewDatasetError(source, 0, err)
}

package golden

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/percregress/internal/sim"
)

// Extension is the record file extension.
const Extension = ".json"

// IndexWidth is the zero-padded width of record file names.
const IndexWidth = 5

var (
	// ErrMalformedRecord wraps every failure to read, parse, or validate a
	// record.
	ErrMalformedRecord = errors.New("malformed golden record")

	// ErrNotText means an artifact cannot be stored as a JSON string without
	// losing bytes.
	ErrNotText = errors.New("artifact is not valid UTF-8 text")
)

// Store reads and writes records in one directory.
type Store struct {
	// Dir holds the record files.
	Dir string

	// Scratch is the directory Load prefixes onto artifact file names.
	Scratch string

	schemaOnce sync.Once
	schema     *schema
	schemaErr  error
}

// NewStore returns a store over dir whose loaded cases point into scratch.
func NewStore(dir, scratch string) *Store {
	return &Store{Dir: dir, Scratch: scratch}
}

// FileName returns the record name for a case ordinal, e.g. 00042.json.
func FileName(index int) string {
	return fmt.Sprintf("%0*d%s", IndexWidth, index, Extension)
}

// Path returns the record path for a case ordinal.
func (s *Store) Path(index int) string {
	return filepath.Join(s.Dir, FileName(index))
}

// Persist writes tc as the record for index, replacing any existing record.
// Artifact paths are stored as bare file names.
func (s *Store) Persist(index int, tc TestCase) (string, error) {
	if !utf8.Valid(tc.Dat) {
		return "", fmt.Errorf("persist %d: dat: %w", index, ErrNotText)
	}
	if !utf8.Valid(tc.Perc) {
		return "", fmt.Errorf("persist %d: perc: %w", index, ErrNotText)
	}

	rec := Record{
		Description: norm.NFC.String(tc.Description),
		Params: RecordParams{
			Vector:   tc.Params,
			DatFile:  filepath.Base(tc.Paths.Dat),
			PercFile: filepath.Base(tc.Paths.Perc),
		},
		Dat:  string(tc.Dat),
		Perc: string(tc.Perc),
	}

	data, err := MarshalRecord(rec)
	if err != nil {
		return "", fmt.Errorf("persist %d: %w", index, err)
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("persist %d: create record directory: %w", index, err)
	}

	path := s.Path(index)
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("persist %d: %w", index, err)
	}
	return path, nil
}

// Load reads, validates, and decodes the record at path. Artifact file names
// are re-prefixed with Scratch. Every failure wraps ErrMalformedRecord.
func (s *Store) Load(path string) (TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TestCase{}, fmt.Errorf("%w: %s: %w", ErrMalformedRecord, path, err)
	}

	sc, err := s.compiledSchema()
	if err != nil {
		return TestCase{}, err
	}
	if err := sc.validate(path, data); err != nil {
		return TestCase{}, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, path, err)
	}

	var rec Record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return TestCase{}, fmt.Errorf("%w: %s: decode: %v", ErrMalformedRecord, path, err)
	}

	return TestCase{
		Index:       indexFromName(path),
		Description: rec.Description,
		Params:      rec.Params.Vector,
		Paths: sim.ArtifactPaths{
			Dat:  filepath.Join(s.Scratch, rec.Params.DatFile),
			Perc: filepath.Join(s.Scratch, rec.Params.PercFile),
		},
		Dat:    []byte(rec.Dat),
		Perc:   []byte(rec.Perc),
		Source: path,
	}, nil
}

// List returns every record file in Dir in lexicographic order. A missing
// directory is an empty corpus.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	// os.ReadDir sorts by file name
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Extension || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(s.Dir, e.Name()))
	}
	return paths, nil
}

// MarshalRecord renders rec as indented JSON with a trailing newline.
// HTML characters are left unescaped so records stay diffable.
func MarshalRecord(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Store) compiledSchema() (*schema, error) {
	s.schemaOnce.Do(func() {
		s.schema, s.schemaErr = compileSchema()
	})
	return s.schema, s.schemaErr
}

func indexFromName(path string) int {
	name := strings.TrimSuffix(filepath.Base(path), Extension)
	n, err := strconv.Atoi(name)
	if err != nil {
		return -1
	}
	return n
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".record-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

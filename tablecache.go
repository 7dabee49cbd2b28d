package piecerng

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/opd-ai/go-piecerng/internal"
)

// tableMagic identifies a serialized repeat table, version 1.
var tableMagic = [8]byte{'P', 'R', 'N', 'G', 'T', 'B', 'L', '1'}

const tableHeaderSize = len(tableMagic) + internal.FingerprintSize

var (
	// ErrTableFormat is returned when a table file has a bad header or size.
	ErrTableFormat = errors.New("piecerng: malformed table file")

	// ErrTableCorrupt is returned when a table file fails its fingerprint check.
	ErrTableCorrupt = errors.New("piecerng: table fingerprint mismatch")
)

// Fingerprint returns the Blake2b-256 digest of the repeat rows in their
// serialized little-endian form.
func (t *Table) Fingerprint() [32]byte {
	h := internal.NewBlake2bStream()
	h.WriteUint16s(t.repeats)
	return h.Sum256()
}

// WriteTo serializes the table: magic, fingerprint, then the 16 repeat rows
// as little-endian uint16 values. The single-shuffle row is not stored.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriterSize(w, 1<<16)
	fp := t.Fingerprint()

	var n int64
	m, err := bw.Write(tableMagic[:])
	n += int64(m)
	if err != nil {
		return n, err
	}
	m, err = bw.Write(fp[:])
	n += int64(m)
	if err != nil {
		return n, err
	}

	var word [2]byte
	for _, v := range t.repeats {
		binary.LittleEndian.PutUint16(word[:], v)
		m, err = bw.Write(word[:])
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadTable deserializes a table written by WriteTo and verifies its
// fingerprint.
func ReadTable(r io.Reader) (*Table, error) {
	br := bufio.NewReaderSize(r, 1<<16)

	var header [tableHeaderSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrTableFormat, err)
	}
	if !bytes.Equal(header[:len(tableMagic)], tableMagic[:]) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrTableFormat, header[:len(tableMagic)])
	}
	var want [32]byte
	copy(want[:], header[len(tableMagic):])

	t := &Table{
		single:  make([]uint16, rowSize),
		repeats: make([]uint16, tableItems),
	}
	var word [2]byte
	for i := range t.repeats {
		if _, err := io.ReadFull(br, word[:]); err != nil {
			return nil, fmt.Errorf("%w: row data: %v", ErrTableFormat, err)
		}
		t.repeats[i] = binary.LittleEndian.Uint16(word[:])
	}
	if _, err := br.ReadByte(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrTableFormat)
	}

	if got := t.Fingerprint(); got != want {
		return nil, fmt.Errorf("%w: got %x, want %x", ErrTableCorrupt, got[:8], want[:8])
	}

	t.fillSingle()
	return t, nil
}

// LoadOrBuildTable reads the table cached at path, or builds it and writes
// the cache when the file is missing or unusable. An empty path always
// builds in memory.
func LoadOrBuildTable(path string, logger *slog.Logger) (*Table, error) {
	if logger == nil {
		logger = discardLogger()
	}
	if path == "" {
		return BuildTable(), nil
	}

	t, err := readTableFile(path)
	switch {
	case err == nil:
		logger.Debug("loaded repeat table", "path", path)
		return t, nil
	case errors.Is(err, os.ErrNotExist):
		logger.Info("repeat table cache missing, building", "path", path)
	case errors.Is(err, ErrTableFormat), errors.Is(err, ErrTableCorrupt):
		logger.Warn("repeat table cache unusable, rebuilding", "path", path, "error", err)
	default:
		return nil, fmt.Errorf("piecerng: read table %s: %w", path, err)
	}

	t = BuildTable()
	if err := WriteTableFile(path, t); err != nil {
		return nil, err
	}
	return t, nil
}

func readTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTable(f)
}

// WriteTableFile writes t to path atomically via a temporary file.
func WriteTableFile(path string, t *Table) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("piecerng: create table directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".table-*")
	if err != nil {
		return fmt.Errorf("piecerng: create table file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := t.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("piecerng: write table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("piecerng: write table: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("piecerng: write table: %w", err)
	}
	return nil
}

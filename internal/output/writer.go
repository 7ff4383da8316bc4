package output

import (
	"encoding/json"
	"io"
	"sync"
)

// GameWriter is the interface for writing match records.
// Different implementations handle different output formats (PGN, JSON).
type GameWriter interface {
	// WriteGame writes a single record to the output.
	WriteGame(rec *Record) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// JSONOutput holds multiple records for array output.
type JSONOutput struct {
	Games []*Record `json:"games"`
}

// PGNWriter writes records in PGN format. It is safe for concurrent use.
type PGNWriter struct {
	mu   sync.Mutex
	w    io.Writer
	opts PGNOptions
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, opts PGNOptions) *PGNWriter {
	return &PGNWriter{
		w:    w,
		opts: opts,
	}
}

// WriteGame writes a record in PGN format.
func (pw *PGNWriter) WriteGame(rec *Record) error {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	WritePGN(pw.w, rec, pw.opts)
	return nil
}

// Flush is a no-op; PGN is written immediately.
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes records in JSON format.
// It buffers records and writes them as a JSON array on Close or Flush.
// It is safe for concurrent use.
type JSONWriter struct {
	mu     sync.Mutex
	w      io.Writer
	games  []*Record
	single bool // If true, write each record immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches records and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		games: make([]*Record, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each record immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteGame buffers a record for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(rec *Record) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if jw.single {
		return encode(jw.w, rec)
	}
	jw.games = append(jw.games, rec)
	return nil
}

// Flush writes all buffered records as a JSON array.
func (jw *JSONWriter) Flush() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	if jw.single || len(jw.games) == 0 {
		return nil
	}
	err := encode(jw.w, &JSONOutput{Games: jw.games})
	jw.games = jw.games[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

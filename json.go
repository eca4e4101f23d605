package dremel

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
)

// JSONRecordSource reads records from a JSON stream: either a top-
// level JSON array of objects, or newline-delimited JSON objects (one
// per line). It decodes with segmentio/encoding/json rather than the
// standard library codec, matching the rest of this project's JSON
// handling.
type JSONRecordSource struct {
	scanner *bufio.Scanner
	array   []json.RawMessage
	idx     int
}

// NewJSONRecordSource sniffs r's first non-whitespace byte to decide
// between array and newline-delimited mode.
func NewJSONRecordSource(r io.Reader) (*JSONRecordSource, error) {
	br := bufio.NewReader(r)
	first, err := peekFirstNonSpace(br)
	if err != nil {
		if err == io.EOF {
			return &JSONRecordSource{}, nil
		}
		return nil, err
	}

	if first == '[' {
		var array []json.RawMessage
		if err := json.NewDecoder(br).Decode(&array); err != nil {
			return nil, fmt.Errorf("dremel: decoding JSON record array: %w", err)
		}
		return &JSONRecordSource{array: array}, nil
	}

	return &JSONRecordSource{scanner: bufio.NewScanner(br)}, nil
}

func peekFirstNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		return b, r.UnreadByte()
	}
}

// Next implements RecordSource.
func (s *JSONRecordSource) Next() (Record, bool, error) {
	if s.array != nil {
		if s.idx >= len(s.array) {
			return nil, false, nil
		}
		raw := s.array[s.idx]
		s.idx++
		return decodeRecord(raw)
	}

	if s.scanner == nil {
		return nil, false, nil
	}
	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		return decodeRecord(line)
	}
	if err := s.scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("dremel: reading JSON record line: %w", err)
	}
	return nil, false, nil
}

func decodeRecord(raw []byte) (Record, bool, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false, fmt.Errorf("dremel: decoding JSON record: %w", err)
	}
	return Record(m), true, nil
}

package raw

import (
	"errors"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Reader reads a stream of results, one JSON value after another.
type Reader struct {
	dec *json.Decoder
}

func NewReader(r io.Reader) *Reader {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Reader{dec: dec}
}

// Read returns the next result, or nil at end of stream.
func (r *Reader) Read() (*Result, error) {
	var res Result
	if err := r.dec.Decode(&res); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

// YAMLReader reads a stream of results from YAML documents.
type YAMLReader struct {
	dec *yaml.Decoder
}

func NewYAMLReader(r io.Reader) *YAMLReader {
	return &YAMLReader{dec: yaml.NewDecoder(r)}
}

func (r *YAMLReader) Read() (*Result, error) {
	var res Result
	if err := r.dec.Decode(&res); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

package emitter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/brimdata/rowbatch/zio"
	"github.com/brimdata/rowbatch/zio/anyio"
)

// Dir creates one output file per input in a directory.
type Dir struct {
	dir  string
	ext  string
	opts anyio.WriterOpts
}

// NewDir returns a Dir writing into dir, creating it if needed.  ext is
// an optional compression extension such as ".gz".
func NewDir(dir, ext string, opts anyio.WriterOpts) (*Dir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Dir{dir: dir, ext: ext, opts: opts}, nil
}

// Path returns the output path for input, replacing its data and
// compression extensions with those of the output.
func (d *Dir) Path(input string) string {
	base := filepath.Base(input)
	if input == "-" {
		base = "stdin"
	}
	for _, ext := range []string{".gz", ".lz4", ".zst"} {
		base = strings.TrimSuffix(base, ext)
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(d.dir, base+zio.Extension(d.opts.Format)+d.ext)
}

// Create returns a writer for the output of input and the path it writes.
func (d *Dir) Create(input string) (zio.WriteCloser, string, error) {
	path := d.Path(input)
	w, err := NewFile(path, d.opts)
	return w, path, err
}

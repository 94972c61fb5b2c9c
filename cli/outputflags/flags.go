package outputflags

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brimdata/rowbatch/pkg/terminal"
	"github.com/brimdata/rowbatch/zio"
	"github.com/brimdata/rowbatch/zio/anyio"
	"github.com/brimdata/rowbatch/zio/emitter"
)

type Flags struct {
	anyio.WriterOpts
	DefaultFormat string
	outputFile    string
	outputDir     string
	compress      string
}

func (f *Flags) Options() anyio.WriterOpts {
	return f.WriterOpts
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	if f.DefaultFormat == "" {
		f.DefaultFormat = "csv"
	}
	fs.StringVar(&f.Format, "f", "", fmt.Sprintf("format for output data [%s] (default %s, or table on a terminal)",
		strings.Join(anyio.OutputFormats(), ","), f.DefaultFormat))
	fs.BoolVar(&f.CSV.BOM, "csv.bom", false, "prefix CSV output with a UTF-8 byte order mark")
	fs.StringVar(&f.outputFile, "o", "", "write data to output file (compressed if it ends in .gz, .lz4, or .zst)")
	fs.StringVar(&f.outputDir, "d", "", "write one output file per input into this directory")
	fs.StringVar(&f.compress, "compress", "", "compression for -d outputs [gz,lz4,zst]")
}

func (f *Flags) Init() error {
	if f.outputFile == "-" {
		f.outputFile = ""
	}
	if f.outputFile != "" && f.outputDir != "" {
		return errors.New("cannot use -o with -d")
	}
	switch f.compress {
	case "", "gz", "lz4", "zst":
	default:
		return fmt.Errorf("-compress: unknown compression %q", f.compress)
	}
	if f.Format == "" {
		f.Format = f.DefaultFormat
		if f.outputFile != "" {
			if format := zio.FormatFromPath(f.outputFile); anyio.CheckOutput(format) == nil {
				f.Format = format
			}
		} else if f.outputDir == "" && terminal.IsTerminalFile(os.Stdout) {
			f.Format = "table"
		}
	}
	if err := anyio.CheckOutput(f.Format); err != nil {
		return fmt.Errorf("-f: %w", err)
	}
	return nil
}

func (f *Flags) FileName() string {
	return f.outputFile
}

// Dir returns the -d directory or "" if none was given.
func (f *Flags) Dir() string {
	return f.outputDir
}

func (f *Flags) Open() (zio.WriteCloser, error) {
	return emitter.NewFile(f.outputFile, f.WriterOpts)
}

func (f *Flags) OpenDir() (*emitter.Dir, error) {
	ext := ""
	if f.compress != "" {
		ext = "." + f.compress
	}
	return emitter.NewDir(f.outputDir, ext, f.WriterOpts)
}

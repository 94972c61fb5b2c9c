package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"runtime"
	"time"

	"github.com/brimdata/rowbatch/cli"
	"github.com/brimdata/rowbatch/cli/inputflags"
	"github.com/brimdata/rowbatch/cli/logflags"
	"github.com/brimdata/rowbatch/cli/outputflags"
	"github.com/brimdata/rowbatch/pkg/charm"
	"github.com/brimdata/rowbatch/zio"
	"github.com/brimdata/rowbatch/zio/anyio"
	"github.com/brimdata/rowbatch/zio/emitter"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var Cmd = &charm.Spec{
	Name:        "rbconv",
	Usage:       "rbconv [options] file ...",
	Short:       "convert row-batch query results",
	HiddenFlags: "cpuprofile",
	Long: `
rbconv reads query results made of a relation (column names and types) and
row batches (one typed data column per relation column) and writes them as
CSV, JSON, newline-delimited JSON, an aligned table, an Arrow IPC stream, or
Parquet.

Inputs are JSON or YAML result documents, or Arrow IPC streams.  The input
format is taken from -i or else the file extension.  Gzip, LZ4, and
Zstandard compressed inputs are detected automatically.  Standard input can
be given as "-".

Output goes to standard output unless -o or -d is given.  With -o, all
inputs are concatenated into one output whose format follows -f or else the
extension of the output file.  With -d, each input is converted to its own
file in the directory and up to -P inputs are converted at once.

When CSV is written, every value is quoted and double quotes within strings
are escaped so the output round trips through spreadsheet tools.
`,
	New: New,
}

type Command struct {
	cli         cli.Flags
	inputFlags  inputflags.Flags
	outputFlags outputflags.Flags
	logFlags    logflags.Flags
	parallel    int
	logger      *zap.Logger
}

func New(f *flag.FlagSet) (charm.Command, error) {
	c := &Command{}
	c.cli.SetFlags(f)
	c.inputFlags.SetFlags(f)
	c.outputFlags.SetFlags(f)
	c.logFlags.SetFlags(f)
	f.IntVar(&c.parallel, "P", runtime.GOMAXPROCS(0), "maximum number of inputs converted in parallel with -d")
	return c, nil
}

func (c *Command) Run(args []string) error {
	ctx, cleanup, err := c.cli.Init(&c.inputFlags, &c.outputFlags, &c.logFlags)
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) == 0 {
		return charm.NeedHelp
	}
	if c.parallel < 1 {
		return errors.New("-P must be at least 1")
	}
	if c.logger, err = c.logFlags.Open(Cmd.Name); err != nil {
		return err
	}
	defer c.logger.Sync()
	if c.outputFlags.Dir() != "" {
		return c.convertDir(ctx, args)
	}
	return c.convert(ctx, args)
}

// convert concatenates all inputs into a single output.
func (c *Command) convert(ctx context.Context, paths []string) error {
	start := time.Now()
	readers, err := c.inputFlags.Open(paths)
	if err != nil {
		return err
	}
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()
	w, err := c.outputFlags.Open()
	if err != nil {
		return err
	}
	zr := make([]zio.Reader, 0, len(readers))
	for _, r := range readers {
		zr = append(zr, r)
	}
	n, err := zio.CopyWithContext(ctx, w, zio.ConcatReader(zr...))
	if err = multierr.Append(err, w.Close()); err != nil {
		c.logger.Error("conversion failed", zap.Strings("paths", paths), zap.Error(err))
		return err
	}
	c.logger.Info("converted",
		zap.Strings("paths", paths),
		zap.String("output", c.outputFlags.FileName()),
		zap.String("format", c.outputFlags.Format),
		zap.Int("results", n),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (c *Command) convertDir(ctx context.Context, paths []string) error {
	dir, err := c.outputFlags.OpenDir()
	if err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return c.convertFile(ctx, dir, path)
		})
	}
	return g.Wait()
}

func (c *Command) convertFile(ctx context.Context, dir *emitter.Dir, path string) error {
	start := time.Now()
	r, err := anyio.Open(path, c.inputFlags.Options())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()
	w, out, err := dir.Create(path)
	if err != nil {
		return err
	}
	n, err := zio.CopyWithContext(ctx, w, r)
	if err = multierr.Append(err, w.Close()); err != nil {
		c.logger.Error("conversion failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s: %w", path, err)
	}
	c.logger.Info("converted",
		zap.String("path", path),
		zap.String("output", out),
		zap.String("format", c.outputFlags.Format),
		zap.Int("results", n),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

package logflags

import (
	"errors"
	"flag"

	"github.com/brimdata/rowbatch/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Flags configures the conversion log.  Logs go to stderr at warn level
// unless -log.level, -q, or -v say otherwise.
type Flags struct {
	Config  logger.Config
	quiet   bool
	verbose bool
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	f.Config = logger.Config{
		Level: zapcore.WarnLevel,
		Path:  "stderr",
		Mode:  logger.FileModeTruncate,
	}
	fs.Var(&f.Config.Level, "log.level", "minimum level logged [debug,info,warn,error]")
	fs.StringVar(&f.Config.Path, "log.path", f.Config.Path, "log destination: stderr, stdout, or a file path")
	fs.Var(&f.Config.Mode, "log.filemode", "how a -log.path file is opened [append,truncate,rotate]")
	fs.BoolVar(&f.Config.DevMode, "log.devmode", false, "panic on dpanic-level logs")
	fs.BoolVar(&f.quiet, "q", false, "log errors only (same as -log.level error)")
	fs.BoolVar(&f.verbose, "v", false, "log each converted input (same as -log.level info)")
}

// Init is called after flags have been parsed.
func (f *Flags) Init() error {
	switch {
	case f.quiet && f.verbose:
		return errors.New("cannot use -q with -v")
	case f.quiet:
		f.Config.Level = zapcore.ErrorLevel
	case f.verbose:
		f.Config.Level = zapcore.InfoLevel
	}
	return nil
}

// Open returns a logger named name.
func (f *Flags) Open(name string) (*zap.Logger, error) {
	l, err := logger.New(f.Config)
	if err != nil {
		return nil, err
	}
	return l.Named(name), nil
}

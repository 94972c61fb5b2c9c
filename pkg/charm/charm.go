// Package charm is a minimalist CLI framework for single commands.
package charm

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

var NeedHelp = errors.New("help")

type Constructor func(*flag.FlagSet) (Command, error)

type Command interface {
	Run([]string) error
}

type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
	// HiddenFlags (comma-separated) are left out of help.
	HiddenFlags string
}

// ExecRoot creates the command, parses args into its flags, and runs it.
// Help is displayed for -h, -help, or when Run returns NeedHelp.
func (s *Spec) ExecRoot(args []string) error {
	if s.New == nil {
		return fmt.Errorf("command %q: New function is nil", s.Name)
	}
	fs := flag.NewFlagSet(s.Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd, err := s.New(fs)
	if err != nil {
		return err
	}
	err = fs.Parse(args)
	if err == nil {
		err = cmd.Run(fs.Args())
	}
	if errors.Is(err, flag.ErrHelp) || errors.Is(err, NeedHelp) {
		s.displayHelp(os.Stderr, fs)
		return nil
	}
	return err
}

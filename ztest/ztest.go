// Package ztest runs format conversion tests described by YAML files.
//
// Each file in a test directory whose name ends in .yaml holds one test
// case.  The input is read in the input format (json by default), written
// in the output format, and the result compared against the expected
// output or error text:
//
//	input: |
//	  {"relation": {"columns": [{"columnName": "count", "columnType": "INT64"}]},
//	   "rowBatches": [{"numRows": "2", "cols": [{"int64Data": {"data": [3, 5]}}]}]}
//	format: json
//	output: |
//	  [{"count":3},{"count":5}]
//
// A test with a non-empty skip field is skipped.  A test with a tag is
// skipped unless the ZTEST_TAG environment variable matches it.
package ztest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brimdata/rowbatch/zio"
	"github.com/brimdata/rowbatch/zio/anyio"
	"github.com/brimdata/rowbatch/zio/csvio"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type ZTest struct {
	Skip string `yaml:"skip,omitempty"`
	Tag  string `yaml:"tag,omitempty"`

	Input       string `yaml:"input,omitempty"`
	InputFormat string `yaml:"input-format,omitempty"`
	Format      string `yaml:"format,omitempty"`
	BOM         bool   `yaml:"bom,omitempty"`
	Output      string `yaml:"output,omitempty"`
	// Error is the expected error text.  When set, Output is ignored.
	Error string `yaml:"error,omitempty"`
}

// Run runs the tests found in dirname.
func Run(t *testing.T, dirname string) {
	t.Helper()
	entries, err := os.ReadDir(dirname)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		filename := e.Name()
		const dotyaml = ".yaml"
		if !strings.HasSuffix(filename, dotyaml) {
			continue
		}
		testname := strings.TrimSuffix(filename, dotyaml)
		t.Run(testname, func(t *testing.T) {
			t.Parallel()
			zt, err := FromYAMLFile(filepath.Join(dirname, filename))
			if err != nil {
				t.Fatalf("%s: %s", filename, err)
			}
			if msg := zt.ShouldSkip(os.Getenv("ZTEST_TAG")); msg != "" {
				t.Skip(msg)
			}
			if err := zt.Run(); err != nil {
				t.Fatalf("%s: %s", filename, err)
			}
		})
	}
}

func FromYAMLFile(filename string) (*ZTest, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	d := yaml.NewDecoder(bytes.NewReader(b))
	d.KnownFields(true)
	var zt ZTest
	if err := d.Decode(&zt); err != nil {
		return nil, err
	}
	return &zt, nil
}

func (z *ZTest) ShouldSkip(tag string) string {
	switch {
	case z.Skip != "":
		return z.Skip
	case z.Tag != tag:
		return fmt.Sprintf("tag %q does not match ZTEST_TAG=%q", z.Tag, tag)
	}
	return ""
}

func (z *ZTest) check() error {
	if z.Format == "" {
		return errors.New("format field missing")
	}
	return nil
}

// Run converts the input and compares the outcome with the expected output
// or error.
func (z *ZTest) Run() error {
	if err := z.check(); err != nil {
		return fmt.Errorf("bad yaml format: %w", err)
	}
	out, err := z.convert()
	if z.Error != "" {
		if err == nil {
			return fmt.Errorf("expected error %q, got output:\n%s", z.Error, out)
		}
		return diffErr("error", strings.TrimSpace(z.Error)+"\n", err.Error()+"\n")
	}
	if err != nil {
		return err
	}
	return diffErr("output", z.Output, out)
}

func (z *ZTest) convert() (string, error) {
	r, err := anyio.NewReader(strings.NewReader(z.Input), anyio.ReaderOpts{Format: z.InputFormat})
	if err != nil {
		return "", err
	}
	defer r.Close()
	var buf bytes.Buffer
	w, err := anyio.NewWriter(zio.NopCloser(&buf), anyio.WriterOpts{
		Format: z.Format,
		CSV:    csvio.WriterOpts{BOM: z.BOM},
	})
	if err != nil {
		return "", err
	}
	_, err = zio.Copy(w, r)
	err = multierr.Append(err, w.Close())
	return buf.String(), err
}

func diffErr(name, expected, actual string) error {
	if expected == actual {
		return nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  5,
	})
	if err != nil {
		return err
	}
	return fmt.Errorf("expected and actual %s differ:\n%s", name, diff)
}

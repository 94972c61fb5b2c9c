package charm

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/brimdata/rowbatch/pkg/terminal"
	"github.com/kr/text"
)

const tab = "    "

func flagMap(flags string) map[string]bool {
	m := make(map[string]bool)
	for _, f := range strings.Split(flags, ",") {
		if f = strings.TrimSpace(f); f != "" {
			m[f] = true
		}
	}
	return m
}

func (s *Spec) options(fs *flag.FlagSet) []string {
	hidden := flagMap(s.HiddenFlags)
	var lines []string
	fs.VisitAll(func(f *flag.Flag) {
		if hidden[f.Name] {
			return
		}
		line := "-" + f.Name + " " + f.Usage
		if f.DefValue != "" && f.DefValue != "false" {
			line = fmt.Sprintf("%s (default %q)", line, f.DefValue)
		}
		lines = append(lines, line)
	})
	if len(lines) == 0 {
		return []string{"no flags for this command"}
	}
	return lines
}

func formatParagraph(body string, lineWidth int) string {
	var chunks []string
	for _, paragraph := range strings.Split(strings.TrimSpace(body), "\n\n") {
		paragraph = text.Wrap(strings.TrimSpace(paragraph), lineWidth)
		chunks = append(chunks, text.Indent(paragraph, tab))
	}
	return strings.Join(chunks, "\n\n") + "\n\n"
}

func header(heading string) string {
	return "\033[1m" + heading + "\033[0m\n"
}

func (s *Spec) displayHelp(w io.Writer, fs *flag.FlagSet) {
	lineWidth := terminal.Width() - len(tab) - 5
	fmt.Fprint(w, header("NAME")+tab+s.Name+" - "+s.Short+"\n\n")
	fmt.Fprint(w, header("USAGE")+formatParagraph(s.Usage, lineWidth))
	fmt.Fprint(w, header("OPTIONS")+tab+strings.Join(s.options(fs), "\n"+tab)+"\n\n")
	if s.Long != "" {
		fmt.Fprint(w, header("DESCRIPTION")+formatParagraph(s.Long, lineWidth))
	}
}

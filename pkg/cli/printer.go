package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/walpha-cli/walpha/pkg/alpha"
)

type Printer struct {
	out   io.Writer
	title *color.Color
	faint *color.Color
}

// NewPrinter returns a printer writing to out. Colors are only used when out
// is a terminal.
func NewPrinter(out io.Writer) *Printer {
	p := &Printer{
		out:   out,
		title: color.New(color.Bold),
		faint: color.New(color.Faint),
	}

	if !isTerminal(out) {
		p.title.DisableColor()
		p.faint.DisableColor()
	}

	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// PrintResult prints every pod title followed by its text. With raw, the
// text is printed as retrieved instead of formatted.
func (p *Printer) PrintResult(result *alpha.Result, raw bool) {
	if len(result.Pods) == 0 {
		p.Printf("%s\n", p.faint.Sprintf("No results for %q", result.Query))
		return
	}

	for _, pod := range result.Pods {
		p.Println(p.title.Sprint(pod.Title))
		if raw {
			p.Println(pod.Raw)
		} else {
			p.Println(pod.Text)
		}
		p.Println()
	}
}

// PrintBlocks prints formatted text blocks separated by a blank line.
func (p *Printer) PrintBlocks(blocks []string) {
	for i, block := range blocks {
		if i > 0 {
			p.Println()
		}
		p.Println(block)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) {
	p.Printf("❌ %s\n", err)
}

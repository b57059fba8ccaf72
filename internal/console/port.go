package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// ErrInputClosed is returned once the input stream has no more lines.
var ErrInputClosed = errors.New("input closed")

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
)

type styles struct {
	heading lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(colorPrimary),
		success: r.NewStyle().Bold(true).Foreground(colorSuccess),
		warning: r.NewStyle().Bold(true).Foreground(colorWarning),
		danger:  r.NewStyle().Bold(true).Foreground(colorDanger),
	}
}

// Port is the line-oriented terminal every workflow talks through.
// Styling is detected from the writer, so a buffer or pipe gets plain text.
type Port struct {
	in     *bufio.Reader
	out    io.Writer
	styles styles
}

func New(in io.Reader, out io.Writer) *Port {
	return &Port{
		in:     bufio.NewReader(in),
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// ReadLine returns the next line without its line terminator. A final line with
// no trailing newline is still returned; after that ErrInputClosed.
func (p *Port) ReadLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrInputClosed
			}
		} else {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt prints label on the current line and reads the answer.
func (p *Port) Prompt(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return p.ReadLine()
}

func (p *Port) Println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func (p *Port) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

func (p *Port) Heading(title string) {
	fmt.Fprintln(p.out, p.styles.heading.Render(title))
}

func (p *Port) Success(msg string) {
	fmt.Fprintln(p.out, p.styles.success.Render(msg))
}

func (p *Port) Warn(msg string) {
	fmt.Fprintln(p.out, p.styles.warning.Render(msg))
}

func (p *Port) Error(msg string) {
	fmt.Fprintln(p.out, p.styles.danger.Render(msg))
}

// Table prints tab-aligned columns. An empty header slice prints rows only.
func (p *Port) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

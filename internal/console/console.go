// internal/console/console.go
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	blue  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	gray  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Console prints operator-facing progress. Failures are red, the final
// verdict green, step progress blue.
type Console struct {
	out io.Writer
}

func New(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out}
}

// Progress announces a step starting or finishing.
func (c *Console) Progress(msg string) {
	fmt.Fprintln(c.out, blue.Render(msg))
}

// Attempt echoes one pin exchange.
func (c *Console) Attempt(pin int, expected, received string, retry bool) {
	line := fmt.Sprintf("Pin %02d  requested: %s  received: %s", pin, expected, quoteEmpty(received))
	if received == expected {
		fmt.Fprintln(c.out, gray.Render(line))
		return
	}
	fmt.Fprintln(c.out, red.Render(line))
	if !retry {
		fmt.Fprintln(c.out, gray.Render("Trying again"))
	}
}

// Passed prints the final success banner.
func (c *Console) Passed(msg string) {
	c.banner(green, msg)
}

// Failed prints a failure banner followed by the detail line.
func (c *Console) Failed(msg string, detail string) {
	c.banner(red, msg)
	if detail != "" {
		fmt.Fprintln(c.out, red.Render(detail))
	}
}

// Info prints a plain line.
func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) banner(style lipgloss.Style, msg string) {
	rule := strings.Repeat("#", len(msg))
	fmt.Fprintln(c.out, style.Render(rule))
	fmt.Fprintln(c.out, style.Render(msg))
	fmt.Fprintln(c.out, style.Render(rule))
}

func quoteEmpty(s string) string {
	if s == "" {
		return "(nothing)"
	}
	return s
}

package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/vovakirdan/dodgesim/internal/sim"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	outcomeStyles = map[sim.Outcome]lipgloss.Style{
		sim.Survives: lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		sim.Limit:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		sim.Dies:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

// maxBoxWidth caps the summary box to the terminal width when known.
func maxBoxWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// Millis formats a duration as milliseconds with three decimals.
func Millis(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
}

// OutcomeText renders the verdict line, colored by outcome.
func OutcomeText(o sim.Outcome) string {
	style, ok := outcomeStyles[o]
	if !ok {
		style = valueStyle
	}
	return style.Render("RESULTADO: " + o.Verdict())
}

// Summary renders the final report of a single run.
func Summary(executor string, res sim.Result) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("Simulation (%s)", executor)),
		row("Frames", fmt.Sprintf("%d", res.Frames)),
		row("Colisiones totales", fmt.Sprintf("%d", res.TotalCollisions)),
		OutcomeText(res.Outcome),
		row("Tiempo total simulacion", Millis(res.Elapsed)),
	}
	return boxStyle.MaxWidth(maxBoxWidth()).Render(strings.Join(lines, "\n"))
}

// Comparison renders sequential and parallel results side by side.
func Comparison(seq, par sim.Result) string {
	speedup := "n/a"
	if par.Elapsed > 0 {
		speedup = fmt.Sprintf("%.2fx", float64(seq.Elapsed)/float64(par.Elapsed))
	}

	agree := "yes"
	if seq.TotalCollisions != par.TotalCollisions {
		agree = "NO"
	}

	lines := []string{
		titleStyle.Render("Sequential vs parallel"),
		row("Sequential", fmt.Sprintf("%d collisions, %s", seq.TotalCollisions, Millis(seq.Elapsed))),
		row("Parallel", fmt.Sprintf("%d collisions, %s", par.TotalCollisions, Millis(par.Elapsed))),
		row("Results agree", agree),
		row("Speedup", speedup),
		OutcomeText(seq.Outcome),
	}
	return boxStyle.MaxWidth(maxBoxWidth()).Render(strings.Join(lines, "\n"))
}

func row(label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

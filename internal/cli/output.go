// pattern: Imperative Shell
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskspace/internal/ecosystem"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// PrintJSON pretty-prints JSON data to stdout.
// If stdout is a terminal, uses indentation for readability.
// Otherwise outputs raw bytes.
func PrintJSON(data []byte) error {
	fi, _ := os.Stdout.Stat()
	isTerm := (fi.Mode() & os.ModeCharDevice) != 0

	if isTerm {
		var obj any
		err := json.Unmarshal(data, &obj)
		if err != nil {
			// If JSON parsing fails, just write raw
			_, err := os.Stdout.Write(data)
			return err
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(obj)
	}

	_, err := os.Stdout.Write(data)
	return err
}

// RenderReport formats a setup report as human-readable lines, one per
// install result plus a summary.
func RenderReport(report ecosystem.Report) string {
	var sb strings.Builder

	for _, result := range report.Results {
		marker := okStyle.Render("ok")
		if !result.Success {
			marker = failStyle.Render("failed")
		}
		fmt.Fprintf(&sb, "%s %s (%s) %s\n",
			marker,
			result.Descriptor.Language,
			strings.Join(result.Descriptor.InstallCommand, " "),
			dimStyle.Render(fmt.Sprintf("%dms", result.DurationMs)),
		)
		if !result.Success && result.Stderr != "" {
			fmt.Fprintf(&sb, "  %s\n", strings.TrimSpace(result.Stderr))
		}
	}

	if len(report.Results) == 0 {
		sb.WriteString(dimStyle.Render("no ecosystems detected") + "\n")
		return sb.String()
	}

	if report.OverallSuccess {
		fmt.Fprintf(&sb, "%s\n", okStyle.Render("all installs succeeded"))
	} else {
		fmt.Fprintf(&sb, "%s\n", failStyle.Render("some installs failed"))
	}
	return sb.String()
}

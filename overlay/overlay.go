// Package overlay renders the debug overlay: build features and session details in a framed block.
package overlay

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/suborbital/necrosis/features"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Faint(true)
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Info is everything the overlay shows.
type Info struct {
	AppName   string
	SessionID string
	Version   string
	Features  []features.State
}

// Render writes the overlay for info to w.
func Render(w io.Writer, info Info) error {
	sb := &strings.Builder{}

	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s debug overlay", info.AppName)))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "%s %s\n", labelStyle.Render("session:"), info.SessionID)
	fmt.Fprintf(sb, "%s %s\n", labelStyle.Render("version:"), info.Version)

	width := 0
	for _, f := range info.Features {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}

	for _, f := range info.Features {
		state := disabledStyle.Render("DISABLED")
		if f.Enabled {
			state = enabledStyle.Render("ENABLED")
		}

		fmt.Fprintf(sb, "\n%-*s  %s", width, f.Name, state)
	}

	_, err := fmt.Fprintln(w, frameStyle.Render(sb.String()))

	return errors.Wrap(err, "failed to write overlay")
}

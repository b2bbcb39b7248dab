// Package cli — report.go implements the step-by-step console report.
//
// The report mimics a checklist: each finding is prefixed with a colored
// marker (✔ success, ⚠ warning, ✖ failure, ℹ note) under bold step
// headers. All report output goes to stdout and is suppressed entirely
// in --json mode, where the structured result replaces it.
package cli

import (
	"fmt"

	"github.com/fatih/color"
)

// Marker and emphasis styles. color.New degrades to plain text when
// stdout is not a terminal or NO_COLOR is set, so the report stays
// readable in pipelines and CI logs.
var (
	markOK   = color.New(color.FgGreen).Sprint("✔")
	markWarn = color.New(color.FgYellow).Sprint("⚠")
	markFail = color.New(color.FgRed).Sprint("✖")
	markInfo = color.New(color.FgCyan).Sprint("ℹ")

	boldText   = color.New(color.Bold).Sprintf
	headerText = color.New(color.Bold).Sprintf
	redText    = color.New(color.FgRed, color.Bold).Sprintf
	yellowText = color.New(color.FgYellow).Sprintf
	greenText  = color.New(color.FgGreen).Sprintf
)

// headerf prints a bold step header preceded by a blank line.
func headerf(format string, a ...interface{}) {
	if jsonOutput {
		return
	}
	fmt.Println()
	fmt.Println(headerText(format, a...))
}

// okf prints a success line with a green check marker.
func okf(format string, a ...interface{}) {
	reportf(markOK, format, a...)
}

// warnf prints a warning line with a yellow marker.
func warnf(format string, a ...interface{}) {
	reportf(markWarn, format, a...)
}

// failf prints a failure line with a red marker. A failure line is a
// finding ("not a DHI", "could not inspect"), not a process error —
// those go through the root command's error handler.
func failf(format string, a ...interface{}) {
	reportf(markFail, format, a...)
}

// infof prints a neutral detail line with a cyan marker.
func infof(format string, a ...interface{}) {
	reportf(markInfo, format, a...)
}

func reportf(marker, format string, a ...interface{}) {
	if jsonOutput {
		return
	}
	fmt.Printf("  %s %s\n", marker, fmt.Sprintf(format, a...))
}

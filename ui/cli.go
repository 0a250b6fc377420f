package ui

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/calebmur/uamwatch/model"
)

// Color definitions using fatih/color package for better cross-platform support
var (
	colorRed     = color.New(color.FgRed).SprintFunc()
	colorYellow  = color.New(color.FgYellow).SprintFunc()
	colorBlue    = color.New(color.FgBlue).SprintFunc()
	colorMagenta = color.New(color.FgMagenta).SprintFunc()
	colorCyan    = color.New(color.FgCyan).SprintFunc()
	colorWhite   = color.New(color.FgWhite).SprintFunc()
	colorGreen   = color.New(color.FgGreen).SprintFunc()
	colorBold    = color.New(color.Bold).SprintFunc()
)

// severityColorFunc returns the appropriate color function for a severity level
func severityColorFunc(severity model.Severity) func(a ...interface{}) string {
	switch severity {
	case model.SeverityCritical:
		return colorRed
	case model.SeverityHigh:
		return colorMagenta
	case model.SeverityMedium:
		return colorYellow
	case model.SeverityLow:
		return colorBlue
	default:
		return colorWhite
	}
}

// ShowBanner displays the application banner
func ShowBanner(name, version string) {
	fmt.Println(colorCyan(fmt.Sprintf("%s v%s", name, version)))
	fmt.Println(colorCyan("─────────────────────────────────────"))
}

// RenderRun prints the outcome of a finished detection run: a count-by-type
// summary followed by the individual alerts in processing order
func RenderRun(alerts []model.Alert) {
	if len(alerts) == 0 {
		fmt.Println(colorGreen("No alerts detected."))
		return
	}

	fmt.Printf("\n%s\n", colorBold("Alert Summary:"))
	renderSummaryTable(alerts)

	fmt.Printf("\n%s\n", colorBold("Alerts:"))
	renderAlertTable(alerts)
}

// renderSummaryTable shows alert counts per type, sorted by type
func renderSummaryTable(alerts []model.Alert) {
	counts := make(map[string]int)
	for _, alert := range alerts {
		counts[alert.AlertType]++
	}
	types := make([]string, 0, len(counts))
	for alertType := range counts {
		types = append(types, alertType)
	}
	sort.Strings(types)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Alert Type", "Severity", "Count"})
	table.SetAutoWrapText(false)

	for _, alertType := range types {
		severity := model.AlertSeverity(alertType)
		colorFn := severityColorFunc(severity)
		table.Append([]string{
			alertType,
			colorFn(string(severity)),
			fmt.Sprintf("%d", counts[alertType]),
		})
	}
	table.Render()
}

// renderAlertTable shows alerts in a formatted table
func renderAlertTable(alerts []model.Alert) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "User", "Type", "Details"})
	table.SetAutoWrapText(false)

	for _, alert := range alerts {
		colorFn := severityColorFunc(model.AlertSeverity(alert.AlertType))
		table.Append([]string{
			alert.Timestamp,
			alert.UserID,
			colorFn(alert.AlertType),
			alert.Details,
		})
	}
	table.Render()
}

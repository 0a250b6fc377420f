package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/calebmur/uamwatch/model"
)

// Output file names within the report directory
const (
	JSONFileName     = "alerts.json"
	MarkdownFileName = "alerts.md"
)

// Write renders the alert list to alerts.json and alerts.md in dir,
// overwriting any previous reports. The JSON report is a 2-space indented
// array; the Markdown report carries a count-by-type summary followed by
// every alert in input order.
func Write(alerts []model.Alert, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	if alerts == nil {
		alerts = []model.Alert{}
	}

	data, err := json.MarshalIndent(alerts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal alerts: %v", err)
	}
	jsonPath := filepath.Join(dir, JSONFileName)
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", jsonPath, err)
	}

	mdPath := filepath.Join(dir, MarkdownFileName)
	if err := os.WriteFile(mdPath, []byte(renderMarkdown(alerts)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", mdPath, err)
	}

	return nil
}

// renderMarkdown builds the human-readable summary document
func renderMarkdown(alerts []model.Alert) string {
	var b strings.Builder
	b.WriteString("# Insider Threat Alerts\n\n")

	if len(alerts) == 0 {
		b.WriteString("No alerts detected.\n")
		return b.String()
	}

	counts := make(map[string]int)
	for _, alert := range alerts {
		counts[alert.AlertType]++
	}
	types := make([]string, 0, len(counts))
	for alertType := range counts {
		types = append(types, alertType)
	}
	sort.Strings(types)

	b.WriteString("## Summary\n\n")
	for _, alertType := range types {
		fmt.Fprintf(&b, "- %s: %d\n", alertType, counts[alertType])
	}

	b.WriteString("\n## Alerts\n\n")
	for _, alert := range alerts {
		fmt.Fprintf(&b, "- **%s** (%s) - %s\n", alert.AlertType, alert.Timestamp, alert.UserID)
		fmt.Fprintf(&b, "  - %s\n", alert.Details)
	}

	return b.String()
}

package collector

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/calebmur/uamwatch/model"
)

// rawEvent mirrors one line of the UAM event log
type rawEvent struct {
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id"`
	EventType string `json:"event_type"`
	Status    string `json:"status"`
	AssetID   string `json:"asset_id"`
	AssetPath string `json:"asset_path"`
	BytesOut  int64  `json:"bytes_out"`
}

// ReadEvents loads a line-delimited JSON UAM log. Timestamps are parsed as
// ISO-8601 and normalized to UTC; the raw string is preserved for alert
// output. A malformed line or a missing required field aborts the load;
// login events additionally require a status.
func ReadEvents(path string) ([]model.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %v", err)
	}
	defer file.Close()

	var events []model.Event
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawEvent
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse event on line %d: %v", lineNo, err)
		}
		if raw.Timestamp == "" || raw.UserID == "" || raw.EventType == "" {
			return nil, fmt.Errorf("event on line %d is missing a required field", lineNo)
		}
		if raw.EventType == string(model.EventLogin) && raw.Status == "" {
			return nil, fmt.Errorf("login event on line %d is missing a status", lineNo)
		}

		ts, err := time.Parse(time.RFC3339, raw.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp on line %d: %v", lineNo, err)
		}

		events = append(events, model.Event{
			Timestamp:    ts.UTC(),
			RawTimestamp: raw.Timestamp,
			UserID:       raw.UserID,
			Type:         model.EventType(raw.EventType),
			Status:       raw.Status,
			AssetID:      raw.AssetID,
			AssetPath:    raw.AssetPath,
			BytesOut:     raw.BytesOut,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event log: %v", err)
	}

	return events, nil
}

// ReadPersonnel loads the personnel clearance table
func ReadPersonnel(path string) ([]model.PersonnelRecord, error) {
	rows, err := readTable(path, []string{"user_id", "clearance"})
	if err != nil {
		return nil, err
	}

	records := make([]model.PersonnelRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.PersonnelRecord{
			UserID:    row["user_id"],
			Clearance: row["clearance"],
		})
	}
	return records, nil
}

// ReadAssets loads the sensitive-asset registry
func ReadAssets(path string) ([]model.Asset, error) {
	rows, err := readTable(path, []string{"asset_id", "path", "required_clearance"})
	if err != nil {
		return nil, err
	}

	assets := make([]model.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, model.Asset{
			AssetID:           row["asset_id"],
			Path:              row["path"],
			RequiredClearance: row["required_clearance"],
		})
	}
	return assets, nil
}

// ReadRequests loads the access-request table
func ReadRequests(path string) ([]model.AccessRequest, error) {
	rows, err := readTable(path, []string{"user_id", "asset_id", "status"})
	if err != nil {
		return nil, err
	}

	requests := make([]model.AccessRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, model.AccessRequest{
			UserID:  row["user_id"],
			AssetID: row["asset_id"],
			Status:  row["status"],
		})
	}
	return requests, nil
}

// readTable reads a header-mapped CSV file. Columns beyond the required
// ones are carried through untouched; a missing required column is fatal.
func readTable(path string, required []string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %v", path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%s is missing required column %q", path, name)
		}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %v", path, err)
		}

		row := make(map[string]string, len(index))
		for name, i := range index {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

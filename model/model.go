package model

import (
	"time"
)

// EventType identifies the kind of a UAM event
type EventType string

// Recognized event kinds; anything else is carried through but matches no rule
const (
	EventLogin      EventType = "login"
	EventFileAccess EventType = "file_access"
	EventUSBInsert  EventType = "usb_insert"
)

// Login statuses
const (
	LoginSuccess = "success"
	LoginFailed  = "failed"
)

// Event represents a single user-activity-monitoring record
type Event struct {
	// Timestamp is the parsed event time, normalized to UTC
	Timestamp time.Time
	// RawTimestamp preserves the timestamp string as it appeared on the wire;
	// alerts echo it unchanged
	RawTimestamp string
	UserID       string
	Type         EventType
	Status       string // login events only
	AssetID      string // file_access events only
	AssetPath    string // file_access events only
	BytesOut     int64  // file_access events only; absent on the wire means 0
}

// PersonnelRecord maps a user to a clearance level
type PersonnelRecord struct {
	UserID    string
	Clearance string
}

// Asset is a sensitive resource from the asset registry
type Asset struct {
	AssetID           string
	Path              string
	RequiredClearance string
}

// AccessRequest is one row of the access-request table
type AccessRequest struct {
	UserID  string
	AssetID string
	Status  string
}

// ClearanceRank converts a clearance level to its ordered rank.
// Unrecognized levels rank 0, below every real clearance.
func ClearanceRank(level string) int {
	switch level {
	case "Confidential":
		return 1
	case "Secret":
		return 2
	case "Top Secret":
		return 3
	default:
		return 0
	}
}

// Alert categories
const (
	AlertRepeatedFailedLogins = "Repeated failed logins"
	AlertOffHoursLogin        = "Off-hours login"
	AlertHighVolumeFileAccess = "High volume file access"
	AlertUnauthorizedAccess   = "Unauthorized sensitive access"
	AlertNoApprovedRequest    = "Access without approved request"
	AlertLargeTransfer        = "Large data transfer"
	AlertUSBExfiltration      = "Possible USB exfiltration"
)

// Alert is one detection finding. Alerts are immutable once created and
// ordered by event-processing order.
type Alert struct {
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id"`
	AlertType string `json:"alert_type"`
	Details   string `json:"details"`
}

// Severity represents the display severity of an alert
type Severity string

// Severity levels
const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// AlertSeverity maps an alert category to the severity used for terminal
// display. Severity never appears in the report files.
func AlertSeverity(alertType string) Severity {
	switch alertType {
	case AlertUSBExfiltration:
		return SeverityCritical
	case AlertUnauthorizedAccess, AlertLargeTransfer:
		return SeverityHigh
	case AlertRepeatedFailedLogins, AlertHighVolumeFileAccess, AlertNoApprovedRequest:
		return SeverityMedium
	case AlertOffHoursLogin:
		return SeverityLow
	default:
		return SeverityInfo
	}
}

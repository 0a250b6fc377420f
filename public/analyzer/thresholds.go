package analyzer

import (
	"fmt"
	"time"
)

// Thresholds configures the detection rules. Fields are pointers so a
// missing option can be told apart from a legitimate zero (off_hours_end: 0
// is a valid midnight boundary).
type Thresholds struct {
	FailedLoginWindowMinutes *int   `yaml:"failed_login_window_minutes"`
	FailedLoginThreshold     *int   `yaml:"failed_login_threshold"`
	OffHoursStart            *int   `yaml:"off_hours_start"`
	OffHoursEnd              *int   `yaml:"off_hours_end"`
	DailyFileAccessThreshold *int   `yaml:"daily_file_access_threshold"`
	LargeTransferBytes       *int64 `yaml:"large_transfer_bytes"`
	USBExfilWindowMinutes    *int   `yaml:"usb_exfil_window_minutes"`
}

// Validate checks that every detection option is present and in range
func (t Thresholds) Validate() error {
	required := []struct {
		name string
		set  bool
	}{
		{"failed_login_window_minutes", t.FailedLoginWindowMinutes != nil},
		{"failed_login_threshold", t.FailedLoginThreshold != nil},
		{"off_hours_start", t.OffHoursStart != nil},
		{"off_hours_end", t.OffHoursEnd != nil},
		{"daily_file_access_threshold", t.DailyFileAccessThreshold != nil},
		{"large_transfer_bytes", t.LargeTransferBytes != nil},
		{"usb_exfil_window_minutes", t.USBExfilWindowMinutes != nil},
	}
	for _, opt := range required {
		if !opt.set {
			return fmt.Errorf("detection option %s is required", opt.name)
		}
	}

	if *t.FailedLoginWindowMinutes <= 0 {
		return fmt.Errorf("failed_login_window_minutes must be positive")
	}
	if *t.FailedLoginThreshold <= 0 {
		return fmt.Errorf("failed_login_threshold must be positive")
	}
	if *t.OffHoursStart < 0 || *t.OffHoursStart > 23 {
		return fmt.Errorf("off_hours_start must be an hour between 0 and 23")
	}
	if *t.OffHoursEnd < 0 || *t.OffHoursEnd > 23 {
		return fmt.Errorf("off_hours_end must be an hour between 0 and 23")
	}
	if *t.DailyFileAccessThreshold <= 0 {
		return fmt.Errorf("daily_file_access_threshold must be positive")
	}
	if *t.LargeTransferBytes <= 0 {
		return fmt.Errorf("large_transfer_bytes must be positive")
	}
	if *t.USBExfilWindowMinutes <= 0 {
		return fmt.Errorf("usb_exfil_window_minutes must be positive")
	}

	return nil
}

// FailedLoginWindow returns the failed-login window as a duration
func (t Thresholds) FailedLoginWindow() time.Duration {
	return time.Duration(*t.FailedLoginWindowMinutes) * time.Minute
}

// USBExfilWindow returns the USB exfiltration window as a duration
func (t Thresholds) USBExfilWindow() time.Duration {
	return time.Duration(*t.USBExfilWindowMinutes) * time.Minute
}

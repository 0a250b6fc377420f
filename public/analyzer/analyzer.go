package analyzer

import (
	"fmt"
	"time"

	"github.com/calebmur/uamwatch/model"
	"github.com/calebmur/uamwatch/public/refstore"
)

// Analyzer evaluates the detection rules over a UAM event stream. It owns
// all mutable window state; the reference store is read-only for its
// lifetime. One Analyzer performs one pass — build a fresh one per run.
type Analyzer struct {
	store *refstore.Store

	failedLoginWindow    time.Duration
	failedLoginWindowMin int
	failedLoginThreshold int
	offHoursStart        int
	offHoursEnd          int
	dailyAccessThreshold int
	largeTransferBytes   int64
	usbExfilWindow       time.Duration

	states map[string]*userState
}

// New creates an analyzer bound to a reference store and a set of
// thresholds. It fails fast if any detection option is missing or out of
// range, before any event is processed.
func New(store *refstore.Store, t Thresholds) (*Analyzer, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detection configuration: %v", err)
	}

	return &Analyzer{
		store:                store,
		failedLoginWindow:    t.FailedLoginWindow(),
		failedLoginWindowMin: *t.FailedLoginWindowMinutes,
		failedLoginThreshold: *t.FailedLoginThreshold,
		offHoursStart:        *t.OffHoursStart,
		offHoursEnd:          *t.OffHoursEnd,
		dailyAccessThreshold: *t.DailyFileAccessThreshold,
		largeTransferBytes:   *t.LargeTransferBytes,
		usbExfilWindow:       t.USBExfilWindow(),
		states:               make(map[string]*userState),
	}, nil
}

// Run processes events strictly in input order and returns the alerts in
// event-processing order. A single event may yield zero, one, or several
// alerts. Timestamps within one user's stream must be non-decreasing; a
// regression aborts the run with no alerts.
func (a *Analyzer) Run(events []model.Event) ([]model.Alert, error) {
	alerts := []model.Alert{}
	for i, event := range events {
		out, err := a.AnalyzeEvent(event)
		if err != nil {
			return nil, fmt.Errorf("event %d: %v", i+1, err)
		}
		alerts = append(alerts, out...)
	}
	return alerts, nil
}

// AnalyzeEvent evaluates every rule whose trigger matches the event's kind,
// updating the per-user window state as it goes. Unknown event kinds match
// no rule and pass through silently.
func (a *Analyzer) AnalyzeEvent(event model.Event) ([]model.Alert, error) {
	state, ok := a.states[event.UserID]
	if !ok {
		state = newUserState()
		a.states[event.UserID] = state
	}

	// Window eviction assumes a monotonic per-user stream
	if state.seenAny && event.Timestamp.Before(state.lastSeen) {
		return nil, fmt.Errorf("timestamps for user %s are out of order: %s precedes %s",
			event.UserID,
			event.Timestamp.Format(time.RFC3339),
			state.lastSeen.Format(time.RFC3339))
	}
	state.lastSeen = event.Timestamp
	state.seenAny = true

	var alerts []model.Alert
	emit := func(alertType, details string) {
		alerts = append(alerts, model.Alert{
			Timestamp: event.RawTimestamp,
			UserID:    event.UserID,
			AlertType: alertType,
			Details:   details,
		})
	}

	if event.Type == model.EventLogin && event.Status == model.LoginFailed {
		state.failedLogins.push(event.Timestamp, a.failedLoginWindow)
		if n := state.failedLogins.len(); n >= a.failedLoginThreshold {
			emit(model.AlertRepeatedFailedLogins,
				fmt.Sprintf("%d failed logins in %d minutes", n, a.failedLoginWindowMin))
		}
	}

	if event.Type == model.EventLogin && event.Status == model.LoginSuccess {
		// Wrap-around night window: start=22, end=6 flags 22:00-05:59 UTC
		hour := event.Timestamp.Hour()
		if hour >= a.offHoursStart || hour < a.offHoursEnd {
			emit(model.AlertOffHoursLogin,
				fmt.Sprintf("Login at %02d:%02d UTC", hour, event.Timestamp.Minute()))
		}
	}

	if event.Type == model.EventFileAccess {
		date := event.Timestamp.Format("2006-01-02")
		state.dailyAccess[date]++
		// Fires on every access past the threshold, not only the crossing one
		if n := state.dailyAccess[date]; n > a.dailyAccessThreshold {
			emit(model.AlertHighVolumeFileAccess,
				fmt.Sprintf("%d file accesses on %s", n, date))
		}

		if asset, found := a.store.Asset(event.AssetID); found {
			person, found := a.store.Personnel(event.UserID)
			if !found {
				return nil, fmt.Errorf("user %s has no personnel record for clearance check on asset %s",
					event.UserID, event.AssetID)
			}
			if model.ClearanceRank(person.Clearance) < model.ClearanceRank(asset.RequiredClearance) {
				emit(model.AlertUnauthorizedAccess,
					fmt.Sprintf("Accessed %s requiring %s", asset.Path, asset.RequiredClearance))
			}
		}

		// Approval check is independent of the clearance rule and does not
		// require the asset to resolve in the registry
		if event.AssetID != "" && !a.store.Approved(event.UserID, event.AssetID) {
			name := event.AssetID
			if asset, found := a.store.Asset(event.AssetID); found {
				name = asset.Path
			}
			emit(model.AlertNoApprovedRequest,
				fmt.Sprintf("No approved request for %s", name))
		}

		if event.BytesOut > 0 && event.BytesOut >= a.largeTransferBytes {
			emit(model.AlertLargeTransfer,
				fmt.Sprintf("%d bytes copied from %s", event.BytesOut, event.AssetPath))
		}
	}

	if event.Type == model.EventUSBInsert {
		state.usbInserts.push(event.Timestamp, a.usbExfilWindow)
	}

	if event.Type == model.EventFileAccess && event.BytesOut > 0 {
		// The USB queue is pruned lazily, on usb_insert events only; entries
		// may have aged out since, so the bounds are re-checked here.
		// First match wins: at most one exfiltration alert per access.
		for _, usb := range state.usbInserts.times {
			delta := event.Timestamp.Sub(usb)
			if delta >= 0 && delta <= a.usbExfilWindow {
				emit(model.AlertUSBExfiltration, "Large file access within USB insert window")
				break
			}
		}
	}

	return alerts, nil
}

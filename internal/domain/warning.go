package domain

import (
	"encoding/json"
	"time"
)

// RawWarning mirrors one alert object of the DWD wire format. Field names
// follow the upstream camelCase schema; the wire calls the product
// category "type".
type RawWarning struct {
	State         string `json:"state"`
	Category      int    `json:"type"`
	Level         int    `json:"level"`
	Start         int64  `json:"start"` // epoch milliseconds
	End           *int64 `json:"end"`   // nil when the warning is open-ended
	RegionName    string `json:"regionName"`
	Event         string `json:"event"`
	Headline      string `json:"headline"`
	Instruction   string `json:"instruction"`
	Description   string `json:"description"`
	StateShort    string `json:"stateShort"`
	AltitudeStart *int64 `json:"altitudeStart"`
	AltitudeEnd   *int64 `json:"altitudeEnd"`
}

// RawResponse mirrors the top-level payload inside the envelope. Warnings
// are grouped under arbitrary region keys; the grouping does not survive
// into the domain model.
type RawResponse struct {
	Time             int64                   `json:"time"`
	Warnings         map[string][]RawWarning `json:"warnings"`
	VorabInformation json.RawMessage         `json:"vorabInformation"` // advance notices, decoded but unused
	Copyright        string                  `json:"copyright"`
}

// Warning is one weather hazard notice with its severity, time window,
// and descriptive text. Values are immutable once constructed; all
// timestamps are UTC.
type Warning struct {
	State         string     `json:"state"`
	Category      int        `json:"category"`
	Level         int        `json:"level"`
	Start         time.Time  `json:"start"`
	End           *time.Time `json:"end,omitempty"`
	RegionName    string     `json:"region_name"`
	Event         string     `json:"event"`
	Headline      string     `json:"headline"`
	Instruction   string     `json:"instruction"`
	Description   string     `json:"description"`
	StateShort    string     `json:"state_short"`
	AltitudeStart *int64     `json:"altitude_start,omitempty"`
	AltitudeEnd   *int64     `json:"altitude_end,omitempty"`
}

// IsCurrent reports whether the warning is still active: the end time is
// absent (no defined expiry) or strictly in the future. A warning whose
// end equals the current instant is no longer current.
func (w Warning) IsCurrent() bool {
	if w.End == nil {
		return true
	}
	return clock.Now().Before(*w.End)
}

// WarningList is one fetched snapshot: the response timestamp, the
// warnings sorted ascending by start time, and the DWD copyright notice.
// Each fetch produces a wholly new list.
type WarningList struct {
	Time      time.Time `json:"time"`
	Warnings  []Warning `json:"warnings"`
	Copyright string    `json:"copyright"`
}

// Current returns the warnings that are still active, preserving sort order.
func (l WarningList) Current() []Warning {
	current := make([]Warning, 0, len(l.Warnings))
	for _, w := range l.Warnings {
		if w.IsCurrent() {
			current = append(current, w)
		}
	}
	return current
}

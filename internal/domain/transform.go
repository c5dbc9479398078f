package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// The DWD serves the warnings document as a JSONP-style function call
// rather than plain JSON. Both literals are matched exactly; anything
// else is treated as upstream format drift.
const (
	envelopePrefix = "warnWetter.loadWarnings("
	envelopeSuffix = ");"
)

// Epoch-millisecond bounds accepted by timeFromMillis: year 1 through
// year 9999 UTC. Values outside this window are corrupt upstream data.
const (
	minEpochMillis = -62135596800000
	maxEpochMillis = 253402300799999
)

// UnwrapEnvelope strips the function-call wrapper and returns the JSON
// payload between prefix and suffix. No partial recovery is attempted:
// a missing prefix or suffix fails with ErrResponseShape.
func UnwrapEnvelope(body string) (string, error) {
	payload, found := strings.CutPrefix(body, envelopePrefix)
	if !found {
		return "", fmt.Errorf("%w: missing %q prefix", ErrResponseShape, envelopePrefix)
	}
	payload, found = strings.CutSuffix(payload, envelopeSuffix)
	if !found {
		return "", fmt.Errorf("%w: missing %q suffix", ErrResponseShape, envelopeSuffix)
	}
	return payload, nil
}

// ParseWarningList converts a raw response body into a WarningList:
// unwrap the envelope, decode the JSON, map every record into the domain
// model. Either the whole list converts or an error is returned; no
// partial results.
func ParseWarningList(body string) (WarningList, error) {
	payload, err := UnwrapEnvelope(body)
	if err != nil {
		return WarningList{}, err
	}

	var raw RawResponse
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return WarningList{}, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}

	return NewWarningList(raw)
}

// NewWarningList maps a decoded wire response into the domain model. The
// per-region grouping is flattened (region keys are visited in sorted
// order so identical payloads produce identical output) and the result
// is stable-sorted ascending by start time. A single unconvertible
// timestamp fails the whole list rather than dropping the record.
func NewWarningList(raw RawResponse) (WarningList, error) {
	fetched, err := timeFromMillis(raw.Time)
	if err != nil {
		return WarningList{}, fmt.Errorf("response time: %w", err)
	}

	groups := make([]string, 0, len(raw.Warnings))
	total := 0
	for key, group := range raw.Warnings {
		groups = append(groups, key)
		total += len(group)
	}
	sort.Strings(groups)

	warnings := make([]Warning, 0, total)
	for _, key := range groups {
		for _, rw := range raw.Warnings[key] {
			w, err := newWarning(rw)
			if err != nil {
				return WarningList{}, fmt.Errorf("warning %q (%s): %w", rw.Event, rw.RegionName, err)
			}
			warnings = append(warnings, w)
		}
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Start.Before(warnings[j].Start)
	})

	return WarningList{
		Time:      fetched,
		Warnings:  warnings,
		Copyright: raw.Copyright,
	}, nil
}

// newWarning maps one raw record. Scalar fields are copied verbatim;
// only the timestamps are converted.
func newWarning(raw RawWarning) (Warning, error) {
	start, err := timeFromMillis(raw.Start)
	if err != nil {
		return Warning{}, fmt.Errorf("start: %w", err)
	}

	var end *time.Time
	if raw.End != nil {
		t, err := timeFromMillis(*raw.End)
		if err != nil {
			return Warning{}, fmt.Errorf("end: %w", err)
		}
		end = &t
	}

	return Warning{
		State:         raw.State,
		Category:      raw.Category,
		Level:         raw.Level,
		Start:         start,
		End:           end,
		RegionName:    raw.RegionName,
		Event:         raw.Event,
		Headline:      raw.Headline,
		Instruction:   raw.Instruction,
		Description:   raw.Description,
		StateShort:    raw.StateShort,
		AltitudeStart: raw.AltitudeStart,
		AltitudeEnd:   raw.AltitudeEnd,
	}, nil
}

// timeFromMillis converts an epoch-millisecond value into a UTC calendar
// time, rejecting out-of-range values instead of letting them wrap.
func timeFromMillis(ms int64) (time.Time, error) {
	if ms < minEpochMillis || ms > maxEpochMillis {
		return time.Time{}, fmt.Errorf("%w: %d", ErrDateParsing, ms)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// Package model contains the race-result records passed between layers.
package model

import "time"

// RawRecord is one race-result entry as received from the dataset.
// Field names mirror the remote JSON document.
type RawRecord struct {
	Time        string `json:"Time"`        // "mm:ss"
	Place       int    `json:"Place"`       // finishing rank in the dataset
	Seconds     int    `json:"Seconds"`     // race time in seconds
	Name        string `json:"Name"`        // rider name
	Year        int    `json:"Year"`        // race year
	Nationality string `json:"Nationality"` // country code
	Doping      string `json:"Doping"`      // empty when there is no allegation
	URL         string `json:"URL"`         // reference link, may be empty
}

// EnrichedRecord is a RawRecord plus values that scales can consume directly.
type EnrichedRecord struct {
	RawRecord

	// TimeOfDay encodes Time as 1970-01-01 00:mm:ss UTC.
	TimeOfDay time.Time `json:"TimeOfDay"`
	// YearDate is January 1 of Year, UTC.
	YearDate time.Time `json:"YearDate"`
	// Malformed is set when Time could not be parsed cleanly.
	Malformed bool `json:"Malformed,omitempty"`
}

// Doped reports whether the record carries a doping allegation.
func (r EnrichedRecord) Doped() bool {
	return len(r.Doping) > 0
}

// Enrich derives the temporal fields of raw. It never fails; a Time that
// does not parse yields a best-effort TimeOfDay and Malformed=true.
func Enrich(raw RawRecord) EnrichedRecord {
	tod, err := ParseTimeOfDay(raw.Time)
	return EnrichedRecord{
		RawRecord: raw,
		TimeOfDay: tod,
		YearDate:  YearToDate(raw.Year),
		Malformed: err != nil,
	}
}

// EnrichAll enriches every record in a single pass, preserving order.
func EnrichAll(raws []RawRecord) []EnrichedRecord {
	out := make([]EnrichedRecord, len(raws))
	for i, raw := range raws {
		out[i] = Enrich(raw)
	}
	return out
}

// Counts is the doping aggregate shown in the legend.
type Counts struct {
	Doped int `json:"doped"`
	Clean int `json:"clean"`
}

// Total returns Doped + Clean.
func (c Counts) Total() int { return c.Doped + c.Clean }

// CountDoping splits records by doping status.
func CountDoping(records []EnrichedRecord) Counts {
	var c Counts
	for _, r := range records {
		if r.Doped() {
			c.Doped++
		} else {
			c.Clean++
		}
	}
	return c
}

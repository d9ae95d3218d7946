// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Tier is the prestige bucket of an event. The zero value means "no tier".
type Tier string

// Known tiers, highest first.
const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
	TierE Tier = "E"
)

// Tiers lists every known tier, highest first.
func Tiers() []Tier {
	return []Tier{TierS, TierA, TierB, TierC, TierD, TierE}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierS, TierA, TierB, TierC, TierD, TierE:
		return true
	}
	return false
}

// dateLayout is the calendar date format used by event records.
const dateLayout = "2006-01-02"

// Date is a calendar date. Only year, month and day are meaningful; the
// value is kept at midnight UTC so comparisons never depend on a time zone.
type Date struct {
	t time.Time
}

// NewDate returns the calendar date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as observed in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return NewDate(y, m, d)
}

// ParseDate accepts YYYY-MM-DD or a full RFC3339 timestamp. An empty string
// yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return NewDate(t.Date()), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t.Date()), nil
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before reports whether d is an earlier calendar date than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.t }

// String renders d as YYYY-MM-DD, or "" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Event is one competition show. Rounds of the same competition share a
// SeriesID and are ordered by RoundOrder (higher is later).
type Event struct {
	ID         string `koanf:"id" json:"id"`
	Name       string `koanf:"name" json:"name"`
	Brand      string `koanf:"brand" json:"brand,omitempty"`
	Tier       Tier   `koanf:"tier" json:"tier,omitempty"`
	SeriesID   string `koanf:"series_id" json:"series_id,omitempty"`
	RoundOrder int    `koanf:"round_order" json:"round_order"`
	Date       Date   `koanf:"date" json:"date"`
	DateTBD    bool   `koanf:"date_tbd" json:"date_tbd"`
}

// IsPastOn reports whether the event took place strictly before today.
// Undated and TBD events are never past; an event held today is not past yet.
func (e Event) IsPastOn(today Date) bool {
	if e.DateTBD || e.Date.IsZero() {
		return false
	}
	return e.Date.Before(today)
}

// InSeries reports whether the event is a round of a multi-round series.
func (e Event) InSeries() bool { return e.SeriesID != "" }

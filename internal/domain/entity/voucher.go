package entity

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateTimeLayout is the zone-less ISO layout the backend exchanges timestamps in
	DateTimeLayout = "2006-01-02T15:04:05"

	// DateLayout is the calendar-date layout used for periods
	DateLayout = "2006-01-02"
)

// DateTime is a zone-less local timestamp serialized as "2006-01-02T15:04:05"
type DateTime struct {
	time.Time
}

// NewDateTime wraps a time.Time as a DateTime
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// MarshalJSON serializes the timestamp in the backend's local ISO layout
func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(DateTimeLayout))), nil
}

// UnmarshalJSON parses the backend's local ISO layout
func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid datetime %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Date is a calendar date serialized as "2006-01-02"
type Date struct {
	time.Time
}

// NewDate wraps a time.Time as a Date, truncating the time of day
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON serializes the date as YYYY-MM-DD
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(DateLayout))), nil
}

// UnmarshalJSON parses a YYYY-MM-DD date
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Voucher is a record of a bank deposit made by an affiliate,
// credited to a calendar period
type Voucher struct {
	ID               int64     `json:"id"`
	DepositNumber    int64     `json:"depositNumber"`
	DepositDate      DateTime  `json:"depositDate"`
	RegistrationDate DateTime  `json:"registrationDate"`
	Amount           float64   `json:"amount"`
	Period           Date      `json:"period"`
	Bank             Bank      `json:"bank"`
	Affiliate        Affiliate `json:"affiliate"`
}

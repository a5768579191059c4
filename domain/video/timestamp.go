package video

import (
	"fmt"
	"strconv"
	"strings"
)

// Timestamp represents a video offset in HH:MM:SS format
type Timestamp struct {
	Hours   int
	Minutes int
	Seconds int
}

// ParseTimestamp parses a timestamp string made of exactly three non-negative
// integer fields separated by colons. Hours are unbounded, and no carry is
// enforced between fields: "00:90:00" is a valid way to say ninety minutes.
func ParseTimestamp(s string) (Timestamp, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Timestamp{}, fmt.Errorf("%w: got %q", ErrInvalidTimeFormat, s)
	}

	var fields [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Timestamp{}, fmt.Errorf("%w: got %q", ErrInvalidTimeFormat, s)
		}
		fields[i] = n
	}

	return Timestamp{
		Hours:   fields[0],
		Minutes: fields[1],
		Seconds: fields[2],
	}, nil
}

// String returns the timestamp in zero-padded HH:MM:SS format
func (t Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// TotalSeconds returns the timestamp as total seconds
func (t Timestamp) TotalSeconds() int {
	return t.Hours*3600 + t.Minutes*60 + t.Seconds
}

// IsZero returns true if the timestamp is 00:00:00
func (t Timestamp) IsZero() bool {
	return t.Hours == 0 && t.Minutes == 0 && t.Seconds == 0
}

// Before returns true if t is before other
func (t Timestamp) Before(other Timestamp) bool {
	return t.TotalSeconds() < other.TotalSeconds()
}

// After returns true if t is after other
func (t Timestamp) After(other Timestamp) bool {
	return t.TotalSeconds() > other.TotalSeconds()
}

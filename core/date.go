package core

import "time"

// DayFormat is the layout of a calendar day as it is stored and exchanged.
const DayFormat = "2006-01-02"

// IsDay reports whether s is a valid calendar day ("2006-01-02").
func IsDay(s string) bool {
	_, err := time.Parse(DayFormat, s)
	return err == nil
}

// Today returns the current calendar day in UTC.
func Today() string {
	return time.Now().UTC().Format(DayFormat)
}

package domain

import "time"

// PhotoMetadata holds what can be read back from a stored photo file
type PhotoMetadata struct {
	Size        int64
	ContentType string
	ModifiedAt  time.Time

	// EXIF fields, zero when the file carries none
	HasExif    bool
	CameraMake string
	Model      string
	TakenAt    *time.Time
	Latitude   *float64
	Longitude  *float64
	Width      int
	Height     int
}

// DayCount is the number of captures on one calendar day
type DayCount struct {
	Day   time.Time
	Count int
}

// Label renders the day as YYYY-MM-DD
func (d DayCount) Label() string {
	return d.Day.Format(DateInputLayout)
}

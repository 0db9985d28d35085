package models

// AvailabilityWindow is one bookable time range on a calendar date.
// Date is canonical YYYY-MM-DD, times are zero-padded HH:MM.
type AvailabilityWindow struct {
	MentorID  int64  `json:"mentor_id,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

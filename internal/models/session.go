package models

import "time"

type Session struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	MentorID  int64     `json:"mentor_id"`
	DateTime  time.Time `json:"date_time"`
	Duration  string    `json:"duration"`
	Role      string    `json:"role"`
	PaymentID string    `json:"payment_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionSummary is a session joined with the counterpart's display name,
// as returned by the per-mentor and per-student listings.
type SessionSummary struct {
	CounterpartName string    `json:"counterpart_name"`
	DateTime        time.Time `json:"date_time"`
	Duration        string    `json:"duration"`
	Role            string    `json:"role"`
	PaymentID       string    `json:"payment_id"`
}

type Payment struct {
	ID           string    `json:"id"`
	StudentID    int64     `json:"student_id"`
	MentorID     int64     `json:"mentor_id"`
	Role         string    `json:"role"`
	Duration     string    `json:"duration"`
	Date         string    `json:"date"`
	SlotTime     string    `json:"slot_time"`
	Amount       float64   `json:"amount"`
	MentorEmail  string    `json:"mentor_email"`
	StudentEmail string    `json:"student_email"`
	Paid         bool      `json:"paid"`
	CreatedAt    time.Time `json:"created_at"`
}

package models

type Student struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"-"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

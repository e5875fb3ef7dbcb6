package models

import "time"

// Battalion is an organizational unit grouping personnel.
type Battalion struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	PostedStr string    `db:"posted_str" json:"postedStr"`
	CreatedBy string    `db:"created_by" json:"createdBy"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

package models

import "time"

// SeverePersonnel flags a soldier for follow-up triage.
type SeverePersonnel struct {
	ID          string     `db:"id" json:"id"`
	ArmyNo      string     `db:"army_no" json:"armyNo"`
	Name        string     `db:"name" json:"name"`
	Rank        string     `db:"rank" json:"rank"`
	BattalionID string     `db:"battalion_id" json:"battalion"`
	Reason      string     `db:"reason" json:"reason"`
	Severity    Severity   `db:"severity" json:"severity"`
	ReportedAt  *time.Time `db:"reported_at" json:"reportedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

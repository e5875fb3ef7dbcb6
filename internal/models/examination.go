package models

import (
	"encoding/json"
	"time"
)

// Severity is a DASS severity band for one subscale.
type Severity string

const (
	SeverityNormal          Severity = "NORMAL"
	SeverityMild            Severity = "MILD"
	SeverityModerate        Severity = "MODERATE"
	SeveritySevere          Severity = "SEVERE"
	SeverityExtremelySevere Severity = "EXTREMELY_SEVERE"
)

// Examination is one completed self-assessment with computed DASS scores.
type Examination struct {
	ID                 string          `db:"id" json:"id"`
	PersonnelID        string          `db:"personnel_id" json:"personnelId"`
	ArmyNo             string          `db:"army_no" json:"armyNo"`
	Answers            json.RawMessage `db:"answers" json:"answers"`
	Depression         int             `db:"depression" json:"depression"`
	Anxiety            int             `db:"anxiety" json:"anxiety"`
	Stress             int             `db:"stress" json:"stress"`
	DepressionSeverity Severity        `db:"depression_severity" json:"depressionSeverity"`
	AnxietySeverity    Severity        `db:"anxiety_severity" json:"anxietySeverity"`
	StressSeverity     Severity        `db:"stress_severity" json:"stressSeverity"`
	Status             SelfEvalStatus  `db:"status" json:"status"`
	CreatedAt          time.Time       `db:"created_at" json:"createdAt"`
}

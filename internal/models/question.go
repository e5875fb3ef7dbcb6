package models

import "time"

// QuestionCategory maps each question onto a DASS subscale.
type QuestionCategory string

const (
	CategoryDepression QuestionCategory = "DEPRESSION"
	CategoryAnxiety    QuestionCategory = "ANXIETY"
	CategoryStress     QuestionCategory = "STRESS"
)

// Question is a single item of the self-assessment question bank.
type Question struct {
	ID        string           `db:"id" json:"id"`
	Text      string           `db:"text" json:"text"`
	Category  QuestionCategory `db:"category" json:"category"`
	Ordinal   int              `db:"ordinal" json:"ordinal"`
	Active    bool             `db:"active" json:"active"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time        `db:"updated_at" json:"updatedAt"`
}

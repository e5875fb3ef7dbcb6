package models

import (
	"encoding/json"
	"time"
)

// SelfEvalStatus tracks a soldier's own questionnaire lifecycle.
type SelfEvalStatus string

const (
	SelfEvalNotAttempted SelfEvalStatus = "NOT_ATTEMPTED"
	SelfEvalExamAppeared SelfEvalStatus = "EXAM_APPEARED"
	SelfEvalCompleted    SelfEvalStatus = "COMPLETED"
)

// PeerEvalStatus tracks the independent peer-evaluation axis. The only
// transition is PENDING -> EVALUATED; a record never returns to PENDING.
type PeerEvalStatus string

const (
	PeerEvalPending   PeerEvalStatus = "PENDING"
	PeerEvalEvaluated PeerEvalStatus = "EVALUATED"
)

// MaritalStatus enumerates the recorded marital states.
type MaritalStatus string

const (
	MaritalSingle  MaritalStatus = "SINGLE"
	MaritalMarried MaritalStatus = "MARRIED"
	MaritalOther   MaritalStatus = "OTHER"
)

// Personnel is a soldier's record scoped to a battalion, carrying both
// assessment axes and the embedded peer-evaluation sub-record.
type Personnel struct {
	ID             string         `db:"id" json:"id"`
	ArmyNo         string         `db:"army_no" json:"armyNo"`
	Rank           string         `db:"rank" json:"rank"`
	Name           string         `db:"name" json:"name"`
	SubUnit        string         `db:"sub_unit" json:"subUnit"`
	ServiceLength  string         `db:"service_length" json:"serviceLength"`
	DateOfInduct   *time.Time     `db:"date_of_induction" json:"dateOfInduction,omitempty"`
	MedCat         string         `db:"med_cat" json:"medCat"`
	LeaveAvailed   string         `db:"leave_availed" json:"leaveAvailed"`
	MaritalStatus  MaritalStatus  `db:"marital_status" json:"maritalStatus"`
	SelfEvalStatus SelfEvalStatus `db:"self_eval_status" json:"selfEvalStatus"`

	PeerEvalStatus  PeerEvalStatus  `db:"peer_eval_status" json:"peerEvalStatus"`
	PeerEvaluatedBy *string         `db:"peer_evaluated_by" json:"peerEvaluatedBy,omitempty"`
	PeerEvaluatedAt *time.Time      `db:"peer_evaluated_at" json:"peerEvaluatedAt,omitempty"`
	PeerAnswers     json.RawMessage `db:"peer_answers" json:"peerAnswers,omitempty"`
	PeerFinalScore  *int            `db:"peer_final_score" json:"peerFinalScore,omitempty"`

	BattalionID string    `db:"battalion_id" json:"battalion"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// PersonnelFilter captures list criteria for battalion rosters.
type PersonnelFilter struct {
	BattalionID    string
	Search         string
	SelfEvalStatus *SelfEvalStatus
	PeerEvalStatus *PeerEvalStatus
	Page           int
	PageSize       int
}

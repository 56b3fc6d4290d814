package models

// DefaultDisciplineGroup is assigned when a discipline is created without a group.
const DefaultDisciplineGroup = "Общие"

// Direction groups the disciplines of a study plan.
type Direction struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Discipline belongs to exactly one direction and spans a term range.
type Discipline struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	StartTerm   int    `db:"start_term" json:"start_term"`
	EndTerm     int    `db:"end_term" json:"end_term"`
	Group       string `db:"group" json:"group"`
	DirectionID int64  `db:"direction_id" json:"direction_id"`
}

// DirectionWithDisciplines is the nested public view of a study plan.
type DirectionWithDisciplines struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Disciplines []Discipline `json:"disciplines"`
}

// DirectionDeleteResult reports the outcome of a cascading direction delete.
type DirectionDeleteResult struct {
	Message                 string `json:"message"`
	DeletedDisciplinesCount int64  `json:"deleted_disciplines_count"`
}

package models

// Subject is a technology or course shown in the stack section.
type Subject struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Icon        *string `db:"svg_code" json:"svg_code"`
}

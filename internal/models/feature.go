package models

// Feature is a selling point shown on the landing page.
type Feature struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description string  `db:"description" json:"description"`
	Icon        *string `db:"svg_code" json:"svg_code"`
}

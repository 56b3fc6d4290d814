package models

// Achievement is a news-like record tagged by theme.
type Achievement struct {
	ID          int64  `db:"id" json:"id"`
	Theme       string `db:"theme" json:"theme"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
}

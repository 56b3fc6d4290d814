package models

import "github.com/lib/pq"

// Teacher is a staff profile with an ordered list of taught subjects.
type Teacher struct {
	ID       int64          `db:"id" json:"id"`
	ImageURL string         `db:"image_url" json:"image_url"`
	FIO      string         `db:"fio" json:"fio"`
	Post     string         `db:"post" json:"post"`
	Subjects pq.StringArray `db:"subjects" json:"subjects"`
}

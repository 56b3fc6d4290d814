package models

// Speciality is an educational programme. Direction is a free-text label and
// is not linked to the Direction entity.
type Speciality struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Qualification string `db:"qualification" json:"qualification"`
	Term          int    `db:"term" json:"term"`
	Direction     string `db:"direction" json:"direction"`
	Description   string `db:"description" json:"description"`
}

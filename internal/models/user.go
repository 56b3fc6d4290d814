package models

// User is an operator allowed to log into the CMS and the admin panel.
type User struct {
	ID             int64  `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	Email          string `db:"email" json:"email"`
	HashedPassword string `db:"hashed_password" json:"-"`
}

package dto

// AdminLoginRequest is the panel login form; username carries the email.
type AdminLoginRequest struct {
	Username string `form:"username" validate:"required,email,max=255"`
	Password string `form:"password" validate:"required"`
}

// AdminUserForm creates or edits an operator. Password is optional on edit.
type AdminUserForm struct {
	Name     string `form:"name" validate:"required,min=1,max=100"`
	Email    string `form:"email" validate:"required,email,max=255"`
	Password string `form:"password" validate:"omitempty,min=6,max=225"`
}

// AdminTeacherForm is the multipart teacher form. Subjects is a delimited
// string and the photo arrives as a separate file part.
type AdminTeacherForm struct {
	FIO      string `form:"fio"`
	Post     string `form:"post"`
	Subjects string `form:"subjects"`
}

// AdminModelRows is the list view of one registered model.
type AdminModelRows struct {
	View  interface{}              `json:"view"`
	Rows  []map[string]interface{} `json:"rows"`
	Total int                      `json:"total"`
}

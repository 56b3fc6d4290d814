package dto

// CreateTeacherRequest is the payload for adding a teacher profile.
type CreateTeacherRequest struct {
	FIO      string   `json:"fio" validate:"required,min=1,max=100"`
	Post     string   `json:"post" validate:"required,min=1,max=100"`
	Subjects []string `json:"subjects" validate:"required,min=1,max=100,dive,required"`
	ImageURL string   `json:"image_url" validate:"required"`
}

// UpdateTeacherRequest is a partial patch.
type UpdateTeacherRequest struct {
	FIO      *string   `json:"fio" validate:"omitnil,min=5,max=100"`
	Post     *string   `json:"post" validate:"omitnil,min=3,max=100"`
	Subjects *[]string `json:"subjects" validate:"omitnil,min=1,max=100,dive,required"`
	ImageURL *string   `json:"image_url" validate:"omitnil,min=1"`
}

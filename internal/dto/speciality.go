package dto

// CreateSpecialityRequest is the payload for adding a speciality.
type CreateSpecialityRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=225"`
	Qualification string `json:"qualification" validate:"required,min=1,max=225"`
	Term          int    `json:"term" validate:"required,min=1,max=10"`
	Direction     string `json:"direction" validate:"required,min=1,max=100"`
	Description   string `json:"description" validate:"required,min=1"`
}

// UpdateSpecialityRequest is a partial patch.
type UpdateSpecialityRequest struct {
	Name          *string `json:"name" validate:"omitnil,min=1,max=225"`
	Qualification *string `json:"qualification" validate:"omitnil,min=1,max=225"`
	Term          *int    `json:"term" validate:"omitnil,min=1,max=10"`
	Direction     *string `json:"direction" validate:"omitnil,min=1,max=100"`
	Description   *string `json:"description" validate:"omitnil,min=1"`
}

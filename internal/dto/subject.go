package dto

// CreateSubjectRequest is the payload for adding a subject.
type CreateSubjectRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=225"`
	Description string  `json:"description" validate:"required,min=1"`
	Icon        *string `json:"svg_code"`
}

// UpdateSubjectRequest is a partial patch; nil fields are left untouched.
type UpdateSubjectRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=225"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Icon        *string `json:"svg_code"`
}

package dto

// CreateDirectionRequest is the payload for adding a direction.
type CreateDirectionRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateDirectionRequest is a partial patch.
type UpdateDirectionRequest struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=100"`
}

// CreateDisciplineRequest is the payload for adding a discipline. An empty
// group falls back to the default group.
type CreateDisciplineRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=225"`
	StartTerm   int    `json:"start_term" validate:"required,min=1,max=12"`
	EndTerm     int    `json:"end_term" validate:"required,min=1,max=12"`
	Group       string `json:"group" validate:"omitempty,min=1,max=100"`
	DirectionID int64  `json:"direction_id" validate:"required,gt=0"`
}

// UpdateDisciplineRequest is a partial patch. Term order is checked against
// the merged record.
type UpdateDisciplineRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=200"`
	StartTerm   *int    `json:"start_term" validate:"omitnil,min=1,max=12"`
	EndTerm     *int    `json:"end_term" validate:"omitnil,min=1,max=12"`
	Group       *string `json:"group" validate:"omitnil,min=1,max=100"`
	DirectionID *int64  `json:"direction_id" validate:"omitnil,gt=0"`
}

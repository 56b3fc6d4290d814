package dto

// CreateFeatureRequest is the payload for adding a feature.
type CreateFeatureRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=225"`
	Description string  `json:"description" validate:"required,min=1"`
	Icon        *string `json:"svg_code"`
}

// UpdateFeatureRequest is a partial patch; an empty svg_code clears the icon.
type UpdateFeatureRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=225"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Icon        *string `json:"svg_code"`
}

package dto

// CreateAchievementRequest is the payload for adding an achievement.
type CreateAchievementRequest struct {
	Theme       string `json:"theme" validate:"required,min=1,max=225"`
	Title       string `json:"title" validate:"required,min=1,max=225"`
	Description string `json:"description" validate:"required,min=1"`
}

// UpdateAchievementRequest is a partial patch.
type UpdateAchievementRequest struct {
	Theme       *string `json:"theme" validate:"omitnil,min=1,max=225"`
	Title       *string `json:"title" validate:"omitnil,min=1,max=225"`
	Description *string `json:"description" validate:"omitnil,min=1"`
}

package dto

type CreateAlertRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Message string `json:"message" validate:"required,min=1"`
	Type    string `json:"type" validate:"required"`
}

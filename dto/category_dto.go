package dto

type CreateCategoryDTO struct {
	Name           string `json:"name" binding:"required"`
	Image          string `json:"image"`
	Link           string `json:"link"` // "/category/<slug of name>" if empty
	ParentCategory string `json:"parentCategory"`
	Description    string `json:"description"`
}

// UpdateCategoryDTO: all fields are optional pointers
type UpdateCategoryDTO struct {
	Name           *string `json:"name"`
	Image          *string `json:"image"`
	Link           *string `json:"link"`
	ParentCategory *string `json:"parentCategory"`
	Description    *string `json:"description"`
}

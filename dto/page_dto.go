package dto

type UpsertPageDTO struct {
	Title           string `json:"title" binding:"required"`
	Content         string `json:"content"`
	MetaDescription string `json:"metaDescription"`
}

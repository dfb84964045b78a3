package dto

import "github.com/princinho/rentalbackend/models"

type CreateProductDTO struct {
	Name            string                   `json:"name" binding:"required,min=2"`
	Category        string                   `json:"category" binding:"required"`
	CategoryID      string                   `json:"categoryId"`
	Subcategory     string                   `json:"subcategory"`
	Image           string                   `json:"image"`
	Images          []string                 `json:"images"`
	Price           float64                  `json:"price" binding:"gte=0"`
	Description     string                   `json:"description"`
	Details         map[string]any           `json:"details"`
	Documents       []models.ProductDocument `json:"documents"`
	InsuranceBadges []string                 `json:"insuranceBadges"`
}

type UpdateProductDTO struct {
	Name              *string                   `json:"name,omitempty"`
	Category          *string                   `json:"category,omitempty"`
	CategoryID        *string                   `json:"categoryId,omitempty"`
	Subcategory       *string                   `json:"subcategory,omitempty"`
	Image             *string                   `json:"image,omitempty"`
	Price             *float64                  `json:"price,omitempty"`
	Description       *string                   `json:"description,omitempty"`
	Details           *map[string]any           `json:"details,omitempty"`
	Documents         *[]models.ProductDocument `json:"documents,omitempty"`
	InsuranceBadges   *[]string                 `json:"insuranceBadges,omitempty"`
	RemovedImagesUrls []string                  `json:"removedImagesUrls,omitempty"`
}

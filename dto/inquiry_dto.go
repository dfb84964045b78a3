package dto

import "time"

type CreateInquiryDTO struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`

	ProductID       string    `json:"productId" binding:"required"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	AddonIDs        []string  `json:"addonIds"`
	Delivery        bool      `json:"delivery"`
	DeliveryAddress string    `json:"deliveryAddress"`
	Message         string    `json:"message" binding:"max=8000"`
}

type UpdateInquiryStatusDTO struct {
	Status string `json:"status" binding:"required"`
}

type AddAdminNoteDTO struct {
	Content string `json:"content" binding:"required"`
}

package models

import "time"

type InquiryStatus string

const (
	InquiryStatusNew        InquiryStatus = "NEW"
	InquiryStatusInProgress InquiryStatus = "IN_PROGRESS"
	InquiryStatusAnswered   InquiryStatus = "ANSWERED"
	InquiryStatusRejected   InquiryStatus = "REJECTED"
	InquiryStatusClosed     InquiryStatus = "CLOSED"
)

var InquiryStatuses = []InquiryStatus{
	InquiryStatusNew,
	InquiryStatusInProgress,
	InquiryStatusAnswered,
	InquiryStatusRejected,
	InquiryStatusClosed,
}

func (s InquiryStatus) Valid() bool {
	for _, v := range InquiryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type InquiryNote struct {
	ID          string     `bson:"id" json:"id"`
	AuthorID    string     `bson:"authorId" json:"authorId"`
	AuthorEmail string     `bson:"authorEmail" json:"authorEmail"`
	Content     string     `bson:"content" json:"content"`
	Attachment  *MediaItem `bson:"attachment,omitempty" json:"attachment,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
}

// Inquiry is a rental request submitted through the configurator.
type Inquiry struct {
	ID              string        `bson:"id" json:"id"`
	FullName        string        `bson:"fullName" json:"fullName"`
	Email           string        `bson:"email" json:"email"`
	Phone           string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Company         string        `bson:"company,omitempty" json:"company,omitempty"`
	ProductID       string        `bson:"productId" json:"productId"`
	ProductName     string        `bson:"productName" json:"productName"`
	StartDate       time.Time     `bson:"startDate" json:"startDate"`
	EndDate         time.Time     `bson:"endDate" json:"endDate"`
	RentalDays      int           `bson:"rentalDays" json:"rentalDays"`
	AddonIDs        []string      `bson:"addonIds" json:"addonIds"`
	Delivery        bool          `bson:"delivery" json:"delivery"`
	DeliveryAddress string        `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	Message         string        `bson:"message,omitempty" json:"message,omitempty"`
	Status          InquiryStatus `bson:"status" json:"status"`
	Notes           []InquiryNote `bson:"notes" json:"notes"`
	AnsweredAt      *time.Time    `bson:"answeredAt,omitempty" json:"answeredAt,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

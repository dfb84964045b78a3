package models

import "time"

type BlogPost struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title" binding:"required"`
	Slug        string     `bson:"slug" json:"slug"`
	Excerpt     string     `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content     string     `bson:"content" json:"content"`
	Image       string     `bson:"image,omitempty" json:"image,omitempty"`
	Author      string     `bson:"author,omitempty" json:"author,omitempty"`
	Published   bool       `bson:"published" json:"published"`
	PublishedAt *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (b *BlogPost) GetID() string   { return b.ID }
func (b *BlogPost) SetID(id string) { b.ID = id }

type Testimonial struct {
	ID      string `bson:"id" json:"id"`
	Author  string `bson:"author" json:"author" binding:"required"`
	Company string `bson:"company,omitempty" json:"company,omitempty"`
	Text    string `bson:"text" json:"text" binding:"required"`
	Rating  int    `bson:"rating" json:"rating" binding:"omitempty,min=1,max=5"`
	Image   string `bson:"image,omitempty" json:"image,omitempty"`
}

func (t *Testimonial) GetID() string   { return t.ID }
func (t *Testimonial) SetID(id string) { t.ID = id }

type Location struct {
	ID           string   `bson:"id" json:"id"`
	Name         string   `bson:"name" json:"name" binding:"required"`
	Address      string   `bson:"address" json:"address"`
	Zip          string   `bson:"zip" json:"zip"`
	City         string   `bson:"city" json:"city"`
	Phone        string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string   `bson:"email,omitempty" json:"email,omitempty" binding:"omitempty,email"`
	OpeningHours string   `bson:"openingHours,omitempty" json:"openingHours,omitempty"`
	Lat          float64  `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng          float64  `bson:"lng,omitempty" json:"lng,omitempty"`
	ProductIDs   []string `bson:"productIds" json:"productIds"`
}

func (l *Location) GetID() string   { return l.ID }
func (l *Location) SetID(id string) { l.ID = id }

type PriceUnit string

const (
	PriceUnitDay  PriceUnit = "day"
	PriceUnitOnce PriceUnit = "once"
)

type Addon struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name" binding:"required"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64   `bson:"price" json:"price" binding:"gte=0"`
	PriceUnit   PriceUnit `bson:"priceUnit" json:"priceUnit" binding:"omitempty,oneof=day once"`
}

func (a *Addon) GetID() string   { return a.ID }
func (a *Addon) SetID(id string) { a.ID = id }

type Page struct {
	Key             string    `bson:"key" json:"key"`
	Title           string    `bson:"title" json:"title"`
	Content         string    `bson:"content" json:"content"`
	MetaDescription string    `bson:"metaDescription,omitempty" json:"metaDescription,omitempty"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

type MediaItem struct {
	ID         string    `bson:"id" json:"id"`
	FileName   string    `bson:"fileName" json:"fileName"`
	ObjectName string    `bson:"objectName" json:"objectName"`
	URL        string    `bson:"url" json:"url"`
	MimeType   string    `bson:"mimeType" json:"mimeType"`
	SizeBytes  int64     `bson:"sizeBytes" json:"sizeBytes"`
	UploadedAt time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

type ConfiguratorSettings struct {
	Enabled           bool    `bson:"enabled" json:"enabled"`
	MinRentalDays     int     `bson:"minRentalDays" json:"minRentalDays" binding:"gte=0"`
	MaxRentalDays     int     `bson:"maxRentalDays" json:"maxRentalDays" binding:"gte=0"`
	DeliveryAvailable bool    `bson:"deliveryAvailable" json:"deliveryAvailable"`
	DeliveryFee       float64 `bson:"deliveryFee" json:"deliveryFee" binding:"gte=0"`
	ContactEmail      string  `bson:"contactEmail,omitempty" json:"contactEmail,omitempty" binding:"omitempty,email"`
	Intro             string  `bson:"intro,omitempty" json:"intro,omitempty"`
}

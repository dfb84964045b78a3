package models

type Category struct {
	ID             string `bson:"id" json:"id"`
	Name           string `bson:"name" json:"name"`
	Image          string `bson:"image" json:"image"`
	Link           string `bson:"link" json:"link"`
	Count          int    `bson:"count" json:"count"`
	ParentCategory string `bson:"parentCategory,omitempty" json:"parentCategory,omitempty"`
	Description    string `bson:"description,omitempty" json:"description,omitempty"`
}

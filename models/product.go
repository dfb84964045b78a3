package models

type ProductDocument struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
}

// Product.Category holds the category name as free text. CategoryID is the
// explicit reference filled in by the backfill and by admin edits.
type Product struct {
	ID              string            `bson:"id" json:"id"`
	Name            string            `bson:"name" json:"name"`
	Slug            string            `bson:"slug" json:"slug"`
	Category        string            `bson:"category" json:"category"`
	CategoryID      string            `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Subcategory     string            `bson:"subcategory" json:"subcategory"`
	Image           string            `bson:"image" json:"image"`
	Images          []string          `bson:"images,omitempty" json:"images,omitempty"`
	Price           float64           `bson:"price" json:"price"`
	Description     string            `bson:"description,omitempty" json:"description,omitempty"`
	Details         map[string]any    `bson:"details,omitempty" json:"details,omitempty"`
	Documents       []ProductDocument `bson:"documents,omitempty" json:"documents,omitempty"`
	InsuranceBadges []string          `bson:"insuranceBadges,omitempty" json:"insuranceBadges,omitempty"`
}

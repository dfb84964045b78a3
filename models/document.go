package models

// Document is the whole site state. Every store reads and writes it as one
// unit.
type Document struct {
	Categories   []Category    `bson:"categories" json:"categories"`
	Products     []Product     `bson:"products" json:"products"`
	Blog         []BlogPost    `bson:"blog" json:"blog"`
	Testimonials []Testimonial `bson:"testimonials" json:"testimonials"`
	Inquiries    []Inquiry     `bson:"inquiries" json:"inquiries"`
	Pages        []Page        `bson:"pages" json:"pages"`
	Addons       []Addon       `bson:"addons" json:"addons"`
	Locations    []Location    `bson:"locations" json:"locations"`
	Media        []MediaItem   `bson:"media" json:"media"`
	Users        []User        `bson:"users" json:"users"`
	// Configurator is nil until settings were saved once.
	Configurator *ConfiguratorSettings `bson:"configurator,omitempty" json:"configurator,omitempty"`
}

// Settings returns the configurator settings, zero (disabled) when none
// were saved yet.
func (d *Document) Settings() ConfiguratorSettings {
	if d.Configurator == nil {
		return ConfiguratorSettings{}
	}
	return *d.Configurator
}

func (d *Document) CategoryByID(id string) (int, *Category) {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return i, &d.Categories[i]
		}
	}
	return -1, nil
}

func (d *Document) ProductByID(id string) (int, *Product) {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return i, &d.Products[i]
		}
	}
	return -1, nil
}

func (d *Document) InquiryByID(id string) (int, *Inquiry) {
	for i := range d.Inquiries {
		if d.Inquiries[i].ID == id {
			return i, &d.Inquiries[i]
		}
	}
	return -1, nil
}

func (d *Document) UserByEmail(email string) *User {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return &d.Users[i]
		}
	}
	return nil
}

func (d *Document) UserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

func (d *Document) AddonByID(id string) *Addon {
	for i := range d.Addons {
		if d.Addons[i].ID == id {
			return &d.Addons[i]
		}
	}
	return nil
}

func (d *Document) PageByKey(key string) (int, *Page) {
	for i := range d.Pages {
		if d.Pages[i].Key == key {
			return i, &d.Pages[i]
		}
	}
	return -1, nil
}

package catalog

import "github.com/princinho/rentalbackend/models"

type Subcategory struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Link  string `json:"link,omitempty"`
}

type Meta struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Subcategories []Subcategory `json:"subcategories"`
}

type Listing struct {
	Meta     Meta             `json:"meta"`
	Products []models.Product `json:"products"`
}

// Filter selects the products shown for a resolution. Result order is
// store order; no sorting is applied.
func (r *Resolver) Filter(res Resolution, categories []models.Category, products []models.Product) (*Listing, error) {
	switch res.Kind {
	case KindDirect:
		return filterDirect(res.Category, categories, products), nil
	case KindVirtual:
		return filterVirtual(res.Group, categories, products), nil
	default:
		return nil, ErrCategoryNotFound
	}
}

func filterDirect(cat *models.Category, categories []models.Category, products []models.Product) *Listing {
	name := Normalize(cat.Name)
	out := &Listing{
		Meta: Meta{
			Title:         cat.Name,
			Description:   cat.Description,
			Subcategories: []Subcategory{},
		},
		Products: []models.Product{},
	}

	childNames := make(map[string]struct{})
	childIDs := make(map[string]struct{})
	for _, c := range categories {
		if c.ParentCategory != "" && c.ParentCategory == cat.ID {
			childNames[Normalize(c.Name)] = struct{}{}
			childIDs[c.ID] = struct{}{}
			out.Meta.Subcategories = append(out.Meta.Subcategories, Subcategory{
				Name:  c.Name,
				Image: c.Image,
				Link:  c.Link,
			})
		}
	}

	if len(childNames) > 0 {
		for _, p := range products {
			_, byName := childNames[Normalize(p.Category)]
			_, bySub := childNames[Normalize(p.Subcategory)]
			_, byID := childIDs[p.CategoryID]
			if belongsTo(p, cat.ID, name) || byName || bySub || (p.CategoryID != "" && byID) {
				out.Products = append(out.Products, p)
			}
		}
		return out
	}

	seen := make(map[string]int)
	for _, p := range products {
		if !belongsTo(p, cat.ID, name) {
			continue
		}
		out.Products = append(out.Products, p)
		if p.Subcategory == "" {
			continue
		}
		idx, ok := seen[p.Subcategory]
		if !ok {
			seen[p.Subcategory] = len(out.Meta.Subcategories)
			out.Meta.Subcategories = append(out.Meta.Subcategories, Subcategory{
				Name:  p.Subcategory,
				Image: p.Image,
			})
			continue
		}
		if out.Meta.Subcategories[idx].Image == "" {
			out.Meta.Subcategories[idx].Image = p.Image
		}
	}
	for i := range out.Meta.Subcategories {
		if out.Meta.Subcategories[i].Image == "" {
			out.Meta.Subcategories[i].Image = cat.Image
		}
	}
	return out
}

func filterVirtual(g *VirtualGroup, categories []models.Category, products []models.Product) *Listing {
	aliases := make(map[string]struct{}, len(g.Aliases))
	for _, a := range g.Aliases {
		aliases[Normalize(a)] = struct{}{}
	}

	out := &Listing{
		Meta: Meta{
			Title:         g.Title,
			Description:   g.Description,
			Subcategories: []Subcategory{},
		},
		Products: []models.Product{},
	}
	for _, c := range categories {
		if _, ok := aliases[Normalize(c.Name)]; ok {
			out.Meta.Subcategories = append(out.Meta.Subcategories, Subcategory{
				Name:  c.Name,
				Image: c.Image,
				Link:  c.Link,
			})
		}
	}
	for _, p := range products {
		if _, ok := aliases[Normalize(p.Category)]; ok {
			out.Products = append(out.Products, p)
		}
	}
	return out
}

// belongsTo reports whether p is listed directly under the category.
// Name matching is kept for products that predate the categoryId field.
func belongsTo(p models.Product, categoryID, normalizedName string) bool {
	if p.CategoryID != "" && p.CategoryID == categoryID {
		return true
	}
	return Normalize(p.Category) == normalizedName
}

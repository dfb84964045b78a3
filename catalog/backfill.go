package catalog

import "github.com/princinho/rentalbackend/models"

// BackfillCategoryIDs links products without a categoryId, or with one that
// no longer exists, to the first category whose normalized name equals the
// product's category. Unresolvable stale ids are cleared. It returns the
// number of products linked.
func BackfillCategoryIDs(doc *models.Document) int {
	byName := make(map[string]string, len(doc.Categories))
	ids := make(map[string]struct{}, len(doc.Categories))
	for _, c := range doc.Categories {
		ids[c.ID] = struct{}{}
		key := Normalize(c.Name)
		if _, exists := byName[key]; !exists {
			byName[key] = c.ID
		}
	}

	n := 0
	for i := range doc.Products {
		p := &doc.Products[i]
		if p.CategoryID != "" {
			if _, ok := ids[p.CategoryID]; ok {
				continue
			}
			p.CategoryID = ""
		}
		if id, ok := byName[Normalize(p.Category)]; ok {
			p.CategoryID = id
			n++
		}
	}
	return n
}

// RecountCategories sets each category's count to the number of products
// listed directly under it.
func RecountCategories(doc *models.Document) {
	for i := range doc.Categories {
		c := &doc.Categories[i]
		name := Normalize(c.Name)
		count := 0
		for _, p := range doc.Products {
			if belongsTo(p, c.ID, name) {
				count++
			}
		}
		c.Count = count
	}
}

// RenameCategory applies a category rename to the products linked to it,
// either by categoryId or by the old name.
func RenameCategory(doc *models.Document, categoryID, oldName, newName string) int {
	old := Normalize(oldName)
	n := 0
	for i := range doc.Products {
		p := &doc.Products[i]
		if belongsTo(*p, categoryID, old) {
			p.Category = newName
			p.CategoryID = categoryID
			n++
		}
		if p.Subcategory != "" && Normalize(p.Subcategory) == old {
			p.Subcategory = newName
		}
	}
	return n
}

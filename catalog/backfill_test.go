package catalog

import (
	"testing"

	"github.com/princinho/rentalbackend/models"
	"github.com/stretchr/testify/assert"
)

func TestBackfillCategoryIDs(t *testing.T) {
	doc := &models.Document{
		Categories: []models.Category{
			{ID: "c1", Name: "Scherenbühnen"},
			{ID: "c2", Name: "scherenbuehnen"},
			{ID: "c3", Name: "Stapler"},
		},
		Products: []models.Product{
			{ID: "p1", Category: "Scherenbuehnen"},
			{ID: "p2", Category: "Stapler", CategoryID: "c1"},
			{ID: "p3", Category: "Unbekannt"},
			{ID: "p4", Category: "STAPLER"},
		},
	}

	n := BackfillCategoryIDs(doc)
	assert.Equal(t, 2, n)
	assert.Equal(t, "c1", doc.Products[0].CategoryID)
	assert.Equal(t, "c1", doc.Products[1].CategoryID, "existing reference is kept")
	assert.Empty(t, doc.Products[2].CategoryID)
	assert.Equal(t, "c3", doc.Products[3].CategoryID)

	assert.Zero(t, BackfillCategoryIDs(doc))
}

func TestBackfillCategoryIDs_StaleReference(t *testing.T) {
	doc := &models.Document{
		Categories: []models.Category{{ID: "new", Name: "Minibagger"}},
		Products: []models.Product{
			{ID: "p1", Category: "Minibagger", CategoryID: "deleted"},
			{ID: "p2", Category: "Walzen", CategoryID: "deleted"},
		},
	}

	assert.Equal(t, 1, BackfillCategoryIDs(doc))
	assert.Equal(t, "new", doc.Products[0].CategoryID)
	assert.Empty(t, doc.Products[1].CategoryID)
}

func TestRecountCategories(t *testing.T) {
	doc := &models.Document{
		Categories: []models.Category{
			{ID: "c1", Name: "Stapler", Count: 99},
			{ID: "c2", Name: "Bagger"},
		},
		Products: []models.Product{
			{Category: "Stapler"},
			{Category: "stapler"},
			{Category: "Alt", CategoryID: "c2"},
		},
	}
	RecountCategories(doc)
	assert.Equal(t, 2, doc.Categories[0].Count)
	assert.Equal(t, 1, doc.Categories[1].Count)
}

func TestRenameCategory(t *testing.T) {
	doc := &models.Document{
		Products: []models.Product{
			{ID: "p1", Category: "Hebebühnen"},
			{ID: "p2", Category: "Alt", CategoryID: "c1"},
			{ID: "p3", Category: "Arbeitsbühnen", Subcategory: "hebebuehnen"},
			{ID: "p4", Category: "Stapler"},
		},
	}
	n := RenameCategory(doc, "c1", "Hebebühnen", "Arbeitsbühnen Innen")
	assert.Equal(t, 2, n)
	assert.Equal(t, "Arbeitsbühnen Innen", doc.Products[0].Category)
	assert.Equal(t, "c1", doc.Products[0].CategoryID)
	assert.Equal(t, "Arbeitsbühnen Innen", doc.Products[1].Category)
	assert.Equal(t, "Arbeitsbühnen", doc.Products[2].Category)
	assert.Equal(t, "Arbeitsbühnen Innen", doc.Products[2].Subcategory)
	assert.Equal(t, "Stapler", doc.Products[3].Category)
}

package catalog

import (
	"encoding/json"
	"testing"

	"github.com/princinho/rentalbackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_VirtualAliasMembership(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Category: "Gabelstapler"},
		{ID: "p2", Category: "Minibagger"},
	}
	cats := []models.Category{
		{ID: "c1", Name: "Gabelstapler", Image: "/img/gabel.jpg"},
		{ID: "c2", Name: "Minibagger"},
	}

	listing, err := NewResolver(nil).Lookup("stapler", nil, products)
	require.NoError(t, err)
	require.Len(t, listing.Products, 1)
	assert.Equal(t, "p1", listing.Products[0].ID)
	assert.Equal(t, "Stapler mieten", listing.Meta.Title)
	assert.Empty(t, listing.Meta.Subcategories)

	// "gabelstapler" would resolve directly here, so force the group.
	r := NewResolver(nil)
	res := Resolution{Kind: KindVirtual, Group: r.Table().Group("stapler")}
	listing, err = r.Filter(res, cats, products)
	require.NoError(t, err)
	assert.Equal(t, []Subcategory{{Name: "Gabelstapler", Image: "/img/gabel.jpg"}}, listing.Meta.Subcategories)
}

func TestFilter_VirtualExactAliasOnly(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Category: "Stapler Zubehör"},
		{ID: "p2", Category: "STAPLER"},
	}
	listing, err := NewResolver(nil).Lookup("stapler", nil, products)
	require.NoError(t, err)
	require.Len(t, listing.Products, 1)
	assert.Equal(t, "p2", listing.Products[0].ID)
}

func TestFilter_DirectLegacySubcategories(t *testing.T) {
	cats := []models.Category{{ID: "c1", Name: "Arbeitsbühnen", Image: "/img/parent.jpg"}}
	products := []models.Product{
		{ID: "p1", Category: "Arbeitsbühnen", Subcategory: "Scherenbühnen"},
		{ID: "p2", Category: "arbeitsbuehnen", Subcategory: "Scherenbühnen", Image: "/img/schere.jpg"},
		{ID: "p3", Category: "Arbeitsbühnen", Subcategory: "Mastbühnen"},
		{ID: "p4", Category: "Arbeitsbühnen", Subcategory: "Teleskopbühnen", Image: "/img/tele.jpg"},
		{ID: "p5", Category: "Arbeitsbühnen"},
		{ID: "p6", Category: "Stapler", Subcategory: "Scherenbühnen", Image: "/img/other.jpg"},
	}

	listing, err := NewResolver(nil).Lookup("arbeitsbuehnen", cats, products)
	require.NoError(t, err)

	ids := make([]string, 0, len(listing.Products))
	for _, p := range listing.Products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids)
	assert.Equal(t, []Subcategory{
		{Name: "Scherenbühnen", Image: "/img/schere.jpg"},
		{Name: "Mastbühnen", Image: "/img/parent.jpg"},
		{Name: "Teleskopbühnen", Image: "/img/tele.jpg"},
	}, listing.Meta.Subcategories)
}

func TestFilter_DirectWithChildren(t *testing.T) {
	cats := []models.Category{
		{ID: "c1", Name: "Baumaschinen", Description: "Alles für die Baustelle"},
		{ID: "c2", Name: "Minibagger", ParentCategory: "c1", Image: "/img/mini.jpg"},
		{ID: "c3", Name: "Radlader", ParentCategory: "c1"},
		{ID: "c4", Name: "Stapler"},
	}
	products := []models.Product{
		{ID: "p1", Category: "Baumaschinen"},
		{ID: "p2", Category: "Minibagger"},
		{ID: "p3", Category: "Sonstiges", Subcategory: "radlader"},
		{ID: "p4", Category: "Stapler"},
		{ID: "p5", Category: "Umbenannt", CategoryID: "c3"},
	}

	listing, err := NewResolver(nil).Lookup("Baumaschinen", cats, products)
	require.NoError(t, err)

	ids := make([]string, 0, len(listing.Products))
	for _, p := range listing.Products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p1", "p2", "p3", "p5"}, ids)
	assert.Equal(t, "Alles für die Baustelle", listing.Meta.Description)
	assert.Equal(t, []Subcategory{
		{Name: "Minibagger", Image: "/img/mini.jpg"},
		{Name: "Radlader"},
	}, listing.Meta.Subcategories)
}

func TestFilter_DirectByCategoryID(t *testing.T) {
	cats := []models.Category{{ID: "c1", Name: "Teleskoplader neu"}}
	products := []models.Product{
		{ID: "p1", Category: "Teleskoplader", CategoryID: "c1"},
		{ID: "p2", Category: "Teleskoplader"},
	}
	listing, err := NewResolver(nil).Lookup("teleskoplader neu", cats, products)
	require.NoError(t, err)
	require.Len(t, listing.Products, 1)
	assert.Equal(t, "p1", listing.Products[0].ID)
}

func TestFilter_NotFound(t *testing.T) {
	_, err := NewResolver(nil).Lookup("xyz123", nil, nil)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestFilter_EmptySlicesNotNil(t *testing.T) {
	cats := []models.Category{{ID: "c1", Name: "Leer"}}
	listing, err := NewResolver(nil).Lookup("leer", cats, nil)
	require.NoError(t, err)

	raw, err := json.Marshal(listing)
	require.NoError(t, err)
	assert.JSONEq(t, `{"meta":{"title":"Leer","description":"","subcategories":[]},"products":[]}`, string(raw))
}

func TestLookup_Deterministic(t *testing.T) {
	cats := []models.Category{
		{ID: "c1", Name: "Arbeitsbühnen"},
		{ID: "c2", Name: "Scherenbühnen", ParentCategory: "c1"},
	}
	products := []models.Product{
		{ID: "p1", Category: "Scherenbühnen", Details: map[string]any{"height": "8m", "load": "230kg"}},
		{ID: "p2", Category: "Arbeitsbühnen", Subcategory: "Scherenbühnen"},
	}
	r := NewResolver(nil)

	first, err := r.Lookup("arbeitsbuehnen", cats, products)
	require.NoError(t, err)
	second, err := r.Lookup("arbeitsbuehnen", cats, products)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

package catalog

import (
	"testing"

	"github.com/princinho/rentalbackend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_DirectByName(t *testing.T) {
	cats := []models.Category{
		{ID: "c1", Name: "Scherenbühnen"},
		{ID: "c2", Name: "Minibagger"},
		{ID: "c3", Name: "Gelenkteleskopbühnen"},
	}
	r := NewResolver(nil)
	for i := range cats {
		res := r.Resolve(cats[i].Name, cats)
		require.Equal(t, KindDirect, res.Kind, cats[i].Name)
		assert.Equal(t, cats[i], *res.Category)
	}
}

func TestResolve_DirectByLinkSuffix(t *testing.T) {
	cats := []models.Category{
		{ID: "c1", Name: "Arbeitsbühnen", Link: "/mieten/arbeitsbuehnen"},
		{ID: "c2", Name: "Hebebühnen für Innen", Link: "/mieten/innenbuehnen"},
	}
	res := NewResolver(nil).Resolve("innenbuehnen", cats)
	require.Equal(t, KindDirect, res.Kind)
	assert.Equal(t, "c2", res.Category.ID)
}

func TestResolve_CaseAndDiacriticInsensitive(t *testing.T) {
	cats := []models.Category{{ID: "cat-1", Name: "Arbeitsbühnen", Link: "/mieten/arbeitsbuehnen"}}
	r := NewResolver(nil)

	a := r.Resolve("Arbeitsbühnen", cats)
	b := r.Resolve("arbeitsbuehnen", cats)
	c := r.Resolve("Arbeitsb%C3%BChnen", cats)
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.Equal(t, KindDirect, a.Kind)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	cats := []models.Category{
		{ID: "first", Name: "Stapler"},
		{ID: "second", Name: "STAPLER"},
	}
	res := NewResolver(nil).Resolve("stapler", cats)
	require.Equal(t, KindDirect, res.Kind)
	assert.Equal(t, "first", res.Category.ID)
}

func TestResolve_VirtualGroupKey(t *testing.T) {
	cats := []models.Category{{ID: "cat-1", Name: "Arbeitsbühnen", Link: "/mieten/arbeitsbuehnen"}}
	res := NewResolver(nil).Resolve("stapler", cats)
	require.Equal(t, KindVirtual, res.Kind)
	assert.Equal(t, "stapler", res.Group.Key)
}

func TestResolve_HeuristicRules(t *testing.T) {
	r := NewResolver(nil)
	cases := map[string]string{
		"hebebuehne":        "arbeitsbuehnen",
		"Raupenbühne":       "arbeitsbuehnen",
		"teleskopstapler":   "stapler",
		"ameise-hubwagen":   "stapler",
		"kettenbagger":      "baumaschinen",
		"radlader":          "baumaschinen",
		"baumaschinen-miet": "baumaschinen",
	}
	for slug, group := range cases {
		res := r.Resolve(slug, nil)
		require.Equal(t, KindVirtual, res.Kind, slug)
		assert.Equal(t, group, res.Group.Key, slug)
	}
}

func TestResolve_RuleOrder(t *testing.T) {
	// "buehne" is checked before "stapler".
	res := NewResolver(nil).Resolve("staplerbuehne", nil)
	require.Equal(t, KindVirtual, res.Kind)
	assert.Equal(t, "arbeitsbuehnen", res.Group.Key)
}

func TestResolve_RuleBeatsAliasOfOtherGroup(t *testing.T) {
	table := &GroupTable{
		Version: 2,
		Groups: []VirtualGroup{
			{Key: "hebetechnik", Title: "Hebetechnik", Aliases: []string{"Kettenzüge"}},
			{Key: "treppen", Title: "Treppen", Aliases: []string{"Treppenlift"}},
		},
		Rules: []Rule{{Group: "hebetechnik", Keywords: []string{"lift"}}},
	}
	require.NoError(t, table.Validate())
	r := NewResolver(table)

	res := r.Resolve("lift", nil)
	require.Equal(t, KindVirtual, res.Kind)
	assert.Equal(t, "hebetechnik", res.Group.Key)

	// Without a rule hit the alias of the other group is used.
	res = r.Resolve("treppe", nil)
	require.Equal(t, KindVirtual, res.Kind)
	assert.Equal(t, "treppen", res.Group.Key)
}

func TestResolve_AliasSubstring(t *testing.T) {
	res := NewResolver(nil).Resolve("dump", nil)
	require.Equal(t, KindVirtual, res.Kind)
	assert.Equal(t, "baumaschinen", res.Group.Key)
}

func TestResolve_NotFound(t *testing.T) {
	cats := []models.Category{{ID: "cat-1", Name: "Arbeitsbühnen", Link: "/mieten/arbeitsbuehnen"}}
	r := NewResolver(nil)
	assert.Equal(t, KindNotFound, r.Resolve("xyz123", cats).Kind)
	assert.Equal(t, KindNotFound, r.Resolve("", cats).Kind)
}

func TestResolve_DirectShadowsVirtual(t *testing.T) {
	cats := []models.Category{
		{ID: "c1", Name: "Arbeitsbühnen"},
		{ID: "c2", Name: "Scherenbühnen", ParentCategory: "c1", Image: "/img/schere.jpg", Link: "/category/scherenbuehnen"},
	}
	products := []models.Product{
		{ID: "p1", Name: "Genie GS-1932", Category: "Scherenbühnen"},
		{ID: "p2", Name: "Linde H30", Category: "Gabelstapler"},
	}

	listing, err := NewResolver(nil).Lookup("arbeitsbuehnen", cats, products)
	require.NoError(t, err)

	assert.Equal(t, "Arbeitsbühnen", listing.Meta.Title)
	assert.Equal(t, []Subcategory{{Name: "Scherenbühnen", Image: "/img/schere.jpg", Link: "/category/scherenbuehnen"}}, listing.Meta.Subcategories)
	require.Len(t, listing.Products, 1)
	assert.Equal(t, "p1", listing.Products[0].ID)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "direct", KindDirect.String())
	assert.Equal(t, "virtual", KindVirtual.String())
	assert.Equal(t, "not_found", KindNotFound.String())
}

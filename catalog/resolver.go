package catalog

import (
	"errors"
	"net/url"
	"strings"

	"github.com/princinho/rentalbackend/models"
)

var ErrCategoryNotFound = errors.New("category not found")

type Kind int

const (
	KindNotFound Kind = iota
	KindDirect
	KindVirtual
)

func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindVirtual:
		return "virtual"
	default:
		return "not_found"
	}
}

// Resolution is the outcome of Resolve. Category is set for KindDirect,
// Group for KindVirtual.
type Resolution struct {
	Kind     Kind
	Slug     string
	Category *models.Category
	Group    *VirtualGroup
}

type Resolver struct {
	table *GroupTable
}

func NewResolver(table *GroupTable) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	return &Resolver{table: table}
}

func (r *Resolver) Table() *GroupTable {
	return r.table
}

// Resolve maps a raw URL slug to a stored category or a virtual group.
// Stored categories always win over virtual groups, so an admin can shadow
// a group by creating a category with the same name. When several
// categories normalize to the same key the first one in store order wins.
func (r *Resolver) Resolve(rawSlug string, categories []models.Category) Resolution {
	decoded, err := url.PathUnescape(rawSlug)
	if err != nil {
		decoded = rawSlug
	}
	slug := Normalize(decoded)
	if slug == "" {
		return Resolution{Kind: KindNotFound}
	}

	for i := range categories {
		c := &categories[i]
		if Normalize(c.Name) == slug || (c.Link != "" && strings.HasSuffix(Normalize(c.Link), slug)) {
			cat := *c
			return Resolution{Kind: KindDirect, Slug: slug, Category: &cat}
		}
	}

	if g := r.table.Group(slug); g != nil {
		return Resolution{Kind: KindVirtual, Slug: slug, Group: g}
	}

	for _, rule := range r.table.Rules {
		if rule.Matches(slug) {
			if g := r.table.Group(rule.Group); g != nil {
				return Resolution{Kind: KindVirtual, Slug: slug, Group: g}
			}
		}
	}

	for i := range r.table.Groups {
		g := &r.table.Groups[i]
		for _, alias := range g.Aliases {
			if strings.Contains(Normalize(alias), slug) {
				return Resolution{Kind: KindVirtual, Slug: slug, Group: g}
			}
		}
	}

	return Resolution{Kind: KindNotFound, Slug: slug}
}

// Lookup resolves rawSlug and filters products for the result.
func (r *Resolver) Lookup(rawSlug string, categories []models.Category, products []models.Product) (*Listing, error) {
	return r.Filter(r.Resolve(rawSlug, categories), categories, products)
}

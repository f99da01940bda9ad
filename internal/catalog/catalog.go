// internal/catalog/catalog.go
package catalog

import (
	"iter"

	"github.com/beevik/etree"

	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/rules"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

/*
 * Aggregate store for parsed OTDS documents.
 *
 * A Catalog accumulates the records of every document parsed into it. The
 * root element's UpdateMode decides whether a document may start from
 * existing content:
 *
 *   New     the whole catalog must be empty
 *   Merge   sections are added to what is already there
 *   Delete  unsupported
 *
 * Each top-level section repeats the check against its own collections. A
 * section in New mode requires them to be empty; in Merge mode it may only
 * add keys that are not yet present. Records are inserted as soon as they
 * are built, so a failure leaves the records parsed before it in place.
 *
 * A Catalog is not safe for concurrent use. Callers serialize Parse and
 * must not read views while a Parse is running.
 */

// Catalog holds every record parsed so far, by collection.
type Catalog struct {
	dialect *markup.Dialect

	accommodations types.Ordered[types.Key, rules.Accommodation]
	priceItems     rules.PriceItems
	brands         types.Ordered[types.Key, rules.Brand]
	flights        types.Ordered[types.Key, rules.OnewayFlight]
	defined        types.Ordered[types.Key, rules.DefinedComponent]
	products       types.Ordered[types.Key, rules.Product]
	globals        rules.Globals
}

// New returns an empty catalog reading documents of dialect d.
func New(d *markup.Dialect) *Catalog {
	return &Catalog{dialect: d}
}

// Dialect returns the dialect documents are read with.
func (c *Catalog) Dialect() *markup.Dialect { return c.dialect }

// Empty reports whether no record has been added yet.
func (c *Catalog) Empty() bool {
	return c.Stats().Total() == 0
}

// Parse adds the content of doc to the catalog.
func (c *Catalog) Parse(doc *etree.Document) error {
	root, err := markup.Root(doc, c.dialect)
	if err != nil {
		return err
	}
	mode, err := root.UpdateMode()
	if err != nil {
		return err
	}
	switch mode {
	case vocab.UpdateNew:
		if !c.Empty() {
			return root.Fail(types.ErrOverwriteConflict, "document in New mode would overwrite existing content")
		}
	case vocab.UpdateDelete:
		return root.Fail(types.ErrUnsupportedFeature, "update mode %s is not supported", mode)
	}

	kids, err := root.Children()
	if err != nil {
		return err
	}
	for _, k := range kids {
		switch k.Name() {
		case "Brands":
			err = c.parseBrands(k)
		case "DefinedComponents":
			err = c.parseDefinedComponents(k)
		case "Flights":
			err = c.parseFlights(k)
		case "Accommodations":
			err = c.parseAccommodations(k)
		case "Products":
			err = c.parseProducts(k)
		default:
			return k.Unsupported()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Accommodations returns the accommodations by key.
func (c *Catalog) Accommodations() View[rules.Accommodation] {
	return View[rules.Accommodation]{&c.accommodations}
}

// AccommodationPriceItems returns the PriceItems blocks declared directly
// under Accommodations.
func (c *Catalog) AccommodationPriceItems() View[rules.PriceClasses] {
	return View[rules.PriceClasses]{&c.priceItems}
}

// Brands returns the brands by key.
func (c *Catalog) Brands() View[rules.Brand] {
	return View[rules.Brand]{&c.brands}
}

// Flights returns the one-way flights by key.
func (c *Catalog) Flights() View[rules.OnewayFlight] {
	return View[rules.OnewayFlight]{&c.flights}
}

// DefinedComponents returns the defined components by key.
func (c *Catalog) DefinedComponents() View[rules.DefinedComponent] {
	return View[rules.DefinedComponent]{&c.defined}
}

// Products returns the products by key.
func (c *Catalog) Products() View[rules.Product] {
	return View[rules.Product]{&c.products}
}

// Globals returns the global values by key.
func (c *Catalog) Globals() View[rules.GlobalValue] {
	return View[rules.GlobalValue]{&c.globals}
}

// View is a read-only window on one collection. It is live: records added
// by a later Parse show up in every accessor. Records are returned by value;
// writing to an Ordered field of a returned record detaches that copy and
// leaves the catalog unchanged.
type View[V any] struct {
	o *types.Ordered[types.Key, V]
}

func (v View[V]) Get(k types.Key) (V, bool) { return v.o.Get(k) }
func (v View[V]) Has(k types.Key) bool      { return v.o.Has(k) }
func (v View[V]) Keys() []types.Key         { return v.o.Keys() }
func (v View[V]) Len() int                  { return v.o.Len() }

// All iterates the records in document order.
func (v View[V]) All() iter.Seq2[types.Key, V] { return v.o.All() }

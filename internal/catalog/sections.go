package catalog

import (
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/rules"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

// sectionMode checks a section's UpdateMode against the emptiness of the
// collections it writes to.
func sectionMode(e markup.Element, empty bool) error {
	mode, err := e.UpdateMode()
	if err != nil {
		return err
	}
	switch mode {
	case vocab.UpdateNew:
		if !empty {
			return e.Fail(types.ErrOverwriteConflict, "%s in New mode would overwrite existing records", e.Name())
		}
	case vocab.UpdateDelete:
		return e.Fail(types.ErrUnsupportedFeature, "update mode %s is not supported", mode)
	}
	return nil
}

// section checks e's mode and hands each child to parse.
func section(e markup.Element, empty bool, parse func(markup.Element) error) error {
	if err := sectionMode(e, empty); err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	for _, k := range kids {
		if err := parse(k); err != nil {
			return err
		}
	}
	return nil
}

// record returns a child parser for one entity type. Elements with any other
// name are unsupported.
func record[V any](name string, into *types.Ordered[types.Key, V], parse func(markup.Element) (types.Key, V, error)) func(markup.Element) error {
	return func(e markup.Element) error {
		if e.Name() != name {
			return e.Unsupported()
		}
		key, v, err := parse(e)
		if err != nil {
			return err
		}
		return markup.Insert(e, into, key, v)
	}
}

func (c *Catalog) parseBrands(e markup.Element) error {
	return section(e, c.brands.Len() == 0,
		record("Brand", &c.brands, rules.ParseBrand))
}

func (c *Catalog) parseDefinedComponents(e markup.Element) error {
	return section(e, c.defined.Len() == 0,
		record("DefineComponent", &c.defined, rules.ParseDefinedComponent))
}

func (c *Catalog) parseFlights(e markup.Element) error {
	oneway := record("OnewayFlight", &c.flights, rules.ParseOnewayFlight)
	return section(e, c.flights.Len() == 0, func(k markup.Element) error {
		if k.Name() != "OnewayFlights" {
			return k.Unsupported()
		}
		return section(k, c.flights.Len() == 0, oneway)
	})
}

func (c *Catalog) parseAccommodations(e markup.Element) error {
	accommodation := record("Accommodation", &c.accommodations, rules.ParseAccommodation)
	empty := c.accommodations.Len() == 0 && c.priceItems.Len() == 0
	return section(e, empty, func(k markup.Element) error {
		if k.Name() == "PriceItems" {
			return rules.ParsePriceItems(k, &c.priceItems)
		}
		return accommodation(k)
	})
}

func (c *Catalog) parseProducts(e markup.Element) error {
	product := record("Product", &c.products, rules.ParseProduct)
	empty := c.products.Len() == 0 && c.globals.Len() == 0
	return section(e, empty, func(k markup.Element) error {
		if k.Name() == "GlobalValues" {
			return rules.ParseGlobalValues(k, &c.globals)
		}
		return product(k)
	})
}

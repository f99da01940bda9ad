package catalog

// Stats counts the records of each collection.
type Stats struct {
	Accommodations    int `yaml:"accommodations"`
	PriceItems        int `yaml:"price_items"`
	Brands            int `yaml:"brands"`
	Flights           int `yaml:"flights"`
	DefinedComponents int `yaml:"defined_components"`
	Products          int `yaml:"products"`
	Globals           int `yaml:"globals"`
}

// Stats returns the current record counts.
func (c *Catalog) Stats() Stats {
	return Stats{
		Accommodations:    c.accommodations.Len(),
		PriceItems:        c.priceItems.Len(),
		Brands:            c.brands.Len(),
		Flights:           c.flights.Len(),
		DefinedComponents: c.defined.Len(),
		Products:          c.products.Len(),
		Globals:           c.globals.Len(),
	}
}

// Total returns the number of records across all collections.
func (s Stats) Total() int {
	return s.Accommodations + s.PriceItems + s.Brands + s.Flights + s.DefinedComponents + s.Products + s.Globals
}

// Sub returns the per-collection difference s - o.
func (s Stats) Sub(o Stats) Stats {
	return Stats{
		Accommodations:    s.Accommodations - o.Accommodations,
		PriceItems:        s.PriceItems - o.PriceItems,
		Brands:            s.Brands - o.Brands,
		Flights:           s.Flights - o.Flights,
		DefinedComponents: s.DefinedComponents - o.DefinedComponents,
		Products:          s.Products - o.Products,
		Globals:           s.Globals - o.Globals,
	}
}

// Collections returns the counts keyed by collection name, in a fixed order,
// for logging and metrics labels.
func (s Stats) Collections() []Count {
	return []Count{
		{"accommodations", s.Accommodations},
		{"price_items", s.PriceItems},
		{"brands", s.Brands},
		{"flights", s.Flights},
		{"defined_components", s.DefinedComponents},
		{"products", s.Products},
		{"globals", s.Globals},
	}
}

// Count is the size of one named collection.
type Count struct {
	Collection string
	Records    int
}

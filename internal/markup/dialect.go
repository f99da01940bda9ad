// Package markup wraps a parsed OTDS document for the rule parsers.
//
// An Element carries its document path and the Dialect it belongs to, so
// every failure raised through it is located, and lookup tables travel with
// the tree instead of living in package state.
package markup

import (
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

// Namespace is the XML namespace of OTDS documents.
const Namespace = "http://otds-group.org/otds"

// RootTag is the local name of the document element.
const RootTag = "OTDS"

// Dialect holds the namespace and lookup tables of one grammar version.
// Build it once with NewDialect and share it read-only.
type Dialect struct {
	Namespace string

	componentNames map[vocab.ProductType]types.Name
	roleProducts   map[vocab.Role]vocab.ProductType
}

// NewDialect returns the dialect for the current OTDS namespace.
func NewDialect() *Dialect {
	names := map[vocab.ProductType]types.Name{
		vocab.ProductAccommodationOnly:   "Accommodation",
		vocab.ProductOnewayFlightOnly:    "OnewayFlight",
		vocab.ProductReturnFlightOnly:    "ReturnFlight",
		vocab.ProductFlightAccommodation: "CombiComponent",
		vocab.ProductAddon:               "Addon",
	}
	// Roles whose name doubles as a default component name resolve back to
	// the product type that produces that name.
	roles := make(map[vocab.Role]vocab.ProductType, len(names))
	for pt, name := range names {
		if role, err := vocab.ParseRole(string(name)); err == nil {
			roles[role] = pt
		}
	}
	return &Dialect{
		Namespace:      Namespace,
		componentNames: names,
		roleProducts:   roles,
	}
}

// ComponentName returns the default component name for a product type.
func (d *Dialect) ComponentName(pt vocab.ProductType) (types.Name, bool) {
	n, ok := d.componentNames[pt]
	return n, ok
}

// ProductTypeForRole returns the product type whose default component name
// equals the role.
func (d *Dialect) ProductTypeForRole(r vocab.Role) (vocab.ProductType, bool) {
	pt, ok := d.roleProducts[r]
	return pt, ok
}

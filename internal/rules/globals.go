package rules

import (
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
	"github.com/solatis/otds/internal/vocab"
)

// ParameterKind identifies the targeting dimension of a ParameterSet.
type ParameterKind int

const (
	ParamDistributionChannel ParameterKind = iota
	ParamSalesChannel
	ParamSalesMarket
	ParamDistributorIdentification
)

var parameterKindNames = [...]string{
	ParamDistributionChannel:       "DistributionChannel",
	ParamSalesChannel:              "SalesChannel",
	ParamSalesMarket:               "SalesMarket",
	ParamDistributorIdentification: "DistributorIdentificationGroup",
}

func (k ParameterKind) String() string {
	if int(k) < len(parameterKindNames) {
		return parameterKindNames[k]
	}
	return "Unknown"
}

// ParameterSet scopes a global value to one targeting dimension. Only the
// fields of Kind are set; a distributor is identified by Crs, AgencyCode and
// BrandCode together.
type ParameterSet struct {
	Kind                ParameterKind
	DistributionChannel vocab.DistributionChannel
	SalesChannel        vocab.SalesChannel
	SalesMarket         string
	Crs                 vocab.CrsSystem
	AgencyCode          string
	BrandCode           string
}

// GlobalValue is a set of parameter sets by key.
type GlobalValue struct {
	Params types.Ordered[types.Key, ParameterSet]
}

// Globals holds global values by key.
type Globals = types.Ordered[types.Key, GlobalValue]

// ParseGlobalValues reads a GlobalValues block, which must hold at least one
// GlobalValue.
func ParseGlobalValues(e markup.Element, into *Globals) error {
	if err := e.RequireNew(); err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	if len(kids) == 0 {
		return e.Fail(types.ErrSchemaViolation, "GlobalValues must not be empty")
	}
	for _, k := range kids {
		if k.Name() != "GlobalValue" {
			return k.Unsupported()
		}
		if err := parseGlobalValue(k, into); err != nil {
			return err
		}
	}
	return nil
}

func parseGlobalValue(e markup.Element, into *Globals) error {
	if err := e.RequireNew(); err != nil {
		return err
	}
	key, err := e.Key()
	if err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	var v GlobalValue
	for _, k := range kids {
		if k.Name() != "ParameterSet" {
			return k.Unsupported()
		}
		if err := parseParameterSet(k, &v.Params); err != nil {
			return err
		}
	}
	if v.Params.Len() == 0 {
		return e.Fail(types.ErrSchemaViolation, "GlobalValue requires a ParameterSet")
	}
	return markup.Insert(e, into, key, v)
}

func parseParameterSet(e markup.Element, into *types.Ordered[types.Key, ParameterSet]) error {
	if err := e.RequireNew(); err != nil {
		return err
	}
	key, err := e.Key()
	if err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	var (
		p     ParameterSet
		kinds int
		dist  int
		seen  = once{}
	)
	for _, k := range kids {
		if err := seen.check(k); err != nil {
			return err
		}
		switch k.Name() {
		case "DistributionChannel":
			kinds++
			p.Kind = ParamDistributionChannel
			p.DistributionChannel, err = markup.EnumText(k, vocab.ParseDistributionChannel)
		case "SalesChannel":
			kinds++
			p.Kind = ParamSalesChannel
			p.SalesChannel, err = markup.EnumText(k, vocab.ParseSalesChannel)
		case "SalesMarket":
			kinds++
			p.Kind = ParamSalesMarket
			p.SalesMarket, err = k.RequireText()
		case "CrsSystem":
			dist++
			p.Crs, err = markup.EnumText(k, vocab.ParseCrsSystem)
		case "AgencyCode":
			dist++
			p.AgencyCode, err = k.RequireText()
		case "BrandCode":
			dist++
			p.BrandCode, err = k.RequireText()
		default:
			return k.Unsupported()
		}
		if err != nil {
			return err
		}
	}
	switch {
	case dist == 3:
		kinds++
		p.Kind = ParamDistributorIdentification
	case dist != 0:
		return e.Fail(types.ErrSchemaViolation, "distributor identification requires CrsSystem, AgencyCode and BrandCode")
	}
	if kinds != 1 {
		return e.Fail(types.ErrSchemaViolation, "ParameterSet must define exactly one parameter, found %d", kinds)
	}
	return markup.Insert(e, into, key, p)
}

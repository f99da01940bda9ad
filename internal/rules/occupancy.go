package rules

import (
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
)

// Person bounds the travellers admitted by an occupancy rule.
type Person struct {
	Count    *int
	MinAge   *int
	MaxAge   *int
	MinCount *int
	MaxCount *int
}

// OccupancyRule is either an admitted Person or an Exclude list.
type OccupancyRule struct {
	Person  *Person
	Exclude []Person
}

// Occupancy holds Occupancy blocks by key.
type Occupancy = types.Ordered[types.Key, []OccupancyRule]

// ParseOccupancy reads a keyed Occupancy block.
func ParseOccupancy(e markup.Element, into *Occupancy) error {
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
	var rules []OccupancyRule
	for _, k := range kids {
		switch k.Name() {
		case "Person":
			if err := k.Forbid("MatchAvailability"); err != nil {
				return err
			}
			p, err := parsePerson(k)
			if err != nil {
				return err
			}
			rules = append(rules, OccupancyRule{Person: &p})
		case "Exclude":
			ex, err := parseExclude(k)
			if err != nil {
				return err
			}
			rules = append(rules, OccupancyRule{Exclude: ex})
		default:
			return k.Unsupported()
		}
	}
	return markup.Insert(e, into, key, rules)
}

func parseExclude(e markup.Element) ([]Person, error) {
	kids, err := e.Children()
	if err != nil {
		return nil, err
	}
	out := make([]Person, 0, len(kids))
	for _, k := range kids {
		if k.Name() != "Person" {
			return nil, k.Unsupported()
		}
		p, err := parsePerson(k)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func parsePerson(e markup.Element) (Person, error) {
	var p Person
	kids, err := e.Children()
	if err != nil {
		return p, err
	}
	seen := once{}
	for _, k := range kids {
		if err := seen.check(k); err != nil {
			return p, err
		}
		var field **int
		switch k.Name() {
		case "Count":
			field = &p.Count
		case "MinAge":
			field = &p.MinAge
		case "MaxAge":
			field = &p.MaxAge
		case "MinCount":
			field = &p.MinCount
		case "MaxCount":
			field = &p.MaxCount
		default:
			return p, k.Unsupported()
		}
		n, err := k.IntText()
		if err != nil {
			return p, err
		}
		*field = &n
	}
	return p, nil
}

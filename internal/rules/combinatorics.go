package rules

import (
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
)

// LayerKey addresses a Combinatorics entry of a price item.
type LayerKey struct {
	Name  types.Identifier
	Level int
}

// CombinationCode assigns a price item a code within a group.
type CombinationCode struct {
	Group types.Identifier
	Value types.Identifier
}

// CombinationIndex assigns a price item an ordinal within a group.
type CombinationIndex struct {
	Group types.Identifier
	Value int
}

// Combinatorics describes how a price item combines with others on one layer.
type Combinatorics struct {
	Code  *CombinationCode
	Index *CombinationIndex
	Level *int
	When  *Combinable
}

// CombinableKind identifies a node of a CombinableWhen tree.
type CombinableKind int

const (
	CombinableCode CombinableKind = iota
	CombinableIndexMin
	CombinableAnd
	CombinableOr
	CombinableNot
)

// Combinable is a node of a CombinableWhen predicate. Code and IndexMin are
// leaves matching Group; And, Or and Not hold Children.
type Combinable struct {
	Kind     CombinableKind
	Group    types.Identifier
	Code     types.Identifier
	IndexMin int
	Children []Combinable
}

var combinableConnectives = map[string]CombinableKind{
	"And": CombinableAnd,
	"Or":  CombinableOr,
	"Not": CombinableNot,
}

func parseCombinatorics(e markup.Element, into *types.Ordered[LayerKey, Combinatorics]) error {
	name, err := types.ParseIdentifier(e.AttrOr("LayerName", string(types.DefaultIdentifier)))
	if err != nil {
		return e.Locate(err)
	}
	level, err := e.IntAttr("LayerLevel", 0)
	if err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	var c Combinatorics
	seen := once{}
	for _, k := range kids {
		if err := seen.check(k); err != nil {
			return err
		}
		switch k.Name() {
		case "CombinationCode":
			group, code, err := groupedCode(k)
			if err != nil {
				return err
			}
			c.Code = &CombinationCode{Group: group, Value: code}
		case "CombinationIndex":
			group, err := combinationGroup(k)
			if err != nil {
				return err
			}
			n, err := k.IntText()
			if err != nil {
				return err
			}
			c.Index = &CombinationIndex{Group: group, Value: n}
		case "CombinationLevel":
			n, err := k.IntText()
			if err != nil {
				return err
			}
			c.Level = &n
		case "CombinableWhen":
			root, err := markup.Single(k)
			if err != nil {
				return err
			}
			w, err := parseCombinable(root)
			if err != nil {
				return err
			}
			c.When = &w
		default:
			return k.Unsupported()
		}
	}
	return markup.Insert(e, into, LayerKey{Name: name, Level: level}, c)
}

func combinationGroup(e markup.Element) (types.Identifier, error) {
	g, err := types.ParseIdentifier(e.AttrOr("Group", string(types.DefaultIdentifier)))
	return g, e.Locate(err)
}

func groupedCode(e markup.Element) (types.Identifier, types.Identifier, error) {
	group, err := combinationGroup(e)
	if err != nil {
		return "", "", err
	}
	s, err := e.RequireText()
	if err != nil {
		return "", "", err
	}
	code, err := types.ParseIdentifier(s)
	if err != nil {
		return "", "", e.Locate(err)
	}
	return group, code, nil
}

func parseCombinable(e markup.Element) (Combinable, error) {
	switch e.Name() {
	case "CombinationCode":
		if err := e.Forbid("Component", "Source"); err != nil {
			return Combinable{}, err
		}
		group, code, err := groupedCode(e)
		if err != nil {
			return Combinable{}, err
		}
		return Combinable{Kind: CombinableCode, Group: group, Code: code}, nil
	case "CombinationIndexMin":
		if err := e.Forbid("Component", "Source"); err != nil {
			return Combinable{}, err
		}
		group, err := combinationGroup(e)
		if err != nil {
			return Combinable{}, err
		}
		n, err := e.IntText()
		if err != nil {
			return Combinable{}, err
		}
		return Combinable{Kind: CombinableIndexMin, Group: group, IndexMin: n}, nil
	case "And", "Or", "Not":
		kids, err := e.Children()
		if err != nil {
			return Combinable{}, err
		}
		if len(kids) == 0 {
			return Combinable{}, e.Fail(types.ErrSchemaViolation, "%s must not be empty", e.Name())
		}
		node := Combinable{Kind: combinableConnectives[e.Name()]}
		for _, k := range kids {
			c, err := parseCombinable(k)
			if err != nil {
				return Combinable{}, err
			}
			node.Children = append(node.Children, c)
		}
		return node, nil
	default:
		return Combinable{}, e.Unsupported()
	}
}

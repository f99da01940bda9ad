package rules

import (
	"github.com/solatis/otds/internal/condition"
	"github.com/solatis/otds/internal/markup"
	"github.com/solatis/otds/internal/types"
)

// TagValue is the value of one tag class. Condition is nil for an
// unconditional Tag.
type TagValue struct {
	Value     string
	Condition condition.Condition
}

// Tags maps tag classes to values in document order.
type Tags = types.Ordered[types.Token, TagValue]

// TagSets holds the Tags blocks of one element by key.
type TagSets = types.Ordered[types.Key, Tags]

// Filters holds Filter conditions by key.
type Filters = types.Ordered[types.Key, condition.Condition]

// ParseTags reads a Tags block into sets. A block without Key is stored
// under types.DefaultKey; within a block a later Tag of the same class
// replaces an earlier one.
func ParseTags(e markup.Element, sets *TagSets) error {
	if err := e.RequireNew(); err != nil {
		return err
	}
	key, err := e.KeyOr(types.DefaultKey)
	if err != nil {
		return err
	}
	kids, err := e.Children()
	if err != nil {
		return err
	}
	var tags Tags
	for _, k := range kids {
		var (
			class types.Token
			value TagValue
		)
		switch k.Name() {
		case "Tag":
			class, value.Value, err = parseTag(k)
		case "ConditionalTag":
			class, value, err = parseConditionalTag(k)
		default:
			return k.Unsupported()
		}
		if err != nil {
			return err
		}
		tags.Set(class, value)
	}
	return markup.Insert(e, sets, key, tags)
}

func parseTag(e markup.Element) (types.Token, string, error) {
	if err := e.Expect("TagValueType", "String"); err != nil {
		return "", "", err
	}
	class, err := e.Class()
	if err != nil {
		return "", "", err
	}
	// Tag values feed booking strings and are kept verbatim.
	v := e.Text()
	if v == "" {
		return "", "", e.Fail(types.ErrSchemaViolation, "empty tag value")
	}
	return class, v, nil
}

func parseConditionalTag(e markup.Element) (types.Token, TagValue, error) {
	kids, err := e.Children()
	if err != nil {
		return "", TagValue{}, err
	}
	var (
		class types.Token
		value TagValue
		seen  = once{}
	)
	for _, k := range kids {
		if err := seen.check(k); err != nil {
			return "", TagValue{}, err
		}
		switch k.Name() {
		case "Tag":
			class, value.Value, err = parseTag(k)
		case "Condition":
			value.Condition, err = condition.ParseSingle(k)
		default:
			return "", TagValue{}, k.Unsupported()
		}
		if err != nil {
			return "", TagValue{}, err
		}
	}
	if !seen["Tag"] || !seen["Condition"] {
		return "", TagValue{}, e.Fail(types.ErrSchemaViolation, "ConditionalTag requires a Tag and a Condition")
	}
	return class, value, nil
}

// ParseFilter reads a Filter element holding exactly one condition.
// A Filter without Key is stored under types.DefaultKey.
func ParseFilter(e markup.Element, filters *Filters) error {
	if err := e.RequireNew(); err != nil {
		return err
	}
	key, err := e.KeyOr(types.DefaultKey)
	if err != nil {
		return err
	}
	c, err := condition.ParseSingle(e)
	if err != nil {
		return err
	}
	return markup.Insert(e, filters, key, c)
}

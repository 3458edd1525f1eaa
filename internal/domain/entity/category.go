package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the closed set of issue kinds a report can be filed under.
type Category string

const (
	CategoryRoadways   Category = "roadways"
	CategoryUtility    Category = "utility"
	CategoryAnimal     Category = "animal"
	CategorySanitation Category = "sanitation"
	CategoryOther      Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryRoadways,
	CategoryUtility,
	CategoryAnimal,
	CategorySanitation,
	CategoryOther,
}

// ParseCategory maps a wire value onto a Category. Matching ignores case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryRoadways, CategoryUtility, CategoryAnimal, CategorySanitation, CategoryOther:
		return true
	}
	return false
}

// Label is the human-readable name shown in the report form and feed.
func (c Category) Label() string {
	switch c {
	case CategoryRoadways:
		return "Roadways"
	case CategoryUtility:
		return "Utility/Power"
	case CategoryAnimal:
		return "Animal Control"
	case CategorySanitation:
		return "Sanitation"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

func (c Category) String() string { return string(c) }

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	// Stored records predate strict validation; keep the raw value and let
	// callers decide with Valid().
	*c = Category(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

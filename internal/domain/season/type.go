package season

import (
	"strings"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
)

// Type is a competition phase spelled the way the stats provider expects.
// The provider is case-sensitive.
type Type string

const (
	RegularSeason Type = "Regular Season"
	Playoffs      Type = "Playoffs"
	PreSeason     Type = "Pre Season"
	AllStar       Type = "All Star"
)

// Types lists the accepted season types.
var Types = []Type{RegularSeason, Playoffs, PreSeason, AllStar}

var typeAliases = map[string]Type{
	"regular season": RegularSeason,
	"regular":        RegularSeason,
	"playoffs":       Playoffs,
	"playoff":        Playoffs,
	"preseason":      PreSeason,
	"pre season":     PreSeason,
	"pre-season":     PreSeason,
	"all star":       AllStar,
	"all-star":       AllStar,
	"allstar":        AllStar,
}

// ParseType normalizes user input (any case, any inner spacing) to a provider season type.
func ParseType(value string) (Type, error) {
	key := strings.ToLower(strings.Join(strings.Fields(value), " "))
	if t, ok := typeAliases[key]; ok {
		return t, nil
	}
	return "", &domain.ValidationError{
		Field:  "season_type",
		Value:  value,
		Reason: "expected one of Regular Season, Playoffs, Preseason, All Star",
	}
}

func (t Type) String() string { return string(t) }

// Slug returns a lowercase, filesystem-safe form, e.g. "regular-season".
func (t Type) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(t)), " ", "-")
}

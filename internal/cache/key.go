package cache

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
)

// Kind names a family of cached tables. Each kind lives in its own directory.
type Kind string

const (
	KindTeamShotSet     Kind = "team_shotset"
	KindLeagueBaseline  Kind = "league_baseline"
	KindOpponentShotSet Kind = "opponent_shotset"
)

// Kinds lists every cache kind in a stable order.
var Kinds = []Kind{KindTeamShotSet, KindLeagueBaseline, KindOpponentShotSet}

// Dir is the directory (or key namespace) holding tables of this kind.
func (k Kind) Dir() string {
	switch k {
	case KindTeamShotSet:
		return "team_shotsets"
	case KindLeagueBaseline:
		return "league_baselines"
	case KindOpponentShotSet:
		return "opponent_shotsets"
	default:
		return ""
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k.Dir() != "" }

// ParseKind accepts a kind name or its directory name.
func ParseKind(raw string) (Kind, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, k := range Kinds {
		if raw == string(k) || raw == k.Dir() {
			return k, nil
		}
	}
	return "", &domain.ValidationError{Field: "kind", Value: raw, Reason: "unknown cache kind"}
}

// Key identifies one cached table. Scope is the team or opponent the table
// belongs to, including its player selection; it is empty for league baselines.
// A key carries no expiry.
type Key struct {
	Kind       Kind
	Scope      string
	Season     string
	SeasonType string
}

// TeamShotSetKey keys a team's filtered shot set. top is the player selection
// the set was filtered to (-1 for every player).
func TeamShotSetKey(team string, top int, season, seasonType string) Key {
	scope := slug(team)
	if top < 0 {
		scope += "_all"
	} else {
		scope += fmt.Sprintf("_top%d", top)
	}
	return Key{Kind: KindTeamShotSet, Scope: scope, Season: season, SeasonType: seasonType}
}

// LeagueBaselineKey keys the league-wide zone table for a season.
func LeagueBaselineKey(season string) Key {
	return Key{Kind: KindLeagueBaseline, Season: season}
}

// OpponentShotSetKey keys an opponent's full-roster shot set.
func OpponentShotSetKey(opponent, season, seasonType string) Key {
	return Key{Kind: KindOpponentShotSet, Scope: slug(opponent), Season: season, SeasonType: seasonType}
}

// Name is the key's file stem, unique within its kind.
func (k Key) Name() string {
	switch k.Kind {
	case KindLeagueBaseline:
		return "league_avg_" + k.Season
	case KindOpponentShotSet:
		return fmt.Sprintf("opponent_shots_%s_%s_%s", k.Scope, k.Season, slug(k.SeasonType))
	default:
		return fmt.Sprintf("team_shots_%s_%s_%s", k.Scope, k.Season, slug(k.SeasonType))
	}
}

// String is a deterministic identifier used for logging, Redis keys and request collapsing.
func (k Key) String() string {
	return string(k.Kind) + "/" + k.Name()
}

// Path is the key's file location relative to a cache root.
func (k Key) Path() string {
	return filepath.Join(k.Kind.Dir(), k.Name()+".parquet")
}

// Validate rejects keys that would produce ambiguous or empty names.
func (k Key) Validate() error {
	if !k.Kind.Valid() {
		return &domain.ValidationError{Field: "kind", Value: string(k.Kind), Reason: "unknown cache kind"}
	}
	if k.Season == "" {
		return &domain.ValidationError{Field: "season", Value: k.Season, Reason: "cache key requires a season"}
	}
	if k.Kind != KindLeagueBaseline {
		if k.Scope == "" {
			return &domain.ValidationError{Field: "scope", Value: k.Scope, Reason: "cache key requires a scope"}
		}
		if k.SeasonType == "" {
			return &domain.ValidationError{Field: "season_type", Value: k.SeasonType, Reason: "cache key requires a season type"}
		}
	}
	return nil
}

// slug lowercases s and joins its alphanumeric runs with underscores.
func slug(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

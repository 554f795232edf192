package teams

import (
	"strings"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
)

// Roster is an ordered list of known teams. Lookups return the first match.
type Roster []Team

// Resolve maps a full team name to its identity. Matching trims surrounding
// whitespace and ignores case; anything else must match exactly.
func (r Roster) Resolve(name string) (Identity, error) {
	want := strings.TrimSpace(name)
	if want == "" {
		return Identity{}, &domain.NotFoundError{Kind: "team", Name: name}
	}
	for _, t := range r {
		if strings.EqualFold(t.FullName, want) {
			return t.Identity(), nil
		}
	}
	return Identity{}, &domain.NotFoundError{Kind: "team", Name: name}
}

// ByID returns the team with the given stats identifier.
func (r Roster) ByID(id int) (Team, bool) {
	for _, t := range r {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// NBA is the static franchise roster keyed by stats.nba.com team IDs.
var NBA = Roster{
	{ID: 1610612737, Name: "Hawks", FullName: "Atlanta Hawks", Abbreviation: "ATL", City: "Atlanta", Conference: "East", Division: "Southeast"},
	{ID: 1610612738, Name: "Celtics", FullName: "Boston Celtics", Abbreviation: "BOS", City: "Boston", Conference: "East", Division: "Atlantic"},
	{ID: 1610612739, Name: "Cavaliers", FullName: "Cleveland Cavaliers", Abbreviation: "CLE", City: "Cleveland", Conference: "East", Division: "Central"},
	{ID: 1610612740, Name: "Pelicans", FullName: "New Orleans Pelicans", Abbreviation: "NOP", City: "New Orleans", Conference: "West", Division: "Southwest"},
	{ID: 1610612741, Name: "Bulls", FullName: "Chicago Bulls", Abbreviation: "CHI", City: "Chicago", Conference: "East", Division: "Central"},
	{ID: 1610612742, Name: "Mavericks", FullName: "Dallas Mavericks", Abbreviation: "DAL", City: "Dallas", Conference: "West", Division: "Southwest"},
	{ID: 1610612743, Name: "Nuggets", FullName: "Denver Nuggets", Abbreviation: "DEN", City: "Denver", Conference: "West", Division: "Northwest"},
	{ID: 1610612744, Name: "Warriors", FullName: "Golden State Warriors", Abbreviation: "GSW", City: "Golden State", Conference: "West", Division: "Pacific"},
	{ID: 1610612745, Name: "Rockets", FullName: "Houston Rockets", Abbreviation: "HOU", City: "Houston", Conference: "West", Division: "Southwest"},
	{ID: 1610612746, Name: "Clippers", FullName: "Los Angeles Clippers", Abbreviation: "LAC", City: "Los Angeles", Conference: "West", Division: "Pacific"},
	{ID: 1610612747, Name: "Lakers", FullName: "Los Angeles Lakers", Abbreviation: "LAL", City: "Los Angeles", Conference: "West", Division: "Pacific"},
	{ID: 1610612748, Name: "Heat", FullName: "Miami Heat", Abbreviation: "MIA", City: "Miami", Conference: "East", Division: "Southeast"},
	{ID: 1610612749, Name: "Bucks", FullName: "Milwaukee Bucks", Abbreviation: "MIL", City: "Milwaukee", Conference: "East", Division: "Central"},
	{ID: 1610612750, Name: "Timberwolves", FullName: "Minnesota Timberwolves", Abbreviation: "MIN", City: "Minnesota", Conference: "West", Division: "Northwest"},
	{ID: 1610612751, Name: "Nets", FullName: "Brooklyn Nets", Abbreviation: "BKN", City: "Brooklyn", Conference: "East", Division: "Atlantic"},
	{ID: 1610612752, Name: "Knicks", FullName: "New York Knicks", Abbreviation: "NYK", City: "New York", Conference: "East", Division: "Atlantic"},
	{ID: 1610612753, Name: "Magic", FullName: "Orlando Magic", Abbreviation: "ORL", City: "Orlando", Conference: "East", Division: "Southeast"},
	{ID: 1610612754, Name: "Pacers", FullName: "Indiana Pacers", Abbreviation: "IND", City: "Indiana", Conference: "East", Division: "Central"},
	{ID: 1610612755, Name: "76ers", FullName: "Philadelphia 76ers", Abbreviation: "PHI", City: "Philadelphia", Conference: "East", Division: "Atlantic"},
	{ID: 1610612756, Name: "Suns", FullName: "Phoenix Suns", Abbreviation: "PHX", City: "Phoenix", Conference: "West", Division: "Pacific"},
	{ID: 1610612757, Name: "Trail Blazers", FullName: "Portland Trail Blazers", Abbreviation: "POR", City: "Portland", Conference: "West", Division: "Northwest"},
	{ID: 1610612758, Name: "Kings", FullName: "Sacramento Kings", Abbreviation: "SAC", City: "Sacramento", Conference: "West", Division: "Pacific"},
	{ID: 1610612759, Name: "Spurs", FullName: "San Antonio Spurs", Abbreviation: "SAS", City: "San Antonio", Conference: "West", Division: "Southwest"},
	{ID: 1610612760, Name: "Thunder", FullName: "Oklahoma City Thunder", Abbreviation: "OKC", City: "Oklahoma City", Conference: "West", Division: "Northwest"},
	{ID: 1610612761, Name: "Raptors", FullName: "Toronto Raptors", Abbreviation: "TOR", City: "Toronto", Conference: "East", Division: "Atlantic"},
	{ID: 1610612762, Name: "Jazz", FullName: "Utah Jazz", Abbreviation: "UTA", City: "Utah", Conference: "West", Division: "Northwest"},
	{ID: 1610612763, Name: "Grizzlies", FullName: "Memphis Grizzlies", Abbreviation: "MEM", City: "Memphis", Conference: "West", Division: "Southwest"},
	{ID: 1610612764, Name: "Wizards", FullName: "Washington Wizards", Abbreviation: "WAS", City: "Washington", Conference: "East", Division: "Southeast"},
	{ID: 1610612765, Name: "Pistons", FullName: "Detroit Pistons", Abbreviation: "DET", City: "Detroit", Conference: "East", Division: "Central"},
	{ID: 1610612766, Name: "Hornets", FullName: "Charlotte Hornets", Abbreviation: "CHA", City: "Charlotte", Conference: "East", Division: "Southeast"},
}

package season

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
)

// Layout documents the canonical season format.
const Layout = "YYYY-YY"

var seasonPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// Season is a validated "YYYY-YY" season label.
type Season struct {
	StartYear int
}

// Parse validates a season label such as "2024-25". The two-digit suffix must
// be the year after StartYear.
func Parse(value string) (Season, error) {
	raw := strings.TrimSpace(value)
	m := seasonPattern.FindStringSubmatch(raw)
	if m == nil {
		return Season{}, &domain.ValidationError{Field: "season", Value: value, Reason: "expected " + Layout}
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if (start+1)%100 != end {
		return Season{}, &domain.ValidationError{Field: "season", Value: value, Reason: "years must be consecutive"}
	}
	return Season{StartYear: start}, nil
}

// String formats the season as "YYYY-YY".
func (s Season) String() string {
	return fmt.Sprintf("%04d-%02d", s.StartYear, (s.StartYear+1)%100)
}

// FromStartYear builds the season that begins in the given year.
func FromStartYear(year int) Season {
	return Season{StartYear: year}
}

package nfl

import (
	"strings"
	"unicode"
)

// Team is one canonical franchise identity. Aliases carry every variant the
// stat sources are known to emit: city, mascot, abbreviation, and legacy
// names for relocated franchises.
type Team struct {
	Name         string // canonical full name, e.g. "Kansas City Chiefs"
	City         string
	Mascot       string
	Abbreviation string
	Aliases      []string
}

// teams is the static franchise table. Alias sets must stay disjoint after
// normalization; AddAlias-style mutation is deliberately not offered.
var teams = []Team{
	{Name: "Arizona Cardinals", City: "Arizona", Mascot: "Cardinals", Abbreviation: "ARI", Aliases: []string{"AZ Cardinals", "Phoenix Cardinals"}},
	{Name: "Atlanta Falcons", City: "Atlanta", Mascot: "Falcons", Abbreviation: "ATL", Aliases: nil},
	{Name: "Baltimore Ravens", City: "Baltimore", Mascot: "Ravens", Abbreviation: "BAL", Aliases: nil},
	{Name: "Buffalo Bills", City: "Buffalo", Mascot: "Bills", Abbreviation: "BUF", Aliases: nil},
	{Name: "Carolina Panthers", City: "Carolina", Mascot: "Panthers", Abbreviation: "CAR", Aliases: nil},
	{Name: "Chicago Bears", City: "Chicago", Mascot: "Bears", Abbreviation: "CHI", Aliases: nil},
	{Name: "Cincinnati Bengals", City: "Cincinnati", Mascot: "Bengals", Abbreviation: "CIN", Aliases: nil},
	{Name: "Cleveland Browns", City: "Cleveland", Mascot: "Browns", Abbreviation: "CLE", Aliases: nil},
	{Name: "Dallas Cowboys", City: "Dallas", Mascot: "Cowboys", Abbreviation: "DAL", Aliases: nil},
	{Name: "Denver Broncos", City: "Denver", Mascot: "Broncos", Abbreviation: "DEN", Aliases: nil},
	{Name: "Detroit Lions", City: "Detroit", Mascot: "Lions", Abbreviation: "DET", Aliases: nil},
	{Name: "Green Bay Packers", City: "Green Bay", Mascot: "Packers", Abbreviation: "GB", Aliases: []string{"GNB"}},
	{Name: "Houston Texans", City: "Houston", Mascot: "Texans", Abbreviation: "HOU", Aliases: nil},
	{Name: "Indianapolis Colts", City: "Indianapolis", Mascot: "Colts", Abbreviation: "IND", Aliases: nil},
	{Name: "Jacksonville Jaguars", City: "Jacksonville", Mascot: "Jaguars", Abbreviation: "JAX", Aliases: []string{"JAC"}},
	{Name: "Kansas City Chiefs", City: "Kansas City", Mascot: "Chiefs", Abbreviation: "KC", Aliases: []string{"KAN"}},
	{Name: "Las Vegas Raiders", City: "Las Vegas", Mascot: "Raiders", Abbreviation: "LV", Aliases: []string{"Oakland Raiders", "LVR", "OAK"}},
	{Name: "Los Angeles Chargers", City: "Los Angeles", Mascot: "Chargers", Abbreviation: "LAC", Aliases: []string{"LA Chargers", "San Diego Chargers", "SD Chargers"}},
	{Name: "Los Angeles Rams", City: "Los Angeles", Mascot: "Rams", Abbreviation: "LAR", Aliases: []string{"LA Rams", "St. Louis Rams", "St Louis Rams"}},
	{Name: "Miami Dolphins", City: "Miami", Mascot: "Dolphins", Abbreviation: "MIA", Aliases: nil},
	{Name: "Minnesota Vikings", City: "Minnesota", Mascot: "Vikings", Abbreviation: "MIN", Aliases: nil},
	{Name: "New England Patriots", City: "New England", Mascot: "Patriots", Abbreviation: "NE", Aliases: []string{"NWE"}},
	{Name: "New Orleans Saints", City: "New Orleans", Mascot: "Saints", Abbreviation: "NO", Aliases: []string{"NOR"}},
	{Name: "New York Giants", City: "New York", Mascot: "Giants", Abbreviation: "NYG", Aliases: []string{"NY Giants"}},
	{Name: "New York Jets", City: "New York", Mascot: "Jets", Abbreviation: "NYJ", Aliases: []string{"NY Jets"}},
	{Name: "Philadelphia Eagles", City: "Philadelphia", Mascot: "Eagles", Abbreviation: "PHI", Aliases: nil},
	{Name: "Pittsburgh Steelers", City: "Pittsburgh", Mascot: "Steelers", Abbreviation: "PIT", Aliases: nil},
	{Name: "San Francisco 49ers", City: "San Francisco", Mascot: "49ers", Abbreviation: "SF", Aliases: []string{"SF 49ers", "SFO", "Niners"}},
	{Name: "Seattle Seahawks", City: "Seattle", Mascot: "Seahawks", Abbreviation: "SEA", Aliases: nil},
	{Name: "Tampa Bay Buccaneers", City: "Tampa Bay", Mascot: "Buccaneers", Abbreviation: "TB", Aliases: []string{"TAM", "Bucs"}},
	{Name: "Tennessee Titans", City: "Tennessee", Mascot: "Titans", Abbreviation: "TEN", Aliases: []string{"Houston Oilers", "Tennessee Oilers"}},
	{Name: "Washington Commanders", City: "Washington", Mascot: "Commanders", Abbreviation: "WAS", Aliases: []string{"Washington Football Team", "Washington Redskins", "WSH"}},
}

// Resolver maps arbitrary team-name strings to canonical identities.
// It is built once from the static table and is read-only after that.
type Resolver struct {
	byAlias map[string]string // normalized alias -> canonical name
	keys    []string          // normalized aliases in insertion order, for the substring pass
	byName  map[string]*Team
}

// NewResolver builds a resolver over the static franchise table.
func NewResolver() *Resolver {
	r := &Resolver{
		byAlias: make(map[string]string),
		byName:  make(map[string]*Team),
	}
	for i := range teams {
		t := &teams[i]
		r.byName[t.Name] = t
		variants := []string{t.Name, t.Abbreviation, t.City + " " + t.Mascot}
		// Single-city mascots are safe aliases on their own. "New York" and
		// "Los Angeles" mascots are too, since the mascot disambiguates.
		variants = append(variants, t.Mascot)
		variants = append(variants, t.Aliases...)
		for _, v := range variants {
			r.addAlias(v, t.Name)
		}
	}
	return r
}

func (r *Resolver) addAlias(alias, canonical string) {
	key := Normalize(alias)
	if key == "" {
		return
	}
	if existing, ok := r.byAlias[key]; ok {
		if existing != canonical {
			// Table construction error; alias sets must be disjoint.
			panic("nfl: alias " + alias + " maps to both " + existing + " and " + canonical)
		}
		return
	}
	r.byAlias[key] = canonical
	r.keys = append(r.keys, key)
}

// Normalize lowercases, strips punctuation, and collapses whitespace.
func Normalize(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, c := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(c) || unicode.IsDigit(c):
			b.WriteRune(c)
			lastSpace = false
		case unicode.IsSpace(c):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		default:
			// punctuation dropped
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Standardize resolves any team-name variant to its canonical full name.
// Unknown strings come back unchanged: an unresolvable name is a data-quality
// issue handled downstream, never a crash here.
func (r *Resolver) Standardize(raw string) string {
	key := Normalize(raw)
	if key == "" {
		return raw
	}
	if canonical, ok := r.byAlias[key]; ok {
		return canonical
	}
	// Substring pass, in table order so resolution stays deterministic.
	// The alias table is constructed so no two teams share a substring
	// that could match here.
	for _, k := range r.keys {
		if len(key) >= 4 && strings.Contains(k, key) {
			return r.byAlias[k]
		}
		if len(k) >= 4 && strings.Contains(key, k) {
			return r.byAlias[k]
		}
	}
	return raw
}

// Known reports whether raw resolves to a canonical identity.
func (r *Resolver) Known(raw string) bool {
	_, ok := r.byName[r.Standardize(raw)]
	return ok
}

// Lookup returns the full team record for any name variant.
func (r *Resolver) Lookup(raw string) (*Team, bool) {
	t, ok := r.byName[r.Standardize(raw)]
	return t, ok
}

// twoWordCities are the city prefixes that must not be truncated to their
// first word when building a coarse matching key.
var twoWordCities = []string{"new york", "los angeles", "san francisco", "new england", "new orleans", "green bay", "kansas city", "las vegas", "tampa bay"}

// CityKey derives a coarse key from a team name: the city portion lowered,
// with two-word cities kept whole. Used by the matchup fallback when two
// sources disagree on how a team name is written.
func (r *Resolver) CityKey(raw string) string {
	name := Normalize(r.Standardize(raw))
	for _, city := range twoWordCities {
		if strings.HasPrefix(name, city) {
			// Two-franchise cities need the mascot to stay distinct.
			if city == "new york" || city == "los angeles" {
				return name
			}
			return city
		}
	}
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

// AllTeams returns the canonical table, for seeding and tests.
func AllTeams() []Team {
	out := make([]Team, len(teams))
	copy(out, teams)
	return out
}

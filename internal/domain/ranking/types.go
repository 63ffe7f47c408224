// Package ranking turns the member roster into per-event leaderboards.
package ranking

// PersonalBest is a member's best recorded time for one event.
type PersonalBest struct {
	Event string `json:"event"`
	Time  string `json:"time"`
}

// Member is one roster entry. Names are not unique; two members with the
// same name are ranked as distinct entries.
type Member struct {
	FullName      string         `json:"fullName"`
	HighSchool    string         `json:"highSchool"`
	PersonalBests []PersonalBest `json:"personalBests"`
}

// Roster is the document read from the members file.
type Roster struct {
	Members []Member `json:"members"`
}

// Record is one leaderboard row.
type Record struct {
	Rank       int    `json:"rank"`
	FullName   string `json:"fullName"`
	HighSchool string `json:"highSchool"`
	Time       string `json:"time"`
}

// EventRanking is the document written for a tracked event.
type EventRanking struct {
	Event   string   `json:"event"`
	Records []Record `json:"records"`
}

// Event binds an event name to the file its ranking is written to.
type Event struct {
	Name string
	File string
}

// DefaultEvents returns the tracked events in output order.
func DefaultEvents() []Event {
	return []Event{
		{Name: "5000m", File: "5000m.json"},
		{Name: "10000m", File: "10000m.json"},
		{Name: "Half Marathon", File: "half-marathon.json"},
	}
}

package ranking

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/ekiden/internal/domain/racetime"
)

// LoadRoster reads and decodes the roster at path. Any failure is returned;
// the generator treats it as fatal.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRosterRead, path, err)
	}

	var roster Roster
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRosterDecode, path, err)
	}
	return &roster, nil
}

// Anomaly is a personal best whose time cannot be parsed. Such entries are
// still ranked, after every valid time.
type Anomaly struct {
	FullName string
	Event    string
	Time     string
}

func (a Anomaly) Error() string {
	return fmt.Sprintf("%s: %s time %q for %s", ErrMalformedInput, a.Event, a.Time, a.FullName)
}

func (a Anomaly) Unwrap() error { return ErrMalformedInput }

// Validate lists the anomalies in the given events. With no events every
// personal best is checked.
func Validate(roster *Roster, events ...Event) []Anomaly {
	if roster == nil {
		return nil
	}
	tracked := make(map[string]struct{}, len(events))
	for _, ev := range events {
		tracked[ev.Name] = struct{}{}
	}

	var out []Anomaly
	for _, m := range roster.Members {
		for _, pb := range m.PersonalBests {
			if len(tracked) > 0 {
				if _, ok := tracked[pb.Event]; !ok {
					continue
				}
			}
			if !racetime.Valid(pb.Time) {
				out = append(out, Anomaly{FullName: m.FullName, Event: pb.Event, Time: pb.Time})
			}
		}
	}
	return out
}

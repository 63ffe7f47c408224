package ranking

import (
	"cmp"
	"slices"

	"github.com/okian/ekiden/internal/domain/racetime"
)

type keyedRecord struct {
	seconds float64
	record  Record
}

// ExtractEventRecords builds the leaderboard for event. For every member the
// first personal best whose event equals event exactly is used; members
// without one are left out. Rows are ordered by time, fastest first, and
// equal times keep roster order. Ranks run 1..N with no shared places.
func ExtractEventRecords(members []Member, event string) []Record {
	keyed := make([]keyedRecord, 0, len(members))
	for _, m := range members {
		pb, ok := firstBest(m, event)
		if !ok {
			continue
		}
		keyed = append(keyed, keyedRecord{
			seconds: racetime.ParseToSeconds(pb.Time),
			record: Record{
				FullName:   m.FullName,
				HighSchool: m.HighSchool,
				Time:       racetime.Format(pb.Time),
			},
		})
	}

	slices.SortStableFunc(keyed, func(a, b keyedRecord) int {
		return cmp.Compare(a.seconds, b.seconds)
	})

	records := make([]Record, len(keyed))
	for i, k := range keyed {
		records[i] = k.record
		records[i].Rank = i + 1
	}
	return records
}

func firstBest(m Member, event string) (PersonalBest, bool) {
	for _, pb := range m.PersonalBests {
		if pb.Event == event {
			return pb, true
		}
	}
	return PersonalBest{}, false
}

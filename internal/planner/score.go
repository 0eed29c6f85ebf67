package planner

import (
	"sort"
	"strings"

	"wayfinder.transitapp.org/internal/models"
)

// scoreJourney assigns the ranking score; lower is better. The transfer
// penalty and walking weight bias results toward fewer transfers and less
// walking even at equal wall-clock duration.
func scoreJourney(j models.Journey, tun Tunables) float64 {
	return float64(j.TotalDurationMinutes) +
		float64(j.TransferCount)*tun.TransferPenaltyMinutes +
		float64(j.TotalWalkingMinutes)*tun.WalkingWeight
}

// dedupKey collapses itineraries that ride the identical ordered route
// sequence and depart in the same minute.
func dedupKey(j models.Journey) string {
	minute := j.DepartureTime
	if len(minute) > 5 {
		minute = minute[:5]
	}
	return strings.Join(j.RouteIDSequence(), ",") + ":" + minute
}

// rankJourneys scores, de-duplicates and sorts journeys, returning at most
// maxResults. Ordering is fully deterministic: ties on score fall back to
// departure time, then to the route sequence.
func rankJourneys(journeys []models.Journey, tun Tunables) []models.Journey {
	for i := range journeys {
		journeys[i].Score = scoreJourney(journeys[i], tun)
	}

	best := make(map[string]models.Journey)
	for _, j := range journeys {
		key := dedupKey(j)
		current, seen := best[key]
		if !seen || betterThan(j, current) {
			best[key] = j
		}
	}

	ranked := make([]models.Journey, 0, len(best))
	for _, j := range best {
		ranked = append(ranked, j)
	}
	sort.Slice(ranked, func(i, k int) bool {
		return betterThan(ranked[i], ranked[k])
	})

	if tun.MaxResults > 0 && len(ranked) > tun.MaxResults {
		ranked = ranked[:tun.MaxResults]
	}
	return ranked
}

func betterThan(a, b models.Journey) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if a.DepartureTime != b.DepartureTime {
		return a.DepartureTime < b.DepartureTime
	}
	aSeq := strings.Join(a.RouteIDSequence(), ",")
	bSeq := strings.Join(b.RouteIDSequence(), ",")
	if aSeq != bSeq {
		return aSeq < bSeq
	}
	return a.ArrivalTime < b.ArrivalTime
}

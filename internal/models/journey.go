package models

import (
	"github.com/google/uuid"
)

// Leg kinds used in Journey.Legs.
const (
	LegKindWalk    = "walk"
	LegKindTransit = "transit"
)

// Leg is a single segment of a Journey: either a WalkLeg or a TransitLeg.
type Leg interface {
	LegKind() string
}

// Place is a named coordinate at one end of a walk leg.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// WalkLeg is a walking segment between two places. Direction is the 8-point
// compass heading from From to To, when both ends have coordinates.
type WalkLeg struct {
	Kind      string  `json:"kind"`
	From      Place   `json:"from"`
	To        Place   `json:"to"`
	Meters    float64 `json:"meters"`
	Minutes   int     `json:"minutes"`
	Direction string  `json:"direction,omitempty"`
}

func (l WalkLeg) LegKind() string { return LegKindWalk }

// NewWalkLeg creates a walk leg with the given pre-computed duration.
func NewWalkLeg(from, to Place, meters float64, minutes int) WalkLeg {
	return WalkLeg{
		Kind:    LegKindWalk,
		From:    from,
		To:      to,
		Meters:  meters,
		Minutes: minutes,
	}
}

// TransitLeg is a ride on a single trip between two stops.
type TransitLeg struct {
	Kind          string `json:"kind"`
	Route         Route  `json:"route"`
	FromStop      Stop   `json:"fromStop"`
	ToStop        Stop   `json:"toStop"`
	TripID        string `json:"tripId"`
	Headsign      string `json:"headsign,omitempty"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	StopCount     int    `json:"stopCount"`
}

func (l TransitLeg) LegKind() string { return LegKindTransit }

// Journey is an ordered sequence of legs from origin to destination.
// Legs alternate at most walk-transit-walk or walk-transit-(walk)-transit-walk;
// the transfer count equals the number of transit legs minus one.
type Journey struct {
	ID                   string  `json:"id"`
	Legs                 []Leg   `json:"legs"`
	DepartureTime        string  `json:"departureTime"`
	ArrivalTime          string  `json:"arrivalTime"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	TotalWalkingMinutes  int     `json:"totalWalkingMinutes"`
	TotalBusMinutes      int     `json:"totalBusMinutes"`
	TransferCount        int     `json:"transferCount"`
	Score                float64 `json:"score"`
}

// NewJourneyID returns the identifier for a constructed journey. IDs are
// derived from the journey's content (not random) so planning the same
// request twice yields identical output.
func NewJourneyID(seed string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

// TransitLegs returns the transit legs of the journey in order.
func (j Journey) TransitLegs() []TransitLeg {
	var legs []TransitLeg
	for _, leg := range j.Legs {
		if tl, ok := leg.(TransitLeg); ok {
			legs = append(legs, tl)
		}
	}
	return legs
}

// RouteIDSequence returns the ordered route IDs of the journey's transit legs.
func (j Journey) RouteIDSequence() []string {
	var ids []string
	for _, leg := range j.TransitLegs() {
		ids = append(ids, leg.Route.ID)
	}
	return ids
}

// PlanResult is the output of a planning request. When no feasible route
// exists, NoRouteFound is set and Message explains why; this is not an error.
type PlanResult struct {
	Journeys     []Journey `json:"journeys"`
	NoRouteFound bool      `json:"noRouteFound"`
	Message      string    `json:"message,omitempty"`
}

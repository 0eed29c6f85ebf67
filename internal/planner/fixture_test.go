package planner

import (
	"wayfinder.transitapp.org/internal/models"
	"wayfinder.transitapp.org/internal/schedule"
)

func fptr(v float64) *float64 { return &v }

// fixtureSnapshot builds a small network used across the planner tests.
//
// Route r12 runs trip t1 south-to-north through eight stops, with "O" at
// stop sequence 3 (departs 08:00:00) and "B" at sequence 7 (arrives
// 08:20:00). "M" is the mid-line hub. "N" sits about 100 m from M and is
// served only by route r56 toward "E". Route r34 leaves M at 08:25 for "D".
// Routes r78 and r90 leave M at 08:11 and 08:12 for "F", one minute apart,
// straddling the minimum transfer buffer. "Z" has no coordinates.
func fixtureSnapshot() *schedule.Snapshot {
	lon := -122.330
	return &schedule.Snapshot{
		Stops: []models.Stop{
			{ID: "A1", Name: "Line Start", Lat: fptr(47.560), Lon: fptr(lon)},
			{ID: "A2", Name: "2nd Ave", Lat: fptr(47.570), Lon: fptr(lon)},
			{ID: "O", Name: "Origin St", Lat: fptr(47.580), Lon: fptr(lon)},
			{ID: "A4", Name: "4th Ave", Lat: fptr(47.590), Lon: fptr(lon)},
			{ID: "M", Name: "Midtown Hub", Lat: fptr(47.600), Lon: fptr(lon)},
			{ID: "A6", Name: "6th Ave", Lat: fptr(47.610), Lon: fptr(lon)},
			{ID: "B", Name: "Broad St", Lat: fptr(47.620), Lon: fptr(lon)},
			{ID: "A8", Name: "Line End", Lat: fptr(47.630), Lon: fptr(lon)},
			{ID: "N", Name: "Midtown Annex", Lat: fptr(47.6009), Lon: fptr(lon)},
			{ID: "D", Name: "Dockside", Lat: fptr(47.640), Lon: fptr(-122.340)},
			{ID: "E", Name: "Eastlake", Lat: fptr(47.650), Lon: fptr(-122.340)},
			{ID: "F", Name: "Fairview", Lat: fptr(47.660), Lon: fptr(-122.340)},
			{ID: "Z", Name: "Unmapped Depot"},
		},
		Routes: []models.Route{
			{ID: "r12", ShortName: "12"},
			{ID: "r34", ShortName: "34"},
			{ID: "r56", ShortName: "56"},
			{ID: "r78", ShortName: "78"},
			{ID: "r90", ShortName: "90"},
		},
		Trips: []models.Trip{
			{ID: "t1", RouteID: "r12", ServiceID: "wk", Headsign: "Northbound"},
			{ID: "t2", RouteID: "r34", ServiceID: "wk", Headsign: "Dockside"},
			{ID: "t3", RouteID: "r56", ServiceID: "wk", Headsign: "Eastlake"},
			{ID: "t4", RouteID: "r78", ServiceID: "wk", Headsign: "Fairview"},
			{ID: "t5", RouteID: "r90", ServiceID: "wk", Headsign: "Fairview"},
		},
		StopTimes: []models.StopTimeRow{
			{TripID: "t1", StopID: "A1", StopSequence: 1, ArrivalTime: "07:54:00", DepartureTime: "07:54:00"},
			{TripID: "t1", StopID: "A2", StopSequence: 2, ArrivalTime: "07:57:00", DepartureTime: "07:57:00"},
			{TripID: "t1", StopID: "O", StopSequence: 3, ArrivalTime: "08:00:00", DepartureTime: "08:00:00"},
			{TripID: "t1", StopID: "A4", StopSequence: 4, ArrivalTime: "08:05:00", DepartureTime: "08:05:00"},
			{TripID: "t1", StopID: "M", StopSequence: 5, ArrivalTime: "08:10:00", DepartureTime: "08:10:30"},
			{TripID: "t1", StopID: "A6", StopSequence: 6, ArrivalTime: "08:15:00", DepartureTime: "08:15:00"},
			{TripID: "t1", StopID: "B", StopSequence: 7, ArrivalTime: "08:20:00", DepartureTime: "08:20:30"},
			{TripID: "t1", StopID: "A8", StopSequence: 8, ArrivalTime: "08:25:00", DepartureTime: "08:25:00"},

			{TripID: "t2", StopID: "M", StopSequence: 1, DepartureTime: "08:25:00"},
			{TripID: "t2", StopID: "D", StopSequence: 2, ArrivalTime: "08:40:00"},

			{TripID: "t3", StopID: "N", StopSequence: 1, DepartureTime: "08:30:00"},
			{TripID: "t3", StopID: "E", StopSequence: 2, ArrivalTime: "08:45:00"},

			{TripID: "t4", StopID: "M", StopSequence: 1, DepartureTime: "08:11:00"},
			{TripID: "t4", StopID: "F", StopSequence: 2, ArrivalTime: "08:30:00"},

			{TripID: "t5", StopID: "M", StopSequence: 1, DepartureTime: "08:12:00"},
			{TripID: "t5", StopID: "F", StopSequence: 2, ArrivalTime: "08:31:00"},
		},
	}
}

func fixtureIndex(snap *schedule.Snapshot) *schedule.Index {
	return schedule.BuildIndex(snap)
}

func fixtureStop(snap *schedule.Snapshot, id string) models.Stop {
	for _, stop := range snap.Stops {
		if stop.ID == id {
			return stop
		}
	}
	return models.Stop{ID: id}
}

func selfCandidate(snap *schedule.Snapshot, id string) CandidateStop {
	return CandidateStop{Stop: fixtureStop(snap, id)}
}

package planner

// Tunables are the empirically tuned search constants. The caps bound the
// combinatorial cost of the candidate-pair search; they trade precision for
// cost and are configuration, not derived values.
type Tunables struct {
	// MaxCandidatesPerSide caps how many candidate stops are tried on each
	// side of the search.
	MaxCandidatesPerSide int

	// MaxTripsPerReachableStop caps how many qualifying trips are recorded
	// per stop when building the transfer reachability maps.
	MaxTripsPerReachableStop int

	// MaxCombinationsPerTransferStop caps how many outbound/inbound pairs
	// are tried at a single transfer point.
	MaxCombinationsPerTransferStop int

	// DirectResultTarget is the result count below which the (expensive)
	// transfer search still runs.
	DirectResultTarget int

	// MaxResults is the number of ranked journeys returned.
	MaxResults int

	// TransferPenaltyMinutes and WalkingWeight shape the score. The score
	// is a ranking heuristic, not a physical quantity; these two must keep
	// their relative effect (transfers cost far more than walking).
	TransferPenaltyMinutes float64
	WalkingWeight          float64

	// MinTransferBufferMinutes is the minimum connection time at a
	// transfer point.
	MinTransferBufferMinutes int

	// WalkSuppressionMeters is the distance below which boarding/alighting
	// walks are dropped as noise.
	WalkSuppressionMeters float64

	// TransferWalkRadiusMeters bounds walking transfers between two nearby
	// stops; SameStopThresholdMeters treats anything closer as the same
	// physical stop.
	TransferWalkRadiusMeters float64
	SameStopThresholdMeters  float64
}

// DefaultTunables returns the production defaults.
func DefaultTunables() Tunables {
	return Tunables{
		MaxCandidatesPerSide:           10,
		MaxTripsPerReachableStop:       2,
		MaxCombinationsPerTransferStop: 3,
		DirectResultTarget:             3,
		MaxResults:                     10,
		TransferPenaltyMinutes:         15,
		WalkingWeight:                  0.5,
		MinTransferBufferMinutes:       2,
		WalkSuppressionMeters:          50,
		TransferWalkRadiusMeters:       300,
		SameStopThresholdMeters:        30,
	}
}

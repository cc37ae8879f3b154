package types

type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseConfirming Phase = "confirming"
	PhaseConfirmed  Phase = "confirmed"
	PhaseCancelled  Phase = "cancelled"
)

// Finished reports whether the phase is terminal.
func (p Phase) Finished() bool {
	return p == PhaseConfirmed || p == PhaseCancelled
}

type Branch string

const (
	BranchFavorites   Branch = "favorites"
	BranchNewLocation Branch = "new_location"
)

package types

// RoundStep enumerates the four phases of a single (height, round) the
// round state machine cycles through.
type RoundStep uint8

const (
	StepProposeWindow RoundStep = iota
	StepVoting
	StepFinalize
	StepCommitted
)

func (s RoundStep) String() string {
	switch s {
	case StepProposeWindow:
		return "ProposeWindow"
	case StepVoting:
		return "Voting"
	case StepFinalize:
		return "Finalize"
	case StepCommitted:
		return "Committed"
	default:
		return "Unknown"
	}
}

// RoundState is the full consensus state for one (height, round) pair.
// The round state machine holds exclusive write rights to it; every
// other layer only reads it.
type RoundState struct {
	Height              uint64
	Round               uint64
	Step                RoundStep
	ReferenceEfficiency uint64
	ProposalsReceived   int
	VotesReceived       int
	WinnerHash          Hash
	HasWinner           bool
}

// internal/game/state.go
//
// Mutable simulation snapshot for one playthrough.
// Invariants kept by every mutation in this package:
//   - Stress in [0,100], Support in [0,10], TimeSlots in [0,4].
//   - Credentials never holds duplicates.
//   - UsedEventIDs only grows; CurrentTurn and CurrentStage never regress.

package game

import "slices"

// Starting values for a new game.
const (
	startMoney     = 100
	startStress    = 20
	startSupport   = 5
	startTimeSlots = 3
)

// DecisionEntry records one committed decision for the end-of-game timeline.
type DecisionEntry struct {
	Turn        int    `json:"turn"`
	Stage       Stage  `json:"stage"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// State is the complete game snapshot.
type State struct {
	CurrentStage Stage `json:"currentStage"`
	CurrentTurn  int   `json:"currentTurn"`
	TotalTurns   int   `json:"totalTurns"`

	Money       int      `json:"money"`
	Stress      int      `json:"stress"`
	Support     int      `json:"support"`
	TimeSlots   int      `json:"timeSlots"`
	Credentials []string `json:"credentials"`

	CurrentJob    *Job            `json:"currentJob,omitempty"`
	MonthlyBills  int             `json:"monthlyBills"`
	EmergencyFund int             `json:"emergencyFund"`
	DecisionLog   []DecisionEntry `json:"decisionLog"`
	UsedEventIDs  []string        `json:"usedEventIds"`

	// Seed is kept for display only; the RNG stream lives beside the state.
	Seed string `json:"seed"`
}

// NewState constructs a fresh game at the start of Middle School.
func NewState(seed string) *State {
	return &State{
		CurrentStage: StageMiddleSchool,
		CurrentTurn:  1,
		TotalTurns:   TotalTurns,
		Money:        startMoney,
		Stress:       startStress,
		Support:      startSupport,
		TimeSlots:    startTimeSlots,
		Credentials:  []string{},
		DecisionLog:  []DecisionEntry{},
		UsedEventIDs: []string{},
		Seed:         seed,
	}
}

// HasCredential reports whether tag has been earned.
func (s *State) HasCredential(tag string) bool {
	return slices.Contains(s.Credentials, tag)
}

// addCredential inserts tag if absent and reports whether it was added.
func (s *State) addCredential(tag string) bool {
	if tag == "" || s.HasCredential(tag) {
		return false
	}
	s.Credentials = append(s.Credentials, tag)
	return true
}

// markEventUsed appends id to the used set unless already present.
func (s *State) markEventUsed(id string) {
	if !slices.Contains(s.UsedEventIDs, id) {
		s.UsedEventIDs = append(s.UsedEventIDs, id)
	}
}

// Clone returns a deep copy safe to hand out while the original keeps changing.
func (s *State) Clone() *State {
	c := *s
	c.Credentials = slices.Clone(s.Credentials)
	c.DecisionLog = slices.Clone(s.DecisionLog)
	c.UsedEventIDs = slices.Clone(s.UsedEventIDs)
	if s.CurrentJob != nil {
		job := *s.CurrentJob
		c.CurrentJob = &job
	}
	return &c
}

// MissingTags returns the tags in want that s does not hold, in order.
func MissingTags(s *State, want []string) []string {
	var out []string
	for _, t := range want {
		if !s.HasCredential(t) {
			out = append(out, t)
		}
	}
	return out
}

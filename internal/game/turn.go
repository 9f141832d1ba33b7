// internal/game/turn.go
//
// Turn runner: resolves one turn through the four fixed phases.
//
//	1. Plan    : apply chosen actions and their special hooks.
//	2. Commit  : apply the chosen decision option, tag/bills/job side effects,
//	            and log the decision.
//	3. Event   : resolve a pre-drawn card or draw one from the deck, then
//	            apply the chosen response.
//	4. Feedback: job income, Early Adult bills and emergency fund, stress
//	            warning, turn advance and stage transition.
//
// Unknown ids and out-of-range indices skip their phase silently. SubmitTurn
// never fails; rejecting turns on a finished game is the caller's job.

package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	emergencyDeposit = 20
	billReduction    = 10
	stageTimeSlots   = 3
)

var (
	// ErrGameOver is returned by callers asked to play past the last turn.
	ErrGameOver = errors.New("game over")
	// ErrNotEnoughTime means the chosen actions cost more time than is left.
	ErrNotEnoughTime = errors.New("not enough time")
	// ErrOptionLocked means a chosen option's requirement is not met.
	ErrOptionLocked = errors.New("option locked")
)

// PlayerChoices is the per-turn input.
type PlayerChoices struct {
	ActionIDs           []string `json:"actionIds"`
	DecisionID          string   `json:"decisionId"`
	DecisionOptionIndex int      `json:"decisionOptionIndex"`
	EventOptionIndex    *int     `json:"eventOptionIndex,omitempty"`
}

// TurnResult summarizes a resolved turn.
type TurnResult struct {
	Feedback          []string   `json:"feedback"`
	EventDrawn        *EventCard `json:"eventDrawn,omitempty"`
	StageTransitioned bool       `json:"stageTransitioned"`
	OldStage          *Stage     `json:"oldStage,omitempty"`
	NewStage          *Stage     `json:"newStage,omitempty"`
	StressWarning     string     `json:"stressWarning,omitempty"`
}

// SubmitTurn runs all four phases against s, mutating it in place. When
// preDrawn is non-nil it is used as the turn's event and rng is not touched.
func SubmitTurn(s *State, choices PlayerChoices, c *Content, rng Roller, preDrawn *EventCard) TurnResult {
	res := TurnResult{Feedback: []string{}}

	res.Feedback = append(res.Feedback, planPhase(s, choices, c)...)
	res.Feedback = append(res.Feedback, commitPhase(s, choices, c)...)

	event, fb := eventPhase(s, choices, c, rng, preDrawn)
	res.EventDrawn = event
	res.Feedback = append(res.Feedback, fb...)

	res.Feedback = append(res.Feedback, ApplyJobIncome(s)...)
	if s.CurrentStage == StageEarlyAdult {
		res.Feedback = append(res.Feedback, ApplyMonthlyBills(s)...)
		res.Feedback = append(res.Feedback, ApplyEmergencyFund(s)...)
	}
	if warning, ok := CheckStressThreshold(s); ok {
		res.StressWarning = warning
		res.Feedback = append(res.Feedback, warning)
	}

	s.CurrentTurn++
	if from, to, ok := CheckStageTransition(s); ok {
		res.StageTransitioned = true
		res.OldStage, res.NewStage = &from, &to
		res.Feedback = append(res.Feedback, fmt.Sprintf("Advancing to %s!", to))
	}
	return res
}

func planPhase(s *State, choices PlayerChoices, c *Content) []string {
	var feedback []string
	for _, id := range choices.ActionIDs {
		action, ok := c.Action(id)
		if !ok {
			continue
		}
		feedback = append(feedback, ApplyEffects(s, action.Effects)...)
		switch action.SpecialEffect {
		case HookEmergencyFundDeposit:
			// The money debit lives in the action's own effects.
			s.EmergencyFund += emergencyDeposit
			feedback = append(feedback, fmt.Sprintf("Emergency fund: $%d", s.EmergencyFund))
		case HookReduceBills:
			s.MonthlyBills -= min(billReduction, s.MonthlyBills)
			feedback = append(feedback, fmt.Sprintf("Monthly bills now $%d", s.MonthlyBills))
		}
	}
	return feedback
}

func commitPhase(s *State, choices PlayerChoices, c *Content) []string {
	decision, ok := c.Decision(choices.DecisionID)
	if !ok {
		return nil
	}
	idx := choices.DecisionOptionIndex
	if idx < 0 || idx >= len(decision.Options) {
		return nil
	}
	opt := decision.Options[idx]

	feedback := ApplyEffects(s, opt.Effects)
	if s.addCredential(opt.GrantsTag) {
		feedback = append(feedback, "Earned: "+opt.GrantsTag)
	}
	if opt.SetsBills != nil {
		s.MonthlyBills = *opt.SetsBills
		if s.MonthlyBills == 0 {
			feedback = append(feedback, "Living rent-free: no monthly bills")
		} else {
			feedback = append(feedback, fmt.Sprintf("Monthly bills set to $%d", s.MonthlyBills))
		}
	}
	if opt.SetsJob != "" {
		if job, ok := c.Job(opt.SetsJob); ok {
			held := *job
			s.CurrentJob = &held
			feedback = append(feedback, "New job: "+held.Title)
		}
	}

	s.DecisionLog = append(s.DecisionLog, DecisionEntry{
		Turn:        s.CurrentTurn,
		Stage:       s.CurrentStage,
		Description: decision.Prompt + ": " + opt.Label,
		Impact:      impactSummary(opt.Effects),
	})
	return feedback
}

func eventPhase(s *State, choices PlayerChoices, c *Content, rng Roller, preDrawn *EventCard) (*EventCard, []string) {
	event := preDrawn
	if event == nil {
		event = DrawEvent(c.Events, s.CurrentStage, s.UsedEventIDs, rng)
	}
	if event == nil {
		return nil, nil
	}
	s.markEventUsed(event.ID)

	if choices.EventOptionIndex == nil {
		return event, nil
	}
	idx := *choices.EventOptionIndex
	if idx < 0 || idx >= len(event.Options) {
		return event, nil
	}
	return event, ApplyEffects(s, event.Options[idx].Effects)
}

// impactSummary renders effects as "Money -25, Stress +5".
func impactSummary(effects []StatEffect) string {
	parts := make([]string, 0, len(effects))
	for _, e := range effects {
		parts = append(parts, fmt.Sprintf("%s %+d", e.Stat, e.Delta))
	}
	return strings.Join(parts, ", ")
}

// CheckStageTransition advances s to the next stage once CurrentTurn passes
// the current stage's end turn, resetting time slots.
func CheckStageTransition(s *State) (from, to Stage, ok bool) {
	from = s.CurrentStage
	if s.CurrentTurn <= from.EndTurn() {
		return from, from, false
	}
	to, ok = from.Next()
	if !ok {
		return from, from, false
	}
	s.CurrentStage = to
	s.TimeSlots = stageTimeSlots
	return from, to, true
}

// IsGameOver reports whether the last turn has been played.
func IsGameOver(s *State) bool {
	return s.CurrentTurn > StageEarlyAdult.EndTurn()
}

// ValidateChoices checks choices against the player's situation before a
// turn is submitted: the plan must fit in the remaining time slots, a chosen
// decision option's required tag must be held, and, when the event is
// already known, a chosen response's support requirement must be met.
// Unknown ids and indices are left for SubmitTurn to skip.
func ValidateChoices(s *State, choices PlayerChoices, c *Content, pending *EventCard) error {
	if cost := c.PlanCost(choices.ActionIDs); cost > s.TimeSlots {
		return fmt.Errorf("%w: plan needs %d, have %d", ErrNotEnoughTime, cost, s.TimeSlots)
	}
	if d, ok := c.Decision(choices.DecisionID); ok {
		idx := choices.DecisionOptionIndex
		if idx >= 0 && idx < len(d.Options) {
			if tag := d.Options[idx].RequiresTag; tag != "" && !s.HasCredential(tag) {
				return fmt.Errorf("%w: requires %q", ErrOptionLocked, tag)
			}
		}
	}
	if pending != nil && choices.EventOptionIndex != nil {
		idx := *choices.EventOptionIndex
		if idx >= 0 && idx < len(pending.Options) {
			if req := pending.Options[idx].RequiresSupport; req != nil && s.Support < *req {
				return fmt.Errorf("%w: requires support %d", ErrOptionLocked, *req)
			}
		}
	}
	return nil
}

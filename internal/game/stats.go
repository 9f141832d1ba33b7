// internal/game/stats.go
//
// Stat calculator: applies effects with per-stat clamping and resolves the
// end-of-turn economy (job income, monthly bills, emergency fund, stress).
//
// Every function returns human-readable feedback lines describing the change
// actually applied, after clamping. A change that nets to zero is silent.

package game

import (
	"fmt"
	"strings"
)

const (
	stressMin    = 0
	stressMax    = 100
	supportMin   = 0
	supportMax   = 10
	timeSlotsMin = 0
	timeSlotsMax = 4
)

const (
	// StressDanger is the level above which the player is warned.
	StressDanger = 75
	// SupportBonus is the level above which support mitigates setbacks.
	SupportBonus = 7
	// MoneyDanger is the balance at or below which the player is in debt.
	MoneyDanger = 0

	misalignStress = 3
	// misaligned pay is payPerTurn * 3/4, truncated toward zero
	misalignPayNum = 3
	misalignPayDen = 4
)

const stressWarning = "Stress is dangerously high: risk of missed days and worse outcomes."

// ApplyEffects applies each effect to s in order.
func ApplyEffects(s *State, effects []StatEffect) []string {
	var feedback []string
	for _, e := range effects {
		switch e.Stat {
		case StatMoney:
			// Unclamped: debt is allowed.
			s.Money += e.Delta
			if e.Delta != 0 {
				feedback = append(feedback, fmt.Sprintf("Money %+d", e.Delta))
			}
		case StatStress:
			if d := adjust(&s.Stress, e.Delta, stressMin, stressMax); d != 0 {
				feedback = append(feedback, fmt.Sprintf("Stress %+d", d))
			}
		case StatSupport:
			if d := adjust(&s.Support, e.Delta, supportMin, supportMax); d != 0 {
				feedback = append(feedback, fmt.Sprintf("Support %+d", d))
			}
		case StatTimeSlots:
			if d := adjust(&s.TimeSlots, e.Delta, timeSlotsMin, timeSlotsMax); d != 0 {
				feedback = append(feedback, fmt.Sprintf("Time %+d", d))
			}
		case StatCredentials:
			if s.addCredential(e.Tag) {
				feedback = append(feedback, "Earned: "+e.Tag)
			}
		}
	}
	return feedback
}

// adjust adds delta to *v, clamps to [lo,hi] and returns the applied change.
func adjust(v *int, delta, lo, hi int) int {
	before := *v
	*v = min(max(before+delta, lo), hi)
	return *v - before
}

// ApplyJobIncome pays the current job and adds its stress. A job is
// misaligned when the player lacks any recommended tag: pay drops to 75%
// and stress rises by an extra 3.
func ApplyJobIncome(s *State) []string {
	job := s.CurrentJob
	if job == nil {
		return nil
	}
	missing := MissingTags(s, job.RecommendedTags)
	misaligned := len(missing) > 0

	pay := job.PayPerTurn
	stress := job.StressPerTurn
	if misaligned {
		pay = pay * misalignPayNum / misalignPayDen
		stress += misalignStress
	}

	s.Money += pay
	adjust(&s.Stress, stress, stressMin, stressMax)

	feedback := []string{fmt.Sprintf("%s pay: +$%d", job.Title, pay)}
	if stress > 0 {
		feedback = append(feedback, fmt.Sprintf("Work stress: +%d", stress))
	}
	if misaligned {
		feedback = append(feedback, "Misaligned with your job, missing: "+strings.Join(missing, ", "))
	}
	return feedback
}

// ApplyMonthlyBills charges monthly bills; money may go negative.
func ApplyMonthlyBills(s *State) []string {
	if s.MonthlyBills <= 0 {
		return nil
	}
	s.Money -= s.MonthlyBills
	feedback := []string{fmt.Sprintf("Bills: -$%d", s.MonthlyBills)}
	if s.Money < 0 {
		feedback = append(feedback, "You're in debt! Bills exceeded your cash.")
	}
	return feedback
}

// ApplyEmergencyFund draws on the emergency fund to cover a negative balance.
func ApplyEmergencyFund(s *State) []string {
	if s.Money >= 0 || s.EmergencyFund <= 0 {
		return nil
	}
	covered := min(-s.Money, s.EmergencyFund)
	s.Money += covered
	s.EmergencyFund -= covered
	feedback := []string{fmt.Sprintf("Emergency fund covered $%d (remaining: $%d)", covered, s.EmergencyFund)}
	if s.Money >= 0 {
		feedback = append(feedback, "Debt cleared by emergency fund!")
	}
	return feedback
}

// CheckStressThreshold returns the stress warning when stress exceeds
// StressDanger.
func CheckStressThreshold(s *State) (string, bool) {
	if s.Stress > StressDanger {
		return stressWarning, true
	}
	return "", false
}

// HasSupportBonus reports whether support is high enough to soften setbacks.
func HasSupportBonus(s *State) bool { return s.Support > SupportBonus }

// IsInDebt reports whether money is at or below MoneyDanger.
func IsInDebt(s *State) bool { return s.Money <= MoneyDanger }

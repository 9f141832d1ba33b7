package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitTurnRunsAllPhases(t *testing.T) {
	c := testContent()
	s := NewState("TURN_TEST")
	rng := &countingRoller{rolls: []int{0}} // evt_1

	res := SubmitTurn(s, PlayerChoices{
		ActionIDs:           []string{"act_study", "act_rest"},
		DecisionID:          "dec_club",
		DecisionOptionIndex: 0,
		EventOptionIndex:    intPtr(0),
	}, c, rng, nil)

	assert.Equal(t, 2, s.CurrentTurn)
	// 20 +2 -5 (plan) +3 (commit) +5 (event)
	assert.Equal(t, 25, s.Stress)
	assert.Equal(t, 90, s.Money)
	assert.Equal(t, []string{"IT Fundamentals"}, s.Credentials)
	assert.Equal(t, []string{"evt_1"}, s.UsedEventIDs)
	require.NotNil(t, res.EventDrawn)
	assert.Equal(t, "evt_1", res.EventDrawn.ID)
	assert.False(t, res.StageTransitioned)
	assert.Empty(t, res.StressWarning)

	assert.Equal(t, []string{
		"Stress +2",
		"Stress -5",
		"Stress +3",
		"Money -10",
		"Earned: IT Fundamentals",
		"Stress +5",
	}, res.Feedback)

	require.Len(t, s.DecisionLog, 1)
	assert.Equal(t, DecisionEntry{
		Turn:        1,
		Stage:       StageMiddleSchool,
		Description: "Pick a club: Tech Club",
		Impact:      "Stress +3, Money -10",
	}, s.DecisionLog[0])
}

func TestSubmitTurnSkipsUnknownInputsSilently(t *testing.T) {
	c := testContent()
	s := NewState("SKIP")
	rng := &countingRoller{rolls: []int{0}}

	res := SubmitTurn(s, PlayerChoices{
		ActionIDs:           []string{"act_nope", "act_mystery"},
		DecisionID:          "dec_nope",
		DecisionOptionIndex: 0,
	}, c, rng, nil)

	assert.Equal(t, 2, s.CurrentTurn)
	assert.Empty(t, s.DecisionLog)
	assert.Equal(t, 100, s.Money)
	assert.Equal(t, 20, s.Stress)
	require.NotNil(t, res.EventDrawn, "event still drawn")
	assert.Empty(t, res.Feedback, "no event option chosen, nothing else applies")
}

func TestSubmitTurnOutOfRangeIndicesSkipPhase(t *testing.T) {
	c := testContent()

	for _, idx := range []int{-1, 3, 99} {
		s := NewState("RANGE")
		res := SubmitTurn(s, PlayerChoices{
			DecisionID:          "dec_club",
			DecisionOptionIndex: idx,
			EventOptionIndex:    intPtr(idx),
		}, c, &countingRoller{}, nil)

		assert.Empty(t, s.DecisionLog, "index %d", idx)
		assert.Empty(t, s.Credentials, "index %d", idx)
		assert.Empty(t, res.Feedback, "index %d", idx)
		assert.Len(t, s.UsedEventIDs, 1, "card is still marked used")
	}
}

func TestSubmitTurnUsesPreDrawnEvent(t *testing.T) {
	c := testContent()
	s := NewState("PRE")
	rng := &countingRoller{}
	card := c.Events[3] // evt_4

	res := SubmitTurn(s, PlayerChoices{EventOptionIndex: intPtr(0)}, c, rng, &card)

	assert.Zero(t, rng.calls, "pre-drawn event consumes no randomness")
	require.NotNil(t, res.EventDrawn)
	assert.Equal(t, "evt_4", res.EventDrawn.ID)
	assert.Equal(t, []string{"evt_4"}, s.UsedEventIDs)
	assert.Equal(t, 90, s.Money)

	// Re-submitting an already-used card does not duplicate it.
	SubmitTurn(s, PlayerChoices{}, c, rng, &card)
	assert.Equal(t, []string{"evt_4"}, s.UsedEventIDs)
}

func TestSubmitTurnNoEventIsNoOp(t *testing.T) {
	c := testContent()
	s := NewState("EMPTY")
	s.UsedEventIDs = []string{"evt_1", "evt_2", "evt_4"}
	rng := &countingRoller{}

	res := SubmitTurn(s, PlayerChoices{EventOptionIndex: intPtr(0)}, c, rng, nil)

	assert.Nil(t, res.EventDrawn)
	assert.Zero(t, rng.calls)
	assert.Empty(t, res.Feedback)
	assert.Len(t, s.UsedEventIDs, 3)
}

func TestSubmitTurnSpecialHooks(t *testing.T) {
	c := testContent()
	s := NewState("HOOKS")
	s.CurrentStage = StageEarlyAdult
	s.CurrentTurn = 15
	s.MonthlyBills = 15

	res := SubmitTurn(s, PlayerChoices{ActionIDs: []string{"act_save", "act_negotiate", "act_negotiate"}}, c, &countingRoller{}, nil)

	assert.Equal(t, 20, s.EmergencyFund)
	assert.Equal(t, 0, s.MonthlyBills, "second reduction is capped at the remaining bills")
	assert.Equal(t, 80, s.Money, "bills are zero by phase 4")
	assert.Contains(t, res.Feedback, "Emergency fund: $20")
	assert.Contains(t, res.Feedback, "Monthly bills now $5")
	assert.Contains(t, res.Feedback, "Monthly bills now $0")
}

func TestSubmitTurnDecisionSideEffects(t *testing.T) {
	c := testContent()

	t.Run("rent free", func(t *testing.T) {
		s := NewState("BILLS")
		s.MonthlyBills = 50
		res := SubmitTurn(s, PlayerChoices{DecisionID: "dec_housing", DecisionOptionIndex: 0}, c, &countingRoller{}, nil)
		assert.Zero(t, s.MonthlyBills)
		assert.Contains(t, res.Feedback, "Living rent-free: no monthly bills")
		require.Len(t, s.DecisionLog, 1)
		assert.Equal(t, "", s.DecisionLog[0].Impact)
	})

	t.Run("sets bills", func(t *testing.T) {
		s := NewState("BILLS")
		res := SubmitTurn(s, PlayerChoices{DecisionID: "dec_housing", DecisionOptionIndex: 1}, c, &countingRoller{}, nil)
		assert.Equal(t, 200, s.MonthlyBills)
		assert.Contains(t, res.Feedback, "Monthly bills set to $200")
		assert.Equal(t, "Support -1", s.DecisionLog[0].Impact)
	})

	t.Run("sets job", func(t *testing.T) {
		s := NewState("JOB")
		res := SubmitTurn(s, PlayerChoices{DecisionID: "dec_job", DecisionOptionIndex: 0}, c, &countingRoller{}, nil)
		require.NotNil(t, s.CurrentJob)
		assert.Equal(t, "job_retail", s.CurrentJob.ID)
		assert.Contains(t, res.Feedback, "New job: Retail Associate")
		// The job pays in the same turn's feedback phase (misaligned: 30).
		assert.Equal(t, 130, s.Money)
	})

	t.Run("unknown job keeps current", func(t *testing.T) {
		s := NewState("JOB")
		SubmitTurn(s, PlayerChoices{DecisionID: "dec_job", DecisionOptionIndex: 1}, c, &countingRoller{}, nil)
		assert.Nil(t, s.CurrentJob)
		assert.Len(t, s.DecisionLog, 1)
	})
}

func TestSubmitTurnEarlyAdultBillsThenFund(t *testing.T) {
	c := testContent()
	s := NewState("ADULT")
	s.CurrentStage = StageEarlyAdult
	s.CurrentTurn = 14
	s.MonthlyBills = 200
	s.EmergencyFund = 150

	res := SubmitTurn(s, PlayerChoices{}, c, &countingRoller{}, nil)

	assert.Equal(t, 0, s.Money)
	assert.Equal(t, 50, s.EmergencyFund)
	assert.Equal(t, []string{
		"Bills: -$200",
		"You're in debt! Bills exceeded your cash.",
		"Emergency fund covered $100 (remaining: $50)",
		"Debt cleared by emergency fund!",
	}, res.Feedback)
}

func TestSubmitTurnBillsOnlyInEarlyAdult(t *testing.T) {
	c := testContent()
	s := NewState("TEEN")
	s.CurrentStage = StageHighSchool
	s.CurrentTurn = 6
	s.MonthlyBills = 200

	SubmitTurn(s, PlayerChoices{}, c, &countingRoller{}, nil)
	assert.Equal(t, 100, s.Money)
}

func TestSubmitTurnStressWarning(t *testing.T) {
	c := testContent()
	s := NewState("CLAMP")
	s.Stress = 95

	res := SubmitTurn(s, PlayerChoices{ActionIDs: []string{"act_study"}, DecisionID: "dec_club"}, c, &countingRoller{}, nil)

	assert.Equal(t, 100, s.Stress)
	assert.NotEmpty(t, res.StressWarning)
	assert.Equal(t, res.StressWarning, res.Feedback[len(res.Feedback)-1])
}

func TestSubmitTurnStageTransition(t *testing.T) {
	c := testContent()
	s := NewState("STAGE")
	s.CurrentTurn = 4
	s.TimeSlots = 1

	res := SubmitTurn(s, PlayerChoices{}, c, &countingRoller{}, nil)

	assert.Equal(t, 5, s.CurrentTurn)
	assert.Equal(t, StageHighSchool, s.CurrentStage)
	assert.Equal(t, 3, s.TimeSlots)
	assert.True(t, res.StageTransitioned)
	require.NotNil(t, res.OldStage)
	require.NotNil(t, res.NewStage)
	assert.Equal(t, StageMiddleSchool, *res.OldStage)
	assert.Equal(t, StageHighSchool, *res.NewStage)
	assert.Equal(t, "Advancing to High School!", res.Feedback[len(res.Feedback)-1])
}

func TestCheckStageTransition(t *testing.T) {
	s := NewState("STAGE")
	s.CurrentTurn = 5
	s.TimeSlots = 0

	from, to, ok := CheckStageTransition(s)
	assert.True(t, ok)
	assert.Equal(t, StageMiddleSchool, from)
	assert.Equal(t, StageHighSchool, to)
	assert.Equal(t, 3, s.TimeSlots)

	s = NewState("STAGE")
	s.CurrentTurn = 4
	_, _, ok = CheckStageTransition(s)
	assert.False(t, ok)

	s = NewState("STAGE")
	s.CurrentStage = StageEarlyAdult
	s.CurrentTurn = 20
	_, _, ok = CheckStageTransition(s)
	assert.False(t, ok, "no stage after Early Adult")
	assert.Equal(t, StageEarlyAdult, s.CurrentStage)
}

func TestIsGameOver(t *testing.T) {
	s := NewState("OVER")
	s.CurrentStage = StageEarlyAdult
	s.CurrentTurn = 19
	assert.False(t, IsGameOver(s))
	s.CurrentTurn = 20
	assert.True(t, IsGameOver(s))
}

func TestFullPlaythrough(t *testing.T) {
	c := testContent()
	s := NewState("FULL")
	rng := NewRNG("FULL")

	seen := map[Stage]bool{}
	for !IsGameOver(s) {
		seen[s.CurrentStage] = true
		turn := s.CurrentTurn
		SubmitTurn(s, PlayerChoices{ActionIDs: []string{"act_study"}, EventOptionIndex: intPtr(0)}, c, rng, nil)
		require.Equal(t, turn+1, s.CurrentTurn)
	}

	assert.Equal(t, 20, s.CurrentTurn)
	assert.Equal(t, StageEarlyAdult, s.CurrentStage)
	assert.Len(t, seen, 4)

	unique := map[string]bool{}
	for _, id := range s.UsedEventIDs {
		assert.False(t, unique[id], "event %s repeated", id)
		unique[id] = true
	}
	assert.ElementsMatch(t, []string{"evt_1", "evt_2", "evt_3", "evt_4"}, s.UsedEventIDs)
}

func TestValidateChoices(t *testing.T) {
	c := testContent()
	s := NewState("VALID")

	assert.NoError(t, ValidateChoices(s, PlayerChoices{ActionIDs: []string{"act_study", "act_rest"}}, c, nil))
	assert.NoError(t, ValidateChoices(s, PlayerChoices{ActionIDs: []string{"act_unknown"}, DecisionID: "dec_club", DecisionOptionIndex: 9}, c, nil))

	s.TimeSlots = 1
	err := ValidateChoices(s, PlayerChoices{ActionIDs: []string{"act_study", "act_rest"}}, c, nil)
	assert.ErrorIs(t, err, ErrNotEnoughTime)

	err = ValidateChoices(s, PlayerChoices{DecisionID: "dec_club", DecisionOptionIndex: 2}, c, nil)
	assert.ErrorIs(t, err, ErrOptionLocked)
	s.Credentials = []string{"IT Fundamentals"}
	assert.NoError(t, ValidateChoices(s, PlayerChoices{DecisionID: "dec_club", DecisionOptionIndex: 2}, c, nil))

	pending := c.Events[3]
	err = ValidateChoices(s, PlayerChoices{EventOptionIndex: intPtr(1)}, c, &pending)
	assert.ErrorIs(t, err, ErrOptionLocked)
	s.Support = 8
	assert.NoError(t, ValidateChoices(s, PlayerChoices{EventOptionIndex: intPtr(1)}, c, &pending))
}

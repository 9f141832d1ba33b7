package game

func intPtr(v int) *int { return &v }

func money(d int) StatEffect   { return StatEffect{Stat: StatMoney, Delta: d} }
func stress(d int) StatEffect  { return StatEffect{Stat: StatStress, Delta: d} }
func support(d int) StatEffect { return StatEffect{Stat: StatSupport, Delta: d} }
func slots(d int) StatEffect   { return StatEffect{Stat: StatTimeSlots, Delta: d} }
func credential(tag string) StatEffect {
	return StatEffect{Stat: StatCredentials, Tag: tag}
}

// countingRoller records how many values were drawn and replays fixed rolls.
type countingRoller struct {
	rolls []int
	calls int
}

func (r *countingRoller) IntN(n int) int {
	v := 0
	if r.calls < len(r.rolls) {
		v = r.rolls[r.calls] % n
	}
	r.calls++
	return v
}

func testEvents() []EventCard {
	return []EventCard{
		{ID: "evt_1", Title: "Event 1", Stages: []Stage{StageMiddleSchool}, Rarity: RarityCommon,
			Options: []EventOption{{Label: "Shrug", Effects: []StatEffect{stress(5)}}}},
		{ID: "evt_2", Title: "Event 2", Stages: []Stage{StageMiddleSchool, StageHighSchool}, Rarity: RarityUncommon,
			Options: []EventOption{{Label: "Help", Effects: []StatEffect{support(1)}}}},
		{ID: "evt_3", Title: "Event 3", Stages: []Stage{StageHighSchool}, Rarity: RarityRare},
		{ID: "evt_4", Title: "Event 4", Stages: []Stage{StageMiddleSchool}, Rarity: RarityCommon,
			Options: []EventOption{
				{Label: "Spend", Effects: []StatEffect{money(-10)}},
				{Label: "Ask a friend", Effects: []StatEffect{support(-1)}, RequiresSupport: intPtr(8)},
			}},
	}
}

func testContent() *Content {
	return &Content{
		Events: testEvents(),
		Actions: []Action{
			{ID: "act_study", Label: "Study", Stages: []Stage{StageMiddleSchool, StageHighSchool},
				Effects: []StatEffect{stress(2)}, TimeCost: 1},
			{ID: "act_rest", Label: "Rest", Stages: []Stage{StageMiddleSchool},
				Effects: []StatEffect{stress(-5)}, TimeCost: 1},
			{ID: "act_save", Label: "Save", Stages: []Stage{StageEarlyAdult},
				Effects: []StatEffect{money(-20)}, TimeCost: 1, SpecialEffect: HookEmergencyFundDeposit},
			{ID: "act_negotiate", Label: "Negotiate rent", Stages: []Stage{StageEarlyAdult},
				Effects: []StatEffect{stress(1)}, TimeCost: 2, SpecialEffect: HookReduceBills},
			{ID: "act_mystery", Label: "Mystery", Stages: []Stage{StageMiddleSchool}, TimeCost: 1,
				SpecialEffect: "summon_dragon"},
		},
		Decisions: []Decision{
			{ID: "dec_club", Stage: StageMiddleSchool, Turn: 1, Prompt: "Pick a club",
				Options: []DecisionOption{
					{Label: "Tech Club", Effects: []StatEffect{stress(3), money(-10)}, GrantsTag: "IT Fundamentals"},
					{Label: "Nothing", Effects: []StatEffect{}},
					{Label: "Robotics", Effects: []StatEffect{stress(1)}, RequiresTag: "IT Fundamentals"},
				}},
			{ID: "dec_housing", Stage: StageEarlyAdult, Turn: 14, Prompt: "Where will you live",
				Options: []DecisionOption{
					{Label: "With family", SetsBills: intPtr(0)},
					{Label: "Apartment", Effects: []StatEffect{support(-1)}, SetsBills: intPtr(200)},
				}},
			{ID: "dec_job", Stage: StagePostHigh, Turn: 11, Prompt: "Take a job",
				Options: []DecisionOption{
					{Label: "Retail", SetsJob: "job_retail"},
					{Label: "Ghost job", SetsJob: "job_missing"},
				}},
		},
		Jobs: []Job{
			{ID: "job_retail", Title: "Retail Associate", RecommendedTags: []string{"Customer Service"},
				PayPerTurn: 40, StressPerTurn: 4, Stages: []Stage{StagePostHigh, StageEarlyAdult}},
			{ID: "job_it", Title: "Help Desk", RequiredTags: []string{"IT Fundamentals"},
				PayPerTurn: 60, StressPerTurn: 3, Stages: []Stage{StageEarlyAdult}},
		},
		Endings: []Ending{
			{ID: "end_thriving", Title: "Thriving", Conditions: EndingConditions{
				Money: &Threshold{Min: intPtr(500)}, Stress: &Threshold{Max: intPtr(50)},
				Credentials: &CountCondition{MinCount: intPtr(2)}}},
			{ID: "end_stable", Title: "Stable", Conditions: EndingConditions{
				Money: &Threshold{Min: intPtr(0)}}},
			{ID: "end_any", Title: "Still Standing"},
		},
	}
}

package game

// Content is the read-only static content table shared by every game.
// It is never mutated after load.
type Content struct {
	Events    []EventCard `json:"events" yaml:"events"`
	Actions   []Action    `json:"actions" yaml:"actions"`
	Decisions []Decision  `json:"decisions" yaml:"decisions"`
	Jobs      []Job       `json:"jobs" yaml:"jobs"`
	Endings   []Ending    `json:"endings" yaml:"endings"`
}

// Action looks up an action by id.
func (c *Content) Action(id string) (*Action, bool) {
	for i := range c.Actions {
		if c.Actions[i].ID == id {
			return &c.Actions[i], true
		}
	}
	return nil, false
}

// Decision looks up a decision by id.
func (c *Content) Decision(id string) (*Decision, bool) {
	for i := range c.Decisions {
		if c.Decisions[i].ID == id {
			return &c.Decisions[i], true
		}
	}
	return nil, false
}

// Job looks up a job by id.
func (c *Content) Job(id string) (*Job, bool) {
	for i := range c.Jobs {
		if c.Jobs[i].ID == id {
			return &c.Jobs[i], true
		}
	}
	return nil, false
}

// DecisionFor returns the first decision scheduled for the stage and turn.
func (c *Content) DecisionFor(stage Stage, turn int) (*Decision, bool) {
	for i := range c.Decisions {
		if d := &c.Decisions[i]; d.Stage == stage && d.Turn == turn {
			return d, true
		}
	}
	return nil, false
}

// ActionsFor lists the actions available during stage, in content order.
func (c *Content) ActionsFor(stage Stage) []Action {
	var out []Action
	for _, a := range c.Actions {
		if appliesTo(a.Stages, stage) {
			out = append(out, a)
		}
	}
	return out
}

// EligibleJobs lists jobs open to the player right now: the job applies to the
// current stage and every required tag is held.
func (c *Content) EligibleJobs(s *State) []Job {
	var out []Job
	for _, j := range c.Jobs {
		if !appliesTo(j.Stages, s.CurrentStage) {
			continue
		}
		if len(MissingTags(s, j.RequiredTags)) == 0 {
			out = append(out, j)
		}
	}
	return out
}

// VisibleOptions returns the indices of d's options the player may pick:
// options with no requiresTag, or whose tag is held.
func VisibleOptions(d *Decision, s *State) []int {
	var out []int
	for i, opt := range d.Options {
		if opt.RequiresTag == "" || s.HasCredential(opt.RequiresTag) {
			out = append(out, i)
		}
	}
	return out
}

// PlanCost sums the time cost of the known actions in ids.
func (c *Content) PlanCost(ids []string) int {
	total := 0
	for _, id := range ids {
		if a, ok := c.Action(id); ok {
			total += a.TimeCost
		}
	}
	return total
}

package game

// ResolveEnding returns the first ending, in list order, whose conditions all
// hold against s. It returns nil when none match.
func ResolveEnding(endings []Ending, s *State) *Ending {
	for i := range endings {
		cond := endings[i].Conditions
		if cond.Money.Holds(s.Money) &&
			cond.Stress.Holds(s.Stress) &&
			cond.Support.Holds(s.Support) &&
			cond.Credentials.Holds(len(s.Credentials)) {
			return &endings[i]
		}
	}
	return nil
}

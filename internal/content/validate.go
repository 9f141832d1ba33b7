package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/robalobadob/liferoguelite/internal/game"
)

// ErrInvalidContent wraps every validation failure.
var ErrInvalidContent = errors.New("invalid content")

var (
	knownHooks    = []string{game.HookEmergencyFundDeposit, game.HookReduceBills}
	knownRarities = []string{string(game.RarityCommon), string(game.RarityUncommon), string(game.RarityRare)}
	knownStats    = []string{
		string(game.StatMoney), string(game.StatStress), string(game.StatSupport),
		string(game.StatTimeSlots), string(game.StatCredentials),
	}
)

// Validate checks ids, references and enumerations across the content set.
// All problems are collected and reported in one error.
func Validate(c *game.Content) error {
	v := &validator{}

	eventIDs := make([]string, 0, len(c.Events))
	for _, e := range c.Events {
		v.unique("event", e.ID, &eventIDs)
		if len(e.Stages) == 0 {
			v.add("event %s: no stages", e.ID)
		}
		if !contains(knownRarities, string(e.Rarity)) {
			v.add("event %s: unknown rarity %q%s", e.ID, e.Rarity, suggest(string(e.Rarity), knownRarities))
		}
		if len(e.Options) == 0 {
			v.add("event %s: no options", e.ID)
		}
		for i, o := range e.Options {
			where := fmt.Sprintf("event %s option %d", e.ID, i)
			v.effects(where, o.Effects)
			for _, d := range o.DelayedEffects {
				v.effects(where+" delayed", d.Effects)
			}
		}
	}

	actionIDs := make([]string, 0, len(c.Actions))
	for _, a := range c.Actions {
		v.unique("action", a.ID, &actionIDs)
		if len(a.Stages) == 0 {
			v.add("action %s: no stages", a.ID)
		}
		if a.TimeCost < 0 {
			v.add("action %s: negative timeCost", a.ID)
		}
		if a.SpecialEffect != "" && !contains(knownHooks, a.SpecialEffect) {
			v.add("action %s: unknown specialEffect %q%s", a.ID, a.SpecialEffect, suggest(a.SpecialEffect, knownHooks))
		}
		v.effects("action "+a.ID, a.Effects)
	}

	jobIDs := make([]string, 0, len(c.Jobs))
	for _, j := range c.Jobs {
		v.unique("job", j.ID, &jobIDs)
	}

	decisionIDs := make([]string, 0, len(c.Decisions))
	for _, d := range c.Decisions {
		v.unique("decision", d.ID, &decisionIDs)
		if d.Stage.Key() == "" {
			v.add("decision %s: invalid stage %d", d.ID, int(d.Stage))
		} else if d.Turn < d.Stage.FirstTurn() || d.Turn > d.Stage.EndTurn() {
			v.add("decision %s: turn %d outside %s (%d-%d)", d.ID, d.Turn, d.Stage, d.Stage.FirstTurn(), d.Stage.EndTurn())
		}
		if len(d.Options) == 0 {
			v.add("decision %s: no options", d.ID)
		}
		for i, o := range d.Options {
			where := fmt.Sprintf("decision %s option %d", d.ID, i)
			v.effects(where, o.Effects)
			if o.SetsJob != "" && !contains(jobIDs, o.SetsJob) {
				v.add("%s: unknown job %q%s", where, o.SetsJob, suggest(o.SetsJob, jobIDs))
			}
			if o.SetsBills != nil && *o.SetsBills < 0 {
				v.add("%s: negative setsBills", where)
			}
		}
	}

	endingIDs := make([]string, 0, len(c.Endings))
	for _, e := range c.Endings {
		v.unique("ending", e.ID, &endingIDs)
	}
	if len(c.Endings) == 0 {
		v.add("no endings defined")
	}

	return v.err()
}

type validator struct {
	problems []string
}

func (v *validator) add(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) unique(kind, id string, seen *[]string) {
	switch {
	case id == "":
		v.add("%s with empty id", kind)
	case contains(*seen, id):
		v.add("duplicate %s id %q", kind, id)
	}
	*seen = append(*seen, id)
}

func (v *validator) effects(where string, effects []game.StatEffect) {
	for _, e := range effects {
		if !e.Stat.Valid() {
			v.add("%s: unknown stat %q%s", where, e.Stat, suggest(string(e.Stat), knownStats))
			continue
		}
		if e.Stat == game.StatCredentials && e.Tag == "" {
			v.add("%s: credentials effect without tag", where)
		}
	}
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w:\n  %s", ErrInvalidContent, strings.Join(v.problems, "\n  "))
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// suggest returns ` (did you mean "x"?)` for the closest candidate within
// edit distance, or "".
func suggest(got string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range candidates {
		if c == "" {
			continue
		}
		d := levenshtein.ComputeDistance(strings.ToLower(got), strings.ToLower(c))
		if d > distanceLimit(len(c)) {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

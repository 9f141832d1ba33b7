// internal/game/types.go
//
// Core type definitions for the life-progression engine.
// Defines:
//   - Stage: the four ordered life stages and their turn ranges.
//   - StatKind / StatEffect: the atomic resource changes applied everywhere.
//   - Rarity: event card rarity tiers.
//   - Static content records (Action, Decision, EventCard, Job, Ending)
//     consumed read-only by the turn runner.

package game

import (
	"fmt"
	"slices"
)

// Stage is one of the four sequential life phases.
type Stage int

const (
	StageMiddleSchool Stage = iota
	StageHighSchool
	StagePostHigh
	StageEarlyAdult
)

// TotalTurns is the fixed game length (the last stage's end turn).
const TotalTurns = 19

type stageInfo struct {
	key     string // wire name
	display string
	first   int // inclusive
	last    int // inclusive
}

var stageTable = []stageInfo{
	StageMiddleSchool: {"middle-school", "Middle School", 1, 4},
	StageHighSchool:   {"high-school", "High School", 5, 10},
	StagePostHigh:     {"post-high", "Post-High", 11, 13},
	StageEarlyAdult:   {"early-adult", "Early Adult", 14, 19},
}

// Stages lists every stage in play order.
func Stages() []Stage {
	return []Stage{StageMiddleSchool, StageHighSchool, StagePostHigh, StageEarlyAdult}
}

func (s Stage) valid() bool { return s >= StageMiddleSchool && s <= StageEarlyAdult }

// String returns the human-readable stage name.
func (s Stage) String() string {
	if s.valid() {
		return stageTable[s].display
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Key returns the kebab-case wire name used in content files and JSON.
func (s Stage) Key() string {
	if s.valid() {
		return stageTable[s].key
	}
	return ""
}

// FirstTurn is the first turn (inclusive) played in this stage.
func (s Stage) FirstTurn() int { return stageTable[s].first }

// EndTurn is the last turn (inclusive) played in this stage.
func (s Stage) EndTurn() int { return stageTable[s].last }

// Next returns the following stage; ok is false for EarlyAdult.
func (s Stage) Next() (next Stage, ok bool) {
	if s >= StageEarlyAdult || !s.valid() {
		return s, false
	}
	return s + 1, true
}

// MarshalText encodes the stage as its wire name.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid stage %d", int(s))
	}
	return []byte(stageTable[s].key), nil
}

// UnmarshalText decodes a stage from its wire name.
func (s *Stage) UnmarshalText(b []byte) error {
	st, err := ParseStage(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseStage resolves a wire name ("high-school") to a Stage.
func ParseStage(key string) (Stage, error) {
	for i, info := range stageTable {
		if info.key == key {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", key)
}

// StatKind names the resource a StatEffect targets.
type StatKind string

const (
	StatMoney       StatKind = "money"
	StatStress      StatKind = "stress"
	StatSupport     StatKind = "support"
	StatTimeSlots   StatKind = "timeSlots"
	StatCredentials StatKind = "credentials"
)

var statNames = map[StatKind]string{
	StatMoney:       "Money",
	StatStress:      "Stress",
	StatSupport:     "Support",
	StatTimeSlots:   "TimeSlots",
	StatCredentials: "Credentials",
}

// String returns the display name used in decision impact summaries.
func (k StatKind) String() string {
	if name, ok := statNames[k]; ok {
		return name
	}
	return string(k)
}

// Valid reports whether k is a known stat.
func (k StatKind) Valid() bool {
	_, ok := statNames[k]
	return ok
}

// StatEffect is a single signed change to one resource, or a credential grant
// when Stat is StatCredentials (Delta is ignored then).
type StatEffect struct {
	Stat  StatKind `json:"stat" yaml:"stat"`
	Delta int      `json:"delta" yaml:"delta"`
	Tag   string   `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// Rarity is an event card's rarity tier.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// Special-effect hooks an Action may carry.
const (
	HookEmergencyFundDeposit = "emergency_fund_deposit"
	HookReduceBills          = "reduce_bills"
)

// Action is something the player can spend time on during the Plan phase.
type Action struct {
	ID            string       `json:"id" yaml:"id"`
	Label         string       `json:"label" yaml:"label"`
	Description   string       `json:"description" yaml:"description"`
	Stages        []Stage      `json:"stages" yaml:"stages"`
	Effects       []StatEffect `json:"effects" yaml:"effects"`
	TimeCost      int          `json:"timeCost" yaml:"timeCost"`
	SpecialEffect string       `json:"specialEffect,omitempty" yaml:"specialEffect,omitempty"`
}

// Decision is the single choice committed to during the Commit phase.
type Decision struct {
	ID      string           `json:"id" yaml:"id"`
	Stage   Stage            `json:"stage" yaml:"stage"`
	Turn    int              `json:"turn" yaml:"turn"`
	Prompt  string           `json:"prompt" yaml:"prompt"`
	Options []DecisionOption `json:"options" yaml:"options"`
}

// DecisionOption is one answer to a Decision.
type DecisionOption struct {
	Label       string       `json:"label" yaml:"label"`
	Description string       `json:"description" yaml:"description"`
	Effects     []StatEffect `json:"effects" yaml:"effects"`
	GrantsTag   string       `json:"grantsTag,omitempty" yaml:"grantsTag,omitempty"`
	// SetsBills overwrites monthly bills when non-nil; zero means rent-free.
	SetsBills   *int   `json:"setsBills,omitempty" yaml:"setsBills,omitempty"`
	SetsJob     string `json:"setsJob,omitempty" yaml:"setsJob,omitempty"`
	RequiresTag string `json:"requiresTag,omitempty" yaml:"requiresTag,omitempty"`
}

// EventCard is a life event drawn during the Event phase.
type EventCard struct {
	ID         string        `json:"id" yaml:"id"`
	Title      string        `json:"title" yaml:"title"`
	FlavorText string        `json:"flavorText" yaml:"flavorText"`
	Stages     []Stage       `json:"stages" yaml:"stages"`
	Rarity     Rarity        `json:"rarity" yaml:"rarity"`
	Options    []EventOption `json:"options" yaml:"options"`
}

// EventOption is one response to an EventCard.
type EventOption struct {
	Label       string       `json:"label" yaml:"label"`
	Description string       `json:"description" yaml:"description"`
	Effects     []StatEffect `json:"effects" yaml:"effects"`
	// DelayedEffects are carried by content but not resolved by the turn runner.
	DelayedEffects  []DelayedEffect `json:"delayedEffects,omitempty" yaml:"delayedEffects,omitempty"`
	RequiresSupport *int            `json:"requiresSupport,omitempty" yaml:"requiresSupport,omitempty"`
}

// DelayedEffect is a set of effects scheduled TurnsUntil turns ahead.
type DelayedEffect struct {
	TurnsUntil int          `json:"turnsUntil" yaml:"turnsUntil"`
	Effects    []StatEffect `json:"effects" yaml:"effects"`
}

// Job is a source of per-turn income and stress.
type Job struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	RequiredTags    []string `json:"requiredTags" yaml:"requiredTags"`
	RecommendedTags []string `json:"recommendedTags" yaml:"recommendedTags"`
	PayPerTurn      int      `json:"payPerTurn" yaml:"payPerTurn"`
	StressPerTurn   int      `json:"stressPerTurn" yaml:"stressPerTurn"`
	GrowthRate      int      `json:"growthRate" yaml:"growthRate"`
	GrowthTag       string   `json:"growthTag,omitempty" yaml:"growthTag,omitempty"`
	Stages          []Stage  `json:"stages" yaml:"stages"`
}

// Ending is a narrative outcome chosen when the game is over.
type Ending struct {
	ID         string           `json:"id" yaml:"id"`
	Title      string           `json:"title" yaml:"title"`
	Conditions EndingConditions `json:"conditions" yaml:"conditions"`
	Narrative  string           `json:"narrative" yaml:"narrative"`
	Reflection string           `json:"reflection" yaml:"reflection"`
}

// EndingConditions must all hold for an Ending to apply. Nil means "any".
type EndingConditions struct {
	Money       *Threshold      `json:"money,omitempty" yaml:"money,omitempty"`
	Stress      *Threshold      `json:"stress,omitempty" yaml:"stress,omitempty"`
	Support     *Threshold      `json:"support,omitempty" yaml:"support,omitempty"`
	Credentials *CountCondition `json:"credentials,omitempty" yaml:"credentials,omitempty"`
}

// Threshold is an inclusive range with independently optional bounds.
type Threshold struct {
	Min *int `json:"min,omitempty" yaml:"min,omitempty"`
	Max *int `json:"max,omitempty" yaml:"max,omitempty"`
}

// Holds reports whether v lies within the threshold.
func (t *Threshold) Holds(v int) bool {
	if t == nil {
		return true
	}
	if t.Min != nil && v < *t.Min {
		return false
	}
	if t.Max != nil && v > *t.Max {
		return false
	}
	return true
}

// CountCondition requires a minimum number of items.
type CountCondition struct {
	MinCount *int `json:"minCount,omitempty" yaml:"minCount,omitempty"`
}

// Holds reports whether n satisfies the minimum.
func (c *CountCondition) Holds(n int) bool {
	return c == nil || c.MinCount == nil || n >= *c.MinCount
}

// appliesTo reports whether stage is in the list.
func appliesTo(stages []Stage, stage Stage) bool {
	return slices.Contains(stages, stage)
}

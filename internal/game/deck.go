// internal/game/deck.go
//
// Event deck: stage-scoped, non-repeating, rarity-weighted card selection.
//
// Weights are integers (common=3, uncommon=2, rare=1) walked as a cumulative
// distribution over a single IntN draw, so every draw consumes exactly one
// value from the stream and there is no floating-point residue to absorb.

package game

import "slices"

// RarityWeight returns the draw weight of a rarity tier. Unknown tiers weigh 0.
func RarityWeight(r Rarity) int {
	switch r {
	case RarityCommon:
		return 3
	case RarityUncommon:
		return 2
	case RarityRare:
		return 1
	default:
		return 0
	}
}

// AvailableEvents lists the cards eligible for stage that are not in used,
// preserving the order of all. It consumes no randomness.
func AvailableEvents(all []EventCard, stage Stage, used []string) []EventCard {
	var out []EventCard
	for _, e := range all {
		if appliesTo(e.Stages, stage) && !slices.Contains(used, e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// DrawEvent picks one eligible card weighted by rarity. It returns nil, and
// draws nothing from rng, when the eligible pool is empty.
func DrawEvent(all []EventCard, stage Stage, used []string, rng Roller) *EventCard {
	eligible := AvailableEvents(all, stage, used)
	total := 0
	for _, e := range eligible {
		total += RarityWeight(e.Rarity)
	}
	if total == 0 {
		return nil
	}

	roll := rng.IntN(total)
	for i := range eligible {
		roll -= RarityWeight(eligible[i].Rarity)
		if roll < 0 {
			card := eligible[i]
			return &card
		}
	}
	// roll < total, so the walk above always returns.
	card := eligible[len(eligible)-1]
	return &card
}

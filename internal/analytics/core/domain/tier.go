package domain

import "strings"

// Tier levels run 1 (highest value) to 7 (regular). Raw rows carry free-text
// tier names; anything that does not match a known name exactly
// (case-insensitive) contributes no tier.
const (
	TierTop     = 1
	TierRegular = 7
)

var tierByLabel = map[string]int{
	"royal":    1,
	"diamond":  2,
	"platinum": 3,
	"gold":     4,
	"silver":   5,
	"bronze":   6,
	"regular":  7,
}

// TierForLabel resolves a raw tier label to its numeric level.
func TierForLabel(label string) (int, bool) {
	tier, ok := tierByLabel[strings.ToLower(strings.TrimSpace(label))]
	return tier, ok
}

// TierName returns the canonical display name for a tier level.
func TierName(tier int) string {
	switch tier {
	case 1:
		return "Royal"
	case 2:
		return "Diamond"
	case 3:
		return "Platinum"
	case 4:
		return "Gold"
	case 5:
		return "Silver"
	case 6:
		return "Bronze"
	case 7:
		return "Regular"
	default:
		return "-"
	}
}

// TierFromLabels classifies a user's tier for a period: the best (minimum)
// matched level among all labels observed that period. A user with no matched
// label is Regular, never undefined, so tier comparisons always have a value
// on both sides.
func TierFromLabels(labels []string) int {
	best := 0
	for _, label := range labels {
		tier, ok := TierForLabel(label)
		if !ok {
			continue
		}
		if best == 0 || tier < best {
			best = tier
		}
	}
	if best == 0 {
		return TierRegular
	}
	return best
}

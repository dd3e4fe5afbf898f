package domain

import "sort"

// MovementType classifies one user's tier transition between two periods.
type MovementType string

const (
	MovementUpgrade   MovementType = "UPGRADE"
	MovementDowngrade MovementType = "DOWNGRADE"
	MovementStable    MovementType = "STABLE"
	MovementNew       MovementType = "NEW"
	MovementChurned   MovementType = "CHURNED"
)

// MovementRecord is one user's transition. FromTier/ToTier are 0 when the
// user was absent on that side (NEW has no FromTier, CHURNED no ToTier).
// TierChange is fromTier - toTier: positive means improvement, since a lower
// tier number is better.
type MovementRecord struct {
	UserKey    string
	FromTier   int
	ToTier     int
	Type       MovementType
	TierChange int
}

// matrixSize covers tiers 1..7 plus slot 0 for the absent side.
const matrixSize = TierRegular + 1

// TransitionMatrix counts users per exact (fromTier, toTier) pair. Row 0 is
// the "new" origin; column 0 collects churned users. Every user considered
// lands in exactly one cell, so row totals, column totals and the grand total
// all agree.
type TransitionMatrix struct {
	Cells      [matrixSize][matrixSize]int
	TotalOut   [matrixSize]int
	TotalIn    [matrixSize]int
	GrandTotal int
}

// MovementResult is the full cross-period diff.
type MovementResult struct {
	Movements     []MovementRecord
	Matrix        TransitionMatrix
	TopUpgrades   []MovementRecord
	TopDowngrades []MovementRecord
}

// topMoversLimit truncates the top upgrade/downgrade lists.
const topMoversLimit = 10

// CalculateMovement diffs two {userkey → tier} mappings. Every user present
// in either period yields exactly one record. Users in B are walked first in
// userkey order, then the A-only remainder, which also fixes tie order for
// the top-mover lists.
func CalculateMovement(from, to map[string]int) MovementResult {
	var res MovementResult

	for _, key := range sortedTierKeys(to) {
		toTier := normalizeTier(to[key])
		fromTier, inFrom := from[key]
		if !inFrom {
			res.Movements = append(res.Movements, MovementRecord{
				UserKey: key,
				ToTier:  toTier,
				Type:    MovementNew,
			})
			continue
		}
		fromTier = normalizeTier(fromTier)
		change := fromTier - toTier
		movement := MovementStable
		if change > 0 {
			movement = MovementUpgrade
		} else if change < 0 {
			movement = MovementDowngrade
		}
		res.Movements = append(res.Movements, MovementRecord{
			UserKey:    key,
			FromTier:   fromTier,
			ToTier:     toTier,
			Type:       movement,
			TierChange: change,
		})
	}

	for _, key := range sortedTierKeys(from) {
		if _, inTo := to[key]; inTo {
			continue
		}
		res.Movements = append(res.Movements, MovementRecord{
			UserKey:  key,
			FromTier: normalizeTier(from[key]),
			Type:     MovementChurned,
		})
	}

	for _, m := range res.Movements {
		res.Matrix.Cells[m.FromTier][m.ToTier]++
		res.Matrix.TotalOut[m.FromTier]++
		res.Matrix.TotalIn[m.ToTier]++
		res.Matrix.GrandTotal++
	}

	res.TopUpgrades = topMovers(res.Movements, MovementUpgrade, func(a, b MovementRecord) bool {
		return a.TierChange > b.TierChange
	})
	res.TopDowngrades = topMovers(res.Movements, MovementDowngrade, func(a, b MovementRecord) bool {
		return a.TierChange < b.TierChange
	})

	return res
}

// normalizeTier maps an unset tier to Regular so comparisons never see an
// undefined level.
func normalizeTier(tier int) int {
	if tier < TierTop || tier > TierRegular {
		return TierRegular
	}
	return tier
}

func sortedTierKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func topMovers(movements []MovementRecord, t MovementType, less func(a, b MovementRecord) bool) []MovementRecord {
	var out []MovementRecord
	for _, m := range movements {
		if m.Type == t {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) > topMoversLimit {
		out = out[:topMoversLimit]
	}
	return out
}

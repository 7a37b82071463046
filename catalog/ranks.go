// catalog/ranks.go - Ordered rank-title table
package catalog

import (
	"fmt"
)

// RankTier maps a minimum level to a display title. Tiers are ordered
// ascending by MinLevel; a level belongs to the highest tier whose
// MinLevel it reaches.
type RankTier struct {
	MinLevel int    `json:"min_level"`
	Name     string `json:"name"`
}

// RankTable is a validated, ordered tier list.
type RankTable struct {
	tiers []RankTier
}

// NewRankTable validates tier ordering and returns a RankTable.
// The first tier must start at level 1 so every level resolves to a name.
func NewRankTable(tiers []RankTier) (*RankTable, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("ranks: empty rank table")
	}
	if tiers[0].MinLevel != 1 {
		return nil, fmt.Errorf("ranks: first tier must start at level 1, got %d", tiers[0].MinLevel)
	}
	for i, tier := range tiers {
		if tier.Name == "" {
			return nil, fmt.Errorf("ranks: tier %d has empty name", i)
		}
		if i > 0 && tier.MinLevel <= tiers[i-1].MinLevel {
			return nil, fmt.Errorf("ranks: tier %q out of order (min_level %d after %d)",
				tier.Name, tier.MinLevel, tiers[i-1].MinLevel)
		}
	}
	return &RankTable{tiers: tiers}, nil
}

// NameFor returns the rank title for a level. The table is small, so a
// linear scan from the top tier down is all this needs.
func (t *RankTable) NameFor(level int) string {
	for i := len(t.tiers) - 1; i >= 0; i-- {
		if level >= t.tiers[i].MinLevel {
			return t.tiers[i].Name
		}
	}
	return t.tiers[0].Name
}

// Tiers returns the ordered tier list. Callers must not mutate it.
func (t *RankTable) Tiers() []RankTier {
	return t.tiers
}

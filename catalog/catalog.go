// catalog/catalog.go - Challenge Catalog (static configuration)
package catalog

import (
	"fmt"
)

// Challenge difficulty constants
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Challenge is one entry of the static challenge catalog. Points are the
// reward for a first full-score completion; partial scores earn a
// proportional share. Prerequisites reference other catalog ids and must
// form a DAG.
type Challenge struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Difficulty    Difficulty `json:"difficulty"`
	Points        int        `json:"points"`
	Category      string     `json:"category"`
	Prerequisites []string   `json:"prerequisites,omitempty"`
}

// Catalog is an immutable, validated set of challenges. Build one with
// NewCatalog; a Catalog that came out of NewCatalog is safe to share
// across goroutines.
type Catalog struct {
	challenges []Challenge
	byID       map[string]Challenge
}

// NewCatalog validates the challenge set and returns a Catalog.
func NewCatalog(challenges []Challenge) (*Catalog, error) {
	byID := make(map[string]Challenge, len(challenges))
	for _, ch := range challenges {
		if ch.ID == "" {
			return nil, fmt.Errorf("catalog: challenge with empty id")
		}
		if _, dup := byID[ch.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate challenge id %q", ch.ID)
		}
		if ch.Points <= 0 {
			return nil, fmt.Errorf("catalog: challenge %q has non-positive points %d", ch.ID, ch.Points)
		}
		switch ch.Difficulty {
		case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		default:
			return nil, fmt.Errorf("catalog: challenge %q has unknown difficulty %q", ch.ID, ch.Difficulty)
		}
		byID[ch.ID] = ch
	}

	for _, ch := range challenges {
		for _, pre := range ch.Prerequisites {
			if _, ok := byID[pre]; !ok {
				return nil, fmt.Errorf("catalog: challenge %q requires unknown prerequisite %q", ch.ID, pre)
			}
			if pre == ch.ID {
				return nil, fmt.Errorf("catalog: challenge %q requires itself", ch.ID)
			}
		}
	}

	c := &Catalog{challenges: challenges, byID: byID}
	if cycle := c.findCycle(); cycle != "" {
		return nil, fmt.Errorf("catalog: prerequisite cycle through challenge %q", cycle)
	}
	return c, nil
}

// Get returns the challenge with the given id.
func (c *Catalog) Get(id string) (Challenge, bool) {
	ch, ok := c.byID[id]
	return ch, ok
}

// Challenges returns the catalog entries in configuration order.
// Callers must not mutate the returned slice.
func (c *Catalog) Challenges() []Challenge {
	return c.challenges
}

// Size returns the number of challenges in the catalog.
func (c *Catalog) Size() int {
	return len(c.challenges)
}

// findCycle runs a three-color DFS over the prerequisite edges and
// returns the id of a challenge on a cycle, or "" if the graph is a DAG.
func (c *Catalog) findCycle() string {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS path
		black = 2 // fully explored
	)
	color := make(map[string]int, len(c.byID))

	var visit func(id string) string
	visit = func(id string) string {
		color[id] = gray
		for _, pre := range c.byID[id].Prerequisites {
			switch color[pre] {
			case gray:
				return pre
			case white:
				if hit := visit(pre); hit != "" {
					return hit
				}
			}
		}
		color[id] = black
		return ""
	}

	for _, ch := range c.challenges {
		if color[ch.ID] == white {
			if hit := visit(ch.ID); hit != "" {
				return hit
			}
		}
	}
	return ""
}

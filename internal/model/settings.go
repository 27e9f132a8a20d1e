package model

// PairRule makes items of SourceCategory snap onto items of TargetCategory.
// Rules are one-directional: a table does not seek a chair unless a rule
// says so.
type PairRule struct {
	SourceCategory string  `json:"source_category"`
	TargetCategory string  `json:"target_category"`
	Threshold      float64 `json:"threshold"` // max edge gap in m that triggers the snap
	Inset          float64 `json:"inset"`     // m the source edge is pushed past the target edge
}

// Settings holds the placement engine's tunable distances.
type Settings struct {
	SnapToWalls     bool       `json:"snap_to_walls"`
	SnapToRelated   bool       `json:"snap_to_related"`
	WallThreshold   float64    `json:"wall_threshold"`   // m
	AxisTolerance   float64    `json:"axis_tolerance"`   // m, horizontal/vertical wall classification
	CollisionMargin float64    `json:"collision_margin"` // m of overlap tolerated before flagging
	PairRules       []PairRule `json:"pair_rules"`
}

// Default placement distances, in meters.
const (
	DefaultWallThreshold   = 0.2
	DefaultAxisTolerance   = 0.01
	DefaultCollisionMargin = 0.01
)

// DefaultPairRules seats chairs at tables.
func DefaultPairRules() []PairRule {
	return []PairRule{
		{SourceCategory: "chair", TargetCategory: "table", Threshold: 0.3, Inset: 0.15},
	}
}

// DefaultSettings returns Settings with snapping enabled and the default
// thresholds.
func DefaultSettings() Settings {
	return Settings{
		SnapToWalls:     true,
		SnapToRelated:   true,
		WallThreshold:   DefaultWallThreshold,
		AxisTolerance:   DefaultAxisTolerance,
		CollisionMargin: DefaultCollisionMargin,
		PairRules:       DefaultPairRules(),
	}
}

// RulesFor returns the rules whose source matches category, in order.
func (s Settings) RulesFor(category string) []PairRule {
	var rules []PairRule
	for _, r := range s.PairRules {
		if r.SourceCategory == category {
			rules = append(rules, r)
		}
	}
	return rules
}

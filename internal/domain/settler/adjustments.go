package settler

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	minMultiplier = 0.1

	effectTargetTask = "task"
	effectKeyAll     = "all"
)

var percentModifier = regexp.MustCompile(`^\s*([+-]?\d+(?:\.\d+)?)\s*%`)

// ParseModifier reads a leading signed percentage such as "+20%" or
// "-15% loot". ok is false for modifiers that are not percentages.
func ParseModifier(modifier string) (value float64, ok bool) {
	m := percentModifier.FindStringSubmatch(modifier)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AdjustedTimeMultiplier scales task duration for an activity. Speed 0 gives
// 1.5x, speed 20 gives 0.5x; percentage task traits matching the activity
// are folded in multiplicatively. Never below 0.1.
func (s *Settler) AdjustedTimeMultiplier(activityType string) float64 {
	result := 2.0 - (0.5 + float64(s.stats.Speed)/20.0*1.0)

	for _, t := range s.traits {
		if t.Effect.Target != effectTargetTask || !keyMatches(t.Effect.Key, activityType) {
			continue
		}
		if isLootModifier(t.Effect.Modifier) {
			continue
		}
		v, ok := ParseModifier(t.Effect.Modifier)
		if !ok {
			continue
		}
		result *= 1 + v/100
	}

	if result < minMultiplier {
		return minMultiplier
	}
	return result
}

// AdjustedLootMultiplier scales task rewards for an activity from
// scavenging skill and intelligence, plus matching yield/loot traits.
// Never below 0.1.
func (s *Settler) AdjustedLootMultiplier(activityType string) float64 {
	scavenging := float64(s.Skill("scavenging"))
	intelligence := float64(s.stats.Intelligence)
	result := (0.8 + scavenging/20.0*0.6) * (0.9 + intelligence/20.0*0.3)

	for _, t := range s.traits {
		if !isLootModifier(t.Effect.Modifier) || !keyMatches(t.Effect.Key, activityType) {
			continue
		}
		v, ok := ParseModifier(t.Effect.Modifier)
		if !ok {
			continue
		}
		result *= 1 + v/100
	}

	if result < minMultiplier {
		return minMultiplier
	}
	return result
}

func keyMatches(key, activityType string) bool {
	return key == effectKeyAll || (activityType != "" && strings.Contains(key, activityType))
}

func isLootModifier(modifier string) bool {
	m := strings.ToLower(modifier)
	return strings.Contains(m, "yield") || strings.Contains(m, "loot")
}

package align

import (
	"strings"
)

// Metrics under the backend's own system namespace and the raw timestamp
// column are never aligned.
const (
	ReservedSystemPrefix = "system"
	ReservedTimestampKey = "_timestamp"
)

// Group is one step-axis group: a logical phase of execution with its own
// native step counter column and the rules that claim raw metric keys for it.
type Group struct {
	Name       string   `json:"name"`
	StepColumn string   `json:"step_column"`
	Prefixes   []string `json:"prefixes"`
	Exact      []string `json:"exact"`
}

// IDColumn is the name of the synthetic id column the densifier derives for
// this group.
func (g Group) IDColumn() string {
	return g.Name + "_id"
}

func (g Group) matchesExact(key string) bool {
	if key == g.StepColumn {
		return true
	}
	for _, name := range g.Exact {
		if key == name {
			return true
		}
	}
	return false
}

func (g Group) matchesPrefix(key string) bool {
	for _, prefix := range g.Prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// DefaultGroups is the rule set for the usual train / rollout / eval phase
// layout of RL fine-tuning runs.
func DefaultGroups() []Group {
	return []Group{
		{
			Name:       "train",
			StepColumn: "train/step",
			Prefixes:   []string{"train/"},
		},
		{
			Name:       "rollout",
			StepColumn: "rollout/step",
			Prefixes:   []string{"rollout/", "multi_turn/", "passrate/", "perf/"},
		},
		{
			Name:       "eval",
			StepColumn: "eval/step",
			Prefixes:   []string{"eval/"},
		},
	}
}

// Classifier assigns raw metric keys to step-axis groups. Groups are tested
// in declared order and the first match wins; within a group exact names
// take precedence over prefixes. Keys matching no rule are dropped.
type Classifier struct {
	groups []Group
}

func NewClassifier(groups []Group) *Classifier {
	if len(groups) == 0 {
		groups = DefaultGroups()
	}
	return &Classifier{groups: groups}
}

func (c *Classifier) Groups() []Group {
	groups := make([]Group, len(c.groups))
	copy(groups, c.groups)
	return groups
}

// Classify returns the group owning the key, if any. It is a pure function
// of the rule table; an unmatched key is intentional filtering, not failure.
func (c *Classifier) Classify(key string) (Group, bool) {
	if strings.HasPrefix(key, ReservedSystemPrefix) || key == ReservedTimestampKey {
		return Group{}, false
	}
	for _, group := range c.groups {
		if group.matchesExact(key) || group.matchesPrefix(key) {
			return group, true
		}
	}
	return Group{}, false
}

// Partition splits keys into per-group lists, preserving input order within
// each group.
func (c *Classifier) Partition(keys []string) map[string][]string {
	grouped := make(map[string][]string)
	for _, key := range keys {
		if group, ok := c.Classify(key); ok {
			grouped[group.Name] = append(grouped[group.Name], key)
		}
	}
	return grouped
}

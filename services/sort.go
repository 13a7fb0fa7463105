package services

import (
	"fmt"
	"slices"
	"strings"

	"flowai-dashboard/models"
)

// SortCriterion orders the available-task view.
type SortCriterion string

const (
	SortDefault    SortCriterion = "default"
	SortRewardDesc SortCriterion = "reward-desc"
	SortRewardAsc  SortCriterion = "reward-asc"
	SortCategory   SortCriterion = "category"
)

// ParseSortCriterion accepts the criterion names plus a few aliases; "" means default.
func ParseSortCriterion(s string) (SortCriterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default", "id":
		return SortDefault, nil
	case "reward-desc", "reward_desc", "reward-descending":
		return SortRewardDesc, nil
	case "reward-asc", "reward_asc", "reward-ascending":
		return SortRewardAsc, nil
	case "category", "type", "task_type":
		return SortCategory, nil
	}
	return "", fmt.Errorf("unknown sort criterion %q", s)
}

// ComputeDisplayList drops every task whose id is claimed and orders the rest.
// The input slice is never modified; all sorts are stable.
func ComputeDisplayList(tasks []models.Task, claimed map[models.TaskID]struct{}, criterion SortCriterion) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := claimed[t.ID]; ok {
			continue
		}
		out = append(out, t)
	}

	switch criterion {
	case SortRewardDesc:
		slices.SortStableFunc(out, func(a, b models.Task) int { return b.Reward.Cmp(a.Reward) })
	case SortRewardAsc:
		slices.SortStableFunc(out, func(a, b models.Task) int { return a.Reward.Cmp(b.Reward) })
	case SortCategory:
		slices.SortStableFunc(out, func(a, b models.Task) int { return strings.Compare(a.TaskType, b.TaskType) })
	default:
		slices.SortStableFunc(out, func(a, b models.Task) int { return a.ID.Compare(b.ID) })
	}
	return out
}

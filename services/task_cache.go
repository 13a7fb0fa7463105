package services

import (
	"slices"

	"flowai-dashboard/models"
)

// TaskCache holds the last fetched list of open tasks.
// It is not safe for concurrent use; Session guards it.
type TaskCache struct {
	tasks  []models.Task
	loaded bool
}

// SetAvailable replaces the cached list wholesale.
func (c *TaskCache) SetAvailable(tasks []models.Task) {
	c.tasks = slices.Clone(tasks)
	if c.tasks == nil {
		c.tasks = []models.Task{}
	}
	c.loaded = true
}

// Loaded distinguishes "never fetched" from "fetched and empty".
func (c *TaskCache) Loaded() bool { return c.loaded }

func (c *TaskCache) Find(id models.TaskID) (models.Task, bool) {
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Drop removes a task that is no longer open (it was completed).
func (c *TaskCache) Drop(id models.TaskID) bool {
	i := slices.IndexFunc(c.tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	c.tasks = slices.Delete(c.tasks, i, i+1)
	return true
}

// DisplayList is the sorted available view with claimed ids removed.
func (c *TaskCache) DisplayList(claimed *ClaimedTaskSet, criterion SortCriterion) []models.Task {
	return ComputeDisplayList(c.tasks, claimed.idSet(), criterion)
}

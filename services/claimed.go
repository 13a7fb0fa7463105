package services

import (
	"slices"

	"flowai-dashboard/models"
)

// ClaimedTaskSet is the ordered, id-unique set of tasks this session has claimed
// and not yet seen completed. It lives only in memory.
type ClaimedTaskSet struct {
	tasks []models.Task
}

func (s *ClaimedTaskSet) index(id models.TaskID) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

// Add appends t and reports false when its id is already present.
func (s *ClaimedTaskSet) Add(t models.Task) bool {
	if s.index(t.ID) >= 0 {
		return false
	}
	s.tasks = append(s.tasks, t)
	return true
}

// Replace swaps the stored representation of a member, keeping its position.
func (s *ClaimedTaskSet) Replace(t models.Task) bool {
	i := s.index(t.ID)
	if i < 0 {
		return false
	}
	s.tasks[i] = t
	return true
}

// Remove deletes the member with id. Removing an absent id is a no-op.
func (s *ClaimedTaskSet) Remove(id models.TaskID) (models.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Task{}, false
	}
	t := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return t, true
}

func (s *ClaimedTaskSet) Contains(id models.TaskID) bool { return s.index(id) >= 0 }

func (s *ClaimedTaskSet) Get(id models.TaskID) (models.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

// IDs returns member ids in claim order; never nil.
func (s *ClaimedTaskSet) IDs() []models.TaskID {
	ids := make([]models.TaskID, 0, len(s.tasks))
	for _, t := range s.tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func (s *ClaimedTaskSet) Tasks() []models.Task { return slices.Clone(s.tasks) }

func (s *ClaimedTaskSet) idSet() map[models.TaskID]struct{} {
	set := make(map[models.TaskID]struct{}, len(s.tasks))
	for _, t := range s.tasks {
		set[t.ID] = struct{}{}
	}
	return set
}

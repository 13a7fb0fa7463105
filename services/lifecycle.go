package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"flowai-dashboard/i18n"
	"flowai-dashboard/models"
)

// fetchTasks loads the open-task list without reporting failures.
func (s *Session) fetchTasks(ctx context.Context) error {
	tasks, err := s.Backend.AvailableTasks(ctx, s.Translator.Language())
	if err != nil {
		return err
	}
	s.SetAvailableTasks(tasks)
	return nil
}

// RefreshTasks reloads the open-task list. On failure the cache is left as it was.
func (s *Session) RefreshTasks(ctx context.Context) error {
	if err := s.fetchTasks(ctx); err != nil {
		log.Printf("❌ [SESSION] Failed to load tasks: %v", err)
		s.Presenter.Notify("notification.networkError", SeverityError, nil)
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	return nil
}

// Select makes an open task the current one (the detail view is open).
func (s *Session) Select(id models.TaskID) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.claimed.Contains(id) {
		return models.Task{}, ErrAlreadyClaimed
	}
	task, ok := s.cache.Find(id)
	if !ok {
		return models.Task{}, ErrTaskNotFound
	}
	s.current = &task
	return task, nil
}

// Deselect closes the detail view.
func (s *Session) Deselect() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns the selected task, if any.
func (s *Session) Current() (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.Task{}, false
	}
	return *s.current, true
}

// ClaimCurrent claims the selected task.
func (s *Session) ClaimCurrent(ctx context.Context) (models.Task, error) {
	current, ok := s.Current()
	if !ok {
		return models.Task{}, ErrNoCurrentTask
	}
	return s.claim(ctx, current)
}

// Claim selects the open task with id and claims it.
func (s *Session) Claim(ctx context.Context, id models.TaskID) (models.Task, error) {
	task, err := s.Select(id)
	if err != nil {
		if errors.Is(err, ErrAlreadyClaimed) {
			s.Presenter.Notify("notification.alreadyClaimed", SeverityWarning, nil)
		}
		return models.Task{}, err
	}
	return s.claim(ctx, task)
}

// claim moves task from Open to ClaimedLocal. A task already in the claimed set
// is refused before the backend is asked.
func (s *Session) claim(ctx context.Context, task models.Task) (models.Task, error) {
	s.mu.Lock()
	already := s.claimed.Contains(task.ID)
	s.mu.Unlock()
	if already {
		s.Presenter.Notify("notification.alreadyClaimed", SeverityWarning, nil)
		return models.Task{}, ErrAlreadyClaimed
	}

	if err := s.Backend.ClaimTask(ctx, task.ID); err != nil {
		var rejected *ClaimRejectedError
		if errors.As(err, &rejected) {
			log.Printf("⚠️ [SESSION] Claim of task %s rejected: %s", task.ID, rejected.Reason)
			s.Presenter.Notify("notification.claimFailed", SeverityError, i18n.Params{"reason": rejected.Reason})
		} else {
			log.Printf("❌ [SESSION] Claim of task %s failed: %v", task.ID, err)
			s.Presenter.Notify("notification.claimError", SeverityError, nil)
		}
		return models.Task{}, err
	}

	s.mu.Lock()
	added := s.claimed.Add(task)
	if s.current != nil && s.current.ID == task.ID {
		s.current = nil
	}
	s.mu.Unlock()
	if !added {
		// a concurrent claim of the same id won the race
		return task, nil
	}

	log.Printf("✅ [SESSION] Claimed task %s", task.ID)
	s.Presenter.Notify("notification.taskClaimed", SeveritySuccess, nil)
	s.RenderClaimed()
	s.RenderAvailable()

	if raw, ok := s.Backend.RawTask(ctx, task.ID); ok {
		s.mu.Lock()
		replaced := s.claimed.Replace(*raw)
		s.mu.Unlock()
		if replaced {
			s.RenderClaimed()
			task = *raw
		}
	}
	return task, nil
}

// Complete moves a claimed task to Completed by removing it from the claimed set.
// An id that is not claimed leaves the set unchanged. A completed task is
// also dropped from the cached open list so it cannot resurface before the next fetch.
func (s *Session) Complete(id models.TaskID) (models.Task, bool) {
	s.mu.Lock()
	task, removed := s.claimed.Remove(id)
	if removed {
		s.cache.Drop(id)
	}
	s.mu.Unlock()

	if removed {
		s.RenderClaimed()
		s.RenderAvailable()
	}
	return task, removed
}

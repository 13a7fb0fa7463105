package services

import (
	"errors"
	"sync"

	"flowai-dashboard/i18n"
	"flowai-dashboard/models"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrAlreadyClaimed = errors.New("task already claimed")
	ErrNoCurrentTask  = errors.New("no task selected")
)

// Session owns the mutable dashboard state: the task cache, the claimed set,
// the currently selected task and the sort order. Backend calls are made
// without holding the lock, so a failed call leaves state untouched.
type Session struct {
	Backend    Backend
	Presenter  Presenter
	Translator *i18n.Translator
	Titles     TitleTable

	mu      sync.Mutex
	cache   TaskCache
	claimed ClaimedTaskSet
	current *models.Task
	sort    SortCriterion
}

func NewSession(backend Backend, presenter Presenter, translator *i18n.Translator, titles TitleTable) *Session {
	if titles == nil {
		titles = TitleTable{}
	}
	return &Session{
		Backend:    backend,
		Presenter:  presenter,
		Translator: translator,
		Titles:     titles,
		sort:       SortDefault,
	}
}

// Snapshot is a copy of the session state for the dashboard API.
type Snapshot struct {
	Language  string        `json:"language"`
	Loaded    bool          `json:"loaded"`
	Sort      SortCriterion `json:"sort"`
	Available []TaskView    `json:"available"`
	Claimed   []TaskView    `json:"claimed"`
	Current   *TaskView     `json:"current,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lang := s.Translator.Language()
	snap := Snapshot{
		Language:  lang,
		Loaded:    s.cache.Loaded(),
		Sort:      s.sort,
		Available: s.availableViewsLocked(lang, s.sort),
		Claimed:   s.claimedViewsLocked(lang),
	}
	if s.current != nil {
		v := newTaskView(*s.current, ResolveTitle(s.Titles, *s.current, lang), lang)
		snap.Current = &v
	}
	return snap
}

// Sort is the criterion the available view is rendered with.
func (s *Session) Sort() SortCriterion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

// SetSort changes the order of the available view and re-renders it.
func (s *Session) SetSort(criterion SortCriterion) {
	s.mu.Lock()
	s.sort = criterion
	s.mu.Unlock()
	s.RenderAvailable()
}

// Loaded reports whether the task list has been fetched at least once.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Loaded()
}

// DisplayList is the available view under the given criterion.
func (s *Session) DisplayList(criterion SortCriterion) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.DisplayList(&s.claimed, criterion)
}

// SetAvailableTasks replaces the cache and re-renders.
func (s *Session) SetAvailableTasks(tasks []models.Task) {
	s.mu.Lock()
	s.cache.SetAvailable(tasks)
	s.mu.Unlock()
	s.RenderAvailable()
}

// ClaimedIDs returns the claimed ids in claim order, [] when none.
func (s *Session) ClaimedIDs() []models.TaskID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claimed.IDs()
}

func (s *Session) ClaimedTasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claimed.Tasks()
}

// TitleFor resolves the display title of a claimed task, or returns fallback
// when id is not claimed and fallback is set.
func (s *Session) TitleFor(id models.TaskID, fallback string) string {
	s.mu.Lock()
	task, ok := s.claimed.Get(id)
	s.mu.Unlock()

	lang := s.Translator.Language()
	if !ok {
		if fallback != "" {
			return fallback
		}
		return i18n.Translate(lang, "tasks.unknownTask", nil)
	}
	return ResolveTitle(s.Titles, task, lang)
}

// AvailableViews renders the available list under criterion without changing the session order.
func (s *Session) AvailableViews(criterion SortCriterion) []TaskView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.availableViewsLocked(s.Translator.Language(), criterion)
}

func (s *Session) availableViewsLocked(lang string, criterion SortCriterion) []TaskView {
	tasks := s.cache.DisplayList(&s.claimed, criterion)
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, newTaskView(t, ResolveTitle(s.Titles, t, lang), lang))
	}
	return views
}

func (s *Session) claimedViewsLocked(lang string) []TaskView {
	tasks := s.claimed.Tasks()
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, newTaskView(t, ResolveTitle(s.Titles, t, lang), lang))
	}
	return views
}

func (s *Session) RenderAvailable() {
	s.mu.Lock()
	views := s.availableViewsLocked(s.Translator.Language(), s.sort)
	s.mu.Unlock()
	s.Presenter.Render(ViewAvailable, views)
}

func (s *Session) RenderClaimed() {
	s.mu.Lock()
	views := s.claimedViewsLocked(s.Translator.Language())
	s.mu.Unlock()
	s.Presenter.Render(ViewClaimed, views)
}

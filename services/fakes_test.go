package services

import (
	"context"
	"sync"

	"flowai-dashboard/i18n"
	"flowai-dashboard/models"
)

type fakeBackend struct {
	mu sync.Mutex

	tasks      []models.Task
	tasksErr   error
	raw        map[models.TaskID]models.Task
	claimErr   error
	claimCalls []models.TaskID
	stats      models.WorkerStats
	balance    models.Balance
	network    models.NetworkInfo
	statsErr   error
	address    string
	startErr   error
	syncResult *models.WorkResult
	syncErr    error
	syncCalls  [][]models.TaskID
	langs      []string
}

func (f *fakeBackend) Stats(context.Context) (*models.WorkerStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	s := f.stats
	return &s, nil
}

func (f *fakeBackend) Balance(context.Context) (*models.Balance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.balance
	return &b, nil
}

func (f *fakeBackend) NetworkInfo(context.Context) (*models.NetworkInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.network
	return &n, nil
}

func (f *fakeBackend) AccountAddress(context.Context) (string, error) {
	return f.address, nil
}

func (f *fakeBackend) AvailableTasks(_ context.Context, lang string) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.langs = append(f.langs, lang)
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	return append([]models.Task{}, f.tasks...), nil
}

func (f *fakeBackend) RawTask(_ context.Context, id models.TaskID) (*models.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.raw[id]
	if !ok {
		return nil, false
	}
	return &t, true
}

func (f *fakeBackend) ClaimTask(_ context.Context, id models.TaskID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claimCalls = append(f.claimCalls, id)
	return f.claimErr
}

func (f *fakeBackend) StartWork(context.Context) (*models.WorkResult, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &models.WorkResult{Status: models.WorkStatusStarted}, nil
}

func (f *fakeBackend) WorkSync(_ context.Context, ids []models.TaskID) (*models.WorkResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncCalls = append(f.syncCalls, ids)
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	return f.syncResult, nil
}

type notice struct {
	msg      string
	severity Severity
	params   i18n.Params
}

// recordingPresenter captures every presenter call.
type recordingPresenter struct {
	mu        sync.Mutex
	notices   []notice
	logs      []string
	renders   map[View][]TaskView
	buttons   []ButtonState
	refreshes int
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{renders: make(map[View][]TaskView)}
}

func (r *recordingPresenter) Notify(msg string, severity Severity, params i18n.Params) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{msg, severity, params})
}

func (r *recordingPresenter) Log(_ string, msg string, _ i18n.Params) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, msg)
}

func (r *recordingPresenter) Render(view View, tasks []TaskView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders[view] = tasks
}

func (r *recordingPresenter) SetPollerButtons(state ButtonState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buttons = append(r.buttons, state)
}

func (r *recordingPresenter) RefreshAggregateWidgets(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshes++
}

func (r *recordingPresenter) lastNotice() notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return notice{}
	}
	return r.notices[len(r.notices)-1]
}

func task(id string, reward int64, taskType string) models.Task {
	return models.Task{
		ID:       models.TaskID(id),
		Title:    models.PlainText("task " + id),
		TaskType: taskType,
		Reward:   models.NewWei(reward),
	}
}

func ids(tasks []models.Task) []models.TaskID {
	out := make([]models.TaskID, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func newTestSession(backend *fakeBackend) (*Session, *recordingPresenter) {
	p := newRecordingPresenter()
	return NewSession(backend, p, i18n.NewTranslator("en"), nil), p
}

package services

import (
	"context"

	"flowai-dashboard/i18n"
	"flowai-dashboard/models"
	"flowai-dashboard/utils"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// View names a rendered task list.
type View string

const (
	ViewAvailable View = "available"
	ViewClaimed   View = "claimed"
)

// Log actors, translated at display time.
const (
	ActorSystem = "actor.system"
	ActorAgent  = "actor.agent"
)

// ButtonState is the start/stop pair; exactly one side is enabled.
type ButtonState struct {
	Start bool `json:"start"`
	Stop  bool `json:"stop"`
}

// TaskView is a task as shown to the user in the current language.
type TaskView struct {
	ID           models.TaskID `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Requirements string        `json:"requirements"`
	TaskType     string        `json:"task_type"`
	Reward       string        `json:"reward"`
	RewardETH    string        `json:"reward_eth"`
	Deadline     string        `json:"deadline"`
	Publisher    string        `json:"publisher"`
}

func newTaskView(task models.Task, title, lang string) TaskView {
	requirements := task.Requirements
	if requirements == "" {
		requirements = i18n.Translate(lang, "modal.noRequirements", nil)
	}
	return TaskView{
		ID:           task.ID,
		Title:        title,
		Description:  task.Description,
		Requirements: requirements,
		TaskType:     task.TaskType,
		Reward:       task.Reward.String(),
		RewardETH:    utils.FormatETH(task.Reward.Decimal),
		Deadline:     utils.FormatDeadline(task.Deadline),
		Publisher:    task.Publisher,
	}
}

// Presenter is everything the session and poller need from the display side.
// msg is either an i18n key or free text; implementations decide how to translate.
type Presenter interface {
	Notify(msg string, severity Severity, params i18n.Params)
	Log(actor, msg string, params i18n.Params)
	Render(view View, tasks []TaskView)
	SetPollerButtons(state ButtonState)
	RefreshAggregateWidgets(ctx context.Context)
}

// MultiPresenter fans every call out to each presenter in order.
type MultiPresenter []Presenter

func (m MultiPresenter) Notify(msg string, severity Severity, params i18n.Params) {
	for _, p := range m {
		p.Notify(msg, severity, params)
	}
}

func (m MultiPresenter) Log(actor, msg string, params i18n.Params) {
	for _, p := range m {
		p.Log(actor, msg, params)
	}
}

func (m MultiPresenter) Render(view View, tasks []TaskView) {
	for _, p := range m {
		p.Render(view, tasks)
	}
}

func (m MultiPresenter) SetPollerButtons(state ButtonState) {
	for _, p := range m {
		p.SetPollerButtons(state)
	}
}

func (m MultiPresenter) RefreshAggregateWidgets(ctx context.Context) {
	for _, p := range m {
		p.RefreshAggregateWidgets(ctx)
	}
}

package models

// Work-cycle statuses the dashboard acts on. Anything else is shown as an informational message.
const (
	WorkStatusSuccess        = "success"
	WorkStatusNoTasks        = "no_tasks"
	WorkStatusNoSuitableTask = "no_suitable_task"
	WorkStatusStarted        = "started"
)

// WorkSyncRequest is the body of POST /api/agent/work/sync.
type WorkSyncRequest struct {
	ClaimedTasks []TaskID `json:"claimed_tasks"`
}

// WorkResult is what the backend returns for a work cycle or a start-work signal.
type WorkResult struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	TaskID    TaskID `json:"task_id,omitempty"`
	TaskTitle string `json:"task_title,omitempty"`
	Reward    Wei    `json:"reward"`
	Result    string `json:"result,omitempty"`
}

// workers/poller.go
package workers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"flowai-dashboard/i18n"
	"flowai-dashboard/models"
	"flowai-dashboard/services"
	"flowai-dashboard/utils"
)

// PollerState is Stopped (Running=false) or Running with the handle of its timer.
type PollerState struct {
	Running bool          `json:"running"`
	Handle  string        `json:"handle,omitempty"`
	Period  time.Duration `json:"period"`
}

// Poller triggers work cycles on a fixed period and reconciles each result into the session.
// Manual RunCycle calls are not serialized against timer ticks; completion is by id,
// so a duplicate success for the same task is a no-op.
type Poller struct {
	session  *services.Session
	schedule *Schedule
	ctx      context.Context

	mu     sync.Mutex
	handle Handle
	period time.Duration
}

// NewPoller binds a poller to one session. ctx bounds timer-driven cycles.
func NewPoller(ctx context.Context, session *services.Session, schedule *Schedule) *Poller {
	return &Poller{session: session, schedule: schedule, ctx: ctx}
}

func (p *Poller) presenter() services.Presenter { return p.session.Presenter }

func (p *Poller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle.IsZero() {
		return PollerState{}
	}
	return PollerState{Running: true, Handle: p.handle.String(), Period: p.period}
}

// Start begins periodic work cycles. Calling it while running changes nothing
// and reports false.
func (p *Poller) Start(period time.Duration) (bool, error) {
	p.mu.Lock()
	if !p.handle.IsZero() {
		p.mu.Unlock()
		p.presenter().SetPollerButtons(services.ButtonState{Start: false, Stop: true})
		return false, nil
	}

	handle, err := p.schedule.Every(period, func() {
		if _, err := p.RunCycle(p.ctx); err != nil {
			log.Printf("⚠️ [POLLER] Cycle failed, next tick in %s", period)
		}
	})
	if err != nil {
		p.mu.Unlock()
		return false, err
	}
	p.handle = handle
	p.period = period
	p.mu.Unlock()

	log.Printf("▶️ [POLLER] Auto work started (every %s, job %s)", period, handle)
	p.presenter().SetPollerButtons(services.ButtonState{Start: false, Stop: true})
	p.presenter().Notify("notification.autoWorkStarted", services.SeveritySuccess, nil)
	p.presenter().Log(services.ActorSystem, "log.autoWorkStarted", nil)
	return true, nil
}

// Stop cancels future ticks. A cycle already waiting on the backend still completes.
// Calling it while stopped is safe and reports false.
func (p *Poller) Stop() (bool, error) {
	p.mu.Lock()
	if p.handle.IsZero() {
		p.mu.Unlock()
		p.presenter().SetPollerButtons(services.ButtonState{Start: true, Stop: false})
		return false, nil
	}
	handle := p.handle
	if err := p.schedule.Cancel(handle); err != nil {
		p.mu.Unlock()
		return false, err
	}
	p.handle = Handle{}
	p.period = 0
	p.mu.Unlock()

	log.Printf("⏹️ [POLLER] Auto work stopped (job %s)", handle)
	p.presenter().SetPollerButtons(services.ButtonState{Start: true, Stop: false})
	p.presenter().Notify("notification.autoWorkStopped", services.SeverityInfo, nil)
	p.presenter().Log(services.ActorSystem, "log.autoWorkStopped", nil)
	return true, nil
}

// RunCycle performs one work cycle: it always sends the claimed ids (possibly none)
// in a single request and acts on the response status. Failures are reported and
// returned; they never touch the session state or the timer.
func (p *Poller) RunCycle(ctx context.Context) (*models.WorkResult, error) {
	pr := p.presenter()
	pr.Log(services.ActorSystem, "log.startingWork", nil)

	ids := p.session.ClaimedIDs()
	if len(ids) > 0 {
		pr.Log(services.ActorAgent, "log.foundClaimedTasks", i18n.Params{"count": len(ids), "ids": joinIDs(ids)})
	} else {
		pr.Log(services.ActorAgent, "log.noClaimedTasks", nil)
	}

	result, err := p.session.Backend.WorkSync(ctx, ids)
	if err != nil {
		log.Printf("❌ [POLLER] Work cycle failed: %v", err)
		pr.Notify("notification.workFailed", services.SeverityError, nil)
		pr.Log(services.ActorSystem, "log.workFailed", nil)
		return nil, fmt.Errorf("work cycle failed: %w", err)
	}

	switch result.Status {
	case models.WorkStatusSuccess:
		p.reconcileSuccess(ctx, result)
	case models.WorkStatusNoTasks:
		pr.Log(services.ActorAgent, "log.noAvailableTasks", nil)
		pr.Notify("notification.noTasks", services.SeverityInfo, nil)
	case models.WorkStatusNoSuitableTask:
		pr.Log(services.ActorAgent, "log.noSuitableTasks", nil)
		pr.Notify("notification.noSuitableTask", services.SeverityInfo, nil)
	default:
		msg := result.Message
		if msg == "" {
			msg = result.Status
		}
		pr.Notify(msg, services.SeverityInfo, nil)
		pr.Log(services.ActorAgent, msg, nil)
	}
	return result, nil
}

func (p *Poller) reconcileSuccess(ctx context.Context, result *models.WorkResult) {
	pr := p.presenter()
	title := p.session.TitleFor(result.TaskID, result.TaskTitle)
	reward := utils.WeiToETH(result.Reward.Decimal).StringFixed(4)

	pr.Log(services.ActorAgent, "log.taskClaimed", i18n.Params{"title": title, "id": result.TaskID})
	pr.Log(services.ActorAgent, "log.taskExecuting", i18n.Params{"title": title})
	pr.Log(services.ActorAgent, "log.taskCompleted", i18n.Params{"title": title})
	pr.Log(services.ActorAgent, "log.taskReward", i18n.Params{"reward": reward})

	if _, removed := p.session.Complete(result.TaskID); removed {
		log.Printf("🎉 [POLLER] Task %s completed, reward %s ETH", result.TaskID, reward)
	} else {
		log.Printf("ℹ️ [POLLER] Completed task %s was not in the claimed set", result.TaskID)
	}

	pr.Notify("notification.taskCompleted", services.SeveritySuccess, i18n.Params{"reward": reward})
	pr.RefreshAggregateWidgets(ctx)
}

func joinIDs(ids []models.TaskID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}

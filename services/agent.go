package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"flowai-dashboard/i18n"
)

// Agent groups the dashboard actions that sit around the claim lifecycle:
// initial load, start-work signal, statistics refresh and language switch.
type Agent struct {
	Session *Session
	Stats   *StatsService
	Hub     *EventHub
}

func NewAgent(session *Session, stats *StatsService, hub *EventHub) *Agent {
	return &Agent{Session: session, Stats: stats, Hub: hub}
}

func (a *Agent) presenter() Presenter { return a.Session.Presenter }

// runAll runs every loader to completion, even when some fail, and joins their errors.
func runAll(ctx context.Context, loaders ...func(context.Context) error) error {
	var g errgroup.Group
	errs := make([]error, len(loaders))
	for i, load := range loaders {
		g.Go(func() error {
			errs[i] = load(ctx)
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}

// LoadInitialData fetches the account, network info and tasks in parallel, then statistics.
// Each loader is independent: one failing endpoint does not stop the others.
func (a *Agent) LoadInitialData(ctx context.Context) error {
	err := runAll(ctx,
		func(ctx context.Context) error {
			address, err := a.Session.Backend.AccountAddress(ctx)
			if err != nil {
				return fmt.Errorf("failed to load account: %w", err)
			}
			a.Stats.SetAccount(address)
			if a.Hub != nil {
				a.Hub.PublishAccount(address)
			}
			return nil
		},
		a.Stats.RefreshNetwork,
		a.Session.fetchTasks,
	)
	// snapshots are keyed by account, so stats go after the address is known
	err = errors.Join(err, a.Stats.Refresh(ctx))
	a.Session.RenderClaimed()

	if err != nil {
		log.Printf("❌ [AGENT] Initial load incomplete: %v", err)
		a.presenter().Notify("notification.loadFailed", SeverityError, nil)
		a.presenter().Log(ActorSystem, "log.loadFailed", nil)
		return err
	}
	return nil
}

// StartWork sends the one-shot start signal.
func (a *Agent) StartWork(ctx context.Context) error {
	if _, err := a.Session.Backend.StartWork(ctx); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			a.presenter().Notify("notification.startFailed", SeverityError, i18n.Params{"reason": statusErr.Detail})
		} else {
			a.presenter().Notify("notification.startError", SeverityError, nil)
		}
		log.Printf("❌ [AGENT] Start work failed: %v", err)
		return err
	}
	a.presenter().Notify("notification.workStarted", SeveritySuccess, nil)
	a.presenter().Log(ActorSystem, "log.agentStarted", nil)
	return nil
}

// RefreshStats reloads stats, balance and network info.
func (a *Agent) RefreshStats(ctx context.Context) error {
	if err := runAll(ctx, a.Stats.Refresh, a.Stats.RefreshNetwork); err != nil {
		log.Printf("❌ [AGENT] Stats refresh failed: %v", err)
		a.presenter().Notify("notification.networkError", SeverityError, nil)
		return err
	}
	a.presenter().Notify("notification.statsRefreshed", SeveritySuccess, nil)
	return nil
}

// SwitchLanguage changes the display language and reloads the localized data.
func (a *Agent) SwitchLanguage(ctx context.Context, code string) error {
	previous := a.Session.Translator.Language()
	if err := a.Session.Translator.SetLanguage(code); err != nil {
		return err
	}
	if a.Session.Translator.Language() == previous {
		return nil
	}

	a.Session.RenderClaimed()
	if err := runAll(ctx, a.Session.fetchTasks, a.Stats.RefreshNetwork); err != nil {
		log.Printf("⚠️ [AGENT] Reload after language switch failed: %v", err)
		a.presenter().Notify("notification.networkError", SeverityError, nil)
		return err
	}
	a.presenter().Notify("notification.languageChanged", SeveritySuccess, nil)
	return nil
}

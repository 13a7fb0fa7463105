package services

import (
	"context"
	"log"

	"github.com/gosimple/unidecode"

	"flowai-dashboard/i18n"
)

// ConsolePresenter mirrors notifications and the work log to the process log.
type ConsolePresenter struct {
	Translator *i18n.Translator
	// ASCII transliterates output for terminals without CJK fonts.
	ASCII bool
}

func (c *ConsolePresenter) text(msg string, params i18n.Params) string {
	out := c.Translator.Message(msg, params)
	if c.ASCII {
		return unidecode.Unidecode(out)
	}
	return out
}

func (c *ConsolePresenter) Notify(msg string, severity Severity, params i18n.Params) {
	marker := "🔔"
	switch severity {
	case SeveritySuccess:
		marker = "✅"
	case SeverityWarning:
		marker = "⚠️ "
	case SeverityError:
		marker = "❌"
	}
	if c.ASCII {
		marker = "[" + string(severity) + "]"
	}
	log.Printf("[NOTIFY] %s %s", marker, c.text(msg, params))
}

func (c *ConsolePresenter) Log(actor, msg string, params i18n.Params) {
	log.Printf("[AGENT] [%s] %s", c.text(actor, nil), c.text(msg, params))
}

func (c *ConsolePresenter) Render(view View, tasks []TaskView) {
	log.Printf("[RENDER] %s: %d task(s)", view, len(tasks))
}

func (c *ConsolePresenter) SetPollerButtons(state ButtonState) {
	log.Printf("[RENDER] poller buttons start=%t stop=%t", state.Start, state.Stop)
}

func (c *ConsolePresenter) RefreshAggregateWidgets(context.Context) {}

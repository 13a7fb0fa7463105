package services

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"flowai-dashboard/i18n"
	"flowai-dashboard/models"
	"flowai-dashboard/utils"
)

const (
	maxLogLines     = 200
	maxNotices      = 50
	subscriberQueue = 64
)

// Event is one message on the dashboard stream.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data any       `json:"data"`
	At   time.Time `json:"at"`
}

type Notice struct {
	Key      string    `json:"key,omitempty"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	At       time.Time `json:"at"`
}

type LogLine struct {
	Actor   string    `json:"actor"`
	Key     string    `json:"key,omitempty"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// NetworkView is the network widget: raw chain info plus display strings.
type NetworkView struct {
	ChainID      int64  `json:"chain_id"`
	BlockNumber  int64  `json:"block_number"`
	GasPrice     string `json:"gas_price"`
	GasPriceGwei string `json:"gas_price_gwei"`
	IsConnected  bool   `json:"is_connected"`
	Status       string `json:"status"`
}

type AccountView struct {
	Address      string `json:"address"`
	ShortAddress string `json:"short_address"`
}

// AggregateRefresher reloads the statistics widgets.
type AggregateRefresher interface {
	Refresh(ctx context.Context) error
}

// EventHub is the presenter behind the dashboard API: it keeps the latest rendered
// state, translates messages in the current language and fans events out to
// stream subscribers.
type EventHub struct {
	Translator *i18n.Translator
	DB         *gorm.DB

	mu          sync.RWMutex
	subscribers map[string]chan Event
	views       map[View][]TaskView
	buttons     ButtonState
	logs        []LogLine
	notices     []Notice
	aggregates  *Aggregates
	network     *NetworkView
	account     AccountView
	refresher   AggregateRefresher
}

func NewEventHub(translator *i18n.Translator, db *gorm.DB) *EventHub {
	h := &EventHub{
		Translator:  translator,
		DB:          db,
		subscribers: make(map[string]chan Event),
		views:       make(map[View][]TaskView),
		buttons:     ButtonState{Start: true, Stop: false},
	}
	translator.OnChange(func(lang string) {
		h.Publish("language", map[string]any{"language": lang})
	})
	return h
}

// SetAggregateRefresher wires RefreshAggregateWidgets to the stats service.
func (h *EventHub) SetAggregateRefresher(r AggregateRefresher) {
	h.mu.Lock()
	h.refresher = r
	h.mu.Unlock()
}

// Subscribe registers a stream listener. The returned func unsubscribes and closes the channel.
func (h *EventHub) Subscribe() (<-chan Event, func()) {
	id := uuid.NewString()
	ch := make(chan Event, subscriberQueue)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *EventHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Publish sends an event to every subscriber. Slow subscribers miss events rather than block.
func (h *EventHub) Publish(eventType string, data any) {
	ev := Event{ID: uuid.NewString(), Type: eventType, Data: data, At: time.Now().UTC()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			log.Printf("⚠️ [EVENTS] Subscriber %s is behind, dropped %s event", id, eventType)
		}
	}
}

func (h *EventHub) Notify(msg string, severity Severity, params i18n.Params) {
	n := Notice{Message: h.Translator.Message(msg, params), Severity: severity, At: time.Now().UTC()}
	if i18n.IsKey(msg) {
		n.Key = msg
	}

	h.mu.Lock()
	h.notices = append(h.notices, n)
	if len(h.notices) > maxNotices {
		h.notices = slices.Clone(h.notices[len(h.notices)-maxNotices:])
	}
	h.mu.Unlock()

	h.Publish("notify", n)
}

func (h *EventHub) Log(actor, msg string, params i18n.Params) {
	line := LogLine{
		Actor:   h.Translator.Message(actor, nil),
		Message: h.Translator.Message(msg, params),
		At:      time.Now().UTC(),
	}
	if i18n.IsKey(msg) {
		line.Key = msg
	}

	h.mu.Lock()
	h.logs = append(h.logs, line)
	if len(h.logs) > maxLogLines {
		h.logs = slices.Clone(h.logs[len(h.logs)-maxLogLines:])
	}
	h.mu.Unlock()

	if h.DB != nil {
		entry := models.LogEntry{
			ID:        uuid.NewString(),
			Actor:     line.Actor,
			Key:       line.Key,
			Message:   line.Message,
			Language:  h.Translator.Language(),
			CreatedAt: line.At,
		}
		if err := h.DB.Create(&entry).Error; err != nil {
			log.Printf("❌ [EVENTS] Failed to persist log entry: %v", err)
		}
	}

	h.Publish("log", line)
}

func (h *EventHub) Render(view View, tasks []TaskView) {
	h.mu.Lock()
	h.views[view] = slices.Clone(tasks)
	h.mu.Unlock()

	h.Publish("render", map[string]any{"view": view, "tasks": tasks})
}

func (h *EventHub) SetPollerButtons(state ButtonState) {
	h.mu.Lock()
	h.buttons = state
	h.mu.Unlock()

	h.Publish("buttons", state)
}

func (h *EventHub) RefreshAggregateWidgets(ctx context.Context) {
	h.mu.RLock()
	r := h.refresher
	h.mu.RUnlock()
	if r == nil {
		return
	}
	if err := r.Refresh(ctx); err != nil {
		log.Printf("❌ [EVENTS] Aggregate refresh failed: %v", err)
	}
}

// PublishAggregates stores and broadcasts fresh statistics.
func (h *EventHub) PublishAggregates(agg Aggregates) {
	h.mu.Lock()
	h.aggregates = &agg
	h.mu.Unlock()
	h.Publish("aggregates", agg)
}

// PublishNetwork stores and broadcasts chain info, with the gas price in Gwei
// and the connection status in the current language.
func (h *EventHub) PublishNetwork(info models.NetworkInfo) {
	status := "network.disconnected"
	if info.IsConnected {
		status = "network.connected"
	}
	view := NetworkView{
		ChainID:      info.ChainID,
		BlockNumber:  info.BlockNumber,
		GasPrice:     info.GasPrice.String(),
		GasPriceGwei: utils.FormatGwei(info.GasPrice.Decimal),
		IsConnected:  info.IsConnected,
		Status:       h.Translator.T(status, nil),
	}
	h.mu.Lock()
	h.network = &view
	h.mu.Unlock()
	h.Publish("network", view)
}

func (h *EventHub) PublishAccount(address string) {
	view := AccountView{Address: address, ShortAddress: utils.ShortAddress(address)}
	h.mu.Lock()
	h.account = view
	h.mu.Unlock()
	h.Publish("account", view)
}

func (h *EventHub) Buttons() ButtonState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buttons
}

func (h *EventHub) View(view View) []TaskView {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.views[view])
}

func (h *EventHub) Logs() []LogLine {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.logs)
}

func (h *EventHub) Notices() []Notice {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.notices)
}

func (h *EventHub) Aggregates() *Aggregates {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.aggregates
}

func (h *EventHub) Network() *NetworkView {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.network
}

func (h *EventHub) Account() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.account.Address
}

func (h *EventHub) AccountView() AccountView {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.account
}

// handlers/events.go
package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"flowai-dashboard/services"
)

const keepAliveEvery = 15 * time.Second

// StreamEvents streams dashboard events (notify, log, render, buttons, aggregates...) as SSE.
func StreamEvents(hub *services.EventHub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no") // nginx

		events, unsubscribe := hub.Subscribe()
		done := c.Context().Done()

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer unsubscribe()

			ticker := time.NewTicker(keepAliveEvery)
			defer ticker.Stop()

			// current button state first, so a fresh client can draw the controls
			writeEvent(w, services.Event{Type: "buttons", Data: hub.Buttons(), At: time.Now().UTC()})
			if err := w.Flush(); err != nil {
				return
			}

			for {
				select {
				case ev, ok := <-events:
					if !ok {
						return
					}
					writeEvent(w, ev)
					if err := w.Flush(); err != nil {
						// Client disconnected
						return
					}
				case <-ticker.C:
					w.WriteString(":\n\n")
					if err := w.Flush(); err != nil {
						return
					}
				case <-done:
					return
				}
			}
		})
		return nil
	}
}

func writeEvent(w *bufio.Writer, ev services.Event) {
	payload, err := json.Marshal(ev.Data)
	if err != nil {
		log.Printf("[EVENTS] Failed to encode %s event: %v", ev.Type, err)
		return
	}
	if ev.ID != "" {
		fmt.Fprintf(w, "id: %s\n", ev.ID)
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
}

package handlers

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"flowai-dashboard/services"
)

// readEvent reads lines until the next "event: <name>" frame and returns its data line.
func readEvent(t *testing.T, r *bufio.Reader, name string) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("stream ended before %q event: %v", name, err)
		}
		if strings.TrimSpace(line) != "event: "+name {
			continue
		}
		data, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("missing data line for %q: %v", name, err)
		}
		if !strings.HasPrefix(data, "data: ") {
			t.Fatalf("expected data line after event %q, got %q", name, data)
		}
		return strings.TrimSpace(strings.TrimPrefix(data, "data: "))
	}
}

func TestStreamEventsWritesFrames(t *testing.T) {
	app, d := newTestApp(t, "")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go app.Listener(ln)
	t.Cleanup(func() { app.ShutdownWithTimeout(2 * time.Second) })

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/api/events")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("unexpected content type %q", ct)
	}

	reader := bufio.NewReader(resp.Body)
	var buttons services.ButtonState
	if err := json.Unmarshal([]byte(readEvent(t, reader, "buttons")), &buttons); err != nil {
		t.Fatalf("buttons frame is not json: %v", err)
	}
	if !buttons.Start || buttons.Stop {
		t.Errorf("fresh stream should show a stopped poller, got %+v", buttons)
	}

	d.Hub.Notify("notification.noTasks", services.SeverityInfo, nil)
	var notice services.Notice
	if err := json.Unmarshal([]byte(readEvent(t, reader, "notify")), &notice); err != nil {
		t.Fatalf("notify frame is not json: %v", err)
	}
	if notice.Key != "notification.noTasks" || notice.Message != "No available tasks" {
		t.Errorf("unexpected notice %+v", notice)
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gosimple/slug"

	"flowai-dashboard/i18n"
)

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// Report is the exported work log plus the chart series.
type Report struct {
	Account     string       `json:"account"`
	Language    string       `json:"language"`
	GeneratedAt time.Time    `json:"generated_at"`
	Aggregates  *Aggregates  `json:"aggregates,omitempty"`
	Chart       []ChartPoint `json:"chart"`
	Log         []LogLine    `json:"log"`
}

type ReportService struct {
	Uploader Uploader
	Stats    *StatsService
	Hub      *EventHub
	Now      func() time.Time
}

func NewReportService(uploader Uploader, stats *StatsService, hub *EventHub) *ReportService {
	return &ReportService{Uploader: uploader, Stats: stats, Hub: hub, Now: time.Now}
}

// ReportKey builds reports/<account-slug>/<timestamp>.json.
func ReportKey(account string, at time.Time) string {
	owner := slug.Make(account)
	if owner == "" {
		owner = "anonymous"
	}
	return fmt.Sprintf("reports/%s/%s.json", owner, at.UTC().Format("20060102T150405Z"))
}

// Export uploads the current report and returns its URL.
func (r *ReportService) Export(ctx context.Context) (string, error) {
	if r.Uploader == nil {
		return "", fmt.Errorf("report export is not configured")
	}

	chart, err := r.Stats.Chart(ctx, 0)
	if err != nil {
		return "", err
	}

	now := r.Now()
	report := Report{
		Account:     r.Stats.Account(),
		Language:    r.Hub.Translator.Language(),
		GeneratedAt: now.UTC(),
		Aggregates:  r.Hub.Aggregates(),
		Chart:       chart,
		Log:         r.Hub.Logs(),
	}
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	url, err := r.Uploader.Upload(ctx, ReportKey(report.Account, now), body, "application/json")
	if err != nil {
		log.Printf("❌ [REPORT] Upload failed: %v", err)
		r.Hub.Notify("notification.reportExportFailed", SeverityError, nil)
		return "", err
	}

	log.Printf("✅ [REPORT] Uploaded %s", url)
	r.Hub.Log(ActorSystem, "log.reportExported", i18n.Params{"url": url})
	r.Hub.Notify("notification.reportExported", SeveritySuccess, i18n.Params{"url": url})
	return url, nil
}

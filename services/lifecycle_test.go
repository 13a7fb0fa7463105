package services

import (
	"context"
	"errors"
	"slices"
	"testing"

	"flowai-dashboard/models"
)

func TestClaimRemovesTaskFromDisplay(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{task("1", 1000, "a"), task("2", 2000, "b")}}
	s, p := newTestSession(backend)
	ctx := context.Background()

	if err := s.RefreshTasks(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := s.Claim(ctx, "1"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	if got := s.ClaimedIDs(); !slices.Equal(got, []models.TaskID{"1"}) {
		t.Errorf("claimed set should be [1], got %v", got)
	}
	if got := ids(s.DisplayList(SortDefault)); !slices.Equal(got, []models.TaskID{"2"}) {
		t.Errorf("display should be [2], got %v", got)
	}
	if n := p.lastNotice(); n.msg != "notification.taskClaimed" || n.severity != SeveritySuccess {
		t.Errorf("unexpected notice %+v", n)
	}
	if len(p.renders[ViewClaimed]) != 1 || p.renders[ViewClaimed][0].ID != "1" {
		t.Errorf("claimed view not rendered: %+v", p.renders[ViewClaimed])
	}
}

func TestClaimTwiceIsRejectedLocally(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{task("1", 1000, "a")}}
	s, p := newTestSession(backend)
	ctx := context.Background()
	s.SetAvailableTasks(backend.tasks)

	if _, err := s.Claim(ctx, "1"); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	_, err := s.Claim(ctx, "1")
	if !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}

	if got := s.ClaimedIDs(); !slices.Equal(got, []models.TaskID{"1"}) {
		t.Errorf("id must be present exactly once, got %v", got)
	}
	if len(backend.claimCalls) != 1 {
		t.Errorf("second claim must not reach the backend, calls=%v", backend.claimCalls)
	}
	if n := p.lastNotice(); n.msg != "notification.alreadyClaimed" {
		t.Errorf("unexpected notice %+v", n)
	}
}

func TestClaimRejectedLeavesStateUnchanged(t *testing.T) {
	backend := &fakeBackend{
		tasks:    []models.Task{task("1", 1000, "a")},
		claimErr: &ClaimRejectedError{TaskID: "1", StatusCode: 400, Reason: "task already taken"},
	}
	s, p := newTestSession(backend)
	s.SetAvailableTasks(backend.tasks)

	_, err := s.Claim(context.Background(), "1")
	var rejected *ClaimRejectedError
	if !errors.As(err, &rejected) || rejected.Reason != "task already taken" {
		t.Fatalf("expected ClaimRejectedError with reason, got %v", err)
	}

	if len(s.ClaimedIDs()) != 0 {
		t.Errorf("claimed set must stay empty, got %v", s.ClaimedIDs())
	}
	if got := ids(s.DisplayList(SortDefault)); !slices.Equal(got, []models.TaskID{"1"}) {
		t.Errorf("task must stay open, got %v", got)
	}
	n := p.lastNotice()
	if n.msg != "notification.claimFailed" || n.params["reason"] != "task already taken" {
		t.Errorf("unexpected notice %+v", n)
	}
}

func TestClaimTransportFailure(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{task("1", 1000, "a")}, claimErr: ErrTransport}
	s, p := newTestSession(backend)
	s.SetAvailableTasks(backend.tasks)

	if _, err := s.Claim(context.Background(), "1"); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if len(s.ClaimedIDs()) != 0 {
		t.Errorf("claimed set must stay empty")
	}
	if n := p.lastNotice(); n.msg != "notification.claimError" || n.severity != SeverityError {
		t.Errorf("unexpected notice %+v", n)
	}
}

func TestClaimEnrichesWithRawTask(t *testing.T) {
	raw := task("1", 1000, "a")
	raw.Title = models.MultiText(map[string]string{"en": "Translate docs", "zh": "翻译文档"})
	backend := &fakeBackend{
		tasks: []models.Task{task("1", 1000, "a")},
		raw:   map[models.TaskID]models.Task{"1": raw},
	}
	s, _ := newTestSession(backend)
	s.SetAvailableTasks(backend.tasks)

	got, err := s.Claim(context.Background(), "1")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if !got.Title.IsMultilingual() {
		t.Error("claim should return the enriched task")
	}
	if title := s.TitleFor("1", ""); title != "Translate docs" {
		t.Errorf("expected multilingual title, got %q", title)
	}
	if err := s.Translator.SetLanguage("zh"); err != nil {
		t.Fatal(err)
	}
	if title := s.TitleFor("1", ""); title != "翻译文档" {
		t.Errorf("expected zh title, got %q", title)
	}
}

func TestClaimKeepsLocalizedCopyWhenRawFails(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{task("1", 1000, "a")}}
	s, p := newTestSession(backend)
	s.SetAvailableTasks(backend.tasks)

	if _, err := s.Claim(context.Background(), "1"); err != nil {
		t.Fatalf("claim must succeed without enrichment: %v", err)
	}
	if title := s.TitleFor("1", ""); title != "task 1" {
		t.Errorf("expected plain title, got %q", title)
	}
	for _, n := range p.notices {
		if n.severity == SeverityError {
			t.Errorf("enrichment failure must not be reported, got %+v", n)
		}
	}
}

func TestClaimCurrent(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{task("5", 1, "a")}}
	s, _ := newTestSession(backend)
	s.SetAvailableTasks(backend.tasks)
	ctx := context.Background()

	if _, err := s.ClaimCurrent(ctx); !errors.Is(err, ErrNoCurrentTask) {
		t.Fatalf("expected ErrNoCurrentTask, got %v", err)
	}
	if _, err := s.Select("99"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if _, err := s.Select("5"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ClaimCurrent(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Current(); ok {
		t.Error("current task should be cleared after a successful claim")
	}
	if _, err := s.Select("5"); !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("claimed task must not be selectable, got %v", err)
	}
}

func TestCompleteIsIdentityBased(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{task("1", 1, "a"), task("2", 1, "a")}}
	s, _ := newTestSession(backend)
	s.SetAvailableTasks(backend.tasks)
	ctx := context.Background()
	for _, id := range []models.TaskID{"1", "2"} {
		if _, err := s.Claim(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	if _, removed := s.Complete("42"); removed {
		t.Error("unknown id must not remove anything")
	}
	if got := s.ClaimedIDs(); !slices.Equal(got, []models.TaskID{"1", "2"}) {
		t.Errorf("claimed set changed: %v", got)
	}

	if _, removed := s.Complete("2"); !removed {
		t.Error("expected id 2 to be removed")
	}
	if _, removed := s.Complete("2"); removed {
		t.Error("duplicate completion must be a no-op")
	}
	if got := s.ClaimedIDs(); !slices.Equal(got, []models.TaskID{"1"}) {
		t.Errorf("expected [1], got %v", got)
	}
	if got := ids(s.DisplayList(SortDefault)); len(got) != 0 {
		t.Errorf("completed task must not reappear as open, got %v", got)
	}
}

func TestRefreshKeepsClaimedOutOfDisplay(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{task("1", 1, "a"), task("2", 1, "a")}}
	s, _ := newTestSession(backend)
	ctx := context.Background()
	if err := s.RefreshTasks(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Claim(ctx, "1"); err != nil {
		t.Fatal(err)
	}

	// backend still lists the claimed task
	if err := s.RefreshTasks(ctx); err != nil {
		t.Fatal(err)
	}
	if got := ids(s.DisplayList(SortRewardDesc)); !slices.Equal(got, []models.TaskID{"2"}) {
		t.Errorf("expected [2], got %v", got)
	}
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	backend := &fakeBackend{tasks: []models.Task{task("1", 1, "a")}}
	s, p := newTestSession(backend)
	ctx := context.Background()
	if err := s.RefreshTasks(ctx); err != nil {
		t.Fatal(err)
	}

	backend.tasksErr = ErrTransport
	if err := s.RefreshTasks(ctx); !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if got := ids(s.DisplayList(SortDefault)); !slices.Equal(got, []models.TaskID{"1"}) {
		t.Errorf("cache must be unchanged, got %v", got)
	}
	if n := p.lastNotice(); n.msg != "notification.networkError" {
		t.Errorf("unexpected notice %+v", n)
	}
}

func TestResolveTitleOrder(t *testing.T) {
	multi := models.Task{ID: "1", Title: models.MultiText(map[string]string{"en": "Map EN"})}
	table := TitleTable{"1": {"en": "Table EN"}}

	cases := []struct {
		name  string
		table TitleTable
		task  models.Task
		lang  string
		want  string
	}{
		{"table wins", table, multi, "en", "Table EN"},
		{"no title for language", table, multi, "zh", "未知任务"},
		{"map", nil, multi, "en", "Map EN"},
		{"plain", nil, models.Task{ID: "2", Title: models.PlainText("Plain")}, "en", "Plain"},
		{"placeholder", nil, models.Task{ID: "3"}, "en", "Unknown task"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveTitle(tc.table, tc.task, tc.lang); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

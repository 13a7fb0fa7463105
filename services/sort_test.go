package services

import (
	"slices"
	"testing"

	"flowai-dashboard/models"
)

func TestComputeDisplayListRewardDescending(t *testing.T) {
	available := []models.Task{task("1", 1000, "a"), task("2", 2000, "b")}

	got := ids(ComputeDisplayList(available, nil, SortRewardDesc))
	if !slices.Equal(got, []models.TaskID{"2", "1"}) {
		t.Fatalf("expected [2 1], got %v", got)
	}
}

func TestComputeDisplayListExcludesClaimed(t *testing.T) {
	available := []models.Task{task("1", 1000, "a"), task("2", 2000, "b")}
	claimed := map[models.TaskID]struct{}{"1": {}}

	for _, criterion := range []SortCriterion{SortDefault, SortRewardDesc, SortRewardAsc, SortCategory} {
		got := ids(ComputeDisplayList(available, claimed, criterion))
		if !slices.Equal(got, []models.TaskID{"2"}) {
			t.Errorf("%s: expected [2], got %v", criterion, got)
		}
	}
}

func TestComputeDisplayListOrders(t *testing.T) {
	available := []models.Task{
		task("10", 500, "writing"),
		task("2", 900, "analysis"),
		task("7", 500, "analysis"),
		task("3", 900, "writing"),
	}

	cases := map[SortCriterion][]models.TaskID{
		SortDefault:    {"2", "3", "7", "10"},
		SortRewardDesc: {"2", "3", "10", "7"},
		SortRewardAsc:  {"10", "7", "2", "3"},
		SortCategory:   {"2", "7", "10", "3"},
	}
	for criterion, want := range cases {
		got := ids(ComputeDisplayList(available, nil, criterion))
		if !slices.Equal(got, want) {
			t.Errorf("%s: expected %v, got %v", criterion, want, got)
		}
	}
}

func TestComputeDisplayListIsIdempotent(t *testing.T) {
	available := []models.Task{
		task("4", 300, "c"), task("1", 300, "a"), task("9", 100, "c"), task("6", 300, "a"),
	}
	for _, criterion := range []SortCriterion{SortDefault, SortRewardDesc, SortRewardAsc, SortCategory} {
		once := ComputeDisplayList(available, nil, criterion)
		twice := ComputeDisplayList(once, nil, criterion)
		if !slices.Equal(ids(once), ids(twice)) {
			t.Errorf("%s: re-sort changed order %v -> %v", criterion, ids(once), ids(twice))
		}
	}
}

func TestComputeDisplayListDoesNotMutateInput(t *testing.T) {
	available := []models.Task{task("2", 1, "a"), task("1", 2, "b")}
	ComputeDisplayList(available, nil, SortDefault)
	if available[0].ID != "2" {
		t.Error("input slice was reordered")
	}
}

func TestParseSortCriterion(t *testing.T) {
	for in, want := range map[string]SortCriterion{
		"":                  SortDefault,
		"reward-desc":       SortRewardDesc,
		"reward_asc":        SortRewardAsc,
		"Category":          SortCategory,
		"reward-descending": SortRewardDesc,
	} {
		got, err := ParseSortCriterion(in)
		if err != nil || got != want {
			t.Errorf("ParseSortCriterion(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseSortCriterion("random"); err == nil {
		t.Error("expected error for unknown criterion")
	}
}

func TestTaskCacheLoadedFlag(t *testing.T) {
	var cache TaskCache
	if cache.Loaded() {
		t.Fatal("fresh cache must not be loaded")
	}
	cache.SetAvailable(nil)
	if !cache.Loaded() {
		t.Fatal("empty fetch must still mark the cache loaded")
	}
	if got := cache.DisplayList(&ClaimedTaskSet{}, SortDefault); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestTaskCacheReplacesWholesale(t *testing.T) {
	var cache TaskCache
	cache.SetAvailable([]models.Task{task("1", 1, "a"), task("2", 1, "a")})
	cache.SetAvailable([]models.Task{task("3", 1, "a")})

	got := ids(cache.DisplayList(&ClaimedTaskSet{}, SortDefault))
	if !slices.Equal(got, []models.TaskID{"3"}) {
		t.Errorf("expected [3], got %v", got)
	}
}

func TestComputeDisplayListDefaultOrderMixedIDs(t *testing.T) {
	want := []models.TaskID{"9", "10", "1a"}
	for _, order := range [][]models.TaskID{{"1a", "10", "9"}, {"10", "9", "1a"}, {"9", "1a", "10"}} {
		var available []models.Task
		for _, id := range order {
			available = append(available, task(string(id), 100, "a"))
		}
		once := ComputeDisplayList(available, nil, SortDefault)
		if got := ids(once); !slices.Equal(got, want) {
			t.Errorf("from %v: expected %v, got %v", order, want, got)
		}
		if got := ids(ComputeDisplayList(once, nil, SortDefault)); !slices.Equal(got, want) {
			t.Errorf("re-sorting changed the order: %v", got)
		}
	}
}

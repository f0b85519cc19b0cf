package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"animated_gauge/internal/models"
	"animated_gauge/internal/repository"
)

func TestStateMemory_SaveLoad_StampsZeroTime(t *testing.T) {
	repo := repository.NewStateMemory()
	ctx := context.Background()

	before := time.Now().UTC()
	if err := repo.Save(ctx, models.EntityState{EntityID: "sensor.a", State: "12.5"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx, "sensor.a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.State != "12.5" {
		t.Fatalf("state: got %q, want %q", got.State, "12.5")
	}
	if got.LastUpdated.Before(before) || got.LastUpdated.Location() != time.UTC {
		t.Fatalf("last_updated not stamped in UTC: %v", got.LastUpdated)
	}
}

func TestStateMemory_SaveKeepsGivenTimeInUTC(t *testing.T) {
	repo := repository.NewStateMemory()
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	_ = repo.Save(ctx, models.EntityState{EntityID: "sensor.a", State: "1", LastUpdated: at})
	got, _ := repo.Load(ctx, "sensor.a")
	if !got.LastUpdated.Equal(at) || got.LastUpdated.Location() != time.UTC {
		t.Fatalf("got %v, want %v in UTC", got.LastUpdated, at)
	}
}

func TestStateMemory_LoadMissing(t *testing.T) {
	repo := repository.NewStateMemory()
	_, err := repo.Load(context.Background(), "sensor.none")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestStateMemory_ListSorted(t *testing.T) {
	repo := repository.NewStateMemory()
	ctx := context.Background()
	for _, id := range []string{"sensor.c", "sensor.a", "sensor.b"} {
		_ = repo.Save(ctx, models.EntityState{EntityID: id, State: "0"})
	}
	_ = repo.Save(ctx, models.EntityState{EntityID: "sensor.a", State: "5"})

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len: got %d, want 3", len(list))
	}
	for i, want := range []string{"sensor.a", "sensor.b", "sensor.c"} {
		if list[i].EntityID != want {
			t.Fatalf("list[%d]: got %q, want %q", i, list[i].EntityID, want)
		}
	}
	if list[0].State != "5" {
		t.Fatalf("latest snapshot not kept: %q", list[0].State)
	}
}

func TestStateMemory_CanceledContext(t *testing.T) {
	repo := repository.NewStateMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.Save(ctx, models.EntityState{EntityID: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

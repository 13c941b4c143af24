package retention

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mercator-hq/folio/pkg/config"
	"mercator-hq/folio/pkg/journal"
	"mercator-hq/folio/pkg/journal/storage"
)

type fakeRecorder struct {
	runs    int
	deleted int64
}

func (r *fakeRecorder) RecordPrune(deleted int64, _ time.Duration) {
	r.runs++
	r.deleted += deleted
}

func storeAged(t *testing.T, store journal.Storage, now time.Time, ages ...int) {
	t.Helper()
	for i, days := range ages {
		r := &journal.Record{
			ID:        fmt.Sprintf("r%d", i),
			Time:      now.AddDate(0, 0, -days),
			Operation: "insert",
		}
		if err := store.Store(context.Background(), r); err != nil {
			t.Fatalf("Store() failed: %v", err)
		}
	}
}

func TestPruner_Prune(t *testing.T) {
	now := time.Date(2026, 5, 10, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		cfg         config.RetentionConfig
		ages        []int
		wantDeleted int64
		wantLeft    int64
	}{
		{name: "by age", cfg: config.RetentionConfig{Days: 7}, ages: []int{10, 8, 5, 3}, wantDeleted: 2, wantLeft: 2},
		{name: "forever", cfg: config.RetentionConfig{}, ages: []int{400, 1}, wantDeleted: 0, wantLeft: 2},
		{name: "by count", cfg: config.RetentionConfig{MaxRecords: 2}, ages: []int{4, 3, 2, 1}, wantDeleted: 2, wantLeft: 2},
		{name: "under count", cfg: config.RetentionConfig{MaxRecords: 10}, ages: []int{4, 3}, wantDeleted: 0, wantLeft: 2},
		{name: "age then count", cfg: config.RetentionConfig{Days: 5, MaxRecords: 1}, ages: []int{9, 4, 3, 2}, wantDeleted: 3, wantLeft: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStorage()
			storeAged(t, store, now, tt.ages...)

			rec := &fakeRecorder{}
			pruner := NewPruner(store, tt.cfg, nil).WithRecorder(rec)
			pruner.now = func() time.Time { return now }

			deleted, err := pruner.Prune(context.Background())
			if err != nil {
				t.Fatalf("Prune() failed: %v", err)
			}
			if deleted != tt.wantDeleted {
				t.Errorf("Prune() = %d, want %d", deleted, tt.wantDeleted)
			}
			left, _ := store.Count(context.Background(), nil)
			if left != tt.wantLeft {
				t.Errorf("records left = %d, want %d", left, tt.wantLeft)
			}
			if rec.runs != 1 || rec.deleted != tt.wantDeleted {
				t.Errorf("recorder saw runs=%d deleted=%d", rec.runs, rec.deleted)
			}
		})
	}
}

func TestPruner_KeepsNewestByCount(t *testing.T) {
	now := time.Date(2026, 5, 10, 3, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStorage()
	storeAged(t, store, now, 4, 3, 2, 1)

	pruner := NewPruner(store, config.RetentionConfig{MaxRecords: 1}, nil)
	if _, err := pruner.Prune(context.Background()); err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}

	left, _ := store.Query(context.Background(), nil)
	if len(left) != 1 || left[0].ID != "r3" {
		t.Errorf("left = %v, want only r3", left)
	}
}

func TestScheduler_Lifecycle(t *testing.T) {
	store := storage.NewMemoryStorage()
	pruner := NewPruner(store, config.RetentionConfig{Days: 1, Schedule: "0 3 * * *"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !pruner.scheduler.IsRunning() {
		t.Fatal("scheduler should be running")
	}
	next := pruner.NextPruning()
	if next == nil || next.Hour() != 3 {
		t.Errorf("NextPruning() = %v, want a 03:00 run", next)
	}
	if err := pruner.Start(ctx); err == nil {
		t.Error("second Start() should fail")
	}

	pruner.Stop()
	if pruner.scheduler.IsRunning() {
		t.Error("scheduler should be stopped")
	}
	if pruner.NextPruning() != nil {
		t.Error("NextPruning() should be nil once stopped")
	}
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	pruner := NewPruner(storage.NewMemoryStorage(), config.RetentionConfig{Schedule: "*/5 * * * *"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for pruner.scheduler.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("scheduler still running after context cancel")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestScheduler_Schedules(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
		running  bool
	}{
		{name: "empty", schedule: "", running: false},
		{name: "invalid", schedule: "every day", wantErr: true},
		{name: "valid", schedule: "0 */6 * * *", running: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pruner := NewPruner(storage.NewMemoryStorage(), config.RetentionConfig{Schedule: tt.schedule}, nil)
			err := pruner.Start(context.Background())
			defer pruner.Stop()

			if (err != nil) != tt.wantErr {
				t.Fatalf("Start() error = %v, wantErr %v", err, tt.wantErr)
			}
			if pruner.scheduler.IsRunning() != tt.running {
				t.Errorf("IsRunning() = %v, want %v", pruner.scheduler.IsRunning(), tt.running)
			}
		})
	}
}

package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/petconnect/activities-api/internal/core/domain"
)

type recordingAuditRepo struct {
	mu      sync.Mutex
	records []domain.EnrollmentRecord
	failOn  string
}

func (r *recordingAuditRepo) InsertEnrollment(_ context.Context, rec domain.EnrollmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn != "" && rec.ActivityID == r.failOn {
		return errors.New("write failed")
	}
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingAuditRepo) snapshot() []domain.EnrollmentRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EnrollmentRecord, len(r.records))
	copy(out, r.records)
	return out
}

func waitForRecords(t *testing.T, repo *recordingAuditRepo, want int) []domain.EnrollmentRecord {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := repo.snapshot(); len(got) >= want {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d records, have %d", want, len(repo.snapshot()))
	return nil
}

func TestDispatcher_PersistsRecords(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &recordingAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(ctx)

	rec := domain.EnrollmentRecord{
		ActivityID: "act-1",
		AccountID:  "acc-1",
		SignupTime: "10:00:00",
		RecordedAt: time.Now(),
	}
	d.Enqueue(rec)

	got := waitForRecords(t, repo, 1)
	if got[0].ActivityID != "act-1" || got[0].AccountID != "acc-1" {
		t.Fatalf("unexpected record: %+v", got[0])
	}
}

func TestDispatcher_PreservesOrderPerActivity(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &recordingAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	d.Start(ctx)

	const total = 20
	for i := 0; i < total; i++ {
		d.Enqueue(domain.EnrollmentRecord{
			ActivityID: "act-1",
			AccountID:  fmt.Sprintf("acc-%d", i),
		})
	}

	got := waitForRecords(t, repo, total)
	for i := 0; i < total; i++ {
		if want := fmt.Sprintf("acc-%d", i); got[i].AccountID != want {
			t.Fatalf("record %d out of order: expected %s, got %s", i, want, got[i].AccountID)
		}
	}
}

func TestDispatcher_ShardingIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &recordingAuditRepo{}, zerolog.Nop())

	for _, id := range []string{"act-1", "act-2", "zzz"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard for %q changed: %d vs %d", id, first, got)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("shard for %q out of range: %d", id, first)
		}
	}
}

func TestDispatcher_ContinuesAfterWriteFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &recordingAuditRepo{failOn: "act-bad"}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(domain.EnrollmentRecord{ActivityID: "act-bad", AccountID: "acc-1"})
	d.Enqueue(domain.EnrollmentRecord{ActivityID: "act-ok", AccountID: "acc-2"})

	got := waitForRecords(t, repo, 1)
	if got[0].ActivityID != "act-ok" {
		t.Fatalf("expected the failed write to be skipped, got %+v", got)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingAuditRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

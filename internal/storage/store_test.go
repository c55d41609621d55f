package storage

import (
	"testing"
	"time"

	"github.com/yourorg/hr-field-resolver/internal/ingest"
)

func TestStoreAndRetrieve(t *testing.T) {
	s := New(time.Hour)
	table := &ingest.Table{Headers: []string{"a"}, Rows: [][]string{{"1"}}}
	meta := &ingest.ParseMetadata{RowCount: 1}

	id := s.Store(table, meta)
	got, gotMeta, err := s.Retrieve(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != table || gotMeta != meta {
		t.Error("expected retrieved table/meta to be the stored pointers")
	}
}

func TestRetrieveUnknownFails(t *testing.T) {
	s := New(time.Hour)
	_, _, err := s.Retrieve("does-not-exist")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCleanupExpiredRemovesStaleEntries(t *testing.T) {
	s := New(1 * time.Millisecond)
	table := &ingest.Table{Headers: []string{"a"}}
	id := s.Store(table, &ingest.ParseMetadata{})

	time.Sleep(5 * time.Millisecond)
	s.cleanupExpired()

	if _, _, err := s.Retrieve(id); err != ErrNotFound {
		t.Errorf("expected entry to be expired, got err=%v", err)
	}
}

func TestDeleteRemovesEntry(t *testing.T) {
	s := New(time.Hour)
	id := s.Store(&ingest.Table{}, &ingest.ParseMetadata{})
	s.Delete(id)
	if _, _, err := s.Retrieve(id); err != ErrNotFound {
		t.Errorf("expected deleted entry to be gone, got err=%v", err)
	}
}

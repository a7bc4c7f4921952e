package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdelacruz/newscred/internal/model"
)

// DiskStore persists verdicts as JSON files, one per analysis. Record ids
// are sortable by save time so listing newest-first is a name sort.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a disk store rooted at dir
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Save writes the verdict to disk and returns its record id
func (s *DiskStore) Save(ctx context.Context, verdict *model.CredibilityVerdict, requesterID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := newRecordID()
	record := Record{ID: id, RequesterID: requesterID, Verdict: verdict}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create store dir: %w", err)
	}

	if err := os.WriteFile(s.path(id), data, 0644); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}

	return id, nil
}

// Get loads a verdict by record id
func (s *DiskStore) Get(ctx context.Context, id string) (*model.CredibilityVerdict, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validRecordID(id) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return record.Verdict, nil
}

// List returns the most recent records for a requester, newest first
func (s *DiskStore) List(ctx context.Context, requesterID string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var records []Record
	for _, name := range names {
		if limit > 0 && len(records) >= limit {
			break
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var record Record
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		if requesterID != "" && record.RequesterID != requesterID {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *DiskStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// newRecordID builds a time-prefixed id so lexical order matches save order
func newRecordID() string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return time.Now().UTC().Format("20060102T150405") + "-" + hex.EncodeToString(suffix)
}

// validRecordID rejects ids that could escape the store directory
func validRecordID(id string) bool {
	if id == "" || strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return false
	}
	return true
}

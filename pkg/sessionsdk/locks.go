package sessionsdk

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LastAttemptStore records when any coordinator last attempted a refresh.
// It is the advisory cross-process lock: readers and writers are not atomic
// with respect to each other, and that is fine. A lost race costs one
// redundant refresh call, which the server handles idempotently.
type LastAttemptStore interface {
	Last() (time.Time, error)
	Touch(t time.Time) error
}

// MemoryLastAttempt keeps the timestamp in-process. Suitable when only one
// coordinator exists.
type MemoryLastAttempt struct {
	mu   sync.Mutex
	last time.Time
}

func (m *MemoryLastAttempt) Last() (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, nil
}

func (m *MemoryLastAttempt) Touch(t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = t
	return nil
}

// FileLastAttempt shares the timestamp between processes through a small
// file, the way browser tabs share it through local storage. The file holds
// a unix-seconds integer.
type FileLastAttempt struct {
	Path string
}

func (f *FileLastAttempt) Last() (time.Time, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}

	sec, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		// A corrupt file reads as "never attempted" so the lock can
		// recover by being rewritten.
		return time.Time{}, nil
	}
	return time.Unix(sec, 0), nil
}

func (f *FileLastAttempt) Touch(t time.Time) error {
	return os.WriteFile(f.Path, []byte(strconv.FormatInt(t.Unix(), 10)), 0o644)
}

package game

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ErrExcludePersist reports that an exclusion toggle could not be written to
// disk. When it is returned the in-memory set has been rolled back, so the
// caller must not acknowledge the toggle.
var ErrExcludePersist = errors.New("failed to persist exclusion list")

// PersistentExclude is the set of users who opted out of the game. Membership
// is persisted as a flat file of user IDs, one per line, sorted ascending and
// rewritten in full on every toggle.
type PersistentExclude struct {
	path string

	mu     sync.Mutex
	values map[int64]struct{}
}

// LoadExclude reads the exclusion list from path. A missing or unreadable
// file is not fatal: the set is reinitialized empty and written back out, so
// a corrupt file heals itself on startup.
func LoadExclude(path string) *PersistentExclude {
	e := &PersistentExclude{path: path, values: make(map[int64]struct{})}
	if err := e.load(); err != nil {
		log.Printf("Warning: could not read exclusion list %s, reinitializing: %v", path, err)
		e.values = make(map[int64]struct{})
		if saveErr := e.save(); saveErr != nil {
			log.Printf("Error writing fresh exclusion list %s: %v", path, saveErr)
		}
	}
	return e
}

func (e *PersistentExclude) load() error {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return fmt.Errorf("bad entry %q: %w", line, err)
		}
		e.values[id] = struct{}{}
	}
	return nil
}

// save rewrites the whole file. The caller must hold the lock, except during
// construction.
func (e *PersistentExclude) save() error {
	ids := make([]int64, 0, len(e.values))
	for id := range e.values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := make([]string, len(ids))
	for i, id := range ids {
		lines[i] = strconv.FormatInt(id, 10)
	}
	return os.WriteFile(e.path, []byte(strings.Join(lines, "\n")), 0644)
}

// Toggle flips membership for user and persists the result before reporting
// it. It returns true when the user is now excluded. If the write fails the
// previous set is restored and ErrExcludePersist is returned.
func (e *PersistentExclude) Toggle(user int64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old := e.values
	next := make(map[int64]struct{}, len(old)+1)
	for id := range old {
		next[id] = struct{}{}
	}
	_, present := next[user]
	if present {
		delete(next, user)
	} else {
		next[user] = struct{}{}
	}

	e.values = next
	if err := e.save(); err != nil {
		e.values = old
		return present, fmt.Errorf("%w: %v", ErrExcludePersist, err)
	}
	return !present, nil
}

// Contains reports whether user has opted out.
func (e *PersistentExclude) Contains(user int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.values[user]
	return ok
}

// Len returns the number of excluded users.
func (e *PersistentExclude) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.values)
}

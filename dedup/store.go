// Package dedup persists the set of already-published thread keys, one
// append-only newline-delimited file per platform. The file is the source
// of truth across runs; a key is appended only after a confirmed publish,
// so a crash can at worst cause a republish (at-least-once), never a loss.
package dedup

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	Logger "github.com/boardcast/boardcast/utils/log"
)

// Set is the in-memory view of one platform's publish history.
type Set map[string]struct{}

func (s Set) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Store reads and appends per-platform published-key files under a single
// directory. Appends are issued from the orchestrator's collection point
// only, so no in-run write locking is needed.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) fileFor(platform string) string {
	return filepath.Join(s.dir, fmt.Sprintf("published_%s.txt", platform))
}

// LoadedIds returns all keys previously recorded for the platform. A missing
// file means no publish history yet; a read failure is logged and treated
// the same, which can only cause republishing, never lost history.
func (s *Store) LoadedIds(platform string) Set {
	set := Set{}

	f, err := os.Open(s.fileFor(platform))
	if err != nil {
		if !os.IsNotExist(err) {
			Logger.Log.Warnf("fail to open published keys for %s: %v", platform, err)
		}
		return set
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		set[line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		Logger.Log.Warnf("fail to read published keys for %s: %v", platform, err)
	}
	return set
}

// Record durably appends one key to the platform's file, creating it if
// absent. The append is flushed before returning so the entry survives
// process exit.
func (s *Store) Record(platform, key string) error {
	f, err := os.OpenFile(s.fileFor(platform), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "fail to open published keys for %s", platform)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, key); err != nil {
		return errors.Wrapf(err, "fail to append published key for %s", platform)
	}
	return f.Sync()
}

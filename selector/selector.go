// Package selector decides which fetched threads still need publishing,
// and to which platforms.
package selector

import (
	"time"

	"github.com/boardcast/boardcast/dedup"
	"github.com/boardcast/boardcast/model"
	Logger "github.com/boardcast/boardcast/utils/log"
)

// Eligible pairs a thread with the platforms it has not been published to
// yet.
type Eligible struct {
	Thread    model.Thread
	Platforms []string
}

// Select filters threads in feed order. A thread younger than minAge, or
// sticky, or locked, is skipped for all platforms. Otherwise each platform
// is checked against its own publish history independently; a thread can be
// fresh on one platform and already published on another. Threads with no
// remaining platform are dropped.
func Select(threads []model.Thread, now time.Time, minAge time.Duration, published map[string]dedup.Set) []Eligible {
	eligible := []Eligible{}

	for _, t := range threads {
		if t.Age(now) < minAge {
			Logger.Log.Infof("thread %s is younger than %s, skipping", t.Key(), minAge)
			continue
		}
		if t.Sticky || t.Locked {
			Logger.Log.Infof("skipping thread %s. sticky: %v, locked: %v", t.Key(), t.Sticky, t.Locked)
			continue
		}

		platforms := []string{}
		for platform, set := range published {
			if set.Contains(t.Key()) {
				Logger.Log.Infof("thread %s already published on %s, skipping", t.Key(), platform)
				continue
			}
			platforms = append(platforms, platform)
		}
		if len(platforms) == 0 {
			continue
		}

		eligible = append(eligible, Eligible{Thread: t, Platforms: platforms})
	}
	return eligible
}

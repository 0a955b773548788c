// Package engine ties one run together: fetch the feed, select eligible
// threads, format them, fan out to every enabled platform, and record the
// confirmed publishes. The process is invoked on an external schedule; one
// Engine instance performs exactly one run.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/boardcast/boardcast/dedup"
	"github.com/boardcast/boardcast/formatter"
	"github.com/boardcast/boardcast/model"
	"github.com/boardcast/boardcast/publisher"
	"github.com/boardcast/boardcast/selector"
	Logger "github.com/boardcast/boardcast/utils/log"
)

// ThreadSource produces the raw threads for a run.
type ThreadSource interface {
	FetchThreads() ([]model.Thread, error)
}

// RecordStore is the dedup surface the engine needs.
type RecordStore interface {
	LoadedIds(platform string) dedup.Set
	Record(platform, key string) error
}

type Engine struct {
	Source     ThreadSource
	Store      RecordStore
	Formatter  *formatter.Formatter
	Publishers []publisher.Publisher

	MinThreadAge time.Duration

	// Now is overridable for tests.
	Now func() time.Time
}

func NewEngine(source ThreadSource, store RecordStore, f *formatter.Formatter, publishers []publisher.Publisher, minThreadAge time.Duration) *Engine {
	return &Engine{
		Source:       source,
		Store:        store,
		Formatter:    f,
		Publishers:   publishers,
		MinThreadAge: minThreadAge,
		Now:          time.Now,
	}
}

// Run performs one fetch-select-publish-record cycle. A feed failure ends
// the run cleanly with nothing mutated; per-item publish failures only skip
// that item's dedup record so the next cycle retries it.
func (e *Engine) Run(ctx context.Context) {
	log := Logger.Log.WithFields(logrus.Fields{"run": uuid.New().String()[:8]})

	published := map[string]dedup.Set{}
	byName := map[string]publisher.Publisher{}
	for _, p := range e.Publishers {
		published[p.Name()] = e.Store.LoadedIds(p.Name())
		byName[p.Name()] = p
	}

	threads, err := e.Source.FetchThreads()
	if err != nil {
		log.Errorf("fail to fetch board feed, nothing to do this cycle: %v", err)
		return
	}
	log.Infof("fetched %d threads", len(threads))

	eligible := selector.Select(threads, e.Now(), e.MinThreadAge, published)
	if len(eligible) == 0 {
		log.Info("no eligible threads this cycle")
		return
	}

	// One publish per (thread, platform) pair, all independent. Outcomes
	// funnel back to this goroutine, which is the single append path into
	// the dedup store.
	var wg sync.WaitGroup
	outcomes := make(chan model.Outcome, len(eligible)*len(e.Publishers))

	for _, item := range eligible {
		msg := e.Formatter.Format(item.Thread)
		for _, platform := range item.Platforms {
			pub := byName[platform]
			wg.Add(1)
			go func(pub publisher.Publisher, msg model.Message, key string) {
				defer wg.Done()
				err := pub.Publish(ctx, msg)
				if err != nil {
					log.Errorf("fail to publish %s on %s: %v", key, pub.Name(), err)
				}
				outcomes <- model.Outcome{Platform: pub.Name(), Key: key, Succeeded: err == nil}
			}(pub, msg, item.Thread.Key())
		}
	}

	wg.Wait()
	close(outcomes)

	succeeded := 0
	for outcome := range outcomes {
		if !outcome.Succeeded {
			continue
		}
		succeeded++
		if err := e.Store.Record(outcome.Platform, outcome.Key); err != nil {
			// unrecorded keys republish next cycle, which is the intended
			// at-least-once behavior
			log.Warnf("fail to record %s for %s: %v", outcome.Key, outcome.Platform, err)
		}
	}
	log.Infof("run complete, %d publishes succeeded", succeeded)
}

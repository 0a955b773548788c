package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/boardcast/boardcast/dedup"
	"github.com/boardcast/boardcast/formatter"
	"github.com/boardcast/boardcast/model"
	"github.com/boardcast/boardcast/publisher"
)

var testNow = time.Unix(1700000000, 0)

type fakeSource struct {
	threads []model.Thread
	err     error
}

func (s *fakeSource) FetchThreads() ([]model.Thread, error) {
	return s.threads, s.err
}

// fakeStore keeps recorded keys in memory, mimicking the append-only file
// store.
type fakeStore struct {
	mu       sync.Mutex
	recorded map[string][]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{recorded: map[string][]string{}}
}

func (s *fakeStore) LoadedIds(platform string) dedup.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := dedup.Set{}
	for _, key := range s.recorded[platform] {
		set[key] = struct{}{}
	}
	return set
}

func (s *fakeStore) Record(platform, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorded[platform] = append(s.recorded[platform], key)
	return nil
}

type fakePublisher struct {
	name string
	fail bool

	mu        sync.Mutex
	published []string
}

func (p *fakePublisher) Name() string {
	return p.name
}

func (p *fakePublisher) Publish(ctx context.Context, msg model.Message) error {
	p.mu.Lock()
	p.published = append(p.published, msg.Text)
	p.mu.Unlock()
	if p.fail {
		return errors.New("remote call failed")
	}
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func newTestEngine(source ThreadSource, store RecordStore, pubs ...publisher.Publisher) *Engine {
	e := NewEngine(
		source,
		store,
		formatter.NewFormatter("New post on /{board}/: {sub} {com}...", "https://example.net", 150),
		pubs,
		3*time.Hour,
	)
	e.Now = func() time.Time { return testNow }
	return e
}

func oldThread(id int64) model.Thread {
	return model.Thread{
		Id:        id,
		Board:     "b",
		BodyHtml:  "some content",
		CreatedAt: testNow.Add(-5 * time.Hour).Unix(),
	}
}

func TestRunPublishesAndRecords(t *testing.T) {
	store := newFakeStore()
	twitter := &fakePublisher{name: "twitter"}
	bluesky := &fakePublisher{name: "bluesky"}
	source := &fakeSource{threads: []model.Thread{oldThread(1), oldThread(2)}}

	newTestEngine(source, store, twitter, bluesky).Run(context.Background())

	assert.Equal(t, 2, twitter.count())
	assert.Equal(t, 2, bluesky.count())
	assert.ElementsMatch(t, []string{"b:1", "b:2"}, store.recorded["twitter"])
	assert.ElementsMatch(t, []string{"b:1", "b:2"}, store.recorded["bluesky"])
}

func TestRunFailedPublishIsNotRecorded(t *testing.T) {
	store := newFakeStore()
	twitter := &fakePublisher{name: "twitter", fail: true}
	bluesky := &fakePublisher{name: "bluesky"}
	source := &fakeSource{threads: []model.Thread{oldThread(1)}}

	newTestEngine(source, store, twitter, bluesky).Run(context.Background())

	// one platform failing never blocks the other
	assert.Equal(t, 1, twitter.count())
	assert.Equal(t, 1, bluesky.count())
	assert.Empty(t, store.recorded["twitter"])
	assert.Equal(t, []string{"b:1"}, store.recorded["bluesky"])
}

func TestRunFetchFailureAbortsCleanly(t *testing.T) {
	store := newFakeStore()
	twitter := &fakePublisher{name: "twitter"}
	source := &fakeSource{err: errors.New("connection refused")}

	newTestEngine(source, store, twitter).Run(context.Background())

	assert.Zero(t, twitter.count())
	assert.Empty(t, store.recorded)
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	store := newFakeStore()
	twitter := &fakePublisher{name: "twitter"}
	source := &fakeSource{threads: []model.Thread{oldThread(1), oldThread(2)}}

	newTestEngine(source, store, twitter).Run(context.Background())
	assert.Equal(t, 2, twitter.count())

	// same feed again, everything already recorded
	newTestEngine(source, store, twitter).Run(context.Background())
	assert.Equal(t, 2, twitter.count())
}

func TestRunSkipsStickyAndYoungThreads(t *testing.T) {
	store := newFakeStore()
	twitter := &fakePublisher{name: "twitter"}

	sticky := oldThread(1)
	sticky.Sticky = true
	young := oldThread(2)
	young.CreatedAt = testNow.Add(-time.Hour).Unix()
	source := &fakeSource{threads: []model.Thread{sticky, young, oldThread(3)}}

	newTestEngine(source, store, twitter).Run(context.Background())

	assert.Equal(t, 1, twitter.count())
	assert.Equal(t, []string{"b:3"}, store.recorded["twitter"])
}

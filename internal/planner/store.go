// Package planner owns the user's trick collections: the in-memory
// snapshot, its persistence to a blob store, and every mutation the
// application performs on it.
package planner

import (
	"encoding/json"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/asteroid-belt/trickplanner/internal/log"
	"github.com/asteroid-belt/trickplanner/internal/models"
)

// BlobStore persists opaque collection blobs under fixed keys.
type BlobStore interface {
	// Load returns the blob for key. ok is false when nothing is stored.
	Load(key string) (data []byte, ok bool, err error)
	Save(key string, data []byte) error
}

// BatchSaver is implemented by blob stores that can write several blobs
// at once, all or none.
type BatchSaver interface {
	SaveAll(blobs map[string][]byte) error
}

// Notifier is told after every local mutation that changed persisted state.
type Notifier interface {
	ScheduleSync()
}

// ApplyMode says where a wholesale snapshot replacement came from.
type ApplyMode int

const (
	// ApplyLocally is a user-initiated replacement such as an import. The
	// notifier is told so the result gets pushed.
	ApplyLocally ApplyMode = iota
	// ApplyFromRemote is the result of a pull. The notifier is not told.
	ApplyFromRemote
)

// Store is the single owner of the snapshot. All methods are safe for
// concurrent use; one mutex serializes every read and write.
type Store struct {
	mu       sync.Mutex
	blobs    BlobStore
	notifier Notifier
	loc      *time.Location
	rng      *rand.Rand
	now      func() time.Time
	sort     *sorter

	categories []string
	tricks     []models.Trick
	templates  []models.TrainingTemplate
	challenges []models.Challenge
	plans      []models.DailyTrainingPlan
}

// Option configures a Store.
type Option func(*Store)

// WithLocation sets the time zone used to decide calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithRand sets the random source for combo generation.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithNotifier registers the mutation observer.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		s.notifier = n
	}
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New loads every collection from blobs and seeds the missing ones.
// Seeded defaults are kept in memory only until the first mutation.
func New(blobs BlobStore, opts ...Option) *Store {
	s := &Store{
		blobs: blobs,
		loc:   time.Local,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:   time.Now,
		sort:  newSorter(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	s.loadLocked(false)
	s.mu.Unlock()
	return s
}

// SetNotifier replaces the mutation observer.
func (s *Store) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Location returns the time zone used for calendar days.
func (s *Store) Location() *time.Location {
	return s.loc
}

// Today returns the start of the current day.
func (s *Store) Today() time.Time {
	return startOfDay(s.now(), s.loc)
}

// Reload re-reads every collection from the blob store. Unlike the first
// load, a stored empty trick list stays empty. The notifier is not told.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(true)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.Snapshot{
		Categories:    slices.Clone(s.categories),
		Tricks:        slices.Clone(s.tricks),
		Templates:     make([]models.TrainingTemplate, 0, len(s.templates)),
		Challenges:    make([]models.Challenge, 0, len(s.challenges)),
		TrainingPlans: make([]models.DailyTrainingPlan, 0, len(s.plans)),
	}
	for _, t := range s.templates {
		snap.Templates = append(snap.Templates, cloneTemplate(t))
	}
	for _, c := range s.challenges {
		snap.Challenges = append(snap.Challenges, cloneChallenge(c))
	}
	for _, p := range s.plans {
		snap.TrainingPlans = append(snap.TrainingPlans, clonePlan(p))
	}
	snap.Normalize()
	return snap
}

// ApplySnapshot replaces the state wholesale. Categories are kept when
// snap carries none. Every collection is persisted; the notifier is told
// only for ApplyLocally.
func (s *Store) ApplySnapshot(snap models.Snapshot, mode ApplyMode) {
	s.mu.Lock()
	if len(snap.Categories) > 0 {
		s.categories = slices.Clone(snap.Categories)
	}
	s.categories = ensureUncategorized(s.categories)
	slices.Sort(s.categories)

	s.tricks = slices.Clone(snap.Tricks)
	s.templates = s.templates[:0:0]
	for _, t := range snap.Templates {
		s.templates = append(s.templates, cloneTemplate(t))
	}
	s.challenges = s.challenges[:0:0]
	for _, c := range snap.Challenges {
		s.challenges = append(s.challenges, cloneChallenge(c))
	}
	s.plans = s.plans[:0:0]
	for _, p := range snap.TrainingPlans {
		s.plans = append(s.plans, clonePlan(p))
	}
	s.normalizeLocked()
	s.persistLocked(models.AllBlobKeys()...)
	notifier := s.notifier
	s.mu.Unlock()

	if mode == ApplyLocally && notifier != nil {
		notifier.ScheduleSync()
	}
}

// mutate runs fn under the lock. When fn succeeds and reports touched
// collections, they are persisted before the lock is released and the
// notifier is told afterwards.
func (s *Store) mutate(fn func() ([]string, error)) error {
	s.mu.Lock()
	touched, err := fn()
	changed := err == nil && len(touched) > 0
	if changed {
		s.persistLocked(touched...)
	}
	notifier := s.notifier
	s.mu.Unlock()

	if changed && notifier != nil {
		notifier.ScheduleSync()
	}
	return err
}

func (s *Store) loadLocked(reload bool) {
	tricks := loadCollection[models.Trick](s.blobs, models.BlobTricks)
	categories := loadCollection[string](s.blobs, models.BlobCategories)

	// Nothing stored yet is always seeded.
	if tricks == nil || (len(tricks) == 0 && !reload) {
		tricks = SampleTricks()
	}
	if len(categories) == 0 {
		categories = mergeCategories(DefaultCategories, tricks)
	}

	s.tricks = tricks
	s.categories = ensureUncategorized(categories)
	s.challenges = loadCollection[models.Challenge](s.blobs, models.BlobChallenges)
	s.plans = loadCollection[models.DailyTrainingPlan](s.blobs, models.BlobTrainingPlans)
	s.templates = loadCollection[models.TrainingTemplate](s.blobs, models.BlobTrainingTemplates)
	s.normalizeLocked()
}

// normalizeLocked restores sort orders and replaces nil slices so every
// collection encodes as a JSON array.
func (s *Store) normalizeLocked() {
	if s.categories == nil {
		s.categories = []string{}
	}
	if s.tricks == nil {
		s.tricks = []models.Trick{}
	}
	if s.templates == nil {
		s.templates = []models.TrainingTemplate{}
	}
	if s.challenges == nil {
		s.challenges = []models.Challenge{}
	}
	if s.plans == nil {
		s.plans = []models.DailyTrainingPlan{}
	}
	for i := range s.templates {
		if s.templates[i].Items == nil {
			s.templates[i].Items = []models.TrainingTemplateItem{}
		}
	}
	for i := range s.challenges {
		s.challenges[i].Date = s.challenges[i].Date.In(s.loc)
		if s.challenges[i].Combo == nil {
			s.challenges[i].Combo = []models.Trick{}
		}
	}
	for i := range s.templates {
		for j := range s.templates[i].Items {
			item := &s.templates[i].Items[j]
			item.TargetCount = max(item.TargetCount, 1)
		}
	}
	s.plans = mergePlans(s.plans, s.loc)

	s.sort.tricks(s.tricks)
	s.sort.templates(s.templates)
	sortChallenges(s.challenges)
	sortPlans(s.plans)
}

// persistLocked writes the named collections. Failures are logged and
// otherwise ignored. Writing tricks re-merges their categories first.
func (s *Store) persistLocked(keys ...string) {
	if slices.Contains(keys, models.BlobTricks) {
		s.categories = mergeCategories(s.categories, s.tricks)
		if !slices.Contains(keys, models.BlobCategories) {
			keys = append(keys, models.BlobCategories)
		}
	}

	encoded := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if _, ok := encoded[key]; ok {
			continue
		}

		var value any
		switch key {
		case models.BlobTricks:
			value = s.tricks
		case models.BlobCategories:
			value = s.categories
		case models.BlobChallenges:
			value = s.challenges
		case models.BlobTrainingPlans:
			value = s.plans
		case models.BlobTrainingTemplates:
			value = s.templates
		default:
			continue
		}

		data, err := json.Marshal(value)
		if err != nil {
			log.Errorf("encode %s: %v", key, err)
			continue
		}
		encoded[key] = data
	}

	if batch, ok := s.blobs.(BatchSaver); ok && len(encoded) > 1 {
		if err := batch.SaveAll(encoded); err != nil {
			log.Errorf("save %d collections: %v", len(encoded), err)
		}
		return
	}
	for key, data := range encoded {
		if err := s.blobs.Save(key, data); err != nil {
			log.Errorf("save %s: %v", key, err)
		}
	}
}

func loadCollection[T any](blobs BlobStore, key string) []T {
	data, ok, err := blobs.Load(key)
	if err != nil {
		log.Errorf("load %s: %v", key, err)
		return nil
	}
	if !ok || len(data) == 0 {
		return nil
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		log.Errorf("decode %s: %v", key, err)
		return nil
	}
	return out
}

func cloneTemplate(t models.TrainingTemplate) models.TrainingTemplate {
	t.Items = slices.Clone(t.Items)
	return t
}

func cloneChallenge(c models.Challenge) models.Challenge {
	c.Combo = slices.Clone(c.Combo)
	return c
}

func clonePlan(p models.DailyTrainingPlan) models.DailyTrainingPlan {
	items := make([]models.TrainingItem, len(p.Items))
	for i, item := range p.Items {
		if item.TemplateID != nil {
			id := *item.TemplateID
			item.TemplateID = &id
		}
		items[i] = item
	}
	p.Items = items
	p.AppliedTemplateIDs = slices.Clone(p.AppliedTemplateIDs)
	return p
}

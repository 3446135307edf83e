package pipeline

import (
	"sync"
	"time"

	"github.com/crepdde/pddepack/internal/dossier"
	"github.com/oklog/ulid/v2"
)

// Stage is the batch state machine. No stage is re-entrant within one run.
type Stage string

const (
	StageReceived   Stage = "received"
	StageExtracted  Stage = "extracted"
	StageClassified Stage = "classified"
	StageGrouped    Stage = "grouped_merged"
	StageGenerated  Stage = "generated"
	StagePackaged   Stage = "packaged"
	StageDelivered  Stage = "delivered"
	StageFailed     Stage = "failed"
)

// Batch tracks one pipeline run from upload to delivery. Documents and
// result live in memory until the store's TTL evicts them.
type Batch struct {
	mu sync.Mutex

	ID          string
	StrictFacts bool

	stage      Stage
	failStage  Stage
	failReason string

	CreatedAt time.Time
	updatedAt time.Time

	docs     []*dossier.InputDocument
	warnings []dossier.Warning
	result   *dossier.Result
}

// NewBatch wraps the uploaded documents in a queued batch with a fresh ULID.
func NewBatch(docs []*dossier.InputDocument, strict bool) *Batch {
	now := time.Now()
	return &Batch{
		ID:          ulid.Make().String(),
		StrictFacts: strict,
		stage:       StageReceived,
		CreatedAt:   now,
		updatedAt:   now,
		docs:        docs,
	}
}

func (b *Batch) Docs() []*dossier.InputDocument {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.docs
}

// SetStage advances the state machine.
func (b *Batch) SetStage(stage Stage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stage = stage
	b.updatedAt = time.Now()
}

// Fail moves the batch to the terminal failed state, recording which stage
// broke and why.
func (b *Batch) Fail(stage Stage, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stage = StageFailed
	b.failStage = stage
	b.failReason = reason
	b.updatedAt = time.Now()
}

func (b *Batch) AddWarning(w dossier.Warning) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.warnings = append(b.warnings, w)
	b.updatedAt = time.Now()
}

func (b *Batch) Warnings() []dossier.Warning {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]dossier.Warning, len(b.warnings))
	copy(out, b.warnings)
	return out
}

// SetResult records the terminal result and releases the input documents.
func (b *Batch) SetResult(r *dossier.Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.result = r
	b.docs = nil
	b.updatedAt = time.Now()
}

func (b *Batch) Result() *dossier.Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result
}

// Snapshot is a read-only, JSON-safe copy of batch state.
type Snapshot struct {
	ID           string                  `json:"batch_id"`
	Stage        Stage                   `json:"stage"`
	FailStage    Stage                   `json:"fail_stage,omitempty"`
	FailReason   string                  `json:"fail_reason,omitempty"`
	ArchiveName  string                  `json:"archive_name,omitempty"`
	Manifest     []dossier.ManifestEntry `json:"manifest,omitempty"`
	Unclassified []string                `json:"unclassified,omitempty"`
	Warnings     []dossier.Warning       `json:"warnings,omitempty"`
}

func (b *Batch) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	snap := Snapshot{
		ID:         b.ID,
		Stage:      b.stage,
		FailStage:  b.failStage,
		FailReason: b.failReason,
		Warnings:   b.warnings,
	}
	if b.result != nil {
		snap.ArchiveName = b.result.ArchiveName
		snap.Manifest = b.result.Manifest
		snap.Unclassified = b.result.Unclassified
	}
	return snap
}

// Store is a thread-safe in-memory batch registry with TTL eviction.
type Store struct {
	mu      sync.Mutex
	batches map[string]*Batch
	ttl     time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		batches: make(map[string]*Batch),
		ttl:     ttl,
	}
}

func (s *Store) Put(b *Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[b.ID] = b
}

func (s *Store) Get(id string) *Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batches[id]
}

// Cleanup removes expired batches.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, b := range s.batches {
		b.mu.Lock()
		expired := now.Sub(b.updatedAt) > s.ttl
		b.mu.Unlock()
		if expired {
			delete(s.batches, id)
		}
	}
}

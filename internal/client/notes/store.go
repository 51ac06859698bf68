// Package notes owns the authoritative local note sequence: optimistic local
// mutation, periodic whole-blob persistence shared with the companion
// process, best-effort remote propagation, and the scheduled-note sweep.
package notes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/polyprep/polynotes/internal/client/api"
	"github.com/polyprep/polynotes/internal/client/models"
	"github.com/polyprep/polynotes/internal/client/repositories/snapshot"
	"github.com/polyprep/polynotes/internal/logging"
)

// Store holds the in-memory note sequence, newest first. One mutex
// serializes every mutation, which together with persist-after-mutate gives
// the single-logical-writer model the shared blob expects from this process.
type Store struct {
	api   api.Client
	repo  snapshot.Repository
	clock Clock
	log   logging.Logger

	flushEvery time.Duration
	sweepEvery time.Duration

	mu          sync.Mutex
	notes       []models.Note
	nextLocalID int64

	// flushMu serializes snapshot writes: a flush that copied state before a
	// mutation must finish its Save before the mutation's persist runs, so
	// the blob on disk is never older than the last completed persist.
	flushMu sync.Mutex
}

// Option tweaks Store construction.
type Option func(*Store)

// WithClock replaces the wall clock, for tests.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIntervals overrides the flush and sweep periods.
func WithIntervals(flush, sweep time.Duration) Option {
	return func(s *Store) {
		s.flushEvery = flush
		s.sweepEvery = sweep
	}
}

// NewStore wires the store to the backend client and the shared snapshot
// repository.
func NewStore(apiClient api.Client, repo snapshot.Repository, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		api:         apiClient,
		repo:        repo,
		clock:       SystemClock(),
		log:         log.With("component", "notes"),
		flushEvery:  15 * time.Second,
		sweepEvery:  30 * time.Second,
		nextLocalID: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory sequence with the persisted snapshot. A
// missing snapshot means an empty store; an undecodable one is treated the
// same and logged, never surfaced.
func (s *Store) Load(ctx context.Context) {
	data, ok, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "loading snapshot failed, starting empty", "error", err)
	}
	if err != nil || !ok {
		s.setNotes(nil)
		return
	}

	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		s.log.Warn(ctx, "snapshot undecodable, starting empty", "error", err)
		s.setNotes(nil)
		return
	}
	s.setNotes(snap.Notes)
	s.log.Info(ctx, "snapshot loaded", "notes", len(snap.Notes))
}

// Persist writes the current sequence to the shared blob, overwriting
// whatever is there (last writer wins). Failure is logged only; the
// in-memory mutation that triggered the flush is never rolled back.
func (s *Store) Persist(ctx context.Context) {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	s.mu.Unlock()

	data, err := models.EncodeSnapshot(out, s.clock.Now())
	if err != nil {
		s.log.Error(ctx, "encoding snapshot failed", "error", err)
		return
	}
	if err := s.repo.Save(ctx, data); err != nil {
		s.log.Error(ctx, "persisting snapshot failed", "error", err)
	}
}

// Add inserts the note at the head of the sequence (the store is always
// newest first) and persists. No remote call: callers that want the note on
// the server invoke Upload separately, so creation works offline.
func (s *Store) Add(ctx context.Context, note models.Note) models.Note {
	s.mu.Lock()
	if note.ID == 0 {
		note.ID = s.nextLocalID
		s.nextLocalID--
	}
	s.notes = append([]models.Note{note}, s.notes...)
	s.mu.Unlock()

	s.Persist(ctx)
	return note
}

// Update replaces the entry with the same id. A miss is a no-op: update
// never inserts.
func (s *Store) Update(ctx context.Context, note models.Note) {
	s.mu.Lock()
	replaced := false
	for i := range s.notes {
		if s.notes[i].ID == note.ID {
			s.notes[i] = note
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if replaced {
		s.Persist(ctx)
	}
}

// Delete removes the note locally and persists, regardless of whether the
// remote delete succeeds. The remote call is fire-and-forget: local storage
// must not get stuck holding data the user asked to remove, even offline.
// The note may reappear on the next remote refresh if the delete never
// reached the server.
func (s *Store) Delete(ctx context.Context, note models.Note) {
	if note.ID > 0 {
		if err := s.api.DeletePost(ctx, note.ID); err != nil {
			s.log.Warn(ctx, "remote delete failed, removing locally anyway",
				"id", note.ID, "error", err)
		}
	}

	s.mu.Lock()
	kept := s.notes[:0]
	for _, n := range s.notes {
		if n.ID != note.ID {
			kept = append(kept, n)
		}
	}
	s.notes = kept
	s.mu.Unlock()

	s.Persist(ctx)
}

// Upload pushes a locally created note to the backend. Kept separate from
// Add so "visible locally" and "durable on the server" stay decoupled.
func (s *Store) Upload(ctx context.Context, note models.Note) error {
	req := api.CreatePostRequest{
		Title:    note.Title,
		Text:     note.Body,
		Public:   !note.Private,
		Hashtags: note.Hashtags,
	}
	if note.Scheduled && note.ScheduledAt != nil {
		ts := note.ScheduledAt.Unix()
		req.ScheduledAt = &ts
	}
	if err := s.api.CreatePost(ctx, req); err != nil {
		return fmt.Errorf("upload note: %w", err)
	}
	return nil
}

// ToggleLike flips the like flag on the matching note and adjusts the count,
// which never drops below zero. The remote like call is the caller's job;
// this only reflects state.
func (s *Store) ToggleLike(ctx context.Context, id int64) {
	s.mu.Lock()
	changed := false
	for i := range s.notes {
		if s.notes[i].ID == id {
			n := &s.notes[i]
			n.Liked = !n.Liked
			if n.Liked {
				n.LikeCount++
			} else if n.LikeCount > 0 {
				n.LikeCount--
			}
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.Persist(ctx)
	}
}

// SetLikeState applies a server-confirmed like state and count.
func (s *Store) SetLikeState(ctx context.Context, id int64, liked bool, count int) {
	s.mu.Lock()
	changed := false
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Liked = liked
			s.notes[i].LikeCount = count
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.Persist(ctx)
	}
}

// SetBookmarked flags a note for the companion device's read-only view.
func (s *Store) SetBookmarked(ctx context.Context, id int64, bookmarked bool) {
	s.mu.Lock()
	changed := false
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Bookmarked = bookmarked
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.Persist(ctx)
	}
}

// AddComment prepends the comment to the note's comment sequence and bumps
// the count.
func (s *Store) AddComment(ctx context.Context, id int64, comment models.Comment) {
	s.mu.Lock()
	changed := false
	for i := range s.notes {
		if s.notes[i].ID == id {
			n := &s.notes[i]
			n.Comments = append([]models.Comment{comment}, n.Comments...)
			n.CommentCount++
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.Persist(ctx)
	}
}

// FetchRemote clears the sequence and rebuilds it from the backend feed.
// Each post costs two extra round trips (author name, like count); failures
// of those degrade the note rather than dropping it. A feed failure leaves
// whatever was already rebuilt.
func (s *Store) FetchRemote(ctx context.Context, count int) error {
	s.setNotes(nil)

	posts, err := s.api.GetFeed(ctx, count)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}

	for _, post := range posts {
		author := "unknown"
		if user, err := s.api.GetUser(ctx, post.AuthorID); err != nil {
			s.log.Warn(ctx, "author lookup failed", "author_id", post.AuthorID, "error", err)
		} else {
			author = user.Username
		}

		likeCount := 0
		if n, err := s.api.GetLikeCount(ctx, post.ID); err != nil {
			s.log.Warn(ctx, "like count lookup failed", "id", post.ID, "error", err)
		} else {
			likeCount = n
		}

		s.Add(ctx, models.Note{
			ID:        post.ID,
			Author:    author,
			CreatedAt: time.Unix(int64(post.UpdatedAt), 0).UTC(),
			Title:     post.Title,
			Body:      post.Text,
			Hashtags:  post.Hashtags,
			LikeCount: likeCount,
		})
	}
	return nil
}

// ScanScheduled publishes every scheduled note whose time has passed:
// scheduled and private both flip to false. This is the only autonomous
// transition in the store; it runs off the sweep ticker.
func (s *Store) ScanScheduled(ctx context.Context) {
	now := s.clock.Now()

	s.mu.Lock()
	changed := 0
	for i := range s.notes {
		if s.notes[i].ScheduledDue(now) {
			s.notes[i].Scheduled = false
			s.notes[i].Private = false
			changed++
		}
	}
	s.mu.Unlock()

	if changed > 0 {
		s.log.Info(ctx, "scheduled notes published", "count", changed)
		s.Persist(ctx)
	}
}

// Run drives the periodic flush and the scheduled sweep until ctx is done,
// then takes one final flush so shutdown never loses mutations.
func (s *Store) Run(ctx context.Context) {
	flush := time.NewTicker(s.flushEvery)
	defer flush.Stop()
	sweep := time.NewTicker(s.sweepEvery)
	defer sweep.Stop()

	for {
		select {
		case <-flush.C:
			s.Persist(ctx)
		case <-sweep.C:
			s.ScanScheduled(ctx)
		case <-ctx.Done():
			s.Persist(context.WithoutCancel(ctx))
			return
		}
	}
}

// Notes returns a copy of the sequence, newest first.
func (s *Store) Notes() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// NoteByID returns the matching note and whether it exists.
func (s *Store) NoteByID(id int64) (models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// FilterByAuthor returns the author's notes in store order.
func (s *Store) FilterByAuthor(author string) []models.Note {
	return s.filter(func(n models.Note) bool { return n.Author == author })
}

// ScheduledByAuthor returns the author's not-yet-published scheduled notes.
func (s *Store) ScheduledByAuthor(author string) []models.Note {
	return s.filter(func(n models.Note) bool { return n.Author == author && n.Scheduled })
}

// ActiveByAuthor returns the author's published notes.
func (s *Store) ActiveByAuthor(author string) []models.Note {
	return s.filter(func(n models.Note) bool { return n.Author == author && !n.Scheduled })
}

// Bookmarked returns the notes flagged for the companion device.
func (s *Store) Bookmarked() []models.Note {
	return s.filter(func(n models.Note) bool { return n.Bookmarked })
}

func (s *Store) filter(keep func(models.Note) bool) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Note
	for _, n := range s.notes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) setNotes(notes []models.Note) {
	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()
}

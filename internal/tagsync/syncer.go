// Package tagsync converges the tags on Last.fm with the desired sets kept
// in the tag store.
package tagsync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jfmyers9/lfm/internal/tagstore"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/rs/zerolog"
)

// Store is the part of the tag store the syncer needs.
type Store interface {
	List(ctx context.Context) ([]tagstore.Entry, error)
	RecordRun(ctx context.Context, run tagstore.Run) error
}

// Options configures a Syncer.
type Options struct {
	FoldCase bool // compare tags case-insensitively
	DryRun   bool // compute diffs without writing or recording the run
	Logger   zerolog.Logger
}

// Report summarises one sync pass.
type Report struct {
	RunID   uuid.UUID
	DryRun  bool
	Results []tagstore.Result
}

// Failed returns the number of entities that could not be synced.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Error != "" {
			n++
		}
	}
	return n
}

// Syncer applies stored desired tag sets through the Last.fm services.
type Syncer struct {
	store   Store
	session lastfm.Session
	artists *lastfm.ArtistService
	albums  *lastfm.AlbumService
	tracks  *lastfm.TrackService
	opts    Options
	logger  zerolog.Logger
	now     func() time.Time
}

// New creates a syncer over store using session for remote calls.
func New(store Store, session lastfm.Session, opts Options) *Syncer {
	return &Syncer{
		store:   store,
		session: session,
		artists: lastfm.NewArtistService(session),
		albums:  lastfm.NewAlbumService(session),
		tracks:  lastfm.NewTrackService(session),
		opts:    opts,
		logger:  opts.Logger.With().Str("component", "tagsync").Logger(),
		now:     time.Now,
	}
}

// Run reconciles every stored entity in order. A failing entity is
// recorded in its result and the next one is still processed. The
// returned error covers only failures of the pass itself: reading the
// store, a missing write credential or recording the run. If ctx is
// cancelled between entities, Run stops, records the entities already
// processed and returns that partial report with ctx's error.
func (s *Syncer) Run(ctx context.Context) (Report, error) {
	if !s.opts.DryRun {
		if err := lastfm.RequireAuth(s.session); err != nil {
			return Report{}, err
		}
	}

	entries, err := s.store.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list desired tags: %w", err)
	}

	run := tagstore.NewRun(s.now())
	s.logger.Info().
		Str("run_id", run.ID.String()).
		Int("entities", len(entries)).
		Bool("dry_run", s.opts.DryRun).
		Msg("Starting tag sync")

	var cancelled error
	for _, entry := range entries {
		if cancelled = ctx.Err(); cancelled != nil {
			break
		}
		res := s.syncOne(ctx, entry)
		run.Results = append(run.Results, res)
	}
	run.FinishedAt = s.now()

	report := Report{RunID: run.ID, DryRun: s.opts.DryRun, Results: run.Results}
	if cancelled != nil {
		s.logger.Warn().
			Str("run_id", run.ID.String()).
			Int("synced", len(run.Results)).
			Int("remaining", len(entries)-len(run.Results)).
			Msg("Tag sync interrupted")
	} else {
		s.logger.Info().
			Str("run_id", run.ID.String()).
			Int("failed", report.Failed()).
			Dur("took", run.FinishedAt.Sub(run.StartedAt)).
			Msg("Tag sync finished")
	}

	if s.opts.DryRun {
		return report, cancelled
	}
	// The writes already made happened, so the partial run is recorded
	// even when ctx is done.
	if err := s.store.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		return report, fmt.Errorf("failed to record run: %w", err)
	}
	return report, cancelled
}

func (s *Syncer) syncOne(ctx context.Context, entry tagstore.Entry) tagstore.Result {
	res := tagstore.Result{Ref: entry.Ref}
	log := s.logger.With().Str("entity", entry.Ref.String()).Logger()

	diff, err := s.apply(ctx, entry.Ref, lastfm.Tags(entry.Tags...))
	res.Added = tagNames(diff.Add)
	res.Removed = tagNames(diff.Remove)
	if err != nil {
		res.Error = err.Error()
		log.Warn().Err(err).Msg("Failed to sync tags")
		return res
	}

	if diff.Empty() {
		log.Debug().Msg("Tags already in sync")
	} else {
		log.Info().
			Strs("added", res.Added).
			Strs("removed", res.Removed).
			Msg("Synced tags")
	}
	return res
}

func (s *Syncer) apply(ctx context.Context, ref tagstore.EntityRef, desired []lastfm.Tag) (lastfm.TagDiff, error) {
	var opts []lastfm.DiffOption
	if s.opts.FoldCase {
		opts = append(opts, lastfm.WithFoldCase())
	}

	if s.opts.DryRun {
		current, err := s.currentTags(ctx, ref)
		if err != nil {
			return lastfm.TagDiff{}, err
		}
		return lastfm.DiffTags(desired, current, opts...), nil
	}

	switch ref.Kind {
	case tagstore.KindArtist:
		return s.artists.SetTags(ctx, lastfm.Artist{Name: ref.Artist}, desired, opts...)
	case tagstore.KindAlbum:
		return s.albums.SetTags(ctx, lastfm.Album{Artist: ref.Artist, Title: ref.Name}, desired, opts...)
	case tagstore.KindTrack:
		return s.tracks.SetTags(ctx, lastfm.Track{Artist: ref.Artist, Title: ref.Name}, desired, opts...)
	}
	return lastfm.TagDiff{}, fmt.Errorf("unsupported kind %q", ref.Kind)
}

func (s *Syncer) currentTags(ctx context.Context, ref tagstore.EntityRef) ([]lastfm.Tag, error) {
	switch ref.Kind {
	case tagstore.KindArtist:
		return s.artists.GetTags(ctx, lastfm.Artist{Name: ref.Artist})
	case tagstore.KindAlbum:
		return s.albums.GetTags(ctx, lastfm.Album{Artist: ref.Artist, Title: ref.Name})
	case tagstore.KindTrack:
		return s.tracks.GetTags(ctx, lastfm.Track{Artist: ref.Artist, Title: ref.Name})
	}
	return nil, fmt.Errorf("unsupported kind %q", ref.Kind)
}

func tagNames(tags []lastfm.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}

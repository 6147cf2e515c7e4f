package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/lfm/internal/render"
	"github.com/jfmyers9/lfm/internal/tagstore"
	"github.com/jfmyers9/lfm/internal/tagsync"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage your own tags on artists, albums and tracks",
	Long: `Read and change the tags you applied on Last.fm.

Entities are addressed as KIND ARTIST [NAME], where KIND is artist, album
or track. Albums and tracks need a NAME:

  lfm tags get artist Cher
  lfm tags add track Cher Believe -t pop -t dance
  lfm tags set album Cher Believe -t pop

'want' records a desired tag set locally and 'sync' applies every desired
set in one pass, so a list of tags can be kept in a file and re-applied.`,
}

// tagService is the tagging surface shared by the artist, album and track
// services.
type tagService[E lastfm.Entity] interface {
	GetTags(ctx context.Context, e E) ([]lastfm.Tag, error)
	AddTags(ctx context.Context, e E, tags ...lastfm.Tag) error
	RemoveTags(ctx context.Context, e E, tags ...lastfm.Tag) error
	SetTags(ctx context.Context, e E, desired []lastfm.Tag, opts ...lastfm.DiffOption) (lastfm.TagDiff, error)
	ClearTags(ctx context.Context, e E) ([]lastfm.Tag, error)
}

// tagger is a tagService bound to one entity.
type tagger interface {
	get(ctx context.Context) ([]lastfm.Tag, error)
	add(ctx context.Context, tags []lastfm.Tag) error
	remove(ctx context.Context, tags []lastfm.Tag) error
	set(ctx context.Context, desired []lastfm.Tag) (lastfm.TagDiff, error)
	clear(ctx context.Context) ([]lastfm.Tag, error)
}

type boundTagger[E lastfm.Entity] struct {
	svc    tagService[E]
	entity E
}

func (b boundTagger[E]) get(ctx context.Context) ([]lastfm.Tag, error) {
	return b.svc.GetTags(ctx, b.entity)
}

func (b boundTagger[E]) add(ctx context.Context, tags []lastfm.Tag) error {
	return b.svc.AddTags(ctx, b.entity, tags...)
}

func (b boundTagger[E]) remove(ctx context.Context, tags []lastfm.Tag) error {
	return b.svc.RemoveTags(ctx, b.entity, tags...)
}

func (b boundTagger[E]) set(ctx context.Context, desired []lastfm.Tag) (lastfm.TagDiff, error) {
	return b.svc.SetTags(ctx, b.entity, desired, diffOptions()...)
}

func (b boundTagger[E]) clear(ctx context.Context) ([]lastfm.Tag, error) {
	return b.svc.ClearTags(ctx, b.entity)
}

func taggerFor(client *lastfm.Client, ref tagstore.EntityRef) tagger {
	switch ref.Kind {
	case tagstore.KindAlbum:
		return boundTagger[lastfm.Album]{client.Albums(), lastfm.Album{Artist: ref.Artist, Title: ref.Name}}
	case tagstore.KindTrack:
		return boundTagger[lastfm.Track]{client.Tracks(), lastfm.Track{Artist: ref.Artist, Title: ref.Name}}
	}
	return boundTagger[lastfm.Artist]{client.Artists(), lastfm.Artist{Name: ref.Artist}}
}

// entityArgs validates KIND ARTIST [NAME].
func entityArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(2, 3)(cmd, args); err != nil {
		return err
	}
	_, err := parseEntityRef(args)
	return err
}

func parseEntityRef(args []string) (tagstore.EntityRef, error) {
	kind, err := tagstore.ParseKind(args[0])
	if err != nil {
		return tagstore.EntityRef{}, err
	}
	ref := tagstore.EntityRef{Kind: kind, Artist: args[1]}
	switch {
	case kind == tagstore.KindArtist && len(args) != 2:
		return tagstore.EntityRef{}, fmt.Errorf("artist takes no NAME")
	case kind != tagstore.KindArtist && len(args) != 3:
		return tagstore.EntityRef{}, fmt.Errorf("%s needs ARTIST and NAME", kind)
	case kind != tagstore.KindArtist:
		ref.Name = args[2]
	}
	return ref, nil
}

func tagFlags(cmd *cobra.Command) ([]lastfm.Tag, error) {
	names, _ := cmd.Flags().GetStringSlice("tag")
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one --tag is required")
	}
	return lastfm.Tags(names...), nil
}

func tagList(tags []lastfm.Tag) string {
	if len(tags) == 0 {
		return "(none)"
	}
	return joinNames(tags)
}

var tagsGetCmd = &cobra.Command{
	Use:   "get KIND ARTIST [NAME]",
	Short: "List the tags you applied to an entity",
	Args:  entityArgs,
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		ref, _ := parseEntityRef(args)
		tags, err := taggerFor(client, ref).get(ctx)
		if err != nil {
			return fmt.Errorf("failed to get tags: %w", err)
		}
		return writeTable(cmd, namesTable(tags))
	}),
}

var tagsAddCmd = &cobra.Command{
	Use:   "add KIND ARTIST [NAME] -t TAG...",
	Short: "Apply tags to an entity",
	Args:  entityArgs,
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		ref, _ := parseEntityRef(args)
		tags, err := tagFlags(cmd)
		if err != nil {
			return err
		}
		if err := taggerFor(client, ref).add(ctx, tags); err != nil {
			return fmt.Errorf("failed to add tags: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", tagList(tags), ref)
		return nil
	}),
}

var tagsRemoveCmd = &cobra.Command{
	Use:   "remove KIND ARTIST [NAME] -t TAG...",
	Short: "Remove tags from an entity",
	Args:  entityArgs,
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		ref, _ := parseEntityRef(args)
		tags, err := tagFlags(cmd)
		if err != nil {
			return err
		}
		if err := taggerFor(client, ref).remove(ctx, tags); err != nil {
			return fmt.Errorf("failed to remove tags: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", tagList(tags), ref)
		return nil
	}),
}

var tagsSetCmd = &cobra.Command{
	Use:   "set KIND ARTIST [NAME] -t TAG...",
	Short: "Make an entity's tags exactly the given set",
	Args:  entityArgs,
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		ref, _ := parseEntityRef(args)
		tags, err := tagFlags(cmd)
		if err != nil {
			return err
		}
		diff, err := taggerFor(client, ref).set(ctx, tags)
		if err != nil {
			return fmt.Errorf("failed to set tags: %w", err)
		}
		out := cmd.OutOrStdout()
		if diff.Empty() {
			fmt.Fprintf(out, "%s already has %s\n", ref, tagList(tags))
			return nil
		}
		fmt.Fprintf(out, "Added:   %s\n", tagList(diff.Add))
		fmt.Fprintf(out, "Removed: %s\n", tagList(diff.Remove))
		return nil
	}),
}

var tagsClearCmd = &cobra.Command{
	Use:   "clear KIND ARTIST [NAME]",
	Short: "Remove all of your tags from an entity",
	Args:  entityArgs,
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		ref, _ := parseEntityRef(args)
		removed, err := taggerFor(client, ref).clear(ctx)
		if err != nil {
			return fmt.Errorf("failed to clear tags: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", tagList(removed), ref)
		return nil
	}),
}

// withStore adapts fn to a cobra RunE that opens and closes the tag store.
// Store commands are not bounded by the per-call budget: a sync pass makes
// several calls per entity.
func withStore(fn func(ctx context.Context, store *tagstore.Store, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open tag store: %w", err)
		}
		defer func() { _ = store.Close() }()
		return fn(cmd.Context(), store, cmd, args)
	}
}

var tagsWantCmd = &cobra.Command{
	Use:   "want KIND ARTIST [NAME] -t TAG...",
	Short: "Record the tags an entity should have on the next sync",
	Long: `Record the tags an entity should have on the next 'lfm tags sync'.

Without --tag the entity is listed. With --forget it is removed from the
store and sync leaves its tags alone.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return nil
		}
		return entityArgs(cmd, args)
	},
	RunE: withStore(func(ctx context.Context, store *tagstore.Store, cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			entries, err := store.List(ctx)
			if err != nil {
				return err
			}
			t := render.NewTable("ENTITY", "TAGS", "UPDATED")
			for _, e := range entries {
				t.Row(e.Ref, strings.Join(e.Tags, ", "), e.UpdatedAt.Local().Format(time.DateTime))
			}
			return writeTable(cmd, t)
		}

		ref, _ := parseEntityRef(args)
		if forget, _ := cmd.Flags().GetBool("forget"); forget {
			if err := store.Remove(ctx, ref); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s\n", ref)
			return nil
		}

		names, _ := cmd.Flags().GetStringSlice("tag")
		if len(names) == 0 {
			desired, err := store.Desired(ctx, ref)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ref, strings.Join(desired, ", "))
			return nil
		}
		if err := store.SetDesired(ctx, ref, names); err != nil {
			return err
		}
		logger.Info().Str("entity", ref.String()).Strs("tags", names).Msg("Recorded desired tags")
		fmt.Fprintf(cmd.OutOrStdout(), "%s will be tagged %s on the next sync\n", ref, strings.Join(names, ", "))
		return nil
	}),
}

var tagsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Apply every recorded desired tag set",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, store *tagstore.Store, cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		syncer := tagsync.New(store, client, tagsync.Options{
			FoldCase: cfg.Tags.FoldCase,
			DryRun:   dryRun,
			Logger:   logger,
		})
		report, err := syncer.Run(ctx)
		if err != nil {
			return err
		}

		t := render.NewTable("ENTITY", "ADDED", "REMOVED", "ERROR")
		for _, r := range report.Results {
			t.Row(r.Ref, strings.Join(r.Added, ", "), strings.Join(r.Removed, ", "), r.Error)
		}
		if err := writeTable(cmd, t); err != nil {
			return err
		}
		if report.DryRun {
			fmt.Fprintln(cmd.OutOrStdout(), "\nDry run, nothing was changed.")
		}
		if n := report.Failed(); n > 0 {
			return fmt.Errorf("%d of %d entities failed to sync", n, len(report.Results))
		}
		return nil
	}),
}

var tagsRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the history of sync runs",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, store *tagstore.Store, cmd *cobra.Command, args []string) error {
		if prune, _ := cmd.Flags().GetDuration("prune"); prune > 0 {
			n, err := store.PruneRuns(ctx, prune)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d run(s)\n", n)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.Runs(ctx, limit)
		if err != nil {
			return err
		}
		t := render.NewTable("RUN", "STARTED", "TOOK", "ENTITIES", "FAILED")
		for _, r := range runs {
			t.Row(r.ID, r.StartedAt.Local().Format(time.DateTime),
				r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond), len(r.Results), r.Failed())
		}
		return writeTable(cmd, t)
	}),
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.AddCommand(tagsGetCmd, tagsAddCmd, tagsRemoveCmd, tagsSetCmd, tagsClearCmd,
		tagsWantCmd, tagsSyncCmd, tagsRunsCmd)

	for _, c := range []*cobra.Command{tagsAddCmd, tagsRemoveCmd, tagsSetCmd, tagsWantCmd} {
		c.Flags().StringSliceP("tag", "t", nil, "Tag name (repeatable or comma separated)")
	}
	tagsWantCmd.Flags().Bool("forget", false, "Remove the entity from the store")
	tagsSyncCmd.Flags().Bool("dry-run", false, "Show the changes without making them")
	tagsRunsCmd.Flags().IntP("limit", "n", 10, "Number of runs to show (0 for all)")
	tagsRunsCmd.Flags().Duration("prune", 0, "Delete runs older than this instead of listing")
}

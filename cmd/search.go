package cmd

import (
	"context"
	"fmt"
	"math"

	"github.com/jfmyers9/lfm/internal/render"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search artists, albums, tracks and tags",
	Long: `Search Last.fm one page at a time.

Results are numbered across pages, so page 2 with a page size of 30
starts at 31. --total also prints how many pages the query has.`,
}

func pageSize(cmd *cobra.Command) int {
	if cmd.Flags().Changed("limit") {
		n, _ := cmd.Flags().GetInt("limit")
		return n
	}
	return cfg.Search.PageSize
}

// showPage prints one page of s, numbering results from the page offset.
func showPage[T fmt.Stringer](ctx context.Context, cmd *cobra.Command, s *lastfm.Search[T]) error {
	page, _ := cmd.Flags().GetInt("page")
	results, err := s.FetchPage(ctx, page)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if total, _ := cmd.Flags().GetBool("total"); total {
		n, err := s.TotalResults(ctx)
		if err != nil {
			return fmt.Errorf("failed to count results: %w", err)
		}
		pages := int(math.Ceil(float64(n) / float64(s.PageSize())))
		fmt.Fprintf(cmd.OutOrStdout(), "%d results, page %d of %d\n\n", n, s.CurrentPage(), pages)
	}

	t := render.NewTable("#", "NAME", "SCORE")
	offset := (s.CurrentPage() - 1) * s.PageSize()
	for i, r := range results {
		score := ""
		if r.HasScore {
			score = fmt.Sprintf("%.2f", r.Score)
		}
		t.Row(offset+i+1, r.Item, score)
	}
	return writeTable(cmd, t)
}

var searchArtistCmd = &cobra.Command{
	Use:   "artist NAME",
	Short: "Search artists by name",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		return showPage(ctx, cmd, client.Artists().Search(args[0], pageSize(cmd)))
	}),
}

var searchAlbumCmd = &cobra.Command{
	Use:   "album TITLE",
	Short: "Search albums by title",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		return showPage(ctx, cmd, client.Albums().Search(args[0], pageSize(cmd)))
	}),
}

var searchTrackCmd = &cobra.Command{
	Use:   "track TITLE",
	Short: "Search tracks by title, optionally by one artist",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		artist, _ := cmd.Flags().GetString("artist")
		return showPage(ctx, cmd, client.Tracks().Search(args[0], artist, pageSize(cmd)))
	}),
}

var searchTagCmd = &cobra.Command{
	Use:   "tag NAME",
	Short: "Search tags by name",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		return showPage(ctx, cmd, client.Tags().Search(args[0], pageSize(cmd)))
	}),
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.AddCommand(searchArtistCmd, searchAlbumCmd, searchTrackCmd, searchTagCmd)

	searchCmd.PersistentFlags().Int("page", 1, "Page to show (1-based)")
	searchCmd.PersistentFlags().IntP("limit", "n", lastfm.DefaultPageSize, "Results per page; defaults to search.page_size from config")
	searchCmd.PersistentFlags().Bool("total", false, "Also print the total number of results")
	searchTrackCmd.Flags().String("artist", "", "Only match tracks by this artist")
}

package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/jfmyers9/lfm/internal/render"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Explore global tags and their weekly charts",
}

var tagSimilarCmd = &cobra.Command{
	Use:   "similar TAG",
	Short: "List tags similar to a tag",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		tags, err := client.Tags().GetSimilar(ctx, lastfm.Tag{Name: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get similar tags: %w", err)
		}
		return writeTable(cmd, namesTable(tags))
	}),
}

// countTable orders a tag count map by descending count, then name.
func countTable[T interface {
	comparable
	fmt.Stringer
}](counts map[T]int) *render.Table {
	items := make([]lastfm.Weighted[T], 0, len(counts))
	for item, n := range counts {
		items = append(items, lastfm.Weighted[T]{Item: item, Weight: n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Weight != items[j].Weight {
			return items[i].Weight > items[j].Weight
		}
		return items[i].Item.String() < items[j].Item.String()
	})
	return weightedTable(items, "TAGGED")
}

var tagTopArtistsCmd = &cobra.Command{
	Use:   "top-artists TAG",
	Short: "List the artists most tagged with a tag",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		tag := lastfm.Tag{Name: args[0]}
		if counts, _ := cmd.Flags().GetBool("counts"); counts {
			m, err := client.Tags().GetTopArtistsWithCount(ctx, tag)
			if err != nil {
				return fmt.Errorf("failed to get top artists: %w", err)
			}
			return writeTable(cmd, countTable(m))
		}
		artists, err := client.Tags().GetTopArtists(ctx, tag)
		if err != nil {
			return fmt.Errorf("failed to get top artists: %w", err)
		}
		return writeTable(cmd, namesTable(artists))
	}),
}

var tagTopAlbumsCmd = &cobra.Command{
	Use:   "top-albums TAG",
	Short: "List the albums most tagged with a tag",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		tag := lastfm.Tag{Name: args[0]}
		if counts, _ := cmd.Flags().GetBool("counts"); counts {
			m, err := client.Tags().GetTopAlbumsWithCount(ctx, tag)
			if err != nil {
				return fmt.Errorf("failed to get top albums: %w", err)
			}
			return writeTable(cmd, countTable(m))
		}
		albums, err := client.Tags().GetTopAlbums(ctx, tag)
		if err != nil {
			return fmt.Errorf("failed to get top albums: %w", err)
		}
		return writeTable(cmd, namesTable(albums))
	}),
}

var tagTopTracksCmd = &cobra.Command{
	Use:   "top-tracks TAG",
	Short: "List the tracks most tagged with a tag",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		tag := lastfm.Tag{Name: args[0]}
		if counts, _ := cmd.Flags().GetBool("counts"); counts {
			m, err := client.Tags().GetTopTracksWithCount(ctx, tag)
			if err != nil {
				return fmt.Errorf("failed to get top tracks: %w", err)
			}
			return writeTable(cmd, countTable(m))
		}
		tracks, err := client.Tags().GetTopTracks(ctx, tag)
		if err != nil {
			return fmt.Errorf("failed to get top tracks: %w", err)
		}
		return writeTable(cmd, namesTable(tracks))
	}),
}

var tagChartsCmd = &cobra.Command{
	Use:   "charts TAG",
	Short: "List the weeks a tag has artist charts for",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		spans, err := client.Tags().GetWeeklyChartTimeSpans(ctx, lastfm.Tag{Name: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get chart list: %w", err)
		}
		return writeTable(cmd, spanTable(spans))
	}),
}

var tagChartCmd = &cobra.Command{
	Use:   "chart TAG",
	Short: "Show a tag's weekly artist chart",
	Long: `Show a tag's weekly artist chart.

Without --from and --to the most recent week is shown. Use 'lfm tag charts'
to list the available weeks.`,
	Args: cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		span, err := parseSpan(from, to)
		if err != nil {
			return err
		}
		chart, err := client.Tags().GetWeeklyArtistChart(ctx, lastfm.Tag{Name: args[0]}, span)
		if err != nil {
			return fmt.Errorf("failed to get chart: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Week %s\n\n", formatSpan(chart.Span))
		return writeTable(cmd, chartTable(chart))
	}),
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagSimilarCmd, tagTopArtistsCmd, tagTopAlbumsCmd, tagTopTracksCmd, tagChartsCmd, tagChartCmd)
	for _, c := range []*cobra.Command{tagTopArtistsCmd, tagTopAlbumsCmd, tagTopTracksCmd} {
		c.Flags().Bool("counts", false, "Include how often each item was tagged")
	}
	tagChartCmd.Flags().String("from", "", "Chart start as unix seconds")
	tagChartCmd.Flags().String("to", "", "Chart end as unix seconds")
}

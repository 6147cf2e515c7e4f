package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jfmyers9/lfm/internal/render"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Look up a user's listening history",
}

func periodFlag(cmd *cobra.Command) (lastfm.Period, error) {
	s, _ := cmd.Flags().GetString("period")
	if s == "" {
		return "", nil
	}
	return lastfm.ParsePeriod(s)
}

var userTopArtistsCmd = &cobra.Command{
	Use:   "top-artists [USER]",
	Short: "List a user's most played artists",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}
		period, err := periodFlag(cmd)
		if err != nil {
			return err
		}
		artists, err := client.Users().GetTopArtists(ctx, user, period)
		if err != nil {
			return fmt.Errorf("failed to get top artists: %w", err)
		}
		return writeTable(cmd, weightedTable(artists, "PLAYS"))
	}),
}

var userTopAlbumsCmd = &cobra.Command{
	Use:   "top-albums [USER]",
	Short: "List a user's most played albums",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}
		period, err := periodFlag(cmd)
		if err != nil {
			return err
		}
		albums, err := client.Users().GetTopAlbums(ctx, user, period)
		if err != nil {
			return fmt.Errorf("failed to get top albums: %w", err)
		}
		return writeTable(cmd, weightedTable(albums, "PLAYS"))
	}),
}

var userTopTracksCmd = &cobra.Command{
	Use:   "top-tracks [USER]",
	Short: "List a user's most played tracks",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}
		period, err := periodFlag(cmd)
		if err != nil {
			return err
		}
		tracks, err := client.Users().GetTopTracks(ctx, user, period)
		if err != nil {
			return fmt.Errorf("failed to get top tracks: %w", err)
		}
		return writeTable(cmd, weightedTable(tracks, "PLAYS"))
	}),
}

var userTopTagsCmd = &cobra.Command{
	Use:   "top-tags [USER]",
	Short: "List the tags a user applied most",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}
		tags, err := client.Users().GetTopTags(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to get top tags: %w", err)
		}
		return writeTable(cmd, weightedTable(tags, "COUNT"))
	}),
}

var userRecentCmd = &cobra.Command{
	Use:   "recent [USER]",
	Short: "List a user's latest scrobbles",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		tracks, err := client.Users().GetRecentTracks(ctx, user, limit)
		if err != nil {
			return fmt.Errorf("failed to get recent tracks: %w", err)
		}
		t := render.NewTable("WHEN", "ARTIST", "TRACK", "ALBUM")
		for _, rt := range tracks {
			when := "now playing"
			if !rt.NowPlaying {
				when = rt.At.Local().Format(time.DateTime)
			}
			t.Row(when, rt.Track.Artist, rt.Track.Title, rt.Album)
		}
		return writeTable(cmd, t)
	}),
}

var userLovedCmd = &cobra.Command{
	Use:   "loved [USER]",
	Short: "List a user's loved tracks",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}
		tracks, err := client.Users().GetLovedTracks(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to get loved tracks: %w", err)
		}
		t := render.NewTable("LOVED", "ARTIST", "TRACK")
		for _, lt := range tracks {
			t.Row(lt.At.Local().Format(time.DateOnly), lt.Track.Artist, lt.Track.Title)
		}
		return writeTable(cmd, t)
	}),
}

var userFriendsCmd = &cobra.Command{
	Use:   "friends [USER]",
	Short: "List a user's friends",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}
		users, err := client.Users().GetFriends(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to get friends: %w", err)
		}
		return writeTable(cmd, namesTable(users))
	}),
}

var userNeighboursCmd = &cobra.Command{
	Use:   "neighbours [USER]",
	Short: "List users with similar taste",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}
		users, err := client.Users().GetNeighbours(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to get neighbours: %w", err)
		}
		return writeTable(cmd, namesTable(users))
	}),
}

var userChartsCmd = &cobra.Command{
	Use:   "charts [USER]",
	Short: "List the weeks a user has charts for",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}
		spans, err := client.Users().GetWeeklyChartTimeSpans(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to get chart list: %w", err)
		}
		return writeTable(cmd, spanTable(spans))
	}),
}

var userChartCmd = &cobra.Command{
	Use:   "chart [USER]",
	Short: "Show a user's weekly artist, album or track chart",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		span, err := parseSpan(from, to)
		if err != nil {
			return err
		}
		kind, _ := cmd.Flags().GetString("kind")

		var (
			week  lastfm.TimeSpan
			table *render.Table
		)
		switch kind {
		case "artist":
			chart, err := client.Users().GetWeeklyArtistChart(ctx, user, span)
			if err != nil {
				return fmt.Errorf("failed to get chart: %w", err)
			}
			week, table = chart.Span, chartTable(chart)
		case "album":
			chart, err := client.Users().GetWeeklyAlbumChart(ctx, user, span)
			if err != nil {
				return fmt.Errorf("failed to get chart: %w", err)
			}
			week, table = chart.Span, chartTable(chart)
		case "track":
			chart, err := client.Users().GetWeeklyTrackChart(ctx, user, span)
			if err != nil {
				return fmt.Errorf("failed to get chart: %w", err)
			}
			week, table = chart.Span, chartTable(chart)
		default:
			return fmt.Errorf("unknown chart kind %q (want artist, album or track)", kind)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Week %s\n\n", formatSpan(week))
		return writeTable(cmd, table)
	}),
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userTopArtistsCmd, userTopAlbumsCmd, userTopTracksCmd, userTopTagsCmd,
		userRecentCmd, userLovedCmd, userFriendsCmd, userNeighboursCmd, userChartsCmd, userChartCmd)

	for _, c := range []*cobra.Command{userTopArtistsCmd, userTopAlbumsCmd, userTopTracksCmd} {
		c.Flags().StringP("period", "p", "", "Time range (overall, 7day, 1month, 3month, 6month, 12month)")
	}
	userRecentCmd.Flags().IntP("limit", "n", 20, "Maximum number of tracks")
	userChartCmd.Flags().StringP("kind", "k", "artist", "Chart kind (artist, album, track)")
	userChartCmd.Flags().String("from", "", "Chart start as unix seconds")
	userChartCmd.Flags().String("to", "", "Chart end as unix seconds")
}

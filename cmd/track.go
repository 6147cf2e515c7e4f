package cmd

import (
	"context"
	"fmt"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Look up, love and ban tracks",
}

func trackArg(args []string) lastfm.Track {
	return lastfm.Track{Artist: args[0], Title: args[1]}
}

var trackInfoCmd = &cobra.Command{
	Use:   "info ARTIST TRACK",
	Short: "Show a track's statistics and tags",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		info, err := client.Tracks().GetInfo(ctx, trackArg(args))
		if err != nil {
			return fmt.Errorf("failed to get track info: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", info.Track)
		if info.Album != nil {
			fmt.Fprintf(out, "Album:     %s\n", info.Album.Title)
		}
		if info.Duration > 0 {
			fmt.Fprintf(out, "Duration:  %s\n", formatDuration(info.Duration))
		}
		fmt.Fprintf(out, "Listeners: %d\n", info.Listeners)
		fmt.Fprintf(out, "Plays:     %d\n", info.Playcount)
		if len(info.TopTags) > 0 {
			fmt.Fprintf(out, "Tags:      %s\n", joinNames(info.TopTags))
		}
		return nil
	}),
}

var trackSimilarCmd = &cobra.Command{
	Use:   "similar ARTIST TRACK",
	Short: "List similar tracks",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		tracks, err := client.Tracks().GetSimilar(ctx, trackArg(args), limit)
		if err != nil {
			return fmt.Errorf("failed to get similar tracks: %w", err)
		}
		return writeTable(cmd, weightedTable(tracks, "PLAYS"))
	}),
}

var trackTopFansCmd = &cobra.Command{
	Use:   "top-fans ARTIST TRACK",
	Short: "List a track's top listeners",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		fans, err := client.Tracks().GetTopFans(ctx, trackArg(args))
		if err != nil {
			return fmt.Errorf("failed to get top fans: %w", err)
		}
		return writeTable(cmd, weightedTable(fans, "WEIGHT"))
	}),
}

var trackTopTagsCmd = &cobra.Command{
	Use:   "top-tags ARTIST TRACK",
	Short: "List the tags most applied to a track",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		tags, err := client.Tracks().GetTopTags(ctx, trackArg(args))
		if err != nil {
			return fmt.Errorf("failed to get top tags: %w", err)
		}
		return writeTable(cmd, weightedTable(tags, "COUNT"))
	}),
}

// trackActionCmd builds one of the authenticated love/unlove/ban commands.
func trackActionCmd(use, short, done string, action func(*lastfm.TrackService, context.Context, lastfm.Track) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ARTIST TRACK",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
			t := trackArg(args)
			if err := action(client.Tracks(), ctx, t); err != nil {
				return fmt.Errorf("failed to %s track: %w", use, err)
			}
			logger.Info().Str("track", t.String()).Msg(done)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", done, t)
			return nil
		}),
	}
}

var trackShareCmd = &cobra.Command{
	Use:   "share ARTIST TRACK RECIPIENT[,RECIPIENT...]",
	Short: "Recommend a track to users or email addresses",
	Args:  cobra.ExactArgs(3),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		message, _ := cmd.Flags().GetString("message")
		recipients := splitRecipients(args[2])
		if err := client.Tracks().Share(ctx, trackArg(args), recipients, message); err != nil {
			return fmt.Errorf("failed to share track: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Shared %s with %d recipient(s).\n", trackArg(args), len(recipients))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.AddCommand(trackInfoCmd, trackSimilarCmd, trackTopFansCmd, trackTopTagsCmd, trackShareCmd,
		trackActionCmd("love", "Mark a track as loved", "Loved", (*lastfm.TrackService).Love),
		trackActionCmd("unlove", "Remove a track from your loved tracks", "Unloved", (*lastfm.TrackService).Unlove),
		trackActionCmd("ban", "Ban a track from radio", "Banned", (*lastfm.TrackService).Ban),
	)
	trackSimilarCmd.Flags().IntP("limit", "n", 20, "Maximum number of tracks")
	trackShareCmd.Flags().StringP("message", "m", "", "Message to include")
}

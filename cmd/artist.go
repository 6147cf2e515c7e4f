package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jfmyers9/lfm/internal/render"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var artistCmd = &cobra.Command{
	Use:   "artist",
	Short: "Look up artists",
}

var artistInfoCmd = &cobra.Command{
	Use:   "info ARTIST",
	Short: "Show an artist's statistics and biography",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		info, err := client.Artists().GetInfo(ctx, lastfm.Artist{Name: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get artist info: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", info.Artist.Name)
		fmt.Fprintf(out, "Listeners: %d\n", info.Listeners)
		fmt.Fprintf(out, "Plays:     %d\n", info.Playcount)
		if info.URL != "" {
			fmt.Fprintf(out, "URL:       %s\n", info.URL)
		}
		size, _ := cmd.Flags().GetString("image")
		if size != "" {
			s, err := lastfm.ParseImageSize(size)
			if err != nil {
				return err
			}
			if int(s) < len(info.Images) {
				fmt.Fprintf(out, "Image:     %s\n", info.Images[s])
			}
		}
		if summary := strings.TrimSpace(info.Bio.Summary); summary != "" {
			fmt.Fprintf(out, "\n%s\n", summary)
		}
		return nil
	}),
}

var artistSimilarCmd = &cobra.Command{
	Use:   "similar ARTIST",
	Short: "List similar artists",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		artists, err := client.Artists().GetSimilar(ctx, lastfm.Artist{Name: args[0]}, limit)
		if err != nil {
			return fmt.Errorf("failed to get similar artists: %w", err)
		}
		return writeTable(cmd, namesTable(artists))
	}),
}

var artistTopTracksCmd = &cobra.Command{
	Use:   "top-tracks ARTIST",
	Short: "List an artist's most played tracks",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		tracks, err := client.Artists().GetTopTracks(ctx, lastfm.Artist{Name: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get top tracks: %w", err)
		}
		return writeTable(cmd, weightedTable(tracks, "PLAYS"))
	}),
}

var artistTopAlbumsCmd = &cobra.Command{
	Use:   "top-albums ARTIST",
	Short: "List an artist's most played albums",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		albums, err := client.Artists().GetTopAlbums(ctx, lastfm.Artist{Name: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get top albums: %w", err)
		}
		return writeTable(cmd, weightedTable(albums, "PLAYS"))
	}),
}

var artistTopFansCmd = &cobra.Command{
	Use:   "top-fans ARTIST",
	Short: "List an artist's top listeners",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		fans, err := client.Artists().GetTopFans(ctx, lastfm.Artist{Name: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get top fans: %w", err)
		}
		return writeTable(cmd, weightedTable(fans, "WEIGHT"))
	}),
}

var artistTopTagsCmd = &cobra.Command{
	Use:   "top-tags ARTIST",
	Short: "List the tags most applied to an artist",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		tags, err := client.Artists().GetTopTags(ctx, lastfm.Artist{Name: args[0]}, limit)
		if err != nil {
			return fmt.Errorf("failed to get top tags: %w", err)
		}
		return writeTable(cmd, weightedTable(tags, "COUNT"))
	}),
}

var artistEventsCmd = &cobra.Command{
	Use:   "events ARTIST",
	Short: "List an artist's upcoming events",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		events, err := client.Artists().GetEvents(ctx, lastfm.Artist{Name: args[0]})
		if err != nil {
			return fmt.Errorf("failed to get events: %w", err)
		}
		t := render.NewTable("EVENT")
		for _, e := range events {
			t.Row(e.ID)
		}
		return writeTable(cmd, t)
	}),
}

var artistShareCmd = &cobra.Command{
	Use:   "share ARTIST RECIPIENT[,RECIPIENT...]",
	Short: "Recommend an artist to users or email addresses",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		message, _ := cmd.Flags().GetString("message")
		recipients := splitRecipients(args[1])
		if err := client.Artists().Share(ctx, lastfm.Artist{Name: args[0]}, recipients, message); err != nil {
			return fmt.Errorf("failed to share artist: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Shared %s with %d recipient(s).\n", args[0], len(recipients))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(artistCmd)
	artistCmd.AddCommand(artistInfoCmd, artistSimilarCmd, artistTopTracksCmd, artistTopAlbumsCmd,
		artistTopFansCmd, artistTopTagsCmd, artistEventsCmd, artistShareCmd)

	artistInfoCmd.Flags().String("image", "", "Also print the image URL of this size (small, medium, large, extralarge, mega)")
	artistSimilarCmd.Flags().IntP("limit", "n", 20, "Maximum number of artists")
	artistTopTagsCmd.Flags().IntP("limit", "n", -1, "Maximum number of tags (-1 for all)")
	artistShareCmd.Flags().StringP("message", "m", "", "Message to include")
}

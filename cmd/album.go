package cmd

import (
	"context"
	"fmt"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Look up albums",
}

var albumInfoCmd = &cobra.Command{
	Use:   "info ARTIST ALBUM",
	Short: "Show an album's statistics and tags",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		info, err := client.Albums().GetInfo(ctx, lastfm.Album{Artist: args[0], Title: args[1]})
		if err != nil {
			return fmt.Errorf("failed to get album info: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", info.Album)
		if info.ReleaseDate != "" {
			fmt.Fprintf(out, "Released:  %s\n", info.ReleaseDate)
		}
		fmt.Fprintf(out, "Listeners: %d\n", info.Listeners)
		fmt.Fprintf(out, "Plays:     %d\n", info.Playcount)
		if len(info.TopTags) > 0 {
			fmt.Fprintf(out, "Tags:      %s\n", joinNames(info.TopTags))
		}
		return nil
	}),
}

var albumCoverCmd = &cobra.Command{
	Use:   "cover ARTIST ALBUM",
	Short: "Print the URL of an album's cover art",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("size")
		size, err := lastfm.ParseImageSize(name)
		if err != nil {
			return err
		}
		url, err := client.Albums().GetImageURL(ctx, lastfm.Album{Artist: args[0], Title: args[1]}, size)
		if err != nil {
			return fmt.Errorf("failed to get cover: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	}),
}

var albumTopTagsCmd = &cobra.Command{
	Use:   "top-tags ARTIST ALBUM",
	Short: "List the tags most applied to an album",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		tags, err := client.Albums().GetTopTags(ctx, lastfm.Album{Artist: args[0], Title: args[1]})
		if err != nil {
			return fmt.Errorf("failed to get top tags: %w", err)
		}
		return writeTable(cmd, weightedTable(tags, "COUNT"))
	}),
}

func init() {
	rootCmd.AddCommand(albumCmd)
	albumCmd.AddCommand(albumInfoCmd, albumCoverCmd, albumTopTagsCmd)
	albumCoverCmd.Flags().String("size", "extralarge", "Image size (small, medium, large, extralarge, mega)")
}

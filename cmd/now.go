/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/jfmyers9/lfm/internal/render"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

// errNotPlaying makes now exit non-zero without printing anything.
var errNotPlaying = errors.New("nothing playing")

// nowCmd represents the now command
var nowCmd = &cobra.Command{
	Use:   "now [USER]",
	Short: "Display the track a user is scrobbling right now",
	Long: `Show the track a Last.fm user is currently playing.

The output format can be customized in ~/.config/lfm/config.yaml
(now.format) using a Go template. Available fields: .Artist, .Name, .Album

Exit codes:
  0 - Track is currently playing
  1 - No track playing or the lookup failed`,
	Args: cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		user, err := userArg(args)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = cfg.Now.Format
		}
		width, _ := cmd.Flags().GetInt("width")
		if width == 0 {
			width = cfg.Now.Width
		}

		tracks, err := client.Users().GetRecentTracks(ctx, user, 1)
		if err != nil {
			return fmt.Errorf("failed to get recent tracks: %w", err)
		}
		playing, ok := nowPlaying(tracks)
		if !ok {
			return errNotPlaying
		}

		output, err := formatNowPlaying(playing, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Fit(output, width))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(nowCmd)

	nowCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	nowCmd.Flags().IntP("width", "w", 0, "Fixed output width (0=disabled, overrides config)")
}

// playingTrack is the data the now template sees.
type playingTrack struct {
	Artist string
	Name   string
	Album  string
}

// nowPlaying picks the entry flagged as playing. The service lists it
// first when there is one.
func nowPlaying(tracks []lastfm.RecentTrack) (playingTrack, bool) {
	for _, rt := range tracks {
		if rt.NowPlaying {
			return playingTrack{Artist: rt.Track.Artist, Name: rt.Track.Title, Album: rt.Album}, true
		}
	}
	return playingTrack{}, false
}

// formatNowPlaying applies the template to the track data
func formatNowPlaying(track playingTrack, templateStr string) (string, error) {
	tmpl, err := template.New("output").Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, track); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var scrobbleCmd = &cobra.Command{
	Use:   "scrobble ARTIST TRACK",
	Short: "Submit a play to your Last.fm profile",
	Long: `Submit a play to your Last.fm profile.

When both --duration and --played are given the play is only submitted if
it qualifies: the track is at least 30s long and was played for half its
length or four minutes, whichever comes first.`,
	Args: cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		play, err := playFromFlags(cmd, args)
		if err != nil {
			return err
		}

		played, _ := cmd.Flags().GetDuration("played")
		if play.Duration > 0 && played > 0 && !lastfm.ShouldScrobble(play.Duration, played) {
			fmt.Fprintf(cmd.OutOrStdout(), "Not scrobbled: played %s of %s\n",
				formatDuration(played), formatDuration(play.Duration))
			return nil
		}

		at := time.Now()
		if raw, _ := cmd.Flags().GetString("at"); raw != "" {
			if at, err = lastfm.ParseTimestamp(raw); err != nil {
				return err
			}
		}

		resp, err := client.Scrobble().Scrobble(ctx, play, at)
		if err != nil {
			return fmt.Errorf("failed to scrobble: %w", err)
		}
		return reportScrobbles(cmd, resp)
	}),
}

var nowPlayingCmd = &cobra.Command{
	Use:   "now-playing ARTIST TRACK",
	Short: "Set the track shown as playing on your profile",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		play, err := playFromFlags(cmd, args)
		if err != nil {
			return err
		}
		resp, err := client.Scrobble().UpdateNowPlaying(ctx, play)
		if err != nil {
			return fmt.Errorf("failed to update now playing: %w", err)
		}
		if resp.IgnoredMessage.Code != 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Ignored: %s\n", resp.IgnoredMessage.Text)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Now playing: %s - %s\n", resp.Artist, resp.Track)
		return nil
	}),
}

var scrobbleImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Submit plays from a tab separated file",
	Long: `Submit plays listed in FILE, one per line:

  TIMESTAMP<TAB>ARTIST<TAB>TRACK[<TAB>ALBUM[<TAB>DURATION_SECONDS]]

TIMESTAMP is unix seconds. Lines starting with # are skipped. Plays are
sent in batches of 50. Use - to read standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		scrobbles, err := parseScrobbleLog(r)
		if err != nil {
			return err
		}

		total := &lastfm.ScrobbleResponse{}
		for start := 0; start < len(scrobbles); start += lastfm.MaxBatchSize {
			batch := scrobbles[start:min(start+lastfm.MaxBatchSize, len(scrobbles))]
			ctx, cancel := commandContext(cmd)
			resp, err := client.Scrobble().ScrobbleBatch(ctx, batch)
			cancel()
			if err != nil {
				return fmt.Errorf("failed to scrobble plays %d-%d: %w", start+1, start+len(batch), err)
			}
			logger.Debug().Int("accepted", resp.Accepted).Int("ignored", resp.Ignored).Msg("Submitted batch")
			total.Accepted += resp.Accepted
			total.Ignored += resp.Ignored
			total.Scrobbles = append(total.Scrobbles, resp.Scrobbles...)
		}
		return reportScrobbles(cmd, total)
	},
}

func init() {
	rootCmd.AddCommand(scrobbleCmd)
	scrobbleCmd.AddCommand(scrobbleImportCmd)
	rootCmd.AddCommand(nowPlayingCmd)

	for _, c := range []*cobra.Command{scrobbleCmd, nowPlayingCmd} {
		c.Flags().String("album", "", "Album name")
		c.Flags().String("album-artist", "", "Album artist, if different from the track artist")
		c.Flags().Duration("duration", 0, "Track length")
		c.Flags().Int("track-number", 0, "Position on the album")
		c.Flags().String("mbid", "", "MusicBrainz track ID")
	}
	scrobbleCmd.Flags().String("at", "", "When the play started, as unix seconds (default now)")
	scrobbleCmd.Flags().Duration("played", 0, "How long the track was played")
}

func playFromFlags(cmd *cobra.Command, args []string) (lastfm.Play, error) {
	play := lastfm.Play{Artist: args[0], Track: args[1]}
	play.Album, _ = cmd.Flags().GetString("album")
	play.AlbumArtist, _ = cmd.Flags().GetString("album-artist")
	play.Duration, _ = cmd.Flags().GetDuration("duration")
	play.TrackNumber, _ = cmd.Flags().GetInt("track-number")
	play.MBTrackID, _ = cmd.Flags().GetString("mbid")
	if play.Artist == "" || play.Track == "" {
		return lastfm.Play{}, errors.New("artist and track are required")
	}
	return play, nil
}

// parseScrobbleLog reads TIMESTAMP, ARTIST, TRACK and optional ALBUM and
// DURATION columns separated by tabs.
func parseScrobbleLog(r io.Reader) ([]lastfm.Scrobble, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var out []lastfm.Scrobble
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 3 || len(rec) > 5 {
			return nil, fmt.Errorf("line %d: want 3 to 5 columns, got %d", line, len(rec))
		}

		at, err := lastfm.ParseTimestamp(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sc := lastfm.Scrobble{
			Play:      lastfm.Play{Artist: rec[1], Track: rec[2]},
			Timestamp: at,
		}
		if len(rec) > 3 {
			sc.Play.Album = rec[3]
		}
		if len(rec) > 4 && rec[4] != "" {
			secs, err := strconv.Atoi(rec[4])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid duration %q", line, rec[4])
			}
			sc.Play.Duration = time.Duration(secs) * time.Second
		}
		out = append(out, sc)
	}
}

func reportScrobbles(cmd *cobra.Command, resp *lastfm.ScrobbleResponse) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Accepted: %d, Ignored: %d\n", resp.Accepted, resp.Ignored)
	for _, sc := range resp.Scrobbles {
		if sc.IgnoredMessage.Code != 0 {
			fmt.Fprintf(out, "  ignored %s - %s: %s\n", sc.Artist, sc.Track, sc.IgnoredMessage.Text)
		}
	}
	return nil
}

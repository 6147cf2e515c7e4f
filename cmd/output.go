package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/lfm/internal/render"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

func writeTable(cmd *cobra.Command, t *render.Table) error {
	if t.Len() == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No results.")
		return err
	}
	return t.Write(cmd.OutOrStdout())
}

func weightedTable[T any](items []lastfm.Weighted[T], header string) *render.Table {
	t := render.NewTable("#", "NAME", header)
	for i, it := range items {
		t.Row(i+1, it.Item, it.Weight)
	}
	return t
}

func namesTable[T fmt.Stringer](items []T) *render.Table {
	t := render.NewTable("#", "NAME")
	for i, it := range items {
		t.Row(i+1, it.String())
	}
	return t
}

func chartTable[T any](chart lastfm.WeeklyChart[T]) *render.Table {
	t := render.NewTable("RANK", "NAME", "WEIGHT")
	for _, it := range chart.Items {
		t.Row(it.Rank, it.Item, it.Weight)
	}
	return t
}

func formatSpan(s lastfm.TimeSpan) string {
	return s.From.Local().Format("2006-01-02") + " to " + s.To.Local().Format("2006-01-02")
}

// parseSpan reads --from/--to as unix seconds. Both empty selects the
// latest chart.
func parseSpan(from, to string) (*lastfm.TimeSpan, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from == "" || to == "" {
		return nil, fmt.Errorf("--from and --to must be given together")
	}
	f, err := lastfm.ParseTimestamp(from)
	if err != nil {
		return nil, err
	}
	t, err := lastfm.ParseTimestamp(to)
	if err != nil {
		return nil, err
	}
	return &lastfm.TimeSpan{From: f, To: t}, nil
}

// commandContext bounds a command's calls by the configured timeout times
// the attempts allowed.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	budget := cfg.HTTPTimeout * time.Duration(max(cfg.MaxRetries, 1)+1)
	return context.WithTimeout(cmd.Context(), budget)
}

func splitRecipients(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

type clientFunc func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error

// withClient adapts fn to a cobra RunE that builds the client and bounds
// the command's context.
func withClient(fn clientFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		return fn(ctx, client, cmd, args)
	}
}

func joinNames[T fmt.Stringer](items []T) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.String()
	}
	return strings.Join(names, ", ")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func spanTable(spans []lastfm.TimeSpan) *render.Table {
	t := render.NewTable("FROM", "TO", "WEEK")
	for _, s := range spans {
		t.Row(s.From.Unix(), s.To.Unix(), formatSpan(s))
	}
	return t
}

// userArg returns the user named on the command line, falling back to the
// user saved by 'lfm auth'.
func userArg(args []string) (lastfm.User, error) {
	if len(args) > 0 {
		return lastfm.User{Name: args[0]}, nil
	}
	if cfg.LastFM.Username == "" {
		return lastfm.User{}, fmt.Errorf("no user given and none saved, pass USER or run 'lfm auth'")
	}
	return lastfm.User{Name: cfg.LastFM.Username}, nil
}

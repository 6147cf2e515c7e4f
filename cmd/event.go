package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Look up and attend events",
}

func eventArg(s string) (lastfm.Event, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return lastfm.Event{}, fmt.Errorf("invalid event id %q", s)
	}
	return lastfm.Event{ID: id}, nil
}

var eventInfoCmd = &cobra.Command{
	Use:   "info EVENT_ID",
	Short: "Show an event's line-up and venue",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		e, err := eventArg(args[0])
		if err != nil {
			return err
		}
		info, err := client.Events().GetInfo(ctx, e)
		if err != nil {
			return fmt.Errorf("failed to get event info: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", info.Title)
		if info.StartDate != "" {
			fmt.Fprintf(out, "Date:      %s\n", info.StartDate)
		}
		if info.Venue != "" {
			fmt.Fprintf(out, "Venue:     %s\n", info.Venue)
		}
		if info.Headliner.Name != "" {
			fmt.Fprintf(out, "Headliner: %s\n", info.Headliner)
		}
		if len(info.Artists) > 0 {
			fmt.Fprintf(out, "Artists:   %s\n", joinNames(info.Artists))
		}
		return nil
	}),
}

var eventAttendeesCmd = &cobra.Command{
	Use:   "attendees EVENT_ID",
	Short: "List the users attending an event",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		e, err := eventArg(args[0])
		if err != nil {
			return err
		}
		users, err := client.Events().GetAttendees(ctx, e)
		if err != nil {
			return fmt.Errorf("failed to get attendees: %w", err)
		}
		return writeTable(cmd, namesTable(users))
	}),
}

var attendanceStatuses = map[string]lastfm.AttendanceStatus{
	"yes":   lastfm.Attending,
	"maybe": lastfm.MaybeAttending,
	"no":    lastfm.NotAttending,
}

var eventAttendCmd = &cobra.Command{
	Use:   "attend EVENT_ID yes|maybe|no",
	Short: "Record whether you are attending an event",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		e, err := eventArg(args[0])
		if err != nil {
			return err
		}
		status, ok := attendanceStatuses[args[1]]
		if !ok {
			return fmt.Errorf("unknown attendance %q (want yes, maybe or no)", args[1])
		}
		if err := client.Events().Attend(ctx, e, status); err != nil {
			return fmt.Errorf("failed to record attendance: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %q for event %s.\n", args[1], e)
		return nil
	}),
}

var eventShareCmd = &cobra.Command{
	Use:   "share EVENT_ID RECIPIENT[,RECIPIENT...]",
	Short: "Recommend an event to users or email addresses",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, client *lastfm.Client, cmd *cobra.Command, args []string) error {
		e, err := eventArg(args[0])
		if err != nil {
			return err
		}
		message, _ := cmd.Flags().GetString("message")
		recipients := splitRecipients(args[1])
		if err := client.Events().Share(ctx, e, recipients, message); err != nil {
			return fmt.Errorf("failed to share event: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Shared event %s with %d recipient(s).\n", e, len(recipients))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(eventCmd)
	eventCmd.AddCommand(eventInfoCmd, eventAttendeesCmd, eventAttendCmd, eventShareCmd)
	eventShareCmd.Flags().StringP("message", "m", "", "Message to include")
}

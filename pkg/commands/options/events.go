// Package options defines shared flag helpers for CLI commands.
package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-01-02"
	layoutDateTime = "2006-01-02T15:04"
)

// EventOptions captures the event fields a command can set or filter on.
type EventOptions struct {
	Title       string
	StartString string
	EndString   string
	Description string
	Query       string
	OnString    string
}

func AddEventFieldArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVar(&o.StartString, "start", "",
		`When the event starts, example: --start="2026-03-01T09:00".`)
	cmd.Flags().StringVar(&o.EndString, "end", "",
		`When the event ends, example: --end="2026-03-01T10:00".`)
	cmd.Flags().StringVarP(&o.Description, "description", "d", "",
		"An optional description.")
}

func AddQueryArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVarP(&o.Query, "query", "q", "",
		"Match events whose title contains this, case-insensitively.")
}

func AddOnArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Filter to a single day, example: --on="2026-03-01" or --on=today.`)
}

// GetOn resolves the --on flag; "today" is understood.
func (o *EventOptions) GetOn() (*time.Time, error) {
	if o.OnString == "" {
		return nil, nil
	}
	if o.OnString == "today" {
		t := time.Now()
		return &t, nil
	}
	t, err := time.ParseInLocation(layoutISO, o.OnString, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetStart and GetEnd parse the respective flags, accepting a datetime or a
// bare date.
func (o *EventOptions) GetStart() (time.Time, error) {
	return parseWhen(o.StartString, "start")
}

func (o *EventOptions) GetEnd() (time.Time, error) {
	return parseWhen(o.EndString, "end")
}

func parseWhen(s, flag string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("--%s is required", flag)
	}
	if t, err := time.ParseInLocation(layoutDateTime, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutISO, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("--%s: can not parse %q", flag, s)
}

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of the event.")
}

func AddIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().StringVar(&o.ID, "id", "",
		"Target an event by its exact id.")
}

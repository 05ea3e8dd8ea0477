package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mmynk/attendance/internal/auth"
	"github.com/mmynk/attendance/internal/config"
	"github.com/mmynk/attendance/internal/roster"
)

var (
	groupName  string
	exportDate string
	outPath    string
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash for auth.password_hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List stored groups with their sizes",
	Args:  cobra.NoArgs,
	RunE:  runGroups,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a group's attendance list as CSV",
	Long: `Export a group's attendance list as CSV.

With --date the attendance record of that day is exported, otherwise the
plain roster. Nothing is written back to the store.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Export a group's tracked dates as an iCalendar file",
	Args:  cobra.NoArgs,
	RunE:  runCalendar,
}

func init() {
	for _, cmd := range []*cobra.Command{exportCmd, calendarCmd} {
		cmd.Flags().StringVarP(&groupName, "group", "g", "", "Group name")
		cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file, \"-\" for stdout (default: generated filename)")
		cmd.MarkFlagRequired("group")
	}
	exportCmd.Flags().StringVarP(&exportDate, "date", "d", "", "Tracked date to export (YYYY-MM-DD)")
}

func runGroups(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	_, groups, err := loadGroups(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(groups) == 0 {
		fmt.Fprintln(out, "No groups stored")
		return nil
	}
	fmt.Fprintf(out, "%-40s %7s %6s  %s\n", "GROUP", "PEOPLE", "DATES", "UPDATED")
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		g := groups[name]
		updated := "-"
		if !g.UpdatedAt.IsZero() {
			updated = g.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "%-40s %7d %6d  %s\n", name, len(g.People), len(g.Dates), updated)
	}
	return nil
}

// openState loads the group named by --group into a working roster state.
func openState(cmd *cobra.Command) (*roster.State, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	cfg, groups, err := loadGroups(ctx)
	if err != nil {
		return nil, err
	}
	record, ok := groups[groupName]
	if !ok {
		return nil, fmt.Errorf("%w: group %q is not stored", roster.ErrNoGroup, groupName)
	}

	s := roster.NewState(record)
	s.Features = featuresOf(cfg)
	if s.Location, err = cfg.Location(); err != nil {
		return nil, err
	}
	return s, nil
}

func featuresOf(cfg *config.Config) roster.Features {
	return roster.Features{
		Notes:          cfg.Features.Notes,
		TimedResults:   cfg.Features.TimedResults,
		RecurringDates: cfg.Features.RecurringDates,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openState(cmd)
	if err != nil {
		return err
	}

	if exportDate != "" {
		id := ""
		for _, d := range s.Group.Dates {
			if d.Date == exportDate {
				id = d.ID
				break
			}
		}
		if id == "" {
			return fmt.Errorf("%w: date %s is not tracked in %q", roster.ErrNotFound, exportDate, groupName)
		}
		if _, err := s.Activate(id); err != nil {
			return err
		}
	}

	export, err := s.ExportCSV()
	if err != nil {
		return err
	}
	return writeExport(cmd, export)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	s, err := openState(cmd)
	if err != nil {
		return err
	}
	export, err := s.ExportCalendar()
	if err != nil {
		return err
	}
	return writeExport(cmd, export)
}

func writeExport(cmd *cobra.Command, export *roster.Export) error {
	if outPath == "-" {
		_, err := cmd.OutOrStdout().Write(export.Content)
		return err
	}

	path := outPath
	if path == "" {
		path = export.Filename
	}
	if err := os.WriteFile(path, export.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", path, len(export.Content))
	return nil
}

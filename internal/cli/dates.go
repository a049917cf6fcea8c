// dates.go implements the keepsake dates commands for the wishlist.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keepsake-app/keepsake/internal/collection"
	"github.com/keepsake-app/keepsake/internal/workspace"
)

var (
	datesLocation string
	datesYear     string
	datesCity     string
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "Manage the date wishlist",
}

var datesAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Suggest a place to go",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDatesAdd,
}

var datesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List suggestions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDatesList,
}

var datesToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a suggestion between visited and not yet",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatesToggle,
}

var datesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a suggestion (keeper only)",
	Long: `Deletes the suggestion with the given ID or unique ID prefix. The gate
answers must be passed with --year and --city, and only the keeper's answer
may delete.`,
	Args: cobra.ExactArgs(1),
	RunE: runDatesRm,
}

func init() {
	datesAddCmd.Flags().StringVar(&datesLocation, "location", "", "Where it is (default: "+collection.LocationTBD+")")
	datesListCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	unlockFlags(datesRmCmd, &datesYear, &datesCity)

	datesCmd.AddCommand(datesAddCmd)
	datesCmd.AddCommand(datesListCmd)
	datesCmd.AddCommand(datesToggleCmd)
	datesCmd.AddCommand(datesRmCmd)
}

func runDatesAdd(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	d, err := ws.Wishlist.Add(context.Background(), strings.Join(args, " "), datesLocation)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) as %s\n", d.Name, d.Location, shortID(d.ID))
	return nil
}

func runDatesList(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	dates := ws.Wishlist.Dates()
	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, dates)
	}
	if len(dates) == 0 {
		fmt.Fprintln(out, "Nothing planned yet.")
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tVISITED\tNAME\tLOCATION\tADDED")
	for _, d := range dates {
		visited := "no"
		if d.Visited {
			visited = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			shortID(d.ID), visited, d.Name, d.Location, d.DateAdded.Local().Format("2006-01-02"))
	}
	return tw.Flush()
}

func runDatesToggle(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	d, err := resolveDate(ws, args[0])
	if err != nil {
		return err
	}
	if err := ws.Wishlist.Toggle(context.Background(), d.ID); err != nil {
		return err
	}

	state := "visited"
	if d.Visited {
		state = "not visited yet"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", d.Name, state)
	return nil
}

func runDatesRm(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	d, err := resolveDate(ws, args[0])
	if err != nil {
		return err
	}
	role, err := unlockRole(ws, datesYear, datesCity)
	if err != nil {
		return err
	}
	if err := ws.Wishlist.Delete(context.Background(), role, d.ID); err != nil {
		return deleteErr(err, role)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", d.Name)
	return nil
}

// resolveDate finds the suggestion whose ID equals or uniquely starts with prefix.
func resolveDate(ws *workspace.Workspace, prefix string) (collection.DateSuggestion, error) {
	if d, ok := ws.Wishlist.Find(prefix); ok {
		return d, nil
	}
	var found []collection.DateSuggestion
	for _, d := range ws.Wishlist.Dates() {
		if strings.HasPrefix(d.ID, prefix) {
			found = append(found, d)
		}
	}
	switch len(found) {
	case 0:
		return collection.DateSuggestion{}, fmt.Errorf("no suggestion with id %q", prefix)
	case 1:
		return found[0], nil
	default:
		return collection.DateSuggestion{}, fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(found))
	}
}

// shortID trims an ID to its first eight characters for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

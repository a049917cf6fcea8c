// status.go implements the keepsake status command, which summarizes the
// collections and shows the most recent logged events.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keepsake-app/keepsake/internal/log"
)

var statusEvents int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collection sizes, storage location and recent events",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&statusEvents, "events", "n", 5, "Number of recent events to show")
}

func runStatus(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	visited := 0
	for _, d := range ws.Wishlist.Dates() {
		if d.Visited {
			visited++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Storage:  %s (%s)\n", ws.Cfg.StoragePath(root), ws.Cfg.Storage.Backend)
	fmt.Fprintf(out, "Gallery:  %d image(s)\n", ws.Gallery.Len())
	fmt.Fprintf(out, "Wishlist: %d place(s), %d visited\n", ws.Wishlist.Len(), visited)

	if statusEvents <= 0 {
		return nil
	}
	events, err := ws.Logger.Tail(statusEvents)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	if len(events) == 0 {
		fmt.Fprintln(out, "No events yet.")
		return nil
	}
	fmt.Fprintln(out, "Recent events:")
	tw := newTable(out)
	for _, e := range events {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Time.Local().Format("2006-01-02 15:04"), e.Event, eventDetail(e))
	}
	return tw.Flush()
}

// eventDetail renders the populated optional fields of e.
func eventDetail(e log.LogEvent) string {
	var parts []string
	if e.Role != "" {
		parts = append(parts, "role="+e.Role)
	}
	if e.Step != 0 {
		parts = append(parts, fmt.Sprintf("step=%d", e.Step))
	}
	if e.Key != "" {
		parts = append(parts, "key="+e.Key)
	}
	if e.Name != "" {
		parts = append(parts, "name="+e.Name)
	}
	if e.ID != "" {
		parts = append(parts, "id="+shortID(e.ID))
	}
	if e.Index != nil {
		parts = append(parts, fmt.Sprintf("index=%d", *e.Index))
	}
	if e.Count != 0 {
		parts = append(parts, fmt.Sprintf("count=%d", e.Count))
	}
	if e.Reason != "" {
		parts = append(parts, "reason="+e.Reason)
	}
	if e.Error != "" {
		parts = append(parts, "error="+e.Error)
	}
	return strings.Join(parts, " ")
}

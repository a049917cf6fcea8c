// gallery.go implements the keepsake gallery commands: add, list, export and rm.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/keepsake-app/keepsake/internal/codec"
)

var (
	galleryYear string
	galleryCity string
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Manage the shared photo gallery",
}

var galleryAddCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Compress and add images to the gallery",
	Long: `Compresses each file to a JPEG no wider than the configured maximum and
appends the results to the gallery in argument order. Files that cannot be
decoded are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGalleryAdd,
}

var galleryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List gallery images",
	Args:  cobra.NoArgs,
	RunE:  runGalleryList,
}

var galleryExportCmd = &cobra.Command{
	Use:   "export <index> <file>",
	Short: "Write one gallery image to a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runGalleryExport,
}

var galleryRmCmd = &cobra.Command{
	Use:   "rm <index>",
	Short: "Delete a gallery image (keeper only)",
	Long: `Deletes the image at the given 1-based index, as shown by 'gallery list'.
The gate answers must be passed with --year and --city, and only the keeper's
answer may delete.`,
	Args: cobra.ExactArgs(1),
	RunE: runGalleryRm,
}

func init() {
	galleryListCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	unlockFlags(galleryRmCmd, &galleryYear, &galleryCity)

	galleryCmd.AddCommand(galleryAddCmd)
	galleryCmd.AddCommand(galleryListCmd)
	galleryCmd.AddCommand(galleryExportCmd)
	galleryCmd.AddCommand(galleryRmCmd)
}

// galleryEntry is the JSON shape of one listed image.
type galleryEntry struct {
	Index int    `json:"index"`
	MIME  string `json:"mime"`
	Bytes int    `json:"bytes"`
}

func runGalleryAdd(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	srcs := make([]codec.Source, len(args))
	for i, path := range args {
		srcs[i] = codec.FileSource(path)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	res := ws.Codec.CompressBatch(ctx, srcs, ws.Logger)

	for _, f := range res.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", f.Name, f.Err)
	}
	if len(res.Payloads) == 0 {
		return fmt.Errorf("no images added")
	}
	if err := ws.Gallery.Add(ctx, res.Payloads...); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %d image(s); gallery now holds %d\n", len(res.Payloads), ws.Gallery.Len())
	return nil
}

func runGalleryList(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	images := ws.Gallery.Images()
	entries := make([]galleryEntry, len(images))
	for i, p := range images {
		raw, _ := p.Decode()
		entries[i] = galleryEntry{Index: i + 1, MIME: p.MIME(), Bytes: len(raw)}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "The gallery is empty.")
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "INDEX\tTYPE\tSIZE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", e.Index, e.MIME, humanSize(e.Bytes))
	}
	return tw.Flush()
}

func runGalleryExport(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	i, err := parseIndex(args[0], ws.Gallery.Len())
	if err != nil {
		return err
	}
	raw, err := ws.Gallery.Images()[i].Decode()
	if err != nil {
		return fmt.Errorf("decoding image %d: %w", i+1, err)
	}
	if err := os.WriteFile(args[1], raw, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", args[1], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote image %d to %s\n", i+1, args[1])
	return nil
}

func runGalleryRm(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	i, err := parseIndex(args[0], ws.Gallery.Len())
	if err != nil {
		return err
	}
	role, err := unlockRole(ws, galleryYear, galleryCity)
	if err != nil {
		return err
	}
	if err := ws.Gallery.Delete(context.Background(), role, i); err != nil {
		return deleteErr(err, role)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted image %d; %d left\n", i+1, ws.Gallery.Len())
	return nil
}

// parseIndex converts a 1-based index argument into a 0-based slice index.
func parseIndex(arg string, n int) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("no image at index %d (gallery holds %d)", i, n)
	}
	return i - 1, nil
}

// Package cli defines Cobra command definitions for the keepsake CLI.
// This file contains the root command, global flags and shared helpers.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keepsake-app/keepsake/internal/collection"
	"github.com/keepsake-app/keepsake/internal/gate"
	"github.com/keepsake-app/keepsake/internal/tui"
	"github.com/keepsake-app/keepsake/internal/tui/app"
	"github.com/keepsake-app/keepsake/internal/workspace"
)

var (
	verbose    bool
	dataDir    string
	jsonOutput bool
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "keepsake",
	Short: "A small gated story with a shared gallery and date wishlist",
	Long: `Keepsake opens with a two-question gate, then walks through a timeline,
a photo gallery, a surprise reveal and a question worth asking. Photos and
date ideas are kept on disk between runs.

Run without arguments in a terminal for the interactive experience, or use
the gallery and dates subcommands to manage collections directly.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd)
		if err != nil {
			return err
		}
		defer ws.Close()

		if !tui.IsTTY() {
			return tui.NewFallbackRunner(ws, cmd.OutOrStdout()).Run()
		}
		return tui.Run(app.New(tui.NewModel(ws)))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print where config, storage and the event log live")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "Project directory holding .keepsake/ (default: current directory)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(galleryCmd)
	rootCmd.AddCommand(datesCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(hashCmd)
}

// projectRoot returns --dir or the working directory.
func projectRoot() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return dir, nil
}

// openWorkspace opens the project for cmd. Callers close it.
func openWorkspace(cmd *cobra.Command) (*workspace.Workspace, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}
	ws, err := workspace.Open(context.Background(), root)
	if err != nil {
		return nil, err
	}
	if verbose {
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "project: %s\n", root)
		fmt.Fprintf(w, "storage: %s (%s)\n", ws.Cfg.StoragePath(root), ws.Cfg.Storage.Backend)
		fmt.Fprintf(w, "log:     %s\n", ws.Logger.Path())
	}
	return ws, nil
}

// unlockFlags adds the --year and --city flags that authorize deletions.
func unlockFlags(cmd *cobra.Command, year, city *string) {
	cmd.Flags().StringVar(year, "year", "", "Gate answer for step 1")
	cmd.Flags().StringVar(city, "city", "", "Gate answer for step 2")
}

// unlockRole runs the answers through the gate and returns the role they
// earn. The collections decide what that role may delete.
func unlockRole(ws *workspace.Workspace, year, city string) (gate.Role, error) {
	role, err := ws.Unlock(year, city)
	if err != nil {
		return gate.RoleNone, fmt.Errorf("deleting requires the gate answers (--year, --city): %w", err)
	}
	return role, nil
}

// deleteErr explains a refused deletion.
func deleteErr(err error, role gate.Role) error {
	if errors.Is(err, collection.ErrPermissionDenied) {
		return fmt.Errorf("deleting needs the keeper's answer; %s access can only add", role)
	}
	return err
}

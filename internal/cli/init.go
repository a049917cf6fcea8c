// init.go implements the keepsake init command, which writes a starter
// .keepsake/config.yaml with optionally hashed gate answers.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keepsake-app/keepsake/internal/config"
	"github.com/keepsake-app/keepsake/internal/gate"
)

var (
	initForce   bool
	initBackend string
	initYear    string
	initCity    string
	initKeeper  string
	initHash    bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .keepsake/config.yaml",
	Long: `Creates .keepsake/config.yaml in the project directory with the default
settings. Gate answers given as flags replace the defaults; with --hash they
are stored as bcrypt hashes instead of plaintext.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
	initCmd.Flags().StringVar(&initBackend, "backend", config.BackendSQLite, "Storage backend: sqlite or file")
	initCmd.Flags().StringVar(&initYear, "answer-year", "", "Step 1 answer")
	initCmd.Flags().StringVar(&initCity, "answer-city", "", "Step 2 answer for standard access")
	initCmd.Flags().StringVar(&initKeeper, "answer-keeper", "", "Step 2 answer for the keeper (may delete)")
	initCmd.Flags().BoolVar(&initHash, "hash", false, "Store answers as bcrypt hashes")
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	path := filepath.Join(config.Dir(root), "config.yaml")
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.DefaultConfig()
	cfg.Storage.Backend = initBackend
	if initYear != "" {
		cfg.Gate.Year = initYear
	}
	if initCity != "" {
		cfg.Gate.StandardCity = initCity
	}
	if initKeeper != "" {
		cfg.Gate.ElevatedCity = initKeeper
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if initHash {
		if err := hashGate(&cfg.Gate); err != nil {
			return err
		}
	}

	if err := config.WriteConfig(root, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s\n", path)
	fmt.Fprintf(out, "Storage: %s at %s\n", cfg.Storage.Backend, cfg.StoragePath(root))
	if !initHash {
		fmt.Fprintln(out, "Answers are stored in plaintext; rerun with --hash to hide them.")
	}
	return nil
}

// hashGate replaces the plaintext answers in g with bcrypt hashes.
func hashGate(g *config.GateConfig) error {
	answers := []struct {
		dst  *string
		city bool
	}{
		{&g.Year, false},
		{&g.StandardCity, true},
		{&g.ElevatedCity, true},
	}
	for _, a := range answers {
		h, err := gate.HashAnswer(*a.dst, a.city)
		if err != nil {
			return fmt.Errorf("hashing answer: %w", err)
		}
		*a.dst = h
	}
	return nil
}

// hash.go implements the keepsake hash command.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keepsake-app/keepsake/internal/gate"
)

var hashCity bool

var hashCmd = &cobra.Command{
	Use:   "hash <answer>",
	Short: "Print a bcrypt hash of a gate answer for config.yaml",
	Long: `Prints a bcrypt hash that can replace a plaintext answer in
.keepsake/config.yaml. City answers are case-folded before hashing, so pass
--city for the step 2 answers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := gate.HashAnswer(strings.Join(args, " "), hashCity)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), h)
		return nil
	},
}

func init() {
	hashCmd.Flags().BoolVar(&hashCity, "city", false, "Normalize as a city answer")
}

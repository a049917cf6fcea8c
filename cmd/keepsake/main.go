// Command keepsake runs the gated story TUI and its collection commands.
package main

import "github.com/keepsake-app/keepsake/internal/cli"

func main() {
	cli.Execute()
}

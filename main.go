// slide is the backend of the slide game: a 5x5 board where each move shoves a token
// into a row or a column.
//
// Usage:
//
//	slide serve                      - Start the HTTP and websocket servers (default)
//	slide play                       - Play a game in the terminal
//	slide suggest --board <cells>    - Print the advised move for a position
//
// Global flags:
//
//	--config <path>  - Path to the config file (default: ./config.yml)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slide",
	Short: "Slide - shove tokens into a 5x5 board until a line is yours",
	Long: `Slide is played on a 5x5 board. A move names a column (1-5) or a row (A-E)
and pushes a token in from the top or from the left; tokens in the way move on and
the last one falls off when the line is full. Five in a row, column or diagonal wins.

Available commands:
  serve    - Start the HTTP and websocket servers
  play     - Play in the terminal, alone against the bot or hot-seat
  suggest  - Print the move the bot would play in a position

Examples:
  slide serve --config ./config.yml
  slide play --mode two-player
  slide suggest --board "XXXX. ..... ..... ..... ....." --player O`,
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "./config.yml", "Path to the config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(suggestCmd)
}

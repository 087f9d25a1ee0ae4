// Command dealsctl queries the deals catalog from the terminal and
// prepares admin credentials for the API server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jafarshop/dealmarket/internal/catalog"
)

var (
	seedFile   string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:           "dealsctl",
	Short:         "Inspect and search the deals catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&seedFile, "seed", "", "Catalog seed file (default: embedded seed)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(intentCmd)
	rootCmd.AddCommand(offersCmd)
	rootCmd.AddCommand(hashPasscodeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(seedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Package cmd implements the command-line interface for shibi.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/shibi-dl/shibi/piped"
	"github.com/shibi-dl/shibi/query"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().Bool("schema", false, "Print the JSON schema of the output instead of resolving")

	resolveCmd.SetOut(os.Stdout)
}

// resolveCmd resolves a video's stream listing and prints it as JSON.
var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Resolve a video's stream listing with authoritative sizes and print it as JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		if lo.Must(cmd.Flags().GetBool("schema")) {
			lo.Must0(encoder.Encode(jsonschema.Reflect(&piped.Details{})))
			return
		}

		if len(args) == 0 {
			handleErr(errors.New("a video URL or ID is required"))
		}

		videoID, ok := query.VideoID(args[0]).Get()
		if !ok {
			handleErr(errors.New("no video ID found in " + args[0]))
		}

		details, err := resolveDetails(context.Background(), videoID)
		handleErr(err)

		lo.Must0(encoder.Encode(details))
	},
}

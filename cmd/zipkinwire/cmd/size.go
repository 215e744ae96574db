package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	zipkinwire "github.com/anirudhraja/zipkinwire"
)

// sizeCmd represents the size command
var sizeCmd = &cobra.Command{
	Use:   "size <spans.json>",
	Short: "Print the encoded size of each span without encoding",
	Long: `Size runs only the sizing pass of the codec and prints the exact
number of bytes each span would occupy on the wire, plus the total a
caller-owned buffer needs for the whole batch.

Example:
  zipkinwire size spans.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spans, err := readSpans(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, s := range spans {
			fmt.Fprintf(out, "span %d (%s): %d bytes\n", i, s.ID, zipkinwire.SizeOf(s))
		}
		fmt.Fprintf(out, "total: %d bytes\n", zipkinwire.SizeOfList(spans))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sizeCmd)
}

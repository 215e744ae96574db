package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool

	// logger stays a no-op unless --verbose swaps in a development config,
	// so encode output on stdout is never interleaved with diagnostics.
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zipkinwire",
	Short: "Encode Zipkin v2 spans into proto3 bytes",
	Long: `zipkinwire reads Zipkin v2 spans as JSON and encodes them into the
proto3 wire format a Zipkin collector accepts, using a write-only codec
that sizes every record exactly before writing it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log encode diagnostics to stderr")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anirudhraja/zipkinwire/model"
	"github.com/anirudhraja/zipkinwire/protodef"
	"github.com/anirudhraja/zipkinwire/schema"
)

var schemaCheck bool

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the canonical zipkin.proto definition",
	Long: `Schema prints the proto3 definition the encoder targets. With
--check it instead parses that definition and verifies every hand-laid
field number and kind value in the encoder against it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !schemaCheck {
			fmt.Fprint(cmd.OutOrStdout(), protodef.Source())
			return nil
		}
		n, err := checkSchema()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema check passed: %d assignments\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolVar(&schemaCheck, "check", false, "verify the encoder's field layout against the definition")
}

// checkSchema holds every field number and kind value the encoder writes
// against the parsed canonical definition, returning how many it checked.
func checkSchema() (int, error) {
	d, err := protodef.Load()
	if err != nil {
		return 0, err
	}

	checked := 0
	for _, fa := range schema.Layout() {
		msg, err := d.Message(fa.Message)
		if err != nil {
			return 0, err
		}
		number, err := msg.FieldNumber(fa.Field)
		if err != nil {
			return 0, err
		}
		if number != fa.Number {
			return 0, fmt.Errorf("%s.%s: encoder writes field %d, definition declares %d",
				fa.Message, fa.Field, fa.Number, number)
		}
		checked++
	}

	enum, err := d.Enum("zipkin.proto3.Span.Kind")
	if err != nil {
		return 0, err
	}
	for _, kind := range []model.Kind{model.Client, model.Server, model.Producer, model.Consumer} {
		number, err := enum.Value(string(kind))
		if err != nil {
			return 0, err
		}
		if uint64(number) != kind.Index() {
			return 0, fmt.Errorf("kind %s: encoder writes %d, definition declares %d",
				kind, kind.Index(), number)
		}
		checked++
	}
	return checked, nil
}

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	zipkinwire "github.com/anirudhraja/zipkinwire"
	"github.com/anirudhraja/zipkinwire/model"
)

var encodeOut string

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <spans.json>",
	Short: "Encode a JSON span file to proto3 bytes",
	Long: `Encode reads a single Zipkin v2 span object or an array of spans
from a JSON file and writes their proto3 encoding, the same bytes a
collector accepts on its protobuf endpoint.

Example:
  zipkinwire encode spans.json -o spans.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spans, err := readSpans(args[0])
		if err != nil {
			return err
		}

		start := time.Now()
		data, err := zipkinwire.MarshalList(spans)
		if err != nil {
			return err
		}
		logger.Info("encoded spans",
			zap.String("file", args[0]),
			zap.Int("spans", len(spans)),
			zap.Int("bytes", len(data)),
			zap.Duration("elapsed", time.Since(start)))

		if encodeOut == "" || encodeOut == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(encodeOut, data, 0644)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "", "write encoded bytes to a file instead of stdout")
}

// readSpans loads spans from a JSON file holding either one span object or
// an array of spans.
func readSpans(path string) ([]*model.Span, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseSpans(data)
}

func parseSpans(data []byte) ([]*model.Span, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("no spans in input")
	}
	if trimmed[0] == '[' {
		var spans []*model.Span
		if err := json.Unmarshal(trimmed, &spans); err != nil {
			return nil, fmt.Errorf("parse span list: %w", err)
		}
		return spans, nil
	}
	span := &model.Span{}
	if err := json.Unmarshal(trimmed, span); err != nil {
		return nil, fmt.Errorf("parse span: %w", err)
	}
	return []*model.Span{span}, nil
}

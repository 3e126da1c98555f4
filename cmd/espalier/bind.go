package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/spf13/cobra"
)

var bindCmd = &cobra.Command{
	Use:   "bind <form>",
	Short: "Bind a submission to a form and print the report",
	Long: `Reads a JSON submission (from --data, --file or stdin), binds it to the
named form and prints the validation report as JSON. Exits non-zero when the
submission is invalid or could not be converted to storage format.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		data, _ := cmd.Flags().GetString("data")
		file, _ := cmd.Flags().GetString("file")
		debug, _ := cmd.Flags().GetBool("debug")

		opts := []espalier.Option{}
		if debug {
			opts = append(opts, espalier.WithLogger(logging.New(slog.LevelDebug)))
		}

		eng, err := espalier.New(dir, opts...)
		if err != nil {
			fmt.Printf("Error initializing espalier: %v\n", err)
			os.Exit(1)
		}

		raw, err := readSubmission(data, file)
		if err != nil {
			fmt.Printf("Error reading submission: %v\n", err)
			os.Exit(1)
		}

		var payload map[string]any
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &payload); err != nil {
				fmt.Printf("Submission is not a JSON object: %v\n", err)
				os.Exit(1)
			}
		}

		report, err := eng.Bind(cmd.Context(), args[0], domain.Null(), domain.ValueOf(payload))
		if err != nil {
			fmt.Printf("Bind error: %v\n", err)
			os.Exit(1)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Printf("Encode error: %v\n", err)
			os.Exit(1)
		}

		if !report.Valid || !report.Synchronized {
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(bindCmd)
	bindCmd.Flags().StringP("data", "d", "", "Submission as an inline JSON object")
	bindCmd.Flags().StringP("file", "f", "", "Path to a JSON submission file ('-' for stdin)")
	bindCmd.Flags().Bool("debug", false, "Enable debug logging")
}

func readSubmission(data, file string) ([]byte, error) {
	switch {
	case data != "":
		return []byte(data), nil
	case file == "-" || file == "":
		// Only consume stdin when it is piped, so an interactive call with
		// no flags binds an empty submission instead of hanging.
		if file == "" {
			if stat, err := os.Stdin.Stat(); err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
				return nil, nil
			}
		}
		return io.ReadAll(os.Stdin)
	default:
		return os.ReadFile(file)
	}
}

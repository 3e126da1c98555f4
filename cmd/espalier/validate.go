package main

import (
	"fmt"
	"os"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check all form definitions for consistency",
	Long:  `Loads every definition in the repository and reports structural problems: missing names, duplicate fields, choices without options, rules on groups.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			dir = args[0]
		}

		if err := runValidate(cmd, dir); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All definitions are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, dir string) error {
	eng, err := espalier.New(dir)
	if err != nil {
		return fmt.Errorf("failed to init engine: %w", err)
	}

	ctx := cmd.Context()
	names, err := eng.Definitions(ctx)
	if err != nil {
		return err
	}

	for _, name := range names {
		def, err := eng.Definition(ctx, name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := schema.Validate(def); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		// The registry catches what structural validation cannot, like
		// unknown field types.
		if _, err := eng.Registry().Build(def); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

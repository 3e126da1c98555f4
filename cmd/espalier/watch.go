package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the repository and report definition changes",
	Long:  `Watches the definition repository and prints the name of each form that changes, until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")

		eng, err := espalier.New(dir)
		if err != nil {
			fmt.Printf("Error initializing espalier: %v\n", err)
			os.Exit(1)
		}

		tui.PrintBanner(espalier.Version)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := eng.Watch(ctx)
		if err != nil {
			fmt.Printf("Watch error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Watching %s for changes... (Ctrl+C to stop)\n", dir)
		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nStopped watching.")
				return
			case name, ok := <-events:
				if !ok {
					return
				}
				fmt.Printf("changed: %s\n", name)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

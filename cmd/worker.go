/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wordup-app/apiserver/config"
	"github.com/wordup-app/apiserver/internal/mq"
	"github.com/wordup-app/apiserver/internal/server"
	"github.com/wordup-app/apiserver/internal/services"
)

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consumes WordUP activity events",
	Long: `Consumes activity events from the configured broker and writes
them to the process log. Usage:

	wordup worker
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()

		bus, err := server.NewEventBus(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to broker: %v\n", err)
			os.Exit(1)
		}
		if bus == nil {
			fmt.Fprintln(os.Stderr, "MQ_BACKEND must be set to run the worker")
			os.Exit(1)
		}
		defer bus.Close()

		err = bus.Subscribe(cmd.Context(), services.ActivityChannel, func(ctx context.Context, msg mq.Message) error {
			return services.LogActivity(ctx, msg.Data)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "worker error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

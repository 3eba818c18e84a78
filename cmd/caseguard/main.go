package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/caseguard/caseguard/internal/interfaces/cli/migrate"
	"github.com/caseguard/caseguard/internal/interfaces/cli/seed"
	"github.com/caseguard/caseguard/internal/interfaces/cli/server"
	"github.com/caseguard/caseguard/internal/interfaces/cli/sweep"
	"github.com/caseguard/caseguard/internal/shared/version"
)

//	@title			CaseGuard API
//	@version		1.0
//	@description	Workflow engine for whistleblowing reports.
//	@BasePath		/api/v1
func main() {
	rootCmd := &cobra.Command{
		Use:          "caseguard",
		Short:        "CaseGuard - whistleblowing case workflow engine",
		Long:         `CaseGuard assigns incoming whistleblowing reports, tracks their SLA deadlines and escalates overdue cases.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
		seed.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

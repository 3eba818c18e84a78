package sweep

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caseguard/caseguard/internal/application/workflow/usecases"
	"github.com/caseguard/caseguard/internal/infrastructure/database"
	"github.com/caseguard/caseguard/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/caseguard/caseguard/internal/interfaces/http"
	"github.com/caseguard/caseguard/internal/shared/constants"
)

var (
	env            string
	organizationID string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one SLA breach sweep",
		Long:  `Check every open SLA tracker once, recording warnings and breaches and escalating where the policy says so.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVar(&organizationID, "org", "", "Limit the sweep to one organization")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.InitWithDatabase(bootstrap.ResolveEnv(env))
	if err != nil {
		return err
	}
	defer database.Close()

	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer container.Shutdown(context.Background())

	result, err := container.SweepBreaches().Execute(cmd.Context(), usecases.SweepBreachesCommand{
		OrganizationID: organizationID,
	})
	if err != nil {
		return fmt.Errorf("breach sweep failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "checked=%d warnings=%d breaches=%d escalations=%d failures=%d\n",
		result.Checked, result.Warnings, result.Breaches, result.Escalations, result.Failures)
	if result.Failures > 0 {
		return fmt.Errorf("%d trackers failed", result.Failures)
	}
	return nil
}

package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caseguard/caseguard/internal/infrastructure/database"
	"github.com/caseguard/caseguard/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/caseguard/caseguard/internal/interfaces/http"
	"github.com/caseguard/caseguard/internal/shared/constants"
)

var (
	env  string
	path string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import an organization's workflow configuration",
		Long:  `Load SLA policies, assignment rules and optional reports for one organization from a YAML file. The import is all-or-nothing.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&path, "file", "f", "", "Path to the YAML file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()

	file, err := Parse(fh)
	if err != nil {
		return err
	}

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

	result, err := container.ImportWorkflow().Execute(cmd.Context(), file.Command())
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported organization %s: %d policies, %d rules, %d reports\n",
		file.OrganizationID, result.Policies, result.Rules, result.Reports)
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"debdl/internal/app"
)

type planOptions struct {
	OutputDir string
}

func newPlanCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan PACKAGE...",
		Short: "Resolve dependencies and write install plans",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(commandContext(cmd), cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runPlan(ctx context.Context, cmd *cobra.Command, opts planOptions, targets []string) error {
	service := newAppService()
	result, err := service.Plan(ctx, app.PlanRequest{
		Targets:   targets,
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	for _, plan := range result.Plans {
		fmt.Printf("%s: %d packages\n", plan.Target, len(plan.Resolved))
		for _, name := range plan.InstallOrder {
			fmt.Printf(" - %s\n", name)
		}
	}
	return nil
}

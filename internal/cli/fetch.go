package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"debdl/internal/app"
)

type fetchOptions struct {
	OutputDir string
}

func newFetchCommand() *cobra.Command {
	opts := fetchOptions{}
	cmd := &cobra.Command{
		Use:   "fetch PACKAGE...",
		Short: "Download packages with dependencies and emit install scripts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(commandContext(cmd), cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runFetch(ctx context.Context, cmd *cobra.Command, opts fetchOptions, targets []string) error {
	service := newAppService()
	result, err := service.Fetch(ctx, app.FetchRequest{
		Targets:   targets,
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("downloaded %d archives\n", len(result.Archives))
	for _, script := range result.Scripts {
		fmt.Printf("install script: %s\n", script)
	}
	return nil
}

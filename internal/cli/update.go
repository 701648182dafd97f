package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"debdl/internal/app"
)

func newUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Refresh the cached package index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(commandContext(cmd))
		},
	}
}

func runUpdate(ctx context.Context) error {
	service := newAppService()
	result, err := service.Update(ctx, app.UpdateRequest{})
	if err != nil {
		return err
	}
	fmt.Printf("index refreshed: %d packages\n", result.Packages)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"debdl/internal/app"
	"debdl/internal/types"
)

type inspectOptions struct {
	MinVersion string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect PACKAGE",
		Short: "Show a package's index record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(commandContext(cmd), opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.MinVersion, "min-version", "", "Check the index version against a minimum")
	return cmd
}

func runInspect(ctx context.Context, opts inspectOptions, name string) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		Package:    name,
		MinVersion: opts.MinVersion,
	})
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(result.Fields))
	for key := range result.Fields {
		if key == types.FieldPackage {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fmt.Printf("Package: %s\n", result.Name)
	for _, key := range keys {
		fmt.Printf("%s: %s\n", key, result.Fields[key])
	}
	if result.Checked {
		if result.Satisfied {
			fmt.Printf("version %s satisfies minimum %s\n", result.Version, opts.MinVersion)
		} else {
			fmt.Printf("version %s is older than minimum %s\n", result.Version, opts.MinVersion)
		}
	}
	return nil
}

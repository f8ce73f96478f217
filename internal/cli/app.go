package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type fitsimApp struct {
	baseCmd    *cobra.Command
	baseConfig *baseConfiguration
}

// New creates the fitsim command line application.
func New() *fitsimApp {
	baseCmd, baseConfig := newBaseCmd()
	baseCmd.AddCommand(newSimulateCmd(baseConfig))
	baseCmd.AddCommand(newServeCmd(baseConfig))
	return &fitsimApp{baseCmd, baseConfig}
}

// Execute runs the application until the command completes or ctx is cancelled.
func (a *fitsimApp) Execute(ctx context.Context) error {
	return a.baseCmd.ExecuteContext(ctx)
}

func newBaseCmd() (*cobra.Command, *baseConfiguration) {
	config := &baseConfiguration{}
	var baseCmd = &cobra.Command{
		Use:           "fitsim",
		Short:         "Memory allocation strategy simulator",
		Long:          `fitsim places page requests into frames with first, next, best and worst fit and compares how each policy fills memory.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(cmd, config); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			return nil
		},
	}
	config.addConfigurationFlags(baseCmd)
	return baseCmd, config
}

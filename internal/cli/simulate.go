package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bietkhonhungvandi212/fitsim/internal/input"
	"github.com/bietkhonhungvandi212/fitsim/internal/logger"
	"github.com/bietkhonhungvandi212/fitsim/internal/report"
	"github.com/bietkhonhungvandi212/fitsim/internal/scenario"
	"github.com/bietkhonhungvandi212/fitsim/internal/sim"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputLog   = "log"
)

type simulateConfiguration struct {
	Base *baseConfiguration
	simConfiguration

	Pages       string
	Frames      string
	Strategies  []string
	Unavailable bool
	Seed        uint64
	Scenario     string
	SaveScenario string
	Output       string
}

func newSimulateCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &simulateConfiguration{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "simulate",
		Short: "Runs a batch simulation and prints the result",
		Example: `  fitsim simulate --pages 8,15,3 --frames 10,20,5,7 --strategies FF,BF
  fitsim simulate --scenario run.yaml --output json
  fitsim simulate --pages 1,2 --frames 4,4,4,4 --unavailable --save-scenario run.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, config)
		},
	}
	cmd.Flags().StringVar(&config.Pages, "pages", "", "comma separated page sizes, in arrival order")
	cmd.Flags().StringVar(&config.Frames, "frames", "", "comma separated frame sizes")
	cmd.Flags().StringSliceVar(&config.Strategies, "strategies", []string{"FF", "NF", "BF", "WF"}, "strategies to run: FIRST_FIT, NEXT_FIT, BEST_FIT, WORST_FIT, QUICK_FIT or their tags")
	cmd.Flags().BoolVar(&config.Unavailable, "unavailable", false, "mark a random share of the frames unavailable")
	cmd.Flags().Uint64Var(&config.Seed, "seed", 0, "seed of the unavailable frame selection (random when not set)")
	cmd.Flags().StringVar(&config.Scenario, "scenario", "", "YAML scenario file; flags given on the command line override its values")
	cmd.Flags().StringVar(&config.SaveScenario, "save-scenario", "", "write the effective run, including the drawn seed, to this YAML scenario file")
	cmd.Flags().StringVarP(&config.Output, "output", "o", outputTable, "output format, one of: table, json, log")
	config.addSimulationFlags(cmd)
	return cmd
}

func runSimulate(cmd *cobra.Command, config *simulateConfiguration) error {
	switch config.Output {
	case outputTable, outputJSON, outputLog:
	default:
		return fmt.Errorf("unknown output format %q", config.Output)
	}

	sc, err := config.loadScenario(cmd)
	if err != nil {
		return err
	}
	req, err := sc.ToRequest(config.StrictFrames)
	if err != nil {
		return err
	}

	opts := util.DefaultOptions()
	config.apply(&opts)
	_, res, err := sim.Run(req, sim.OptionsFrom(opts, config.Base.log))
	if err != nil {
		config.Base.log.Debug("simulation rejected", logger.Error(err))
		return err
	}
	if config.SaveScenario != "" {
		sc.Seed = res.Seed
		if err := saveScenario(config.SaveScenario, sc); err != nil {
			return err
		}
		config.Base.log.Debug("scenario saved", slog.String("path", config.SaveScenario))
	}
	return writeResult(cmd.OutOrStdout(), config.Output, res)
}

func saveScenario(path string, sc *scenario.Scenario) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("[cli] [saveScenario] %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return sc.Save(f)
}

// loadScenario merges the scenario file with the flags set on the command line.
func (c *simulateConfiguration) loadScenario(cmd *cobra.Command) (*scenario.Scenario, error) {
	sc := &scenario.Scenario{}
	if c.Scenario != "" {
		var err error
		if sc, err = scenario.Load(c.Scenario); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("pages") || c.Scenario == "" {
		if sc.Pages, err = input.ParseList(input.FieldPages, c.Pages); err != nil {
			return nil, err
		}
	}
	if flags.Changed("frames") || c.Scenario == "" {
		if sc.Frames, err = input.ParseList(input.FieldFrames, c.Frames); err != nil {
			return nil, err
		}
	}
	if flags.Changed("strategies") || c.Scenario == "" {
		sc.Strategies = c.Strategies
	}
	if flags.Changed("unavailable") {
		sc.Unavailable = c.Unavailable
	}
	if flags.Changed("seed") {
		seed := c.Seed
		sc.Seed = &seed
	}
	return sc, nil
}

func writeResult(w io.Writer, format string, res sim.RunResult) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Result sim.RunResult `json:"result"`
			Chart  report.Chart  `json:"chart"`
		}{res, report.BuildChart(res)})
	case outputLog:
		return report.WriteLog(w, res)
	}
	if err := report.WriteTable(w, res); err != nil {
		return err
	}
	if res.Seed != nil {
		_, err := fmt.Fprintf(w, "\nunavailable frames: %s (seed %d)\n", joinIndexes(res.Unavailable), *res.Seed)
		return err
	}
	return nil
}

func joinIndexes(idx []int) string {
	if len(idx) == 0 {
		return "none"
	}
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = fmt.Sprintf("F%d", v)
	}
	return strings.Join(parts, ", ")
}

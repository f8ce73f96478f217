package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bietkhonhungvandi212/fitsim/internal/logger"
	util "github.com/bietkhonhungvandi212/fitsim/internal/utils"
)

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "FITSIM"

	keyConfig = "config"

	flagNameLoggerCfgFile = "logger-config"
	flagNameLogOutputFile = "log-file"
	flagNameLogLevel      = "log-level"
	flagNameLogFormat     = "log-format"

	flagNameUnavailableFraction = "unavailable-fraction"
	flagNameStrictFrames        = "strict-frames"
	flagNameParallel            = "parallel"

	moduleName = "fitsim"
)

type baseConfiguration struct {
	// Configuration file (YAML). Optional.
	CfgFile string
	// Logger configuration file. Optional.
	LogCfgFile string

	log *slog.Logger
}

// simConfiguration holds the flags shared by every command that runs simulations.
type simConfiguration struct {
	UnavailableFraction float64
	StrictFrames        bool
	Parallel            bool
}

func (r *baseConfiguration) addConfigurationFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&r.CfgFile, keyConfig, "", "config file (YAML); flags not given on the command line are read from it")
	cmd.PersistentFlags().StringVar(&r.LogCfgFile, flagNameLoggerCfgFile, "", "logger config file (YAML)")
	// no defaults so the logger config file values are only overridden when given
	cmd.PersistentFlags().String(flagNameLogOutputFile, "", "log file path or one of the special values: stdout, stderr, discard (default stderr)")
	cmd.PersistentFlags().String(flagNameLogLevel, "", "logging level, one of: DEBUG, INFO, WARN, ERROR")
	cmd.PersistentFlags().String(flagNameLogFormat, "", "log format, one of: text, json")
}

func (c *simConfiguration) addSimulationFlags(cmd *cobra.Command) {
	def := util.DefaultOptions()
	cmd.Flags().Float64Var(&c.UnavailableFraction, flagNameUnavailableFraction, def.UnavailableFraction, "share of frames marked unavailable when unavailability is enabled")
	cmd.Flags().BoolVar(&c.StrictFrames, flagNameStrictFrames, def.StrictFrames, "require more frames than pages")
	cmd.Flags().BoolVar(&c.Parallel, flagNameParallel, def.Parallel, "run strategies concurrently")
}

func (c *simConfiguration) apply(opts *util.Options) {
	opts.UnavailableFraction = c.UnavailableFraction
	opts.StrictFrames = c.StrictFrames
	opts.Parallel = c.Parallel
}

func initializeConfig(cmd *cobra.Command, config *baseConfiguration) error {
	var errs []error

	if err := config.initializeConfig(cmd); err != nil {
		errs = append(errs, fmt.Errorf("reading configuration: %w", err))
	}

	log, err := config.initLogger(cmd)
	if err != nil {
		errs = append(errs, fmt.Errorf("initializing logger: %w", err))
	}
	config.log = log

	return errors.Join(errs...)
}

// initializeConfig reads in config file and ENV variables if set.
func (r *baseConfiguration) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	if r.CfgFile != "" {
		v.SetConfigFile(r.CfgFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	// flags bind to environment variables with the prefix, e.g. --listen
	// binds to FITSIM_LISTEN
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindFlagErr []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == keyConfig {
			return
		}

		// Environment variables can't have dashes in them, so bind them to their equivalent
		// keys with underscores, e.g. --strict-frames to FITSIM_STRICT_FRAMES
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				bindFlagErr = append(bindFlagErr, fmt.Errorf("binding env to flag %q: %w", f.Name, err))
				return
			}
		}

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if sv, ok := val.([]interface{}); ok {
				parts := make([]string, len(sv))
				for i, p := range sv {
					parts[i] = fmt.Sprintf("%v", p)
				}
				val = strings.Join(parts, ",")
			}
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				bindFlagErr = append(bindFlagErr, fmt.Errorf("setting flag %q value: %w", f.Name, err))
				return
			}
		}
	})

	return errors.Join(bindFlagErr...)
}

/*
initLogger creates Logger based on configuration flags in "cmd". Flags
override values loaded from the logger config file.
*/
func (r *baseConfiguration) initLogger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg := &logger.LogConfiguration{}
	if r.LogCfgFile != "" {
		var err error
		if cfg, err = logger.LoadConfiguration(r.LogCfgFile); err != nil {
			return nil, err
		}
	}

	getFlagValueIfSet := func(flagName string, value *string) error {
		if cmd.Flags().Changed(flagName) {
			var err error
			if *value, err = cmd.Flags().GetString(flagName); err != nil {
				return fmt.Errorf("failed to read %s flag value: %w", flagName, err)
			}
		}
		return nil
	}

	if err := getFlagValueIfSet(flagNameLogLevel, &cfg.Level); err != nil {
		return nil, err
	}
	if err := getFlagValueIfSet(flagNameLogFormat, &cfg.Format); err != nil {
		return nil, err
	}
	if err := getFlagValueIfSet(flagNameLogOutputFile, &cfg.OutputPath); err != nil {
		return nil, err
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "stderr"
	}

	l, err := logger.New(cfg, moduleName)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return l, nil
}

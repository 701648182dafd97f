package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"debdl/internal/app"
	"debdl/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "DEBDL"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		log.Error().Msg(errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "debdl",
		Short:         "Download Debian packages with their dependencies",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().String("mirror", types.DefaultMirror, "Repository mirror URL")
	cmd.PersistentFlags().String("dist", types.DefaultDistribution, "Distribution")
	cmd.PersistentFlags().String("component", types.DefaultComponent, "Repository component")
	cmd.PersistentFlags().String("arch", types.DefaultArchitecture, "Target architecture")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("mirror", cmd.PersistentFlags().Lookup("mirror"))
	_ = viper.BindPFlag("dist", cmd.PersistentFlags().Lookup("dist"))
	_ = viper.BindPFlag("component", cmd.PersistentFlags().Lookup("component"))
	_ = viper.BindPFlag("arch", cmd.PersistentFlags().Lookup("arch"))

	cmd.AddCommand(newPlanCommand())
	cmd.AddCommand(newFetchCommand())
	cmd.AddCommand(newInspectCommand())
	cmd.AddCommand(newUpdateCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("debdl")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/debdl")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// commandContext attaches the configured logger to the command context so
// log.Ctx works everywhere downstream.
func commandContext(cmd *cobra.Command) context.Context {
	return log.Logger.WithContext(cmd.Context())
}

// mirrorConfigFromViper builds the explicit mirror configuration handed to
// the service; nothing else reads these keys.
func mirrorConfigFromViper() types.MirrorConfig {
	return types.MirrorConfig{
		Mirror:       viper.GetString("mirror"),
		Distribution: viper.GetString("dist"),
		Component:    viper.GetString("component"),
		Architecture: viper.GetString("arch"),
	}.Normalized()
}

func newAppService() app.Service {
	return app.NewService(mirrorConfigFromViper(), app.ServiceOptions{
		CacheDir:         viper.GetString("cache_dir"),
		DownloadWorkers:  viper.GetInt("download_workers"),
		HTTPTimeoutSec:   viper.GetInt("http_timeout"),
		HTTPRetries:      viper.GetInt("http_retries"),
		HTTPRetryDelayMs: viper.GetInt("http_retry_delay_ms"),
	})
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	switch code {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition:
		return 3
	case errbuilder.CodeNotFound:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

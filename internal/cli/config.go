package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/Someblueman/commentgen/internal/commentgen"
	"github.com/Someblueman/commentgen/internal/logger"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "commentgen"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	envPrefix = "COMMENTGEN"

	pathFlagName           = "path"
	extFlagName            = "ext"
	ignoreFileFlagName     = "ignore-file"
	excludeFlagName        = "exclude"
	dryRunFlagName         = "dry-run"
	diffFlagName           = "diff"
	seedFlagName           = "seed"
	arrowPlacementFlagName = "arrow-placement"
	reportFlagName         = "report"
	verboseFlagName        = "verbose"
	configFlagName         = "config"
	logLevelFlagName       = "log-level"
	logFormatFlagName      = "log-format"
	logOutputFlagName      = "log-output"

	pathKey           = "path"
	extensionsKey     = "extensions"
	ignoreFileKey     = "ignore_file"
	excludeKey        = "exclude"
	dryRunKey         = "dry_run"
	diffKey           = "diff"
	seedKey           = "seed"
	arrowPlacementKey = "arrow_placement"
	reportKey         = "report"

	logLevelKey      = "log.level"
	logFormatKey     = "log.format"
	logOutputKey     = "log.output"
	logVerboseKey    = "log.verbose"
	logFilenameKey   = "log.filename"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultPath          = "./"
	defaultLogLevel      = "warn"
	defaultLogFormat     = "text"
	defaultLogOutput     = "stderr"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

func init() {
	setConfigDefaults()
}

// setConfigDefaults registers config file lookup, env binding and defaults
// on the global viper instance.
func setConfigDefaults() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	defaults := commentgen.DefaultOptions()
	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(pathKey, defaultPath)
	viper.SetDefault(extensionsKey, defaults.Extensions)
	viper.SetDefault(ignoreFileKey, defaults.IgnoreFileName)
	viper.SetDefault(excludeKey, []string{})
	viper.SetDefault(dryRunKey, false)
	viper.SetDefault(diffKey, false)
	viper.SetDefault(seedKey, 0)
	viper.SetDefault(arrowPlacementKey, string(defaults.ArrowPlacement))
	viper.SetDefault(reportKey, "")

	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logFormatKey, defaultLogFormat)
	viper.SetDefault(logOutputKey, defaultLogOutput)
	viper.SetDefault(logVerboseKey, false)
	viper.SetDefault(logFilenameKey, logger.DefaultFilename)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// readConfig loads configPath when given, otherwise commentgen.yaml from
// the working directory if present.
func readConfig(configPath string) error {
	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configPath, err)
		}
		return nil
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// configureLogger installs the process-wide slog logger.
func configureLogger() *slog.Logger {
	cfg := logger.Config{
		Level:      viper.GetString(logLevelKey),
		Format:     viper.GetString(logFormatKey),
		Output:     viper.GetString(logOutputKey),
		Filename:   viper.GetString(logFilenameKey),
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}
	if viper.GetBool(logVerboseKey) {
		cfg.Level = "debug"
	}

	log := logger.NewLogger(cfg, nil)
	slog.SetDefault(log)
	return log
}

// optionsFromConfig assembles run options from the merged flag, env and
// file configuration.
func optionsFromConfig() (commentgen.Options, error) {
	opts := commentgen.DefaultOptions()
	opts.Path = viper.GetString(pathKey)
	if exts := viper.GetStringSlice(extensionsKey); len(exts) > 0 {
		opts.Extensions = exts
	}
	opts.IgnoreFileName = viper.GetString(ignoreFileKey)
	opts.Exclude = viper.GetStringSlice(excludeKey)
	opts.DryRun = viper.GetBool(dryRunKey)
	opts.ShowDiff = viper.GetBool(diffKey)
	opts.Seed = viper.GetUint64(seedKey)

	placement, err := commentgen.ParseArrowPlacement(viper.GetString(arrowPlacementKey))
	if err != nil {
		return opts, err
	}
	opts.ArrowPlacement = placement
	return opts, nil
}

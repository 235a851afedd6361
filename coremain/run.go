package coremain

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pmkol/slist/mlog"
)

var version = "dev"

type runFlags struct {
	c        string
	dir      string
	logLevel string
	dump     bool
}

var rootCmd = &cobra.Command{
	Use:   "slist",
	Short: "Replay singly linked list scripts.",
}

func init() {
	rf := new(runFlags)
	runCmd := &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir]",
		Short: "Replay a script once.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunScript(rf)
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	fs := runCmd.Flags()
	fs.StringVarP(&rf.c, "config", "c", "", "config file")
	fs.StringVarP(&rf.dir, "dir", "d", "", "working dir")
	fs.StringVar(&rf.logLevel, "log-level", "", "override the log level of the config file")
	fs.BoolVar(&rf.dump, "dump", false, "print the final list as yaml")
	rootCmd.AddCommand(runCmd)

	wf := new(runFlags)
	watchCmd := &cobra.Command{
		Use:   "watch [-c config_file] [-d working_dir]",
		Short: "Replay a script every time its file changes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return WatchScript(wf)
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	fs = watchCmd.Flags()
	fs.StringVarP(&wf.c, "config", "c", "", "config file")
	fs.StringVarP(&wf.dir, "dir", "d", "", "working dir")
	fs.StringVar(&wf.logLevel, "log-level", "", "override the log level of the config file")
	rootCmd.AddCommand(watchCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print out version info and exit.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})
}

func Run() error {
	return rootCmd.Execute()
}

func RunScript(rf *runFlags) error {
	if err := chdir(rf.dir); err != nil {
		return err
	}

	cfg, _, err := loadConfigWithInclude(rf.c)
	if err != nil {
		return err
	}

	sl, err := NewSlist(cfg)
	if err != nil {
		return err
	}
	if err := setLogLevel(rf.logLevel); err != nil {
		return err
	}

	res, err := sl.Replay(&cfg.Script)
	if err != nil {
		return fmt.Errorf("script failed, %w", err)
	}
	if rf.dump {
		return dumpResult(os.Stdout, res)
	}
	return nil
}

func chdir(dir string) error {
	if len(dir) == 0 {
		return nil
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to change the current working directory, %w", err)
	}
	mlog.L().Info("working directory changed", zap.String("path", dir))
	return nil
}

// setLogLevel overrides the level of the global logger. Empty level
// keeps the level from the config.
func setLogLevel(level string) error {
	if len(level) == 0 {
		return nil
	}
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level, %w", err)
	}
	mlog.SetLevel(l)
	return nil
}

// loadConfigWithInclude loads filePath and merges its includes. files
// holds the path of every loaded file, the main one first.
func loadConfigWithInclude(filePath string) (cfg *Config, files []string, err error) {
	cfg, fileUsed, err := loadConfig(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("fail to load config, %w", err)
	}
	subFiles, err := mergeInclude(cfg, 0, []string{fileUsed})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sub config file, %w", err)
	}
	return cfg, append([]string{fileUsed}, subFiles...), nil
}

// loadConfig load a config from a file. If filePath is empty, it will
// automatically search and load a file which name start with "config".
func loadConfig(filePath string) (*Config, string, error) {
	v := viper.New()

	if len(filePath) > 0 {
		v.SetConfigFile(filePath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	decoderOpt := func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
		cfg.TagName = "yaml"
		cfg.WeaklyTypedInput = true
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg, decoderOpt); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

// mergeInclude prepends the ops of the included files to cfg. Included
// files may only set ops and include. It returns the paths of all
// loaded sub config files.
func mergeInclude(cfg *Config, depth int, paths []string) ([]string, error) {
	depth++
	if depth > 8 {
		return nil, fmt.Errorf("maximum include depth reached, include path is %s", strings.Join(paths, " -> "))
	}

	var files []string
	includedCfg := new(Config)
	for _, subCfgFile := range cfg.Include {
		subPaths := slices.Concat(paths, []string{subCfgFile})
		mlog.L().Info("reading sub config", zap.String("file", subCfgFile))
		subCfg, subFileUsed, err := loadConfig(subCfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load sub config, %w", err)
		}
		if err := checkSubConfig(subCfg); err != nil {
			return nil, fmt.Errorf("invalid sub config %s, %w", subFileUsed, err)
		}
		subFiles, err := mergeInclude(subCfg, depth, subPaths)
		if err != nil {
			return nil, err
		}

		files = append(files, subFileUsed)
		files = append(files, subFiles...)
		includedCfg.Script.Ops = append(includedCfg.Script.Ops, subCfg.Script.Ops...)
	}

	cfg.Script.Ops = append(includedCfg.Script.Ops, cfg.Script.Ops...)
	return files, nil
}

var errSubConfigField = errors.New("only script.ops and include can be set")

func checkSubConfig(cfg *Config) error {
	switch {
	case cfg.Log != (mlog.LogConfig{}):
		return fmt.Errorf("%w, got log", errSubConfigField)
	case len(cfg.Script.Type) > 0:
		return fmt.Errorf("%w, got script.type", errSubConfigField)
	case cfg.Script.Init != nil:
		return fmt.Errorf("%w, got script.init", errSubConfigField)
	case cfg.Script.Expect != nil:
		return fmt.Errorf("%w, got script.expect", errSubConfigField)
	}
	return nil
}

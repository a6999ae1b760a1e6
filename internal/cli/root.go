package cli

import (
	"github.com/spf13/cobra"

	"github.com/MartinianoLopez/comparador-clientes/internal/api"
	"github.com/MartinianoLopez/comparador-clientes/internal/config"
	"github.com/MartinianoLopez/comparador-clientes/internal/util"
)

// app 命令共享状态
type app struct {
	configPath string
	logLevel   string

	cfg  *config.AppConfig
	info config.LoadConfigInfo
}

// NewRootCommand 创建根命令
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "comparador",
		Short:   "Compara dos cortes de cartera de clientes",
		Long:    "Compara el corte anterior y el actual de la cartera de clientes (ICS - BE y campos extra), clasifica cada cliente y exporta el resultado a Excel.",
		Version: api.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: config.toml next to the executable)")
	root.PersistentFlags().StringVarP(&a.logLevel, "log-level", "l", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newServeCommand(a),
		newCompareCommand(a),
		newConfigCommand(a),
	)
	return root
}

// load 加载配置并设置日志级别；--log-level 优先于配置文件
func (a *app) load(cmd *cobra.Command) error {
	util.Log.SetOutput(cmd.ErrOrStderr())

	if cmd.Annotations["skipConfig"] == "true" {
		return util.SetLogLevel(a.logLevel)
	}

	cfg, info, err := config.LoadConfigWithInfo(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.info = info

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	if err := util.SetLogLevel(level); err != nil {
		return err
	}

	util.Log.WithField("path", info.Path).WithField("found", info.Found).Debug("config loaded")
	return nil
}

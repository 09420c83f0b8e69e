package main

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"governor/internal/config"
	"governor/internal/log"
	"governor/internal/server"
)

//go:embed web/static
var static embed.FS

var (
	configFile string
	port       int
)

var rootCmd = &cobra.Command{
	Use:           "governor",
	Short:         "Role-selection card game server",
	Long:          `Serves the game lobby, table screen and phone clients over HTTP and WebSocket.`,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = port
		}
		log.InitLog("governor", cfg.Log.Level)
		log.Debug("config: %+v", *cfg)

		if configFile != "" {
			err := config.Watch(configFile, func(c *config.Config) {
				log.SetLevel(c.Log.Level)
				log.Info("config reloaded, log level %s", c.Log.Level)
			}, func(err error) {
				log.Warn("ignoring config change: %v", err)
			})
			if err != nil {
				log.Warn("config watch: %v", err)
			}
		}

		web, err := fs.Sub(static, "web/static")
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.New(cfg, web).Run(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.Flags().IntVar(&port, "port", 8080, "HTTP port, overrides server.port")
	rootCmd.AddCommand(simulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("%v", err)
	}
}

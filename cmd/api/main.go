package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pet-adoption/internal/config"
	"pet-adoption/internal/platform/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	portFlag   string
	devAuth    bool

	cfg *config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Pet adoption HTTP API",
	Long: `Sirve el catálogo de mascotas, las cuentas y las solicitudes de adopción.

Sin subcomando equivale a "api serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			loaded.Port = portFlag
		}
		if cmd.Flags().Changed("dev-auth") {
			loaded.DevAuth = devAuth
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		log = logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.LogLevel),
			Format: logger.ParseFormat(cfg.LogFormat),
			App:    cfg.AppName,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML de configuración (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "puerto de escucha (pisa PORT)")
	rootCmd.PersistentFlags().BoolVar(&devAuth, "dev-auth", false, "aceptar X-Debug-User-ID en vez de JWT")

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pet-adoption/internal/apiclient"
	"pet-adoption/internal/forms/validate"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/session"

	"github.com/spf13/cobra"
)

// EnvBaseURL pisa el default de --base-url.
const EnvBaseURL = "PETADOPT_API"

const defaultBaseURL = "http://localhost:8080"

// app agrupa lo que comparten los subcomandos.
type app struct {
	baseURL   string
	tokenFile string
	timeout   time.Duration
	verbose   bool

	log  logger.Logger
	api  *apiclient.Client
	sess *session.Session
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "petctl",
		Short:         "Cliente de la API de adopción de mascotas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	base := os.Getenv(EnvBaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", base, "URL de la API (default $"+EnvBaseURL+")")
	root.PersistentFlags().StringVar(&a.tokenFile, "token-file", "", "archivo del token (default en el directorio de config del usuario)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 15*time.Second, "timeout por request")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log de depuración")

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newAdminRegisterCmd(a),
		newWhoamiCmd(a),
		newLogoutCmd(a),
		newPetsCmd(a),
		newApplyCmd(a),
		newApplicationsCmd(a),
		newStatsCmd(a),
	)
	return root
}

func (a *app) setup(ctx context.Context) error {
	level := logger.Warn
	if a.verbose {
		level = logger.Debug
	}
	a.log = logger.New(logger.Options{Level: level, Format: logger.FormatText, App: "petctl"})

	api, err := apiclient.New(a.baseURL, a.timeout)
	if err != nil {
		return err
	}
	a.api = api

	path := a.tokenFile
	if path == "" {
		if path, err = session.DefaultPath(); err != nil {
			return err
		}
	}
	a.sess = session.New(session.NewFileStore(path), api, a.log)
	api.Token = a.sess.Token

	// Un error de red acá no impide comandos públicos; whoami lo reporta.
	if err := a.sess.Init(ctx); err != nil {
		a.log.Debug("session init failed", map[string]any{"error": err})
	}
	return nil
}

// printErrors escribe los errores en el orden del formulario.
func printErrors(w io.Writer, errs validate.Errors, order []string) {
	for _, f := range order {
		if msg := errs.Get(f); msg != "" {
			fmt.Fprintf(w, "  %s: %s\n", f, msg)
		}
	}
	for _, f := range errs.Failed() {
		if !contains(order, f) {
			fmt.Fprintf(w, "  %s: %s\n", f, errs.Get(f))
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"rinklog/pkg/config"
	"rinklog/pkg/logging"
	"rinklog/pkg/workbook"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configFile string
	cfg        *config.Config
	logCloser  io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "rinklog",
	Short: "Load and save the rinklog workbook from the command line",
	Long: `rinklog keeps a team's roster, game list and event log in three tables
of a remote workbook. These commands read and rewrite those tables directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		logCloser = logging.Setup(verbose, cfg.Log)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "rinklog.toml", "Path to the TOML config file")

	rootCmd.AddCommand(loadCmd, saveCmd, addPlayerCmd, addGameCmd, addEventCmd, initConfigCmd)
}

// openRepository validates configuration before any remote call.
func openRepository(ctx context.Context) (*workbook.Repository, error) {
	return workbook.Open(ctx, cfg, log.StandardLogger())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

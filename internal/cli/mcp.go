package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"opportunity-finder/internal/mcpserver"
	"opportunity-finder/internal/storage/sqlstore"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the opportunity queries as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing
list_opportunities, list_subreddits, get_stats and get_keywords.

Logs go to stderr so they never corrupt the protocol stream.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	log.SetOutput(os.Stderr)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := sqlstore.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return mcpserver.NewServer(store, cfg.API.MaxPageSize, version).Run(ctx)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"typedterm/internal/cache"
	"typedterm/internal/system"
	"typedterm/internal/webui/server"
)

func init() {
	rootCmd.AddCommand(webuiCmd)
	webuiCmd.Flags().StringP("addr", "a", "", "address to bind (host:port, default from config)")
	webuiCmd.Flags().BoolP("open", "o", false, "open the browser after start")
	webuiCmd.Flags().String("redis", "", "redis address for the highlight cache (default from config)")
}

// highlightCache picks Redis when an address is configured and reachable,
// else an in-memory LRU.
func highlightCache(ctx context.Context, addr string, size int) cache.Store {
	if addr != "" {
		rc, err := cache.NewRedis(ctx, cache.RedisOptions{Addr: addr})
		if err == nil {
			system.Logger.Info("highlight cache", "backend", "redis", "addr", addr)
			return rc
		}
		system.Logger.Warn("redis unavailable, using memory cache", "addr", addr, "err", err)
	}
	return cache.NewMemory(size)
}

var webuiCmd = &cobra.Command{
	Use:   "webui",
	Short: "Start the local Web UI server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		open, _ := cmd.Flags().GetBool("open")
		redisAddr, _ := cmd.Flags().GetString("redis")
		if addr == "" {
			addr = appCfg.WebUI.Addr
		}
		if redisAddr == "" {
			redisAddr = appCfg.Cache.RedisAddr
		}

		// Handle Ctrl+C
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		srv := &server.Server{
			Addr:      addr,
			Cache:     highlightCache(ctx, redisAddr, appCfg.Cache.Size),
			Scenarios: appCfg.AllScenarios(),
			Typing:    appCfg.TypingOptions(),
		}

		url := fmt.Sprintf("http://%s/", addr)
		system.Logger.Info("starting webui", "url", url)
		if open {
			if err := server.OpenBrowser(url); err != nil {
				system.Logger.Warn("failed to open browser", "err", err)
			}
		}
		if err := srv.Start(ctx); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
		return nil
	},
}

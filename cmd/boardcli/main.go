// boardcli wires the full client core together and exercises it against a
// running backend. It is a smoke harness for manual testing, not a shipped
// surface: the mobile shells embed the same packages directly.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"ideaboard-core/internal/config"
	"ideaboard-core/internal/controller"
	"ideaboard-core/internal/gateway"
	"ideaboard-core/internal/repository"
	"ideaboard-core/internal/session"
	"ideaboard-core/internal/store"
	"ideaboard-core/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "boardcli: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(string(cfg.Environment))
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.IsDevelopment() {
		watcher, err := config.NewWatcher(&cfg, logger)
		if err != nil {
			logger.Warn("Config hot-reload unavailable", zap.Error(err))
		} else {
			defer watcher.Stop()
		}
	}

	metrics := observability.NewCollector("ideaboard")

	sessions := store.NewSessionStore(logger, metrics)
	nodes := store.NewNodeStore(logger, metrics)
	discover := store.NewDiscoverStore(logger, metrics)

	gw, err := gateway.NewClient(gateway.Options{
		BaseURL:     cfg.API.BaseURL,
		TokenURL:    cfg.Auth.TokenURL,
		ClientID:    cfg.Auth.ClientID,
		RedirectURI: cfg.Auth.RedirectURI,
		Timeout:     cfg.API.Timeout,
		Tokens:      sessions.AccessToken,
		Logger:      logger,
		Metrics:     metrics,
	})
	if err != nil {
		return err
	}

	repo := repository.NewBoardRepository(gw, logger)
	vault := session.NewMemoryVault()
	manager := session.NewManager(repo, sessions, vault, logger)

	home := controller.NewHomeController(nodes, repo, logger)
	controller.NewDetailController(nodes, sessions, repo, repo, repo, logger, metrics)
	controller.NewReactedUsersController(repo, cfg.Pagination.PageSize, logger)
	controller.NewDiscoverController(repo, discover, logger)
	controller.NewProfileController(manager, sessions, logger)

	challenge, err := manager.BeginAuthorization()
	if err != nil {
		return err
	}
	fmt.Printf("authorize at: %s?client_id=%s&code_challenge=%s&code_challenge_method=S256&redirect_uri=%s\n",
		cfg.Auth.AuthorizeURL, cfg.Auth.ClientID, challenge, cfg.Auth.RedirectURI)

	// With a pre-provisioned session the feed load can be smoke-tested end to
	// end; without one we stop at the printed authorization URL.
	if token := os.Getenv("IDEABOARD_DEBUG_ACCESS_TOKEN"); token != "" {
		sessions.ReplaceAccessToken(token)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
		defer cancel()
		if err := home.LoadNodes(ctx); err != nil {
			return err
		}

		state := nodes.Snapshot()
		fmt.Printf("loaded %d nodes\n", len(state.Nodes))
		for _, n := range state.Filtered() {
			fmt.Printf("  [%s] %s (%d comments, created %s)\n",
				n.Type, n.Title, n.CommentCount, n.CreatedAt.Format(time.RFC3339))
		}
	}

	return nil
}

// cmd/storefront/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pizza-storefront/internal/checkout"
	"pizza-storefront/internal/client"
	"pizza-storefront/internal/common/config"
	"pizza-storefront/internal/common/database"
	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/session"
	"pizza-storefront/internal/shell"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting storefront...",
		zap.String("backend", cfg.API.BaseURL),
		zap.String("sessionBackend", cfg.Session.Backend),
	)

	tokens, cleanup, err := buildTokenStore(cfg.Session)
	if err != nil {
		zapLog.Fatal("token store init failed", zap.Error(err))
	}
	defer cleanup()

	slot := session.NewTokenSlot()
	api := client.New(cfg.API, slot, log)
	sess := session.NewStore(api, slot, tokens, log)
	wf := checkout.New(api, sess, log)
	sh := shell.New(api, sess, wf, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("metrics endpoint listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	// Re-validate any persisted token before the first render.
	if user, err := sess.Restore(ctx); err != nil {
		log.Warn("session restore failed", map[string]interface{}{"error": err.Error()})
	} else if user != nil {
		log.Info("session restored", map[string]interface{}{"user": user.Email})
	}

	runLoop(ctx, sh)
	zapLog.Info("Storefront stopped")
}

// buildTokenStore picks the persistence backend for the session token.
func buildTokenStore(cfg config.SessionConfig) (session.TokenStore, func(), error) {
	if cfg.Backend == "redis" {
		rdb, err := database.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if err := rdb.Ping(context.Background()); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		return session.NewRedisTokenStore(rdb), func() { rdb.Close() }, nil
	}
	return session.NewFileTokenStore(cfg.TokenPath), func() {}, nil
}

// runLoop drives the shell from stdin: paths navigate, named commands carry
// form input. The browser's event loop, flattened to a prompt.
func runLoop(ctx context.Context, sh *shell.Shell) {
	scanner := bufio.NewScanner(os.Stdin)
	render(sh, &shell.View{Name: "home", Title: "The web's best pizza"})

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}

		view, err := dispatch(ctx, sh, line)
		if err != nil {
			fmt.Printf("error: %s\n", errors.UserMessage(err))
		}
		if view != nil {
			render(sh, view)
		}
	}
}

func dispatch(ctx context.Context, sh *shell.Shell, line string) (*shell.View, error) {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]

	switch command {
	case "login":
		if len(args) != 2 {
			return nil, errors.NewValidationFailedError("usage: login <email> <password>")
		}
		return sh.Login(ctx, args[0], args[1])
	case "register":
		if len(args) < 3 {
			return nil, errors.NewValidationFailedError("usage: register <name...> <email> <password>")
		}
		name := strings.Join(args[:len(args)-2], " ")
		return sh.Register(ctx, name, args[len(args)-2], args[len(args)-1])
	case "store":
		if len(args) != 1 {
			return nil, errors.NewValidationFailedError("usage: store <storeId>")
		}
		return nil, sh.Checkout().SelectStore(models.ID(args[0]))
	case "add":
		if len(args) != 1 {
			return nil, errors.NewValidationFailedError("usage: add <menuId>")
		}
		return nil, sh.Checkout().AddPizza(models.ID(args[0]))
	case "remove":
		if len(args) != 1 {
			return nil, errors.NewValidationFailedError("usage: remove <index>")
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, errors.NewValidationFailedError("index must be a number")
		}
		return nil, sh.Checkout().RemovePizza(index)
	case "pay":
		if _, err := sh.Checkout().Pay(ctx); err != nil {
			return nil, err
		}
		return sh.Navigate(ctx, "/delivery")
	case "cancel":
		if err := sh.Checkout().Cancel(); err != nil {
			return nil, err
		}
		return sh.Navigate(ctx, "/menu")
	case "verify":
		result, err := sh.Checkout().Verify(ctx)
		if err != nil {
			return nil, err
		}
		fmt.Printf("JWT Pizza - %s\n", result.Message)
		return nil, nil
	}

	if strings.HasPrefix(command, "/") {
		return sh.Navigate(ctx, command)
	}
	return nil, errors.NewValidationFailedError(fmt.Sprintf("unknown command %q", command))
}

func render(sh *shell.Shell, view *shell.View) {
	fmt.Printf("\n== %s ==\n", view.Title)
	if view.Body != "" {
		fmt.Println(view.Body)
	}
	var labels []string
	for _, link := range sh.Links() {
		labels = append(labels, link.Label)
	}
	fmt.Printf("[%s]\n", strings.Join(labels, " | "))
}

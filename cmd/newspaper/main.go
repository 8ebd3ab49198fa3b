package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/docgen"
	"golang.org/x/term"

	"newspaper/internal/config"
	"newspaper/internal/http-server/middleware/metrics"
	"newspaper/internal/http-server/router"
	"newspaper/internal/http-server/session"
	"newspaper/internal/lib/logger"
	"newspaper/internal/lib/logger/sl"
	adminservice "newspaper/internal/service/admin"
	articleservice "newspaper/internal/service/article"
	userservice "newspaper/internal/service/user"
	"newspaper/internal/storage/sqlite"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "createsuperuser" {
		if err := createSuperuser(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	routes := flag.Bool("routes", false, "print the route table and exit")

	cfg := config.MustLoad()

	log := logger.New(cfg.Env)

	if *routes {
		// No storage behind it: only the route tree is walked.
		r := router.New(log, session.New(nil, cfg.Session, false), metrics.New(), router.Services{}, cfg.Secret)
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "newspaper",
			Intro:       "Routes served by newspaper.",
		}))
		return
	}

	log.Debug("initializing server...", slog.String("addr", cfg.Address))

	// Init storage
	storage, err := sqlite.New(cfg.StoragePath)
	if err != nil {
		log.Error("error opening storage", sl.Error(err))
		os.Exit(1)
	}
	defer storage.Close()

	// Init service layer
	svc := router.Services{
		Users:    userservice.New(log, storage, cfg.TokenTTL, cfg.Secret),
		Articles: articleservice.New(log, storage),
		Admin:    adminservice.New(log, storage),
	}

	sessions := session.New(storage.DB(), cfg.Session, true)

	// Handlers and middleware
	r := router.New(log, sessions, metrics.New(), svc, cfg.Secret)

	srv := http.Server{
		Handler:      r,
		Addr:         cfg.Address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	log.Debug("server initialized")
	log.Info("server is running...", slog.String("addr", cfg.Address))

	// Gracefully shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("error starting server", sl.Error(err))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error stopping server", sl.Error(err))
	}

	log.Info("server stopped")
}

// createSuperuser adds a staff account, prompting twice for its password.
func createSuperuser(args []string) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ExitOnError)
	path := fs.String("config", os.Getenv("CONFIG_PATH"), "sets path to config file")
	name := fs.String("user", "", "user name of the new superuser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		return errors.New("config path is empty")
	}
	if *name == "" {
		return errors.New("-user is required")
	}

	cfg := config.MustLoadPath(*path)
	log := logger.New(cfg.Env)

	fmt.Printf("password for user %s: ", *name)
	pass1, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}

	fmt.Printf("repeat password: ")
	pass2, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}

	if !bytes.Equal(pass1, pass2) {
		return errors.New("passwords don't match")
	}

	storage, err := sqlite.New(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("error opening storage: %w", err)
	}
	defer storage.Close()

	id, err := userservice.New(log, storage, cfg.TokenTTL, cfg.Secret).CreateSuperuser(context.Background(), *name, string(pass1))
	if err != nil {
		return fmt.Errorf("error creating user %s: %w", *name, err)
	}

	log.Info("superuser created", slog.String("user", *name), slog.Int64("id", id))

	return nil
}

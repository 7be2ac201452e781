// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/cookbook/transfer/server/internal/config"
	"github.com/curioswitch/cookbook/transfer/server/internal/cookbookdb"
	"github.com/curioswitch/cookbook/transfer/server/internal/file"
	"github.com/curioswitch/cookbook/transfer/server/internal/handler/recipetransfer"
	"github.com/curioswitch/cookbook/transfer/server/internal/subscriber"
	"github.com/curioswitch/cookbook/transfer/server/internal/transfer"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		return fmt.Errorf("main: create firebase auth client: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	storage, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()
	publicBucket := conf.Google.Project + "-public"

	io := file.NewIO(storage, publicBucket)
	ingestor := transfer.NewIngestor(io, &http.Client{Timeout: 30 * time.Second})
	store := cookbookdb.NewRecipeStore(firestore)
	handler := recipetransfer.NewHandler(store, ingestor)

	fbMW := firebaseauth.NewMiddleware(fbAuth)

	mux.Use(middleware.Maybe(func(h http.Handler) http.Handler {
		return fbMW(h)
	}, func(r *http.Request) bool {
		switch {
		case strings.HasPrefix(r.URL.Path, "/internal/"):
			return false
		default:
			return true
		}
	}))

	mux.Method(http.MethodPost, "/internal/pubsub/recipe-transfers", recipetransfer.NewPushHandler(handler))
	mux.Method(http.MethodPost, "/v1/recipe-transfers", recipetransfer.NewSubmitHandler(handler))

	grp, ctx := errgroup.WithContext(ctx)

	if conf.PubSub.Subscription != "" {
		pubsubClient, err := pubsub.NewClient(ctx, conf.Google.Project)
		if err != nil {
			return fmt.Errorf("main: create pubsub client: %w", err)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				slog.ErrorContext(ctx, "main: close pubsub client", "error", err)
			}
		}()

		sub := subscriber.New(pubsubClient, conf.PubSub.Subscription, handler)
		grp.Go(func() error {
			return sub.Run(ctx)
		})
	}

	grp.Go(func() error {
		if err := server.Start(ctx, s); err != nil {
			return fmt.Errorf("main: starting server: %w", err)
		}
		return nil
	})

	return grp.Wait()
}

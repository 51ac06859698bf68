package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/polyprep/polynotes/internal/client/app"
	"github.com/polyprep/polynotes/internal/client/config"
	"github.com/polyprep/polynotes/internal/client/models"
	"github.com/polyprep/polynotes/internal/client/repositories/snapshot"
	"github.com/polyprep/polynotes/internal/client/watch"
	"github.com/polyprep/polynotes/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repo := snapshot.NewFileRepository(filepath.Join(cfg.DataDir, app.SnapshotFileName), logger)
	viewer := watch.NewViewer(repo, logger)

	err := viewer.Run(ctx, func(marked []models.Note) {
		fmt.Printf("--- bookmarked notes (%d) ---\n", len(marked))
		for _, n := range marked {
			fmt.Printf("%s  %s  by %s  (%s likes)\n",
				n.CreatedAt.Format("2006-01-02 15:04"), n.Title, n.Author,
				models.FormatCount(n.LikeCount))
		}
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
}

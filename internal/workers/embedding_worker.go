package workers

import (
	"context"
	"time"

	"github.com/dsaidinesh/influencerflow/internal/embeddings"
	"github.com/dsaidinesh/influencerflow/internal/logger"
	"github.com/dsaidinesh/influencerflow/internal/repositories"
	"github.com/dsaidinesh/influencerflow/internal/services"

	"gorm.io/gorm"
)

const backfillBatchSize = 25

// EmbeddingWorker periodically embeds creators whose profile vector is
// missing, either because they were just created or because an update
// invalidated the old one.
type EmbeddingWorker struct {
	db          *gorm.DB
	embedder    embeddings.Embedder
	creatorRepo repositories.CreatorRepository
	interval    time.Duration
}

func NewEmbeddingWorker(db *gorm.DB, embedder embeddings.Embedder, creatorRepo repositories.CreatorRepository, interval time.Duration) *EmbeddingWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &EmbeddingWorker{
		db:          db,
		embedder:    embedder,
		creatorRepo: creatorRepo,
		interval:    interval,
	}
}

// Start launches the backfill loop. Without an embedding backend there is
// nothing to backfill and the worker exits immediately.
func (w *EmbeddingWorker) Start(ctx context.Context) {
	if w.embedder == nil {
		logger.Warn("Embedding worker disabled: no embedding backend configured")
		return
	}
	go w.backfillLoop(ctx)
}

func (w *EmbeddingWorker) backfillLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Embedding worker stopped")
			return
		case <-ticker.C:
			w.backfillOnce(ctx)
		}
	}
}

func (w *EmbeddingWorker) backfillOnce(ctx context.Context) {
	creators, err := w.creatorRepo.FindMissingEmbeddings(w.db, backfillBatchSize)
	if err != nil {
		logger.WorkerLog("embedding", "backfill_query", err)
		return
	}
	if len(creators) == 0 {
		return
	}

	var done int
	for i := range creators {
		creator := &creators[i]

		vector, err := w.embedder.Embed(ctx, services.BuildCreatorText(creator))
		if err != nil {
			// One failing profile must not block the batch; retried next tick.
			logger.Warn("Embedding backfill failed for creator",
				"creator_id", creator.ID,
				"error", err.Error())
			continue
		}

		float64s := make([]float64, len(vector))
		for j, v := range vector {
			float64s[j] = float64(v)
		}

		if err := w.creatorRepo.UpdateEmbedding(w.db, creator.ID, float64s); err != nil {
			logger.Warn("Embedding backfill store failed",
				"creator_id", creator.ID,
				"error", err.Error())
			continue
		}
		done++
	}

	if done > 0 {
		logger.Info("Embedding backfill pass completed", "embedded", done, "batch", len(creators))
	}
}

package workers

import (
	"context"
	"time"

	"inviteme_backend/internal/logger"
	"inviteme_backend/internal/repositories"

	"gorm.io/gorm"
)

const (
	expiryCheckInterval = 1 * time.Hour
	expiryBatchSize     = 500

	// Просроченные приглашения с auto_delete хранятся еще неделю, чтобы
	// владелец успел выгрузить ответы гостей.
	deleteGracePeriod = 7 * 24 * time.Hour
)

// ExpiryWorker переводит просроченные приглашения в expired и удаляет
// те, у которых включено auto_delete.
type ExpiryWorker struct {
	db             *gorm.DB
	invitationRepo repositories.InvitationRepository
}

func NewExpiryWorker(db *gorm.DB, invitationRepo repositories.InvitationRepository) *ExpiryWorker {
	return &ExpiryWorker{
		db:             db,
		invitationRepo: invitationRepo,
	}
}

// Start запускает фоновую обработку истечения приглашений
func (w *ExpiryWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *ExpiryWorker) run(ctx context.Context) {
	ticker := time.NewTicker(expiryCheckInterval)
	defer ticker.Stop()

	// Первый проход сразу при старте, не дожидаясь тикера
	w.sweep()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *ExpiryWorker) sweep() {
	now := time.Now()

	expired, err := w.invitationRepo.FindExpired(w.db, now, expiryBatchSize)
	if err != nil {
		logger.WorkerLog("expiry", "find expired invitations", err)
		return
	}

	if len(expired) > 0 {
		ids := make([]string, 0, len(expired))
		for i := range expired {
			ids = append(ids, expired[i].ID)
		}

		marked, err := w.invitationRepo.MarkExpired(w.db, ids)
		if err != nil {
			logger.WorkerLog("expiry", "mark invitations expired", err)
		} else if marked > 0 {
			logger.Info("Marked invitations as expired", "count", marked)
		}
	}

	deleted, err := w.invitationRepo.DeleteExpiredAutoDelete(w.db, now.Add(-deleteGracePeriod))
	if err != nil {
		logger.WorkerLog("expiry", "delete expired invitations", err)
	} else if deleted > 0 {
		logger.Info("Deleted auto-delete invitations", "count", deleted)
	}
}

package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type sessionQueryService struct {
	records repository.SessionRecordRepo
	userID  string
	now     func() time.Time
}

func NewSessionQueryService(records repository.SessionRecordRepo, userID string) SessionQueryService {
	return &sessionQueryService{records: records, userID: userID, now: time.Now}
}

func (s *sessionQueryService) ListRecent(ctx context.Context, days int) ([]*domain.SessionRecord, error) {
	return s.records.ListRecent(ctx, s.userID, s.now().AddDate(0, 0, -days))
}

func (s *sessionQueryService) Delete(ctx context.Context, id string) error {
	return s.records.Delete(ctx, id)
}

package tests

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/civkit/civkit-api-sub000/db"
	"github.com/civkit/civkit-api-sub000/db/migrations"
	"github.com/civkit/civkit-api-sub000/events"
	"github.com/civkit/civkit-api-sub000/logger"
	"github.com/civkit/civkit-api-sub000/tests/mocks"
)

type TestService struct {
	DB             *gorm.DB
	EventPublisher events.EventPublisher
	LNClient       *mocks.MockLNClient

	dbFilePath string
}

func CreateTestService(t *testing.T) (*TestService, error) {
	logger.Init("1")

	dbFilePath := filepath.Join(t.TempDir(), "test.db")
	gormDB, err := db.NewDB(dbFilePath, false)
	if err != nil {
		return nil, err
	}
	if err := migrations.Migrate(gormDB); err != nil {
		return nil, err
	}

	return &TestService{
		DB:             gormDB,
		EventPublisher: events.NewEventPublisher(),
		LNClient:       mocks.NewMockLNClient(t),
		dbFilePath:     dbFilePath,
	}, nil
}

func (svc *TestService) Remove() {
	if err := db.Stop(svc.DB); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to close test database")
	}
	os.Remove(svc.dbFilePath)
}

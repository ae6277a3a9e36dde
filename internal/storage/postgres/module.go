package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/kairos-ev/ordertrack/internal/config"
	"github.com/kairos-ev/ordertrack/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.DocumentRepository { return s.Documents() },
		func(s *Storage) repository.ReceiptRepository { return s.Receipts() },
		func(s *Storage) repository.MessageRepository { return s.Messages() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}

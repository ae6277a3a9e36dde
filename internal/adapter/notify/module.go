package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kairos-ev/ordertrack/internal/config"
)

// Module exposes the milestone event sender to the fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	if p.Config.NotifyURL == "" {
		return NoopSender{}, nil
	}
	return NewWebhookSender(p.Config.NotifyURL, p.Logger)
}

package process

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vitaehub/vitaehub/app/core"
	"github.com/vitaehub/vitaehub/pkg/register"
	"github.com/vitaehub/vitaehub/pkg/safe"
)

type Process struct {
	cron *cron.Cron
	core *core.Core
}

var p *Process

type ProcessKey struct{}

func NewProcess(core *core.Core) *Process {
	p = &Process{
		cron: cron.New(),
		core: core,
	}

	for _, h := range register.ResolveFuncHandlers[*Process](ProcessKey{}) {
		h(p)
	}

	return p
}

func (p *Process) Cron() *cron.Cron {
	return p.cron
}

func (p *Process) Core() *core.Core {
	return p.core
}

func (p *Process) Start() {
	p.cron.Start()
}

func (p *Process) Stop() {
	if p.cron != nil {
		ctx := p.cron.Stop()
		<-ctx.Done()
	}
}

func init() {
	register.RegisterFunc(ProcessKey{}, func(p *Process) {
		// sweep idle widget state every 10 minutes
		p.Cron().AddFunc("*/10 * * * *", func() {
			safe.RunWithComponent(func() {
				if n := p.Core().Widgets().ExpireIdle(core.WidgetIdleTTL); n > 0 {
					slog.Info("expired idle chat widgets", slog.Int("count", n))
				}
			}, "widget-sweep")
		})

		// purge expired access tokens nightly
		p.Cron().AddFunc("30 3 * * *", func() {
			safe.RunWithComponent(func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				n, err := p.Core().Store().AccessTokenStore().DeleteExpired(ctx)
				if err != nil {
					slog.Error("access token cleanup failed", slog.Any("error", err))
					return
				}
				if n > 0 {
					slog.Info("purged expired access tokens", slog.Int64("count", n))
				}
			}, "token-cleanup")
		})
	})
}

// Package observers provides run callbacks for the triage graph.
package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"

	logx "github.com/ticket-triage/server/pkg/logger"
)

// NewStageCallbacks builds a callbacks handler that logs every graph stage
// boundary. Attached per Invoke so each run's stages are traceable.
func NewStageCallbacks() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, input einocb.CallbackInput) context.Context {
			if info != nil {
				logx.Debug().
					Str("node", info.Name).
					Str("component", string(info.Component)).
					Msg("Stage start")
			}
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, output einocb.CallbackOutput) context.Context {
			if info != nil {
				logx.Debug().Str("node", info.Name).Msg("Stage end")
			}
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			if info != nil {
				logx.Error().Err(err).Str("node", info.Name).Msg("Stage error")
			}
			return ctx
		}).
		Build()
}

// Package graph assembles the triage pipeline as a compiled Eino graph:
// ingest -> classify_issue -> (branch) -> fetch_order -> draft_reply.
package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/ticket-triage/server/internal/triage/graph/nodes"
	"github.com/ticket-triage/server/internal/triage/graph/observers"
	"github.com/ticket-triage/server/internal/triage/model"
	"github.com/ticket-triage/server/internal/triage/store"
	logx "github.com/ticket-triage/server/pkg/logger"
)

// Runner is the single entry point into the triage pipeline. Every caller
// (chat loop, batch CLI, HTTP handler) goes through Triage; there is no other
// way in. Each invocation is synchronous, bounded, and side-effect-free
// beyond the returned Result.
type Runner interface {
	Triage(ctx context.Context, in model.TicketInput) (*model.Result, error)
}

// Config holds everything needed to compose the triage graph.
type Config struct {
	Store *store.Store
}

// GraphBuilder handles the construction of the triage graph.
type GraphBuilder struct {
	store *store.Store
	graph *compose.Graph[model.TicketInput, *model.Result]
}

type graphRunner struct {
	runnable compose.Runnable[model.TicketInput, *model.Result]
}

func (r *graphRunner) Triage(ctx context.Context, in model.TicketInput) (*model.Result, error) {
	if strings.TrimSpace(in.TicketText) == "" {
		return nil, fmt.Errorf("ticket text is required")
	}
	return r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewStageCallbacks()))
}

// BuildTriageGraph composes and compiles the pipeline, returning a Runner.
// The graph has exactly one conditional branch and no cycles; a fresh
// TriageState is generated per invocation, so compiled runners are safe for
// concurrent callers.
func BuildTriageGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("lookup store is nil")
	}

	builder := &GraphBuilder{
		store: cfg.Store,
		graph: compose.NewGraph[model.TicketInput, *model.Result](
			compose.WithGenLocalState(func(ctx context.Context) *model.TriageState {
				return &model.TriageState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranch(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// addNodes adds all processing stages to the graph.
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeIngest,
		nodes.NewIngestNode(),
		compose.WithStatePreHandler(nodes.NewIngestPreHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeClassifyIssue,
		nodes.NewClassifyIssueNode(b.store),
		compose.WithStatePostHandler(nodes.NewClassifyIssuePostHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodeFetchOrder,
		nodes.NewFetchOrderNode(b.store),
	)

	b.graph.AddLambdaNode(nodes.NodeDraftReply,
		nodes.NewDraftReplyNode(b.store),
	)
}

// addEdges creates the unconditional flow connections between stages.
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeIngest},
		{nodes.NodeIngest, nodes.NodeClassifyIssue},
		{nodes.NodeFetchOrder, nodes.NodeDraftReply},
		{nodes.NodeDraftReply, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranch wires the pipeline's single conditional transition. The end-node
// map is the explicit transition table: classify_issue hands off to
// fetch_order when an order id is present, otherwise straight to draft_reply.
func (b *GraphBuilder) addBranch() error {
	lookupBranch := compose.NewGraphBranch(
		nodes.NewOrderLookupCondition(),
		map[string]bool{
			nodes.NodeFetchOrder: true,
			nodes.NodeDraftReply: true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeClassifyIssue, lookupBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding order lookup branch")
		return fmt.Errorf("error adding order lookup branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph.
func (b *GraphBuilder) compile(ctx context.Context) (Runner, error) {
	// Four stages and no cycles; a small cap still guards wiring mistakes.
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling triage graph")
		return nil, fmt.Errorf("error compiling triage graph: %w", err)
	}

	logx.Debug().Msg("Triage graph compiled successfully")
	return &graphRunner{runnable: runnable}, nil
}

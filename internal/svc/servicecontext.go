package svc

import (
	"errors"
	"log"

	"github.com/zeromicro/go-zero/core/logx"

	"livslogg/internal/config"
	"livslogg/pkg/audit"
	"livslogg/pkg/confkit"
	llmpkg "livslogg/pkg/llm"
	"livslogg/pkg/parser"
	"livslogg/pkg/tasks"
	"livslogg/pkg/tracker"
)

// ServiceContext carries the shared dependencies for the CLI commands
// and the dashboard handlers.
type ServiceContext struct {
	Config config.Config

	Store *tracker.Store
	Tasks *tasks.Store

	// LLMClient and Parser are nil when no LLM config is available;
	// read-only commands and the dashboard work without them.
	LLMClient llmpkg.LLMClient
	Parser    *parser.Parser

	// Audit is nil unless AuditDir is configured.
	Audit *audit.Writer
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
		Store:  tracker.NewStore(c.ResolvedStorePath()),
		Tasks:  tasks.NewStore(c.ResolvedTaskPath()),
	}

	llmCfg := c.LLM.Value
	if llmCfg == nil {
		// No YAML section; fall back to env-only config when a key is set.
		envCfg, err := llmpkg.DefaultConfig()
		switch {
		case err == nil:
			llmCfg = envCfg
		case errors.Is(err, llmpkg.ErrMissingAPIKey):
			// LLM simply not configured; read-only commands still work.
		default:
			logx.Errorf("llm env config invalid, continuing without parser: %v", err)
		}
	}
	if llmCfg != nil {
		client, err := llmpkg.NewClient(llmCfg)
		if err != nil {
			log.Fatalf("failed to build llm client: %v", err)
		}
		svc.LLMClient = client
		svc.Parser = parser.New(client)
	}

	if c.AuditDir != "" {
		svc.Audit = audit.NewWriter(confkit.ResolvePath(c.BaseDir(), c.AuditDir))
	}

	return svc
}

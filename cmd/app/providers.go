package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/contenttools/internal/domain/content"
	"github.com/yanqian/contenttools/internal/domain/faq"
	"github.com/yanqian/contenttools/internal/domain/tools"
	"github.com/yanqian/contenttools/internal/infra/config"
	"github.com/yanqian/contenttools/internal/infra/contentstore"
	"github.com/yanqian/contenttools/internal/infra/faqstore"
	"github.com/yanqian/contenttools/internal/infra/llm"
	"github.com/yanqian/contenttools/internal/infra/llm/chatgpt"
	"github.com/yanqian/contenttools/internal/infra/llm/gemini"
	"github.com/yanqian/contenttools/internal/infra/reports"
	"github.com/yanqian/contenttools/internal/infra/tokenizer"
	httpiface "github.com/yanqian/contenttools/internal/interface/http"
)

func provideFAQConfig(cfg *config.Config) faq.Config {
	return faq.Config{
		Prompt:             cfg.FAQ.Prompt,
		MinItems:           cfg.FAQ.MinItems,
		MaxContentTokens:   cfg.FAQ.MaxContentTokens,
		BatchRatePerMinute: cfg.FAQ.BatchRatePerMinute,
	}
}

func provideSite(cfg *config.Config) content.Site {
	return content.Site{
		URL:         cfg.Content.SiteURL,
		FrontPageID: cfg.Content.FrontPageID,
		PostsPageID: cfg.Content.PostsPageID,
	}
}

func provideContentStore(cfg *config.Config, logger *slog.Logger) (content.Store, func(), error) {
	dsn := strings.TrimSpace(cfg.Content.Postgres.DSN)
	if dsn == "" {
		logger.Warn("content postgres dsn not set, using an empty memory store")
		return contentstore.NewMemoryStore(), func() {}, nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("parse content postgres dsn: %w", err)
	}
	if cfg.Content.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Content.Postgres.MaxConns
	}
	if cfg.Content.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Content.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("create content postgres pool: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping content postgres: %w", err)
	}
	logger.Info("content postgres store enabled")
	return contentstore.NewPostgresStore(pool), pool.Close, nil
}

// provideFAQStore keeps FAQ lists in post meta, optionally cached in Valkey.
func provideFAQStore(cfg *config.Config, contentStore content.Store, logger *slog.Logger) (faq.Store, func()) {
	backing := faqstore.NewMetaStore(contentStore)
	if !cfg.FAQ.Valkey.Enabled {
		return backing, func() {}
	}
	opt, err := buildValkeyOptions(cfg.FAQ.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, caching disabled", "error", err)
		return backing, func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, caching disabled", "error", err)
		return backing, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, caching disabled", "error", err)
		client.Close()
		return backing, func() {}
	}
	logger.Info("faq valkey cache enabled", "addr", cfg.FAQ.Valkey.Addr)
	return faqstore.NewValkeyStore(client, backing, cfg.FAQ.Valkey.Prefix, cfg.FAQ.CacheTTL, logger), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// provideCompleter returns nil without an API key; generation then reports a
// configuration error instead of failing startup.
func provideCompleter(cfg *config.Config, logger *slog.Logger) (faq.Completer, error) {
	if !cfg.LLM.Configured() {
		logger.Warn("llm api key not set, faq generation disabled")
		return nil, nil
	}
	switch cfg.LLM.Kind {
	case llm.KindGemini:
		baseURL := ""
		if llm.ResolveKind("", cfg.LLM.Endpoint) == llm.KindGemini {
			baseURL = gemini.BaseURLFromEndpoint(cfg.LLM.Endpoint)
		}
		client, err := gemini.NewClient(gemini.Options{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     baseURL,
			Models:      cfg.LLM.GeminiModels,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("llm provider selected", "provider", llm.KindGemini, "models", client.Models())
		return client, nil
	default:
		client, err := chatgpt.NewClient(chatgpt.Options{
			APIKey:      cfg.LLM.APIKey,
			Endpoint:    cfg.LLM.Endpoint,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("llm provider selected", "provider", llm.KindOpenAI, "model", cfg.LLM.Model)
		return client, nil
	}
}

func provideTokenBudget(cfg *config.Config) faq.TokenBudget {
	return tokenizer.New(cfg.LLM.Model)
}

func provideReportStorage(cfg *config.Config, logger *slog.Logger) (reports.Storage, error) {
	r2 := cfg.Reports.R2
	if r2.Enabled {
		return reports.NewR2Storage(reports.R2Options{
			Endpoint:  r2.Endpoint,
			AccessKey: r2.AccessKey,
			SecretKey: r2.SecretKey,
			Bucket:    r2.Bucket,
			Region:    r2.Region,
			Prefix:    r2.Prefix,
		}, logger)
	}
	storage, err := reports.NewDirStorage(cfg.Reports.Dir)
	if err != nil {
		return nil, err
	}
	logger.Info("reports stored on disk", "dir", storage.Dir())
	return storage, nil
}

func provideFAQReports(storage reports.Storage) faq.ReportStorage {
	return storage
}

func provideHandler(cfg *config.Config, faqSvc faq.Service, toolsSvc tools.Service, storage reports.Storage, logger *slog.Logger) *httpiface.Handler {
	return httpiface.NewHandler(faqSvc, toolsSvc, storage, cfg.HTTP.MaxUploadMB, logger)
}

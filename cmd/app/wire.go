//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/contenttools/internal/bootstrap"
	"github.com/yanqian/contenttools/internal/domain/content"
	"github.com/yanqian/contenttools/internal/domain/faq"
	"github.com/yanqian/contenttools/internal/domain/tools"
	"github.com/yanqian/contenttools/internal/infra/config"
	httpiface "github.com/yanqian/contenttools/internal/interface/http"
	"github.com/yanqian/contenttools/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideFAQConfig,
		provideSite,
		provideContentStore,
		provideFAQStore,
		provideCompleter,
		provideTokenBudget,
		provideReportStorage,
		provideFAQReports,
		content.NewResolver,
		wire.Bind(new(faq.Locator), new(*content.Resolver)),
		faq.NewService,
		tools.NewService,
		provideHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}

package handlers

import (
	"github.com/jmoiron/sqlx"

	"shopfront/internal/catalogapi"
	"shopfront/internal/config"
	"shopfront/internal/repos"
	"shopfront/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	ViewModeHandler *ViewModeHandler
	Catalog         *services.CatalogService
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	api := catalogapi.New(cfg.APIBaseURL, cfg.APITimeout)
	catalogSvc := services.NewCatalogService(api, cfg.ListStale)
	sessions := &Sessions{Prefs: repos.NewPrefRepo(db)}

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc, Sessions: sessions, PageSize: cfg.PageSize},
		ViewModeHandler: &ViewModeHandler{Sessions: sessions},
		Catalog:         catalogSvc,
	}
}

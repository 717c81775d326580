package providers

import (
	"github.com/samber/do/v2"

	"github.com/geasyapp/geasy-server/internal/logger"
	"github.com/geasyapp/geasy-server/internal/service"
)

// ProvideCatalogService provides the catalog query service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewCatalogService(storeHandle.Store, log.Logger), nil
}

// ProvidePlannerService provides the requirement evaluation service.
func ProvidePlannerService(i do.Injector) (*service.PlannerService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewPlannerService(storeHandle.Store, log.Logger), nil
}

// ProvideIngestService provides the CSV ingest service.
func ProvideIngestService(i do.Injector) (*service.IngestService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewIngestService(storeHandle.Store, log.Logger), nil
}

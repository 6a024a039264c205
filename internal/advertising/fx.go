package advertising

import (
	"github.com/judgefinder/platform/internal/advertising/repository"
	"github.com/judgefinder/platform/internal/advertising/service"
	"go.uber.org/fx"
)

var Module = fx.Module("advertising.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewPricingService),
	fx.Provide(service.NewPlacementService),
)

package judge

import (
	"github.com/judgefinder/platform/internal/judge/assignment"
	"github.com/judgefinder/platform/internal/judge/repository"
	"github.com/judgefinder/platform/internal/judge/service"
	"go.uber.org/fx"
)

var Module = fx.Module("judge.service",
	fx.Provide(repository.Provide),
	fx.Provide(assignment.New),
	fx.Provide(service.New),
)

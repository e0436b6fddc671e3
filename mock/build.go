package mock

import (
	"context"

	"github.com/fwojciec/wcdoc"
)

var _ wcdoc.BuildService = (*BuildService)(nil)

// BuildService is a mock implementation of wcdoc.BuildService.
type BuildService struct {
	CreateBuildFn   func(ctx context.Context, b *wcdoc.Build) error
	FindBuildByIDFn func(ctx context.Context, id string) (*wcdoc.Build, error)
	FindBuildsFn    func(ctx context.Context, filter wcdoc.BuildFilter) ([]*wcdoc.Build, error)
}

func (s *BuildService) CreateBuild(ctx context.Context, b *wcdoc.Build) error {
	return s.CreateBuildFn(ctx, b)
}

func (s *BuildService) FindBuildByID(ctx context.Context, id string) (*wcdoc.Build, error) {
	return s.FindBuildByIDFn(ctx, id)
}

func (s *BuildService) FindBuilds(ctx context.Context, filter wcdoc.BuildFilter) ([]*wcdoc.Build, error) {
	return s.FindBuildsFn(ctx, filter)
}

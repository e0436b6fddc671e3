package wcdoc

import (
	"context"
	"time"
)

// Build is a record of one committed index build.
type Build struct {
	ID        string    `json:"id"`
	OutputDir string    `json:"outputDir"`
	Elements  int       `json:"elements"`
	Objects   int       `json:"objects"`
	Digest    string    `json:"digest"`
	CreatedAt time.Time `json:"createdAt"`

	Entities []*BuildEntity `json:"entities,omitempty"`
}

// Validate returns an error if the build contains invalid fields.
func (b *Build) Validate() error {
	if b.OutputDir == "" {
		return Errorf(EINVALID, "build output directory required")
	}
	if b.Digest == "" {
		return Errorf(EINVALID, "build digest required")
	}
	return nil
}

// BuildEntity is one entity written by a build.
type BuildEntity struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
	Hash string `json:"hash"`
}

// BuildService records build history.
type BuildService interface {
	// CreateBuild stores a build and its entities. ID and CreatedAt are assigned.
	CreateBuild(ctx context.Context, b *Build) error

	// FindBuildByID retrieves a build with its entities.
	// Returns ENOTFOUND if the build does not exist.
	FindBuildByID(ctx context.Context, id string) (*Build, error)

	// FindBuilds retrieves builds newest first, without entities.
	FindBuilds(ctx context.Context, filter BuildFilter) ([]*Build, error)
}

// BuildFilter represents a filter for FindBuilds.
type BuildFilter struct {
	OutputDir *string `json:"outputDir"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

package model

import (
	"context"
	"fmt"

	internalmodel "github.com/goliatone/go-roleform/internal/model"
	"github.com/goliatone/go-roleform/internal/openapi/parser"
)

// BuilderOption configures Load.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler  func(string) string
	validate bool
}

// WithLabeler overrides the default label generation.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithDocumentValidation runs the OpenAPI validator before building.
func WithDocumentValidation() BuilderOption {
	return func(opts *builderOptions) {
		opts.validate = true
	}
}

// Load parses an OpenAPI document and builds the form for operationID.
func Load(ctx context.Context, raw []byte, operationID string, options ...BuilderOption) (FormModel, error) {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	set, err := parser.New(parser.Options{Validate: cfg.validate}).Parse(ctx, raw)
	if err != nil {
		return FormModel{}, err
	}
	form, ok := set.Form(operationID)
	if !ok {
		return FormModel{}, fmt.Errorf("model: operation %q not found", operationID)
	}
	return internalmodel.New(internalmodel.Options{Labeler: cfg.labeler}).Build(form)
}

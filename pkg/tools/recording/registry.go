// Package recording exposes the recording core through the capability
// convention: thin tool adapters over the session store, persistence, and
// the test generator. The per-action browser adapters (navigate, click, ...)
// live with the orchestration layer; what is exposed here is the core's own
// surface: open/append/close, generate, save/load/import.
package recording

import (
	"github.com/entrhq/scribe/pkg/codegen"
	"github.com/entrhq/scribe/pkg/config"
	"github.com/entrhq/scribe/pkg/recorder"
	"github.com/entrhq/scribe/pkg/tools"
)

// Registry wires the recording tools over one shared store, persistence
// layer, and generator.
type Registry struct {
	cfg       *config.Config
	store     *recorder.Store
	persist   *recorder.Persistence
	generator *codegen.Generator
	tools     []tools.Tool
}

// NewRegistry creates the recording tool registry from configuration.
func NewRegistry(cfg *config.Config) *Registry {
	store := recorder.NewStore()
	return &Registry{
		cfg:       cfg,
		store:     store,
		persist:   recorder.NewPersistence(store, cfg.SessionsDir()),
		generator: codegen.NewGenerator(),
	}
}

// RegisterTools creates and returns all recording tools.
func (r *Registry) RegisterTools() []tools.Tool {
	if len(r.tools) > 0 {
		return r.tools
	}

	r.tools = append(r.tools,
		NewStartRecordingTool(r.store),
		NewRecordActionTool(r.store, r.cfg),
		NewStopRecordingTool(r.store),
		NewListRecordingsTool(r.store, r.persist),
		NewGenerateTestTool(r.store, r.generator, r.cfg),
		NewSaveRecordingTool(r.persist),
		NewLoadRecordingTool(r.persist),
		NewImportRecordingTool(r.persist),
	)

	return r.tools
}

// Store returns the underlying session store.
func (r *Registry) Store() *recorder.Store {
	return r.store
}

// Persistence returns the underlying persistence layer.
func (r *Registry) Persistence() *recorder.Persistence {
	return r.persist
}

// Generator returns the underlying test generator.
func (r *Registry) Generator() *codegen.Generator {
	return r.generator
}

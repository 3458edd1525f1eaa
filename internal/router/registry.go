package router

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Module describes a feature module that can register its routes on a RouterGroup
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them under the API base path.
// Modules added with Add sit behind the registry middlewares; modules added
// with AddPublic do not.
type Registry struct {
	Engine        *gin.Engine
	API           *gin.RouterGroup
	Public        *gin.RouterGroup
	middlewares   []gin.HandlerFunc
	modules       []Module
	publicModules []Module
}

func NewRegistry(engine *gin.Engine, basePath string) *Registry {
	base := "/" + strings.Trim(basePath, "/")
	return &Registry{Engine: engine, API: engine.Group(base), Public: engine.Group(base)}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) AddPublic(mod Module) {
	r.publicModules = append(r.publicModules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.publicModules {
		m.Register(r.Public)
	}
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}

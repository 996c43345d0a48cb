// Package gate is the role-based authorization checkpoint. A policy maps
// roles to allowed actions for one resource type; the Gate is the
// registry the engine consults before every mutation. The UI layer gates
// too, but the engine re-checks so the rules hold no matter the caller.
package gate

import (
	"errors"

	"github.com/MitieSoft/salesdesk/internal/models"
)

// Action describes the kind of operation a user wants to perform.
type Action string

const (
	ActionView       Action = "view"
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionTransition Action = "transition"
	ActionConvert    Action = "convert"
	ActionManage     Action = "manage"
)

// Resource type names registered on the default gate.
const (
	ResourceDocuments = "documents"
	ResourceUsers     = "users"
	ResourceSettings  = "settings"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoPolicyDefined = errors.New("no policy defined for resource")
)

// Policy decides whether a role may perform an action on its resource.
type Policy interface {
	Can(role models.Role, action Action) bool
}

// RolePolicy is a static role -> allowed actions table.
type RolePolicy map[models.Role][]Action

func (p RolePolicy) Can(role models.Role, action Action) bool {
	for _, a := range p[role] {
		if a == action {
			return true
		}
	}
	return false
}

// Gate registers policies by resource type.
type Gate struct {
	policies map[string]Policy
}

func New() *Gate {
	return &Gate{policies: make(map[string]Policy)}
}

// Register adds a policy for a resource type, replacing any existing one.
func (g *Gate) Register(resourceType string, p Policy) {
	g.policies[resourceType] = p
}

// Authorize returns ErrUnauthorized when the role is denied and
// ErrNoPolicyDefined when the resource type is unknown.
func (g *Gate) Authorize(role models.Role, action Action, resourceType string) error {
	p, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(role, action) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate) Can(role models.Role, action Action, resourceType string) bool {
	return g.Authorize(role, action, resourceType) == nil
}

// Default builds the application gate: ADMIN, SALES, and FINANCE work
// documents; VIEWER only reads; user and settings management is
// ADMIN-only.
func Default() *Gate {
	writer := []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionTransition, ActionConvert}
	g := New()
	g.Register(ResourceDocuments, RolePolicy{
		models.RoleAdmin:   writer,
		models.RoleSales:   writer,
		models.RoleFinance: writer,
		models.RoleViewer:  {ActionView},
	})
	g.Register(ResourceUsers, RolePolicy{
		models.RoleAdmin: {ActionView, ActionManage},
	})
	g.Register(ResourceSettings, RolePolicy{
		models.RoleAdmin:   {ActionView, ActionManage},
		models.RoleSales:   {ActionView},
		models.RoleFinance: {ActionView},
		models.RoleViewer:  {ActionView},
	})
	return g
}

package services

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/MitieSoft/salesdesk/internal/gate"
	"github.com/MitieSoft/salesdesk/internal/models"
	"github.com/MitieSoft/salesdesk/internal/validation"
)

// UserInput is the payload for user create and update. Password is
// plaintext on input and stored hashed; empty on update keeps the
// current hash.
type UserInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	Password string      `json:"password"`
}

func (e *Engine) validateUser(in UserInput, selfID string) error {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("email", in.Email, v)
	if !in.Role.Valid() {
		v["role"] = "invalid_value"
	}
	for i := range e.repo.Users {
		if e.repo.Users[i].ID != selfID && strings.EqualFold(e.repo.Users[i].Email, in.Email) {
			v["email"] = "already_taken"
		}
	}
	if !v.Empty() {
		return violationErr(v)
	}
	return nil
}

// CreateUser is ADMIN-only. The account is activity-logged like any
// other tracked entity.
func (e *Engine) CreateUser(in UserInput, actorID string) (*models.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionManage, gate.ResourceUsers); err != nil {
		return nil, err
	}
	if err := e.validateUser(in, ""); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, violationErr(validation.Violations{"password": "required"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := e.now()
	user := models.User{
		ID:        e.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.repo.Users = append(e.repo.Users, user)
	e.logActivity(models.EntityUser, user.ID, models.ActionCreated, actorID, nil)
	e.saveUsers()
	e.repo.ResolveAll()
	u := user.Public()
	return &u, nil
}

func (e *Engine) UpdateUser(id string, in UserInput, actorID string) (*models.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionManage, gate.ResourceUsers); err != nil {
		return nil, err
	}
	user := e.repo.UserByID(id)
	if user == nil {
		return nil, ErrNotFound
	}
	if err := e.validateUser(in, id); err != nil {
		return nil, err
	}
	user.Name = in.Name
	user.Email = in.Email
	user.Role = in.Role
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	user.UpdatedAt = e.now()
	e.logActivity(models.EntityUser, id, models.ActionUpdated, actorID, nil)
	e.saveUsers()
	e.repo.ResolveAll()
	u := e.repo.UserByID(id).Public()
	return &u, nil
}

func (e *Engine) DeleteUser(id, actorID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionManage, gate.ResourceUsers); err != nil {
		return err
	}
	idx := -1
	for i := range e.repo.Users {
		if e.repo.Users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	e.repo.Users = append(e.repo.Users[:idx], e.repo.Users[idx+1:]...)
	e.logActivity(models.EntityUser, id, models.ActionDeleted, actorID, nil)
	e.saveUsers()
	e.repo.ResolveAll()
	return nil
}

func (e *Engine) ListUsers(actorID string) ([]models.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.authorize(actorID, gate.ActionView, gate.ResourceUsers); err != nil {
		return nil, err
	}
	out := make([]models.User, len(e.repo.Users))
	for i, u := range e.repo.Users {
		out[i] = u.Public()
	}
	return out, nil
}

// Authenticate verifies the credentials and returns the account.
func (e *Engine) Authenticate(email, password string) (*models.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.repo.Users {
		if strings.EqualFold(e.repo.Users[i].Email, email) {
			if bcrypt.CompareHashAndPassword([]byte(e.repo.Users[i].Password), []byte(password)) != nil {
				return nil, ErrForbidden
			}
			u := e.repo.Users[i].Public()
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// GetUser returns a single account without the credential.
func (e *Engine) GetUser(id string) (*models.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	user := e.repo.UserByID(id)
	if user == nil {
		return nil, ErrNotFound
	}
	u := user.Public()
	return &u, nil
}

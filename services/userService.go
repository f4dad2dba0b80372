package services

import (
	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/policy"
	"github.com/takdanai-ph/taskboard/workflow"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetAll(actor workflow.Actor) (domain.Users, error) {
	if !policy.CanAccessRoute(actor.Role, policy.AdminOrManager) {
		return nil, domain.ErrForbidden()
	}
	return s.users.GetAll()
}

func (s *UserService) GetById(id string) (*domain.User, error) {
	return s.users.GetById(id)
}

type CreateUserParams struct {
	Username string
	Password string
	Fname    string
	Lname    string
	Email    string
	Role     domain.Role
}

func (s *UserService) Create(actor workflow.Actor, params CreateUserParams) (domain.User, error) {
	if !policy.CanManageUsers(actor.Role) {
		return domain.User{}, domain.ErrForbidden()
	}
	if params.Username == "" {
		return domain.User{}, domain.ErrValidation("username is required")
	}
	if params.Password == "" {
		return domain.User{}, domain.ErrValidation("password is required")
	}
	if params.Email == "" {
		return domain.User{}, domain.ErrValidation("email is required")
	}
	if _, err := domain.RoleFromString(params.Role.String()); err != nil {
		return domain.User{}, domain.ErrValidation("invalid role")
	}

	if existing, err := s.users.GetByUsername(params.Username); err == nil && existing != nil {
		return domain.User{}, domain.ErrUserAlreadyExists()
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return domain.User{}, err
	}

	return s.users.Insert(domain.User{
		Username: params.Username,
		Password: hash,
		Fname:    params.Fname,
		Lname:    params.Lname,
		Email:    params.Email,
		Role:     params.Role,
	})
}

type UpdateUserParams struct {
	Fname  *string
	Lname  *string
	Email  *string
	Role   *domain.Role
	TeamId *primitive.ObjectID
}

func (s *UserService) Update(actor workflow.Actor, id string, params UpdateUserParams) (*domain.User, error) {
	if !policy.CanManageUsers(actor.Role) {
		return nil, domain.ErrForbidden()
	}

	user, err := s.users.GetById(id)
	if err != nil {
		return nil, err
	}

	if params.Fname != nil {
		user.Fname = *params.Fname
	}
	if params.Lname != nil {
		user.Lname = *params.Lname
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Role != nil {
		if _, err := domain.RoleFromString(params.Role.String()); err != nil {
			return nil, domain.ErrValidation("invalid role")
		}
		user.Role = *params.Role
	}
	if params.TeamId != nil {
		user.TeamId = params.TeamId
	}

	if err := s.users.Update(*user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(actor workflow.Actor, id string) error {
	if !policy.CanManageUsers(actor.Role) {
		return domain.ErrForbidden()
	}
	return s.users.Delete(id)
}

package service

import (
	"context"

	"github.com/perenos/yamdb-final/internal/http-api/dto"
	"github.com/perenos/yamdb-final/internal/http-api/models"
	"github.com/perenos/yamdb-final/internal/http-api/permissions"
	"github.com/perenos/yamdb-final/internal/http-api/repository"
)

type UserService interface {
	List(ctx context.Context, requester *models.User, search string, limit, offset int) (*dto.Paginated[dto.UserResponse], error)
	Create(ctx context.Context, requester *models.User, req dto.CreateUserDTO) (*dto.UserResponse, error)
	Get(ctx context.Context, requester *models.User, username string) (*dto.UserResponse, error)
	Update(ctx context.Context, requester *models.User, username string, req dto.UpdateUserDTO) (*dto.UserResponse, error)
	Delete(ctx context.Context, requester *models.User, username string) error

	// Self-profile operations for the authenticated identity
	GetMe(ctx context.Context, requester *models.User) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, requester *models.User, req dto.UpdateUserDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, requester *models.User, search string, limit, offset int) (*dto.Paginated[dto.UserResponse], error) {
	if !permissions.CanManageCatalog(requester) {
		return nil, ErrPermissionDenied
	}

	users, total, err := s.userRepo.Search(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	return dto.NewPaginated(responses, total), nil
}

func (s *userService) Create(ctx context.Context, requester *models.User, req dto.CreateUserDTO) (*dto.UserResponse, error) {
	if !permissions.CanManageCatalog(requester) {
		return nil, ErrPermissionDenied
	}
	if err := ValidateUsername(req.Username); err != nil {
		return nil, err
	}

	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Get(ctx context.Context, requester *models.User, username string) (*dto.UserResponse, error) {
	if !permissions.CanManageCatalog(requester) {
		return nil, ErrPermissionDenied
	}
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, requester *models.User, username string, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	if !permissions.CanManageCatalog(requester) {
		return nil, ErrPermissionDenied
	}
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.applyUpdate(user, req, true); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, requester *models.User, username string) error {
	if !permissions.CanManageCatalog(requester) {
		return ErrPermissionDenied
	}
	return s.userRepo.Delete(ctx, username)
}

func (s *userService) GetMe(ctx context.Context, requester *models.User) (*dto.UserResponse, error) {
	if requester == nil {
		return nil, ErrNotAuthenticated
	}
	return dto.FromModelToUserResponse(requester), nil
}

func (s *userService) UpdateMe(ctx context.Context, requester *models.User, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	if requester == nil {
		return nil, ErrNotAuthenticated
	}
	user, err := s.userRepo.FindByID(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	// allowRole=false: role is silently forced back to the existing value
	if err := s.applyUpdate(user, req, false); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) applyUpdate(user *models.User, req dto.UpdateUserDTO, allowRole bool) error {
	if req.Username != nil {
		if err := ValidateUsername(*req.Username); err != nil {
			return err
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil && allowRole {
		role := models.Role(*req.Role)
		if !models.ValidRole(role) {
			return ErrInvalidRole
		}
		user.Role = role
	}
	return nil
}

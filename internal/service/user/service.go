package user

import (
	"context"
	"fmt"
	"time"

	"github.com/tritonmech/fieldforms-backend-go/internal/domain/user"
	"github.com/tritonmech/fieldforms-backend-go/internal/service/file"
)

type UserService interface {
	Profile(ctx context.Context, userID string) (user.ProfileResponse, error)
	List(ctx context.Context, actorRole user.Role) ([]user.ProfileResponse, error)
	UpdateRole(ctx context.Context, actorRole user.Role, req user.UpdateRoleRequest) (user.ProfileResponse, error)
	UploadSignature(ctx context.Context, userID string, req user.UploadSignatureRequest) (user.ProfileResponse, error)
}

type userServiceImpl struct {
	repo        user.UserRepository
	fileService file.FileService
}

func NewUserService(repo user.UserRepository, fileService file.FileService) UserService {
	return &userServiceImpl{
		repo:        repo,
		fileService: fileService,
	}
}

// Profile implements UserService.
func (s *userServiceImpl) Profile(ctx context.Context, userID string) (user.ProfileResponse, error) {
	found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return s.toProfile(ctx, found), nil
}

// List implements UserService. Admin only.
func (s *userServiceImpl) List(ctx context.Context, actorRole user.Role) ([]user.ProfileResponse, error) {
	if actorRole != user.RoleAdmin {
		return nil, user.ErrAdminAccessRequired
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]user.ProfileResponse, 0, len(users))
	for _, found := range users {
		profiles = append(profiles, s.toProfile(ctx, found))
	}
	return profiles, nil
}

// UpdateRole implements UserService. Admin only.
func (s *userServiceImpl) UpdateRole(ctx context.Context, actorRole user.Role, req user.UpdateRoleRequest) (user.ProfileResponse, error) {
	if actorRole != user.RoleAdmin {
		return user.ProfileResponse{}, user.ErrAdminAccessRequired
	}

	updated, err := s.repo.UpdateRole(ctx, req.ID, user.Role(req.Role))
	if err != nil {
		return user.ProfileResponse{}, err
	}

	return s.toProfile(ctx, updated), nil
}

// UploadSignature implements UserService: stores the image and points the
// user's profile at it.
func (s *userServiceImpl) UploadSignature(ctx context.Context, userID string, req user.UploadSignatureRequest) (user.ProfileResponse, error) {
	path, err := s.fileService.UploadSignature(ctx, userID, req.File, req.FileHeader.Filename)
	if err != nil {
		return user.ProfileResponse{}, fmt.Errorf("failed to store signature: %w", err)
	}

	if err := s.repo.UpdateSignatureURL(ctx, userID, path); err != nil {
		return user.ProfileResponse{}, err
	}

	return s.Profile(ctx, userID)
}

func (s *userServiceImpl) toProfile(ctx context.Context, found user.User) user.ProfileResponse {
	profile := user.ProfileResponse{
		ID:        found.ID,
		Email:     found.Email,
		FullName:  found.FullName,
		Role:      string(found.Role),
		CreatedAt: found.CreatedAt.Format(time.RFC3339),
	}
	if found.SignatureURL != nil {
		if url, err := s.fileService.GetFileURL(ctx, *found.SignatureURL, 24*time.Hour); err == nil {
			profile.SignatureURL = &url
		}
	}
	return profile
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jlfs-dev/picshare/internal/apperrors"
	"github.com/jlfs-dev/picshare/internal/dto"
	"github.com/jlfs-dev/picshare/internal/models"
)

// UserStore is the persistence surface the service needs. *repo.UserRepo
// satisfies it.
type UserStore interface {
	Save(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
	UpdatePartial(ctx context.Context, patch models.UserPatch) (int64, error)
}

// PasswordHasher is the one-way hash used on create and update.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// UserService enforces the domain invariants (unique email, unique username)
// and orchestrates user CRUD over the store and the hasher.
type UserService struct {
	store  UserStore
	hasher PasswordHasher
}

func NewUserService(store UserStore, hasher PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher}
}

// Create validates uniqueness (email first, then username: when both
// collide the reported field is email), hashes the password and persists
// the record. The precheck only improves error messages; the unique
// constraints in the users table are what actually prevent duplicate
// inserts under concurrent sign-ups.
func (s *UserService) Create(ctx context.Context, in dto.UserDto) (dto.UserDto, error) {
	exists, err := s.store.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return dto.UserDto{}, err
	}
	if exists {
		return dto.UserDto{}, &apperrors.FieldExistsError{Field: "email", Message: "email already in use"}
	}

	exists, err = s.store.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return dto.UserDto{}, err
	}
	if exists {
		return dto.UserDto{}, &apperrors.FieldExistsError{Field: "username", Message: "username already in use"}
	}

	encrypted, err := s.hasher.Hash(in.Password)
	if err != nil {
		return dto.UserDto{}, err
	}

	user := &models.User{
		FullName:          in.FullName,
		Username:          in.Username,
		Email:             in.Email,
		EncryptedPassword: encrypted,
	}

	saved, err := s.store.Save(ctx, user)
	if err != nil {
		return dto.UserDto{}, err
	}

	return toDto(saved), nil
}

// FindByID returns the user view for id.
func (s *UserService) FindByID(ctx context.Context, id int64) (dto.UserDto, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoSuchUser) {
			return dto.UserDto{}, &apperrors.UserNotFoundError{ID: id}
		}
		return dto.UserDto{}, err
	}
	return toDto(user), nil
}

// FindAll returns all users as views, in no particular order.
func (s *UserService) FindAll(ctx context.Context) ([]dto.UserDto, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserDto, 0, len(users))
	for i := range users {
		out = append(out, toDto(&users[i]))
	}
	return out, nil
}

// Update overwrites the non-empty fields of in on the stored record. The
// password is re-hashed only when non-blank after trimming whitespace; a
// blank password means "not supplied" and keeps the existing hash. The
// write goes through the store's partial-update primitive.
func (s *UserService) Update(ctx context.Context, in dto.UserDto) (dto.UserDto, error) {
	if in.ID == 0 {
		return dto.UserDto{}, &apperrors.InvalidArgumentError{Message: "UserDto or UserDto.id must not be null"}
	}

	existing, err := s.store.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoSuchUser) {
			return dto.UserDto{}, &apperrors.UserNotFoundError{ID: in.ID}
		}
		return dto.UserDto{}, err
	}

	patch := models.UserPatch{ID: in.ID}
	if in.FullName != "" {
		patch.FullName = &in.FullName
		existing.FullName = in.FullName
	}
	if in.Username != "" {
		patch.Username = &in.Username
		existing.Username = in.Username
	}
	if in.Email != "" {
		patch.Email = &in.Email
		existing.Email = in.Email
	}
	if strings.TrimSpace(in.Password) != "" {
		encrypted, err := s.hasher.Hash(in.Password)
		if err != nil {
			return dto.UserDto{}, err
		}
		patch.EncryptedPassword = &encrypted
		existing.EncryptedPassword = encrypted
	}

	rows, err := s.store.UpdatePartial(ctx, patch)
	if err != nil {
		return dto.UserDto{}, err
	}
	if rows == 0 {
		// Row vanished between the read and the write.
		return dto.UserDto{}, &apperrors.UserNotFoundError{ID: in.ID}
	}

	return toDto(existing), nil
}

// Delete removes the user with id; hard delete.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return &apperrors.UserNotFoundError{ID: id}
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNoSuchUser) {
			// Row vanished between the existence check and the delete.
			return &apperrors.UserNotFoundError{ID: id}
		}
		return err
	}
	return nil
}

// toDto projects a record to the external view with password fields cleared.
func toDto(u *models.User) dto.UserDto {
	return dto.UserDto{
		ID:       u.ID,
		FullName: u.FullName,
		Username: u.Username,
		Email:    u.Email,
	}
}

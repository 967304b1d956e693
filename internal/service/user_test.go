package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlfs-dev/picshare/internal/apperrors"
	"github.com/jlfs-dev/picshare/internal/dto"
	"github.com/jlfs-dev/picshare/internal/models"
)

// fakeStore is an in-test UserStore that records which methods were called.
type fakeStore struct {
	emailExists    bool
	usernameExists bool
	idExists       bool
	byID           *models.User
	byIDErr        error
	list           []models.User
	updateRows     int64
	deleteErr      error

	savedUser             *models.User
	lastPatch             *models.UserPatch
	existsByUsernameCalls int
	saveCalls             int
	deleteCalls           int
}

func (f *fakeStore) Save(_ context.Context, u *models.User) (*models.User, error) {
	f.saveCalls++
	saved := *u
	saved.ID = 1
	f.savedUser = &saved
	return &saved, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	if f.byID == nil || f.byID.ID != id {
		return nil, apperrors.ErrNoSuchUser
	}
	copy := *f.byID
	return &copy, nil
}

func (f *fakeStore) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return f.emailExists, nil
}

func (f *fakeStore) ExistsByUsername(_ context.Context, _ string) (bool, error) {
	f.existsByUsernameCalls++
	return f.usernameExists, nil
}

func (f *fakeStore) ExistsByID(_ context.Context, _ int64) (bool, error) {
	return f.idExists, nil
}

func (f *fakeStore) List(_ context.Context) ([]models.User, error) {
	return f.list, nil
}

func (f *fakeStore) Delete(_ context.Context, _ int64) error {
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeStore) UpdatePartial(_ context.Context, patch models.UserPatch) (int64, error) {
	f.lastPatch = &patch
	return f.updateRows, nil
}

// fakeHasher marks digests so tests can tell hashed from raw values.
type fakeHasher struct {
	calls int
}

func (f *fakeHasher) Hash(plaintext string) (string, error) {
	f.calls++
	return "hashed:" + plaintext, nil
}

func TestUserService_Create(t *testing.T) {
	store := &fakeStore{}
	hasher := &fakeHasher{}
	svc := NewUserService(store, hasher)

	out, err := svc.Create(context.Background(), dto.UserDto{
		FullName: "João da Silva",
		Username: "joao.silva",
		Email:    "joao.silva@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "João da Silva", out.FullName)
	assert.Equal(t, "joao.silva", out.Username)
	assert.Equal(t, "joao.silva@example.com", out.Email)
	assert.Empty(t, out.Password, "password is write-only")
	assert.Empty(t, out.EncryptedPassword)

	require.NotNil(t, store.savedUser)
	assert.Equal(t, "hashed:password123", store.savedUser.EncryptedPassword)
}

func TestUserService_Create_EmailConflict(t *testing.T) {
	store := &fakeStore{emailExists: true, usernameExists: true}
	svc := NewUserService(store, &fakeHasher{})

	_, err := svc.Create(context.Background(), dto.UserDto{
		Username: "joao.silva",
		Email:    "joao.silva@example.com",
		Password: "password123",
	})

	var fieldErr *apperrors.FieldExistsError
	require.ErrorAs(t, err, &fieldErr)
	// Email is checked first: when both collide the reported field is email.
	assert.Equal(t, "email", fieldErr.Field)
	assert.Equal(t, "email already in use", fieldErr.Message)
	assert.Zero(t, store.existsByUsernameCalls, "username check must be short-circuited")
	assert.Zero(t, store.saveCalls)
}

func TestUserService_Create_UsernameConflict(t *testing.T) {
	store := &fakeStore{usernameExists: true}
	svc := NewUserService(store, &fakeHasher{})

	_, err := svc.Create(context.Background(), dto.UserDto{
		Username: "joao.silva",
		Email:    "free@example.com",
		Password: "password123",
	})

	var fieldErr *apperrors.FieldExistsError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "username already in use", fieldErr.Message)
	assert.Zero(t, store.saveCalls)
}

func TestUserService_FindByID(t *testing.T) {
	store := &fakeStore{byID: &models.User{
		ID: 1, FullName: "Paulo Pereira", Username: "paulodev",
		Email: "paulo@ppereira.dev", EncryptedPassword: "secret-hash",
	}}
	svc := NewUserService(store, &fakeHasher{})

	out, err := svc.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "paulodev", out.Username)
	assert.Empty(t, out.Password)
	assert.Empty(t, out.EncryptedPassword, "hash never leaves the service")
}

func TestUserService_FindByID_NotFound(t *testing.T) {
	svc := NewUserService(&fakeStore{}, &fakeHasher{})

	_, err := svc.FindByID(context.Background(), 999)

	var notFound *apperrors.UserNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "User not found with id: 999", err.Error())
}

func TestUserService_FindByID_WrappedNotFound(t *testing.T) {
	store := &fakeStore{byIDErr: fmt.Errorf("load user: %w", apperrors.ErrNoSuchUser)}
	svc := NewUserService(store, &fakeHasher{})

	_, err := svc.FindByID(context.Background(), 7)

	var notFound *apperrors.UserNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(7), notFound.ID)
}

func TestUserService_FindAll(t *testing.T) {
	store := &fakeStore{list: []models.User{
		{ID: 1, FullName: "Paulo Pereira", Username: "paulodev", Email: "paulo@ppereira.dev", EncryptedPassword: "h1"},
		{ID: 2, FullName: "Maria Silva", Username: "marias", Email: "maria@silva.dev", EncryptedPassword: "h2"},
	}}
	svc := NewUserService(store, &fakeHasher{})

	out, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, u := range out {
		assert.Empty(t, u.Password)
		assert.Empty(t, u.EncryptedPassword)
	}
}

func TestUserService_FindAll_Empty(t *testing.T) {
	svc := NewUserService(&fakeStore{}, &fakeHasher{})

	out, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUserService_Update_MissingID(t *testing.T) {
	svc := NewUserService(&fakeStore{}, &fakeHasher{})

	_, err := svc.Update(context.Background(), dto.UserDto{
		FullName: "X", Username: "x", Email: "x@x", Password: "y",
	})

	var invalid *apperrors.InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "UserDto or UserDto.id must not be null", invalid.Message)
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(&fakeStore{}, &fakeHasher{})

	_, err := svc.Update(context.Background(), dto.UserDto{ID: 999, FullName: "X"})

	var notFound *apperrors.UserNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "User not found with id: 999", err.Error())
}

func TestUserService_Update_PasswordProvided(t *testing.T) {
	store := &fakeStore{
		byID: &models.User{
			ID: 1, FullName: "Old Name", Username: "oldUser",
			Email: "old.email@test.com", EncryptedPassword: "oldHash",
		},
		updateRows: 1,
	}
	hasher := &fakeHasher{}
	svc := NewUserService(store, hasher)

	out, err := svc.Update(context.Background(), dto.UserDto{
		ID:       1,
		FullName: "José Luan Fernandes da Silva",
		Username: "Luan Fernandes",
		Email:    "jose.luan@academico.ifpb.edu.br",
		Password: "newPassword123",
	})
	require.NoError(t, err)

	assert.Equal(t, "José Luan Fernandes da Silva", out.FullName)
	assert.Empty(t, out.Password)

	require.NotNil(t, store.lastPatch)
	require.NotNil(t, store.lastPatch.EncryptedPassword)
	assert.Equal(t, "hashed:newPassword123", *store.lastPatch.EncryptedPassword)
	assert.Equal(t, 1, hasher.calls)
}

func TestUserService_Update_BlankPasswordKeepsHash(t *testing.T) {
	store := &fakeStore{
		byID: &models.User{
			ID: 1, FullName: "Nome Original", Username: "usuarioOriginal",
			Email: "email.original@test.com", EncryptedPassword: "existingHash",
		},
		updateRows: 1,
	}
	hasher := &fakeHasher{}
	svc := NewUserService(store, hasher)

	out, err := svc.Update(context.Background(), dto.UserDto{
		ID:       1,
		FullName: "Nome Atualizado",
		Username: "usuarioAtualizado",
		Email:    "email.atualizado@test.com",
		Password: "   ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Nome Atualizado", out.FullName)
	assert.Equal(t, "usuarioAtualizado", out.Username)
	assert.Equal(t, "email.atualizado@test.com", out.Email)

	require.NotNil(t, store.lastPatch)
	assert.Nil(t, store.lastPatch.EncryptedPassword, "blank password means not supplied")
	assert.Zero(t, hasher.calls)
}

func TestUserService_Update_OmittedFieldsLeftAlone(t *testing.T) {
	store := &fakeStore{
		byID: &models.User{
			ID: 1, FullName: "Old", Username: "old",
			Email: "old@test.com", EncryptedPassword: "hash",
		},
		updateRows: 1,
	}
	svc := NewUserService(store, &fakeHasher{})

	out, err := svc.Update(context.Background(), dto.UserDto{ID: 1, FullName: "New"})
	require.NoError(t, err)

	// Untouched fields come back from the loaded record.
	assert.Equal(t, "New", out.FullName)
	assert.Equal(t, "old", out.Username)
	assert.Equal(t, "old@test.com", out.Email)

	require.NotNil(t, store.lastPatch)
	assert.NotNil(t, store.lastPatch.FullName)
	assert.Nil(t, store.lastPatch.Username)
	assert.Nil(t, store.lastPatch.Email)
	assert.Nil(t, store.lastPatch.EncryptedPassword)
}

func TestUserService_Update_RowVanished(t *testing.T) {
	store := &fakeStore{
		byID:       &models.User{ID: 1, FullName: "Old"},
		updateRows: 0,
	}
	svc := NewUserService(store, &fakeHasher{})

	_, err := svc.Update(context.Background(), dto.UserDto{ID: 1, FullName: "New"})

	var notFound *apperrors.UserNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUserService_Delete(t *testing.T) {
	store := &fakeStore{idExists: true}
	svc := NewUserService(store, &fakeHasher{})

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, 1, store.deleteCalls)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	store := &fakeStore{}
	svc := NewUserService(store, &fakeHasher{})

	err := svc.Delete(context.Background(), 999)

	var notFound *apperrors.UserNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "User not found with id: 999", err.Error())
	assert.Zero(t, store.deleteCalls)

	// The sentinel from the store is not what callers see.
	assert.False(t, errors.Is(err, apperrors.ErrNoSuchUser))
}

func TestUserService_Delete_RowVanished(t *testing.T) {
	store := &fakeStore{idExists: true, deleteErr: apperrors.ErrNoSuchUser}
	svc := NewUserService(store, &fakeHasher{})

	err := svc.Delete(context.Background(), 42)

	var notFound *apperrors.UserNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(42), notFound.ID)
	assert.Equal(t, 1, store.deleteCalls)
}

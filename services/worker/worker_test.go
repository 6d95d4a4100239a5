package worker

import (
	"context"
	"errors"
	"testing"

	"localconnect/database/repository"
	workerRepo "localconnect/database/repository/worker"
	"localconnect/models"
	"localconnect/services/user"
	"localconnect/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type mockRepo struct {
	mock.Mock
	workerRepo.WorkerRepository
}

func (m *mockRepo) CreateAccount(ctx context.Context, w *models.Worker) error {
	return m.Called(ctx, w).Error(0)
}

func (m *mockRepo) GetAccountByID(ctx context.Context, id string) (*models.Worker, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*models.Worker)
	return w, args.Error(1)
}

func (m *mockRepo) GetAccountByIdentifier(ctx context.Context, identifier string) (*models.Worker, error) {
	args := m.Called(ctx, identifier)
	w, _ := args.Get(0).(*models.Worker)
	return w, args.Error(1)
}

func (m *mockRepo) AddFCMToken(ctx context.Context, accountID, token string) error {
	return m.Called(ctx, accountID, token).Error(0)
}

func account(t *testing.T) *models.Worker {
	hash, err := user.HashPassword("plumbing-pro")
	require.NoError(t, err)
	return &models.Worker{ID: primitive.NewObjectID(), Username: "ravi", Email: "ravi@example.com", PasswordHash: hash}
}

func TestLoginIssuesWorkerToken(t *testing.T) {
	repo := &mockRepo{}
	svc := NewWorkerService(repo, nil, zap.NewNop())
	w := account(t)

	repo.On("GetAccountByIdentifier", mock.Anything, "ravi@example.com").Return(w, nil)
	repo.On("AddFCMToken", mock.Anything, w.ID.Hex(), "device-1").Return(nil)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ravi@example.com",
		Password: "plumbing-pro",
		FCMToken: "device-1",
	})
	require.NoError(t, err)

	claims, err := utils.ExtractClaims(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, utils.RoleWorker, claims.Role)
	assert.Equal(t, w.ID.Hex(), claims.Subject)
	repo.AssertExpectations(t)
}

func TestLoginSurvivesDeviceRegistrationFailure(t *testing.T) {
	repo := &mockRepo{}
	svc := NewWorkerService(repo, nil, zap.NewNop())
	w := account(t)

	repo.On("GetAccountByIdentifier", mock.Anything, "ravi").Return(w, nil)
	repo.On("AddFCMToken", mock.Anything, w.ID.Hex(), "device-1").Return(errors.New("timeout"))

	_, err := svc.Login(context.Background(), models.LoginRequest{Identifier: "ravi", Password: "plumbing-pro", FCMToken: "device-1"})
	assert.NoError(t, err)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	repo := &mockRepo{}
	svc := NewWorkerService(repo, nil, zap.NewNop())

	repo.On("GetAccountByIdentifier", mock.Anything, "ravi").Return(account(t), nil)
	_, err := svc.Login(context.Background(), models.LoginRequest{Identifier: "ravi", Password: "nope"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestSignupMapsTaken(t *testing.T) {
	repo := &mockRepo{}
	svc := NewWorkerService(repo, nil, zap.NewNop())

	repo.On("CreateAccount", mock.Anything, mock.Anything).Return(workerRepo.ErrTaken)
	_, err := svc.Signup(context.Background(), models.SignupRequest{Username: "ravi", Email: "ravi@example.com", Password: "plumbing-pro"})
	assert.ErrorIs(t, err, user.ErrAccountTaken)
}

func TestRegisterDevice(t *testing.T) {
	repo := &mockRepo{}
	svc := NewWorkerService(repo, nil, zap.NewNop())

	assert.ErrorIs(t, svc.RegisterDevice(context.Background(), "w1", " "), ErrMissingDeviceToken)

	repo.On("AddFCMToken", mock.Anything, "w1", "tok").Return(repository.ErrNotFound)
	assert.ErrorIs(t, svc.RegisterDevice(context.Background(), "w1", "tok"), user.ErrUserNotFound)
}

package http

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/internal/service"
	"github.com/zerovault/zerovault/internal/session"
	"github.com/zerovault/zerovault/models"
)

// Function-field mocks so each test wires exactly the calls it expects.

type mockAuthService struct {
	paramsFn   func(ctx context.Context, identifier string) (models.KDFParams, error)
	registerFn func(ctx context.Context, req models.RegisterRequest) (models.Account, error)
	verifyFn   func(ctx context.Context, req models.VerifyRequest) (models.VerifyResponse, error)
	rotateFn   func(ctx context.Context, accountID int64, req models.RotateRequest) error
}

func (m *mockAuthService) Params(ctx context.Context, identifier string) (models.KDFParams, error) {
	return m.paramsFn(ctx, identifier)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Verify(ctx context.Context, req models.VerifyRequest) (models.VerifyResponse, error) {
	return m.verifyFn(ctx, req)
}

func (m *mockAuthService) Rotate(ctx context.Context, accountID int64, req models.RotateRequest) error {
	return m.rotateFn(ctx, accountID, req)
}

type mockBlobService struct {
	upsertFn func(ctx context.Context, accountID int64, name string, env models.Envelope, version int64) (models.Blob, bool, error)
	getFn    func(ctx context.Context, accountID int64, name string) (models.Blob, error)
	listFn   func(ctx context.Context, accountID int64, limit, offset int64) (models.BlobPage, error)
	deleteFn func(ctx context.Context, accountID int64, name string) error
}

func (m *mockBlobService) UpsertBlob(ctx context.Context, accountID int64, name string, env models.Envelope, version int64) (models.Blob, bool, error) {
	return m.upsertFn(ctx, accountID, name, env, version)
}

func (m *mockBlobService) GetBlob(ctx context.Context, accountID int64, name string) (models.Blob, error) {
	return m.getFn(ctx, accountID, name)
}

func (m *mockBlobService) ListBlobs(ctx context.Context, accountID int64, limit, offset int64) (models.BlobPage, error) {
	return m.listFn(ctx, accountID, limit, offset)
}

func (m *mockBlobService) DeleteBlob(ctx context.Context, accountID int64, name string) error {
	return m.deleteFn(ctx, accountID, name)
}

type mockSessionManager struct {
	issueFn    func(ctx context.Context, accountID int64) (string, error)
	validateFn func(ctx context.Context, token string) (int64, error)
	revokeFn   func(ctx context.Context, token string) error
}

func (m *mockSessionManager) Issue(ctx context.Context, accountID int64) (string, error) {
	return m.issueFn(ctx, accountID)
}

func (m *mockSessionManager) Validate(ctx context.Context, token string) (int64, error) {
	return m.validateFn(ctx, token)
}

func (m *mockSessionManager) Revoke(ctx context.Context, token string) error {
	return m.revokeFn(ctx, token)
}

// staticSessions accepts exactly one token for one account.
func staticSessions(token string, accountID int64) session.Manager {
	return &mockSessionManager{
		validateFn: func(_ context.Context, got string) (int64, error) {
			if got == token {
				return accountID, nil
			}
			return 0, session.ErrInvalidSession
		},
	}
}

func newTestRouter(auth service.AuthService, blobs service.BlobService, sessions session.Manager) *chi.Mux {
	h := NewHandler(&service.Services{
		AuthService: auth,
		BlobService: blobs,
	}, sessions, logger.Nop())
	return h.Init()
}

func validTestEnvelope() models.Envelope {
	return models.Envelope{
		Nonce:      make([]byte, models.EnvelopeNonceSize),
		Ciphertext: []byte("ciphertext"),
		Tag:        make([]byte, models.EnvelopeTagSize),
	}
}

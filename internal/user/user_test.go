package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/smartexpense/internal"
	"github.com/frahmantamala/smartexpense/internal/auth"
	userDatamodel "github.com/frahmantamala/smartexpense/internal/core/datamodel/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

type mockRepository struct {
	users     map[int64]*userDatamodel.User
	deleted   []string
	getErr    error
	deleteErr error
}

func (m *mockRepository) GetByID(_ context.Context, userID int64) (*userDatamodel.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (m *mockRepository) DeleteByEmail(_ context.Context, email string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, email)
	return nil
}

var _ = Describe("User", func() {
	var (
		repo    *mockRepository
		service *Service
		created = time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	)

	BeforeEach(func() {
		repo = &mockRepository{users: map[int64]*userDatamodel.User{
			7: {ID: 7, Email: "me@example.com", Name: "Me", HashedPassword: "secret-hash", CreatedAt: created},
		}}
		service = NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Service.GetByID", func() {
		It("should return the profile without the hash", func() {
			u, err := service.GetByID(context.Background(), 7)

			Expect(err).NotTo(HaveOccurred())
			Expect(*u).To(Equal(User{ID: 7, Email: "me@example.com", Name: "Me", CreatedAt: created}))
		})

		It("should treat a vanished user as an invalid token", func() {
			_, err := service.GetByID(context.Background(), 99)

			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should wrap store failures", func() {
			repo.getErr = errors.New("db down")

			_, err := service.GetByID(context.Background(), 7)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("Service.DeleteByEmail", func() {
		It("should delegate to the repository", func() {
			Expect(service.DeleteByEmail(context.Background(), "me@example.com")).To(Succeed())
			Expect(repo.deleted).To(ConsistOf("me@example.com"))
		})

		It("should pass ErrNotFound through", func() {
			repo.deleteErr = ErrNotFound
			Expect(service.DeleteByEmail(context.Background(), "x@example.com")).To(MatchError(ErrNotFound))
		})
	})

	Describe("Handler.GetCurrentUser", func() {
		It("should render the authenticated user's profile", func() {
			handler := NewHandler(service)
			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), &auth.User{ID: 7, Email: "me@example.com"}))
			rec := httptest.NewRecorder()

			handler.GetCurrentUser(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(HaveKeyWithValue("email", "me@example.com"))
			Expect(body).To(HaveKeyWithValue("name", "Me"))
			Expect(body).NotTo(HaveKey("hashed_password"))
		})

		It("should refuse a request without a user", func() {
			handler := NewHandler(service)
			rec := httptest.NewRecorder()

			handler.GetCurrentUser(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})
	})
})

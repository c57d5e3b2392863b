package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("Handler", func() {
	var (
		handler  *Handler
		tokens   *JWTTokenIssuer
		mockRepo *mockUserRepository
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokens = NewJWTTokenIssuer("handler-test-secret-long-enough-for-hs256", time.Hour)
		svc, err := NewService(mockRepo, tokens, bcrypt.MinCost, discardLogger())
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		handler = NewHandler(svc)
	})

	decodeDetail := func(rec *httptest.ResponseRecorder) string {
		var body struct {
			Detail string `json:"detail"`
		}
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
		return body.Detail
	}

	ginkgo.Describe("Register", func() {
		ginkgo.It("should answer 200 with token and user", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/register",
				strings.NewReader(`{"email":"fresh@example.com","name":"Fresh","password":"pw"}`))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var resp AuthResponse
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(gomega.Succeed())
			gomega.Expect(resp.TokenType).To(gomega.Equal("bearer"))
			gomega.Expect(resp.User.Email).To(gomega.Equal("fresh@example.com"))
			gomega.Expect(rec.Body.String()).ToNot(gomega.ContainSubstring("hashed_password"))
		})

		ginkgo.It("should answer 400 for a taken email", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/register",
				strings.NewReader(`{"email":"user@example.com","name":"Again","password":"pw"}`))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
			gomega.Expect(decodeDetail(rec)).To(gomega.Equal("Email already registered"))
		})

		ginkgo.It("should answer 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":`))
			rec := httptest.NewRecorder()

			handler.Register(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("should answer 401 Invalid credentials for a wrong password", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"email":"user@example.com","password":"wrong"}`))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeDetail(rec)).To(gomega.Equal("Invalid credentials"))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var (
			reached *User
			guarded http.Handler
		)

		ginkgo.BeforeEach(func() {
			reached = nil
			guarded = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))
		})

		serve := func(authorization string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
			if authorization != "" {
				req.Header.Set("Authorization", authorization)
			}
			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, req)
			return rec
		}

		ginkgo.It("should answer 403 Not authenticated without a header", func() {
			rec := serve("")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(decodeDetail(rec)).To(gomega.Equal("Not authenticated"))
			gomega.Expect(reached).To(gomega.BeNil())
		})

		ginkgo.It("should answer 403 for a non bearer scheme", func() {
			rec := serve("Basic dXNlcjpwYXNz")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should answer 401 for an invalid token", func() {
			rec := serve("Bearer not-a-jwt")

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeDetail(rec)).To(gomega.Equal("Could not validate credentials"))
		})

		ginkgo.It("should answer the same 401 for a token of an unknown user", func() {
			token, _ := tokens.GenerateAccessToken("ghost@example.com")

			rec := serve("Bearer " + token)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeDetail(rec)).To(gomega.Equal("Could not validate credentials"))
		})

		ginkgo.It("should put the user in the context for a valid token", func() {
			token, _ := tokens.GenerateAccessToken("user@example.com")

			rec := serve("Bearer " + token)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(reached).ToNot(gomega.BeNil())
			gomega.Expect(reached.ID).To(gomega.Equal(int64(1)))
		})
	})
})

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("JWTTokenIssuer", func() {
	const secret = "another-test-secret-that-is-long-enough"

	var issuer *JWTTokenIssuer

	ginkgo.BeforeEach(func() {
		issuer = NewJWTTokenIssuer(secret, 30*24*time.Hour)
	})

	ginkgo.It("should round trip the subject email", func() {
		token, err := issuer.GenerateAccessToken("user@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		email, ok := issuer.ValidateToken(token)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(email).To(gomega.Equal("user@example.com"))
	})

	ginkgo.It("should set exp to issue time plus ttl", func() {
		issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		issuer.now = func() time.Time { return issuedAt }

		token, err := issuer.GenerateAccessToken("user@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		claims := &jwt.RegisteredClaims{}
		_, _, err = jwt.NewParser().ParseUnverified(token, claims)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(claims.Subject).To(gomega.Equal("user@example.com"))
		gomega.Expect(claims.ExpiresAt.Time.Equal(issuedAt.Add(30 * 24 * time.Hour))).To(gomega.BeTrue())
	})

	ginkgo.It("should reject an expired token", func() {
		issuedAt := time.Now().Add(-31 * 24 * time.Hour)
		issuer.now = func() time.Time { return issuedAt }
		token, err := issuer.GenerateAccessToken("user@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		issuer.now = time.Now
		_, ok := issuer.ValidateToken(token)
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should reject a token signed with another secret", func() {
		other := NewJWTTokenIssuer("a-completely-different-secret-value!!", time.Hour)
		token, err := other.GenerateAccessToken("user@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, ok := issuer.ValidateToken(token)
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should reject a token without exp", func() {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "user@example.com",
		}).SignedString([]byte(secret))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, ok := issuer.ValidateToken(token)
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should reject another HMAC algorithm", func() {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
			Subject:   "user@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte(secret))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, ok := issuer.ValidateToken(token)
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should reject an empty subject", func() {
		token, err := issuer.GenerateAccessToken("")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, ok := issuer.ValidateToken(token)
		gomega.Expect(ok).To(gomega.BeFalse())
	})
})

var _ = ginkgo.Describe("Password hashing", func() {
	ginkgo.It("should verify the original password only", func() {
		hash, err := HashPassword("hunter2", 4)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		gomega.Expect(hash).ToNot(gomega.Equal("hunter2"))
		gomega.Expect(VerifyPassword(hash, "hunter2")).To(gomega.BeTrue())
		gomega.Expect(VerifyPassword(hash, "hunter3")).To(gomega.BeFalse())
	})

	ginkgo.It("should salt every hash", func() {
		first, _ := HashPassword("same", 4)
		second, _ := HashPassword("same", 4)
		gomega.Expect(first).ToNot(gomega.Equal(second))
	})

	ginkgo.It("should treat a malformed hash as a mismatch", func() {
		gomega.Expect(VerifyPassword("not-a-bcrypt-hash", "anything")).To(gomega.BeFalse())
	})
})

package handlers

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lokalhub/lokalhub/libs/auth"
)

func testHandler(cfg Config) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(nil, nil, nil, nil, logger, nil, nil, cfg)
}

func managerClaims(orgID string) auth.Claims {
	return auth.Claims{
		Sub:   "member-1",
		OrgID: orgID,
		Role:  "manager",
		Iat:   time.Now().Unix(),
		Exp:   time.Now().Add(1 * time.Hour).Unix(),
	}
}

func bearerRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/rules", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestRequireManager_HS256(t *testing.T) {
	h := testHandler(Config{JWTSecret: "s"})

	token, err := auth.SignHS256(managerClaims("org-1"), "s")
	if err != nil {
		t.Fatalf("SignHS256 failed: %v", err)
	}
	w := httptest.NewRecorder()
	orgID, ok := h.requireManager(w, bearerRequest(token))
	if !ok || orgID != "org-1" {
		t.Fatalf("requireManager = (%q, %v), want (org-1, true)", orgID, ok)
	}

	w = httptest.NewRecorder()
	if _, ok := h.requireManager(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/rules", nil)); ok {
		t.Fatal("missing bearer token must be rejected")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireManager_RejectsNonManager(t *testing.T) {
	h := testHandler(Config{JWTSecret: "s"})

	member := managerClaims("org-1")
	member.Role = "member"
	token, err := auth.SignHS256(member, "s")
	if err != nil {
		t.Fatalf("SignHS256 failed: %v", err)
	}
	w := httptest.NewRecorder()
	if _, ok := h.requireManager(w, bearerRequest(token)); ok {
		t.Fatal("member role must not pass the manager gate")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireManager_RS256ViaJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		doc := map[string]any{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": "kid-1",
				"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
			}},
		}
		_ = json.NewEncoder(w).Encode(doc)
	}))
	defer srv.Close()

	h := testHandler(Config{
		JWTSecret: "s",
		JWKS:      auth.NewJWKSClient(srv.URL, time.Minute),
	})

	token, err := signRS256Test(managerClaims("org-2"), key, "kid-1")
	if err != nil {
		t.Fatalf("rs256 sign failed: %v", err)
	}
	w := httptest.NewRecorder()
	orgID, ok := h.requireManager(w, bearerRequest(token))
	if !ok || orgID != "org-2" {
		t.Fatalf("requireManager = (%q, %v), want (org-2, true)", orgID, ok)
	}

	// With a JWKS configured, HS256 tokens still verify against the secret.
	hsToken, err := auth.SignHS256(managerClaims("org-3"), "s")
	if err != nil {
		t.Fatalf("SignHS256 failed: %v", err)
	}
	w = httptest.NewRecorder()
	orgID, ok = h.requireManager(w, bearerRequest(hsToken))
	if !ok || orgID != "org-3" {
		t.Fatalf("hs256 fallback = (%q, %v), want (org-3, true)", orgID, ok)
	}

	// Unknown key ids are rejected, not silently downgraded to HS256.
	badToken, err := signRS256Test(managerClaims("org-2"), key, "kid-unknown")
	if err != nil {
		t.Fatalf("rs256 sign failed: %v", err)
	}
	w = httptest.NewRecorder()
	if _, ok := h.requireManager(w, bearerRequest(badToken)); ok {
		t.Fatal("token with unknown kid must be rejected")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func signRS256Test(claims auth.Claims, key *rsa.PrivateKey, kid string) (string, error) {
	headerJSON, err := json.Marshal(map[string]string{"alg": "RS256", "typ": "JWT", "kid": kid})
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	unsigned := base64.RawURLEncoding.EncodeToString(headerJSON) + "." + base64.RawURLEncoding.EncodeToString(payloadJSON)
	hash := sha256.Sum256([]byte(unsigned))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, hash[:])
	if err != nil {
		return "", err
	}
	return unsigned + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

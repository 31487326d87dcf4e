package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func jwksDocument(kid string, pub *rsa.PublicKey) []byte {
	doc := map[string]any{
		"keys": []map[string]string{
			{
				"kty": "RSA",
				"kid": kid,
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			},
		},
	}
	body, _ := json.Marshal(doc)
	return body
}

func TestJWKSClient_Get(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(jwksDocument("kid-1", &key.PublicKey))
	}))
	defer srv.Close()

	client := NewJWKSClient(srv.URL, time.Minute)

	pub, err := client.Get("kid-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if pub.N.Cmp(key.PublicKey.N) != 0 || pub.E != key.PublicKey.E {
		t.Fatal("fetched key does not match the served key")
	}

	// The fetched key must verify a token signed with the private half.
	claims := Claims{
		Sub:   "member-3",
		OrgID: "org-3",
		Role:  "manager",
		Iat:   time.Now().Unix(),
		Exp:   time.Now().Add(1 * time.Hour).Unix(),
	}
	token, err := signRS256(claims, key, "kid-1")
	if err != nil {
		t.Fatalf("rs256 sign failed: %v", err)
	}
	parsed, err := VerifyRS256(token, pub)
	if err != nil {
		t.Fatalf("VerifyRS256 with jwks key failed: %v", err)
	}
	if parsed.OrgID != claims.OrgID {
		t.Fatalf("claims mismatch: got %+v", parsed)
	}

	if _, err := client.Get("kid-unknown"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound for unknown kid, got %v", err)
	}
}

func TestJWKSClient_ServesStaleKeyWhenIssuerDown(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(jwksDocument("kid-1", &key.PublicKey))
	}))

	// Zero TTL so the cache is already expired on the second Get.
	client := NewJWKSClient(srv.URL, time.Nanosecond)
	if _, err := client.Get("kid-1"); err != nil {
		t.Fatalf("initial Get failed: %v", err)
	}

	srv.Close()
	pub, err := client.Get("kid-1")
	if err != nil {
		t.Fatalf("expected stale key to be served while the issuer is down, got %v", err)
	}
	if pub.N.Cmp(key.PublicKey.N) != 0 {
		t.Fatal("stale key does not match the originally served key")
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/jlfs-dev/picshare/internal/config"
)

// TestAPI_SignupSigninList is an integration test: it builds the full router
// with a sqlmock-backed DB, signs up, signs in to get a JWT, then calls
// GET /users with the token.
func TestAPI_SignupSigninList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Signup: uniqueness prechecks then insert
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE email`).
		WithArgs("integration@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE username`).
		WithArgs("integration").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Integration Test", "integration", "integration@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// Signin: GetByUsername("integration")
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id, full_name, username, email, encrypted_password`).
		WithArgs("integration").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "username", "email", "encrypted_password"}).
			AddRow(1, "Integration Test", "integration", "integration@example.com", string(hash)))

	// GET /users
	mock.ExpectQuery(`SELECT id, full_name, username, email, encrypted_password FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "username", "email", "encrypted_password"}).
			AddRow(1, "Integration Test", "integration", "integration@example.com", string(hash)))

	cfg := config.Config{
		JWTSecret:      "test-secret-for-integration",
		JWTExpireHours: 1,
		BcryptCost:     bcrypt.MinCost,
	}
	srv := httptest.NewServer(newRouter(db, cfg))
	defer srv.Close()

	// 1) Signup
	signupBody, _ := json.Marshal(map[string]string{
		"fullName": "Integration Test",
		"username": "integration",
		"email":    "integration@example.com",
		"password": "password123",
	})
	signupResp, err := http.Post(srv.URL+"/auth/signup", "application/json", bytes.NewReader(signupBody))
	if err != nil {
		t.Fatalf("signup request: %v", err)
	}
	defer signupResp.Body.Close()
	if signupResp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status: got %d, want 201", signupResp.StatusCode)
	}

	// 2) Signin
	signinBody, _ := json.Marshal(map[string]string{"username": "integration", "password": "password123"})
	signinResp, err := http.Post(srv.URL+"/auth/signin", "application/json", bytes.NewReader(signinBody))
	if err != nil {
		t.Fatalf("signin request: %v", err)
	}
	defer signinResp.Body.Close()
	if signinResp.StatusCode != http.StatusOK {
		t.Fatalf("signin status: got %d, want 200", signinResp.StatusCode)
	}
	var signin struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(signinResp.Body).Decode(&signin); err != nil {
		t.Fatalf("decode signin response: %v", err)
	}
	if signin.Token == "" || signin.Username != "integration" {
		t.Fatalf("unexpected signin response: %+v", signin)
	}

	// 3) List users with the token
	req, _ := http.NewRequest("GET", srv.URL+"/users", nil)
	req.Header.Set("Authorization", "Bearer "+signin.Token)
	listResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("list request: %v", err)
	}
	defer listResp.Body.Close()
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("list status: got %d, want 200", listResp.StatusCode)
	}
	var users []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&users); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(users) != 1 || users[0]["username"] != "integration" {
		t.Errorf("unexpected users: %v", users)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPI_UsersRequireToken(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cfg := config.Config{
		JWTSecret:      "test-secret-for-integration",
		JWTExpireHours: 1,
		BcryptCost:     bcrypt.MinCost,
	}
	srv := httptest.NewServer(newRouter(db, cfg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/users")
	if err != nil {
		t.Fatalf("list request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status without token: got %d, want 401", resp.StatusCode)
	}
}

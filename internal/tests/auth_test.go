// internal/tests/auth_test.go
package tests

import (
	"net/http"
)

func (s *APITestSuite) TestLoginRejectsWrongPassword() {
	w := s.request(http.MethodPost, "/v1/auth/login", "", map[string]string{"password": "guess"})

	s.Equal(http.StatusUnauthorized, w.Code)
	env := s.decode(w, nil)
	s.False(env.Success)
	s.Equal("Incorrect password", env.Error.Message)
}

func (s *APITestSuite) TestLoginRequiresPassword() {
	w := s.request(http.MethodPost, "/v1/auth/login", "", map[string]string{})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", s.decode(w, nil).Error.Code)
}

func (s *APITestSuite) TestLoginIssuesSessionToken() {
	w := s.request(http.MethodPost, "/v1/auth/login", "", map[string]string{"password": adminPassword})
	s.Require().Equal(http.StatusOK, w.Code)

	var data struct {
		SessionID string `json:"session_id"`
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		ExpiresIn int    `json:"expires_in"`
	}
	s.decode(w, &data)
	s.NotEmpty(data.SessionID)
	s.NotEmpty(data.Token)
	s.Equal("Bearer", data.TokenType)
	s.Equal(3600, data.ExpiresIn)
}

func (s *APITestSuite) TestProtectedRoutesNeedToken() {
	w := s.request(http.MethodGet, "/v1/products", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodGet, "/v1/products", "not-a-jwt", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid authentication token", s.decode(w, nil).Error.Message)
}

func (s *APITestSuite) TestMessagesFollowAcceptLanguage() {
	w := s.requestWithHeaders(http.MethodGet, "/v1/products", map[string]string{"Accept-Language": "bn-BD,bn;q=0.9"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("লগইন প্রয়োজন", s.decode(w, nil).Error.Message)
}

func (s *APITestSuite) TestLogoutDiscardsFormSession() {
	s.Require().Equal(http.StatusCreated, s.authed(http.MethodPost, "/v1/products/form", nil).Code)

	w := s.authed(http.MethodPost, "/v1/auth/logout", nil)
	s.Equal(http.StatusOK, w.Code)

	// The token is still valid, but the draft is gone.
	var form formView
	s.decode(s.authed(http.MethodGet, "/v1/products/form", nil), &form)
	s.Equal("browsing", form.Mode.Kind)
}

func (s *APITestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// PasswordSession adalah SessionProvider berbasis login email/password ke
// endpoint auth dashboard, dengan rotasi refresh token. Endpoint login dan
// refresh dipanggil tanpa bearer dan tanpa retry.
type PasswordSession struct {
	baseURL  string
	email    string
	password string
	http     *http.Client

	mu           sync.RWMutex
	token        string
	refreshToken string
}

func NewPasswordSession(baseURL, email, password string) *PasswordSession {
	return &PasswordSession{
		baseURL:  baseURL,
		email:    email,
		password: password,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *PasswordSession) GetCredential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *PasswordSession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.refreshToken = ""
}

// Login menukar email/password dengan access + refresh token.
func (s *PasswordSession) Login(ctx context.Context) error {
	payload := map[string]string{"email": s.email, "password": s.password}
	data, err := s.post(ctx, "/api/auth/login", payload)
	if err != nil {
		return err
	}
	return s.storeTokens(data)
}

// Refresh menukar refresh token dengan pasangan token baru. Token lama
// hangus di server (rotasi), jadi hasilnya harus selalu disimpan.
func (s *PasswordSession) Refresh(ctx context.Context) error {
	s.mu.RLock()
	refresh := s.refreshToken
	s.mu.RUnlock()

	if refresh == "" {
		return errors.New("no refresh token held")
	}

	payload := map[string]string{"refresh_token": refresh}
	data, err := s.post(ctx, "/api/auth/refresh", payload)
	if err != nil {
		return err
	}
	return s.storeTokens(data)
}

func (s *PasswordSession) storeTokens(data []byte) error {
	var envelope struct {
		Data struct {
			Token        string `json:"token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("unable to parse auth response: %w", err)
	}
	if envelope.Data.Token == "" {
		return errors.New("auth response missing token")
	}

	s.mu.Lock()
	s.token = envelope.Data.Token
	if envelope.Data.RefreshToken != "" {
		s.refreshToken = envelope.Data.RefreshToken
	}
	s.mu.Unlock()
	return nil
}

func (s *PasswordSession) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data := new(bytes.Buffer)
	if _, err := data.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiErrorFrom(resp.StatusCode, data.Bytes())
	}
	return data.Bytes(), nil
}

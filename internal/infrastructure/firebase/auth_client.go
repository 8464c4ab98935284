package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"ripple/internal/domain/entity"
	"ripple/pkg/errors"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type FirebaseAuthClient struct {
	client     *auth.Client
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client:  client,
		apiKey:  apiKey,
		baseURL: identityToolkitURL,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) DeleteUser(ctx context.Context, uid string) error {
	return f.client.DeleteUser(ctx, uid)
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// RevokeRefreshTokens signs the user out of every session.
func (f *FirebaseAuthClient) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}

// SignInWithPassword exchanges an email and password for an ID token through
// the Identity Toolkit REST API. The Admin SDK has no password sign-in.
func (f *FirebaseAuthClient) SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	return signInWithPassword(ctx, f.httpClient, f.baseURL, f.apiKey, email, password)
}

type identityError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func signInWithPassword(ctx context.Context, httpClient *http.Client, baseURL, apiKey, email, password string) (*entity.AuthSession, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("firebase api key is not configured")
	}

	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", baseURL, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign in request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ie identityError
		if err := json.NewDecoder(resp.Body).Decode(&ie); err != nil {
			return nil, fmt.Errorf("sign in failed with status %d", resp.StatusCode)
		}
		switch ie.Error.Message {
		case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "USER_DISABLED":
			return nil, errors.Unauthorized("Invalid email or password", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("sign in failed: %s", ie.Error.Message)
	}

	var result signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode sign in response: %w", err)
	}
	return &entity.AuthSession{
		UID:          result.LocalID,
		Email:        result.Email,
		IDToken:      result.IDToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

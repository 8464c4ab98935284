package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ripple/internal/adapter/api"
	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/internal/infrastructure/cache"
	"ripple/internal/usecase"
	"ripple/pkg/errors"
	"ripple/pkg/response"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// stubs embed the repository interface; calling anything not overridden
// panics, which keeps each test honest about what it touches.

type stubUsers struct {
	repository.UserRepository
	users map[string]*entity.User
}

func (s stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("User", nil)
}

type stubVendors struct {
	repository.VendorRepository
}

func (stubVendors) GetByID(context.Context, string) (*entity.Vendor, error) {
	return nil, errors.NotFound("Vendor", nil)
}

type stubListings struct {
	repository.ListingRepository
	listings []*entity.Listing
}

func (s stubListings) ListAll(_ context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, l := range s.listings {
		if filter.InStock && l.Quantity <= 0 {
			continue
		}
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type stubAuth struct {
	usecase.FirebaseAuthClient
	sessions map[string]string // email -> uid
	revoked  []string
}

func (s *stubAuth) SignInWithPassword(_ context.Context, email, _ string) (*entity.AuthSession, error) {
	uid, ok := s.sessions[email]
	if !ok {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}
	return &entity.AuthSession{UID: uid, Email: email, IDToken: "token-" + uid}, nil
}

func (s *stubAuth) RevokeRefreshTokens(_ context.Context, uid string) error {
	s.revoked = append(s.revoked, uid)
	return nil
}

type stubAnalyzer struct {
	analysis *entity.ReliefAnalysis
	err      error
}

func (s stubAnalyzer) Analyze(context.Context, entity.RecommendationRequest) (*entity.ReliefAnalysis, error) {
	return s.analysis, s.err
}

type stubImageStore struct {
	folder string
	body   []byte
}

func (s *stubImageStore) UploadImage(_ context.Context, file io.Reader, contentType, folder string) (string, error) {
	s.folder = folder
	s.body, _ = io.ReadAll(file)
	return "https://storage.googleapis.com/bucket/" + folder + "/img.png", nil
}

func (s *stubImageStore) DeleteFile(context.Context, string) error { return nil }

func TestSignInRoleMismatchReturnsForbidden(t *testing.T) {
	auth := &stubAuth{sessions: map[string]string{"dana@example.com": "u1"}}
	users := stubUsers{users: map[string]*entity.User{"u1": {ID: "u1", Type: entity.RoleDonor}}}
	h := NewAuthHandler(usecase.NewAuthUseCase(users, stubVendors{}, nil, auth))

	e := newEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/auth/signin",
		`{"email":"dana@example.com","password":"secret1","expectedRole":"vendor"}`)

	require.NoError(t, h.SignIn(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, errors.CodeRoleMismatch, body.Error.Code)
	assert.Nil(t, body.Data)
	assert.Equal(t, []string{"u1"}, auth.revoked)
}

func TestSignInReturnsSession(t *testing.T) {
	auth := &stubAuth{sessions: map[string]string{"dana@example.com": "u1"}}
	users := stubUsers{users: map[string]*entity.User{"u1": {ID: "u1", Name: "Dana", Type: entity.RoleDonor}}}
	h := NewAuthHandler(usecase.NewAuthUseCase(users, stubVendors{}, nil, auth))

	e := newEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/auth/signin",
		`{"email":"dana@example.com","password":"secret1","expectedRole":"donor"}`)

	require.NoError(t, h.SignIn(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id_token":"token-u1"`)
	assert.Empty(t, auth.revoked)
}

func TestSignUpValidatesRole(t *testing.T) {
	h := NewAuthHandler(usecase.NewAuthUseCase(nil, nil, nil, nil))

	e := newEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api/auth/signup",
		`{"email":"a@b.co","password":"secret1","name":"A","type":"admin"}`)

	require.NoError(t, h.SignUp(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Message, "type")
}

func TestMeRequiresUID(t *testing.T) {
	h := NewAuthHandler(usecase.NewAuthUseCase(nil, nil, nil, nil))

	c, rec := newJSONContext(newEcho(), http.MethodGet, "/api/me", "")

	require.NoError(t, h.Me(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddToCartRejectsZeroQuantity(t *testing.T) {
	h := NewCartHandler(usecase.NewCartUseCase(nil, nil, nil))

	c, rec := newJSONContext(newEcho(), http.MethodPost, "/api/donor/cart",
		`{"vendor_id":"v1","product_id":"p1","charity_id":"c1","quantity":0}`)
	c.Set("uid", "donor-1")

	require.NoError(t, h.AddItem(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec).Error.Message, "quantity")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	h := NewOrderHandler(usecase.NewOrderUseCase(nil, nil, nil, nil, nil))

	c, rec := newJSONContext(newEcho(), http.MethodPatch, "/api/vendor/orders/o1/status", `{"status":"Lost"}`)
	c.Set("uid", "vendor-1")
	c.SetParamNames("id")
	c.SetParamValues("o1")

	require.NoError(t, h.UpdateStatus(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWithdrawRequiresPositiveAmount(t *testing.T) {
	h := NewWalletHandler(usecase.NewWalletUseCase(nil))

	c, rec := newJSONContext(newEcho(), http.MethodPost, "/api/vendor/wallet/withdraw", `{"amount":-5}`)
	c.Set("uid", "vendor-1")

	require.NoError(t, h.Withdraw(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBrowseListingsFiltersAndPages(t *testing.T) {
	listings := stubListings{listings: []*entity.Listing{
		{ID: "1", Name: "Wool Blanket", Category: "Bedding", Quantity: 3},
		{ID: "2", Name: "Fleece Blanket", Category: "Bedding", Quantity: 0},
		{ID: "3", Name: "Cotton Blanket", Category: "Bedding", Quantity: 1},
		{ID: "4", Name: "Water Jug", Category: "Kitchen", Quantity: 9},
	}}
	h := NewListingHandler(usecase.NewListingUseCase(listings, stubVendors{}, nil))

	c, rec := newJSONContext(newEcho(), http.MethodGet, "/api/listings?q=blanket&category=Bedding&page=1&limit=1", "")

	require.NoError(t, h.BrowseListings(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data struct {
			Items      []entity.Listing `json:"items"`
			Total      int64            `json:"total"`
			TotalPages int              `json:"totalPages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Data.Total)
	assert.Equal(t, 2, body.Data.TotalPages)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "1", body.Data.Items[0].ID)
}

func TestRecommendKeepsLegacyShape(t *testing.T) {
	analysis := &entity.ReliefAnalysis{
		Summary:          "Flooding",
		RecommendedItems: []entity.RecommendedItem{{Name: "Bottled Water", Quantity: 100}},
	}
	h := NewRecommendationHandler(usecase.NewRecommendationUseCase(stubAnalyzer{analysis: analysis}, cache.Noop{}))

	c, rec := newJSONContext(newEcho(), http.MethodPost, "/api/ai-recommendation", `{"description":"River flooded the town"}`)

	require.NoError(t, h.Recommend(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success  bool                  `json:"success"`
		Analysis entity.ReliefAnalysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Bottled Water", body.Analysis.RecommendedItems[0].Name)
}

func TestRecommendRequiresDescription(t *testing.T) {
	h := NewRecommendationHandler(usecase.NewRecommendationUseCase(stubAnalyzer{}, cache.Noop{}))

	c, rec := newJSONContext(newEcho(), http.MethodPost, "/api/ai-recommendation", `{"headline":"Flood"}`)

	require.NoError(t, h.Recommend(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartImage(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="photo.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestUploadImageStoresUnderRoleFolder(t *testing.T) {
	store := &stubImageStore{}
	h := NewUploadHandler(usecase.NewUploadUseCase(store))

	body, contentType := multipartImage(t, "image/png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/vendor/uploads", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)
	c.Set("uid", "vendor-1")
	c.Set("user", &entity.User{ID: "vendor-1", Type: entity.RoleVendor})

	require.NoError(t, h.UploadImage(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "public/vendor/vendor-1", store.folder)
	assert.Equal(t, []byte("png-bytes"), store.body)
	assert.Contains(t, rec.Body.String(), "public/vendor/vendor-1")
}

func TestUploadImageRejectsNonImages(t *testing.T) {
	store := &stubImageStore{}
	h := NewUploadHandler(usecase.NewUploadUseCase(store))

	body, contentType := multipartImage(t, "application/pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/api/charity/uploads", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(req, rec)
	c.Set("uid", "charity-1")
	c.Set("user", &entity.User{ID: "charity-1", Type: entity.RoleCharity})

	require.NoError(t, h.UploadImage(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.folder)
}

func TestParseDeadline(t *testing.T) {
	d, err := parseDeadline("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDeadline("2027-03-01")
	require.NoError(t, err)
	assert.True(t, d.Equal(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)))

	d, err = parseDeadline("2027-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = parseDeadline("next week")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestWebSocketRequiresToken(t *testing.T) {
	h := NewWebSocketHandler(nil, nil, nil)

	c, rec := newJSONContext(newEcho(), http.MethodGet, "/ws", "")

	require.NoError(t, h.HandleWebSocket(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	h := NewHealthHandler("test")

	c, rec := newJSONContext(newEcho(), http.MethodGet, "/health", "")
	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	c, rec = newJSONContext(newEcho(), http.MethodGet, "/", "")
	require.NoError(t, h.Banner(c))
	assert.Contains(t, rec.Body.String(), "/api/ai-recommendation")
}

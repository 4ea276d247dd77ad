package restaurant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cardapio/internal/auth"
	"cardapio/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --------------------------------------------------
// Fake uploader
// --------------------------------------------------

type fakeUploader struct {
	key         string
	contentType string
	body        string
	err         error
}

func (f *fakeUploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.key = key
	f.contentType = contentType
	f.body = string(data)
	return "https://cdn.example.com/" + key, nil
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	roles := auth.NewInMemoryUserRepository()
	service := NewService(NewInMemoryRepository(roles), nil, nil)
	ctx := context.Background()

	res, created, err := service.Save(ctx, "owner-1", SaveInput{Name: "Cantina", Email: "oi@cantina.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, res.ID)
	require.NotNil(t, res.Email)
	assert.Nil(t, res.Address)

	isOwner, err := roles.HasRole(ctx, "owner-1", auth.RoleRestaurantOwner)
	require.NoError(t, err)
	assert.True(t, isOwner, "creating a restaurant grants the owner role")

	updated, created, err := service.Save(ctx, "owner-1", SaveInput{Name: "Cantina Nova", Address: "Rua A, 1"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, res.ID, updated.ID)

	mine, err := service.GetMine(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Cantina Nova", mine.Name)
	require.NotNil(t, mine.Address)
	assert.Equal(t, "Rua A, 1", *mine.Address)
	assert.Nil(t, mine.Email)
}

// lateRepo reports the owner's restaurant as missing for the first lookups,
// as when another request is creating it concurrently.
type lateRepo struct {
	*InMemoryRepository
	misses int
}

func (r *lateRepo) GetByOwner(ctx context.Context, ownerID string) (*Restaurant, error) {
	if r.misses > 0 {
		r.misses--
		return nil, ErrNotFound
	}
	return r.InMemoryRepository.GetByOwner(ctx, ownerID)
}

func TestInMemoryCreateRejectsSecondRestaurant(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Restaurant{OwnerID: "owner-1", Name: "Cantina"}))
	err := repo.Create(ctx, &Restaurant{OwnerID: "owner-1", Name: "Outra"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSaveRacingCreateFallsBackToUpdate(t *testing.T) {
	repo := &lateRepo{InMemoryRepository: NewInMemoryRepository(nil)}
	service := NewService(repo, nil, nil)
	ctx := context.Background()

	first, created, err := service.Save(ctx, "owner-1", SaveInput{Name: "Cantina"})
	require.NoError(t, err)
	require.True(t, created)

	repo.misses = 1
	second, created, err := service.Save(ctx, "owner-1", SaveInput{Name: "Cantina da Praça"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	mine, err := service.GetMine(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Cantina da Praça", mine.Name)
}

func TestSaveValidation(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil), nil, nil)
	ctx := context.Background()

	_, _, err := service.Save(ctx, "owner-1", SaveInput{Name: " C "})
	assert.EqualError(t, err, "Nome deve ter pelo menos 2 caracteres")

	_, _, err = service.Save(ctx, "owner-1", SaveInput{Name: "Cantina", Email: "not-an-email"})
	assert.EqualError(t, err, "Email inválido")

	_, err = service.GetMine(ctx, "owner-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadLogo(t *testing.T) {
	uploader := &fakeUploader{}
	service := NewService(NewInMemoryRepository(nil), uploader, nil)
	ctx := context.Background()

	res, _, err := service.Save(ctx, "owner-1", SaveInput{Name: "Cantina"})
	require.NoError(t, err)

	url, err := service.UploadLogo(ctx, "owner-1", "Logo.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uploader.key, "restaurants/"+res.ID+"/logo-"))
	assert.True(t, strings.HasSuffix(uploader.key, ".png"))
	assert.Equal(t, "image/png", uploader.contentType)
	assert.Equal(t, "png-bytes", uploader.body)

	mine, err := service.GetMine(ctx, "owner-1")
	require.NoError(t, err)
	require.NotNil(t, mine.LogoURL)
	assert.Equal(t, url, *mine.LogoURL)
}

func TestUploadLogoErrors(t *testing.T) {
	ctx := context.Background()

	noStorage := NewService(NewInMemoryRepository(nil), nil, nil)
	_, err := noStorage.UploadLogo(ctx, "owner-1", "logo.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, storage.ErrNotConfigured)

	service := NewService(NewInMemoryRepository(nil), &fakeUploader{}, nil)
	_, err = service.UploadLogo(ctx, "owner-1", "logo.gif", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedLogo)

	_, err = service.UploadLogo(ctx, "owner-1", "logo.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotFound)

	failing := NewService(NewInMemoryRepository(nil), &fakeUploader{err: errors.New("boom")}, nil)
	_, _, err = failing.Save(ctx, "owner-1", SaveInput{Name: "Cantina"})
	require.NoError(t, err)
	_, err = failing.UploadLogo(ctx, "owner-1", "logo.webp", strings.NewReader("x"))
	assert.EqualError(t, err, "boom")
}

// --------------------------------------------------
// Handlers
// --------------------------------------------------

func setupRouter(service *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(service, zap.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("userID", "owner-1"); c.Next() })
	r.GET("/restaurants/me", h.GetMine)
	r.PUT("/restaurants/me", h.Save)
	r.POST("/restaurants/me/logo", h.UploadLogo)
	return r
}

func putJSON(r *gin.Engine, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPut, "/restaurants/me", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func logoRequest(t *testing.T, filename string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("logo", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/restaurants/me/logo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRestaurantHandlers(t *testing.T) {
	r := setupRouter(NewService(NewInMemoryRepository(nil), &fakeUploader{}, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/restaurants/me", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = putJSON(r, map[string]string{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = putJSON(r, map[string]string{"name": "Cantina"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = putJSON(r, map[string]string{"name": "Cantina 2"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, logoRequest(t, "logo.jpg"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["logo_url"], "https://cdn.example.com/restaurants/")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, logoRequest(t, "logo.bmp"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDoubleSubmittedFirstSave(t *testing.T) {
	repo := &lateRepo{InMemoryRepository: NewInMemoryRepository(nil)}
	r := setupRouter(NewService(repo, nil, nil))

	require.Equal(t, http.StatusCreated, putJSON(r, map[string]string{"name": "Cantina"}).Code)

	repo.misses = 1
	w := putJSON(r, map[string]string{"name": "Cantina"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoWithoutStorage(t *testing.T) {
	r := setupRouter(NewService(NewInMemoryRepository(nil), nil, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, logoRequest(t, "logo.png"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/restaurants/me/logo", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"garderobe/internal/models"
	"garderobe/internal/notify"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "remote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate(&models.GarmentDocument{}).Error)

	return NewServer(db, nil, notify.NewHub(), []byte(testSecret), t.TempDir())
}

func signedToken(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

type itemsResponse struct {
	Items     []models.WardrobeItem `json:"items"`
	SyncError string                `json:"syncError"`
}

func decodeItems(t *testing.T, w *httptest.ResponseRecorder) itemsResponse {
	t.Helper()
	var resp itemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}

func TestCatalogIsPublic(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/catalog", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var templates map[string]struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &templates))
	assert.Equal(t, "Tops", templates["shirt"].Category)
}

func TestMissingTokenRejected(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/wardrobe", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForgedTokenRejected(t *testing.T) {
	s := testServer(t)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ada"}).
		SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	w := doRequest(t, s, http.MethodGet, "/api/v1/wardrobe", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetWardrobeSeedsStarterInventory(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/wardrobe", signedToken(t, "ada"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeItems(t, w)
	assert.Len(t, resp.Items, 3)
}

func TestAddColorEndpoint(t *testing.T) {
	s := testServer(t)
	token := signedToken(t, "ada")

	w := doRequest(t, s, http.MethodPost, "/api/v1/wardrobe/heels/colors", token,
		map[string]string{"color": "#000000"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeItems(t, w)
	require.Len(t, resp.Items, 4)
	assert.Empty(t, resp.SyncError)

	// The remote copy only ever saw heels, so a refresh replaces the
	// starter inventory with just that one item.
	w = doRequest(t, s, http.MethodPost, "/api/v1/wardrobe/refresh", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeItems(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "heels", resp.Items[0].ID)
}

func TestAddColorRequiresBody(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/wardrobe/heels/colors",
		signedToken(t, "ada"), map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveColorErrorMapping(t *testing.T) {
	s := testServer(t)
	token := signedToken(t, "ada")

	w := doRequest(t, s, http.MethodDelete, "/api/v1/wardrobe/shirt/colors/9", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, s, http.MethodDelete, "/api/v1/wardrobe/cape/colors/0", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s, http.MethodDelete, "/api/v1/wardrobe/shirt/colors/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveColorEndpoint(t *testing.T) {
	s := testServer(t)
	token := signedToken(t, "ada")

	// shirt starts with two colors; removing both deletes the item
	w := doRequest(t, s, http.MethodDelete, "/api/v1/wardrobe/shirt/colors/0", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, s, http.MethodDelete, "/api/v1/wardrobe/shirt/colors/0", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeItems(t, w)
	assert.Nil(t, itemWithID(resp.Items, "shirt"))
}

func TestUpdateColorEndpoint(t *testing.T) {
	s := testServer(t)
	token := signedToken(t, "ada")

	w := doRequest(t, s, http.MethodPut, "/api/v1/wardrobe/trousers/colors/0", token,
		map[string]string{"color": "#101010"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeItems(t, w)
	trousers := itemWithID(resp.Items, "trousers")
	require.NotNil(t, trousers)
	assert.Equal(t, []string{"#101010"}, trousers.Colors)
}

func TestSetOutfitImageEndpoint(t *testing.T) {
	s := testServer(t)
	token := signedToken(t, "ada")

	w := doRequest(t, s, http.MethodPut, "/api/v1/outfits/2024-03-01/image", token,
		map[string]string{"imageUri": "file://x.jpg"})
	require.Equal(t, http.StatusOK, w.Code)

	var outfit models.Outfit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outfit))
	assert.Equal(t, "2024-03-01", outfit.Date)
	assert.Equal(t, "file://x.jpg", outfit.ImageURI)
	assert.Nil(t, outfit.Top)
}

func TestSetOutfitRejectsBadDate(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodPut, "/api/v1/outfits/march-1st", signedToken(t, "ada"),
		models.Outfit{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanWeekEndpoint(t *testing.T) {
	s := testServer(t)
	token := signedToken(t, "ada")

	w := doRequest(t, s, http.MethodPost, "/api/v1/planner/week", token,
		map[string]interface{}{"start": "2024-01-01", "useAI": true})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Mode    string                   `json:"mode"`
		Outfits map[string]models.Outfit `json:"outfits"`
		Quality struct {
			SlotCoverage float64 `json:"slotCoverage"`
			Overall      float64 `json:"overall"`
		} `json:"quality"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// No model configured, so even useAI requests take the random path.
	assert.Equal(t, "random", resp.Mode)
	assert.Len(t, resp.Outfits, 7)
	// Random picks only use owned garments, so coverage is full.
	assert.Equal(t, 1.0, resp.Quality.SlotCoverage)
	assert.Greater(t, resp.Quality.Overall, 0.0)
}

func TestPlanWeekRejectsBadStart(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/planner/week", signedToken(t, "ada"),
		map[string]string{"start": "next monday"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsersAreIsolated(t *testing.T) {
	s := testServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/v1/wardrobe/heels/colors",
		signedToken(t, "ada"), map[string]string{"color": "#000000"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, s, http.MethodGet, "/api/v1/wardrobe", signedToken(t, "bob"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeItems(t, w)
	assert.Nil(t, itemWithID(resp.Items, "heels"))
}

func TestStatusEndpoint(t *testing.T) {
	s := testServer(t)
	token := signedToken(t, "ada")

	doRequest(t, s, http.MethodPost, "/api/v1/wardrobe/heels/colors", token,
		map[string]string{"color": "#000000"})

	w := doRequest(t, s, http.MethodGet, "/api/v1/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var metrics map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metrics))
	assert.Contains(t, metrics, "uptime_seconds")
	assert.Contains(t, metrics, "ada_sync_last_operation")
}

func itemWithID(items []models.WardrobeItem, id string) *models.WardrobeItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

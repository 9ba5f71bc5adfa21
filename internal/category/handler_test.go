package category

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Category{}))

	h := NewHandler(NewService(NewRepository(db)))

	r := gin.New()
	r.GET("/categories", h.List)
	r.POST("/categories", h.Create)
	r.PUT("/categories/:id", h.Update)
	r.DELETE("/categories/:id", h.Delete)
	return r
}

func httpDo(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCategoryCRUD(t *testing.T) {
	r := setupRouter(t)

	// Create
	w := httpDo(r, "POST", "/categories", gin.H{"name": "Laddu", "rate": 50, "weight": 0.5})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Category Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.Category.ID)
	require.True(t, created.Category.IsActive)

	// Duplicate name conflicts
	w = httpDo(r, "POST", "/categories", gin.H{"name": "Laddu", "rate": 60})
	require.Equal(t, http.StatusConflict, w.Code)

	// Update the rate
	path := fmt.Sprintf("/categories/%d", created.Category.ID)
	w = httpDo(r, "PUT", path, gin.H{"rate": 55})
	require.Equal(t, http.StatusOK, w.Code)

	var updated struct {
		Category Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, 55.0, updated.Category.Rate)

	// Soft delete retires, it does not erase
	w = httpDo(r, "DELETE", path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = httpDo(r, "GET", "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Categories []Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Empty(t, listed.Categories)

	w = httpDo(r, "GET", "/categories?all=true", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Categories, 1)
	require.False(t, listed.Categories[0].IsActive)
}

func TestCategoryRejectsNonPositiveRate(t *testing.T) {
	r := setupRouter(t)

	w := httpDo(r, "POST", "/categories", gin.H{"name": "Laddu", "rate": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

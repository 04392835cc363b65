package docs_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/prestamos-api/docs"
	"github.com/sjperalta/prestamos-api/internal/handlers"
	"github.com/sjperalta/prestamos-api/internal/services"
)

type swaggerDoc struct {
	BasePath string                                `json:"basePath"`
	Paths    map[string]map[string]json.RawMessage `json:"paths"`
}

func readDoc(t *testing.T) swaggerDoc {
	t.Helper()
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))
	return doc
}

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc := readDoc(t)
	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.NotEmpty(t, doc.Paths)
}

func TestSwaggerDocCoversEveryRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := handlers.NewHandlers(&services.Services{})

	v1 := router.Group("/api/v1")
	v1.GET("/health", h.Health.Index)
	h.RegisterRoutes(v1)

	doc := readDoc(t)
	for _, route := range router.Routes() {
		path := strings.TrimPrefix(route.Path, "/api/v1")
		segments := strings.Split(path, "/")
		for i, seg := range segments {
			if strings.HasPrefix(seg, ":") {
				segments[i] = "{" + seg[1:] + "}"
			}
		}
		path = strings.Join(segments, "/")

		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "missing path %s", path) {
			continue
		}
		assert.Contains(t, ops, strings.ToLower(route.Method), "missing %s %s", route.Method, path)
	}
}

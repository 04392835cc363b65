package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// BindNestedOrFlat decodes the request body into obj. Clients may send the
// fields wrapped under key ({"pago": {...}}) or at the top level; both are
// accepted. The body is restored so it can be read again.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return err
		}
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if inner, ok := wrapped[key]; ok {
			return json.Unmarshal(inner, obj)
		}
	}

	return json.Unmarshal(body, obj)
}

// parseID reads a positive numeric path parameter. It writes a 400 and
// returns false when the parameter is not one.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s inválido", name)})
		return 0, false
	}
	return uint(id), true
}

// parseDate parses an optional YYYY-MM-DD value
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q, se espera AAAA-MM-DD", value)
	}
	return &d, nil
}

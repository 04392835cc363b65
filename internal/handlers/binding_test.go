package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindingTarget struct {
	InstallmentID uint   `json:"installment_id"`
	Date          string `json:"payment_date"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindingTarget
		expectError bool
	}{
		{
			name:     "wrapped",
			key:      "payment",
			body:     `{"payment": {"installment_id": 3, "payment_date": "2024-03-20"}}`,
			expected: bindingTarget{InstallmentID: 3, Date: "2024-03-20"},
		},
		{
			name:     "flat",
			key:      "payment",
			body:     `{"installment_id": 4}`,
			expected: bindingTarget{InstallmentID: 4},
		},
		{
			name:     "other keys fall back to flat",
			key:      "payment",
			body:     `{"loan": 1, "installment_id": 5}`,
			expected: bindingTarget{InstallmentID: 5},
		},
		{
			name:        "wrong type",
			key:         "payment",
			body:        `{"installment_id": "five"}`,
			expectError: true,
		},
		{
			name:        "wrapped with wrong type",
			key:         "payment",
			body:        `{"payment": {"installment_id": -1}}`,
			expectError: true,
		},
		{
			name:        "wrapped value is not an object",
			key:         "payment",
			body:        `{"payment": "x"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var got bindingTarget
			err := BindNestedOrFlat(c, tt.key, &got)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("")
	assert.NoError(t, err)
	assert.Nil(t, d)

	d, err = parseDate("2024-02-29")
	assert.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.Format(dateLayout))

	_, err = parseDate("29/02/2024")
	assert.Error(t, err)
}

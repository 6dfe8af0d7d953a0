package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	FirstName string `json:"first_name"`
	Barangay  string `json:"barangay"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:     "nested payload under key",
			key:      "beneficiary",
			body:     `{"beneficiary": {"first_name": "Maria", "barangay": "Poblacion"}}`,
			expected: bindTarget{FirstName: "Maria", Barangay: "Poblacion"},
		},
		{
			name:     "flat payload",
			key:      "beneficiary",
			body:     `{"first_name": "Jose", "barangay": "San Isidro"}`,
			expected: bindTarget{FirstName: "Jose", Barangay: "San Isidro"},
		},
		{
			name:     "flat payload with unrelated extra key",
			key:      "beneficiary",
			body:     `{"note": "walk-in", "first_name": "Ana", "barangay": "Bagong Silang"}`,
			expected: bindTarget{FirstName: "Ana", Barangay: "Bagong Silang"},
		},
		{
			name:        "nested key holds a non-object",
			key:         "beneficiary",
			body:        `{"beneficiary": "not an object"}`,
			expectError: true,
		},
		{
			name:        "type mismatch inside nested payload",
			key:         "beneficiary",
			body:        `{"beneficiary": {"first_name": 42}}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindTarget
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

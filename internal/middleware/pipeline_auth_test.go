package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

// pushRecorder stands in for the price push handler and records whether the
// request got through.
type pushRecorder struct {
	reached bool
}

func (p *pushRecorder) handle(c *gin.Context) {
	p.reached = true
	var req struct {
		Prices []json.RawMessage `json:"prices"`
	}
	_ = c.ShouldBindJSON(&req)
	c.JSON(http.StatusOK, gin.H{"received": len(req.Prices), "applied": len(req.Prices)})
}

func TestPipelineAuthMiddleware(t *testing.T) {
	const payload = `{"prices":[{"symbol":"TCS","price":"4100"}]}`

	tests := []struct {
		name       string
		configured string
		sent       string
		wantStatus int
		wantCode   string
	}{
		{"matching key pushes", "oracle-key", "oracle-key", http.StatusOK, ""},
		{"wrong key", "oracle-key", "other-key", http.StatusUnauthorized, "INVALID_API_KEY"},
		{"missing key", "oracle-key", "", http.StatusUnauthorized, "INVALID_API_KEY"},
		{"prefix of the key", "oracle-key", "oracle", http.StatusUnauthorized, "INVALID_API_KEY"},
		{"key with trailing space", "oracle-key", "oracle-key ", http.StatusUnauthorized, "INVALID_API_KEY"},
		{"pipeline disabled", "", "oracle-key", http.StatusServiceUnavailable, "PIPELINE_NOT_CONFIGURED"},
		{"pipeline disabled without key", "", "", http.StatusServiceUnavailable, "PIPELINE_NOT_CONFIGURED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			push := &pushRecorder{}
			r := gin.New()
			r.POST("/api/v1/pipeline/prices", PipelineAuthMiddleware(tt.configured), push.handle)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/pipeline/prices", strings.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			if tt.sent != "" {
				req.Header.Set("X-API-Key", tt.sent)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCode == "" {
				if !push.reached {
					t.Fatal("expected the push handler to run")
				}
				if got := parseBody(t, rec)["applied"]; got != float64(1) {
					t.Errorf("applied = %v, want 1", got)
				}
				return
			}

			if push.reached {
				t.Error("rejected push must not reach the handler")
			}
			errObj, ok := parseBody(t, rec)["error"].(map[string]interface{})
			if !ok {
				t.Fatal("expected error object in response")
			}
			if code, _ := errObj["code"].(string); code != tt.wantCode {
				t.Errorf("error code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	gin.SetMode(gin.TestMode)
	Logger = zap.NewNop()
}

func TestCheckHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	status := CheckHealth(context.Background(), ok, down)
	if !status.Mongo || status.Redis || status.Healthy() {
		t.Fatalf("unexpected status %+v", status)
	}
	if got := GetHealthStatus(); got.CheckedAt != status.CheckedAt {
		t.Fatalf("expected stored status to match, got %+v", got)
	}
	if !CheckHealth(context.Background(), ok, ok).Healthy() {
		t.Fatal("expected healthy status")
	}
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "Internal Server Error" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestJSONError(t *testing.T) {
	r := gin.New()
	r.GET("/bad", func(c *gin.Context) {
		JSONError(c, http.StatusBadRequest, "Invalid request", "date: expected YYYY-MM-DD")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var body ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Details != "date: expected YYYY-MM-DD" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug") != zapcore.DebugLevel {
		t.Fatal("expected debug level")
	}
	if parseLevel("") != zapcore.InfoLevel || parseLevel("loud") != zapcore.InfoLevel {
		t.Fatal("expected info fallback")
	}
}

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name            string
		method          string
		origin          string
		expectedHeaders map[string]string
		expectedStatus  int
	}{
		{
			name:           "preflight request",
			method:         "OPTIONS",
			origin:         "https://example.com",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
				"Access-Control-Allow-Headers": "Content-Type, Authorization",
			},
		},
		{
			name:           "regular GET request",
			method:         "GET",
			origin:         "https://example.com",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin": "*",
			},
		},
		{
			name:           "POST request without origin",
			method:         "POST",
			origin:         "",
			expectedStatus: http.StatusOK,
			expectedHeaders: map[string]string{
				"Access-Control-Allow-Origin": "*",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			w := httptest.NewRecorder()
			_, router := gin.CreateTestContext(w)

			// Apply CORS middleware
			router.Use(CORS())
			router.Any("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			// Create request
			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			// Execute
			router.ServeHTTP(w, req)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			for header, expectedValue := range tt.expectedHeaders {
				assert.Equal(t, expectedValue, w.Header().Get(header), "Header: %s", header)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generates an id when the client sends none", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, router := gin.CreateTestContext(w)

		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.GetString("request_id")})
		})

		req := httptest.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("reuses the client-supplied id", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, router := gin.CreateTestContext(w)

		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, "client-chosen-id")
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-chosen-id", w.Header().Get(RequestIDHeader))
	})
}

func TestRequestSizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		bodySize       int
		expectedStatus int
	}{
		{
			name:           "small request under limit",
			bodySize:       100,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "large request over limit",
			bodySize:       2 * 1024 * 1024,
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:           "request at limit",
			bodySize:       1024 * 1024,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			_, router := gin.CreateTestContext(w)

			router.Use(RequestSizeLimit())
			router.POST("/test", func(c *gin.Context) {
				// Reading the body is what trips MaxBytesReader
				if _, err := io.ReadAll(c.Request.Body); err != nil {
					c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request too large"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			body := strings.NewReader(strings.Repeat("a", tt.bodySize))
			req := httptest.NewRequest("POST", "/test", body)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	t.Run("GET requests are not limited", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, router := gin.CreateTestContext(w)

		router.Use(RequestSizeLimit())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		req := httptest.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestPerClientRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allows requests within limit", func(t *testing.T) {
		rateLimiters := &sync.Map{}
		cleanupStop := make(chan struct{})
		defer close(cleanupStop)
		var once sync.Once

		w := httptest.NewRecorder()
		_, router := gin.CreateTestContext(w)

		router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &once, 10, 5))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects requests over burst", func(t *testing.T) {
		rateLimiters := &sync.Map{}
		cleanupStop := make(chan struct{})
		defer close(cleanupStop)
		var once sync.Once

		_, router := gin.CreateTestContext(httptest.NewRecorder())
		router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &once, 1, 2))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		codes := make([]int, 0, 4)
		for i := 0; i < 4; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/test", nil)
			req.RemoteAddr = "192.0.2.2:1234"
			router.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusOK, codes[1])
		assert.Equal(t, http.StatusTooManyRequests, codes[2])
		assert.Equal(t, http.StatusTooManyRequests, codes[3])
	})

	t.Run("limits are tracked per client", func(t *testing.T) {
		rateLimiters := &sync.Map{}
		cleanupStop := make(chan struct{})
		defer close(cleanupStop)
		var once sync.Once

		_, router := gin.CreateTestContext(httptest.NewRecorder())
		router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &once, 1, 1))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		first := httptest.NewRecorder()
		req1 := httptest.NewRequest("GET", "/test", nil)
		req1.RemoteAddr = "192.0.2.3:1234"
		router.ServeHTTP(first, req1)

		exhausted := httptest.NewRecorder()
		req2 := httptest.NewRequest("GET", "/test", nil)
		req2.RemoteAddr = "192.0.2.3:1234"
		router.ServeHTTP(exhausted, req2)

		other := httptest.NewRecorder()
		req3 := httptest.NewRequest("GET", "/test", nil)
		req3.RemoteAddr = "192.0.2.4:1234"
		router.ServeHTTP(other, req3)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, exhausted.Code)
		assert.Equal(t, http.StatusOK, other.Code)
	})

	t.Run("limiter refills over time", func(t *testing.T) {
		rateLimiters := &sync.Map{}
		cleanupStop := make(chan struct{})
		defer close(cleanupStop)
		var once sync.Once

		_, router := gin.CreateTestContext(httptest.NewRecorder())
		router.Use(PerClientRateLimit(rateLimiters, cleanupStop, &once, 100, 1))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "success"})
		})

		send := func() int {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/test", nil)
			req.RemoteAddr = "192.0.2.5:1234"
			router.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusOK, send())
		assert.Equal(t, http.StatusTooManyRequests, send())

		time.Sleep(15 * time.Millisecond)
		assert.Equal(t, http.StatusOK, send())
	})
}

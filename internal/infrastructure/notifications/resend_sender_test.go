package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/catermatch/backend/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestNewResendSender(t *testing.T) {
	t.Run("fails without API key", func(t *testing.T) {
		_, err := NewResendSender(&config.EmailConfig{From: "Catermatch <onboarding@resend.dev>"})
		assert.Error(t, err)
	})

	t.Run("succeeds with API key", func(t *testing.T) {
		sender, err := NewResendSender(&config.EmailConfig{
			APIKey: "re_test_key",
			From:   "Catermatch <onboarding@resend.dev>",
		})
		assert.NoError(t, err)
		assert.NotNil(t, sender)
	})
}

func TestResendSender_Send(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   string
		wantID     string
		wantErr    bool
	}{
		{
			name:       "successful send",
			statusCode: http.StatusOK,
			response:   `{"id":"a3f1c9e2-0b7d-4f56-9c1a-2d8e4b6f7a90"}`,
			wantID:     "a3f1c9e2-0b7d-4f56-9c1a-2d8e4b6f7a90",
		},
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			response:   `{"message":"API key is invalid"}`,
			wantErr:    true,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			response:   `{"message":"Too many requests"}`,
			wantErr:    true,
		},
		{
			name:       "missing message id",
			statusCode: http.StatusOK,
			response:   `{}`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotReq ResendEmailRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "POST", r.Method)
				assert.Equal(t, "/emails", r.URL.Path)
				assert.Equal(t, "Bearer re_test_key", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			sender := &ResendSender{
				apiKey:     "re_test_key",
				from:       "Catermatch <onboarding@resend.dev>",
				httpClient: &http.Client{Timeout: 5 * time.Second},
				baseURL:    server.URL,
			}

			id, err := sender.Send(context.Background(), "caterer@example.com", "Je bod is geaccepteerd: Bruiloft", "<p>Gefeliciteerd!</p>")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, "Catermatch <onboarding@resend.dev>", gotReq.From)
			assert.Equal(t, []string{"caterer@example.com"}, gotReq.To)
			assert.Equal(t, "Je bod is geaccepteerd: Bruiloft", gotReq.Subject)
			assert.Equal(t, "<p>Gefeliciteerd!</p>", gotReq.HTML)
		})
	}
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/learnable-edu/learnable/internal/common"
	"github.com/learnable-edu/learnable/internal/logging"
	"github.com/learnable-edu/learnable/internal/server/config"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func newTTSService(t *testing.T, handler http.HandlerFunc) *TTSService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		TTSBaseURL: srv.URL,
		TTSAPIKey:  "test-key",
		TTSModel:   "tts-1",
	}
	return NewTTSService(srv.Client(), cfg, discardLogger())
}

func TestSynthesize_SendsExpectedRequest(t *testing.T) {
	var got speechRequest
	var gotAuth string

	s := newTTSService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/audio/speech", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("mp3-bytes"))
	})

	audio, err := s.Synthesize(context.Background(), &SynthesizeRequest{
		Text:     "வணக்கம்",
		Language: "ta",
	})
	require.NoError(t, err)
	require.Equal(t, []byte("mp3-bytes"), audio)

	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "tts-1", got.Model)
	require.Equal(t, "nova", got.Voice, "tamil maps to the nova voice")
	require.Equal(t, 1.0, got.Speed, "zero speed defaults to 1.0")
	require.Equal(t, "mp3", got.ResponseFormat)
}

func TestSynthesize_VoiceSelection(t *testing.T) {
	tests := []struct {
		name     string
		language string
		voice    string
		want     string
	}{
		{"explicit voice wins", "ta", "echo", "echo"},
		{"english maps to alloy", "en", "", "alloy"},
		{"region code is stripped", "en-US", "", "alloy"},
		{"unknown language falls back", "fr", "", "alloy"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got speechRequest
			s := newTTSService(t, func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				_, _ = w.Write([]byte("x"))
			})

			_, err := s.Synthesize(context.Background(), &SynthesizeRequest{
				Text: "hello", Language: tc.language, Voice: tc.voice,
			})
			require.NoError(t, err)
			require.Equal(t, tc.want, got.Voice)
		})
	}
}

func TestSynthesize_Validation(t *testing.T) {
	s := newTTSService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("provider must not be called for invalid input")
	})

	_, err := s.Synthesize(context.Background(), &SynthesizeRequest{Text: ""})
	require.True(t, errors.Is(err, common.ErrorInvalidInput))

	_, err = s.Synthesize(context.Background(), &SynthesizeRequest{Text: strings.Repeat("a", maxTTSTextLength+1)})
	require.True(t, errors.Is(err, common.ErrorInvalidInput))

	_, err = s.Synthesize(context.Background(), &SynthesizeRequest{Text: strings.Repeat("த", maxTTSTextLength+1)})
	require.True(t, errors.Is(err, common.ErrorInvalidInput))

	_, err = s.Synthesize(context.Background(), &SynthesizeRequest{Text: "hi", Speed: 3.0})
	require.True(t, errors.Is(err, common.ErrorInvalidInput))

	_, err = s.Synthesize(context.Background(), &SynthesizeRequest{Text: "hi", Speed: 0.1})
	require.True(t, errors.Is(err, common.ErrorInvalidInput))
}

func TestSynthesize_LengthLimitCountsCharacters(t *testing.T) {
	s := newTTSService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	})

	// 2000 Tamil characters are 6000 bytes but well inside the limit
	_, err := s.Synthesize(context.Background(), &SynthesizeRequest{
		Text:     strings.Repeat("த", 2000),
		Language: "ta",
	})
	require.NoError(t, err)
}

func TestSynthesize_ProviderFailureIsInternal(t *testing.T) {
	s := newTTSService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := s.Synthesize(context.Background(), &SynthesizeRequest{Text: "hello"})
	require.True(t, errors.Is(err, common.ErrorInternal))
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/learnable-edu/learnable/internal/common"
	"github.com/learnable-edu/learnable/internal/logging"
	sc "github.com/learnable-edu/learnable/internal/server/config"
)

// Text and speed bounds for a synthesis request.
const (
	maxTTSTextLength = 4096
	minTTSSpeed      = 0.5
	maxTTSSpeed      = 2.0
)

// voiceByLanguage picks the provider voice for a language when the caller
// does not name one.
var voiceByLanguage = map[string]string{
	"en": "alloy",
	"ta": "nova",
}

const defaultVoice = "alloy"

// SynthesizeRequest is a single text-to-speech request. Language accepts
// region-qualified codes ("en-US"); only the base language matters. A zero
// Speed means 1.0.
type SynthesizeRequest struct {
	Text     string
	Language string
	Voice    string
	Speed    float64
}

// TTSService proxies speech synthesis to an OpenAI-compatible endpoint and
// returns MP3 bytes. The provider is opaque to callers; only the bounds
// above are enforced here.
type TTSService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	logger  logging.Logger
}

func NewTTSService(client *http.Client, cfg *sc.Config, logger logging.Logger) *TTSService {
	if client == nil {
		client = http.DefaultClient
	}
	return &TTSService{
		client:  client,
		baseURL: strings.TrimRight(cfg.TTSBaseURL, "/"),
		apiKey:  cfg.TTSAPIKey,
		model:   cfg.TTSModel,
		logger:  logger,
	}
}

type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	Speed          float64 `json:"speed"`
	ResponseFormat string  `json:"response_format"`
}

// Synthesize validates the request and returns the synthesized MP3 audio.
func (s *TTSService) Synthesize(ctx context.Context, req *SynthesizeRequest) ([]byte, error) {

	if req.Text == "" {
		return nil, fmt.Errorf("%w: no text provided", common.ErrorInvalidInput)
	}
	if utf8.RuneCountInString(req.Text) > maxTTSTextLength {
		return nil, fmt.Errorf("%w: text must be at most %d characters", common.ErrorInvalidInput, maxTTSTextLength)
	}

	speed := req.Speed
	if speed == 0 {
		speed = 1.0
	}
	if speed < minTTSSpeed || speed > maxTTSSpeed {
		return nil, fmt.Errorf("%w: speed must be between %.1f and %.1f", common.ErrorInvalidInput, minTTSSpeed, maxTTSSpeed)
	}

	// "en-US" and "en" select the same voice
	language := strings.SplitN(req.Language, "-", 2)[0]
	voice := req.Voice
	if voice == "" {
		voice = voiceByLanguage[language]
		if voice == "" {
			voice = defaultVoice
		}
	}

	body, err := json.Marshal(speechRequest{
		Model:          s.model,
		Input:          req.Text,
		Voice:          voice,
		Speed:          speed,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, common.ErrorInternal
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, common.ErrorInternal
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.Error(ctx, "tts request failed", "error", err)
		return nil, common.ErrorInternal
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.logger.Error(ctx, "tts provider error", "status", resp.StatusCode, "body", string(detail))
		return nil, common.ErrorInternal
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error(ctx, "tts response read failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "tts generated", "chars", len(req.Text), "voice", voice)
	return audio, nil
}

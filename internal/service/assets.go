package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"creator-station/config"
	"creator-station/internal/dto"
	apperrors "creator-station/pkg/errors"
	"creator-station/pkg/tts"
)

// GenerateImage renders one illustration and returns it base64-encoded.
func (s *Service) GenerateImage(ctx context.Context, req dto.GenerateImageReq) (*dto.GenerateImageResData, error) {
	prompt := strings.TrimSpace(req.Prompt)
	suffix := req.Suffix
	if suffix == "" {
		suffix = config.Conf.Image.PromptSuffix
	}
	if suffix != "" {
		prompt = prompt + ", " + suffix
	}

	raw, err := s.ImageGen.GenerateImage(ctx, prompt, req.Aspect)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeImageGen, "image generation failed", err)
	}

	return &dto.GenerateImageResData{
		ImageBase64: base64.StdEncoding.EncodeToString(raw),
	}, nil
}

// SynthesizeSpeech produces narration audio for one scene.
func (s *Service) SynthesizeSpeech(ctx context.Context, req dto.SynthesizeSpeechReq) (*dto.SynthesizeSpeechResData, error) {
	if !tts.IsKnownVoice(req.Voice) {
		return nil, apperrors.WrapWithDetail(apperrors.CodeVoiceNotFound,
			"voice not found",
			fmt.Sprintf("unknown voice %q, did you mean %q?", req.Voice, tts.SuggestVoice(req.Voice)), nil)
	}

	audio, mime, err := s.Tts.Synthesize(ctx, req.Text, req.Voice, req.SpeakingRate)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTTSFailed, "speech synthesis failed", err)
	}

	return &dto.SynthesizeSpeechResData{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Mime:        mime,
	}, nil
}

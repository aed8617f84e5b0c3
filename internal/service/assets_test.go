package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"creator-station/config"
	"creator-station/internal/dto"
	"creator-station/internal/mocks"
	apperrors "creator-station/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateImage_AppendsSuffix(t *testing.T) {
	mockGen := new(mocks.MockImageGenerator)
	mockGen.On("GenerateImage", mock.Anything, "a red fox, oil painting", "16:9").
		Return([]byte{0x89, 0x50}, nil)

	svc := &Service{ImageGen: mockGen}

	res, err := svc.GenerateImage(context.Background(), dto.GenerateImageReq{
		Prompt: "  a red fox ",
		Aspect: "16:9",
		Suffix: "oil painting",
	})
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0x89, 0x50}), res.ImageBase64)
	mockGen.AssertExpectations(t)
}

func TestGenerateImage_ConfigSuffixFallback(t *testing.T) {
	old := config.Conf.Image.PromptSuffix
	config.Conf.Image.PromptSuffix = "flat vector art"
	t.Cleanup(func() { config.Conf.Image.PromptSuffix = old })

	mockGen := new(mocks.MockImageGenerator)
	mockGen.On("GenerateImage", mock.Anything, "a red fox, flat vector art", "1:1").
		Return([]byte{0x01}, nil)

	svc := &Service{ImageGen: mockGen}

	_, err := svc.GenerateImage(context.Background(), dto.GenerateImageReq{
		Prompt: "a red fox",
		Aspect: "1:1",
	})
	require.NoError(t, err)
	mockGen.AssertExpectations(t)
}

func TestGenerateImage_UpstreamError(t *testing.T) {
	mockGen := new(mocks.MockImageGenerator)
	mockGen.On("GenerateImage", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("quota exceeded"))

	svc := &Service{ImageGen: mockGen}

	_, err := svc.GenerateImage(context.Background(), dto.GenerateImageReq{
		Prompt: "a red fox",
		Aspect: "16:9",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeImageGen))
}

func TestSynthesizeSpeech_UnknownVoiceSuggestsClosest(t *testing.T) {
	svc := &Service{Tts: new(mocks.MockSpeechSynthesizer)}

	_, err := svc.SynthesizeSpeech(context.Background(), dto.SynthesizeSpeechReq{
		Text:         "hello",
		Voice:        "aloy",
		SpeakingRate: 1.0,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeVoiceNotFound))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Detail, `"aloy"`)
	assert.Contains(t, appErr.Detail, `"alloy"`)
}

func TestSynthesizeSpeech_Success(t *testing.T) {
	mockTts := new(mocks.MockSpeechSynthesizer)
	mockTts.On("Synthesize", mock.Anything, "hello", "nova", 1.1).
		Return([]byte("mp3data"), "audio/mpeg", nil)

	svc := &Service{Tts: mockTts}

	res, err := svc.SynthesizeSpeech(context.Background(), dto.SynthesizeSpeechReq{
		Text:         "hello",
		Voice:        "nova",
		SpeakingRate: 1.1,
	})
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("mp3data")), res.AudioBase64)
	assert.Equal(t, "audio/mpeg", res.Mime)
	mockTts.AssertExpectations(t)
}

package service

import (
	"sync"
	"time"

	"creator-station/config"
	"creator-station/internal/storage"
	"creator-station/internal/types"
	"creator-station/pkg/ffmpegexec"
	"creator-station/pkg/imagegen"
	"creator-station/pkg/openai"
	"creator-station/pkg/ossarchive"
	"creator-station/pkg/tts"
)

type Service struct {
	ChatCompleter types.ChatCompleter
	ImageGen      types.ImageGenerator
	Tts           types.SpeechSynthesizer
	Runner        *ffmpegexec.Runner
	Archive       *ossarchive.Client

	// progressMu serializes task record updates issued from concurrent
	// scene asset workers.
	progressMu sync.Mutex
}

func NewService() *Service {
	runner := ffmpegexec.NewRunner(
		storage.FfmpegPath,
		storage.FfprobePath,
		time.Duration(config.Conf.Render.SegmentTimeoutSec)*time.Second,
	)

	svc := &Service{
		ChatCompleter: openai.NewClient(config.Conf.Llm.BaseUrl, config.Conf.Llm.ApiKey, config.Conf.Llm.Model, config.Conf.App.ParsedProxy),
		ImageGen:      imagegen.NewClient(config.Conf.Image.BaseUrl, config.Conf.Image.ApiKey, config.Conf.Image.Model, config.Conf.App.ParsedProxy),
		Tts:           tts.NewClient(config.Conf.Tts.BaseUrl, config.Conf.Tts.ApiKey, config.Conf.Tts.Model, config.Conf.App.ParsedProxy),
		Runner:        runner,
	}

	if config.Conf.Archive.Enabled {
		svc.Archive = ossarchive.NewClient(
			config.Conf.Archive.Region,
			config.Conf.Archive.Bucket,
			config.Conf.Archive.AccessKeyId,
			config.Conf.Archive.AccessKeySecret,
			config.Conf.Archive.Prefix,
		)
	}

	return svc
}

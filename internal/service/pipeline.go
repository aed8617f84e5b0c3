package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"creator-station/config"
	"creator-station/internal/dto"
	"creator-station/internal/storage"
	"creator-station/internal/types"
	apperrors "creator-station/pkg/errors"
	"creator-station/log"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// sceneAssetConcurrency bounds parallel calls to the image and speech
// services within one pipeline run.
const sceneAssetConcurrency = 3

// CreatePipelineTask persists a queued task record and returns its id. The
// actual work happens later in ExecutePipeline on a worker.
func (s *Service) CreatePipelineTask(req dto.StartPipelineReq) (*dto.StartPipelineResData, error) {
	taskId := uuid.NewString()
	task := &types.PipelineTask{
		TaskId:    taskId,
		Status:    types.PipelineTaskStatusQueued,
		StatusMsg: "queued",
	}
	if err := storage.SaveTask(task); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDBError, "cannot persist task", err)
	}
	return &dto.StartPipelineResData{TaskId: taskId}, nil
}

// ExecutePipeline runs the whole script-to-video flow for one task: split
// the script, generate one illustration and one narration per scene, then
// assemble the final MP4 through the same render path the synchronous
// endpoint uses.
func (s *Service) ExecutePipeline(ctx context.Context, taskId string, req dto.StartPipelineReq) error {
	task, err := storage.GetTask(taskId)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDBError, "task not found", err)
	}

	task.Status = types.PipelineTaskStatusRunning
	s.updateProgress(task, 1, "analyzing script")

	split, err := s.SplitScript(ctx, dto.SplitScriptReq{
		Script:             req.Script,
		StyleName:          req.StyleName,
		TimingRuleSeconds:  req.TimingRuleSeconds,
		VisualPromptSuffix: req.VisualPromptSuffix,
	})
	if err != nil {
		return s.failTask(task, err)
	}

	task.Title = split.Title
	task.Summary = split.Summary
	task.SceneCount = len(split.Scenes)
	s.updateProgress(task, 10, "generating scene assets")

	basePath, err := storage.TaskBasePath(taskId)
	if err != nil {
		return s.failTask(task, apperrors.Wrap(apperrors.CodeResource, "cannot resolve task directory", err))
	}
	assetsDir := filepath.Join(basePath, "assets")
	if err = os.MkdirAll(assetsDir, 0o755); err != nil {
		return s.failTask(task, apperrors.Wrap(apperrors.CodeResource, "cannot create task directory", err))
	}

	ttsEnabled := !req.DisableTts && !config.Conf.Tts.Disable
	imagePaths, audioPaths, err := s.generateSceneAssets(ctx, task, assetsDir, split.Scenes, req, ttsEnabled)
	if err != nil {
		return s.failTask(task, err)
	}

	s.updateProgress(task, 80, "assembling video")

	input, err := buildPipelineRenderInput(split.Scenes, imagePaths, audioPaths, ttsEnabled)
	if err != nil {
		return s.failTask(task, err)
	}
	video, err := s.Render(ctx, input)
	if err != nil {
		return s.failTask(task, err)
	}

	outputPath := filepath.Join(basePath, types.OutputFileName)
	if err = os.WriteFile(outputPath, video, 0o644); err != nil {
		return s.failTask(task, apperrors.Wrap(apperrors.CodeFileWriteError, "cannot write output video", err))
	}
	task.OutputPath = outputPath

	if duration, probeErr := s.Runner.MediaDuration(ctx, outputPath); probeErr != nil {
		log.GetLogger().Warn("cannot probe output duration",
			zap.String("taskId", taskId),
			zap.Error(probeErr))
	} else {
		task.DurationSec = duration
	}
	s.updateProgress(task, 95, "archiving")

	if s.Archive != nil {
		url, archiveErr := s.Archive.UploadFile(ctx, taskId+".mp4", outputPath)
		if archiveErr != nil {
			// Archival is best effort; the video already exists locally.
			log.GetLogger().Warn("archive upload failed",
				zap.String("taskId", taskId),
				zap.Error(archiveErr))
		} else {
			task.ArchiveUrl = url
		}
	}

	task.Status = types.PipelineTaskStatusDone
	s.updateProgress(task, 100, "done")
	log.GetLogger().Info("pipeline complete",
		zap.String("taskId", taskId),
		zap.Int("scenes", task.SceneCount))
	return nil
}

// generateSceneAssets produces the illustration and narration files for
// every scene, a few scenes at a time. Asset generation failures are fatal
// for the task: a video with missing scenes is worse than no video.
func (s *Service) generateSceneAssets(ctx context.Context, task *types.PipelineTask, assetsDir string, scenes []types.ScriptScene, req dto.StartPipelineReq, ttsEnabled bool) ([]string, []string, error) {
	aspect := req.Aspect
	if aspect == "" {
		aspect = "16:9"
	}
	voice := req.Voice
	if voice == "" {
		voice = config.Conf.Tts.Voice
	}
	speakingRate := req.SpeakingRate
	if speakingRate == 0 {
		speakingRate = 1.0
	}

	imagePaths := make([]string, len(scenes))
	audioPaths := make([]string, len(scenes))

	var completed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sceneAssetConcurrency)

	for i, scene := range scenes {
		i, scene := i, scene
		g.Go(func() error {
			imageRes, err := s.GenerateImage(gctx, dto.GenerateImageReq{
				Prompt: scene.ImagePrompt,
				Aspect: aspect,
			})
			if err != nil {
				return fmt.Errorf("scene %d: %w", scene.SceneId, err)
			}
			imagePath := filepath.Join(assetsDir, fmt.Sprintf("scene_%03d.png", scene.SceneId))
			if err = writeBase64File(imagePath, imageRes.ImageBase64); err != nil {
				return fmt.Errorf("scene %d: %w", scene.SceneId, err)
			}
			imagePaths[i] = imagePath

			if ttsEnabled {
				speechRes, err := s.SynthesizeSpeech(gctx, dto.SynthesizeSpeechReq{
					Text:         scene.Narration,
					Voice:        voice,
					SpeakingRate: speakingRate,
				})
				if err != nil {
					return fmt.Errorf("scene %d: %w", scene.SceneId, err)
				}
				audioPath := filepath.Join(assetsDir, fmt.Sprintf("scene_%03d.mp3", scene.SceneId))
				if err = writeBase64File(audioPath, speechRes.AudioBase64); err != nil {
					return fmt.Errorf("scene %d: %w", scene.SceneId, err)
				}
				audioPaths[i] = audioPath
			}

			done := completed.Add(1)
			pct := 10 + uint8(70*int(done)/len(scenes))
			s.updateProgress(task, pct, fmt.Sprintf("scene %d/%d ready", done, len(scenes)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return imagePaths, audioPaths, nil
}

// buildPipelineRenderInput turns the generated asset files into the same
// RenderInput shape the upload endpoint produces. Scene index is baked into
// the zero-padded file names, so lexicographic staging keeps the order.
func buildPipelineRenderInput(scenes []types.ScriptScene, imagePaths, audioPaths []string, ttsEnabled bool) (RenderInput, error) {
	manifest := types.Manifest{Scenes: make([]types.SceneManifestEntry, len(scenes))}
	images := make([]Upload, len(scenes))
	var audios []Upload

	for i, scene := range scenes {
		manifest.Scenes[i] = types.SceneManifestEntry{
			DurationSec: scene.DurationSec,
			HasAudio:    ttsEnabled,
		}
		images[i] = fileUpload(imagePaths[i])
		if ttsEnabled {
			audios = append(audios, fileUpload(audioPaths[i]))
		}
	}

	manifestJSON, err := marshalManifest(manifest)
	if err != nil {
		return RenderInput{}, err
	}
	return RenderInput{
		ManifestJSON: manifestJSON,
		Images:       images,
		Audios:       audios,
	}, nil
}

func (s *Service) updateProgress(task *types.PipelineTask, pct uint8, msg string) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	task.ProcessPct = pct
	task.StatusMsg = msg
	if err := storage.SaveTask(task); err != nil {
		log.GetLogger().Warn("cannot persist task progress",
			zap.String("taskId", task.TaskId),
			zap.Error(err))
	}
}

func (s *Service) failTask(task *types.PipelineTask, cause error) error {
	task.Status = types.PipelineTaskStatusFailed
	task.StatusMsg = "failed"
	task.FailReason = cause.Error()
	if err := storage.SaveTask(task); err != nil {
		log.GetLogger().Error("cannot persist task failure",
			zap.String("taskId", task.TaskId),
			zap.Error(err))
	}
	return cause
}

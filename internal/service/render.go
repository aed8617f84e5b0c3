package service

import (
	"context"
	"fmt"
	"os"

	"creator-station/config"
	"creator-station/internal/types"
	apperrors "creator-station/pkg/errors"
	"creator-station/log"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RenderInput is one render request: a manifest plus the uploaded assets.
type RenderInput struct {
	ManifestJSON []byte
	Images       []Upload
	Audios       []Upload
}

// Render runs the full assembly: validate, stage, encode one segment per
// scene, concatenate, and return the joined MP4 bytes. All-or-nothing: the
// first error aborts the request and no partial video is returned. The
// workspace is cleaned on every exit path.
func (s *Service) Render(ctx context.Context, input RenderInput) ([]byte, error) {
	manifest, err := ParseManifest(input.ManifestJSON)
	if err != nil {
		return nil, err
	}
	if err = CheckAssetCounts(manifest, len(input.Images), len(input.Audios)); err != nil {
		return nil, err
	}

	workDir, err := config.ResolveWorkDir()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeResource, "cannot resolve work directory", err)
	}
	if err = os.MkdirAll(workDir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeResource, "cannot create work directory", err)
	}

	ws, err := OpenWorkspace(workDir)
	if err != nil {
		return nil, err
	}
	defer ws.Cleanup()

	images, err := ws.Stage(input.Images, types.AssetRoleImage)
	if err != nil {
		return nil, err
	}
	audios, err := ws.Stage(input.Audios, types.AssetRoleAudio)
	if err != nil {
		return nil, err
	}

	segments, err := s.encodeScenes(ctx, ws, manifest, images, audios)
	if err != nil {
		return nil, err
	}

	outputPath := ws.Path(types.OutputFileName)
	if err = s.concatSegments(ctx, ws.Path("concat_list.txt"), segments, outputPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeResource, "cannot read rendered output", err)
	}

	log.GetLogger().Info("render complete",
		zap.Int("scenes", len(manifest.Scenes)),
		zap.Int("bytes", len(data)))
	return data, nil
}

// encodeScenes encodes every scene into its own segment file. Scenes operate
// on disjoint files, so they run in parallel up to render.concurrency;
// the returned slice keeps manifest order regardless of completion order.
func (s *Service) encodeScenes(ctx context.Context, ws *Workspace, manifest *types.Manifest, images, audios []types.StagedAsset) ([]string, error) {
	concurrency := config.Conf.Render.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	segments := make([]string, len(manifest.Scenes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, scene := range manifest.Scenes {
		i, scene := i, scene
		g.Go(func() error {
			audioPath := ""
			if scene.HasAudio && i < len(audios) {
				audioPath = audios[i].Path
			}
			outputPath := ws.Path(fmt.Sprintf("segment_%04d.mp4", i))
			if err := s.encodeSegment(gctx, i, images[i].Path, audioPath, scene.DurationSec, outputPath); err != nil {
				return err
			}
			segments[i] = outputPath
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return segments, nil
}

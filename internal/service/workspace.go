package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"creator-station/internal/types"
	apperrors "creator-station/pkg/errors"
	"creator-station/pkg/util"
	"creator-station/log"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload is an incoming file: its original name (the scene sort key) and a
// way to open its content. Decoupled from multipart so the pipeline can
// feed the renderer from disk.
type Upload struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Workspace is the isolated temporary directory tree of one render request.
// It exclusively owns every file staged into it; Cleanup removes the whole
// tree on every exit path.
type Workspace struct {
	Root string
}

// OpenWorkspace allocates a fresh, uniquely named directory under baseDir.
func OpenWorkspace(baseDir string) (*Workspace, error) {
	root := filepath.Join(baseDir, uuid.NewString())
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeResource, "cannot allocate workspace", err)
	}
	return &Workspace{Root: root}, nil
}

// Stage copies the uploads into the workspace and returns them ordered by
// byte-wise lexicographic sort of the original file names. That sort is the
// sole mechanism establishing scene order, so duplicate sort keys within a
// role are rejected instead of silently misassigning scenes.
func (w *Workspace) Stage(uploads []Upload, role types.AssetRole) ([]types.StagedAsset, error) {
	roleDir := filepath.Join(w.Root, string(role)+"s")
	if err := os.MkdirAll(roleDir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeResource, "cannot create staging directory", err)
	}

	ordered := make([]Upload, len(uploads))
	copy(ordered, uploads)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	assets := make([]types.StagedAsset, 0, len(ordered))
	for i, upload := range ordered {
		if i > 0 && ordered[i-1].Name == upload.Name {
			return nil, apperrors.WrapWithDetail(apperrors.CodeValidation,
				"manifest validation failed",
				fmt.Sprintf("%ss: duplicate file name %q makes scene order ambiguous", role, upload.Name), nil)
		}

		dest := filepath.Join(roleDir, fmt.Sprintf("%04d_%s", i, util.SanitizeFilename(upload.Name)))
		if err := copyUpload(upload, dest); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeResource, "cannot stage upload", err)
		}
		assets = append(assets, types.StagedAsset{
			Path:    dest,
			SortKey: upload.Name,
			Role:    role,
		})
	}
	return assets, nil
}

// Cleanup removes the whole workspace tree. Errors are logged, never
// surfaced: a failed cleanup must not mask the render's primary result.
func (w *Workspace) Cleanup() {
	if w == nil || w.Root == "" {
		return
	}
	if err := os.RemoveAll(w.Root); err != nil {
		log.GetLogger().Warn("workspace cleanup failed",
			zap.String("root", w.Root),
			zap.Error(err))
	}
}

// Path returns a file path inside the workspace.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Root}, elem...)...)
}

func copyUpload(upload Upload, dest string) error {
	src, err := upload.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

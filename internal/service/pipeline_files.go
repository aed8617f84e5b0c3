package service

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"creator-station/internal/types"
	apperrors "creator-station/pkg/errors"
)

func fileUpload(path string) Upload {
	return Upload{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

func writeBase64File(path, encoded string) error {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeFileWriteError, "cannot decode asset payload", err)
	}
	if err = os.WriteFile(path, raw, 0o644); err != nil {
		return apperrors.Wrap(apperrors.CodeFileWriteError, "cannot write asset file", err)
	}
	return nil
}

func marshalManifest(manifest types.Manifest) ([]byte, error) {
	raw, err := json.Marshal(manifest)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "cannot marshal manifest", err)
	}
	return raw, nil
}

// Package share delivers generated files to the user, either by saving them
// or by handing them to a platform share capability when one is available.
package share

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Mode selects the delivery mechanism.
type Mode string

const (
	// ModeDownload always saves the file.
	ModeDownload Mode = "download"
	// ModeEmail prefers a file-share capability, falling back to download.
	ModeEmail Mode = "email"
	// ModeAuto prefers a file-share capability, falling back to download.
	ModeAuto Mode = "auto"
)

// ErrShareUnavailable is returned by deliverers without a share capability.
var ErrShareUnavailable = errors.New("file sharing not available")

// Deliverer is the platform seam for getting a file to the user.
type Deliverer interface {
	Download(data []byte, filename, mimeType string) error
	CanShareFiles() bool
	ShareFile(data []byte, filename, mimeType, title, text string) error
}

// Deliver routes the payload according to mode. Email and auto first attempt
// the share capability and fall back to download when it is unavailable or
// fails; only the final download error surfaces.
func Deliver(d Deliverer, data []byte, filename, mimeType string, mode Mode, title, text string, log zerolog.Logger) error {
	if mode == ModeDownload {
		return d.Download(data, filename, mimeType)
	}

	if d.CanShareFiles() {
		if err := d.ShareFile(data, filename, mimeType, title, text); err == nil {
			return nil
		} else {
			log.Warn().Err(err).Msg("share-as-file failed, falling back to download")
		}
	}
	return d.Download(data, filename, mimeType)
}

// DirSaver is a Deliverer that writes downloads into a directory. It carries
// no share capability.
type DirSaver struct {
	Dir string
}

// Download writes the payload to Dir/filename.
func (s DirSaver) Download(data []byte, filename, _ string) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, filename), data, 0o644)
}

// CanShareFiles reports that DirSaver cannot share.
func (s DirSaver) CanShareFiles() bool { return false }

// ShareFile always fails for DirSaver.
func (s DirSaver) ShareFile(_ []byte, _, _, _, _ string) error {
	return ErrShareUnavailable
}

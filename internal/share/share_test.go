package share

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeliverer struct {
	canShare  bool
	shareErr  error
	shared    int
	downloads int
}

func (f *fakeDeliverer) Download(data []byte, filename, mimeType string) error {
	f.downloads++
	return nil
}

func (f *fakeDeliverer) CanShareFiles() bool { return f.canShare }

func (f *fakeDeliverer) ShareFile(data []byte, filename, mimeType, title, text string) error {
	f.shared++
	return f.shareErr
}

func deliver(t *testing.T, d Deliverer, mode Mode) error {
	t.Helper()
	return Deliver(d, []byte("csv"), "report.csv", "text/csv", mode, "title", "text", zerolog.Nop())
}

func TestDownloadModeNeverShares(t *testing.T) {
	d := &fakeDeliverer{canShare: true}
	require.NoError(t, deliver(t, d, ModeDownload))
	assert.Equal(t, 1, d.downloads)
	assert.Equal(t, 0, d.shared)
}

func TestAutoPrefersShare(t *testing.T) {
	d := &fakeDeliverer{canShare: true}
	require.NoError(t, deliver(t, d, ModeAuto))
	assert.Equal(t, 1, d.shared)
	assert.Equal(t, 0, d.downloads)
}

func TestEmailFallsBackWhenShareUnavailable(t *testing.T) {
	d := &fakeDeliverer{canShare: false}
	require.NoError(t, deliver(t, d, ModeEmail))
	assert.Equal(t, 0, d.shared)
	assert.Equal(t, 1, d.downloads)
}

func TestAutoFallsBackWhenShareFails(t *testing.T) {
	d := &fakeDeliverer{canShare: true, shareErr: errors.New("user cancelled")}
	require.NoError(t, deliver(t, d, ModeAuto))
	assert.Equal(t, 1, d.shared)
	assert.Equal(t, 1, d.downloads)
}

func TestDirSaverWritesFile(t *testing.T) {
	dir := t.TempDir()
	s := DirSaver{Dir: filepath.Join(dir, "exports")}

	require.NoError(t, s.Download([]byte("inhoud"), "report.csv", "text/csv"))

	b, err := os.ReadFile(filepath.Join(dir, "exports", "report.csv"))
	require.NoError(t, err)
	assert.Equal(t, "inhoud", string(b))

	assert.False(t, s.CanShareFiles())
	assert.ErrorIs(t, s.ShareFile(nil, "x", "y", "", ""), ErrShareUnavailable)
}

package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "github.com/Zachdehooge/distbuilder/internal/errors"
)

func TestZipSingleEntryByteIdentical(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "NOAARadarDownloader.exe")
	payload := []byte("MZ\x90\x00 fake executable payload")
	require.NoError(t, os.WriteFile(exe, payload, 0o755))

	dest := filepath.Join(dir, "NOAARadarDownloader.zip")
	require.NoError(t, Zip(exe, dest, "commit abc1234"))

	zr, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer zr.Close()

	require.Len(t, zr.File, 1, "archive must hold exactly one entry")
	require.Equal(t, "NOAARadarDownloader.exe", zr.File[0].Name)
	require.Equal(t, "commit abc1234", zr.Comment)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, payload, got, "decompressed content must match the executable")
}

func TestZipOverwritesPriorArchive(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "app")
	dest := filepath.Join(dir, "app.zip")

	require.NoError(t, os.WriteFile(exe, []byte("first build"), 0o755))
	require.NoError(t, Zip(exe, dest, ""))

	require.NoError(t, os.WriteFile(exe, []byte("second build with different size"), 0o755))
	require.NoError(t, Zip(exe, dest, ""))

	zr, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer zr.Close()

	require.Len(t, zr.File, 1)
	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, []byte("second build with different size"), got)
}

func TestZipMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Zip(filepath.Join(dir, "absent"), filepath.Join(dir, "out.zip"), "")
	require.Error(t, err)

	var be *derrors.BuildError
	require.ErrorAs(t, err, &be)
	require.Equal(t, derrors.CategoryArchive, be.Category)
}

// Package archive produces the distributable zip next to the built executable.
package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	derrors "github.com/Zachdehooge/distbuilder/internal/errors"
)

// Zip compresses the file at srcPath into a single-entry zip archive at
// destPath, overwriting any prior archive of the same name. The entry is
// stored under the file's base name with no directory structure. comment is
// embedded as the archive comment when non-empty (e.g. the source commit).
func Zip(srcPath, destPath, comment string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryArchive, derrors.SeverityError, "failed to open archive source")
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryArchive, derrors.SeverityError, "failed to stat archive source")
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryArchive, derrors.SeverityError, "failed to create archive")
	}
	defer dest.Close()

	zw := zip.NewWriter(dest)
	if comment != "" {
		if err := zw.SetComment(comment); err != nil {
			return derrors.Wrap(err, derrors.CategoryArchive, derrors.SeverityError, "failed to set archive comment")
		}
	}

	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryArchive, derrors.SeverityError, "failed to build archive header")
	}
	hdr.Name = filepath.Base(srcPath)
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryArchive, derrors.SeverityError, "failed to add archive entry")
	}
	if _, err := io.Copy(w, src); err != nil {
		return derrors.Wrap(err, derrors.CategoryArchive, derrors.SeverityError, "failed to write archive entry")
	}

	if err := zw.Close(); err != nil {
		return derrors.Wrap(err, derrors.CategoryArchive, derrors.SeverityError, "failed to finalize archive")
	}
	return dest.Close()
}

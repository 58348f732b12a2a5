package kml

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/lfvdata/atcviz/internal/scene"
)

// DocEntry is the name of the KML document inside a KMZ archive.
const DocEntry = "doc.kml"

// Writer writes scene documents to disk.
type Writer struct {
	// IconsDir holds the icon images referenced by styles. Icons that are
	// missing from it are left out of the archive with a warning.
	IconsDir string
	// KeepKML also writes the bare document next to each KMZ.
	KeepKML bool
	Logger  *slog.Logger
}

// NewWriter returns a writer bundling icons from iconsDir.
func NewWriter(iconsDir string, keepKML bool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{IconsDir: iconsDir, KeepKML: keepKML, Logger: logger}
}

// KMZPath returns the output path for an input document: its base name with
// a .kmz extension, in outDir.
func KMZPath(outDir, input string) string {
	base := path.Base(filepath.ToSlash(input))
	return filepath.Join(outDir, strings.TrimSuffix(base, path.Ext(base))+".kmz")
}

// WriteKMZ writes doc and its icons to a KMZ archive at dst. The archive is
// assembled in a temporary file and renamed into place, so a failed write
// never leaves a partial archive behind.
func (w *Writer) WriteKMZ(dst string, doc *scene.Document) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".kmz-*")
	if err != nil {
		return fmt.Errorf("create kmz: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	zw := zip.NewWriter(tmp)
	entry, err := zw.Create(DocEntry)
	if err != nil {
		return fmt.Errorf("create %s: %w", DocEntry, err)
	}
	if err = Encode(entry, doc); err != nil {
		return err
	}
	for _, href := range doc.Icons() {
		if err = w.addIcon(zw, href); err != nil {
			return err
		}
	}
	if err = zw.Close(); err != nil {
		return fmt.Errorf("finish kmz: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close kmz: %w", err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("rename kmz: %w", err)
	}

	if w.KeepKML {
		kmlPath := strings.TrimSuffix(dst, filepath.Ext(dst)) + ".kml"
		if err := w.WriteKML(kmlPath, doc); err != nil {
			w.Logger.Warn("Failed to keep KML copy", "path", kmlPath, "error", err)
		}
	}
	return nil
}

// WriteKML writes the bare KML document to dst.
func (w *Writer) WriteKML(dst string, doc *scene.Document) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create kml: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := Encode(bw, doc); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (w *Writer) addIcon(zw *zip.Writer, href string) error {
	src := filepath.Join(w.IconsDir, path.Base(href))
	f, err := os.Open(src)
	if os.IsNotExist(err) {
		w.Logger.Warn("Icon not found, leaving it out of the archive", "icon", href, "path", src)
		return nil
	}
	if err != nil {
		return fmt.Errorf("open icon %s: %w", href, err)
	}
	defer f.Close()

	entry, err := zw.Create(href)
	if err != nil {
		return fmt.Errorf("create %s: %w", href, err)
	}
	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("copy icon %s: %w", href, err)
	}
	return nil
}

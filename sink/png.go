package sink

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/flavioheleno/slmsim/grayframe"
)

const (
	// DefaultDirName is the subdirectory of the temp directory used by
	// PNGFile when no directory is given.
	DefaultDirName = "SLM"
	// DefaultFileName is the file written by PNGFile.
	DefaultFileName = "SLM_image.png"
)

// PNGFile writes every rendered frame to the same 8-bit grayscale PNG file,
// creating its directory if absent. Samples are written verbatim.
type PNGFile struct {
	Dir  string
	Name string
}

// NewPNGFile returns a sink writing SLM_image.png in dir. An empty dir
// selects the SLM subdirectory of os.TempDir().
func NewPNGFile(dir string) *PNGFile {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), DefaultDirName)
	}
	return &PNGFile{Dir: dir, Name: DefaultFileName}
}

// Path returns the file written by Render.
func (p *PNGFile) Path() string {
	return filepath.Join(p.Dir, p.Name)
}

// Render implements Sink.
func (p *PNGFile) Render(f *grayframe.Frame) error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("sink: create directory: %w", err)
	}
	// Encode into a temp file in the same directory, then rename over the target.
	tmp, err := os.CreateTemp(p.Dir, p.Name+".*.tmp")
	if err != nil {
		return fmt.Errorf("sink: create file: %w", err)
	}
	if err := EncodePNG(tmp, f); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("sink: close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.Path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("sink: rename file: %w", err)
	}
	return nil
}

func (p *PNGFile) String() string {
	return p.Path()
}

// EncodePNG writes f to w as an 8-bit grayscale PNG.
func EncodePNG(w io.Writer, f *grayframe.Frame) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, f.Gray()); err != nil {
		return fmt.Errorf("sink: encode png: %w", err)
	}
	return nil
}

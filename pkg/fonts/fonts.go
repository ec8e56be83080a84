// Package fonts provides the font stacks used for plate labels and
// optional embedding of a font file into SVG output.
//
// Nameplates are set in STZhongsong when the viewer has it installed, with
// CJK serif fallbacks. A font file given on the command line (or in
// render.font_file) can be embedded as a base64 @font-face rule, so that
// rsvg-convert and browsers without the font still draw the intended face.
package fonts

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/nameplate/pkg/errors"
)

// FontFamily is the CSS font-family name of the plate face.
const FontFamily = "STZhongsong"

// FallbackFontFamily is the full stack used when no font is embedded.
const FallbackFontFamily = `'STZhongsong', '华文中宋', 'Songti SC', 'SimSun', 'Noto Serif CJK SC', serif`

// SansFontFamily is used for board chrome (counters, captions).
const SansFontFamily = `'PingFang SC', 'Microsoft YaHei', 'Noto Sans CJK SC', 'Helvetica Neue', Arial, sans-serif`

var formats = map[string]string{
	".ttf":   "truetype",
	".otf":   "opentype",
	".woff":  "woff",
	".woff2": "woff2",
}

// Font is a loaded font file.
type Font struct {
	Family string
	Format string // CSS format() hint: truetype, opentype, woff, woff2
	data   []byte

	b64Once sync.Once
	b64     string
}

// New wraps font data already in memory.
func New(family, format string, data []byte) *Font {
	return &Font{Family: family, Format: format, data: data}
}

// Load reads a .ttf, .otf, .woff or .woff2 file. The family is
// FontFamily, so the file replaces the system face in every stack.
func Load(path string) (*Font, error) {
	format, ok := formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "font %s: unsupported type (want .ttf, .otf, .woff or .woff2)", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font %s", path)
		}
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return New(FontFamily, format, data), nil
}

// Data returns the raw font bytes.
func (f *Font) Data() []byte { return f.data }

// Base64 returns the font data base64-encoded. The result is cached after
// the first call.
func (f *Font) Base64() string {
	f.b64Once.Do(func() {
		f.b64 = base64.StdEncoding.EncodeToString(f.data)
	})
	return f.b64
}

// FaceCSS returns an @font-face rule carrying the font as a data URL.
func (f *Font) FaceCSS() string {
	return fmt.Sprintf("@font-face { font-family: '%s'; src: url(data:font/%s;base64,%s) format('%s'); font-weight: 300; font-display: swap; }",
		f.Family, mimeSubtype(f.Format), f.Base64(), f.Format)
}

func mimeSubtype(format string) string {
	switch format {
	case "truetype":
		return "ttf"
	case "opentype":
		return "otf"
	}
	return format
}

// Stack returns family followed by the default fallbacks. An empty family
// yields FallbackFontFamily unchanged.
func Stack(family string) string {
	family = strings.TrimSpace(family)
	if family == "" || family == FontFamily {
		return FallbackFontFamily
	}
	return fmt.Sprintf("'%s', %s", strings.Trim(family, `'"`), FallbackFontFamily)
}

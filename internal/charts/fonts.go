package charts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/golang/freetype/truetype"
)

// ErrFontMissingGlyphs is returned when a font cannot draw the chart labels
var ErrFontMissingGlyphs = errors.New("font lacks CJK glyphs")

// requiredGlyphs holds characters every chart label set needs
const requiredGlyphs = "疫情确诊疑似治愈死亡时间例人数"

// systemCJKFonts are TrueType fonts with Han coverage found on common systems.
// Collections (.ttc) load their first face.
var systemCJKFonts = []string{
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
	"/usr/share/fonts/wqy-microhei/wqy-microhei.ttc",
	"/usr/share/fonts/wenquanyi/wqy-microhei/wqy-microhei.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/google-droid/DroidSansFallbackFull.ttf",
	"/usr/share/fonts/truetype/arphic/uming.ttc",
	"/usr/share/fonts/truetype/arphic/ukai.ttc",
	"/System/Library/Fonts/STHeiti Medium.ttc",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	`C:\Windows\Fonts\simhei.ttf`,
	`C:\Windows\Fonts\msyh.ttc`,
}

// ResolveFont loads the chart font. An explicit path must exist and cover
// CJK glyphs. With no path, the first usable system font is returned, or
// nil when there is none.
func ResolveFont(path string) (*truetype.Font, error) {
	return resolveFont(path, systemCJKFonts)
}

func resolveFont(path string, candidates []string) (*truetype.Font, error) {
	if path != "" {
		f, err := LoadFont(path)
		if err != nil {
			return nil, err
		}
		if !HasGlyphs(f, requiredGlyphs) {
			return nil, fmt.Errorf("%w: %s", ErrFontMissingGlyphs, path)
		}
		return f, nil
	}

	for _, candidate := range candidates {
		f, err := LoadFont(candidate)
		if err != nil {
			continue
		}
		if HasGlyphs(f, requiredGlyphs) {
			return f, nil
		}
	}
	return nil, nil
}

// LoadFont parses a TrueType font or the first face of a collection
func LoadFont(path string) (*truetype.Font, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("font %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

// HasGlyphs reports whether f maps every rune of text to a glyph
func HasGlyphs(f *truetype.Font, text string) bool {
	if f == nil {
		return false
	}
	for _, r := range text {
		if f.Index(r) == 0 {
			return false
		}
	}
	return true
}

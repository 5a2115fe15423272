package gs

import "fmt"

// Quality preset names accepted by BuildArgs. They mirror the CLI presets.
const (
	PresetExtreme  = "extreme"
	PresetStrong   = "strong"
	PresetBalanced = "balanced"
	PresetHigh     = "high"
)

// pdfSettings maps a preset to the Ghostscript -dPDFSETTINGS device preset.
var pdfSettings = map[string]string{
	PresetExtreme:  "/screen",
	PresetStrong:   "/screen",
	PresetBalanced: "/ebook",
	PresetHigh:     "/printer",
}

// BuildArgs returns the complete Ghostscript argument list for one input file.
// The preset must be one of the Preset constants; anything else panics, since
// presets are validated at the configuration boundary.
func BuildArgs(preset, inputPath, outputPath string) []string {
	settings, ok := pdfSettings[preset]
	if !ok {
		panic(fmt.Sprintf("gs: unknown quality preset %q", preset))
	}

	args := []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS=" + settings,
	}
	args = append(args, tuningArgs(preset)...)
	args = append(args,
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-sOutputFile="+outputPath,
		inputPath,
	)
	return args
}

// tuningArgs returns the per-preset image and font handling flags. Extreme and
// strong force aggressive downsampling and low JPEG quality factors; balanced
// and high lean on the device preset itself.
func tuningArgs(preset string) []string {
	switch preset {
	case PresetExtreme:
		return downsampleArgs(72, 150, 20)
	case PresetStrong:
		return downsampleArgs(96, 180, 35)
	default:
		return []string{
			"-dDetectDuplicateImages=true",
			"-dSubsetFonts=true",
			"-dCompressFonts=true",
		}
	}
}

func downsampleArgs(imageRes, monoRes, jpegQuality int) []string {
	return []string{
		"-dDownsampleColorImages=true",
		"-dColorImageDownsampleType=/Average",
		fmt.Sprintf("-dColorImageResolution=%d", imageRes),
		"-dDownsampleGrayImages=true",
		"-dGrayImageDownsampleType=/Average",
		fmt.Sprintf("-dGrayImageResolution=%d", imageRes),
		"-dDownsampleMonoImages=true",
		"-dMonoImageDownsampleType=/Subsample",
		fmt.Sprintf("-dMonoImageResolution=%d", monoRes),
		"-dAutoFilterColorImages=false",
		"-dColorImageFilter=/DCTEncode",
		"-dAutoFilterGrayImages=false",
		"-dGrayImageFilter=/DCTEncode",
		fmt.Sprintf("-dJPEGQ=%d", jpegQuality),
		"-dDetectDuplicateImages=true",
		"-dSubsetFonts=true",
		"-dCompressFonts=true",
	}
}

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CollectJobs expands the input path into one Job per PDF file.
//
// A directory input enumerates its *.pdf files non-recursively; outputPath
// (when set) is treated as the destination directory. A file input produces
// one job; an outputPath ending in .pdf is used verbatim, anything else is a
// destination directory. Destinations default to "<stem><suffix>.pdf" next
// to the source; collision handling happens at write time.
func CollectJobs(inputPath, outputPath, suffix string, quality Quality, choice Choice) ([]Job, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, inputPath)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(inputPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, inputPath)
		}
		outDir := outputPath
		if outDir == "" {
			outDir = inputPath
		}

		var jobs []Job
		for _, e := range entries {
			if e.IsDir() || !isPDF(e.Name()) {
				continue
			}
			src := filepath.Join(inputPath, e.Name())
			jobs = append(jobs, Job{
				Source:  src,
				Dest:    defaultDest(src, outDir, suffix),
				Quality: quality,
				Engine:  choice,
			})
		}
		if len(jobs) == 0 {
			return nil, fmt.Errorf("%w in %s", ErrNoPDFs, inputPath)
		}
		sort.Slice(jobs, func(i, j int) bool { return jobs[i].Source < jobs[j].Source })
		return jobs, nil
	}

	if !isPDF(inputPath) {
		return nil, fmt.Errorf("%w: not a pdf file: %s", ErrInvalidInput, inputPath)
	}

	if outputPath != "" && isPDF(outputPath) {
		return []Job{{Source: inputPath, Dest: outputPath, Quality: quality, Engine: choice}}, nil
	}

	outDir := outputPath
	if outDir == "" {
		outDir = filepath.Dir(inputPath)
	}
	return []Job{{
		Source:  inputPath,
		Dest:    defaultDest(inputPath, outDir, suffix),
		Quality: quality,
		Engine:  choice,
	}}, nil
}

func defaultDest(src, outDir, suffix string) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+suffix+".pdf")
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

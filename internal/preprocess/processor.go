package preprocess

import (
	"context"
	"runtime"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"argprep/internal/model"
)

// MinContentChars is the minimum length of extracted text, after trimming.
const MinContentChars = 10

// ProcessFile runs admission, extraction, normalization, detection and
// segmentation over one file. The first failure is returned as a *PreprocessError.
func ProcessFile(f model.UploadedFile) (model.FileResult, error) {
	size := int64(len(f.Content))
	if err := Admit(f.Filename, size); err != nil {
		return model.FileResult{}, &PreprocessError{Filename: f.Filename, Err: err}
	}
	kind, err := KindForFilename(f.Filename)
	if err != nil {
		return model.FileResult{}, &PreprocessError{Filename: f.Filename, Err: err}
	}
	raw, err := Extract(f.Content, kind)
	if err != nil {
		return model.FileResult{}, &PreprocessError{Filename: f.Filename, Err: err}
	}
	if utf8.RuneCountInString(strings.TrimSpace(raw)) < MinContentChars {
		return model.FileResult{}, &PreprocessError{Filename: f.Filename, Err: ErrInsufficientContent}
	}
	return Analyze(f.Filename, raw, size), nil
}

// Analyze runs normalization, detection and segmentation over already
// extracted text and computes the file metadata. size is the raw byte length.
func Analyze(filename, raw string, size int64) model.FileResult {
	cleaned := Clean(raw)
	format := Detect(cleaned)
	points := Segment(cleaned, format)
	return model.FileResult{
		Filename:    filename,
		RawText:     raw,
		CleanedText: cleaned,
		Format:      format,
		Points:      points,
		Metadata: model.FileMetadata{
			WordCount:  len(strings.Fields(cleaned)),
			CharCount:  utf8.RuneCountInString(cleaned),
			PointCount: len(points),
			Format:     format.String(),
			FileSizeKB: float64(size) / 1024,
		},
	}
}

// processFile is swapped in tests to observe scheduling.
var processFile = ProcessFile

// ProcessSide processes every file of one batch and folds them into a side record.
//
// Files are processed concurrently but the batch is all-or-nothing: if any file
// fails, the error of the earliest failing file (in submission order) is returned
// and no partial result is produced. Files after a failure are skipped once the
// group is cancelled; files before it still run so the earliest error wins.
func ProcessSide(ctx context.Context, files []model.UploadedFile, side model.Side) (model.SideResult, error) {
	if len(files) == 0 {
		return model.SideResult{}, ErrNoFiles
	}

	results := make([]model.FileResult, len(files))
	errs := make([]error, len(files))

	var firstFailed atomic.Int64
	firstFailed.Store(int64(len(files)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range files {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if gctx.Err() != nil && int64(i) > firstFailed.Load() {
				return nil
			}
			results[i], errs[i] = processFile(files[i])
			if errs[i] == nil {
				return nil
			}
			for {
				cur := firstFailed.Load()
				if int64(i) >= cur || firstFailed.CompareAndSwap(cur, int64(i)) {
					break
				}
			}
			return errs[i]
		})
	}

	if err := g.Wait(); err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return model.SideResult{}, cerr
		}
		for _, e := range errs {
			if e != nil {
				return model.SideResult{}, e
			}
		}
		return model.SideResult{}, err
	}
	return model.NewSideResult(side, results), nil
}

package preprocess

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argprep/internal/model"
)

const numberedBrief = "1. First point text.\n2. Second point text.\n3. Third point."

func TestProcessFile(t *testing.T) {
	res, err := ProcessFile(model.UploadedFile{Filename: "brief.txt", Side: model.SideA, Content: []byte(numberedBrief)})
	require.NoError(t, err)

	assert.Equal(t, "brief.txt", res.Filename)
	assert.Equal(t, numberedBrief, res.RawText)
	assert.Equal(t, numberedBrief, res.CleanedText)
	assert.Equal(t, model.Numbered, res.Format)
	assert.Equal(t, points("1", "First point text.", "2", "Second point text.", "3", "Third point."), res.Points)

	assert.Equal(t, 12, res.Metadata.WordCount)
	assert.Equal(t, utf8.RuneCountInString(res.CleanedText), res.Metadata.CharCount)
	assert.Equal(t, 3, res.Metadata.PointCount)
	assert.Equal(t, "numbered", res.Metadata.Format)
	assert.InDelta(t, float64(len(numberedBrief))/1024, res.Metadata.FileSizeKB, 1e-9)
}

func TestProcessFile_Deterministic(t *testing.T) {
	f := model.UploadedFile{Filename: "brief.txt", Content: []byte("- one\n- two\n\n- three continues\nhere")}
	first, err := ProcessFile(f)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ProcessFile(f)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestProcessFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    model.UploadedFile
		wantErr error
	}{
		{
			name:    "unsupported extension",
			file:    model.UploadedFile{Filename: "brief.md", Content: []byte(numberedBrief)},
			wantErr: ErrUnsupportedExtension,
		},
		{
			name:    "insufficient content",
			file:    model.UploadedFile{Filename: "brief.txt", Content: []byte("   too short  ")},
			wantErr: ErrInsufficientContent,
		},
		{
			name:    "empty file",
			file:    model.UploadedFile{Filename: "brief.txt"},
			wantErr: ErrInsufficientContent,
		},
		{
			name:    "unreadable pdf",
			file:    model.UploadedFile{Filename: "brief.pdf", Content: []byte("garbage bytes that are no pdf")},
			wantErr: ErrUnreadableDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProcessFile(tt.file)
			assert.ErrorIs(t, err, tt.wantErr)

			var pe *PreprocessError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.file.Filename, pe.Filename)
		})
	}
}

func TestProcessSide(t *testing.T) {
	files := []model.UploadedFile{
		{Filename: "one.txt", Content: []byte(numberedBrief)},
		{Filename: "two.txt", Content: []byte("a) Lettered point one\nb) Lettered point two")},
		{Filename: "three.txt", Content: []byte("1. Again numbered here")},
	}

	res, err := ProcessSide(context.Background(), files, model.SideB)
	require.NoError(t, err)

	assert.Equal(t, model.SideB, res.Side)
	require.Len(t, res.Files, 3)

	var want []model.ArgumentPoint
	for _, f := range res.Files {
		want = append(want, f.Points...)
	}
	assert.Equal(t, want, res.AllPoints)
	assert.Equal(t, "First point text.", res.AllPoints[0].Content)
	assert.Equal(t, "Lettered point one", res.AllPoints[3].Content)
	assert.Equal(t, "Again numbered here", res.AllPoints[5].Content)

	assert.Equal(t, numberedBrief+"\n\n"+"a) Lettered point one\nb) Lettered point two"+"\n\n"+"1. Again numbered here", res.CombinedText)
	assert.Equal(t, 3, res.Summary.FileCount)
	assert.Equal(t, 6, res.Summary.TotalPoints)
	assert.Equal(t, res.Files[0].Metadata.WordCount+res.Files[1].Metadata.WordCount+res.Files[2].Metadata.WordCount, res.Summary.TotalWords)
	assert.ElementsMatch(t, []model.EnumerationFormat{model.Numbered, model.Lettered}, res.Summary.FormatsUsed)
}

func TestProcessSide_AllOrNothing(t *testing.T) {
	files := []model.UploadedFile{
		{Filename: "ok.txt", Content: []byte(numberedBrief)},
		{Filename: "bad.exe", Content: []byte(numberedBrief)},
		{Filename: "short.txt", Content: []byte("tiny")},
	}

	res, err := ProcessSide(context.Background(), files, model.SideA)
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
	var pe *PreprocessError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bad.exe", pe.Filename)
	assert.Empty(t, res.Files)
	assert.Empty(t, res.AllPoints)
}

func TestProcessSide_StopsAfterFailure(t *testing.T) {
	var calls atomic.Int64
	orig := processFile
	processFile = func(f model.UploadedFile) (model.FileResult, error) {
		calls.Add(1)
		if f.Filename == "bad.exe" {
			return model.FileResult{}, &PreprocessError{Filename: f.Filename, Err: ErrUnsupportedExtension}
		}
		time.Sleep(2 * time.Millisecond)
		return ProcessFile(f)
	}
	t.Cleanup(func() { processFile = orig })

	files := []model.UploadedFile{{Filename: "bad.exe", Content: []byte(numberedBrief)}}
	for i := 0; i < runtime.GOMAXPROCS(0)*4+200; i++ {
		files = append(files, model.UploadedFile{Filename: fmt.Sprintf("ok-%d.txt", i), Content: []byte(numberedBrief)})
	}

	_, err := ProcessSide(context.Background(), files, model.SideA)
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
	assert.Less(t, calls.Load(), int64(len(files)))
}

func TestProcessSide_EarliestFailureWins(t *testing.T) {
	errSlow := errors.New("slow failure")
	errFast := errors.New("fast failure")
	orig := processFile
	processFile = func(f model.UploadedFile) (model.FileResult, error) {
		switch f.Filename {
		case "slow.txt":
			time.Sleep(20 * time.Millisecond)
			return model.FileResult{}, errSlow
		case "fast.txt":
			return model.FileResult{}, errFast
		}
		return ProcessFile(f)
	}
	t.Cleanup(func() { processFile = orig })

	files := []model.UploadedFile{
		{Filename: "ok.txt", Content: []byte(numberedBrief)},
		{Filename: "slow.txt"},
		{Filename: "fast.txt"},
	}

	for i := 0; i < 3; i++ {
		_, err := ProcessSide(context.Background(), files, model.SideA)
		assert.ErrorIs(t, err, errSlow)
	}
}

func TestProcessSide_NoFiles(t *testing.T) {
	_, err := ProcessSide(context.Background(), nil, model.SideA)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestProcessSide_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ProcessSide(ctx, []model.UploadedFile{{Filename: "one.txt", Content: []byte(numberedBrief)}}, model.SideA)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze(t *testing.T) {
	res := Analyze("argument.txt", "First paragraph of the argument.\n\nSecond paragraph.", 0)
	assert.Equal(t, model.Paragraph, res.Format)
	assert.Len(t, res.Points, 2)
	assert.Equal(t, 7, res.Metadata.WordCount)
	assert.Equal(t, 0.0, res.Metadata.FileSizeKB)
}

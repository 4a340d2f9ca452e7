package dash2pdf

// Notes:
// - printer.Print runs with a zero settle delay except where the delay
//   itself is under test.
// - A failed print must leave nothing at the target path.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func renderedTab(t *testing.T, b *fakeBrowser, policy PrunePolicy) *fakeTab {
	t.Helper()
	dash := dashboardTab(t, b)
	r := newTestRenderer()
	r.prune = policy
	_, err := r.Render(context.Background(), dash, scenarioParams(NoTab))
	require.NoError(t, err)
	return dash
}

// ---------------------------------------------------------------------------
// TestPrint - PDF validation and atomic write
// ---------------------------------------------------------------------------

func TestPrint(t *testing.T) {
	t.Parallel()

	b := newFakeBrowser()
	dash := renderedTab(t, b, DefaultPrunePolicy())
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "q4report.pdf")

	core, logs := observer.New(zap.WarnLevel)
	p := &printer{prune: DefaultPrunePolicy(), logger: zap.New(core)}

	out, err := p.Print(context.Background(), dash, Dimensions{Width: 1280, Height: 2400}, pdfPath, filepath.Join(dir, "q4report.html"))
	require.NoError(t, err)

	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, b.pdfBytes, data)
	assert.Equal(t, len(data), out.bytes)
	assert.Empty(t, out.htmlPath)
	assert.Zero(t, logs.Len(), "no warnings expected: %v", logs.All())
	assert.NoFileExists(t, filepath.Join(dir, "q4report.html"))
	assert.Contains(t, b.log(), "tab1 pdf 1280x2400")
}

func TestPrint_HTMLSnapshot(t *testing.T) {
	t.Parallel()

	b := newFakeBrowser()
	dash := renderedTab(t, b, DefaultPrunePolicy())
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "q4report.html")

	p := &printer{prune: DefaultPrunePolicy(), htmlSnapshot: true, logger: zap.NewNop()}
	out, err := p.Print(context.Background(), dash, Dimensions{Width: 1280, Height: 2400}, filepath.Join(dir, "q4report.pdf"), htmlPath)
	require.NoError(t, err)

	assert.Equal(t, htmlPath, out.htmlPath)
	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "revenue")
	assert.NotContains(t, string(html), "dashboard-header")
}

func TestPrint_WarnsOnLeftoverChrome(t *testing.T) {
	t.Parallel()

	b := newFakeBrowser()
	// Render prunes nothing, but the printer checks the default policy.
	dash := renderedTab(t, b, PrunePolicy{})

	core, logs := observer.New(zap.WarnLevel)
	p := &printer{prune: DefaultPrunePolicy(), logger: zap.New(core)}
	_, err := p.Print(context.Background(), dash, Dimensions{Width: 1280, Height: 2400}, filepath.Join(t.TempDir(), "x.pdf"), "")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("chrome elements remain after pruning").Len())
}

func TestPrint_PageSizeMismatchWarns(t *testing.T) {
	t.Parallel()

	b := newFakeBrowser()
	b.pdfBytes = minimalPDF(612, 792)
	dash := renderedTab(t, b, DefaultPrunePolicy())

	core, logs := observer.New(zap.WarnLevel)
	p := &printer{prune: DefaultPrunePolicy(), logger: zap.New(core)}
	_, err := p.Print(context.Background(), dash, Dimensions{Width: 1280, Height: 2400}, filepath.Join(t.TempDir(), "x.pdf"), "")
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("page size differs from measured content").Len())
}

func TestPrint_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		script  func(b *fakeBrowser)
		path    func(dir string) string
		wantErr error
	}{
		{
			name:    "print fails",
			script:  func(b *fakeBrowser) { b.fail["pdf"] = errors.New("Printing failed") },
			wantErr: ErrPDFGeneration,
		},
		{
			name:    "not a pdf",
			script:  func(b *fakeBrowser) { b.pdfBytes = []byte("<html>session expired</html>") },
			wantErr: ErrPDFGeneration,
		},
		{
			name: "reports path is a file",
			path: func(dir string) string {
				blocker := filepath.Join(dir, "reports")
				_ = os.WriteFile(blocker, []byte("x"), 0o600)
				return filepath.Join(blocker, "q4report.pdf")
			},
			wantErr: ErrWritePDF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newFakeBrowser()
			if tt.script != nil {
				tt.script(b)
			}
			dash := renderedTab(t, b, DefaultPrunePolicy())
			dir := t.TempDir()
			pdfPath := filepath.Join(dir, "q4report.pdf")
			if tt.path != nil {
				pdfPath = tt.path(dir)
			}

			p := &printer{prune: DefaultPrunePolicy(), logger: zap.NewNop()}
			_, err := p.Print(context.Background(), dash, Dimensions{Width: 1280, Height: 2400}, pdfPath, "")

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoFileExists(t, pdfPath)
		})
	}
}

// ---------------------------------------------------------------------------
// TestSettle - Delay and cancellation
// ---------------------------------------------------------------------------

func TestSettle(t *testing.T) {
	t.Parallel()

	t.Run("zero returns immediately", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, settle(context.Background(), 0))
	})

	t.Run("waits the delay", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		require.NoError(t, settle(context.Background(), 20*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("cancellation aborts", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, settle(ctx, time.Hour), context.Canceled)
	})
}

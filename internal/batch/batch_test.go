package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/graemejk/StA-Slides/internal/providers"
	"github.com/graemejk/StA-Slides/internal/records"
)

// fakeProvider returns canned responses keyed by call order
type fakeProvider struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (f *fakeProvider) AnalyzeImage(ctx context.Context, config providers.Config, img providers.Image) (string, error) {
	idx := f.calls
	f.calls++
	f.prompts = append(f.prompts, config.Prompt)

	if idx < len(f.errs) && f.errs[idx] != nil {
		return "", f.errs[idx]
	}
	if idx < len(f.responses) {
		return f.responses[idx], nil
	}
	return `{"EADUnitTitle": "", "EADScope+Content": "", "EADUnitDate": ""}`, nil
}

func writeImages(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("not a real image"), 0644); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", name, err)
		}
	}
}

func newRunner(p providers.Provider) *Runner {
	return &Runner{
		Provider:  p,
		Assembler: records.NewAssembler(nil),
		Model:     "gemini-2.5-flash",
		Prompt:    SlidePrompt,
		Delay:     0,
	}
}

func TestRunProcessesAllImages(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "ms1-1.jpeg", "ms1-2.jpeg", "ms1-3.png")

	p := &fakeProvider{responses: []string{
		`{"EADUnitTitle": "first", "EADScope+Content": "d1", "EADUnitDate": "1970"}`,
		`{"EADUnitTitle": "second", "EADScope+Content": "d2", "EADUnitDate": ""}`,
		`{"EADUnitTitle": "third", "EADScope+Content": "d3", "EADUnitDate": "1984"}`,
	}}

	results, err := newRunner(p).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if p.calls != 3 {
		t.Errorf("Expected 3 model calls, got %d", p.calls)
	}

	// Order follows sorted filenames
	if results[0].Filename != "ms1-1.jpeg" || results[2].Filename != "ms1-3.png" {
		t.Errorf("Unexpected result order: %s, %s", results[0].Filename, results[2].Filename)
	}
	if len(p.prompts) != 3 || p.prompts[0] != SlidePrompt {
		t.Error("Expected every call to carry the slide prompt")
	}
	if results[0].EADUnitTitle != "first" {
		t.Errorf("Expected title 'first', got %q", results[0].EADUnitTitle)
	}
	if results[0].EADUnitID != "ms1" {
		t.Errorf("Expected identifier ms1, got %q", results[0].EADUnitID)
	}
	if results[0].ColObjectType != "Photograph" {
		t.Errorf("Expected default object type, got %q", results[0].ColObjectType)
	}
}

func TestRunTestModeLimit(t *testing.T) {
	dir := t.TempDir()
	var names []string
	for i := 0; i < 10; i++ {
		names = append(names, fmt.Sprintf("ms2-%02d.jpeg", i))
	}
	writeImages(t, dir, names...)

	p := &fakeProvider{}
	r := newRunner(p)
	r.Limit = 1

	results, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 1 {
		t.Errorf("Expected exactly 1 result, got %d", len(results))
	}
	if p.calls != 1 {
		t.Errorf("Expected exactly 1 model call, got %d", p.calls)
	}
	if results[0].Filename != "ms2-00.jpeg" {
		t.Errorf("Expected first image processed, got %s", results[0].Filename)
	}
}

func TestRunContinuesPastFailure(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "ms3-1.jpeg", "ms3-2.jpeg", "ms3-3.jpeg")

	p := &fakeProvider{
		responses: []string{
			`{"EADUnitTitle": "ok1", "EADScope+Content": "", "EADUnitDate": ""}`,
			"",
			`{"EADUnitTitle": "ok3", "EADScope+Content": "", "EADUnitDate": ""}`,
		},
		errs: []error{nil, errors.New("gemini quota exhausted (status 429): rate limit"), nil},
	}

	results, err := newRunner(p).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	if results[1].Status != records.StatusError {
		t.Errorf("Expected failed status for second item, got %q", results[1].Status)
	}
	if results[1].Error == "" {
		t.Error("Expected failure marker on second item")
	}
	if results[1].EADUnitTitle != "" {
		t.Error("Failed item should carry no model fields")
	}
	if results[2].Status != records.StatusSuccess || results[2].EADUnitTitle != "ok3" {
		t.Error("Batch should continue processing after a failed item")
	}
}

func TestRunProseResponseFlagged(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "ms4-1.jpeg")

	prose := "A stone bridge over a burn, photographed in late afternoon light."
	p := &fakeProvider{responses: []string{prose}}

	results, err := newRunner(p).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	r := results[0]
	if !r.ParseError {
		t.Error("Expected parse_error flag")
	}
	if r.EADScopeAndContent != prose {
		t.Errorf("Expected prose in description, got %q", r.EADScopeAndContent)
	}
	if r.Status != records.StatusSuccess {
		t.Errorf("Prose fallback is still a usable record, got status %q", r.Status)
	}
}

func TestRunSkipsNonImageFiles(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "ms5-1.jpeg", "notes.txt", "index.json")

	p := &fakeProvider{}
	results, err := newRunner(p).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	if _, err := newRunner(&fakeProvider{}).Run(context.Background(), dir); err == nil {
		t.Error("Expected error for directory with no images")
	}
}

func TestRunMissingDirectory(t *testing.T) {
	if _, err := newRunner(&fakeProvider{}).Run(context.Background(), "/does/not/exist"); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestRunCancelledContextKeepsPartialResults(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "ms6-1.jpeg", "ms6-2.jpeg", "ms6-3.jpeg")

	ctx, cancel := context.WithCancel(context.Background())
	p := &fakeProvider{}
	r := newRunner(p)

	// Cancel after the first call; the inter-call delay select observes it.
	// The nonzero delay makes the cancelled branch the only ready one.
	r.Delay = 50 * time.Millisecond
	r.Provider = &cancellingProvider{inner: p, cancel: cancel}

	results, err := r.Run(ctx, dir)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 partial result, got %d", len(results))
	}
}

type cancellingProvider struct {
	inner  *fakeProvider
	cancel context.CancelFunc
}

func (c *cancellingProvider) AnalyzeImage(ctx context.Context, config providers.Config, img providers.Image) (string, error) {
	defer c.cancel()
	return c.inner.AnalyzeImage(ctx, config, img)
}

func TestWriteResultsJSON(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "ms39080-51-5-1-1.jpeg")

	p := &fakeProvider{responses: []string{
		`{"EADUnitTitle": "St Salvator's Quad", "EADScope+Content": "View of the quad.", "EADUnitDate": "1978"}`,
	}}

	results, err := newRunner(p).Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := filepath.Join(dir, "test_results.json")
	if err := WriteResults(out, FormatJSON, results); err != nil {
		t.Fatalf("WriteResults failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Output is not a JSON array: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(decoded))
	}

	entry := decoded[0]
	if entry["EADUnitID"] != "ms39080" {
		t.Errorf("Expected EADUnitID ms39080, got %v", entry["EADUnitID"])
	}
	if entry["EADUnitTitle"] != "St Salvator's Quad" {
		t.Errorf("Unexpected title: %v", entry["EADUnitTitle"])
	}
	for _, name := range records.FieldNames() {
		if _, ok := entry[name]; !ok {
			t.Errorf("Output entry missing schema field %s", name)
		}
	}
}

func TestWriteResultsUnsupportedFormat(t *testing.T) {
	if err := WriteResults("out.xml", "xml", nil); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestImageFormat(t *testing.T) {
	tests := []struct {
		filename string
		format   string
		ok       bool
	}{
		{"a.jpg", "jpeg", true},
		{"a.JPEG", "jpeg", true},
		{"a.png", "png", true},
		{"a.gif", "gif", true},
		{"a.bmp", "bmp", true},
		{"a.webp", "webp", true},
		{"a.tiff", "", false},
		{"a.txt", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			format, ok := ImageFormat(tt.filename)
			if ok != tt.ok || format != tt.format {
				t.Errorf("ImageFormat(%q) = %q, %v; expected %q, %v", tt.filename, format, ok, tt.format, tt.ok)
			}
		})
	}
}

package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"autopost/internal/config"
	"autopost/internal/googleapi"
	"autopost/internal/logging"
	"autopost/internal/wordpress"
)

type fakeDownloader struct {
	file *googleapi.DriveFile
	err  error
}

func (f *fakeDownloader) FetchDriveFile(context.Context, string) (*googleapi.DriveFile, error) {
	return f.file, f.err
}

type fakeLibrary struct {
	uploads  []string
	failures int
	media    *wordpress.Media
}

func (f *fakeLibrary) UploadMedia(_ context.Context, filename, _ string, _ []byte, _ string) (*wordpress.Media, error) {
	f.uploads = append(f.uploads, filename)
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("upload failed")
	}
	if f.media != nil {
		return f.media, nil
	}
	return &wordpress.Media{ID: 55}, nil
}

type scriptedPrompter struct {
	choices []FallbackChoice
	values  []string
	calls   int
}

func (s *scriptedPrompter) ImageFallback(context.Context, string) (FallbackChoice, string, error) {
	if s.calls >= len(s.choices) {
		return FallbackSkip, "", nil
	}
	choice, value := s.choices[s.calls], s.values[s.calls]
	s.calls++
	return choice, value, nil
}

func testConfig() config.Media {
	return config.Media{UploadRetries: 2, RetryDelaySeconds: 2, FallbackRetries: 3, FallbackDelaySeconds: 3}
}

func newProcessor(t *testing.T, downloads Downloader, library Library, prompt Prompter, opts ...Option) *Processor {
	t.Helper()
	opts = append(opts, WithSleep(func(time.Duration) {}))
	return NewProcessor(downloads, library, prompt, testConfig(), logging.NewNop(), opts...)
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xFF, 0xD8, 0xFF})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProcessImagePlainURL(t *testing.T) {
	server := imageServer(t)
	library := &fakeLibrary{}
	processor := newProcessor(t, &fakeDownloader{}, library, &scriptedPrompter{}, WithHTTPClient(server.Client()))

	media, err := processor.ProcessImage(context.Background(), server.URL+"/photo.jpg", "caption")
	if err != nil {
		t.Fatalf("process image: %v", err)
	}
	if media == nil || media.ID != 55 {
		t.Fatalf("media = %+v", media)
	}
	if len(library.uploads) != 1 || !strings.HasSuffix(library.uploads[0], ".jpg") {
		t.Fatalf("uploads = %v", library.uploads)
	}
}

func TestProcessImageDriveURL(t *testing.T) {
	downloads := &fakeDownloader{file: &googleapi.DriveFile{
		Name:     "team.png",
		MIMEType: "image/png",
		Data:     []byte{0x89, 0x50},
	}}
	library := &fakeLibrary{}
	processor := newProcessor(t, downloads, library, &scriptedPrompter{})

	media, err := processor.ProcessImage(context.Background(), "https://drive.google.com/file/d/abc123/view", "caption")
	if err != nil {
		t.Fatalf("process image: %v", err)
	}
	if media == nil {
		t.Fatal("media is nil")
	}
	if !strings.HasSuffix(library.uploads[0], ".png") {
		t.Fatalf("uploads = %v", library.uploads)
	}
}

func TestProcessImageRetriesThenSucceeds(t *testing.T) {
	server := imageServer(t)
	library := &fakeLibrary{failures: 1}
	var slept []time.Duration
	processor := NewProcessor(&fakeDownloader{}, library, &scriptedPrompter{}, testConfig(), logging.NewNop(),
		WithHTTPClient(server.Client()),
		WithSleep(func(d time.Duration) { slept = append(slept, d) }))

	media, err := processor.ProcessImage(context.Background(), server.URL+"/photo.jpg", "")
	if err != nil {
		t.Fatalf("process image: %v", err)
	}
	if media == nil {
		t.Fatal("media is nil")
	}
	if len(library.uploads) != 2 {
		t.Fatalf("uploads = %v", library.uploads)
	}
	if len(slept) != 1 || slept[0] != 2*time.Second {
		t.Fatalf("slept = %v", slept)
	}
}

func TestProcessImageFallbackSkip(t *testing.T) {
	server := imageServer(t)
	library := &fakeLibrary{failures: 10}
	prompt := &scriptedPrompter{}
	processor := newProcessor(t, &fakeDownloader{}, library, prompt, WithHTTPClient(server.Client()))

	media, err := processor.ProcessImage(context.Background(), server.URL+"/photo.jpg", "")
	if err != nil {
		t.Fatalf("process image: %v", err)
	}
	if media != nil {
		t.Fatalf("media = %+v, want nil after skip", media)
	}
	if len(library.uploads) != 2 {
		t.Fatalf("uploads = %v, want the two configured tries", library.uploads)
	}
}

func TestProcessImageFallbackNewURL(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(bad.Close)
	good := imageServer(t)

	library := &fakeLibrary{}
	prompt := &scriptedPrompter{
		choices: []FallbackChoice{FallbackNewURL},
		values:  []string{good.URL + "/replacement.jpg"},
	}
	processor := newProcessor(t, &fakeDownloader{}, library, prompt, WithHTTPClient(good.Client()))

	media, err := processor.ProcessImage(context.Background(), bad.URL+"/photo.jpg", "")
	if err != nil {
		t.Fatalf("process image: %v", err)
	}
	if media == nil {
		t.Fatal("media is nil")
	}
	if prompt.calls != 1 {
		t.Fatalf("prompt calls = %d", prompt.calls)
	}
}

func TestProcessImageFallbackLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.jpg")
	if err := os.WriteFile(path, []byte{0xFF, 0xD8}, 0o644); err != nil {
		t.Fatal(err)
	}
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(bad.Close)

	library := &fakeLibrary{}
	prompt := &scriptedPrompter{
		choices: []FallbackChoice{FallbackLocalFile},
		values:  []string{path},
	}
	processor := newProcessor(t, &fakeDownloader{}, library, prompt, WithHTTPClient(bad.Client()))

	media, err := processor.ProcessImage(context.Background(), bad.URL+"/photo.jpg", "")
	if err != nil {
		t.Fatalf("process image: %v", err)
	}
	if media == nil {
		t.Fatal("media is nil")
	}
}

func TestProcessImageRejectsUnsupportedFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4")
	}))
	t.Cleanup(server.Close)

	library := &fakeLibrary{}
	processor := newProcessor(t, &fakeDownloader{}, library, &scriptedPrompter{}, WithHTTPClient(server.Client()))

	media, err := processor.ProcessImage(context.Background(), server.URL+"/doc.pdf", "")
	if err != nil {
		t.Fatalf("process image: %v", err)
	}
	if media != nil {
		t.Fatalf("media = %+v, want skip", media)
	}
	if len(library.uploads) != 0 {
		t.Fatalf("uploads = %v", library.uploads)
	}
}

func TestImageExtension(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		mimeType string
		want     string
		wantErr  bool
	}{
		{"from filename", "photo.JPG", "", ".jpg", false},
		{"from mime", "download", "image/png", ".png", false},
		{"mime with params", "download", "image/webp; charset=binary", ".webp", false},
		{"unsupported", "doc.pdf", "application/pdf", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ImageExtension(tc.filename, tc.mimeType)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUniqueFilenamesDiffer(t *testing.T) {
	a := UniqueFilename(".jpg")
	b := UniqueFilename(".jpg")
	if a == b {
		t.Fatalf("filenames collide: %q", a)
	}
	if !strings.HasSuffix(a, ".jpg") {
		t.Fatalf("filename = %q", a)
	}
}

package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/brandkit/pkg/brand"
	"github.com/matzehuels/brandkit/pkg/canvas"
	"github.com/matzehuels/brandkit/pkg/errors"
	"github.com/matzehuels/brandkit/pkg/raster"
)

const iconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
<circle cx="50" cy="50" r="30" fill="#4169E1"/>
</svg>`

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 100">
<rect x="20" y="20" width="360" height="60" fill="#4169E1"/>
</svg>`

var white = color.NRGBA{255, 255, 255, 255}

// project lays out a frontend directory holding both logos and returns the
// parent directory and the frontend directory.
func project(t *testing.T) (root, work string) {
	t.Helper()
	root = t.TempDir()
	work = filepath.Join(root, "frontend")
	if err := os.MkdirAll(work, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(work, "logo-icon.svg"), iconSVG)
	writeFile(t, filepath.Join(work, "logo.svg"), logoSVG)
	return root, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newGenerator(work string, cfg brand.Config) *Generator {
	return NewGenerator(cfg.InDir(work), raster.New(raster.Options{}), NewDirSink(work), nil)
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestParseJobs(t *testing.T) {
	tests := []struct {
		in      []string
		want    []Job
		wantErr bool
	}{
		{nil, AllJobs, false},
		{[]string{"icons", "favicon"}, []Job{JobFavicon, JobIcons}, false},
		{[]string{"social", "social"}, []Job{JobSocial}, false},
		{[]string{" touch-icon "}, []Job{JobTouchIcon}, false},
		{[]string{"manifest"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.in, ","), func(t *testing.T) {
			got, err := ParseJobs(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJobs(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseJobs(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseJobs(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestGenerateAll(t *testing.T) {
	root, work := project(t)
	report := newGenerator(work, brand.Default()).Generate(context.Background())

	if err := report.Err(); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(report.Results) != 4 {
		t.Fatalf("got %d results, want 4", len(report.Results))
	}
	for i, res := range report.Results {
		if res.Job != AllJobs[i] {
			t.Errorf("result %d is %s, want %s", i, res.Job, AllJobs[i])
		}
	}
	if n := report.Files(); n != 9 {
		t.Errorf("Files() = %d, want 9", n)
	}

	sizes := map[string]int{
		filepath.Join(work, "favicon-16x16.png"):    16,
		filepath.Join(work, "favicon-32x32.png"):    32,
		filepath.Join(root, "apple-touch-icon.png"): 180,
		filepath.Join(work, "icon-192x192.png"):     192,
		filepath.Join(work, "icon-512x512.png"):     512,
		filepath.Join(work, "icon-72x72.png"):       72,
		filepath.Join(work, "icon-144x144.png"):     144,
	}
	for path, size := range sizes {
		b := decodePNG(t, path).Bounds()
		if b.Dx() != size || b.Dy() != size {
			t.Errorf("%s is %dx%d, want %dx%d", filepath.Base(path), b.Dx(), b.Dy(), size, size)
		}
	}

	og := decodePNG(t, filepath.Join(root, "og-image.png"))
	if b := og.Bounds(); b.Dx() != 1200 || b.Dy() != 630 {
		t.Errorf("og-image.png is %dx%d, want 1200x630", b.Dx(), b.Dy())
	}
}

func TestFaviconICO(t *testing.T) {
	root, work := project(t)
	report := newGenerator(work, brand.Default()).Generate(context.Background(), JobFavicon)
	if err := report.Err(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(root, "favicon.ico"))
	if err != nil {
		t.Fatal(err)
	}
	imgs, err := canvas.DecodeICO(data)
	if err != nil {
		t.Fatalf("DecodeICO: %v", err)
	}
	var got []int
	for _, img := range imgs {
		got = append(got, img.Bounds().Dx())
	}
	if len(got) != 2 || got[0] != 16 || got[1] != 32 {
		t.Errorf("ico sizes = %v, want [16 32]", got)
	}

	// The glyph is drawn on transparency.
	small := decodePNG(t, filepath.Join(work, "favicon-16x16.png"))
	if a := nrgbaAt(small, 0, 0).A; a != 0 {
		t.Errorf("favicon corner alpha = %d, want 0", a)
	}
}

func TestFlattenedIconsAreOpaque(t *testing.T) {
	root, work := project(t)
	report := newGenerator(work, brand.Default()).Generate(context.Background(), JobTouchIcon, JobIcons)
	if err := report.Err(); err != nil {
		t.Fatal(err)
	}

	paths := []string{filepath.Join(root, "apple-touch-icon.png")}
	for _, is := range brand.Default().Icons.Sizes {
		paths = append(paths, filepath.Join(work, is.Filename))
	}
	for _, path := range paths {
		img := decodePNG(t, path)
		if !canvas.IsOpaque(img) {
			t.Errorf("%s has transparent pixels", filepath.Base(path))
		}
		n := img.Bounds().Dx()
		if c := nrgbaAt(img, 0, 0); c != white {
			t.Errorf("%s corner = %v, want white", filepath.Base(path), c)
		}
		if c := nrgbaAt(img, n/2, n/2); c.B < 200 || c.R > 100 {
			t.Errorf("%s center = %v, want logo color", filepath.Base(path), c)
		}
	}
}

func TestSocialLayout(t *testing.T) {
	root, work := project(t)
	report := newGenerator(work, brand.Default()).Generate(context.Background(), JobSocial)
	if err := report.Err(); err != nil {
		t.Fatal(err)
	}
	og := decodePNG(t, filepath.Join(root, "og-image.png"))

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"tint corner", 0, 0, brand.LightGray.NRGBA},
		{"tint left of panel", 319, 265, brand.LightGray.NRGBA},
		{"panel left edge", 320, 265, white},
		{"panel right edge", 880, 265, white},
		{"tint right of panel", 881, 265, brand.LightGray.NRGBA},
		{"panel top edge", 600, 165, white},
		{"panel bottom edge", 600, 365, white},
		{"tint below panel", 600, 366, brand.LightGray.NRGBA},
		{"panel margin", 330, 175, white},
		{"logo", 600, 265, brand.Accent.NRGBA},
	}
	for _, tt := range tests {
		if got := nrgbaAt(og, tt.x, tt.y); got != tt.want {
			t.Errorf("%s (%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSocialTagline(t *testing.T) {
	_, work := project(t)
	plain, err := newGenerator(work, brand.Default()).Render(context.Background(), JobSocial)
	if err != nil {
		t.Fatal(err)
	}

	cfg := brand.Default()
	cfg.Social.Tagline = "AI-powered leadership assistant"
	tagged, err := newGenerator(work, cfg).Render(context.Background(), JobSocial)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(plain[0].Data, tagged[0].Data) {
		t.Fatal("tagline did not change the image")
	}

	img, err := png.Decode(bytes.NewReader(tagged[0].Data))
	if err != nil {
		t.Fatal(err)
	}
	inked := false
	for y := 406; y < 450 && !inked; y++ {
		for x := 300; x < 900; x++ {
			if nrgbaAt(img, x, y) != brand.LightGray.NRGBA {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("no tagline ink below the panel")
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	_, work1 := project(t)
	_, work2 := project(t)
	r1 := newGenerator(work1, brand.Default()).Generate(context.Background())
	r2 := newGenerator(work2, brand.Default()).Generate(context.Background())
	if r1.Err() != nil || r2.Err() != nil {
		t.Fatalf("Generate: %v / %v", r1.Err(), r2.Err())
	}

	for i := range r1.Results {
		a, b := r1.Results[i].Artifacts, r2.Results[i].Artifacts
		if len(a) != len(b) {
			t.Fatalf("%s: artifact counts differ", r1.Results[i].Job)
		}
		for j := range a {
			if !bytes.Equal(a[j].Data, b[j].Data) {
				t.Errorf("%s: %s differs between runs", r1.Results[i].Job, a[j].Path)
			}
		}
	}

	// A rerun into the same directory overwrites with identical bytes.
	before, _ := os.ReadFile(filepath.Join(work1, "icon-72x72.png"))
	if err := newGenerator(work1, brand.Default()).Generate(context.Background()).Err(); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(filepath.Join(work1, "icon-72x72.png"))
	if !bytes.Equal(before, after) {
		t.Error("rerun changed icon-72x72.png")
	}
}

func TestMalformedLogoWritesNothing(t *testing.T) {
	root, work := project(t)
	writeFile(t, filepath.Join(work, "logo.svg"), "this is not svg")

	report := newGenerator(work, brand.Default()).Generate(context.Background())
	failed := report.Failed()
	if len(failed) != 1 || failed[0].Job != JobSocial {
		t.Fatalf("failed jobs = %+v, want only social", failed)
	}
	if !errors.Is(failed[0].Err, errors.ErrCodeInvalidSVG) {
		t.Errorf("social error = %v, want INVALID_SVG", failed[0].Err)
	}
	if len(failed[0].Artifacts) != 0 {
		t.Error("failed job should report no artifacts")
	}
	if _, err := os.Stat(filepath.Join(root, "og-image.png")); !os.IsNotExist(err) {
		t.Error("og-image.png should not exist")
	}
	// Later jobs still ran.
	if _, err := os.Stat(filepath.Join(work, "icon-144x144.png")); err != nil {
		t.Errorf("icons job should still run: %v", err)
	}
}

func TestMissingIconWritesNothing(t *testing.T) {
	root, work := project(t)
	if err := os.Remove(filepath.Join(work, "logo-icon.svg")); err != nil {
		t.Fatal(err)
	}

	report := newGenerator(work, brand.Default()).Generate(context.Background())
	failed := report.Failed()
	if len(failed) != 2 || failed[0].Job != JobTouchIcon || failed[1].Job != JobIcons {
		t.Fatalf("failed jobs = %+v, want touch-icon and icons", failed)
	}
	for _, res := range failed {
		if !errors.Is(res.Err, errors.ErrCodeFileNotFound) {
			t.Errorf("%s error = %v, want FILE_NOT_FOUND", res.Job, res.Err)
		}
	}
	for _, p := range []string{
		filepath.Join(root, "apple-touch-icon.png"),
		filepath.Join(work, "icon-192x192.png"),
		filepath.Join(work, "icon-512x512.png"),
	} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s should not exist", filepath.Base(p))
		}
	}
	if report.Err() == nil || !strings.Contains(report.Err().Error(), "touch-icon") {
		t.Errorf("Report.Err() = %v, want mention of touch-icon", report.Err())
	}
}

func TestAllInputsMissing(t *testing.T) {
	work := t.TempDir()
	report := newGenerator(work, brand.Default()).Generate(context.Background(), JobTouchIcon, JobSocial, JobIcons)
	if len(report.Failed()) != 3 {
		t.Fatalf("want 3 failed jobs, got %d", len(report.Failed()))
	}
	entries, _ := os.ReadDir(work)
	if len(entries) != 0 {
		t.Errorf("expected no output files, found %d", len(entries))
	}
}

func TestWriteFailure(t *testing.T) {
	_, work := project(t)
	// A regular file where a directory is needed.
	writeFile(t, filepath.Join(work, "blocked"), "")

	cfg := brand.Default()
	cfg.Icons.Sizes = []brand.IconSize{
		{Size: 72, Filename: "icon-72x72.png"},
		{Size: 144, Filename: "icon-144x144.png"},
	}
	cfg.TouchIcon.Path = "blocked/apple-touch-icon.png"

	report := newGenerator(work, cfg).Generate(context.Background(), JobTouchIcon, JobIcons)
	failed := report.Failed()
	if len(failed) != 1 || failed[0].Job != JobTouchIcon {
		t.Fatalf("failed = %+v, want touch-icon only", failed)
	}
	if !errors.Is(failed[0].Err, errors.ErrCodeWriteFailed) {
		t.Errorf("err = %v, want WRITE_FAILED", failed[0].Err)
	}

	entries, _ := os.ReadDir(work)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestGenerateCancelled(t *testing.T) {
	_, work := project(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := newGenerator(work, brand.Default()).Generate(ctx)
	if !report.Interrupted() {
		t.Error("report should be interrupted")
	}
	if len(report.Results) != 0 {
		t.Errorf("got %d results, want none", len(report.Results))
	}
	if report.Err() == nil {
		t.Error("Err() should report cancellation")
	}
}

func TestRenderMemorySink(t *testing.T) {
	_, work := project(t)
	sink := NewMemorySink()
	g := NewGenerator(brand.Default().InDir(work), raster.New(raster.Options{}), sink, nil)

	if err := g.Generate(context.Background(), JobFavicon, JobIcons).Err(); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"../favicon.ico",
		"favicon-16x16.png",
		"favicon-32x32.png",
		"icon-144x144.png",
		"icon-192x192.png",
		"icon-512x512.png",
		"icon-72x72.png",
	}
	got := sink.Paths()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	a, ok := sink.Get("../favicon.ico")
	if !ok || a.Format != FormatICO || a.Format.ContentType() != "image/x-icon" {
		t.Errorf("favicon artifact = %+v", a)
	}
	entries, _ := os.ReadDir(work)
	if len(entries) != 2 {
		t.Errorf("memory sink wrote to disk: %d entries in work dir", len(entries))
	}
}

func TestRenderUnknownJob(t *testing.T) {
	g := NewGenerator(brand.Default(), raster.New(raster.Options{}), nil, nil)
	if _, err := g.Render(context.Background(), Job("manifest")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestDirSinkRejectsNonRegularDestination(t *testing.T) {
	root, work := project(t)
	if err := os.Mkdir(filepath.Join(work, "favicon-32x32.png"), 0755); err != nil {
		t.Fatal(err)
	}

	report := newGenerator(work, brand.Default()).Generate(context.Background(), JobFavicon)
	failed := report.Failed()
	if len(failed) != 1 || !errors.Is(failed[0].Err, errors.ErrCodeWriteFailed) {
		t.Fatalf("failed = %+v, want favicon WRITE_FAILED", failed)
	}
	for _, p := range []string{filepath.Join(root, "favicon.ico"), filepath.Join(work, "favicon-16x16.png")} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s should not exist after a failed job", p)
		}
	}
	assertNoScratchFiles(t, root, work)
}

func TestDirSinkRollsBackPartialCommit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.png"), "old a")
	writeFile(t, filepath.Join(dir, "b.png"), "old b")

	// Fail the rename that would put c.png in place.
	orig := rename
	t.Cleanup(func() { rename = orig })
	rename = func(from, to string) error {
		if to == filepath.Join(dir, "c.png") {
			return os.ErrPermission
		}
		return orig(from, to)
	}

	err := NewDirSink(dir).Write(context.Background(), []Artifact{
		{Path: "a.png", Data: []byte("new a")},
		{Path: "b.png", Data: []byte("new b")},
		{Path: "c.png", Data: []byte("new c")},
		{Path: "d.png", Data: []byte("new d")},
	})
	if !errors.Is(err, errors.ErrCodeWriteFailed) {
		t.Fatalf("Write err = %v, want WRITE_FAILED", err)
	}

	for name, want := range map[string]string{"a.png": "old a", "b.png": "old b"} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil || string(got) != want {
			t.Errorf("%s = %q, %v; want restored %q", name, got, err, want)
		}
	}
	for _, name := range []string{"c.png", "d.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%s should not exist after rollback", name)
		}
	}
	assertNoScratchFiles(t, dir)
}

func TestDirSinkReplacesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.png"), "old")

	if err := NewDirSink(dir).Write(context.Background(), []Artifact{{Path: "a.png", Data: []byte("new")}}); err != nil {
		t.Fatal(err)
	}
	if got, _ := os.ReadFile(filepath.Join(dir, "a.png")); string(got) != "new" {
		t.Errorf("a.png = %q, want new", got)
	}
	assertNoScratchFiles(t, dir)
}

func assertNoScratchFiles(t *testing.T, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") || strings.HasSuffix(e.Name(), ".bak") {
				t.Errorf("scratch file left behind in %s: %s", dir, e.Name())
			}
		}
	}
}

// twoShapeIconSVG draws a square and a circle in a viewBox that does not
// start at the origin, the way design tools often export artboards.
const twoShapeIconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="100 100 100 100">
<rect x="110" y="110" width="30" height="30" fill="#4169E1"/>
<circle cx="170" cy="170" r="20" fill="#E14169"/>
</svg>`

func TestIconsWhiteOutsideShapes(t *testing.T) {
	_, work := project(t)
	writeFile(t, filepath.Join(work, "logo-icon.svg"), twoShapeIconSVG)

	cfg := brand.Default()
	report := newGenerator(work, cfg).Generate(context.Background(), JobIcons)
	if err := report.Err(); err != nil {
		t.Fatal(err)
	}
	if n := report.Files(); n != 4 {
		t.Fatalf("Files() = %d, want 4", n)
	}

	// Shape bounds in viewBox units relative to its origin.
	shapes := [][4]float64{{10, 10, 40, 40}, {50, 50, 90, 90}}

	for _, is := range cfg.Icons.Sizes {
		t.Run(is.Filename, func(t *testing.T) {
			img := decodePNG(t, filepath.Join(work, is.Filename))
			n := is.Size
			if b := img.Bounds(); b.Dx() != n || b.Dy() != n {
				t.Fatalf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), n, n)
			}
			scale := float64(n) / 100

			var boxes []image.Rectangle
			for _, s := range shapes {
				// One pixel of slack for anti-aliased edges.
				boxes = append(boxes, image.Rect(
					int(s[0]*scale)-1, int(s[1]*scale)-1,
					int(s[2]*scale)+2, int(s[3]*scale)+2,
				))
			}

			stray := 0
			for y := 0; y < n; y++ {
				for x := 0; x < n; x++ {
					p := image.Pt(x, y)
					if p.In(boxes[0]) || p.In(boxes[1]) {
						continue
					}
					if c := nrgbaAt(img, x, y); c != white {
						if stray == 0 {
							t.Errorf("pixel %v = %v, want white", p, c)
						}
						stray++
					}
				}
			}
			if stray > 0 {
				t.Errorf("%d non-white pixels outside the shapes", stray)
			}

			square := nrgbaAt(img, int(25*scale), int(25*scale))
			if square.R != 65 || square.G != 105 || square.B != 225 {
				t.Errorf("square center = %v, want #4169E1", square)
			}
			circle := nrgbaAt(img, int(70*scale), int(70*scale))
			if circle.R != 225 || circle.G != 65 || circle.B != 105 {
				t.Errorf("circle center = %v, want #E14169", circle)
			}
		})
	}
}

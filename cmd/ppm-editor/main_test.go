package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/ppm-editor/internal/config"
	"github.com/ironsheep/ppm-editor/internal/imaging"
	"github.com/ironsheep/ppm-editor/internal/ppm"
)

func writeFixture(t *testing.T, width, height int, c imaging.Pixel) string {
	t.Helper()
	g, err := imaging.NewGrid(width, height)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	for i := range g.Pix {
		g.Pix[i] = c
	}
	path := filepath.Join(t.TempDir(), "fixture.ppm")
	if err := ppm.Encode(path, g); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return path
}

func runCmd(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		inStdout bool
	}{
		{"no args", nil, 2, false},
		{"help", []string{"--help"}, 0, true},
		{"unknown", []string{"sharpen"}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCmd(t, "", tt.args...)
			if code != tt.wantCode {
				t.Errorf("exit code: got %d, want %d", code, tt.wantCode)
			}
			text := stderr
			if tt.inStdout {
				text = stdout
			}
			if !strings.Contains(text, "Usage:") {
				t.Errorf("usage not printed:\nstdout: %s\nstderr: %s", stdout, stderr)
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCmd(t, "", "--version")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !strings.HasPrefix(stdout, "ppm-editor "+Version) {
		t.Errorf("unexpected version output: %s", stdout)
	}
}

func TestRun_InvalidEnvironment(t *testing.T) {
	t.Setenv(config.EnvWorkers, "0")

	code, _, stderr := runCmd(t, "", "--version")
	if code != 2 {
		t.Errorf("exit code: got %d, want 2", code)
	}
	if !strings.Contains(stderr, "workers") {
		t.Errorf("stderr should explain the config error: %s", stderr)
	}
}

func TestRun_Blur(t *testing.T) {
	in := writeFixture(t, 5, 5, imaging.Pixel{R: 200, G: 200, B: 200})
	out := filepath.Join(t.TempDir(), "out.ppm")

	code, stdout, stderr := runCmd(t, "", "blur", "-radius", "1", "-workers", "2", "-o", out, in)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr: %s)", code, stderr)
	}
	if !strings.HasPrefix(stdout, "blur: "+in+" -> "+out+" (5x5") {
		t.Errorf("unexpected success line: %s", stdout)
	}

	g, err := ppm.Decode(out)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := g.At(0, 0).R; got != 88 {
		t.Errorf("corner: got %d, want 88", got)
	}
	if got := g.At(2, 2).R; got != 200 {
		t.Errorf("interior: got %d, want 200", got)
	}
}

func TestRun_InvertOverwritesInput(t *testing.T) {
	in := writeFixture(t, 2, 2, imaging.Pixel{R: 10, G: 20, B: 30})

	code, _, stderr := runCmd(t, "", "invert", in)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr: %s)", code, stderr)
	}

	g, err := ppm.Decode(in)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := g.At(1, 1); got != (imaging.Pixel{R: 245, G: 235, B: 225}) {
		t.Errorf("pixel: got %+v, want inverted", got)
	}
}

func TestRun_EditFailure(t *testing.T) {
	in := filepath.Join(t.TempDir(), "ascii.ppm")
	if err := os.WriteFile(in, []byte("P3\n1 1\n255\n0 0 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	code, stdout, stderr := runCmd(t, "", "blur", in)
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("nothing should be printed to stdout on failure: %s", stdout)
	}
	if !strings.Contains(stderr, "unsupported magic") {
		t.Errorf("stderr should report the format error: %s", stderr)
	}
}

func TestRun_EditArguments(t *testing.T) {
	in := writeFixture(t, 2, 2, imaging.Pixel{})

	tests := []struct {
		name string
		args []string
	}{
		{"no file", []string{"blur"}},
		{"two files", []string{"blur", in, in}},
		{"bad flag", []string{"invert", "-radius", "2", in}},
		{"negative radius", []string{"blur", "-radius", "-1", in}},
		{"bad remainder", []string{"blur", "-remainder", "spread", in}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runCmd(t, "", tt.args...); code != 2 {
				t.Errorf("exit code: got %d, want 2", code)
			}
		})
	}
}

func TestRun_Info(t *testing.T) {
	in := writeFixture(t, 7, 3, imaging.Pixel{R: 1})

	code, stdout, stderr := runCmd(t, "", "info", in)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr: %s)", code, stderr)
	}

	var info ppm.Info
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if info.Width != 7 || info.Height != 3 || !info.Complete {
		t.Errorf("unexpected info: %+v", info)
	}

	if code, _, _ := runCmd(t, "", "info", filepath.Join(t.TempDir(), "missing.ppm")); code != 1 {
		t.Errorf("missing file exit code: got %d, want 1", code)
	}
}

func TestRun_Serve(t *testing.T) {
	code, stdout, stderr := runCmd(t, `{"jsonrpc":"2.0","id":7,"method":"ping"}`+"\n", "serve")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr: %s)", code, stderr)
	}
	if strings.TrimSpace(stdout) != `{"jsonrpc":"2.0","id":7,"result":{}}` {
		t.Errorf("unexpected response: %s", stdout)
	}
}

func TestInitLogger(t *testing.T) {
	cfg := config.Default()

	logger := initLogger(cfg, &bytes.Buffer{})
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("level: got %v, want info", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("info level should use JSON, got %T", logger.Formatter)
	}

	cfg.LogLevel = "debug"
	logger = initLogger(cfg, &bytes.Buffer{})
	if _, ok := logger.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("debug level should use text, got %T", logger.Formatter)
	}
}

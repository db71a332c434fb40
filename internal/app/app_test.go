package app

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"cathode/internal/config"
	"cathode/internal/display"
	"cathode/internal/testutil"
)

const (
	testReport = `Screen 0: minimum 320 x 200, current 1920 x 1080, maximum 16384 x 16384
HDMI-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 527mm x 296mm
   1920x1080     60.00*+  50.00
`
	testModeline = `# 1920x1080 59.96 Hz (CVT 2.07M9) hsync: 67.16 kHz; pclk: 173.00 MHz
Modeline "1920x1080_60.00"  173.00  1920 2048 2248 2576  1080 1083 1088 1120 -hsync +vsync
`
	testNewMode = "xrandr --newmode 1920x1080_60 173.00 1920 2048 2248 2576 1080 1083 1088 1120 -hsync +vsync"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewConfig(filepath.Join(dir, "config"), filepath.Join(dir, "data"), filepath.Join(dir, "home"))
	cfg.History.Type = "memory"
	cfg.Remotes = []config.RemoteConfig{{Type: "filesystem", Name: "shared", FSRoot: filepath.Join(dir, "remote")}}
	return cfg
}

func testRunner() *testutil.FakeRunner {
	return testutil.NewFakeRunner().
		On("xrandr --current", testReport, nil).
		On("cvt 1920 1080 60", testModeline, nil).
		On(testNewMode, "", nil).
		On("xrandr --addmode HDMI-1 1920x1080_60", "", nil).
		On("xrandr --output HDMI-1 --mode 1920x1080_60", "", nil)
}

func newTestApp(t *testing.T, cfg *config.Config, runner *testutil.FakeRunner) *CathodeApp {
	t.Helper()
	a, err := NewCathodeApp(cfg, "Test", Options{
		Env:      MapEnv{"HOME": t.TempDir()},
		Runner:   runner,
		Prompter: &testutil.StubPrompter{Answer: true},
		Sleeper:  &testutil.FakeSleeper{},
		Clock:    testutil.FixedClock(),
		IDGen:    testutil.NewStubIDGenerator(),
	})
	if err != nil {
		t.Fatalf("NewCathodeApp() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func requireLinux(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("xrandr status is only queried on linux")
	}
}

func TestCathodeApp_AddApplyHistory(t *testing.T) {
	requireLinux(t)
	runner := testRunner()
	a := newTestApp(t, testConfig(t), runner)
	ctx := context.Background()

	mode, err := a.AddMode(ctx, display.AddOptions{Save: true})
	if err != nil {
		t.Fatalf("AddMode() error = %v", err)
	}
	if mode.Name != "1920x1080_60" {
		t.Errorf("mode name = %q, want %q", mode.Name, "1920x1080_60")
	}

	modes, err := a.ListModes()
	if err != nil {
		t.Fatalf("ListModes() error = %v", err)
	}
	if len(modes) != 1 || modes[0].PixelClock != "173.00" {
		t.Errorf("ListModes() = %+v", modes)
	}

	applied, err := a.ApplyMode(ctx, display.ApplyOptions{Name: "1920x1080_60", Output: "HDMI-1"})
	if err != nil {
		t.Fatalf("ApplyMode() error = %v", err)
	}
	if !applied {
		t.Error("ApplyMode() applied = false, want true")
	}
	if calls := runner.CallsWithPrefix("xrandr --output"); len(calls) != 1 {
		t.Errorf("switch calls = %v, want 1", calls)
	}

	activations, err := a.History(10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(activations) != 2 {
		t.Fatalf("History() returned %d activations, want 2", len(activations))
	}
	if activations[0].OperationID != a.Operation().ID {
		t.Errorf("OperationID = %q, want %q", activations[0].OperationID, a.Operation().ID)
	}
}

func TestCathodeApp_ApplyDiscarded(t *testing.T) {
	requireLinux(t)
	runner := testRunner().On("xrandr --output HDMI-1 --mode 1920x1080", "", nil)
	a, err := NewCathodeApp(testConfig(t), "Test", Options{
		Env:      MapEnv{"HOME": t.TempDir()},
		Runner:   runner,
		Prompter: &testutil.StubPrompter{Answer: false},
		Sleeper:  &testutil.FakeSleeper{},
	})
	if err != nil {
		t.Fatalf("NewCathodeApp() error = %v", err)
	}
	defer a.Close()
	ctx := context.Background()

	if _, err := a.AddMode(ctx, display.AddOptions{Save: true}); err != nil {
		t.Fatalf("AddMode() error = %v", err)
	}
	applied, err := a.ApplyMode(ctx, display.ApplyOptions{Name: "1920x1080_60", Output: "HDMI-1", Test: true})
	if err != nil {
		t.Fatalf("ApplyMode() error = %v", err)
	}
	if applied {
		t.Error("ApplyMode() applied = true after the mode was declined")
	}

	calls := runner.CallsWithPrefix("xrandr --output")
	if len(calls) != 2 || calls[1] != "xrandr --output HDMI-1 --mode 1920x1080" {
		t.Errorf("switch calls = %v, want test switch then revert only", calls)
	}
}

func TestCathodeApp_ConfiguredDefaultTimeout(t *testing.T) {
	requireLinux(t)
	cfg := testConfig(t)
	cfg.DefaultTimeout = 4
	sleeper := &testutil.FakeSleeper{}

	a, err := NewCathodeApp(cfg, "Test", Options{
		Env:     MapEnv{"HOME": t.TempDir()},
		Runner:  testRunner().On("xrandr --output HDMI-1 --mode 1920x1080", "", nil),
		Sleeper: sleeper,
	})
	if err != nil {
		t.Fatalf("NewCathodeApp() error = %v", err)
	}
	defer a.Close()

	if _, err := a.AddMode(context.Background(), display.AddOptions{Test: true}); err != nil {
		t.Fatalf("AddMode() error = %v", err)
	}
	if got := sleeper.Slept(); len(got) != 1 || got[0].Seconds() != 4 {
		t.Errorf("slept %v, want [4s]", got)
	}
}

func TestCathodeApp_ModesFileOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "custom", "modes.yml")

	a, err := NewCathodeApp(testConfig(t), "Test", Options{
		ModesFile: override,
		Env:       MapEnv{"HOME": t.TempDir()},
		Runner:    testutil.NewFakeRunner(),
	})
	if err != nil {
		t.Fatalf("NewCathodeApp() error = %v", err)
	}
	defer a.Close()

	if a.ModesFile() != override {
		t.Errorf("ModesFile() = %q, want %q", a.ModesFile(), override)
	}
	modes, err := a.ImportModes()
	if err != nil {
		t.Fatalf("ImportModes() error = %v", err)
	}
	if len(modes) != 0 {
		t.Errorf("ImportModes() = %v, want empty", modes)
	}
}

func TestCathodeApp_PushPull(t *testing.T) {
	requireLinux(t)
	cfg := testConfig(t)
	ctx := context.Background()

	src := newTestApp(t, cfg, testRunner())
	if _, err := src.AddMode(ctx, display.AddOptions{Save: true}); err != nil {
		t.Fatalf("AddMode() error = %v", err)
	}
	name, err := src.Push(ctx, "")
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if name != "shared" {
		t.Errorf("Push() remote = %q, want %q", name, "shared")
	}

	other := *cfg
	other.ModesFile = filepath.Join(t.TempDir(), "modes.yml")
	dst := newTestApp(t, &other, testutil.NewFakeRunner())

	n, err := dst.Pull(ctx, "shared")
	if err != nil {
		t.Fatalf("Pull() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Pull() merged %d modes, want 1", n)
	}
	modes, _ := dst.ListModes()
	if len(modes) != 1 || modes[0].Name != "1920x1080_60" {
		t.Errorf("pulled modes = %+v", modes)
	}
}

func TestCathodeApp_UnknownRemote(t *testing.T) {
	a := newTestApp(t, testConfig(t), testutil.NewFakeRunner())
	if _, err := a.Push(context.Background(), "nowhere"); err == nil {
		t.Fatal("Push() expected error for unknown remote")
	}
}

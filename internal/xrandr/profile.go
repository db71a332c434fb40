package xrandr

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cathode/internal/display"
)

// Profile appends xrandr commands to a shell script sourced at X login,
// usually ~/.xprofile. The file is only ever appended to, never read.
type Profile struct {
	path   string
	binary string
	goos   string
	logger display.Logger
}

// NewProfile creates a Profile that writes to path and invokes binary
// (usually "xrandr") from the written commands.
func NewProfile(path, binary string, logger display.Logger) *Profile {
	return &Profile{path: path, binary: binary, goos: runtime.GOOS, logger: logger}
}

// Persist appends the commands that define mode, attach it to output and
// switch output to it. On platforms other than linux it does nothing.
func (p *Profile) Persist(mode display.TimingMode, output string) error {
	if p.goos != "linux" {
		p.logger.Warn("login profile is only written on linux", "os", p.goos)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}
	f, err := os.OpenFile(p.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening profile: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(p.script(mode, output)); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	p.logger.Info("mode added to login profile", "mode", mode.Name, "output", output, "path", p.path)
	return nil
}

func (p *Profile) script(mode display.TimingMode, output string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n# cathode: %s on %s\n", mode.Name, output)
	for _, args := range [][]string{
		NewModeArgs(mode),
		AddModeArgs(mode.Name, output),
		SwitchArgs(mode.Name, output),
	} {
		b.WriteString(p.binary)
		for _, a := range args {
			b.WriteByte(' ')
			b.WriteString(shellQuote(a))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// shellQuote single-quotes s unless it consists only of characters that are
// safe in a POSIX shell word.
func shellQuote(s string) string {
	if s != "" && strings.Trim(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_.+/:=") == "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var _ display.Profile = (*Profile)(nil)

package search

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// openURLFn and copyFn are swapped out by tests to avoid side effects.
var (
	openURLFn = openURLImpl
	copyFn    = copyImpl
)

// Open shows the results page of s in the default browser.
func Open(s Submission) error {
	if s.URL == "" {
		return fmt.Errorf("open search: submission for %q has no url", s.Query)
	}
	return openURLFn(s.URL)
}

// CopyURL puts the results URL of s on the system clipboard.
func CopyURL(s Submission) error {
	if s.URL == "" {
		return fmt.Errorf("copy search: submission for %q has no url", s.Query)
	}
	return copyFn(s.URL)
}

// StubPlatformActions replaces the browser and clipboard hooks with no-ops
// and returns a restore function.
func StubPlatformActions() (restore func()) {
	origOpen, origCopy := openURLFn, copyFn
	openURLFn = func(string) error { return nil }
	copyFn = func(string) error { return nil }
	return func() {
		openURLFn, copyFn = origOpen, origCopy
	}
}

// openURLImpl uses a detached context since the browser outlives the caller.
func openURLImpl(url string) error {
	ctx := context.Background()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "linux":
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("xdg-open not found (install xdg-utils)")
		}
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func copyImpl(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "pbcopy")
	case "linux":
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.CommandContext(ctx, "xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.CommandContext(ctx, "xsel", "--clipboard", "--input")
		} else if _, err := exec.LookPath("wl-copy"); err == nil {
			cmd = exec.CommandContext(ctx, "wl-copy")
		} else {
			return fmt.Errorf("no clipboard command found (install xclip, xsel, or wl-clipboard)")
		}
	case "windows":
		cmd = exec.CommandContext(ctx, "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	_, _ = stdin.Write([]byte(text))
	_ = stdin.Close()
	return cmd.Wait()
}

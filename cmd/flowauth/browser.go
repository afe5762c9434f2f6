package main

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"

	"flowauth/internal/authn/redirect"
)

// browserLauncher opens redirect URLs in the system browser.
func browserLauncher(log *slog.Logger) redirect.Launcher {
	return redirect.LauncherFunc(func(ctx context.Context, rawURL string) error {
		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.CommandContext(ctx, "open", rawURL)
		case "windows":
			cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", rawURL)
		default:
			cmd = exec.CommandContext(ctx, "xdg-open", rawURL)
		}
		log.Info("opening browser", "url", rawURL)
		return cmd.Start()
	})
}

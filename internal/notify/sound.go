package notify

import (
	"context"
	"log"
	"os/exec"
	"runtime"
)

// ExecPlayer plays alert sounds by shelling out to a platform audio tool:
// afplay on macOS, the first of paplay/aplay/mpv found on Linux. Audio
// decoding stays out of process.
type ExecPlayer struct{}

// NewExecPlayer creates a sound player backed by external tools.
func NewExecPlayer() *ExecPlayer {
	return &ExecPlayer{}
}

// Play starts playback of soundRef without blocking the caller. Errors
// are logged, never returned.
func (p *ExecPlayer) Play(soundRef string) {
	if soundRef == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		tool := playerTool()
		if tool == "" {
			log.Printf("no audio player available, skipping sound %s", soundRef)
			return
		}

		if err := exec.CommandContext(ctx, tool, soundRef).Run(); err != nil {
			log.Printf("sound playback failed: %v", err)
		}
	}()
}

// playerTool picks the platform audio tool, or "" when none is found.
func playerTool() string {
	if runtime.GOOS == "darwin" {
		return "afplay"
	}
	for _, candidate := range []string{"paplay", "aplay", "mpv"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// NullPlayer is a no-op player for headless or test use.
type NullPlayer struct{}

// Play discards the playback request.
func (NullPlayer) Play(soundRef string) {}

package stream

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

var youtubePattern = regexp.MustCompile(`^https?://(www\.)?(youtube\.com|youtu\.be)/`)

func isYouTubeURL(descriptor string) bool {
	return youtubePattern.MatchString(descriptor)
}

// resolveYouTube asks yt-dlp for the direct stream URL behind a YouTube
// page. yt-dlp must be on PATH; its absence is a resolution failure, not
// a crash.
func resolveYouTube(ctx context.Context, url string) (string, error) {
	cmd := exec.CommandContext(ctx, "yt-dlp", "-f", "best", "--get-url", url)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("yt-dlp: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("yt-dlp: %w", err)
	}
	direct := strings.TrimSpace(string(out))
	if direct == "" {
		return "", fmt.Errorf("yt-dlp returned no URL for %s", url)
	}
	// Multiple formats may come back one per line; best is first.
	if i := strings.IndexByte(direct, '\n'); i >= 0 {
		direct = strings.TrimSpace(direct[:i])
	}
	return direct, nil
}

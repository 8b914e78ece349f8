package voicesrv

import (
	"context"
	"encoding/binary"
	"fmt"
	"os/exec"
	"time"

	"github.com/interview-ace/ace/pkg/logx"
)

// FFmpegConverter shells out to ffmpeg to convert browser audio (WebM/Opus)
// to 16kHz mono PCM WAV, the input format the transcriber handles best.
type FFmpegConverter struct {
	binary string
}

// DetectFFmpeg probes for a working ffmpeg binary once at boot. It returns
// nil when ffmpeg is absent, which selects the no-conversion service variant.
func DetectFFmpeg() *FFmpegConverter {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		logx.Warnf("ffmpeg not found on PATH, compressed audio uploads will be rejected")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, path, "-version").Run(); err != nil {
		logx.Warnf("ffmpeg probe failed: %v", err)
		return nil
	}

	logx.Infof("ffmpeg available at %s", path)
	return &FFmpegConverter{binary: path}
}

// ToWAV converts the input file to 16kHz mono 16-bit PCM WAV.
func (c *FFmpegConverter) ToWAV(ctx context.Context, inputPath, outputPath string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary,
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		outputPath,
		"-loglevel", "quiet",
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w (output: %s)", err, output)
	}
	return nil
}

// wavDuration reads the duration in seconds from a RIFF/WAVE header. It
// returns 0 for anything it cannot parse.
func wavDuration(data []byte) float64 {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return 0
	}

	var byteRate uint32
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))

		switch chunkID {
		case "fmt ":
			if offset+16+4 > len(data) {
				return 0
			}
			byteRate = binary.LittleEndian.Uint32(data[offset+16 : offset+20])
		case "data":
			if byteRate == 0 {
				return 0
			}
			return float64(chunkSize) / float64(byteRate)
		}

		offset += 8 + chunkSize
		if chunkSize%2 == 1 {
			offset++
		}
	}
	return 0
}

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const (
	maxStdout = 1 << 20
	maxStderr = 1 << 20
)

// Pdftoppm rasterizes with poppler's pdftoppm binary.
type Pdftoppm struct {
	Binary  string
	Timeout time.Duration
}

// RasterizeFirstPage runs pdftoppm for page 1. pdftoppm appends ".png" to the
// output prefix, so outPath must end in ".png".
func (p Pdftoppm) RasterizeFirstPage(ctx context.Context, pdfPath, outPath string, dpi int) error {
	args, err := buildArgs(pdfPath, outPath, dpi)
	if err != nil {
		return err
	}
	bin := p.Binary
	if strings.TrimSpace(bin) == "" {
		bin = "pdftoppm"
	}
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	_, stderr, code, err := runCommand(ctx, bin, args, maxStdout, maxStderr)
	if err != nil {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			return fmt.Errorf("%s exited with code %d: %w", bin, code, err)
		}
		return fmt.Errorf("%s exited with code %d: %w: %s", bin, code, err, msg)
	}
	return nil
}

func buildArgs(pdfPath, outPath string, dpi int) ([]string, error) {
	if dpi < 1 || dpi > 2400 {
		return nil, errors.New("dpi out of range (1..2400)")
	}
	prefix, ok := strings.CutSuffix(outPath, ".png")
	if !ok || prefix == "" {
		return nil, fmt.Errorf("output path %q must end in .png", outPath)
	}
	return []string{
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", "1",
		"-l", "1",
		"-singlefile",
		pdfPath,
		prefix,
	}, nil
}

func runCommand(ctx context.Context, bin string, args []string, maxStdout, maxStderr int64) (stdout, stderr string, exitCode int, err error) {
	cmd := exec.CommandContext(ctx, bin, args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return "", "", 127, err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", 127, err
	}

	if err := cmd.Start(); err != nil {
		return "", "", 127, err
	}

	var outBuf, errBuf bytes.Buffer
	outDone := make(chan error, 1)
	errDone := make(chan error, 1)

	go func() { outDone <- drain(&outBuf, stdoutPipe, maxStdout) }()
	go func() { errDone <- drain(&errBuf, stderrPipe, maxStderr) }()

	// Pipes must be drained before Wait closes them.
	<-outDone
	<-errDone
	waitErr := cmd.Wait()

	stdout = outBuf.String()
	stderr = errBuf.String()

	if waitErr != nil {
		exitCode = exitStatus(waitErr)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return stdout, stderr, exitCode, errors.New("rasterization timed out")
		}
		return stdout, stderr, exitCode, waitErr
	}
	return stdout, stderr, 0, nil
}

// drain keeps the first limit bytes of r and discards the rest so the child
// never blocks on a full pipe.
func drain(dst *bytes.Buffer, r io.Reader, limit int64) error {
	if _, err := io.Copy(dst, io.LimitReader(r, limit)); err != nil {
		return err
	}
	_, err := io.Copy(io.Discard, r)
	return err
}

func exitStatus(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 1
}

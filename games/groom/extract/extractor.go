/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package extract turns an uploaded video into question/answer records by
// handing it to a video-analysis provider.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Seednode/groomgame/games/groom"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultTimeout      = 10 * time.Minute

	// Spacing used for items the provider returned without a start time.
	defaultSpacing = 30

	releaseTimeout = 30 * time.Second
)

var (
	// ErrUnavailable means automatic extraction cannot run at all. Callers
	// should fall back to manual entry.
	ErrUnavailable = errors.New("automatic extraction unavailable")

	// ErrFailure means extraction ran but produced nothing usable.
	ErrFailure = errors.New("extraction failed")

	errStillProcessing = errors.New("video still processing")
	errJobFailed       = errors.New("provider could not process video")
)

type JobState int

const (
	JobPending JobState = iota
	JobDone
	JobFailed
)

// Job is a handle to a video submitted to a provider.
type Job struct {
	Name     string
	URI      string
	MIMEType string
}

// Provider is a remote video-analysis service.
type Provider interface {
	Submit(ctx context.Context, r io.Reader, video Video) (Job, error)
	Poll(ctx context.Context, job Job) (JobState, error)
	FetchResult(ctx context.Context, job Job) (string, error)
	Release(ctx context.Context, job Job) error
}

// Video is an uploaded video to analyze. Body is read once.
type Video struct {
	ID       string
	Name     string
	MIMEType string
	Body     io.Reader
}

// StatusFunc receives human-readable progress messages.
type StatusFunc func(message string)

type Extractor struct {
	provider     Provider
	fs           afero.Fs
	tempDir      string
	pollInterval time.Duration
	timeout      time.Duration
}

type Option func(*Extractor)

func WithFs(fs afero.Fs) Option {
	return func(e *Extractor) {
		e.fs = fs
	}
}

func WithTempDir(dir string) Option {
	return func(e *Extractor) {
		e.tempDir = dir
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.pollInterval = d
		}
	}
}

// WithTimeout bounds how long a submitted video may stay in processing.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// New returns an extractor backed by provider. A nil provider yields an
// extractor that always reports ErrUnavailable.
func New(provider Provider, opts ...Option) *Extractor {
	e := &Extractor{
		provider:     provider,
		fs:           afero.NewOsFs(),
		pollInterval: DefaultPollInterval,
		timeout:      DefaultTimeout,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Extractor) Available() bool {
	return e.provider != nil
}

// Extract uploads video to the provider, waits for it to be processed, and
// converts the analysis into question records. Errors wrap ErrUnavailable or
// ErrFailure. The transient copy of the video is removed before returning.
func (e *Extractor) Extract(ctx context.Context, video Video, status StatusFunc) ([]groom.QuestionRecord, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	report(status, "Uploading video...")

	path, err := e.persist(video)
	if err != nil {
		return nil, fmt.Errorf("%w: saving video: %w", ErrFailure, err)
	}
	defer func() {
		_ = e.fs.Remove(path)
	}()

	job, err := e.submit(ctx, path, video)
	if err != nil {
		return nil, classify("uploading video", err)
	}
	defer func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()

		_ = e.provider.Release(rctx, job)
	}()

	report(status, "Video uploaded, processing...")

	if err := e.wait(ctx, job, status); err != nil {
		return nil, err
	}

	report(status, "Analyzing questions and answers...")

	text, err := e.provider.FetchResult(ctx, job)
	if err != nil {
		return nil, classify("analyzing video", err)
	}

	items, err := ParseResponse(text)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no questions found in video", ErrFailure)
	}

	return Records(video.ID, items), nil
}

// Records expands parsed items into question records for videoID.
func Records(videoID string, items []Item) []groom.QuestionRecord {
	records := make([]groom.QuestionRecord, 0, len(items))

	for i, item := range items {
		start := item.StartTime
		if !item.HasStart {
			start = i * defaultSpacing
		}

		records = append(records, groom.NewQuestionRecord(videoID, i, item.Question, item.Answer, start))
	}

	return records
}

func (e *Extractor) persist(video Video) (string, error) {
	if video.Body == nil {
		return "", errors.New("no video data")
	}

	ext := strings.ToLower(filepath.Ext(video.Name))
	if ext == "" {
		ext = ".mp4"
	}

	if e.tempDir != "" {
		if err := e.fs.MkdirAll(e.tempDir, 0o700); err != nil {
			return "", err
		}
	}

	f, err := afero.TempFile(e.fs, e.tempDir, "groomgame-*"+ext)
	if err != nil {
		return "", err
	}

	_, err = io.Copy(f, video.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = e.fs.Remove(f.Name())

		return "", err
	}

	return f.Name(), nil
}

func (e *Extractor) submit(ctx context.Context, path string, video Video) (Job, error) {
	f, err := e.fs.Open(path)
	if err != nil {
		return Job{}, err
	}
	defer f.Close()

	if video.MIMEType == "" {
		video.MIMEType = "video/mp4"
	}

	return e.provider.Submit(ctx, f, video)
}

func (e *Extractor) wait(ctx context.Context, job Job, status StatusFunc) error {
	attempts := 0
	backoff := retry.WithMaxDuration(e.timeout, retry.NewConstant(e.pollInterval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++

		state, err := e.provider.Poll(ctx, job)
		if err != nil {
			return err
		}

		switch state {
		case JobDone:
			return nil
		case JobFailed:
			return errJobFailed
		default:
			report(status, fmt.Sprintf("Processing video... (attempt %d)", attempts))

			return retry.RetryableError(errStillProcessing)
		}
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStillProcessing):
		return fmt.Errorf("%w: video processing timed out after %s", ErrFailure, e.timeout)
	case errors.Is(err, errJobFailed):
		return fmt.Errorf("%w: %w; the video format might not be supported", ErrFailure, errJobFailed)
	default:
		return classify("processing video", err)
	}
}

// classify sorts a provider error into ErrUnavailable (billing or quota
// restrictions) or ErrFailure.
func classify(step string, err error) error {
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrFailure) {
		return err
	}

	if restricted(err) {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, step, err)
	}

	return fmt.Errorf("%w: %s: %w", ErrFailure, step, err)
}

func restricted(err error) bool {
	msg := strings.ToLower(err.Error())

	for _, marker := range []string{"quota", "billing", "resource_exhausted"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

func report(status StatusFunc, message string) {
	if status != nil {
		status(message)
	}
}

package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"vaamtranscribe/internal/core/domain"
	"vaamtranscribe/internal/core/ports"
)

// Orchestrator coordinates the transcription workflow.
type Orchestrator struct {
	resolver    ports.Resolver
	downloader  ports.Downloader
	storage     ports.Storage
	transcriber ports.Transcriber
	logger      *slog.Logger
	now         func() time.Time
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(
	resolver ports.Resolver,
	downloader ports.Downloader,
	storage ports.Storage,
	transcriber ports.Transcriber,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Orchestrator{
		resolver:    resolver,
		downloader:  downloader,
		storage:     storage,
		transcriber: transcriber,
		logger:      logger,
		now:         time.Now,
	}
}

// Run executes one transcription for inv and returns the transcript.
// Any failure is a *domain.Error. The downloaded file is removed before
// Run returns, whatever the outcome.
func (o *Orchestrator) Run(ctx context.Context, inv *domain.Invocation) (transcript string, err error) {
	log := o.logger.With(slog.String("run", inv.ID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("unexpected failure", slog.Any("panic", r))
			transcript = ""
			err = domain.NewError(domain.CodeTranscriptionFailed, fmt.Sprint(r), nil)
		}
	}()
	defer o.cleanup(log, inv)

	id, err := domain.ParseShareURL(inv.ShareURL)
	if err != nil {
		return "", err
	}
	log.Info("resolving video", slog.String("capture", string(id)))

	media, err := o.resolve(ctx, id)
	if err != nil {
		return "", err
	}
	log.Info("video resolved", slog.String("format", string(media.Format)), slog.String("url", media.URL))

	mimeType, err := o.download(ctx, log, inv, media)
	if err != nil {
		return "", err
	}

	log.Info("transcribing", slog.String("mime", mimeType))
	data, err := o.storage.Read(ctx, inv.TempPath)
	if err != nil {
		return "", domain.NewError(domain.CodeTranscriptionFailed, "", err)
	}

	text, err := o.transcriber.Transcribe(ctx, ports.TranscribeRequest{Data: data, MIMEType: mimeType})
	if err != nil {
		return "", domain.NewError(domain.CodeTranscriptionFailed, "", err)
	}
	log.Info("transcription complete",
		slog.Int("chars", len(text)),
		slog.Duration("elapsed", time.Since(inv.StartedAt)),
	)

	return text, nil
}

func (o *Orchestrator) resolve(ctx context.Context, id domain.CaptureID) (domain.Media, error) {
	desc, err := o.resolver.Resolve(ctx, id)
	if err != nil {
		return domain.Media{}, domain.NewError(domain.CodeVideoExtractionFailed, "", err)
	}
	if desc == nil {
		return domain.Media{}, domain.NewError(domain.CodeVideoExtractionFailed, "empty lookup response", nil)
	}
	media, ok := desc.Select()
	if !ok {
		return domain.Media{}, domain.NewError(domain.CodeVideoExtractionFailed, "no mp4, webm or hls URL in lookup response", nil)
	}
	return media, nil
}

// download stores the media in the temp dir and returns the MIME type to
// submit with it.
func (o *Orchestrator) download(ctx context.Context, log *slog.Logger, inv *domain.Invocation, media domain.Media) (string, error) {
	if err := o.storage.Prepare(ctx); err != nil {
		return "", domain.NewError(domain.CodeVideoDownloadFailed, "", err)
	}

	log.Info("downloading video")
	dl, err := o.downloader.Download(ctx, media.URL)
	if err != nil {
		return "", domain.NewError(domain.CodeVideoDownloadFailed, "", err)
	}
	defer dl.Body.Close()

	path := o.storage.NewPath(media.Format, o.now())
	inv.TempPath = path

	n, err := o.storage.Save(ctx, path, dl.Body)
	if err != nil {
		return "", domain.NewError(domain.CodeVideoDownloadFailed, "", err)
	}
	log.Info("video downloaded", slog.String("path", path), slog.Int64("bytes", n))

	return mimeTypeFor(dl.ContentType, media.Format), nil
}

func (o *Orchestrator) cleanup(log *slog.Logger, inv *domain.Invocation) {
	if inv.TempPath == "" {
		return
	}
	if err := o.storage.Remove(inv.TempPath); err != nil {
		log.Debug("cleanup failed", slog.String("path", inv.TempPath), slog.Any("error", err))
		return
	}
	log.Debug("temp file removed", slog.String("path", inv.TempPath))
	inv.TempPath = ""
}

// mimeTypeFor prefers the media host's video/* Content-Type and falls
// back to the format default.
func mimeTypeFor(contentType string, format domain.Format) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if strings.HasPrefix(ct, "video/") {
		return ct
	}
	return format.MIMEType()
}

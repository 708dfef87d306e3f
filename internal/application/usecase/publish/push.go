package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	MsgMissingDetails = "Please fill in all GitHub details."
	MsgConnecting     = "Connecting to GitHub..."
	MsgPushing        = "Pushing new data to GitHub..."
	MsgFetchFailed    = `Failed to fetch file info. Check your token permissions (need "repo" scope).`
	MsgUpdateFailed   = "Failed to update file"
	MsgSuccess        = "Success! GitHub updated. Your site will go live in ~1-2 minutes."
)

var tracer = otel.Tracer("publish_usecase")

// PublishUseCase commits the exported file to the configured repository: one read
// for the revision marker, then one write. Concurrent pushes are not serialized, so
// a second push can fail with a stale marker.
type PublishUseCase struct {
	exporter *ExportUseCase
	config   *ConfigUseCase
	contents service.ContentsClient
	status   *StatusTracker
	events   event.Publisher
	logger   logger.Logger
	now      func() time.Time
}

func NewPublishUseCase(
	exporter *ExportUseCase,
	config *ConfigUseCase,
	contents service.ContentsClient,
	status *StatusTracker,
	events event.Publisher,
	log logger.Logger,
	now func() time.Time,
) *PublishUseCase {
	if now == nil {
		now = time.Now
	}
	return &PublishUseCase{
		exporter: exporter,
		config:   config,
		contents: contents,
		status:   status,
		events:   events,
		logger:   log,
		now:      now,
	}
}

func (uc *PublishUseCase) Status() Status { return uc.status.Get() }

// Start validates and stores cfg, then pushes in the background.
func (uc *PublishUseCase) Start(ctx context.Context, cfg GitHubConfig) error {
	cfg, err := uc.prepare(ctx, cfg)
	if err != nil {
		return err
	}
	go func() {
		_ = uc.push(context.WithoutCancel(ctx), cfg)
	}()
	return nil
}

// Execute runs the whole publish flow and returns when the remote write is done.
func (uc *PublishUseCase) Execute(ctx context.Context, cfg GitHubConfig) error {
	cfg, err := uc.prepare(ctx, cfg)
	if err != nil {
		return err
	}
	return uc.push(ctx, cfg)
}

func (uc *PublishUseCase) prepare(ctx context.Context, cfg GitHubConfig) (GitHubConfig, error) {
	if !cfg.Complete() {
		uc.status.set(PhaseError, MsgMissingDetails)
		return cfg, apperror.NewAppError(apperror.ErrInvalidInput, MsgMissingDetails, "owner, repo and token are required", nil)
	}
	if cfg.Path == "" {
		cfg.Path = uc.config.defaultPath
	}
	uc.config.Save(ctx, cfg)
	uc.status.set(PhaseLoading, MsgConnecting)
	return cfg, nil
}

func (uc *PublishUseCase) push(ctx context.Context, cfg GitHubConfig) error {
	ctx, span := tracer.Start(ctx, "Publish", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("repo", cfg.Owner+"/"+cfg.Repo),
		attribute.String("path", cfg.Path),
	)

	err := uc.pushFile(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		uc.status.set(PhaseError, apperror.Message(err))
		uc.logger.Warn("Publish failed", zap.String("repo", cfg.Owner+"/"+cfg.Repo), zap.Error(err))
		return err
	}

	uc.status.set(PhaseSuccess, MsgSuccess)
	uc.logger.Info("Published content", zap.String("repo", cfg.Owner+"/"+cfg.Repo), zap.String("path", cfg.Path))
	if uc.events != nil {
		e := event.New(event.TypePublished)
		e.Attributes = map[string]string{"repo": cfg.Owner + "/" + cfg.Repo, "path": cfg.Path}
		if perr := uc.events.Publish(ctx, e); perr != nil {
			uc.logger.Warn("Failed to publish content event", zap.Error(perr))
		}
	}
	return nil
}

func (uc *PublishUseCase) pushFile(ctx context.Context, cfg GitHubConfig) error {
	file := service.RepoFile{Owner: cfg.Owner, Repo: cfg.Repo, Path: cfg.Path, Token: cfg.Token}

	sha, err := uc.contents.FileSHA(ctx, file)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			msg := fmt.Sprintf("File '%s' not found in repo. Check the file path input.", cfg.Path)
			return apperror.NewAppError(apperror.ErrNotFound, msg, "contents lookup returned 404", err)
		}
		return apperror.NewUpstream(MsgFetchFailed, err)
	}

	uc.status.set(PhaseLoading, MsgPushing)
	out, err := uc.exporter.Generate(ctx)
	if err != nil {
		return err
	}
	message := fmt.Sprintf("Update portfolio content (%s)", uc.now().Format("1/2/2006"))
	if err := uc.contents.UpdateFile(ctx, file, message, out.Content, sha); err != nil {
		msg := MsgUpdateFailed
		var upstream *service.UpstreamError
		if errors.As(err, &upstream) && upstream.Message != "" {
			msg = upstream.Message
		}
		return apperror.NewUpstream(msg, err)
	}
	return nil
}

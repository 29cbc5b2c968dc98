package transcripts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"tubescribe/internal/config"
	"tubescribe/internal/journal"
	"tubescribe/internal/logging"
	"tubescribe/internal/mediainfo"
	"tubescribe/internal/scratch"
	"tubescribe/internal/services"
	"tubescribe/internal/services/ytdlp"
	"tubescribe/internal/subtitles"
	"tubescribe/internal/transcriptcache"
)

// Operation names used for context stamping and journal records.
const (
	OpGetVideoInfo              = "get_video_info"
	OpDownloadSubtitle          = "download_subtitle"
	OpGetSubtitleWithTimestamps = "get_subtitle_with_timestamps"
)

// Service coordinates metadata dumps, subtitle downloads, caching, and the
// fetch journal.
type Service struct {
	cfg     *config.Config
	client  *ytdlp.Client
	cache   *transcriptcache.Cache
	scratch *scratch.Manager
	journal *journal.Store
	logger  *slog.Logger
}

type settings struct {
	logger  *slog.Logger
	client  *ytdlp.Client
	cache   *transcriptcache.Cache
	scratch *scratch.Manager
	journal *journal.Store
}

// Option customizes service construction.
type Option func(*settings)

// WithLogger attaches the root logger; components derive their own scopes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClient replaces the yt-dlp client, primarily for tests.
func WithClient(client *ytdlp.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.client = client
		}
	}
}

// WithCache replaces the transcript cache.
func WithCache(cache *transcriptcache.Cache) Option {
	return func(s *settings) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithScratch replaces the scratch manager.
func WithScratch(manager *scratch.Manager) Option {
	return func(s *settings) {
		if manager != nil {
			s.scratch = manager
		}
	}
}

// WithJournal attaches a fetch journal. A nil journal disables journaling.
func WithJournal(store *journal.Store) Option {
	return func(s *settings) {
		s.journal = store
	}
}

// NewService builds the façade from configuration, constructing any
// collaborator not supplied via options.
func NewService(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("transcripts service requires configuration")
	}

	var opt settings
	for _, apply := range opts {
		apply(&opt)
	}
	root := opt.logger
	if root == nil {
		root = logging.NewNop()
	}

	svc := &Service{
		cfg:     cfg,
		client:  opt.client,
		cache:   opt.cache,
		scratch: opt.scratch,
		journal: opt.journal,
		logger:  logging.NewComponentLogger(root, "transcripts"),
	}
	if svc.client == nil {
		svc.client = ytdlp.NewClient(cfg, ytdlp.WithLogger(root))
	}
	if svc.cache == nil {
		svc.cache = transcriptcache.NewCache(cfg.Paths.CacheDir, root)
	}
	if svc.scratch == nil {
		manager, err := scratch.NewManager(cfg.Paths.ScratchDir, root)
		if err != nil {
			return nil, err
		}
		svc.scratch = manager
	}
	return svc, nil
}

// GetVideoInfo fetches and normalizes the metadata dump for a video.
func (s *Service) GetVideoInfo(ctx context.Context, videoID string) (mediainfo.VideoMetadata, error) {
	videoID = strings.TrimSpace(videoID)
	ctx = s.stampContext(ctx, OpGetVideoInfo, videoID, "")
	start := time.Now()

	meta, err := s.getVideoInfo(ctx, videoID)
	s.observe(ctx, OpGetVideoInfo, videoID, "", false, start, err)
	return meta, err
}

func (s *Service) getVideoInfo(ctx context.Context, videoID string) (mediainfo.VideoMetadata, error) {
	if videoID == "" {
		return mediainfo.VideoMetadata{}, services.Wrap(services.ErrValidation, OpGetVideoInfo, "video ID required", nil)
	}

	raw, err := s.client.DumpMetadata(ctx, videoID)
	if err != nil {
		return mediainfo.VideoMetadata{}, err
	}
	payload, err := ytdlp.ParseMetadata(raw)
	if err != nil {
		return mediainfo.VideoMetadata{}, err
	}

	meta := mediainfo.FromPayload(payload)
	logging.WithContext(ctx, s.logger).Info("video info fetched",
		logging.String("title", meta.Title),
		logging.Int("track_count", len(meta.Tracks)))
	return meta, nil
}

// DownloadSubtitle returns the plain transcript for a video and language. The
// language may carry the auto qualifier from a track listing; the cache keys
// on the string exactly as supplied.
func (s *Service) DownloadSubtitle(ctx context.Context, videoID, language string) (string, error) {
	videoID = strings.TrimSpace(videoID)
	language = strings.TrimSpace(language)
	ctx = s.stampContext(ctx, OpDownloadSubtitle, videoID, language)
	start := time.Now()

	text, cacheHit, err := s.downloadSubtitle(ctx, videoID, language)
	s.observe(ctx, OpDownloadSubtitle, videoID, language, cacheHit, start, err)
	return text, err
}

func (s *Service) downloadSubtitle(ctx context.Context, videoID, language string) (string, bool, error) {
	if videoID == "" {
		return "", false, services.Wrap(services.ErrValidation, OpDownloadSubtitle, "video ID required", nil)
	}
	if language == "" {
		return "", false, services.Wrap(services.ErrValidation, OpDownloadSubtitle, "language required", nil)
	}

	logger := logging.WithContext(ctx, s.logger)
	if text, ok, err := s.cache.Load(videoID, language); err != nil {
		logger.Warn("cache read failed", logging.Error(err))
	} else if ok {
		logger.Info("transcript served from cache", logging.Bool(logging.FieldCacheHit, true))
		return text, true, nil
	}

	normalized := mediainfo.NormalizeLanguage(language)
	session, err := s.scratch.Begin(ctx)
	if err != nil {
		return "", false, err
	}
	defer s.closeSession(session)

	base := session.Base(videoID)
	if err := s.client.DownloadSubtitles(ctx, videoID, normalized, ytdlp.FormatVTT, base); err != nil {
		return "", false, err
	}

	path, ok := firstExisting(ytdlp.SubtitleCandidates(base, normalized, ytdlp.FormatVTT))
	if !ok {
		return "", false, services.Wrap(services.ErrSubtitleNotFound, OpDownloadSubtitle,
			fmt.Sprintf("no %q subtitles available for %s", language, videoID), nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read subtitle file: %w", err)
	}

	text := subtitles.ParseTranscript(string(data))
	if err := s.cache.Store(videoID, language, text); err != nil {
		logger.Warn("cache write failed", logging.Error(err))
	}

	logger.Info("transcript downloaded",
		logging.Int("characters", len(text)),
		logging.Bool(logging.FieldCacheHit, false))
	return text, false, nil
}

// GetSubtitleWithTimestamps returns timestamped entries for a video and
// language. It never fails: any error is logged and an empty slice returned.
func (s *Service) GetSubtitleWithTimestamps(ctx context.Context, videoID, language string) []subtitles.Entry {
	videoID = strings.TrimSpace(videoID)
	language = strings.TrimSpace(language)
	ctx = s.stampContext(ctx, OpGetSubtitleWithTimestamps, videoID, language)
	start := time.Now()

	entries, err := s.fetchTimestamped(ctx, videoID, language)
	s.observe(ctx, OpGetSubtitleWithTimestamps, videoID, language, false, start, err)
	if err != nil {
		logging.WithContext(ctx, s.logger).Warn("timestamped fetch failed", logging.Error(err))
		return []subtitles.Entry{}
	}
	if entries == nil {
		entries = []subtitles.Entry{}
	}
	return entries
}

func (s *Service) fetchTimestamped(ctx context.Context, videoID, language string) ([]subtitles.Entry, error) {
	if videoID == "" {
		return nil, services.Wrap(services.ErrValidation, OpGetSubtitleWithTimestamps, "video ID required", nil)
	}
	if language == "" {
		return nil, services.Wrap(services.ErrValidation, OpGetSubtitleWithTimestamps, "language required", nil)
	}

	logger := logging.WithContext(ctx, s.logger)
	normalized := mediainfo.NormalizeLanguage(language)
	session, err := s.scratch.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.closeSession(session)
	base := session.Base(videoID)

	entries, jsonErr := s.fetchJSON3(ctx, videoID, normalized, base)
	if jsonErr == nil {
		return entries, nil
	}
	logger.Debug("json3 fetch failed; falling back to vtt", logging.Error(jsonErr))

	if err := s.client.DownloadSubtitles(ctx, videoID, normalized, ytdlp.FormatVTT, base); err != nil {
		return nil, err
	}
	path, ok := firstExisting(ytdlp.SubtitleCandidates(base, normalized, ytdlp.FormatVTT))
	if !ok {
		return nil, services.Wrap(services.ErrSubtitleNotFound, OpGetSubtitleWithTimestamps,
			fmt.Sprintf("no %q subtitles available for %s", language, videoID), nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}
	return subtitles.ParseEntries(string(data)), nil
}

func (s *Service) fetchJSON3(ctx context.Context, videoID, normalized, base string) ([]subtitles.Entry, error) {
	if err := s.client.DownloadSubtitles(ctx, videoID, normalized, ytdlp.FormatJSON3, base); err != nil {
		return nil, err
	}
	path, ok := firstExisting(ytdlp.SubtitleCandidates(base, normalized, ytdlp.FormatJSON3))
	if !ok {
		return nil, services.Wrap(services.ErrSubtitleNotFound, OpGetSubtitleWithTimestamps,
			fmt.Sprintf("no json3 subtitles produced for %s", videoID), nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}
	return subtitles.ParseJSON3(string(data))
}

// Cache exposes the transcript cache for operator commands.
func (s *Service) Cache() *transcriptcache.Cache {
	return s.cache
}

// Scratch exposes the scratch manager for operator commands.
func (s *Service) Scratch() *scratch.Manager {
	return s.scratch
}

// Client exposes the underlying yt-dlp client.
func (s *Service) Client() *ytdlp.Client {
	return s.client
}

func (s *Service) stampContext(ctx context.Context, op, videoID, language string) context.Context {
	ctx = ensureContext(ctx)
	ctx = services.WithOperation(ctx, op)
	ctx = services.WithRequestID(ctx, uuid.NewString())
	if videoID != "" {
		ctx = services.WithVideoID(ctx, videoID)
	}
	if language != "" {
		ctx = services.WithLanguage(ctx, language)
	}
	return ctx
}

// observe appends a journal record for a finished operation. Journal failures
// are logged and otherwise ignored.
func (s *Service) observe(ctx context.Context, op, videoID, language string, cacheHit bool, start time.Time, err error) {
	status := journal.StatusOK
	if err != nil {
		status = journal.StatusError
	}
	rec := journal.Record{
		Operation:  op,
		VideoID:    videoID,
		Language:   language,
		CacheHit:   cacheHit,
		Status:     status,
		ErrorKind:  services.Kind(err),
		DurationMS: time.Since(start).Milliseconds(),
	}
	if appendErr := s.journal.Append(context.WithoutCancel(ctx), rec); appendErr != nil {
		s.logger.Warn("journal append failed", logging.Error(appendErr))
	}
}

func (s *Service) closeSession(session *scratch.Session) {
	if err := session.Close(); err != nil {
		s.logger.Warn("scratch cleanup failed", logging.Error(err))
	}
}

func firstExisting(paths []string) (string, bool) {
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

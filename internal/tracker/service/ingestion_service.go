package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang-broker-tracker/internal/entity"
	"golang-broker-tracker/internal/tracker/config"
	"golang-broker-tracker/internal/tracker/dto"
	"golang-broker-tracker/internal/tracker/repository"
	"golang-broker-tracker/pkg/common"
	"golang-broker-tracker/pkg/logger"
	"golang-broker-tracker/pkg/redis"
	"golang-broker-tracker/pkg/telegram"
	"golang-broker-tracker/pkg/utils"
)

// ErrRunInProgress is returned when a run is requested while another is
// still holding the run lock.
var ErrRunInProgress = errors.New("an ingestion run is already in progress")

// IngestionService drives one end-to-end pipeline run: search news per
// broker, extract rating facts, validate stock names and persist whatever
// is new. A run is safe to repeat; previously saved articles and ratings
// are skipped.
type IngestionService interface {
	Run(ctx context.Context) (*dto.RunSummary, error)
}

type ingestionService struct {
	cfg              *config.Config
	logger           *logger.Logger
	redisClient      *redis.Client
	newsSearchRepo   repository.NewsSearchRepository
	contentRepo      repository.ContentRepository
	articleRepo      repository.ArticleRepository
	ratingRepo       repository.RatingRepository
	ingestionRunRepo repository.IngestionRunRepository
	extractorService ExtractorService
	validatorService ValidatorService
	notifier         telegram.Notifier
}

// NewIngestionService creates a new IngestionService. redisClient and
// notifier may be nil; locking and notification are then skipped.
func NewIngestionService(
	cfg *config.Config,
	log *logger.Logger,
	redisClient *redis.Client,
	newsSearchRepo repository.NewsSearchRepository,
	contentRepo repository.ContentRepository,
	articleRepo repository.ArticleRepository,
	ratingRepo repository.RatingRepository,
	ingestionRunRepo repository.IngestionRunRepository,
	extractorService ExtractorService,
	validatorService ValidatorService,
	notifier telegram.Notifier,
) IngestionService {
	return &ingestionService{
		cfg:              cfg,
		logger:           log,
		redisClient:      redisClient,
		newsSearchRepo:   newsSearchRepo,
		contentRepo:      contentRepo,
		articleRepo:      articleRepo,
		ratingRepo:       ratingRepo,
		ingestionRunRepo: ingestionRunRepo,
		extractorService: extractorService,
		validatorService: validatorService,
		notifier:         notifier,
	}
}

func (s *ingestionService) Run(ctx context.Context) (*dto.RunSummary, error) {
	release, err := s.acquireRunLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	brokerNames := make([]string, 0, len(s.cfg.Brokers))
	for _, b := range s.cfg.Brokers {
		brokerNames = append(brokerNames, b.Name)
	}

	run := &entity.IngestionRun{
		Status:    entity.RunStatusRunning,
		Brokers:   brokerNames,
		StartedAt: time.Now(),
	}
	if err := s.ingestionRunRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	s.logger.Info("Ingestion run started",
		logger.IntField("run_id", int(run.ID)),
		logger.IntField("brokers", len(s.cfg.Brokers)))

	stats := make([]dto.BrokerRunStats, 0, len(s.cfg.Brokers))
	totalNew := 0
	for _, broker := range s.cfg.Brokers {
		brokerStats := s.processBroker(ctx, broker)
		totalNew += brokerStats.NewRatings
		stats = append(stats, brokerStats)
	}

	now := time.Now()
	run.Status = entity.RunStatusCompleted
	run.NewRatings = totalNew
	run.FinishedAt = &now
	if raw, err := json.Marshal(stats); err == nil {
		run.Stats = raw
	}
	if err := s.ingestionRunRepo.Update(ctx, run); err != nil {
		s.logger.Error("Failed to finalize ingestion run", logger.ErrorField(err), logger.IntField("run_id", int(run.ID)))
	}

	summary := &dto.RunSummary{
		RunID:      run.ID,
		StartedAt:  run.StartedAt,
		FinishedAt: now,
		NewRatings: totalNew,
		Brokers:    stats,
	}

	s.logger.Info("Ingestion run finished",
		logger.IntField("run_id", int(run.ID)),
		logger.IntField("new_ratings", totalNew))

	s.notify(summary)
	return summary, nil
}

// acquireRunLock serializes runs across triggers (cron, API, CLI). Without
// Redis every caller proceeds; the rating uniqueness constraint still keeps
// concurrent runs from double-writing.
func (s *ingestionService) acquireRunLock(ctx context.Context) (func(), error) {
	if s.redisClient == nil {
		return func() {}, nil
	}

	ok, err := s.redisClient.SetNX(ctx, common.RedisKeyIngestionRunLock, time.Now().Format(time.RFC3339), common.IngestionRunLockTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	return func() {
		if err := s.redisClient.Del(context.Background(), common.RedisKeyIngestionRunLock).Err(); err != nil {
			s.logger.Error("Failed to release run lock", logger.ErrorField(err))
		}
	}, nil
}

func (s *ingestionService) processBroker(ctx context.Context, broker config.Broker) dto.BrokerRunStats {
	stats := dto.BrokerRunStats{Broker: broker.Name}

	results, err := s.newsSearchRepo.Search(ctx, broker, s.cfg.News.LookbackDays)
	if err != nil {
		s.logger.Error("News search failed", logger.ErrorField(err), logger.StringField("broker", broker.Name))
		stats.Errors++
		return stats
	}
	stats.ArticlesFetched = len(results)

	for _, result := range results {
		if err := s.processArticle(ctx, broker, result, &stats); err != nil {
			s.logger.Error("Failed to process article",
				logger.ErrorField(err),
				logger.StringField("broker", broker.Name),
				logger.StringField("url", result.URL))
			stats.Errors++
		}
	}
	return stats
}

func (s *ingestionService) processArticle(ctx context.Context, broker config.Broker, result dto.NewsResult, stats *dto.BrokerRunStats) error {
	article := &entity.Article{
		Title:         utils.CleanToValidUTF8(result.Title),
		URL:           result.URL,
		PublishedDate: &result.PublishedDate,
		Source:        result.Source,
		FetchedAt:     time.Now(),
	}
	created, err := s.articleRepo.CreateOrGet(ctx, article)
	if err != nil {
		return err
	}

	if created && s.cfg.News.FetchFullContent {
		s.enrichArticle(ctx, article)
	}

	// An article already rated by this broker was fully processed in a
	// previous run; do not spend extraction calls on it again.
	if !created {
		rated, err := s.ratingRepo.ExistsForArticleBroker(ctx, article.ID, broker.Name)
		if err != nil {
			return err
		}
		if rated {
			stats.ArticlesSkipped++
			return nil
		}
	}

	facts := s.extractorService.Extract(ctx, broker.Name, result.Title, result.Description)
	stats.FactsExtracted += len(facts)

	for _, fact := range facts {
		created, err := s.saveFact(ctx, broker, article, fact)
		if err != nil {
			s.logger.Error("Failed to save rating",
				logger.ErrorField(err),
				logger.StringField("stock_name", fact.StockName),
				logger.StringField("broker", broker.Name))
			stats.Errors++
			continue
		}
		if created {
			stats.NewRatings++
		} else {
			stats.FactsRejected++
		}
	}
	return nil
}

// enrichArticle fetches the readable body of a freshly stored article.
// Failures are tolerated; extraction runs on title and description anyway.
func (s *ingestionService) enrichArticle(ctx context.Context, article *entity.Article) {
	content, err := s.contentRepo.FetchReadable(ctx, article.URL)
	if err != nil {
		s.logger.Warn("Failed to fetch article content", logger.ErrorField(err), logger.StringField("url", article.URL))
		return
	}

	article.RawContent = utils.CleanToValidUTF8(content)
	if err := s.articleRepo.UpdateRawContent(ctx, article.ID, article.RawContent); err != nil {
		s.logger.Warn("Failed to store article content", logger.ErrorField(err), logger.StringField("url", article.URL))
	}
}

// saveFact validates the extracted stock name against the master list and
// persists a rating for it. Returns false when the fact was rejected or a
// matching rating already exists.
func (s *ingestionService) saveFact(ctx context.Context, broker config.Broker, article *entity.Article, fact dto.StockRatingFact) (bool, error) {
	stock, err := s.validatorService.Validate(ctx, fact.StockName)
	if err != nil {
		return false, err
	}
	if stock == nil {
		return false, nil
	}

	rating := &entity.Rating{
		ArticleID:   article.ID,
		StockName:   stock.CompanyName,
		StockTicker: stock.Symbol,
		Rating:      fact.Rating,
		Broker:      broker.Name,
		TargetPrice: fact.TargetPrice,
		Currency:    common.DefaultCurrency,
		EntryDate:   utils.TimeNowIST(),
	}
	return s.ratingRepo.CreateIfAbsent(ctx, rating)
}

func (s *ingestionService) notify(summary *dto.RunSummary) {
	if s.notifier == nil || !s.cfg.Telegram.Enabled {
		return
	}
	if err := s.notifier.SendMessage(telegram.FormatRunSummary(summary)); err != nil {
		s.logger.Error("Failed to send run summary notification", logger.ErrorField(err))
	}
}

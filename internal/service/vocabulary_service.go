package service

import (
	"context"
	"errors"
	"fmt"

	"firefly-assistant/internal/models"
	"firefly-assistant/pkg/cache"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrVocabularyFetch means the categories or tags could not be loaded, so
// nothing can be validated.
var ErrVocabularyFetch = errors.New("failed to fetch categories and tags")

type VocabularyFetcher interface {
	GetCategories(ctx context.Context, limit int) (map[string]string, error)
	GetTags(ctx context.Context, limit int) (map[string]string, error)
}

type VocabularyService struct {
	client          VocabularyFetcher
	cache           *cache.Cache
	categoriesLimit int
	tagsLimit       int
	logger          *zap.Logger
}

func NewVocabularyService(client VocabularyFetcher, c *cache.Cache, categoriesLimit, tagsLimit int, logger *zap.Logger) *VocabularyService {
	return &VocabularyService{
		client:          client,
		cache:           c,
		categoriesLimit: categoriesLimit,
		tagsLimit:       tagsLimit,
		logger:          logger,
	}
}

// Fetch loads categories and tags from the ledger, one request each, and
// refreshes the cached copy.
func (s *VocabularyService) Fetch(ctx context.Context) (*models.Vocabulary, error) {
	var categories, tags map[string]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.client.GetCategories(gctx, s.categoriesLimit)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = s.client.GetTags(gctx, s.tagsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Vocabulary fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrVocabularyFetch, err)
	}

	vocab := &models.Vocabulary{Categories: categories, Tags: tags}
	s.cache.Set(cache.KeyTagsAndCategories, vocab)

	s.logger.Debug("Vocabulary fetched",
		zap.Int("categories", len(categories)),
		zap.Int("tags", len(tags)),
	)
	return vocab, nil
}

// Cached returns the cached vocabulary, fetching it on a miss.
func (s *VocabularyService) Cached(ctx context.Context) (*models.Vocabulary, error) {
	if vocab, ok := cache.GetAs[*models.Vocabulary](s.cache, cache.KeyTagsAndCategories); ok {
		s.logger.Debug("Using cached vocabulary")
		return vocab, nil
	}
	return s.Fetch(ctx)
}

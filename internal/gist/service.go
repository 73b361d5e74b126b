// Package gist turns raw document text into a finished summary. It wraps a
// summarizer backend with caching for repeated inputs and a map-reduce pass
// for inputs too long for a single model call.
package gist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"instagist/internal/domain"
	"instagist/internal/summarizer"
)

const (
	chunkMaxChars        = 12_000
	chunkMaxParallelism  = 4
	summaryCacheLifetime = 24 * time.Hour
)

type Service struct {
	summarizer summarizer.Summarizer
	cache      *summaryCache
	log        *slog.Logger
}

type Request struct {
	Document   domain.Document
	Style      domain.Style
	Regenerate bool
}

type Result struct {
	Text     string
	Provider string
	Model    string
	CacheHit bool
	Chunks   int
}

func NewService(s summarizer.Summarizer, log *slog.Logger) *Service {
	return &Service{
		summarizer: s,
		cache:      newSummaryCache(summaryCacheMaxEntries),
		log:        log,
	}
}

// Summarize produces a summary for the request document. Identical inputs are
// served from cache unless the request asks for regeneration.
func (s *Service) Summarize(ctx context.Context, req Request) (Result, error) {
	text := strings.TrimSpace(req.Document.Text)
	if text == "" {
		return Result{}, summarizer.ErrEmptyInput
	}

	now := time.Now().UTC()
	key := cacheKey(s.summarizer.Name(), req.Style, text)

	if !req.Regenerate {
		if cached, ok := s.cache.get(key, now); ok {
			s.log.InfoContext(ctx, "Serving summary from cache",
				"backend", s.summarizer.Name(),
				"style", req.Style,
				"textLen", len(text))

			return s.result(cached, 0, true), nil
		}
	}

	chunks := splitText(text, chunkMaxChars)

	var summary string
	var err error

	if len(chunks) <= 1 {
		summary, err = s.summarizer.Summarize(ctx, summarizer.Input{
			Text:      text,
			Style:     req.Style,
			SourceURL: req.Document.SourceURL,
		})
	} else {
		s.log.InfoContext(ctx, "Summarizing long input in chunks",
			"backend", s.summarizer.Name(),
			"style", req.Style,
			"chunks", len(chunks),
			"textLen", len(text))

		summary, err = s.summarizeChunks(ctx, chunks, req)
	}
	if err != nil {
		return Result{}, fmt.Errorf("summarize document: %w", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return Result{}, errors.New("summarizer returned empty summary")
	}

	s.cache.set(key, summary, now.Add(summaryCacheLifetime), now)

	return s.result(summary, len(chunks), false), nil
}

// summarizeChunks condenses each chunk in parallel, then summarizes the
// joined condensations with the requested style. Chunk order is preserved.
func (s *Service) summarizeChunks(
	ctx context.Context,
	chunks []string,
	req Request,
) (string, error) {
	workerCount := chunkMaxParallelism
	if workerCount > len(chunks) {
		workerCount = len(chunks)
	}

	type task struct {
		resultIndex int
		chunk       string
	}

	partials := make([]string, len(chunks))
	errs := make([]error, len(chunks))
	tasks := make(chan task)

	var wg sync.WaitGroup

	for range workerCount {
		wg.Go(func() {
			for t := range tasks {
				partial, err := s.summarizer.Summarize(ctx, summarizer.Input{
					Text:  t.chunk,
					Style: domain.StyleParagraph,
				})
				if err != nil {
					errs[t.resultIndex] = fmt.Errorf(
						"summarize chunk %d: %w", t.resultIndex+1, err,
					)

					continue
				}

				partials[t.resultIndex] = strings.TrimSpace(partial)
			}
		})
	}

	for i := range chunks {
		tasks <- task{
			resultIndex: i,
			chunk:       chunks[i],
		}
	}

	close(tasks)
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return "", err
	}

	combined := strings.Join(partials, chunkSeparator)
	if utf8.RuneCountInString(combined) > chunkMaxChars {
		combined = string([]rune(combined)[:chunkMaxChars])
	}

	return s.summarizer.Summarize(ctx, summarizer.Input{
		Text:      combined,
		Style:     req.Style,
		SourceURL: req.Document.SourceURL,
	})
}

func (s *Service) result(summary string, chunks int, cacheHit bool) Result {
	return Result{
		Text:     summary,
		Provider: s.summarizer.Name(),
		Model:    s.summarizer.Model(),
		CacheHit: cacheHit,
		Chunks:   chunks,
	}
}

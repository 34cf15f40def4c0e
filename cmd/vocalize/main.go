// Command vocalize adds niqqud to a text file from the command line.
//
// It reads a UTF-8 Hebrew text file, checks the shared vocalization cache,
// and on a miss picks the fresh-vocalization or completion prompt based on
// how much niqqud the text already carries. The result is written to stdout
// or -out and stored back in the cache so reruns skip the provider. With
// -syllables it also prints the syllable division, one word per line.
//
// Requires PROVIDER_API_KEY (or the provider section of CONFIG_PATH). When
// the database is unreachable the tool runs uncached.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/myhebrew-backend/internal/adapter/kvstore"
	"github.com/heartmarshall/myhebrew-backend/internal/adapter/postgres"
	"github.com/heartmarshall/myhebrew-backend/internal/adapter/postgres/kv"
	"github.com/heartmarshall/myhebrew-backend/internal/adapter/provider/claude"
	"github.com/heartmarshall/myhebrew-backend/internal/config"
	"github.com/heartmarshall/myhebrew-backend/internal/domain"
	"github.com/heartmarshall/myhebrew-backend/internal/parser"
	"github.com/heartmarshall/myhebrew-backend/internal/service/textstate"
)

func main() {
	in := flag.String("in", "", "path to the input text file (required)")
	out := flag.String("out", "", "path for the vocalized output (default stdout)")
	syllables := flag.Bool("syllables", false, "also print the syllable division")
	noCache := flag.Bool("no-cache", false, "skip the database cache")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Usage: vocalize -in=text.txt [-out=result.txt] [-syllables] [-no-cache]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	provider, err := claude.New(cfg.Provider, logger)
	if err != nil {
		logger.Error("create provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		logger.Error("read input", slog.String("error", err.Error()))
		os.Exit(1)
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		logger.Error("input file is empty")
		os.Exit(1)
	}

	ctx := context.Background()

	var store kvstore.Store
	if !*noCache {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pool, err := postgres.NewPool(connectCtx, cfg.Database)
		cancel()
		if err != nil {
			logger.Warn("cache unavailable, running uncached", slog.String("error", err.Error()))
		} else {
			defer pool.Close()
			store = kv.New(pool)
		}
	}

	full, cached := lookupCache(ctx, logger, store, text)
	if cached {
		logger.Info("vocalization served from cache")
	} else {
		full = text
		switch domain.DetectNiqqud(text) {
		case domain.NiqqudFull:
			logger.Info("text already fully vocalized")
		case domain.NiqqudPartial:
			full, err = provider.Complete(ctx, text)
		default:
			full, err = provider.Vocalize(ctx, text)
		}
		if err != nil {
			logger.Error("vocalize", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if !domain.HasNiqqud(full) {
			logger.Error("provider returned text without niqqud")
			os.Exit(1)
		}
		storeCache(ctx, logger, store, text, full)
	}

	if *out == "" {
		fmt.Println(full)
	} else if err := os.WriteFile(*out, []byte(full+"\n"), 0o644); err != nil {
		logger.Error("write output", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *syllables {
		reply, err := provider.Syllabify(ctx, full)
		if err != nil {
			logger.Error("syllabify", slog.String("error", err.Error()))
			os.Exit(1)
		}
		data, warnings := parser.ParseSyllableResponse(reply)
		if data == nil {
			logger.Error("syllabification reply could not be parsed")
			os.Exit(1)
		}
		for _, w := range warnings {
			logger.Warn(w)
		}
		for _, word := range data.Words {
			fmt.Println(strings.Join(word.Syllables, "-"))
		}
	}
}

// lookupCache returns the cached full form for text, if one exists.
func lookupCache(ctx context.Context, logger *slog.Logger, store kvstore.Store, text string) (string, bool) {
	if store == nil {
		return "", false
	}
	raw, err := store.Get(ctx, textstate.CacheKey(text))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("cache lookup", slog.String("error", err.Error()))
		}
		return "", false
	}
	cache, ok := textstate.DecodeCache(raw)
	if !ok || !cache.HasFull() {
		return "", false
	}
	return cache.Full, true
}

// storeCache records the vocalization best-effort; a failure only costs a
// provider call on the next run.
func storeCache(ctx context.Context, logger *slog.Logger, store kvstore.Store, text, full string) {
	if store == nil {
		return
	}
	cache := domain.NewTextCache(text)
	cache.Full = full
	key, value, err := textstate.EncodeCache(cache)
	if err != nil {
		logger.Warn("encode cache entry", slog.String("error", err.Error()))
		return
	}
	if err := store.Set(ctx, key, value); err != nil {
		logger.Warn("store cache entry", slog.String("error", err.Error()))
	}
}

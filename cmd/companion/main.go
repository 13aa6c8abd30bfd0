package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"companion/internal/classify"
	"companion/internal/config"
	"companion/internal/mind"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	// Validate everything config-derived before the store is open so a bad
	// value cannot bypass the deferred flush.
	traits, err := mind.NewTraitProfile(map[mind.Trait]float64{
		mind.TraitOpenness:          cfg.TraitOpenness,
		mind.TraitConscientiousness: cfg.TraitConscientiousness,
		mind.TraitExtraversion:      cfg.TraitExtraversion,
		mind.TraitAgreeableness:     cfg.TraitAgreeableness,
		mind.TraitNeuroticism:       cfg.TraitNeuroticism,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("trait profile")
	}

	tuning := mind.DefaultTuning()
	tuning.PostInterval = cfg.PostInterval

	store, err := mind.NewStore(cfg.StoragePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer store.Close()

	companion := store.Companion(cfg.CompanionID, traits, mind.WithTuning(tuning))
	classifier := classify.WithTimeout(classify.NewKeyword(), cfg.ClassifyTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := mind.NewScheduler(store, cfg.TickInterval, func(id string, d mind.BehaviorDecision) {
		printDecision(id, d)
	})
	go sched.Run(ctx)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	fmt.Printf("talking to %s — plain text is chat, /selfie /post /say are commands, ctrl-d quits\n", cfg.CompanionID)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if req := companion.Command(line); req != nil {
			log.Info().Str("intent", string(req.Intent)).Msg("command queued")
		}

		st, err := classifier.Classify(ctx, mind.StimulusText, line)
		if err != nil {
			log.Error().Err(err).Msg("classify")
			continue
		}

		decision, err := companion.Ingest(ctx, st)
		switch {
		case errors.Is(err, mind.ErrStorageFull):
			// Persist, evict a chunk, retry once.
			if err := store.Save(companion); err != nil {
				log.Error().Err(err).Msg("save before evict")
				continue
			}
			companion.EvictMemory(companion.MemoryLen() / 4)
			decision, err = companion.Ingest(ctx, st)
			if err != nil {
				log.Error().Err(err).Msg("ingest after evict")
				continue
			}
		case err != nil:
			log.Error().Err(err).Msg("ingest")
			continue
		}

		if decision != nil {
			printDecision(cfg.CompanionID, *decision)
		}
		sched.Notify(cfg.CompanionID)
	}

	if err := store.SaveAll(); err != nil {
		log.Error().Err(err).Msg("save on exit")
	}
}

func printDecision(id string, d mind.BehaviorDecision) {
	var parts []string
	for k, v := range d.Params {
		parts = append(parts, k+"="+v)
	}
	fmt.Printf("[%s] %s (%.2f) %s\n", id, d.Action, d.Confidence, strings.Join(parts, " "))
}

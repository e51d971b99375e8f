// Command matchbot plays one side of a match against a running peer.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	app "github.com/rocketscienceinc/matchsync/internal"
	"github.com/rocketscienceinc/matchsync/internal/client"
	"github.com/rocketscienceinc/matchsync/internal/config"
	"github.com/rocketscienceinc/matchsync/internal/feature"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
	"github.com/rocketscienceinc/matchsync/internal/reward"
	"github.com/rocketscienceinc/matchsync/internal/service"
	"github.com/rocketscienceinc/matchsync/internal/turnsync"
)

var ErrPartnerNotFound = errors.New("bot partner id is empty")

func main() {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get current directory: %v\n", err)
		os.Exit(1)
	}

	conf := config.MustLoadDir(workDir)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: conf.Level()}))

	if err = run(logger, conf); err != nil {
		logger.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, conf *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conf.Bot.PartnerID == "" {
		return ErrPartnerNotFound
	}

	current, err := feature.NewRegistry(app.FeatureOverrides(conf.Features)).Get(conf.Bot.Feature)
	if err != nil {
		return err
	}

	peer := client.NewHTTP(logger, conf.Bot.PeerURL, conf.Bot.Token, conf.Bot.RequestTimeout)
	if conf.Bot.Token == "" {
		if err = peer.IssueToken(ctx, conf.Bot.ParticipantID); err != nil {
			return err
		}
	}

	clock := clockwork.NewRealClock()
	handoff := reward.NewHandoff(logger, peer, reward.NewMemoryClaims(), &summaryLogger{logger: logger})

	controller := turnsync.New(logger, peer, turnsync.Options{
		ParticipantID:        conf.Bot.ParticipantID,
		PartnerID:            conf.Bot.PartnerID,
		Feature:              current,
		Rewarder:             handoff,
		Notifier:             &turnLogger{logger: logger},
		Clock:                clock,
		PollInterval:         conf.Bot.PollInterval,
		MaxTransientFailures: conf.Bot.MaxTransientFailures,
	})
	defer controller.Close()

	bot := service.NewBot(logger, controller, conf.Bot.ParticipantID, current, clock, conf.Bot.MoveDelay)

	if _, err = bot.Play(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

type turnLogger struct {
	logger *slog.Logger
}

func (that *turnLogger) YourTurn(_ context.Context, state matchstate.State) error {
	that.logger.Info("bot's turn", "match", state.ID(), "version", state.Version())

	return nil
}

type summaryLogger struct {
	logger *slog.Logger
}

func (that *summaryLogger) ShowSummary(summary reward.Summary) {
	that.logger.Info("match summary",
		"match", summary.State.ID(),
		"status", summary.Status,
		"error", summary.Err,
	)
}

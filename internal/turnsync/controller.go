// Package turnsync owns the per-match turn state machine of one participant. It polls the
// peer while the partner plays, merges authoritative answers as soon as they arrive and
// hands the completed match to the reward handoff exactly once.
package turnsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/matchsync/internal/apperror"
	"github.com/rocketscienceinc/matchsync/internal/client"
	"github.com/rocketscienceinc/matchsync/internal/entity"
	"github.com/rocketscienceinc/matchsync/internal/feature"
	"github.com/rocketscienceinc/matchsync/internal/matchstate"
	"github.com/rocketscienceinc/matchsync/internal/reward"
	"github.com/rocketscienceinc/matchsync/pkg/api"
)

const (
	DefaultPollInterval         = 4 * time.Second
	DefaultMaxTransientFailures = 3
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrClosed             = errors.New("controller is closed")
	ErrNotStarted         = errors.New("controller has no match yet")
	ErrNotRetryable       = errors.New("state cannot be retried")
	ErrErrored            = errors.New("controller is in an error state")
	ErrLoading            = errors.New("controller is loading")
)

// Notifier delivers the "your turn now" signal. Failures are logged and dropped.
type Notifier interface {
	YourTurn(ctx context.Context, state matchstate.State) error
}

type rewarder interface {
	Complete(ctx context.Context, participantID string, state matchstate.State, amount int) (bool, error)
}

type Options struct {
	ParticipantID string
	PartnerID     string
	Feature       feature.Feature

	Rewarder rewarder
	Notifier Notifier
	Listener func(View)

	Clock                clockwork.Clock
	PollInterval         time.Duration
	MaxTransientFailures int
}

type Controller struct {
	logger *slog.Logger
	client client.MatchClient

	participantID string
	partnerID     string
	feature       feature.Feature
	rewarder      rewarder
	notifier      Notifier
	listener      func(View)

	clock        clockwork.Clock
	pollInterval time.Duration
	maxFailures  int

	// lifetime is cancelled by Close
	lifetime context.Context
	cancel   context.CancelFunc

	mu         sync.Mutex
	view       View
	closed     bool
	submitting bool
	recreated  bool
	resync     bool
	failures   int
	pollCancel context.CancelFunc

	updates chan struct{}
	wg      sync.WaitGroup
}

func New(logger *slog.Logger, matchClient client.MatchClient, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	if opts.MaxTransientFailures <= 0 {
		opts.MaxTransientFailures = DefaultMaxTransientFailures
	}

	lifetime, cancel := context.WithCancel(context.Background())

	controller := &Controller{
		logger: logger.With("component", "turn-sync", "participant", opts.ParticipantID, "feature", opts.Feature.Key),
		client: matchClient,

		participantID: opts.ParticipantID,
		partnerID:     opts.PartnerID,
		feature:       opts.Feature,
		rewarder:      opts.Rewarder,
		notifier:      opts.Notifier,
		listener:      opts.Listener,

		clock:        opts.Clock,
		pollInterval: opts.PollInterval,
		maxFailures:  opts.MaxTransientFailures,

		lifetime: lifetime,
		cancel:   cancel,

		view: View{
			Phase:     PhaseLoading,
			Exhausted: map[entity.ResourceKind]bool{},
		},
		updates: make(chan struct{}, 1),
	}

	if controller.listener != nil {
		controller.wg.Add(1)
		go controller.dispatch()
	}

	return controller
}

// Snapshot returns the current view.
func (that *Controller) Snapshot() View {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.view.clone()
}

// Start creates or joins the pair's match. Transient failures are retried every poll
// interval until the failure bound is reached. A cooldown is terminal for the session.
func (that *Controller) Start(ctx context.Context) (View, error) {
	log := that.logger.With("method", "Start")

	ctx, release := that.bind(ctx)
	defer release()

	request := api.JoinRequest{PartnerID: that.partnerID, Feature: that.feature.Key}

	for {
		state, err := that.client.CreateOrJoin(ctx, request)
		if err == nil {
			that.apply(state)
			return that.Snapshot(), nil
		}

		if isCancellation(err) {
			return that.Snapshot(), that.cancellation(err)
		}

		if apperror.Classify(err) == apperror.KindTransientNetwork && that.countFailure() {
			log.Warn("join failed, retrying", "error", err)

			select {
			case <-ctx.Done():
				return that.Snapshot(), that.cancellation(ctx.Err())
			case <-that.clock.After(that.pollInterval):
			}

			continue
		}

		that.fail(err)

		return that.Snapshot(), err
	}
}

// Submit validates move locally and sends it to the peer. Only one submission or resource
// request may be in flight at a time.
func (that *Controller) Submit(ctx context.Context, move entity.Move) (client.MoveResult, error) {
	log := that.logger.With("method", "Submit")

	that.mu.Lock()
	if err := that.gateLocked(); err != nil {
		that.mu.Unlock()
		return client.MoveResult{}, err
	}

	normalized, err := that.feature.Validator.Validate(that.view.State, that.participantID, move)
	if err != nil {
		that.mu.Unlock()
		return client.MoveResult{}, err
	}

	that.submitting = true
	that.view.Pending = &normalized
	matchID := that.view.State.ID()
	that.mu.Unlock()

	that.emit()

	ctx, release := that.bind(ctx)
	defer release()

	result, err := that.client.SubmitMove(ctx, matchID, normalized)

	if that.finishCall() {
		return client.MoveResult{}, ErrClosed
	}

	if err != nil {
		log.Debug("move rejected", "error", err)
		that.emit()
		that.handleFailure(ctx, err)

		return client.MoveResult{}, err
	}

	that.apply(result.State)

	return result, nil
}

// UseResource spends one unit of kind. Exhaustion disables only this action.
func (that *Controller) UseResource(ctx context.Context, kind entity.ResourceKind) (client.ResourceResult, error) {
	that.mu.Lock()
	if err := that.gateLocked(); err != nil {
		that.mu.Unlock()
		return client.ResourceResult{}, err
	}

	if that.view.Exhausted[kind] || that.view.State.RemainingResourceBudget(that.participantID, kind) <= 0 {
		that.view.Exhausted[kind] = true
		that.mu.Unlock()
		that.emit()

		return client.ResourceResult{}, apperror.ErrResourceExhausted
	}

	that.submitting = true
	matchID := that.view.State.ID()
	that.mu.Unlock()

	ctx, release := that.bind(ctx)
	defer release()

	result, err := that.client.ConsumeResource(ctx, matchID, kind)

	if that.finishCall() {
		return client.ResourceResult{}, ErrClosed
	}

	if err != nil {
		if apperror.Classify(err) == apperror.KindResourceExhausted {
			that.mu.Lock()
			that.view.Exhausted[kind] = true
			that.mu.Unlock()
			that.emit()

			return client.ResourceResult{}, err
		}

		that.handleFailure(ctx, err)

		return client.ResourceResult{}, err
	}

	that.mu.Lock()
	that.view.LastHint = result.Payload
	if result.Remaining <= 0 {
		that.view.Exhausted[kind] = true
	}
	that.mu.Unlock()

	if !that.apply(result.State) {
		that.emit()
	}

	return result, nil
}

// Refresh fetches the authoritative state and re-enters whatever phase it implies.
func (that *Controller) Refresh(ctx context.Context) error {
	ctx, release := that.bind(ctx)
	defer release()

	return that.resyncNow(ctx)
}

// Retry leaves an errored phase caused by a retryable failure.
func (that *Controller) Retry(ctx context.Context) error {
	that.mu.Lock()

	if that.closed {
		that.mu.Unlock()
		return ErrClosed
	}

	if that.view.Phase != PhaseErrored {
		that.mu.Unlock()
		return nil
	}

	switch that.view.ErrorKind {
	case apperror.KindCooldownActive, apperror.KindMatchNotFound:
		err := that.view.Err
		that.mu.Unlock()

		return fmt.Errorf("%w: %w", ErrNotRetryable, err)
	}

	that.failures = 0
	started := !that.view.State.IsZero()
	that.mu.Unlock()

	if !started {
		_, err := that.Start(ctx)
		return err
	}

	return that.Refresh(ctx)
}

// RetryReward runs the reward handoff again after a failed award.
func (that *Controller) RetryReward(ctx context.Context) error {
	that.mu.Lock()
	if that.view.Phase != PhaseCompleted {
		that.mu.Unlock()
		return reward.ErrNotCompleted
	}

	if that.view.RewardClaimed && that.view.RewardErr == nil {
		that.mu.Unlock()
		return nil
	}

	state := that.view.State
	that.mu.Unlock()

	ctx, release := that.bind(ctx)
	defer release()

	that.handoff(ctx, state)
	that.emit()

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.view.RewardErr
}

// Close stops polling and discards whatever is still in flight. It must be called once
// the match screen goes away, and never from the listener.
func (that *Controller) Close() {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return
	}

	that.closed = true
	that.stopPollLocked()
	that.mu.Unlock()

	that.cancel()
	that.wg.Wait()
}

// apply merges an authoritative snapshot and reports whether the view changed.
func (that *Controller) apply(state matchstate.State) bool {
	log := that.logger.With("method", "apply", "match", state.ID())

	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return false
	}

	current := that.view.State
	if !current.IsZero() && current.ID() == state.ID() && current.NewerThan(state) {
		that.mu.Unlock()
		log.Debug("stale snapshot dropped", "version", state.Version(), "current", current.Version())

		return false
	}

	if current.ID() != state.ID() {
		that.view.Exhausted = map[entity.ResourceKind]bool{}
		that.view.LastHint = nil
		that.view.RewardClaimed = false
		that.view.RewardErr = nil
	}

	previous := that.view.Phase

	var phase Phase
	switch {
	case state.IsComplete():
		phase = PhaseCompleted
	case state.IsMyTurn(that.participantID):
		phase = PhaseMyTurn
	default:
		phase = PhasePartnerTurn
	}

	changed := phase != previous || !state.Equal(current)

	that.view.State = state
	that.view.Phase = phase
	that.view.ErrorKind = apperror.KindNone
	that.view.Err = nil
	that.view.RetryAfter = time.Time{}
	that.failures = 0
	that.resync = false
	that.managePollLocked()
	that.mu.Unlock()

	if previous == PhasePartnerTurn && phase == PhaseMyTurn {
		that.notify(state)
	}

	if phase == PhaseCompleted && previous != PhaseCompleted {
		log.Info("match completed", "score", state.MyScore(that.participantID), "partner_score", state.PartnerScore(that.participantID))
		that.handoff(that.lifetime, state)
	}

	if changed {
		that.emit()
	}

	return changed
}

func (that *Controller) handleFailure(ctx context.Context, err error) {
	log := that.logger.With("method", "handleFailure")

	if isCancellation(err) {
		return
	}

	switch kind := apperror.Classify(err); kind {
	case apperror.KindTransientNetwork:
		if !that.countFailure() {
			log.Error("too many transient failures", "error", err)
			that.fail(err)

			return
		}

		that.mu.Lock()
		that.resync = true
		that.managePollLocked()
		that.mu.Unlock()

	case apperror.KindNotYourTurn, apperror.KindMatchCompleted:
		log.Info("out of sync with peer, resyncing", "kind", kind)
		_ = that.resyncNow(ctx)

	case apperror.KindMatchNotFound:
		that.recreate(ctx, err)

	case apperror.KindInvalidMoveShape, apperror.KindDuplicateMove, apperror.KindResourceExhausted, apperror.KindNoHintAvailable:
		// soft rejections leave the match as it is

	default:
		log.Error("unrecoverable failure", "kind", kind, "error", err)
		that.fail(err)
	}
}

func (that *Controller) resyncNow(ctx context.Context) error {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return ErrClosed
	}

	matchID := that.view.State.ID()
	that.view.Pending = nil
	that.mu.Unlock()

	if matchID == "" {
		return ErrNotStarted
	}

	state, err := that.client.FetchState(ctx, matchID)
	if err != nil {
		that.handleFailure(ctx, err)
		return err
	}

	that.apply(state)

	return nil
}

// recreate runs the one automatic CreateOrJoin allowed after the match disappeared.
func (that *Controller) recreate(ctx context.Context, cause error) {
	log := that.logger.With("method", "recreate")

	that.mu.Lock()
	if that.recreated {
		that.mu.Unlock()
		log.Error("match not found again", "error", cause)
		that.fail(cause)

		return
	}

	that.recreated = true
	that.mu.Unlock()

	log.Warn("match not found, recreating", "error", cause)

	state, err := that.client.CreateOrJoin(ctx, api.JoinRequest{PartnerID: that.partnerID, Feature: that.feature.Key})
	if err != nil {
		if isCancellation(err) {
			return
		}

		if apperror.Classify(err) == apperror.KindTransientNetwork && that.countFailure() {
			that.mu.Lock()
			that.recreated = false
			that.resync = true
			that.managePollLocked()
			that.mu.Unlock()

			return
		}

		that.fail(err)

		return
	}

	that.apply(state)
}

func (that *Controller) poll(ctx context.Context) {
	defer that.wg.Done()

	ticker := that.clock.NewTicker(that.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			that.tick(ctx)
		}
	}
}

func (that *Controller) tick(ctx context.Context) {
	that.mu.Lock()
	matchID := that.view.State.ID()
	that.mu.Unlock()

	state, err := that.client.FetchState(ctx, matchID)
	if ctx.Err() != nil {
		return
	}

	if err != nil {
		that.handleFailure(ctx, err)
		return
	}

	that.apply(state)
}

// managePollLocked keeps exactly one poller alive while the partner plays or a resync
// is owed.
func (that *Controller) managePollLocked() {
	phase := that.view.Phase
	shouldPoll := !that.closed &&
		!that.view.State.IsZero() &&
		(phase == PhasePartnerTurn || (that.resync && phase != PhaseCompleted && phase != PhaseErrored))

	if shouldPoll && that.pollCancel == nil {
		ctx, cancel := context.WithCancel(that.lifetime)
		that.pollCancel = cancel
		that.wg.Add(1)

		go that.poll(ctx)
	}

	if !shouldPoll {
		that.stopPollLocked()
	}
}

func (that *Controller) stopPollLocked() {
	if that.pollCancel != nil {
		that.pollCancel()
		that.pollCancel = nil
	}
}

func (that *Controller) gateLocked() error {
	switch {
	case that.closed:
		return ErrClosed
	case that.view.State.IsZero():
		return ErrNotStarted
	case that.view.Phase == PhaseCompleted:
		return apperror.ErrMatchCompleted
	case that.view.Phase == PhaseErrored && that.view.Err != nil:
		return fmt.Errorf("%w: %w", ErrErrored, that.view.Err)
	case that.view.Phase == PhaseErrored:
		return ErrErrored
	case that.view.Phase == PhaseLoading:
		return ErrLoading
	case that.view.Phase != PhaseMyTurn:
		return apperror.ErrNotYourTurn
	case that.submitting:
		return ErrSubmissionInFlight
	}

	return nil
}

// finishCall ends an in-flight request and reports whether the controller was closed
// meanwhile.
func (that *Controller) finishCall() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.submitting = false
	that.view.Pending = nil

	return that.closed
}

// countFailure records a transient failure and reports whether it is still within bound.
func (that *Controller) countFailure() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.failures++

	return that.failures <= that.maxFailures
}

func (that *Controller) fail(err error) {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return
	}

	that.view.Phase = PhaseErrored
	that.view.ErrorKind = apperror.Classify(err)
	that.view.Err = err
	that.view.Pending = nil
	that.view.RetryAfter, _ = apperror.RetryAfter(err)
	that.resync = false
	that.stopPollLocked()
	that.mu.Unlock()

	that.emit()
}

func (that *Controller) notify(state matchstate.State) {
	if that.notifier == nil {
		return
	}

	log := that.logger.With("method", "notify")

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("notifier panicked", "panic", r)
			}
		}()

		if err := that.notifier.YourTurn(that.lifetime, state); err != nil {
			log.Warn("failed to deliver turn notification", "error", err)
		}
	}()
}

func (that *Controller) handoff(ctx context.Context, state matchstate.State) {
	if that.rewarder == nil {
		return
	}

	claimed, err := that.rewarder.Complete(ctx, that.participantID, state, that.feature.RewardAmount)

	that.mu.Lock()
	defer that.mu.Unlock()

	that.view.RewardClaimed = that.view.RewardClaimed || claimed
	that.view.RewardErr = err
}

// emit schedules a listener call. Bursts of updates are coalesced into the latest view.
func (that *Controller) emit() {
	if that.listener == nil {
		return
	}

	select {
	case that.updates <- struct{}{}:
	default:
	}
}

func (that *Controller) dispatch() {
	defer that.wg.Done()

	for {
		select {
		case <-that.lifetime.Done():
			return
		case <-that.updates:
			that.mu.Lock()
			if that.closed {
				that.mu.Unlock()
				return
			}
			view := that.view.clone()
			that.mu.Unlock()

			that.listener(view)
		}
	}
}

// bind ties a caller context to the controller lifetime.
func (that *Controller) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(that.lifetime, cancel)

	return ctx, func() {
		stop()
		cancel()
	}
}

func (that *Controller) cancellation(err error) error {
	if that.lifetime.Err() != nil {
		return ErrClosed
	}

	return err
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

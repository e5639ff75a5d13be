package line

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jcallaghan/betpool/internal/dependencies/clock"
	"github.com/jcallaghan/betpool/internal/dependencies/random"
	"github.com/jcallaghan/betpool/internal/metrics"
	"github.com/jcallaghan/betpool/internal/model"
	"github.com/jcallaghan/betpool/internal/services/emoji"
	"github.com/jcallaghan/betpool/internal/services/payout"
	"github.com/jcallaghan/betpool/internal/storage"
)

const lineIDAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Controller owns the line lifecycle: open -> locked -> resolved.
// Transitions are one-directional; resolving is what makes the payout
// engine's computation eligible to apply, and it applies exactly once.
type Controller struct {
	storage      storage.Storage
	codec        *emoji.Codec
	payoutEngine *payout.Engine
	locker       *Locker
	clock        clock.Clock
	random       random.Random
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewController creates a new line controller
func NewController(
	storage storage.Storage,
	codec *emoji.Codec,
	payoutEngine *payout.Engine,
	locker *Locker,
	clk clock.Clock,
	rnd random.Random,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		codec:        codec,
		payoutEngine: payoutEngine,
		locker:       locker,
		clock:        clk,
		random:       rnd,
		metrics:      m,
		logger:       logger,
	}
}

// Create opens a new line for the given question. Options must be at
// least two distinct non-empty strings; symbols are assigned once here
// and never change afterwards.
func (c *Controller) Create(ctx context.Context, question string, options []string, creatorID model.MemberID) (*model.Line, error) {
	cleaned := make([]string, 0, len(options))
	seen := make(map[string]bool, len(options))
	for _, option := range options {
		option = strings.TrimSpace(option)
		if option == "" || seen[strings.ToLower(option)] {
			return nil, model.ErrInvalidOptions
		}
		seen[strings.ToLower(option)] = true
		cleaned = append(cleaned, option)
	}
	if len(cleaned) < 2 {
		return nil, model.ErrInvalidOptions
	}

	now := c.clock.Now()
	line := &model.Line{
		ID:        model.LineID(c.random.String(8, lineIDAlphabet)),
		Question:  strings.TrimSpace(question),
		Options:   cleaned,
		Symbols:   c.codec.Encode(cleaned),
		Status:    model.LineStatusOpen,
		CreatorID: creatorID,
		CreatedAt: now,
	}

	if err := c.storage.SaveLine(ctx, line); err != nil {
		c.logger.Error("failed to save line",
			slog.String("line_id", string(line.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.metrics.LinesCreated.Inc()
	c.logger.Info("line opened",
		slog.String("line_id", string(line.ID)),
		slog.String("question", line.Question),
		slog.Int("option_count", len(line.Options)),
	)

	return line, nil
}

// Get retrieves a line by ID
func (c *Controller) Get(ctx context.Context, id model.LineID) (*model.Line, error) {
	return c.storage.GetLine(ctx, id)
}

// List retrieves all lines
func (c *Controller) List(ctx context.Context) ([]*model.Line, error) {
	return c.storage.ListLines(ctx)
}

// Stakes retrieves the outstanding stakes on a line
func (c *Controller) Stakes(ctx context.Context, id model.LineID) ([]*model.Stake, error) {
	if _, err := c.storage.GetLine(ctx, id); err != nil {
		return nil, err
	}
	return c.storage.GetStakesForLine(ctx, id)
}

// BindMessage records the opaque reference to the rendered artifact the
// line is displayed in, so the collaborator can correlate future signals.
func (c *Controller) BindMessage(ctx context.Context, id model.LineID, messageRef string) (*model.Line, error) {
	release := c.locker.Acquire(id)
	defer release()

	line, err := c.storage.GetLine(ctx, id)
	if err != nil {
		return nil, err
	}

	line.MessageRef = messageRef
	if err := c.storage.SaveLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// Lock freezes an open line so no further stakes can be placed or
// withdrawn. Locking anything but an open line fails with ErrNotOpen.
func (c *Controller) Lock(ctx context.Context, id model.LineID) (*model.Line, error) {
	release := c.locker.Acquire(id)
	defer release()

	line, err := c.storage.GetLine(ctx, id)
	if err != nil {
		return nil, err
	}

	if line.Status != model.LineStatusOpen {
		return nil, model.ErrNotOpen
	}

	line.Status = model.LineStatusLocked
	line.LockedAt = c.clock.Now()

	if err := c.storage.SaveLine(ctx, line); err != nil {
		return nil, err
	}

	c.metrics.LinesLocked.Inc()
	c.logger.Info("line locked", slog.String("line_id", string(id)))

	return line, nil
}

// Resolve declares the winning option, computes the payout and applies it.
// A line may be resolved from locked or directly from open; the operator
// is not required to lock first. Resolving a resolved line fails with
// ErrAlreadyResolved, which is the guard that makes double payout
// unreachable.
func (c *Controller) Resolve(ctx context.Context, id model.LineID, winningOption string) (*model.Line, *model.PayoutResult, error) {
	release := c.locker.Acquire(id)
	defer release()

	line, err := c.storage.GetLine(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if line.Status == model.LineStatusResolved {
		return nil, nil, model.ErrAlreadyResolved
	}
	if !line.HasOption(winningOption) {
		return nil, nil, model.ErrUnknownOption
	}

	stakes, err := c.storage.GetStakesForLine(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	result := c.payoutEngine.Compute(line, stakes, winningOption)
	if err := c.payoutEngine.Apply(ctx, result); err != nil {
		return nil, nil, err
	}

	line.Status = model.LineStatusResolved
	line.WinningOption = winningOption
	line.ResolvedAt = c.clock.Now()

	if err := c.storage.SaveLine(ctx, line); err != nil {
		return nil, nil, err
	}

	c.metrics.LinesResolved.Inc()
	c.logger.Info("line resolved",
		slog.String("line_id", string(id)),
		slog.String("winning_option", winningOption),
		slog.Int("pot", result.Pot),
		slog.Int("remainder", result.Remainder),
	)

	return line, result, nil
}

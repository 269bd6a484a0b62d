package command

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"growstat-backend/internal/metrics"
	"growstat-backend/internal/services"
	"growstat-backend/pkg/logger"

	"go.uber.org/zap"
)

type Options struct {
	// Timeout bounds every dispatched command. Zero means no extra bound.
	Timeout time.Duration
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

type Dispatcher struct {
	svc     Service
	timeout time.Duration
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewDispatcher(svc Service, opts Options) *Dispatcher {
	d := &Dispatcher{
		svc:     svc,
		timeout: opts.Timeout,
		metrics: opts.Metrics,
		log:     opts.Logger,
	}
	if d.log == nil {
		d.log = logger.Named("command")
	}
	return d
}

// Normalize maps a raw command token such as "/SiSi@growbot" to its
// canonical name. Unknown names are returned lower-cased.
func Normalize(raw string) string {
	name := strings.TrimPrefix(strings.TrimSpace(raw), "/")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// Dispatch runs cmd and always returns a Result. Failures are logged here
// and reported through Result.Kind.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (res Result) {
	name := Normalize(cmd.Name)
	cmd.CallerID = strings.TrimSpace(cmd.CallerID)
	cmd.DisplayName = strings.TrimSpace(cmd.DisplayName)
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("command panicked",
				zap.String("command", name),
				zap.String("caller_id", cmd.CallerID),
				zap.Any("panic", r),
			)
			res = Result{Kind: KindUnavailable, Text: unavailableText}
		}
		label := name
		if res.Kind == KindUnknownCommand {
			label = "unknown"
		}
		d.metrics.Command(label, string(res.Kind))
	}()

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	switch name {
	case CmdStart, CmdHelp:
		text := helpText
		if d.svc.IsAdmin(cmd.CallerID) {
			text += adminHelpText
		}
		return Result{Kind: KindSuccess, Text: text}
	case CmdGrow:
		return d.grow(ctx, cmd)
	case CmdStatus:
		return d.status(ctx, cmd)
	case CmdLeaderboard:
		return d.leaderboard(ctx, cmd)
	case CmdAdminGive, CmdAdminSet, CmdAdminDelete:
		return d.admin(ctx, name, cmd)
	default:
		return Result{
			Kind: KindUnknownCommand,
			Text: fmt.Sprintf("Unknown command /%s. Send /help for the list of commands.", name),
		}
	}
}

func (d *Dispatcher) grow(ctx context.Context, cmd Command) Result {
	res, err := d.svc.Grow(ctx, cmd.CallerID, cmd.DisplayName)
	if err != nil {
		return d.failure(CmdGrow, cmd, err, noCallerText)
	}
	kind := KindSuccess
	if !res.Allowed {
		kind = KindDenied
	}
	return Result{Kind: kind, Text: renderGrowth(res), Payload: res}
}

func (d *Dispatcher) status(ctx context.Context, cmd Command) Result {
	res, err := d.svc.Status(ctx, cmd.CallerID, cmd.DisplayName)
	if err != nil {
		return d.failure(CmdStatus, cmd, err, noCallerText)
	}
	return Result{Kind: KindSuccess, Text: renderStatus(res), Payload: res}
}

func (d *Dispatcher) leaderboard(ctx context.Context, cmd Command) Result {
	n := 0
	if len(cmd.Args) > 0 {
		parsed, err := strconv.Atoi(cmd.Args[0])
		if err != nil || parsed <= 0 {
			return Result{Kind: KindInvalidArgument, Text: "❌ The leaderboard size must be a positive whole number."}
		}
		n = parsed
	}

	board, err := d.svc.Leaderboard(ctx, n)
	if errors.Is(err, services.ErrLeaderboardEmpty) {
		return Result{Kind: KindEmpty, Text: emptyBoardText}
	}
	if err != nil {
		return d.failure(CmdLeaderboard, cmd, err, "")
	}
	return Result{Kind: KindSuccess, Text: renderLeaderboard(board), Payload: board}
}

func (d *Dispatcher) admin(ctx context.Context, name string, cmd Command) Result {
	// Refuse before looking at arguments so usage text is not shown to
	// callers who cannot run the command.
	if !d.svc.IsAdmin(cmd.CallerID) {
		d.log.Warn("unauthorized admin command",
			zap.String("command", name),
			zap.String("caller_id", cmd.CallerID),
		)
		return Result{Kind: KindForbidden, Text: forbiddenText}
	}

	wantArgs := 2
	if name == CmdAdminDelete {
		wantArgs = 1
	}
	if len(cmd.Args) < wantArgs || strings.TrimSpace(cmd.Args[0]) == "" {
		return Result{Kind: KindInvalidArgument, Text: usageText(name)}
	}
	target := strings.TrimSpace(cmd.Args[0])

	var (
		amount float64
		res    *services.AdminResult
		err    error
	)
	if wantArgs == 2 {
		amount, err = parseDecimal(cmd.Args[1])
		if err != nil {
			return Result{Kind: KindInvalidArgument, Text: badNumberText}
		}
	}

	switch name {
	case CmdAdminGive:
		res, err = d.svc.Give(ctx, cmd.CallerID, target, amount)
	case CmdAdminSet:
		res, err = d.svc.Set(ctx, cmd.CallerID, target, amount)
	default:
		res, err = d.svc.Remove(ctx, cmd.CallerID, target)
	}
	if errors.Is(err, services.ErrNotFound) {
		return Result{Kind: KindNotFound, Text: fmt.Sprintf("❌ User %s not found.", target)}
	}
	if err != nil {
		return d.failure(name, cmd, err, badNumberText)
	}
	return Result{Kind: KindSuccess, Text: renderAdmin(name, res, amount), Payload: res}
}

// failure maps a service error to a Result. invalidText is shown for
// ErrInvalidArgument since its meaning depends on the command.
func (d *Dispatcher) failure(name string, cmd Command, err error, invalidText string) Result {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return Result{Kind: KindForbidden, Text: forbiddenText}
	case errors.Is(err, services.ErrInvalidArgument):
		return Result{Kind: KindInvalidArgument, Text: invalidText}
	case errors.Is(err, services.ErrNotFound):
		return Result{Kind: KindNotFound, Text: "❌ User not found."}
	}

	d.log.Error("command failed",
		zap.String("command", name),
		zap.String("caller_id", cmd.CallerID),
		zap.Strings("args", cmd.Args),
		zap.Error(err),
	)
	return Result{Kind: KindUnavailable, Text: unavailableText}
}

// parseDecimal accepts plain decimal numbers, with a comma allowed as the
// decimal separator. NaN and infinities are rejected.
func parseDecimal(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", raw)
	}
	return f, nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	redisadapter "github.com/pulsepoint/pulsepoint-api/internal/adapters/redis"
	"github.com/pulsepoint/pulsepoint-api/internal/session"
)

type sessionListOptions struct {
	Email             string
	AuthenticatedOnly bool
	Limit             int
}

type sessionClearOptions struct {
	Email  string
	All    bool
	DryRun bool
	Yes    bool
}

func runListSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseSessionListFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectRedisOnly(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	pattern := redisadapter.Prefix + "*"
	cmdCtx.Logger.Info("scanning redis", "pattern", pattern)

	if err = writef(os.Stdout, "\nSession Snapshots in Redis\n"); err != nil {
		return fmt.Errorf("print session header: %w", err)
	}

	total := 0
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		row, ok, rowErr := loadSessionRow(ctx, client, key)
		if rowErr != nil {
			return rowErr
		}
		if !ok || !sessionRowMatches(row, opts) {
			continue
		}

		total++
		if printErr := printSessionRow(row); printErr != nil {
			return printErr
		}
		if opts.Limit > 0 && total >= opts.Limit {
			break
		}
	}
	if err = iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	if total == 0 {
		if err = writeln(os.Stdout, "(no sessions found)"); err != nil {
			return fmt.Errorf("print session none: %w", err)
		}
		return nil
	}
	if err = writef(os.Stdout, "\nTotal sessions: %d\n", total); err != nil {
		return fmt.Errorf("print session total: %w", err)
	}
	return nil
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseSessionClearFlags(args)
	if err != nil {
		return err
	}
	if confirmErr := confirmAction(sessionClearConfirmOptions{opts: opts}, "delete session snapshots"); confirmErr != nil {
		return confirmErr
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectRedisOnly(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	deleted, total, err := deleteSessionKeys(ctx, cmdCtx, client, opts)
	if err != nil {
		return err
	}

	if total == 0 {
		if writeErr := writeln(os.Stdout, "No session snapshots found in Redis"); writeErr != nil {
			return fmt.Errorf("print session clear summary: %w", writeErr)
		}
		return nil
	}
	if opts.DryRun {
		if writeErr := writef(os.Stdout, "Dry-run: would delete %d/%d sessions\n", deleted, total); writeErr != nil {
			return fmt.Errorf("print session dry run: %w", writeErr)
		}
		return nil
	}
	if writeErr := writef(os.Stdout, "Deleted %d/%d sessions\n", deleted, total); writeErr != nil {
		return fmt.Errorf("print session deleted: %w", writeErr)
	}
	return nil
}

type sessionRow struct {
	ID       string
	Snapshot session.Snapshot
	TTL      time.Duration
}

func loadSessionRow(ctx context.Context, client redis.UniversalClient, key string) (sessionRow, bool, error) {
	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expired between scan and read.
		return sessionRow{}, false, nil
	}
	if err != nil {
		return sessionRow{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var snap session.Snapshot
	if err = json.Unmarshal(raw, &snap); err != nil {
		return sessionRow{}, false, fmt.Errorf("decode session %s: %w", key, err)
	}

	ttl, err := client.TTL(ctx, key).Result()
	if err != nil {
		return sessionRow{}, false, fmt.Errorf("redis ttl %s: %w", key, err)
	}

	return sessionRow{
		ID:       strings.TrimPrefix(key, redisadapter.Prefix),
		Snapshot: snap,
		TTL:      ttl,
	}, true, nil
}

func sessionRowMatches(row sessionRow, opts sessionListOptions) bool {
	if opts.AuthenticatedOnly && !row.Snapshot.IsAuthenticated {
		return false
	}
	if opts.Email != "" {
		if row.Snapshot.User == nil {
			return false
		}
		if !strings.EqualFold(row.Snapshot.User.Email, opts.Email) {
			return false
		}
	}
	return true
}

func printSessionRow(row sessionRow) error {
	identity := "anonymous"
	if row.Snapshot.User != nil {
		identity = fmt.Sprintf("%s (%s)", row.Snapshot.User.Email, row.Snapshot.User.Role)
	}
	if err := writef(
		os.Stdout,
		"  %s  %s  sidebar_collapsed=%t  (TTL: %s)\n",
		row.ID,
		identity,
		row.Snapshot.SidebarCollapsed,
		renderTTL(row.TTL),
	); err != nil {
		return fmt.Errorf("print session row: %w", err)
	}
	return nil
}

func deleteSessionKeys(
	ctx context.Context,
	cmdCtx *commandContext,
	client redis.UniversalClient,
	opts sessionClearOptions,
) (deleted int64, total int, err error) {
	iter := client.Scan(ctx, 0, redisadapter.Prefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if opts.DryRun {
			deleted += int64(len(batch))
			batch = batch[:0]
			return nil
		}
		n, delErr := client.Del(ctx, batch...).Result()
		if delErr != nil {
			return fmt.Errorf("redis del: %w", delErr)
		}
		deleted += n
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		key := iter.Val()
		if opts.Email != "" {
			row, ok, rowErr := loadSessionRow(ctx, client, key)
			if rowErr != nil {
				return deleted, total, rowErr
			}
			if !ok || !sessionRowMatches(row, sessionListOptions{Email: opts.Email}) {
				continue
			}
		}

		total++
		batch = append(batch, key)
		if len(batch) == cap(batch) {
			if flushErr := flush(); flushErr != nil {
				return deleted, total, flushErr
			}
		}
	}
	if iterErr := iter.Err(); iterErr != nil {
		return deleted, total, fmt.Errorf("redis scan: %w", iterErr)
	}
	if flushErr := flush(); flushErr != nil {
		return deleted, total, flushErr
	}

	cmdCtx.Logger.Info("session sweep complete", "matched", total, "deleted", deleted, "dry_run", opts.DryRun)
	return deleted, total, nil
}

type sessionClearConfirmOptions struct {
	opts sessionClearOptions
}

func (s sessionClearConfirmOptions) IsDryRun() bool { return s.opts.DryRun }
func (s sessionClearConfirmOptions) IsYes() bool    { return s.opts.Yes }
func (s sessionClearConfirmOptions) GetWarning() string {
	return "WARNING: deleting session snapshots logs the affected users out immediately."
}

func (s sessionClearConfirmOptions) GetTarget() string {
	if s.opts.Email != "" {
		return fmt.Sprintf("sessions for %q", s.opts.Email)
	}
	return "all sessions"
}

func parseSessionListFlags(args []string) (sessionListOptions, error) {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts sessionListOptions
	fs.StringVar(&opts.Email, "email", "", "Only show sessions for this account email")
	fs.BoolVar(&opts.AuthenticatedOnly, "authenticated", false, "Skip anonymous sessions")
	fs.IntVar(&opts.Limit, "limit", 50, "Maximum sessions to display (0 for unlimited)")

	if err := fs.Parse(args); err != nil {
		return sessionListOptions{}, err
	}

	opts.Email = strings.TrimSpace(opts.Email)
	if opts.Limit < 0 {
		return sessionListOptions{}, errors.New("--limit must be >= 0")
	}
	return opts, nil
}

func parseSessionClearFlags(args []string) (sessionClearOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts sessionClearOptions
	fs.StringVar(&opts.Email, "email", "", "Only clear sessions for this account email")
	fs.BoolVar(&opts.All, "all", false, "Clear every session snapshot")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print actions without executing")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return sessionClearOptions{}, err
	}

	opts.Email = strings.TrimSpace(opts.Email)
	if opts.All && opts.Email != "" {
		return sessionClearOptions{}, errors.New("--all cannot be combined with --email")
	}
	if !opts.All && opts.Email == "" {
		return sessionClearOptions{}, errors.New("--email is required unless --all is provided")
	}
	return opts, nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/pulsepoint/pulsepoint-api/internal/data"
)

func runExpireRequests(cmdCtx *commandContext, args []string) error {
	opts, err := parseExpireFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		repo := data.NewBloodRequestRepo(db)

		cmdCtx.Logger.Info("expiring overdue blood requests")
		expired, sweepErr := repo.ExpireOverdue(ctx)
		if sweepErr != nil {
			return fmt.Errorf("expire overdue requests: %w", sweepErr)
		}

		if expired == 0 {
			if writeErr := writeln(os.Stdout, "No overdue active requests found"); writeErr != nil {
				return fmt.Errorf("print expiry summary: %w", writeErr)
			}
			return nil
		}
		if writeErr := writef(os.Stdout, "Expired %d overdue requests\n", expired); writeErr != nil {
			return fmt.Errorf("print expiry summary: %w", writeErr)
		}
		return nil
	})
}

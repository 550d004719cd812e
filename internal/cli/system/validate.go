package system

import (
	"fmt"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/validation"
)

// ValidateCmd audits the current user's stored check-ins and goals.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ListRecoveryEntries(userID, false)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	goals, err := ctx.Store.ListGoals(userID)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}

	v := validation.New()
	result := v.AuditEntries(entries, today)
	goalResult := v.AuditGoals(goals, today)
	result.Problems = append(result.Problems, goalResult.Problems...)

	fmt.Print(result.FormatReport())
	if !result.HasProblems() {
		fmt.Println()
		return nil
	}
	return fmt.Errorf("%d problem(s) found", len(result.Problems))
}

package entries

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/recovery"
)

type ProgressCmd struct {
	JSON bool `help:"Print the summary as JSON."`
}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
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

	summary := recovery.Summarize(today, entries)
	if c.JSON {
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	fmt.Print(cli.ProgressChart(summary))
	return nil
}

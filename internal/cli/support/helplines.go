package support

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/mindtrack/internal/cli"
	"github.com/julianstephens/mindtrack/internal/helplines"
)

type HelplinesCmd struct {
	Urgent bool `help:"Show only lines available 24/7."`
	JSON   bool `help:"Print the directory as JSON."`
}

func (c *HelplinesCmd) Run(_ *cli.Context) error {
	lines := helplines.All()
	if c.Urgent {
		lines = helplines.AroundTheClock()
	}

	if c.JSON {
		out, err := json.MarshalIndent(lines, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println("Crisis support helplines")
	fmt.Println()
	fmt.Print(helplines.Format(lines))
	fmt.Println()
	for _, tip := range helplines.EmergencyTips() {
		fmt.Printf("• %s\n", tip)
	}
	return nil
}

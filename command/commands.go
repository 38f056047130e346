package command

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/validation"
)

// Commands aggregates the application's CLI surface as a single
// container service. The app registers the aggregate once; providers
// extend it through supplements, so the final command set is only known
// after resolution.
type Commands struct {
	root    *cobra.Command
	ordered []*cobra.Command
}

// New creates an aggregate rooted at the given application name.
func New(appName, short string) *Commands {
	return &Commands{
		root: &cobra.Command{
			Use:           appName,
			Short:         short,
			SilenceUsage:  true,
			SilenceErrors: true,
		},
	}
}

// Add appends a subcommand. Order of addition is preserved by Names;
// duplicate or unnamed commands are rejected.
func (c *Commands) Add(cmd *cobra.Command) error {
	if err := validation.New().Required("use", cmd.Use).Validate(); err != nil {
		return err
	}
	for _, existing := range c.ordered {
		if existing.Name() == cmd.Name() {
			return errors.DuplicateRegistration(cmd.Name())
		}
	}
	c.ordered = append(c.ordered, cmd)
	c.root.AddCommand(cmd)
	return nil
}

// MustAdd is Add for registration paths where a duplicate is a bug.
func (c *Commands) MustAdd(cmd *cobra.Command) {
	if err := c.Add(cmd); err != nil {
		panic(err)
	}
}

// Names returns subcommand names in the order they were added. Cobra
// sorts its own listing alphabetically, so the aggregate keeps its own
// ordering for callers that care about registration order.
func (c *Commands) Names() []string {
	names := make([]string, len(c.ordered))
	for i, cmd := range c.ordered {
		names[i] = cmd.Name()
	}
	return names
}

// Lookup returns the subcommand with the given name.
func (c *Commands) Lookup(name string) (*cobra.Command, bool) {
	for _, cmd := range c.ordered {
		if cmd.Name() == name {
			return cmd, true
		}
	}
	return nil, false
}

// Root returns the root cobra command for main() wiring.
func (c *Commands) Root() *cobra.Command {
	return c.root
}

// Execute runs the root command with the given arguments.
func (c *Commands) Execute(ctx context.Context, args ...string) error {
	c.root.SetArgs(args)
	return c.root.ExecuteContext(ctx)
}

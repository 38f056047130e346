// Package command exposes the application's CLI as a container service.
//
// The aggregate is registered like any other singleton; providers attach
// their own subcommands through registry supplements, so resolving
// *command.Commands yields the fully extended command tree.
package command

package main

import (
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ezrec/neo13/machine"
)

// app holds the state shared by the subcommands.
type app struct {
	viper  *viper.Viper
	config config
	Logger hclog.Logger
	closer io.Closer
}

func newApp() (a *app) {
	a = &app{
		viper:  viper.New(),
		Logger: hclog.NewNullLogger(),
	}
	return
}

// Command builds the root command.
func (a *app) Command() (root *cobra.Command) {
	root = &cobra.Command{
		Use:   "neo13",
		Short: f("neo13 13-bit CPU simulator"),
		Long: f(`neo13 loads programs into an 8192 word memory and runs them.

Files ending in .s or .asm are assembled, anything else is read as
whitespace separated hexadecimal words terminated by FFFF.`),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	addFlags(root.PersistentFlags())
	err := bindFlags(a.viper, root.PersistentFlags())
	if err != nil {
		panic(err)
	}

	root.AddCommand(a.runCommand())
	root.AddCommand(a.asmCommand())
	root.AddCommand(a.shellCommand())
	root.AddCommand(a.watchCommand())

	return
}

func (a *app) setup(stderr io.Writer) (err error) {
	a.config, err = loadConfig(a.viper)
	if err != nil {
		return
	}

	a.Logger, a.closer, err = newLogger(a.config, stderr)
	if err != nil {
		return
	}

	a.Logger.Debug("configured", "config", a.viper.ConfigFileUsed(), "step_limit", a.config.StepLimit)
	return
}

// Close releases the log file.
func (a *app) Close() {
	if a.closer != nil {
		a.closer.Close()
		a.closer = nil
	}
}

// newMachine creates a machine configured from the app.
func (a *app) newMachine() (m *machine.Machine) {
	m = machine.NewMachine()
	m.Verbose = a.config.Verbose
	m.Logger = a.Logger
	m.Cpu.StepLimit = a.config.StepLimit
	return
}

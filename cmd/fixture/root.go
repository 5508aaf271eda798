// cmd/fixture/root.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshajohnson/sea-micro/internal/config"
	"github.com/joshajohnson/sea-micro/internal/console"
	"github.com/joshajohnson/sea-micro/internal/fixture"
	"github.com/joshajohnson/sea-micro/internal/link"
	"github.com/joshajohnson/sea-micro/internal/pintest"
	"github.com/joshajohnson/sea-micro/internal/reset"
	"github.com/joshajohnson/sea-micro/internal/tool"
	"github.com/joshajohnson/sea-micro/internal/writer"
)

type options struct {
	bootloader  bool
	firmware    bool
	test        bool
	assumeReady bool
	configPath  string
	port        string
}

func (o options) steps() fixture.Steps {
	return fixture.Steps{
		Bootloader: o.bootloader,
		Firmware:   o.firmware,
		PinTest:    o.test,
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Program and test sea-micro boards on the test fixture",
		Long: `fixture flashes the DFU bootloader and the test firmware onto a sea-micro
board, then pulls each of its 18 I/O pins low through the fixture and checks
the board types the matching key (pin 1 = a ... pin 18 = r).

Steps always run in the order bootloader, firmware, test. With no step flags
only the fixture indicators are reset and set to pass.

Examples:
  fixture -b -f -t          fresh board, full run
  fixture -f -t             bootloader already present
  fixture -t --assume-ready re-test a board running the test firmware`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.bootloader, "bootloader", "b", false, "flash the DFU bootloader and fuses over ISP")
	f.BoolVarP(&opts.firmware, "qmk_firmware", "f", false, "erase, flash and reset the QMK test firmware over DFU")
	f.BoolVarP(&opts.test, "test", "t", false, "run the key mapping test on all pins")
	f.BoolVar(&opts.assumeReady, "assume-ready", false, "treat the board as already out of reset")
	f.StringVarP(&opts.configPath, "config", "c", "", "optional fixture profile (YAML)")
	f.StringVarP(&opts.port, "port", "p", "", "fixture serial port (overrides profile)")

	cmd.AddCommand(newPortsCmd())
	return cmd
}

// resolveConfig loads the optional profile, applies flag overrides and
// defaults, then validates.
func resolveConfig(opts options) (*config.Config, error) {
	cfg := &config.Config{}
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.port != "" {
		cfg.Serial.Port = opts.port
	}

	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	out := console.New(os.Stdout)

	// --------------------
	// Fixture link
	// --------------------

	ch, err := link.Open(link.Config{
		Port:     cfg.Serial.Port,
		BaudRate: cfg.Serial.BaudRate,
		Timeout:  time.Duration(cfg.Serial.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		out.Failed("CANNOT OPEN FIXTURE LINK", err.Error())
		printPortHint(out)
		return &fixture.Error{Step: fixture.StepIndicators, Kind: fixture.LinkFailure, Err: err}
	}
	defer func() {
		if err := ch.Close(); err != nil {
			log.Printf("link close failed (port=%s): %v", cfg.Serial.Port, err)
		}
	}()

	var duplex interface {
		link.Sender
		link.Receiver
	} = ch
	if cfg.Fixture.Responses == config.ResponsesStdin {
		duplex = link.Split{Out: ch, In: link.NewLineReader(os.Stdin)}
	}

	codes, err := writer.New(duplex)
	if err != nil {
		return err
	}

	// --------------------
	// Collaborators
	// --------------------

	runner := tool.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}

	programmer, err := tool.NewProgrammer(tool.ProgrammerConfig{
		Command:    cfg.Programmer.Command,
		Part:       cfg.Programmer.Part,
		Type:       cfg.Programmer.Type,
		Connection: cfg.Programmer.Connection,
		Image:      cfg.Programmer.Image,
		Fuses: []tool.Fuse{
			{Memory: "lfuse", Value: cfg.Programmer.Fuses.Low},
			{Memory: "hfuse", Value: cfg.Programmer.Fuses.High},
			{Memory: "efuse", Value: cfg.Programmer.Fuses.Extended},
		},
	}, runner)
	if err != nil {
		return err
	}

	loader, err := tool.NewLoader(tool.LoaderConfig{
		Command: cfg.Loader.Command,
		Part:    cfg.Loader.Part,
		Image:   cfg.Loader.Image,
	}, runner)
	if err != nil {
		return err
	}

	seq, err := pintest.New(codes, duplex, out)
	if err != nil {
		return err
	}

	// --------------------
	// Run
	// --------------------

	fx, err := fixture.New(
		fixture.Config{
			Steps:  opts.steps(),
			Settle: time.Duration(cfg.Fixture.SettleMs) * time.Millisecond,
		},
		fixture.Deps{
			Codes:      codes,
			Programmer: programmer,
			Loader:     loader,
			Pins:       seq,
			Reporter:   out,
		},
		reset.NewTracker(opts.assumeReady),
	)
	if err != nil {
		return err
	}

	return fx.Run(ctx)
}

func printPortHint(out *console.Console) {
	ports, err := link.ListPorts()
	if err != nil {
		log.Printf("port listing failed: %v", err)
		return
	}
	if len(ports) == 0 {
		out.Info("no serial ports found; is the fixture plugged in?")
		return
	}
	out.Info("available serial ports:")
	for _, p := range ports {
		out.Info("  " + p.String())
	}
}

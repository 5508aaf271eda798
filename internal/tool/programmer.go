// internal/tool/programmer.go
package tool

import (
	"context"
	"errors"
)

// Fuse is one avrdude fuse memory and its immediate value ("0x5E").
type Fuse struct {
	Memory string // lfuse, hfuse, efuse
	Value  string
}

// ProgrammerConfig drives the ISP programmer that writes the bootloader.
type ProgrammerConfig struct {
	Command    string
	Part       string // avrdude -p
	Type       string // avrdude -c
	Connection string // avrdude -P
	Image      string // Intel hex bootloader image
	Fuses      []Fuse
}

// Programmer flashes the DFU bootloader and fuses over ISP.
type Programmer struct {
	cfg    ProgrammerConfig
	runner Runner
}

func NewProgrammer(cfg ProgrammerConfig, runner Runner) (*Programmer, error) {
	if cfg.Command == "" {
		return nil, errors.New("programmer: command required")
	}
	if cfg.Image == "" {
		return nil, errors.New("programmer: image required")
	}
	if runner == nil {
		return nil, errors.New("programmer: runner required")
	}
	return &Programmer{cfg: cfg, runner: runner}, nil
}

// Args returns the full avrdude argument list.
func (p *Programmer) Args() []string {
	args := []string{
		"-v",
		"-p", p.cfg.Part,
		"-c", p.cfg.Type,
		"-P", p.cfg.Connection,
		"-Uflash:w:" + p.cfg.Image + ":i",
	}
	for _, f := range p.cfg.Fuses {
		if f.Value == "" {
			continue
		}
		args = append(args, "-U"+f.Memory+":w:"+f.Value+":m")
	}
	return args
}

// FlashBootloader writes the bootloader image and fuses in one avrdude run.
// Any non-zero exit is returned as *ExitError.
func (p *Programmer) FlashBootloader(ctx context.Context) (Status, error) {
	st, err := p.runner.Run(ctx, p.cfg.Command, p.Args()...)
	if err != nil {
		return st, &ExitError{Tool: p.cfg.Command, Err: err}
	}
	if !st.OK() {
		return st, &ExitError{Tool: p.cfg.Command, Status: st}
	}
	return st, nil
}

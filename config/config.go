// Package config loads the host-tunable interpreter limits and runtime
// toggles from a YAML file, the way the teacher's server config is
// loaded: a plain struct, yaml tags, and bounds enforced after decode
// rather than inside the decode step itself.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wudi/intmud/opcodes"
)

// Config holds everything a host needs to stand up a VirtualMachine
// beyond the compiled Unit it's going to run.
type Config struct {
	Limits  Limits  `yaml:"limits"`
	Output  Output  `yaml:"output"`
	Special Special `yaml:"special_types"`
}

// Limits overrides the interpreter's hard caps (§4.1), but never past
// them — a host can tighten these for a sandboxed script, never loosen.
type Limits struct {
	MaxStackSize int `yaml:"max_stack_size"`
	MaxCallDepth int `yaml:"max_call_depth"`
	MaxLocals    int `yaml:"max_locals"`
}

// Output holds output settings decoded from YAML. EchoStdout is defaulted
// and decoded but not read by the VM or the CLI host; the CLI host always
// forwards escreva/escrevaln output to stdout.
type Output struct {
	EchoStdout bool `yaml:"echo_stdout"`
}

// Special toggles which built-in special-type dispatchers (§4.8/§9) are
// installed; a host embedding the VM in a sandboxed context may want to
// disable `arquivo` (filesystem access) while keeping `buffer`.
type Special struct {
	EnableArquivo bool `yaml:"enable_arquivo"`
	EnableBuffer  bool `yaml:"enable_buffer"`
}

// Default returns the permissive defaults: hard caps at their maximums,
// stdout echo on, both reference special types enabled.
func Default() Config {
	return Config{
		Limits: Limits{
			MaxStackSize: opcodes.MaxStackSize,
			MaxCallDepth: opcodes.MaxCallDepth,
			MaxLocals:    opcodes.MaxLocals,
		},
		Output:  Output{EchoStdout: true},
		Special: Special{EnableArquivo: true, EnableBuffer: true},
	}
}

// Load reads and decodes a YAML config file, filling unset fields from
// Default and clamping any override that exceeds a hard cap.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg.clamp()
	return cfg, nil
}

func (c *Config) clamp() {
	if c.Limits.MaxStackSize <= 0 || c.Limits.MaxStackSize > opcodes.MaxStackSize {
		c.Limits.MaxStackSize = opcodes.MaxStackSize
	}
	if c.Limits.MaxCallDepth <= 0 || c.Limits.MaxCallDepth > opcodes.MaxCallDepth {
		c.Limits.MaxCallDepth = opcodes.MaxCallDepth
	}
	if c.Limits.MaxLocals <= 0 || c.Limits.MaxLocals > opcodes.MaxLocals {
		c.Limits.MaxLocals = opcodes.MaxLocals
	}
}

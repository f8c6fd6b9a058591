package config

import (
	"fmt"
	"sort"

	"github.com/vellumlabs/vellum/internal/class"
	"github.com/vellumlabs/vellum/internal/hazard"
)

// Config is the immutable run configuration. All slices are private copies;
// accessors hand out fresh slices so no caller can mutate a loaded Config.
type Config struct {
	prefixes     []string
	suffixes     []string
	kernel       []string
	kernelWindow int
	classCount   int
	classes      []class.Class
	hazards      []hazard.Declared
}

// Prefixes returns the closed prefix vocabulary.
func (c *Config) Prefixes() []string { return copied(c.prefixes) }

// Suffixes returns the closed suffix vocabulary.
func (c *Config) Suffixes() []string { return copied(c.suffixes) }

// Kernel returns the fixed kernel-token set.
func (c *Config) Kernel() []string { return copied(c.kernel) }

// KernelSet returns the kernel tokens as a membership set.
func (c *Config) KernelSet() map[string]bool {
	out := make(map[string]bool, len(c.kernel))
	for _, k := range c.kernel {
		out[k] = true
	}
	return out
}

// KernelWindow returns the token-distance window for kernel adjacency.
func (c *Config) KernelWindow() int { return c.kernelWindow }

// Classes returns the frozen class table in stable ID order.
func (c *Config) Classes() []class.Class {
	out := make([]class.Class, len(c.classes))
	copy(out, c.classes)
	return out
}

// Hazards returns the curated forbidden-transition inventory.
func (c *Config) Hazards() []hazard.Declared {
	out := make([]hazard.Declared, len(c.hazards))
	copy(out, c.hazards)
	return out
}

func copied(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// validate enforces structural constraints before the Config freezes.
func (c *Config) validate() error {
	if len(c.prefixes) == 0 && len(c.suffixes) == 0 {
		return fmt.Errorf("config: at least one of prefixes/suffixes must be non-empty")
	}
	if c.kernelWindow < 0 {
		return fmt.Errorf("config: kernel_window must be >= 0 (got %d)", c.kernelWindow)
	}
	if len(c.classes) == 0 {
		return fmt.Errorf("config: class table is empty")
	}
	if c.classCount > 0 && len(c.classes) != c.classCount {
		return fmt.Errorf("config: class table has %d classes, class_count declares %d",
			len(c.classes), c.classCount)
	}
	// Registry construction repeats the per-class checks (roles, duplicate
	// members, empty classes); running it here surfaces table defects at
	// load time instead of mid-run.
	if _, err := class.NewRegistry(c.classes); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for i, d := range c.hazards {
		if d.Source == "" || d.Target == "" {
			return fmt.Errorf("config: hazards[%d]: source and target are required", i)
		}
		if !hazard.ValidCategories[d.Category] {
			return fmt.Errorf("config: hazards[%d]: unknown category %q", i, d.Category)
		}
	}
	return nil
}

func sortClasses(classes []class.Class) {
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/vellumlabs/vellum/internal/class"
	"github.com/vellumlabs/vellum/internal/hazard"
)

// LoadMode controls how errors are handled during config loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// rawConfig mirrors the CUE document shape. CUE decodes through the json
// tags; validation happens after decode.
type rawConfig struct {
	Prefixes     []string            `json:"prefixes"`
	Suffixes     []string            `json:"suffixes"`
	Kernel       []string            `json:"kernel"`
	KernelWindow int                 `json:"kernel_window"`
	ClassCount   int                 `json:"class_count"`
	Classes      map[string]rawClass `json:"classes"`
	Hazards      []rawHazard         `json:"hazards"`
}

type rawClass struct {
	Role      string   `json:"role"`
	Members   []string `json:"members"`
	Hazardous bool     `json:"hazardous"`
}

type rawHazard struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Category string `json:"category"`
}

// Load compiles every CUE file in dir into one unified Config.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func Load(dir string, mode LoadMode) (*Config, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing config directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)

	var errs []error
	var merged cue.Value
	first := true
	for _, inst := range instances {
		if inst.Err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeCompile, Message: inst.Err.Error()})
			if mode == LoadModeFailFast {
				return nil, errs
			}
			continue
		}
		v := ctx.BuildInstance(inst)
		if v.Err() != nil {
			errs = append(errs, formatCUEError(v.Err()))
			if mode == LoadModeFailFast {
				return nil, errs
			}
			continue
		}
		if first {
			merged, first = v, false
		} else {
			merged = merged.Unify(v)
		}
	}
	if first {
		errs = append(errs, &LoadError{Code: ErrCodeCompile, Message: "no usable CUE instances"})
		return nil, errs
	}

	out, err := Compile(merged)
	if err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// Parse compiles a CUE source string into a Config. Used by tests and by
// callers that receive configuration inline.
func Parse(src string) (*Config, error) {
	v := cuecontext.New().CompileString(src)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return Compile(v)
}

// Compile converts a CUE value into a validated, frozen Config.
func Compile(v cue.Value) (*Config, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	var raw rawConfig
	if err := v.Decode(&raw); err != nil {
		return nil, formatCUEError(err)
	}

	cfg := &Config{
		prefixes:     raw.Prefixes,
		suffixes:     raw.Suffixes,
		kernel:       raw.Kernel,
		kernelWindow: raw.KernelWindow,
		classCount:   raw.ClassCount,
	}
	for id, rc := range raw.Classes {
		cfg.classes = append(cfg.classes, class.Class{
			ID:        id,
			Role:      class.Role(rc.Role),
			Members:   rc.Members,
			Hazardous: rc.Hazardous,
		})
	}
	sortClasses(cfg.classes)
	for _, rh := range raw.Hazards {
		cfg.hazards = append(cfg.hazards, hazard.Declared{
			Source:   rh.Source,
			Target:   rh.Target,
			Category: hazard.Category(rh.Category),
		})
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".cue" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

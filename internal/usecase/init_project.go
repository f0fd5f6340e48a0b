package usecase

import (
	"context"
	"fmt"
)

// InitProjectParams contains parameters for project initialization
type InitProjectParams struct {
	// SeedPath is a YAML seed file; empty uses the built-in demo data
	SeedPath string
	// Force overwrites existing configuration and data
	Force bool
}

// InitProjectResult contains the result of project initialization
type InitProjectResult struct {
	ConfigPath         string
	DataLocation       string
	AlreadyInitialized bool
	Treasuries         int
	Proposals          int
	Users              int
	Steps              []InitStep
}

// InitStep represents a step in the initialization process
type InitStep struct {
	Name    string
	Success bool
	Message string
	Error   error
}

// InitProject handles project initialization
type InitProject struct {
	configWriter ProjectConfigWriter
	snapshots    SnapshotStore
	seeds        SeedSource
	state        StateStore
	progress     ProgressSink
}

// NewInitProject creates a new init project use case
func NewInitProject(
	configWriter ProjectConfigWriter,
	snapshots SnapshotStore,
	seeds SeedSource,
	state StateStore,
	progress ProgressSink,
) *InitProject {
	return &InitProject{
		configWriter: configWriter,
		snapshots:    snapshots,
		seeds:        seeds,
		state:        state,
		progress:     progress,
	}
}

// Run writes coffer.toml and seeds the data store. Existing files are kept
// unless Force is set.
func (i *InitProject) Run(ctx context.Context, params InitProjectParams) (*InitProjectResult, error) {
	result := &InitProjectResult{DataLocation: i.snapshots.Location()}

	step := i.writeConfig(params.Force, result)
	result.Steps = append(result.Steps, step)
	if !step.Success {
		return result, step.Error
	}

	exists, err := i.snapshots.Exists(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to inspect data store: %w", err)
	}
	if exists && !params.Force {
		result.AlreadyInitialized = true
		result.Steps = append(result.Steps, InitStep{
			Name:    "Seed data store",
			Success: true,
			Message: fmt.Sprintf("Data already present at %s (use --force to reseed)", result.DataLocation),
		})
		return result, nil
	}

	i.progress.OnProgress(ctx, ProgressEvent{Stage: "seeding", Message: "Loading seed data", Spinner: true})
	snapshot, err := i.seeds.Load(ctx, params.SeedPath)
	if err != nil {
		result.Steps = append(result.Steps, InitStep{Name: "Load seed data", Error: err})
		return result, fmt.Errorf("failed to load seed data: %w", err)
	}
	result.Steps = append(result.Steps, InitStep{
		Name:    "Load seed data",
		Success: true,
		Message: seedDescription(params.SeedPath),
	})

	if err := i.state.Replace(ctx, snapshot); err != nil {
		result.Steps = append(result.Steps, InitStep{Name: "Seed data store", Error: err})
		return result, fmt.Errorf("failed to seed data store: %w", err)
	}
	result.Treasuries = len(snapshot.Treasuries)
	result.Proposals = len(snapshot.Proposals)
	result.Users = len(snapshot.Users)
	result.Steps = append(result.Steps, InitStep{
		Name:    "Seed data store",
		Success: true,
		Message: fmt.Sprintf("Wrote %d treasuries, %d proposals, %d members to %s",
			result.Treasuries, result.Proposals, result.Users, result.DataLocation),
	})
	i.progress.OnProgress(ctx, ProgressEvent{Stage: "complete", Message: "Project initialized"})

	return result, nil
}

func (i *InitProject) writeConfig(force bool, result *InitProjectResult) InitStep {
	if i.configWriter.Exists() && !force {
		return InitStep{Name: "Create coffer.toml", Success: true, Message: "coffer.toml already exists"}
	}
	path, err := i.configWriter.Write(force)
	if err != nil {
		return InitStep{Name: "Create coffer.toml", Error: fmt.Errorf("failed to write coffer.toml: %w", err)}
	}
	result.ConfigPath = path
	return InitStep{Name: "Create coffer.toml", Success: true, Message: "Created " + path}
}

func seedDescription(path string) string {
	if path == "" {
		return "Using built-in demo data"
	}
	return "Using " + path
}

package config

// Droverfile represents the structure of the drover.yaml configuration file.
type Droverfile struct {
	Version        string             `yaml:"version"`
	Workspace      WorkspaceDTO       `yaml:"workspace"`
	StateDir       string             `yaml:"state_dir"`
	MaxConcurrency int                `yaml:"max_concurrency"`
	Tasks          map[string]TaskDTO `yaml:"tasks"`
}

// WorkspaceDTO declares the directories tasks are allowed to touch.
type WorkspaceDTO struct {
	Roots []string `yaml:"roots"`
}

// TaskDTO represents a task definition in the configuration.
type TaskDTO struct {
	Title           string              `yaml:"title"`
	Description     string              `yaml:"description"`
	Category        string              `yaml:"category"`
	Priority        string              `yaml:"priority"`
	Complexity      string              `yaml:"complexity"`
	Children        []string            `yaml:"children"`
	TargetFiles     []string            `yaml:"target_files"`
	RollbackSteps   []string            `yaml:"rollback_steps"`
	SuccessCriteria []string            `yaml:"success_criteria"`
	ValidationSteps []ValidationStepDTO `yaml:"validation_steps"`
	Strategy        *StrategyDTO        `yaml:"strategy"`
}

// ValidationStepDTO declares a post-execution check for a task.
type ValidationStepDTO struct {
	Type   string `yaml:"type"`
	Target string `yaml:"target"`
}

// StrategyDTO overrides the selector's strategy for a task.
type StrategyDTO struct {
	Type                 string    `yaml:"type"`
	MaxConcurrency       int       `yaml:"max_concurrency"`
	TimeoutMinutes       int       `yaml:"timeout_minutes"`
	RequiresConfirmation bool      `yaml:"requires_confirmation"`
	Retry                *RetryDTO `yaml:"retry"`
}

// RetryDTO declares the retry policy of a strategy.
type RetryDTO struct {
	MaxRetries  int    `yaml:"max_retries"`
	Backoff     string `yaml:"backoff"`
	BaseDelayMS int    `yaml:"base_delay_ms"`
	MaxDelayMS  int    `yaml:"max_delay_ms"`
}

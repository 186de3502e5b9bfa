package domain

import (
	"iter"
	"sort"

	"go.trai.ch/zerr"
)

// Plan is an id-addressed collection of tasks forming a forest of task
// trees. The breakdown collaborator is the sole creator of tasks; Validate
// enforces that child references resolve and that no task is its own
// ancestor before the engine assumes acyclicity.
type Plan struct {
	tasks     map[string]Task
	walkOrder []string
}

// NewPlan creates a new empty Plan.
func NewPlan() *Plan {
	return &Plan{
		tasks: make(map[string]Task),
	}
}

// AddTask adds a task to the plan.
// It returns an error if a task with the same id already exists.
func (p *Plan) AddTask(t *Task) error {
	if _, exists := p.tasks[t.ID]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task_id", t.ID)
	}
	p.tasks[t.ID] = *t
	return nil
}

// Get returns the task with the given id.
func (p *Plan) Get(id string) (*Task, bool) {
	t, ok := p.tasks[id]
	if !ok {
		return nil, false
	}
	return &t, true
}

// TaskCount returns the number of tasks in the plan.
func (p *Plan) TaskCount() int {
	return len(p.tasks)
}

// Roots returns the tasks without a parent, sorted by id for stability.
func (p *Plan) Roots() []Task {
	var roots []Task
	for _, t := range p.tasks {
		if t.ParentID == "" {
			roots = append(roots, t)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].ID < roots[j].ID })
	return roots
}

// Validate checks that every child reference resolves and that the child
// relation is acyclic, using a visited-state DFS. It populates the walk
// order (parents before children) on success.
func (p *Plan) Validate() error {
	p.walkOrder = make([]string, 0, len(p.tasks))
	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(id string) error
	visit = func(id string) error {
		visited[id] = 1
		path = append(path, id)

		task, exists := p.tasks[id]
		if !exists {
			return zerr.With(ErrMissingChild, "child_id", id)
		}

		p.walkOrder = append(p.walkOrder, id)

		for _, child := range task.ChildIDs {
			if visited[child] == 1 {
				return p.buildCycleError(path, child)
			}
			if visited[child] == 0 {
				if err := visit(child); err != nil {
					return err
				}
			}
		}

		visited[id] = 2
		path = path[:len(path)-1]
		return nil
	}

	// Visit roots first so the walk order lists parents before children,
	// then sweep any disconnected remainder deterministically.
	for _, root := range p.Roots() {
		if visited[root.ID] == 0 {
			if err := visit(root.ID); err != nil {
				return err
			}
		}
	}

	rest := make([]string, 0, len(p.tasks))
	for id := range p.tasks {
		if visited[id] == 0 {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		if visited[id] == 0 {
			if err := visit(id); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (p *Plan) buildCycleError(path []string, child string) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == child {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i] + " -> "
	}
	cyclePath += child
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Walk returns an iterator that yields tasks with parents before children.
// It assumes Validate() has been called and returned nil.
func (p *Plan) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, id := range p.walkOrder {
			if !yield(p.tasks[id]) {
				return
			}
		}
	}
}

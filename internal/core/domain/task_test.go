package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.drover.dev/drover/internal/core/domain"
)

func TestTaskPriority_Rank(t *testing.T) {
	order := []domain.TaskPriority{
		domain.PriorityLow,
		domain.PriorityNormal,
		domain.PriorityHigh,
		domain.PriorityCritical,
		domain.PriorityBlocking,
	}
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1].Rank(), order[i].Rank(),
			"%s must rank below %s", order[i-1], order[i])
	}
	assert.Equal(t, 0, domain.TaskPriority("urgent").Rank(), "unknown ranks below low")
}

func TestParsePriority_Default(t *testing.T) {
	p, err := domain.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityNormal, p)

	_, err = domain.ParsePriority("urgent")
	require.ErrorIs(t, err, domain.ErrInvalidPriority)
}

func TestParseCategory(t *testing.T) {
	for _, c := range domain.Categories {
		got, err := domain.ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := domain.ParseCategory("destroy")
	require.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestParseComplexity_Default(t *testing.T) {
	c, err := domain.ParseComplexity("")
	require.NoError(t, err)
	assert.Equal(t, domain.ComplexityModerate, c)

	_, err = domain.ParseComplexity("impossible")
	require.ErrorIs(t, err, domain.ErrInvalidComplexity)
}

func TestTaskCategory_IsMutating(t *testing.T) {
	mutating := map[domain.TaskCategory]bool{
		domain.CategoryEdit:     true,
		domain.CategoryCreate:   true,
		domain.CategoryDelete:   true,
		domain.CategoryRefactor: true,
		domain.CategoryDeploy:   true,
		domain.CategoryOptimize: true,
	}
	for _, c := range domain.Categories {
		assert.Equal(t, mutating[c], c.IsMutating(), "category %s", c)
	}
}

func TestTaskCategory_RollbackExempt(t *testing.T) {
	exempt := map[domain.TaskCategory]bool{
		domain.CategoryRead:     true,
		domain.CategorySearch:   true,
		domain.CategoryAnalyze:  true,
		domain.CategoryValidate: true,
	}
	for _, c := range domain.Categories {
		assert.Equal(t, exempt[c], c.RollbackExempt(), "category %s", c)
	}
}

func TestTaskStatus_Resumable(t *testing.T) {
	assert.True(t, domain.StatusPending.Resumable())
	assert.True(t, domain.StatusRunning.Resumable())
	assert.False(t, domain.StatusCompleted.Resumable())
	assert.False(t, domain.StatusFailed.Resumable())
	assert.False(t, domain.StatusCancelled.Resumable())
}

func TestTask_IsComposite(t *testing.T) {
	assert.False(t, (&domain.Task{ID: "a"}).IsComposite())
	assert.True(t, (&domain.Task{ID: "a", ChildIDs: []string{"b"}}).IsComposite())
}

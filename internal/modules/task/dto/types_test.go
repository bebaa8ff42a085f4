package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zenith/internal/modules/task/domain"
	"zenith/internal/modules/task/dto"
)

func TestStatusNamesFollowDomain(t *testing.T) {
	t.Parallel()
	want := make([]string, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		want = append(want, string(s))
	}
	assert.Equal(t, want, []string{dto.StatusTodo, dto.StatusDoing, dto.StatusDone})

	assert.True(t, dto.TaskOutput{Status: dto.StatusDone}.IsDone())
	assert.False(t, dto.TaskOutput{Status: dto.StatusDoing}.IsDone())
}

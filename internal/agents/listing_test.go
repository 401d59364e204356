package agents

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jojo-not/Ticketing/internal/domain"
)

func sampleAgents() []domain.Agent {
	return []domain.Agent{
		{ID: "1", Name: "Alice Cruz", Email: "alice@qtech.ph", Category: string(domain.CategoryInventory)},
		{ID: "2", Name: "Bong Reyes", Email: "bong@qtech.ph", Category: string(domain.CategoryBilling)},
		{ID: "3", Name: "Carla Diaz", Email: "carla@mail.com", Category: string(domain.CategoryPayroll)},
		{ID: "4", Name: "Dan Uy", Email: "dan@qtech.ph", Category: string(domain.CategoryPOS)},
		{ID: "5", Name: "Ella Santos", Email: "ella@mail.com", Category: string(domain.CategoryQSA)},
		{ID: "6", Name: "Ferdie Lim", Email: "FERDIE@QTECH.PH", Category: string(domain.CategoryBilling)},
	}
}

func TestFilter(t *testing.T) {
	list := sampleAgents()

	tests := []struct {
		term string
		want []domain.ID
	}{
		{"", []domain.ID{"1", "2", "3", "4", "5", "6"}},
		{"qtech.ph", []domain.ID{"1", "2", "4", "6"}},
		{"QTECH.ph", []domain.ID{"1", "2", "4", "6"}},
		{"billing", []domain.ID{"2", "6"}},
		{"santos", []domain.ID{"5"}},
		{"f&b", []domain.ID{"4"}},
		{"nobody", nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := Filter(list, tt.term)
			var ids []domain.ID
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterIsOrderedSubsequence(t *testing.T) {
	list := sampleAgents()
	for _, term := range []string{"a", "e", "QT", "mail", "system", "x"} {
		got := Filter(list, term)

		i := 0
		for _, a := range got {
			for i < len(list) && list[i].ID != a.ID {
				i++
			}
			if !assert.Less(t, i, len(list), "term %q produced an out-of-order entry", term) {
				break
			}
			assert.True(t, matches(a, term), "term %q matched %q", term, a.Name)
			i++
		}
	}
}

func matches(a domain.Agent, term string) bool {
	return len(Filter([]domain.Agent{a}, term)) == 1
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	list := sampleAgents()
	got := Filter(list, "")
	got[0].Name = "changed"
	assert.Equal(t, "Alice Cruz", list[0].Name)
}

func TestTotalPages(t *testing.T) {
	for n := 0; n <= 23; n++ {
		want := n / PageSize
		if n%PageSize != 0 {
			want++
		}
		assert.Equal(t, want, TotalPages(n, PageSize), "n=%d", n)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 1, ClampPage(-4, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 1, ClampPage(5, 0))
}

func TestPageRows(t *testing.T) {
	list := sampleAgents()
	assert.Len(t, PageRows(list, 1, PageSize), 5)
	assert.Equal(t, []domain.Agent{list[5]}, PageRows(list, 2, PageSize))
	assert.Empty(t, PageRows(list, 3, PageSize))
	assert.Empty(t, PageRows(list, 0, PageSize))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 1, []int{1}},
		{1, 5, []int{1, 2}},
		{2, 5, []int{1, 2}},
		{3, 5, []int{2, 3}},
		{5, 5, []int{4, 5}},
		{2, 2, []int{1, 2}},
		{1, 0, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.current, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.total, WindowWidth))
		})
	}
}

func TestPageWindowStaysInBounds(t *testing.T) {
	for n := 0; n <= 40; n++ {
		total := TotalPages(n, PageSize)
		for current := 1; current <= max(total, 1); current++ {
			window := PageWindow(current, total, WindowWidth)
			assert.LessOrEqual(t, len(window), WindowWidth)
			for _, p := range window {
				assert.GreaterOrEqual(t, p, 1, "n=%d current=%d", n, current)
				assert.LessOrEqual(t, p, total, "n=%d current=%d", n, current)
			}
			if total > 0 {
				assert.Contains(t, window, current, "n=%d", n)
			}
		}
	}
}

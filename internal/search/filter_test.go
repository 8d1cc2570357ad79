package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	f := &Filter{}
	f.Normalize()
	assert.Equal(t, 0, f.Page)
	assert.Equal(t, 10, f.Size)
	assert.Equal(t, "created_at", f.SortBy)
	assert.Equal(t, "DESC", f.SortOrder)
}

func TestNormalizeClampsAndUppercases(t *testing.T) {
	f := &Filter{Page: -3, Size: 500, SortOrder: "asc"}
	f.Normalize()
	assert.Equal(t, 0, f.Page)
	assert.Equal(t, 100, f.Size)
	assert.Equal(t, "ASC", f.SortOrder)

	f = &Filter{SortOrder: "bogus"}
	f.Normalize()
	assert.Equal(t, "DESC", f.SortOrder)
}

func TestOffset(t *testing.T) {
	f := &Filter{Page: 3, Size: 20}
	f.Normalize()
	assert.Equal(t, 60, f.Offset())
}

func TestOrderClauseWhitelist(t *testing.T) {
	f := &Filter{SortBy: "username", SortOrder: "ASC"}
	f.Normalize()
	assert.Equal(t, "users.username ASC", f.OrderClause("users", "created_at", "username"))

	// 白名单外的列回退默认,拒绝注入
	f = &Filter{SortBy: "id; DROP TABLE users"}
	f.Normalize()
	assert.Equal(t, "users.created_at DESC", f.OrderClause("users", "created_at", "username"))
}

func TestLikePattern(t *testing.T) {
	f := &Filter{SearchValue: "  ChEf  "}
	assert.Equal(t, "%chef%", f.LikePattern())

	f = &Filter{SearchValue: "   "}
	assert.Equal(t, "", f.LikePattern())
}

func TestNewPageResult(t *testing.T) {
	f := &Filter{Page: 1, Size: 10}
	f.Normalize()

	page := NewPageResult([]int{1, 2, 3}, 25, f)
	assert.EqualValues(t, 25, page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 10, page.PageSize)

	// nil data 归一成空切片,JSON 输出 [] 而不是 null
	empty := NewPageResult[int](nil, 0, f)
	assert.NotNil(t, empty.Data)
	assert.Len(t, empty.Data, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

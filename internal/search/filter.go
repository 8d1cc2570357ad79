package search

import (
	"fmt"
	"strings"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Filter 通用分页/排序/全文过滤参数,嵌入各实体的 typed filter
type Filter struct {
	SearchValue string `json:"search_value"`
	Page        int    `json:"page" binding:"min=0"`
	Size        int    `json:"size" binding:"min=0,max=100"`
	SortBy      string `json:"sort_by"`
	SortOrder   string `json:"sort_order" binding:"omitempty,oneof=ASC DESC asc desc"`
}

// Normalize 填默认值:size 10,sort created_at DESC
func (f *Filter) Normalize() {
	if f.Page < 0 {
		f.Page = 0
	}
	if f.Size <= 0 {
		f.Size = defaultPageSize
	}
	if f.Size > maxPageSize {
		f.Size = maxPageSize
	}
	if f.SortBy == "" {
		f.SortBy = "created_at"
	}
	f.SortOrder = strings.ToUpper(f.SortOrder)
	if f.SortOrder != "ASC" {
		f.SortOrder = "DESC"
	}
}

func (f *Filter) Offset() int { return f.Page * f.Size }

// OrderClause 生成排序子句;列名必须在白名单内,否则回退默认
func (f *Filter) OrderClause(table string, allowed ...string) string {
	col := "created_at"
	for _, a := range allowed {
		if f.SortBy == a {
			col = a
			break
		}
	}
	return fmt.Sprintf("%s.%s %s", table, col, f.SortOrder)
}

// LikePattern 大小写不敏感的子串匹配模式;无搜索词返回空串
func (f *Filter) LikePattern() string {
	v := strings.TrimSpace(f.SearchValue)
	if v == "" {
		return ""
	}
	return "%" + strings.ToLower(v) + "%"
}

// Page 分页查询结果
type PageResult[T any] struct {
	Data          []T   `json:"data"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	CurrentPage   int   `json:"current_page"`
	PageSize      int   `json:"page_size"`
}

// NewPageResult 根据总数和过滤器组装分页元数据
func NewPageResult[T any](data []T, total int64, f *Filter) *PageResult[T] {
	pages := 0
	if f.Size > 0 {
		pages = int((total + int64(f.Size) - 1) / int64(f.Size))
	}
	if data == nil {
		data = []T{}
	}
	return &PageResult[T]{
		Data:          data,
		TotalElements: total,
		TotalPages:    pages,
		CurrentPage:   f.Page,
		PageSize:      f.Size,
	}
}

// FollowSearchType 决定投影/搜索哪一侧
type FollowSearchType string

const (
	SearchFollowers FollowSearchType = "FOLLOWERS"
	SearchFollowing FollowSearchType = "FOLLOWING"
)

// FollowFilter 关注关系查询的封闭过滤字段集
type FollowFilter struct {
	Filter
	UserID     int64            `json:"user_id"`
	SearchType FollowSearchType `json:"search_type" binding:"omitempty,oneof=FOLLOWERS FOLLOWING"`
}

// UserFilter 用户查询的封闭过滤字段集
type UserFilter struct {
	Filter
	IsChef            *bool  `json:"is_chef"`
	Verified          *bool  `json:"verified"`
	DietaryPreference string `json:"dietary_preference"`
}

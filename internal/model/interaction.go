package model

import "time"

// 资源类型(tagged union 的 kind 部分,列非空)
const (
	ResourceTypePost   = "POST"
	ResourceTypeRecipe = "RECIPE"
	ResourceTypeUser   = "USER"
)

// 交互动作
const (
	ActionView    = "VIEW"
	ActionLike    = "LIKE"
	ActionComment = "COMMENT"
	ActionSave    = "SAVE"
	ActionShare   = "SHARE"
	ActionFollow  = "FOLLOW"
)

// Interaction 行为流水,只追加,供分析/推荐消费
type Interaction struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	UserID       int64   `gorm:"index:idx_interaction_user;not null" json:"user_id"`
	ResourceType string  `gorm:"type:varchar(16);not null" json:"resource_type"`
	ResourceID   int64   `gorm:"not null" json:"resource_id"`
	Action       string  `gorm:"type:varchar(16);not null" json:"action"`
	Value        float64 `json:"value"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Interaction) TableName() string { return "interactions" }

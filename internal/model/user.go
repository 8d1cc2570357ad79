package model

import "time"

// User 用户主体
type User struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Username    string `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	DisplayName string `gorm:"type:varchar(128)" json:"display_name"`
	Email       string `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	Password    string `gorm:"type:varchar(128);not null" json:"-"`
	Bio         string `gorm:"type:text" json:"bio"`
	Location    string `gorm:"type:varchar(128)" json:"location"`
	IsChef      bool   `gorm:"index" json:"is_chef"`
	Verified    bool   `json:"verified"`
	ProfileURL  string `gorm:"type:varchar(256)" json:"profile_url"`

	DietaryPreferences []UserDietaryPreference `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"dietary_preferences,omitempty"`
	Badges             []UserBadge             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"badges,omitempty"`

	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserDietaryPreference 饮食偏好(element collection)
type UserDietaryPreference struct {
	UserID     int64  `gorm:"primaryKey;autoIncrement:false"`
	Preference string `gorm:"primaryKey;type:varchar(64)"`
}

func (UserDietaryPreference) TableName() string { return "user_dietary_preferences" }

// UserBadge 用户徽章
type UserBadge struct {
	UserID int64  `gorm:"primaryKey;autoIncrement:false"`
	Badge  string `gorm:"primaryKey;type:varchar(64)"`
}

func (UserBadge) TableName() string { return "user_badges" }

// UserStats 冗余计数器,每个用户一行
// 计数通过 upsert 原子增减,只允许非负
type UserStats struct {
	ID             int64 `gorm:"primaryKey" json:"id"`
	UserID         int64 `gorm:"uniqueIndex;not null" json:"user_id"`
	RecipeCount    int   `gorm:"not null;default:0" json:"recipe_count"`
	FollowersCount int   `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount int   `gorm:"not null;default:0" json:"following_count"`
	UpdatedAt      time.Time
}

func (UserStats) TableName() string { return "user_stats" }

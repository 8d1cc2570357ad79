package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/tastegraph/internal/auth"
	"github.com/d60-Lab/tastegraph/internal/model"
	"github.com/d60-Lab/tastegraph/internal/repository"
	"github.com/d60-Lab/tastegraph/internal/search"
	"github.com/d60-Lab/tastegraph/pkg/apperr"
)

// RegisterInput 注册参数
type RegisterInput struct {
	Username           string
	DisplayName        string
	Email              string
	Password           string
	Bio                string
	Location           string
	IsChef             bool
	ProfileURL         string
	DietaryPreferences []string
}

// UserService 用户注册/登录/资料/搜索
type UserService interface {
	Register(ctx context.Context, in *RegisterInput) (*UserDTO, error)
	// Login 校验密码并签发 JWT
	Login(ctx context.Context, username, password string) (string, *UserDTO, error)
	Profile(ctx context.Context, userID int64) (*UserProfileDTO, error)
	Search(ctx context.Context, f *search.UserFilter) (*search.PageResult[UserDTO], error)
	SetRecipeCount(ctx context.Context, userID int64, count int) error
}

type userService struct {
	db        *gorm.DB
	users     repository.UserRepository
	stats     repository.UserStatsRepository
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewUserService(
	db *gorm.DB,
	users repository.UserRepository,
	stats repository.UserStatsRepository,
	jwtSecret string,
	jwtTTL time.Duration,
) UserService {
	if jwtTTL <= 0 {
		jwtTTL = 24 * time.Hour
	}
	return &userService{
		db:        db,
		users:     users,
		stats:     stats,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
	}
}

// Register 用户 + 零值计数行同事务写入
func (s *userService) Register(ctx context.Context, in *RegisterInput) (*UserDTO, error) {
	if in.Username == "" || in.Email == "" {
		return nil, apperr.Validation("username and email are required")
	}
	if len(in.Password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters")
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("username or email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     in.Username,
		DisplayName:  in.DisplayName,
		Email:        in.Email,
		Password:     string(hash),
		Bio:          in.Bio,
		Location:     in.Location,
		IsChef:       in.IsChef,
		ProfileURL:   in.ProfileURL,
		LastActiveAt: time.Now(),
	}
	for _, p := range in.DietaryPreferences {
		user.DietaryPreferences = append(user.DietaryPreferences, model.UserDietaryPreference{Preference: p})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.stats.WithTx(tx).EnsureRow(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}

	dto := toUserDTO(user)
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (string, *UserDTO, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, apperr.Unauthorized("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("invalid username or password")
	}

	token, err := auth.Sign(s.jwtSecret, user.ID, user.Username, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}

	if err := s.users.TouchLastActive(ctx, user.ID); err != nil {
		return "", nil, err
	}

	dto := toUserDTO(user)
	return token, &dto, nil
}

func (s *userService) Profile(ctx context.Context, userID int64) (*UserProfileDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", userID)
	}
	st, err := s.stats.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserProfileDTO{
		UserDTO:        toUserDTO(user),
		RecipeCount:    st.RecipeCount,
		FollowersCount: st.FollowersCount,
		FollowingCount: st.FollowingCount,
	}, nil
}

func (s *userService) Search(ctx context.Context, f *search.UserFilter) (*search.PageResult[UserDTO], error) {
	f.Normalize()
	rows, total, err := s.users.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dto := toUserDTO(&rows[i])
		dto.Email = "" // 搜索结果不暴露邮箱
		dtos = append(dtos, dto)
	}
	return search.NewPageResult(dtos, total, &f.Filter), nil
}

func (s *userService) SetRecipeCount(ctx context.Context, userID int64, count int) error {
	if count < 0 {
		return apperr.Validation("recipe count cannot be negative")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user %d not found", userID)
	}
	return s.stats.SetRecipeCount(ctx, userID, count)
}

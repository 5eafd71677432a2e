package service

import (
	"errors"
	"io"
	"log"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/luoyx/content_ai_server/config"
	"github.com/luoyx/content_ai_server/internal/model/dto"
	"github.com/luoyx/content_ai_server/internal/pkg/oss"
	"github.com/luoyx/content_ai_server/internal/repository"
)

type UserService struct {
	userRepo     *repository.UserRepository
	analysisRepo *repository.AnalysisRepository
	ossClient    *oss.Client
	cfg          *config.Config
}

func NewUserService(
	userRepo *repository.UserRepository,
	analysisRepo *repository.AnalysisRepository,
	ossClient *oss.Client,
	cfg *config.Config,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		analysisRepo: analysisRepo,
		ossClient:    ossClient,
		cfg:          cfg,
	}
}

// GetProfile 获取用户详情
func (s *UserService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return buildUserInfo(user), nil
}

// UpdateProfile 更新用户信息
func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 检查用户名是否已被占用
	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.userRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUsernameExists
		}
		user.Username = *req.Username
	}

	if req.Company != nil {
		user.Company = *req.Company
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return buildUserInfo(user), nil
}

// UpdateAvatar 更新用户头像 URL
func (s *UserService) UpdateAvatar(userID int64, avatarURL string) error {
	return s.userRepo.UpdateFields(userID, map[string]interface{}{
		"avatar_url": avatarURL,
	})
}

// UploadAvatar 上传用户头像到 OSS，成功后异步清理旧头像对象
func (s *UserService) UploadAvatar(userID int64, file io.Reader, filename string) (string, error) {
	if s.ossClient == nil {
		return "", errors.New("OSS 客户端未配置")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	oldAvatarURL := user.AvatarURL

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	avatarURL, err := s.ossClient.UploadAvatar(userID, data, ext)
	if err != nil {
		return "", err
	}

	if err := s.UpdateAvatar(userID, avatarURL); err != nil {
		return "", err
	}

	// 旧头像是本系统上传的才清理，第三方头像（如 GitHub）不碰
	if key := s.ossClient.ObjectKeyFromURL(oldAvatarURL); key != "" {
		go func() {
			if err := s.ossClient.Delete(key); err != nil {
				log.Printf("Failed to delete old avatar %s: %v", key, err)
			}
		}()
	}

	return avatarURL, nil
}

// ListUsers 管理员用户列表，附带每个用户的任务量统计
func (s *UserService) ListUsers(search, role string, isActive *bool, page, pageSize int) ([]*dto.AdminUserItem, int64, error) {
	users, total, err := s.userRepo.List(search, role, isActive, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.AdminUserItem, len(users))
	for i, user := range users {
		totalAnalyses, completed, err := s.analysisRepo.CountByUserID(user.ID)
		if err != nil {
			return nil, 0, err
		}
		items[i] = &dto.AdminUserItem{
			User: buildUserInfo(user),
			Stats: dto.AdminUserStats{
				TotalAnalyses:     totalAnalyses,
				CompletedAnalyses: completed,
			},
		}
	}

	return items, total, nil
}

// UpdateUserStatus 管理员启用/停用用户
func (s *UserService) UpdateUserStatus(userID int64, isActive bool) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.IsActive = isActive
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"is_active": isActive,
	}); err != nil {
		return nil, err
	}

	return buildUserInfo(user), nil
}

package user

import (
	"context"

	"github.com/xiebiao/stockroom/internal/domain/user"
)

// ProfileUseCase 查看当前用户资料用例
type ProfileUseCase struct {
	userRepo user.Repository
}

// NewProfileUseCase 创建资料用例
func NewProfileUseCase(userRepo user.Repository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo}
}

// Execute 根据JWT中的用户ID返回资料
func (uc *ProfileUseCase) Execute(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
	}, nil
}

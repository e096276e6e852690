package repository

import (
	"context"
	"time"

	"spmtutor/internal/drill"
	"spmtutor/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

// UpdateLastSeen 只更新 last_seen，不触碰 updated_at
func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_seen", time.Now()).
		Error
}

// FindStudents 返回教师名下的学生；teacherID 为 nil 时返回全部学生（管理员）
func (r *UserRepository) FindStudents(ctx context.Context, teacherID *uint) ([]model.User, error) {
	var users []model.User
	q := r.DB.WithContext(ctx).Where("role = ?", model.Student)
	if teacherID != nil {
		q = q.Where("teacher_id = ?", *teacherID)
	}
	err := q.Order("name ASC").Find(&users).Error
	return users, err
}

// SessionStats 单个学生的每日练习统计
type SessionStats struct {
	UserID    uint
	Total     int64
	Completed int64
	LastDate  string
}

func (r *UserRepository) SessionStats(ctx context.Context, userIDs []uint) (map[uint]SessionStats, error) {
	stats := make(map[uint]SessionStats, len(userIDs))
	if len(userIDs) == 0 {
		return stats, nil
	}

	var rows []SessionStats
	err := r.DB.WithContext(ctx).Model(&model.DrillSession{}).
		Select("user_id, COUNT(*) AS total, "+
			"SUM(CASE WHEN current_step = ? THEN 1 ELSE 0 END) AS completed, "+
			"MAX(date) AS last_date", drill.StepDone).
		Where("user_id IN ?", userIDs).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats[row.UserID] = row
	}
	return stats, nil
}

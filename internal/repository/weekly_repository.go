package repository

import (
	"context"

	"spmtutor/internal/content"
	"spmtutor/internal/drill"
	"spmtutor/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WeeklyRepository struct {
	DB *gorm.DB
}

func NewWeeklyRepository(db *gorm.DB) *WeeklyRepository {
	return &WeeklyRepository{DB: db}
}

func (r *WeeklyRepository) FindByDay(ctx context.Context, userID uint, date string) (*model.WeeklyCheckpoint, error) {
	var w model.WeeklyCheckpoint
	err := r.DB.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WeeklyRepository) FindForUser(ctx context.Context, id string, userID uint) (*model.WeeklyCheckpoint, error) {
	var w model.WeeklyCheckpoint
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Insert 写入当天的检查点；并发插入时返回已存在的那一条
func (r *WeeklyRepository) Insert(ctx context.Context, w *model.WeeklyCheckpoint) (*model.WeeklyCheckpoint, error) {
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(w)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 1 {
		return w, nil
	}
	return r.FindByDay(ctx, w.UserID, w.Date)
}

// Submit 仅当检查点仍处于 weekly_question 时写入作答与反馈，否则返回 ErrStaleStep
func (r *WeeklyRepository) Submit(ctx context.Context, id, answer string, feedback *content.TaskContent) error {
	res := r.DB.WithContext(ctx).Model(&model.WeeklyCheckpoint{}).
		Where("id = ? AND step = ?", id, drill.StepWeeklyQuestion).
		Updates(map[string]interface{}{
			"step":           drill.StepDone,
			"student_answer": answer,
			"feedback":       datatypes.NewJSONType(feedback),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStep
	}
	return nil
}

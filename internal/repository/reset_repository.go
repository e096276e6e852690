package repository

import (
	"context"
	"fmt"

	"spmtutor/internal/model"

	"gorm.io/gorm"
)

type ResetRepository struct {
	DB *gorm.DB
}

func NewResetRepository(db *gorm.DB) *ResetRepository {
	return &ResetRepository{DB: db}
}

// PurgeStudent 在一个事务中删除学生的全部练习记录，任一步失败则整体回滚
func (r *ResetRepository) PurgeStudent(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		drillIDs := tx.Model(&model.DrillSession{}).Select("id").Where("user_id = ?", userID)
		grammarIDs := tx.Model(&model.GrammarSession{}).Select("id").Where("user_id = ?", userID)

		steps := []struct {
			name string
			run  func() error
		}{
			{"step_responses", func() error {
				return tx.Where("session_id IN (?)", drillIDs).Delete(&model.StepResponse{}).Error
			}},
			{"drill_sessions", func() error {
				return tx.Where("user_id = ?", userID).Delete(&model.DrillSession{}).Error
			}},
			{"grammar_responses", func() error {
				return tx.Where("session_id IN (?)", grammarIDs).Delete(&model.GrammarResponse{}).Error
			}},
			{"grammar_sessions", func() error {
				return tx.Where("user_id = ?", userID).Delete(&model.GrammarSession{}).Error
			}},
			{"weekly_checkpoints", func() error {
				return tx.Where("user_id = ?", userID).Delete(&model.WeeklyCheckpoint{}).Error
			}},
			{"chat_messages", func() error {
				return tx.Where("user_id = ?", userID).Delete(&model.ChatMessage{}).Error
			}},
		}

		for _, step := range steps {
			if err := step.run(); err != nil {
				return fmt.Errorf("purge %s: %w", step.name, err)
			}
		}
		return nil
	})
}

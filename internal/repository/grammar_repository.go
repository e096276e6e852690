package repository

import (
	"context"
	"errors"

	"spmtutor/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GrammarRepository struct {
	DB *gorm.DB
}

func NewGrammarRepository(db *gorm.DB) *GrammarRepository {
	return &GrammarRepository{DB: db}
}

func (r *GrammarRepository) FindOrCreateSession(ctx context.Context, s *model.GrammarSession) (*model.GrammarSession, bool, error) {
	db := r.DB.WithContext(ctx)

	existing, err := r.findByDay(db, s.UserID, s.Date)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if s.Version == 0 {
		s.Version = 1
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(s)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return s, true, nil
	}

	existing, err = r.findByDay(db, s.UserID, s.Date)
	return existing, false, err
}

func (r *GrammarRepository) findByDay(db *gorm.DB, userID uint, date string) (*model.GrammarSession, error) {
	var s model.GrammarSession
	if err := db.Where("user_id = ? AND date = ?", userID, date).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GrammarRepository) FindSession(ctx context.Context, id string, userID uint) (*model.GrammarSession, error) {
	var s model.GrammarSession
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveState 以 s.Version 为期望版本写回状态并追加审计记录。
// 版本不匹配时返回 ErrStaleVersion；成功后 s.Version 加一。
func (r *GrammarRepository) SaveState(ctx context.Context, s *model.GrammarSession, audit *model.GrammarResponse) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state := s.State.Data()
		res := tx.Model(&model.GrammarSession{}).
			Where("id = ? AND version = ?", s.ID, s.Version).
			Updates(map[string]interface{}{
				"phase":   state.Phase,
				"state":   datatypes.NewJSONType(state),
				"version": gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleVersion
		}

		if audit != nil {
			audit.SessionID = s.ID
			if err := tx.Create(audit).Error; err != nil {
				return err
			}
		}

		s.Phase = state.Phase
		s.Version++
		return nil
	})
}

// AppendAudit 只写审计记录，用于不改变状态的回放请求
func (r *GrammarRepository) AppendAudit(ctx context.Context, audit *model.GrammarResponse) error {
	return r.DB.WithContext(ctx).Create(audit).Error
}

func (r *GrammarRepository) ListAudit(ctx context.Context, sessionID string) ([]model.GrammarResponse, error) {
	var list []model.GrammarResponse
	err := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at ASC").Find(&list).Error
	return list, err
}

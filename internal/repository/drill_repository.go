package repository

import (
	"context"
	"errors"

	"spmtutor/internal/drill"
	"spmtutor/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DrillRepository struct {
	DB *gorm.DB
}

func NewDrillRepository(db *gorm.DB) *DrillRepository {
	return &DrillRepository{DB: db}
}

// FindOrCreateSession 返回 (user, kind, date) 当天的 session，不存在时插入 s。
// 并发首次创建由唯一索引裁决，失败方重新读取胜出的行。
func (r *DrillRepository) FindOrCreateSession(ctx context.Context, s *model.DrillSession) (*model.DrillSession, bool, error) {
	db := r.DB.WithContext(ctx)

	existing, err := r.findByDay(db, s.UserID, s.Kind, s.Date)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(s)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return s, true, nil
	}

	existing, err = r.findByDay(db, s.UserID, s.Kind, s.Date)
	return existing, false, err
}

func (r *DrillRepository) findByDay(db *gorm.DB, userID uint, kind drill.Kind, date string) (*model.DrillSession, error) {
	var s model.DrillSession
	err := db.Where("user_id = ? AND kind = ? AND date = ?", userID, kind, date).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindSession 仅返回属于 userID 的 session
func (r *DrillRepository) FindSession(ctx context.Context, id string, userID uint) (*model.DrillSession, error) {
	var s model.DrillSession
	err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindResponse 返回 session 某一步生成的内容
func (r *DrillRepository) FindResponse(ctx context.Context, sessionID string, step drill.Step) (*model.StepResponse, error) {
	var resp model.StepResponse
	err := r.DB.WithContext(ctx).
		Where("session_id = ? AND step = ?", sessionID, step).
		Order("created_at DESC").
		First(&resp).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// InsertResponse 写入某一步的内容。同一步已存在时保留先写入的一条并返回它。
func (r *DrillRepository) InsertResponse(ctx context.Context, resp *model.StepResponse) (*model.StepResponse, error) {
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(resp)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 1 {
		return resp, nil
	}
	return r.FindResponse(ctx, resp.SessionID, resp.Step)
}

func (r *DrillRepository) ListResponses(ctx context.Context, sessionID string) ([]model.StepResponse, error) {
	var list []model.StepResponse
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

// Advance 描述一次步骤推进需要原子写入的内容
type Advance struct {
	SessionID  string
	From       drill.Step
	To         drill.Step
	Answer     string
	CoreAnswer *string
	// Next 为 nil 表示推进到 done
	Next *model.StepResponse
}

// CommitAdvance 在一个事务中：CAS 推进 current_step、记录当前步骤的作答、写入下一步内容。
// current_step 已不是 From 时返回 ErrStaleStep；From 没有待作答内容时返回 ErrNoPendingResponse。两种情况都不做任何修改。
func (r *DrillRepository) CommitAdvance(ctx context.Context, a Advance) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"current_step": a.To}
		if a.CoreAnswer != nil {
			updates["core_answer"] = *a.CoreAnswer
		}

		res := tx.Model(&model.DrillSession{}).
			Where("id = ? AND current_step = ?", a.SessionID, a.From).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleStep
		}

		res = tx.Model(&model.StepResponse{}).
			Where("session_id = ? AND step = ? AND student_answer IS NULL", a.SessionID, a.From).
			Update("student_answer", a.Answer)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoPendingResponse
		}

		if a.Next != nil {
			return tx.Create(a.Next).Error
		}
		return nil
	})
}

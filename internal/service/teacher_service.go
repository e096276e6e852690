package service

import (
	"context"
	"errors"
	"math"

	"spmtutor/internal/model"
	"spmtutor/internal/repository"
	"spmtutor/internal/util"
	"spmtutor/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StudentProgress 教师名单中的一行
type StudentProgress struct {
	ID                uint    `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	ClassName         string  `json:"class_name"`
	Form              int     `json:"form"`
	EstimatedBand     float64 `json:"estimated_band"`
	TotalSessions     int64   `json:"total_sessions"`
	CompletedSessions int64   `json:"completed_sessions"`
	CompletionRate    int     `json:"completion_rate"`
	LastActiveDate    string  `json:"last_active_date"`
}

type TeacherService struct {
	UserRepo  *repository.UserRepository
	ResetRepo *repository.ResetRepository
}

func NewTeacherService(userRepo *repository.UserRepository, resetRepo *repository.ResetRepository) *TeacherService {
	return &TeacherService{UserRepo: userRepo, ResetRepo: resetRepo}
}

// ResetStudent 清空学生的全部练习记录；学生不存在或不属于该教师时返回 forbidden，管理员不受限
func (s *TeacherService) ResetStudent(ctx context.Context, actorID uint, actorRole model.UserRole, studentID uint) error {
	student, err := s.UserRepo.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrForbidden
		}
		return err
	}
	if student.Role != model.Student {
		return util.ErrForbidden
	}
	if actorRole != model.Admin && (student.TeacherID == nil || *student.TeacherID != actorID) {
		return util.ErrForbidden
	}

	if err := s.ResetRepo.PurgeStudent(ctx, studentID); err != nil {
		return util.Wrap(util.ErrResetFailed, err)
	}

	logger.Log.Info("Student practice reset",
		zap.Uint("student_id", studentID),
		zap.Uint("actor_id", actorID),
		zap.String("actor_role", string(actorRole)))
	return nil
}

// Roster 返回名下学生的练习完成情况
func (s *TeacherService) Roster(ctx context.Context, actorID uint, actorRole model.UserRole) ([]StudentProgress, error) {
	var teacherID *uint
	if actorRole != model.Admin {
		teacherID = &actorID
	}

	students, err := s.UserRepo.FindStudents(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	stats, err := s.UserRepo.SessionStats(ctx, ids)
	if err != nil {
		return nil, err
	}

	roster := make([]StudentProgress, 0, len(students))
	for _, st := range students {
		stat := stats[st.ID]
		rate := 0
		if stat.Total > 0 {
			rate = int(math.Round(100 * float64(stat.Completed) / float64(stat.Total)))
		}
		roster = append(roster, StudentProgress{
			ID:                st.ID,
			Name:              st.Name,
			Email:             st.Email,
			ClassName:         st.ClassName,
			Form:              st.Form,
			EstimatedBand:     st.EstimatedBand,
			TotalSessions:     stat.Total,
			CompletedSessions: stat.Completed,
			CompletionRate:    rate,
			LastActiveDate:    stat.LastDate,
		})
	}
	return roster, nil
}

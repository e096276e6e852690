package service

import (
	"testing"

	"spmtutor/internal/content"
	"spmtutor/internal/drill"
	"spmtutor/internal/model"
	"spmtutor/internal/repository"
	"spmtutor/internal/testutil"
	"spmtutor/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type classroom struct {
	db       *gorm.DB
	service  *TeacherService
	teacher  *model.User
	other    *model.User
	admin    *model.User
	student  *model.User
	stranger *model.User
}

func newClassroom(t *testing.T) *classroom {
	t.Helper()
	db := testutil.NewDB(t)
	c := &classroom{
		db:      db,
		service: NewTeacherService(repository.NewUserRepository(db), repository.NewResetRepository(db)),
		teacher: testutil.SeedUser(t, db, model.User{Name: "Cikgu Aina", Role: model.Teacher}),
		other:   testutil.SeedUser(t, db, model.User{Name: "Mr Lim", Role: model.Teacher}),
		admin:   testutil.SeedUser(t, db, model.User{Name: "Admin", Role: model.Admin}),
	}
	c.student = testutil.SeedUser(t, db, model.User{Name: "Adam", TeacherID: &c.teacher.ID, ClassName: "5 Bestari", Form: 5})
	c.stranger = testutil.SeedUser(t, db, model.User{Name: "Zara", TeacherID: &c.other.ID})
	return c
}

func seedDrill(t *testing.T, db *gorm.DB, userID uint, kind drill.Kind, date string, step drill.Step) {
	t.Helper()
	require.NoError(t, db.Create(&model.DrillSession{
		UserID:      userID,
		Kind:        kind,
		Date:        date,
		CurrentStep: step,
		TodayFocus:  datatypes.NewJSONType(content.Focus{}),
		TaskContent: datatypes.NewJSONType(content.Material{}),
	}).Error)
}

func TestResetStudent_Owner(t *testing.T) {
	c := newClassroom(t)
	seedDrill(t, c.db, c.student.ID, drill.KindWriting, "2026-03-14", drill.StepDone)
	seedDrill(t, c.db, c.stranger.ID, drill.KindWriting, "2026-03-14", drill.StepWarmup)
	require.NoError(t, c.db.Create(&model.ChatMessage{UserID: c.student.ID, Question: "q"}).Error)

	require.NoError(t, c.service.ResetStudent(t.Context(), c.teacher.ID, model.Teacher, c.student.ID))

	var count int64
	require.NoError(t, c.db.Model(&model.DrillSession{}).Where("user_id = ?", c.student.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, c.db.Model(&model.ChatMessage{}).Where("user_id = ?", c.student.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, c.db.Model(&model.DrillSession{}).Where("user_id = ?", c.stranger.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 账号本身保留
	_, err := c.service.UserRepo.FindByID(t.Context(), c.student.ID)
	require.NoError(t, err)
}

func TestResetStudent_Forbidden(t *testing.T) {
	c := newClassroom(t)

	tests := []struct {
		name    string
		actor   *model.User
		student uint
	}{
		{"not owned", c.teacher, c.stranger.ID},
		{"missing student", c.teacher, 9999},
		{"target is a teacher", c.teacher, c.other.ID},
	}
	for _, tt := range tests {
		err := c.service.ResetStudent(t.Context(), tt.actor.ID, tt.actor.Role, tt.student)
		assert.ErrorIs(t, err, util.ErrForbidden, tt.name)
	}
}

func TestResetStudent_AdminBypassesOwnership(t *testing.T) {
	c := newClassroom(t)
	seedDrill(t, c.db, c.stranger.ID, drill.KindVocab, "2026-03-14", drill.StepVocabApply)

	require.NoError(t, c.service.ResetStudent(t.Context(), c.admin.ID, model.Admin, c.stranger.ID))

	var count int64
	require.NoError(t, c.db.Model(&model.DrillSession{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestResetStudent_PurgeFailure(t *testing.T) {
	c := newClassroom(t)
	seedDrill(t, c.db, c.student.ID, drill.KindWriting, "2026-03-14", drill.StepDone)
	require.NoError(t, c.db.Migrator().DropTable(&model.ChatMessage{}))

	err := c.service.ResetStudent(t.Context(), c.teacher.ID, model.Teacher, c.student.ID)
	assert.ErrorIs(t, err, util.ErrResetFailed)

	var count int64
	require.NoError(t, c.db.Model(&model.DrillSession{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRoster(t *testing.T) {
	c := newClassroom(t)
	seedDrill(t, c.db, c.student.ID, drill.KindWriting, "2026-03-12", drill.StepDone)
	seedDrill(t, c.db, c.student.ID, drill.KindWriting, "2026-03-13", drill.StepDone)
	seedDrill(t, c.db, c.student.ID, drill.KindVocab, "2026-03-14", drill.StepVocabApply)
	quiet := testutil.SeedUser(t, c.db, model.User{Name: "Bella", TeacherID: &c.teacher.ID})

	roster, err := c.service.Roster(t.Context(), c.teacher.ID, model.Teacher)
	require.NoError(t, err)
	require.Len(t, roster, 2)

	assert.Equal(t, StudentProgress{
		ID:                c.student.ID,
		Name:              "Adam",
		Email:             c.student.Email,
		ClassName:         "5 Bestari",
		Form:              5,
		EstimatedBand:     4,
		TotalSessions:     3,
		CompletedSessions: 2,
		CompletionRate:    67,
		LastActiveDate:    "2026-03-14",
	}, roster[0])

	assert.Equal(t, quiet.ID, roster[1].ID)
	assert.Zero(t, roster[1].TotalSessions)
	assert.Zero(t, roster[1].CompletionRate)

	all, err := c.service.Roster(t.Context(), c.admin.ID, model.Admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProfileMe(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(repository.NewUserRepository(db))
	user := testutil.SeedUser(t, db, model.User{
		Name:          "Adam",
		Form:          5,
		EstimatedBand: 4.5,
		Weaknesses:    datatypes.JSONSlice[string]{"connectors"},
	})

	p, err := svc.Me(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Adam", p.Name)
	assert.Equal(t, model.Student, p.Role)
	assert.Equal(t, []string{"connectors"}, p.Weaknesses)
	assert.Equal(t, []string{}, p.Strengths)

	// 未设置的档案字段使用表默认值
	fresh := testutil.SeedUser(t, db, model.User{Name: "Chong"})
	p, err = svc.Me(t.Context(), fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Form)
	assert.Equal(t, 4.0, p.EstimatedBand)

	_, err = svc.Me(t.Context(), 9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

package repository

import (
	"clubcal/cmd/internal/domain/entity"
	"clubcal/cmd/internal/domain/sqlite"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Init("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func statusPtr(s entity.AppointmentStatus) *entity.AppointmentStatus {
	return &s
}

func seedAppointments(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	court := "Court 2"
	holidayEnd := base.Add(96 * time.Hour)
	// Nil and set pointers are mixed in one batch insert on purpose.
	appts := []*entity.Appointment{
		{ID: "published", Title: "Published", Type: entity.AppointmentTypeTournament, Status: statusPtr(entity.AppointmentStatusPublished), StartDate: base.Add(48 * time.Hour), Location: &court},
		{ID: "draft", Title: "Draft", Type: entity.AppointmentTypeTournament, Status: statusPtr(entity.AppointmentStatusDraft), StartDate: base.Add(24 * time.Hour)},
		{ID: "unset", Title: "No status", Type: entity.AppointmentTypeTournament, StartDate: base},
		{ID: "holiday", Title: "Holiday", Type: entity.AppointmentTypeHoliday, Status: statusPtr(entity.AppointmentStatusPublished), StartDate: base.Add(72 * time.Hour), EndDate: &holidayEnd},
		{ID: "deleted", Title: "Deleted", Type: entity.AppointmentTypeTournament, Status: statusPtr(entity.AppointmentStatusPublished), StartDate: base.Add(12 * time.Hour)},
	}
	require.NoError(t, db.Create(&appts).Error)
	require.NoError(t, db.Delete(&entity.Appointment{}, "id = ?", "deleted").Error)
}

func ids(appts []*entity.Appointment) []string {
	out := make([]string, len(appts))
	for i, a := range appts {
		out[i] = a.ID
	}
	return out
}

func TestAppointmentRepository_Query(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedAppointments(t, db)
	repo := NewAppointmentRepository(db)

	tournaments := []entity.AppointmentType{entity.AppointmentTypeTournament}

	tests := []struct {
		name   string
		filter entity.AppointmentFilter
		want   []string
	}{
		{
			name:   "type filter ordered by start date",
			filter: entity.AppointmentFilter{Types: tournaments, ExcludeDeleted: true},
			want:   []string{"unset", "draft", "published"},
		},
		{
			name:   "published only keeps null status",
			filter: entity.AppointmentFilter{Types: tournaments, ExcludeDeleted: true, PublishedOnly: true},
			want:   []string{"unset", "published"},
		},
		{
			name: "several types",
			filter: entity.AppointmentFilter{
				Types:          []entity.AppointmentType{entity.AppointmentTypeTournament, entity.AppointmentTypeHoliday},
				ExcludeDeleted: true,
				PublishedOnly:  true,
			},
			want: []string{"unset", "published", "holiday"},
		},
		{
			name:   "empty type set matches nothing",
			filter: entity.AppointmentFilter{Types: []entity.AppointmentType{}, ExcludeDeleted: true},
			want:   []string{},
		},
		{
			name:   "id restriction",
			filter: entity.AppointmentFilter{Types: tournaments, ExcludeDeleted: true, IDs: []string{"draft", "holiday", "deleted"}},
			want:   []string{"draft"},
		},
		{
			name:   "empty id restriction matches nothing",
			filter: entity.AppointmentFilter{Types: tournaments, ExcludeDeleted: true, IDs: []string{}},
			want:   []string{},
		},
		{
			name:   "soft-deleted rows only when asked",
			filter: entity.AppointmentFilter{Types: tournaments, ExcludeDeleted: false},
			want:   []string{"unset", "deleted", "draft", "published"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appts, err := repo.Query(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(appts))
		})
	}
}

func TestAppointmentRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	seedAppointments(t, db)
	repo := NewAppointmentRepository(db)

	appt, err := repo.FindByID(ctx, "holiday")
	require.NoError(t, err)
	require.NotNil(t, appt)
	assert.Equal(t, entity.AppointmentTypeHoliday, appt.Type)

	require.NotNil(t, appt.EndDate)
	assert.True(t, appt.EndDate.Equal(time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)))
	assert.Nil(t, appt.Location)

	appt, err = repo.FindByID(ctx, "published")
	require.NoError(t, err)
	require.NotNil(t, appt)
	assert.Equal(t, "Court 2", *appt.Location)
	assert.Nil(t, appt.EndDate)

	appt, err = repo.FindByID(ctx, "unset")
	require.NoError(t, err)
	require.NotNil(t, appt)
	assert.Nil(t, appt.Status)

	appt, err = repo.FindByID(ctx, "deleted")
	require.NoError(t, err)
	assert.Nil(t, appt)
}

func TestAppointmentRepository_SaveAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository(openTestDB(t))
	location := "Court 1"

	appt := &entity.Appointment{
		Title:     "Training",
		Type:      entity.AppointmentTypeTraining,
		StartDate: time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC),
		Location:  &location,
	}
	require.NoError(t, repo.Save(ctx, appt))
	assert.NotEmpty(t, appt.ID)

	found, err := repo.FindByID(ctx, appt.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Court 1", *found.Location)
	assert.Nil(t, found.EndDate)
	assert.Nil(t, found.Status)

	require.NoError(t, repo.Delete(ctx, found))
	gone, err := repo.FindByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

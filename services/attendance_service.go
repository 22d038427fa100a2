package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"board-club-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Points granted for a daily check-in.
const attendancePoints = 10

type AttendanceService struct {
	DB *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{DB: db}
}

func attendanceDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// CheckIn records today's attendance and credits the points to the user
// in the same transaction. A second check-in on the same day is a
// conflict; the (user, date) unique index backs this under concurrency.
func (s *AttendanceService) CheckIn(ctx context.Context, userID string, groupID *string) (*models.Attendance, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	today := attendanceDay(time.Now())

	att := models.Attendance{
		ID:             uuid.NewString(),
		UserID:         userID,
		GroupID:        groupID,
		AttendanceDate: today,
		Points:         attendancePoints,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Attendance{}).
			Where("user_id = ? AND attendance_date = ?", userID, today).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: already attended today", ErrConflict)
		}
		if err := tx.Create(&att).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", att.Points)).Error
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, classifyStoreErr(err)
	}
	return &att, nil
}

// TodayStatus returns today's attendance row if the user checked in.
func (s *AttendanceService) TodayStatus(ctx context.Context, userID string) (*models.Attendance, error) {
	var att models.Attendance
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND attendance_date = ?", userID, attendanceDay(time.Now())).
		First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	return &att, nil
}

func (s *AttendanceService) History(ctx context.Context, userID string, limit int) ([]models.Attendance, error) {
	if limit < 1 || limit > 365 {
		limit = 30
	}
	var rows []models.Attendance
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("attendance_date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	return rows, nil
}

package services

import (
	"context"
	"errors"
	"testing"

	"board-club-system/models"
)

func TestCheckInCreditsPoints(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	att, err := svc.CheckIn(ctx, userID, nil)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if att.Points != attendancePoints {
		t.Fatalf("points = %d", att.Points)
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	if user.Points != attendancePoints {
		t.Fatalf("user points = %d, want %d", user.Points, attendancePoints)
	}
}

func TestCheckInTwiceSameDayConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	if _, err := svc.CheckIn(ctx, userID, nil); err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if _, err := svc.CheckIn(ctx, userID, nil); !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}

	// The failed attempt must not have credited points again.
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	if user.Points != attendancePoints {
		t.Fatalf("points double-credited: %d", user.Points)
	}
	var n int64
	if err := db.Model(&models.Attendance{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("attendance rows = %d", n)
	}
}

func TestTodayStatusAndHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	status, err := svc.TodayStatus(ctx, userID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != nil {
		t.Fatalf("not checked in yet, got %+v", status)
	}

	if _, err := svc.CheckIn(ctx, userID, strPtr("group-1")); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	status, err = svc.TodayStatus(ctx, userID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status == nil || status.GroupID == nil || *status.GroupID != "group-1" {
		t.Fatalf("status: %+v", status)
	}

	history, err := svc.History(ctx, userID, 30)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history rows = %d", len(history))
	}
}

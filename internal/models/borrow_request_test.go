package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidBorrowDuration(t *testing.T) {
	for _, d := range []int{1, 7, 14} {
		assert.True(t, ValidBorrowDuration(d), "duration %d", d)
	}
	for _, d := range []int{0, -1, 15} {
		assert.False(t, ValidBorrowDuration(d), "duration %d", d)
	}
}

func TestBorrowDurationLabel(t *testing.T) {
	assert.Equal(t, "1 day", BorrowDurationLabel(1))
	assert.Equal(t, "3 days", BorrowDurationLabel(3))
	assert.Equal(t, "1 week", BorrowDurationLabel(7))
	assert.Equal(t, "2 weeks", BorrowDurationLabel(14))
}

func TestBorrowRequestEndDate(t *testing.T) {
	req := BorrowRequest{
		StartDate:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		BorrowDuration: 7,
	}
	assert.Equal(t, time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), req.EndDate())
}

func TestTerminalBorrowStatus(t *testing.T) {
	assert.False(t, TerminalBorrowStatus(BorrowRequestSent))
	assert.True(t, TerminalBorrowStatus(BorrowRequestAccepted))
	assert.True(t, TerminalBorrowStatus(BorrowRequestDenied))
	assert.True(t, TerminalBorrowStatus(BorrowRequestCancelled))
}

package notification

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"iot-dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() []domain.Notification {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	return []domain.Notification{
		{ID: "1", Title: "Device Offline", Message: "LED Light Controller went offline", Type: domain.NotificationError, Timestamp: now},
		{ID: "2", Title: "High Temperature", Message: "Air Quality Monitor reports 24.2°C", Type: domain.NotificationWarning, Timestamp: now},
		{ID: "3", Title: "Update Installed", Message: "Firmware updated", Type: domain.NotificationSuccess, Timestamp: now, IsRead: true},
		{ID: "4", Title: "Maintenance", Message: "Scheduled maintenance tonight", Type: domain.NotificationInfo, Timestamp: now},
		{ID: "5", Title: "Backup", Message: "Daily backup completed", Type: domain.NotificationSuccess, Timestamp: now, IsRead: true},
	}
}

func TestMarkAsRead_Scenario(t *testing.T) {
	c := NewCenter(seed())
	require.Equal(t, 3, c.UnreadCount())

	assert.True(t, c.MarkAsRead("2"))
	assert.Equal(t, 2, c.UnreadCount())

	items, err := c.List(FilterAll, "")
	require.NoError(t, err)
	assert.True(t, items[1].IsRead)
}

func TestMarkAsRead_UnknownAndRepeat(t *testing.T) {
	c := NewCenter(seed())

	assert.False(t, c.MarkAsRead("nope"))
	assert.Equal(t, 3, c.UnreadCount())

	assert.False(t, c.MarkAsRead("3"))
	assert.True(t, c.MarkAsRead("1"))
	assert.False(t, c.MarkAsRead("1"))
	assert.Equal(t, 2, c.UnreadCount())
}

func TestMarkAllAsRead(t *testing.T) {
	c := NewCenter(seed())
	assert.Equal(t, 3, c.MarkAllAsRead())
	assert.Equal(t, 0, c.UnreadCount())
	assert.Equal(t, 0, c.MarkAllAsRead())
	assert.Equal(t, 5, c.Len())
}

func TestNewCenter_CopiesSeed(t *testing.T) {
	s := seed()
	c := NewCenter(s)
	c.MarkAllAsRead()
	assert.False(t, s[0].IsRead)
}

func TestList_Filters(t *testing.T) {
	c := NewCenter(seed())

	cases := []struct {
		filter string
		want   []string
	}{
		{FilterAll, []string{"1", "2", "3", "4", "5"}},
		{"", []string{"1", "2", "3", "4", "5"}},
		{FilterUnread, []string{"1", "2", "4"}},
		{FilterError, []string{"1"}},
		{FilterWarning, []string{"2"}},
		{FilterInfo, []string{"4"}},
		{FilterSuccess, []string{"3", "5"}},
	}
	for _, tc := range cases {
		items, err := c.List(tc.filter, "")
		require.NoError(t, err, tc.filter)
		got := make([]string, 0, len(items))
		for _, n := range items {
			got = append(got, n.ID)
		}
		assert.Equal(t, tc.want, got, tc.filter)
	}
}

func TestList_TextComposesWithFilter(t *testing.T) {
	c := NewCenter(seed())

	items, err := c.List(FilterSuccess, "BACKUP")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "5", items[0].ID)

	items, err = c.List(FilterUnread, "offline")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
}

func TestList_InvalidFilter(t *testing.T) {
	c := NewCenter(seed())
	_, err := c.List("critical", "")
	assert.Error(t, err)
}

func TestConcurrentMarks(t *testing.T) {
	var items []domain.Notification
	for i := 0; i < 50; i++ {
		items = append(items, domain.Notification{ID: fmt.Sprint(i), Type: domain.NotificationInfo})
	}
	c := NewCenter(items)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			c.MarkAsRead(id)
			_ = c.UnreadCount()
		}(fmt.Sprint(i))
	}
	wg.Wait()
	assert.Equal(t, 0, c.UnreadCount())
}

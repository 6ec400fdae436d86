package service

import (
	"fmt"
	"time"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

var timeNow = time.Now

// periodStart 统计周期的起点：daily 当天零点、weekly 往前7天、monthly 当月1号
func periodStart(period string) (time.Time, error) {
	now := timeNow()
	switch period {
	case PeriodDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case PeriodWeekly:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("不支持的统计周期: %s", period)
	}
}

// Copyright 2025 PulsePlan Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/model"
)

// NextOccurrence 计算锚点之后、严格晚于 after 的下一次发生时间
// 月/年规则在目标月份天数不足时收缩到月末(1月31日 -> 2月28/29日)
// 规则为 NONE 时返回 false
func NextOccurrence(anchor time.Time, rule string, after time.Time) (time.Time, bool) {
	if rule == model.RecurrenceNone || rule == "" {
		return time.Time{}, false
	}
	if anchor.After(after) {
		return anchor, true
	}

	switch rule {
	case model.RecurrenceDaily, model.RecurrenceWeekly:
		stepDays := 1
		if rule == model.RecurrenceWeekly {
			stepDays = 7
		}
		elapsed := int(after.Sub(anchor).Hours() / 24)
		n := elapsed/stepDays + 1
		candidate := anchor.AddDate(0, 0, n*stepDays)
		for !candidate.After(after) {
			n++
			candidate = anchor.AddDate(0, 0, n*stepDays)
		}
		return candidate, true

	case model.RecurrenceMonthly:
		for n := 1; ; n++ {
			candidate := addMonthsClamped(anchor, n)
			if candidate.After(after) {
				return candidate, true
			}
		}

	case model.RecurrenceYearly:
		for n := 1; ; n++ {
			candidate := addMonthsClamped(anchor, n*12)
			if candidate.After(after) {
				return candidate, true
			}
		}
	}

	return time.Time{}, false
}

// addMonthsClamped 加 n 个月, 日期超出目标月份时收缩到月末
// 不能直接用 AddDate: 1月31日 AddDate(0,1,0) 会归一化成 3月3日
func addMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	m := int(month) + n
	year += (m - 1) / 12
	month = time.Month((m-1)%12 + 1)

	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

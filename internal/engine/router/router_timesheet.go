package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/http"
)

// startTimer 启动计时器, 每用户同时只允许一个
func (rt *Router) startTimer(c *fiber.Ctx) error {
	var req model.StartTimerReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	entry, err := rt.timesheetSvc.StartTimer(currentUserId(c), &req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, entry)
}

// stopTimer 停止计时器
func (rt *Router) stopTimer(c *fiber.Ctx) error {
	entry, err := rt.timesheetSvc.StopTimer(currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, entry)
}

// runningTimer 正在运行的计时器, 没有则返回空
func (rt *Router) runningTimer(c *fiber.Ctx) error {
	entry, err := rt.timesheetSvc.RunningTimer(currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, entry)
}

// addManualEntry 手工补录工时
func (rt *Router) addManualEntry(c *fiber.Ctx) error {
	var req model.ManualEntryReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	entry, err := rt.timesheetSvc.AddManualEntry(currentUserId(c), &req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, entry)
}

// deleteEntry 删除工时记录
func (rt *Router) deleteEntry(c *fiber.Ctx) error {
	if err := rt.timesheetSvc.DeleteEntry(c.Params("entryId"), currentUserId(c)); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// weeklySummary 周汇总, anchor 为该周内任意一天, 缺省今天
func (rt *Router) weeklySummary(c *fiber.Ctx) error {
	anchor := time.Now()
	if raw := c.Query("anchor"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
		}
		anchor = parsed
	}

	resp, err := rt.timesheetSvc.WeeklySummary(currentUserId(c), anchor)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// projectSummary 项目维度汇总, from/to 闭开区间
func (rt *Router) projectSummary(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	resp, err := rt.timesheetSvc.ProjectSummary(c.Params("projectId"), currentUserId(c), from, to)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, resp)
}

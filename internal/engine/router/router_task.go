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

package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/http"
)

// listTasks 工作区任务列表, 查询参数过滤
func (rt *Router) listTasks(c *fiber.Ctx) error {
	if _, ok := requireWorkspaceId(c); !ok {
		return nil
	}
	query := &model.TaskQueryReq{
		ProjectId:  c.Query("projectId"),
		State:      c.Query("state"),
		AssigneeId: c.Query("assigneeId"),
		PageNum:    c.QueryInt("pageNum", 1),
		PageSize:   c.QueryInt("pageSize", 50),
	}
	tasks, total, err := rt.taskSvc.ListWorkspaceTasks(currentUserId(c), query)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"tasks": tasks, "total": total})
}

// createTask 创建任务
func (rt *Router) createTask(c *fiber.Ctx) error {
	var req model.CreateTaskReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	task, err := rt.taskSvc.CreateTask(currentUserId(c), &req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, task)
}

// taskBoard 项目看板, 按状态分列
func (rt *Router) taskBoard(c *fiber.Ctx) error {
	board, err := rt.taskSvc.Board(c.Params("projectId"), currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, board)
}

// getTask 任务详情
func (rt *Router) getTask(c *fiber.Ctx) error {
	task, err := rt.taskSvc.GetTask(c.Params("taskId"), currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, task)
}

// updateTask 更新任务
func (rt *Router) updateTask(c *fiber.Ctx) error {
	var req model.UpdateTaskReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	if err := rt.taskSvc.UpdateTask(c.Params("taskId"), currentUserId(c), &req); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// moveTask 看板移动
func (rt *Router) moveTask(c *fiber.Ctx) error {
	var req model.MoveTaskReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	if err := rt.taskSvc.MoveTask(c.Params("taskId"), currentUserId(c), &req); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// deleteTask 删除任务
func (rt *Router) deleteTask(c *fiber.Ctx) error {
	if err := rt.taskSvc.DeleteTask(c.Params("taskId"), currentUserId(c)); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

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

// login 登录
func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	resp, err := rt.userSvc.Login(&req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, resp)
}

// register 注册
func (rt *Router) register(c *fiber.Ctx) error {
	var req model.RegisterReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	info, err := rt.userSvc.Register(&req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, info)
}

// logout 登出
func (rt *Router) logout(c *fiber.Ctx) error {
	if err := rt.userSvc.Logout(currentUserId(c)); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// refresh 刷新令牌, refresh token 从 Header X-Refresh-Token 读取
func (rt *Router) refresh(c *fiber.Ctx) error {
	rToken := c.Get("X-Refresh-Token")
	if rToken == "" {
		return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
	}

	tokens, err := rt.userSvc.Refresh(currentUserId(c), rToken)
	if err != nil {
		return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
	}
	return http.WithRepJSON(c, tokens)
}

// getUserInfo 当前用户信息
func (rt *Router) getUserInfo(c *fiber.Ctx) error {
	info, err := rt.userSvc.GetUserInfo(currentUserId(c))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, info)
}

// setVaultPin 设置密码库 PIN
func (rt *Router) setVaultPin(c *fiber.Ctx) error {
	var req model.SetVaultPinReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	if err := rt.userSvc.SetVaultPin(currentUserId(c), req.Pin); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// listUsers 用户列表, 需要 canAccessUsers
func (rt *Router) listUsers(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	caps, err := rt.tenantSvc.Capabilities(currentUserId(c), teamId)
	if err != nil {
		return failWith(c, err)
	}
	if !caps.CanAccessUsers {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, http.PermissionDenied.Msg, c.Path())
	}

	users, total, err := rt.userSvc.ListUsers(c.QueryInt("pageNum", 1), c.QueryInt("pageSize", 20))
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, fiber.Map{"users": users, "total": total})
}

// createUser 创建用户, 需要 canCreateUsers
func (rt *Router) createUser(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	caps, err := rt.tenantSvc.Capabilities(currentUserId(c), teamId)
	if err != nil {
		return failWith(c, err)
	}
	if !caps.CanCreateUsers {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, http.PermissionDenied.Msg, c.Path())
	}

	var req model.CreateUserReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	info, err := rt.userSvc.CreateUser(&req)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, info)
}

// updateUser 更新用户, 需要 canEditUsers
func (rt *Router) updateUser(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	caps, err := rt.tenantSvc.Capabilities(currentUserId(c), teamId)
	if err != nil {
		return failWith(c, err)
	}
	if !caps.CanEditUsers {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, http.PermissionDenied.Msg, c.Path())
	}

	var req model.UpdateUserReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	if err := rt.userSvc.UpdateUser(c.Params("userId"), &req); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// deleteUser 删除用户, 需要 canDeleteUsers
func (rt *Router) deleteUser(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	caps, err := rt.tenantSvc.Capabilities(currentUserId(c), teamId)
	if err != nil {
		return failWith(c, err)
	}
	if !caps.CanDeleteUsers {
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, http.PermissionDenied.Msg, c.Path())
	}

	if err := rt.userSvc.DeleteUser(c.Params("userId")); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// upsertPermission 设置用户管理权限, 仅工作区所有者
func (rt *Router) upsertPermission(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	if err := rt.tenantSvc.RequireTeamOwner(currentUserId(c), teamId); err != nil {
		return failWith(c, err)
	}

	var req model.UpsertPermissionReq
	if !parseAndValidate(c, &req) {
		return nil
	}
	if err := rt.userSvc.UpsertPermission(&req); err != nil {
		return failWith(c, err)
	}
	return http.WithRepNotDetail(c)
}

// getCapabilities 当前用户在当前工作区的能力
func (rt *Router) getCapabilities(c *fiber.Ctx) error {
	teamId, ok := requireWorkspaceId(c)
	if !ok {
		return nil
	}
	caps, err := rt.tenantSvc.Capabilities(currentUserId(c), teamId)
	if err != nil {
		return failWith(c, err)
	}
	return http.WithRepJSON(c, caps)
}

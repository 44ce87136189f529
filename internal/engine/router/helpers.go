package router

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pulseplan/pulseplan/internal/engine/consts"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/internal/engine/service"
	"github.com/pulseplan/pulseplan/pkg/http"
	"github.com/pulseplan/pulseplan/pkg/http/jwt"
	"github.com/pulseplan/pulseplan/pkg/log"
)

var validate = validator.New()

// currentUserId 从认证中间件注入的 claims 取用户ID
func currentUserId(c *fiber.Ctx) string {
	claims, ok := c.Locals(consts.ClaimsKey).(*jwt.AuthClaims)
	if !ok {
		return ""
	}
	return claims.UserId
}

// workspaceMiddleware 解析当前工作区并注入 Locals
// 解析不到工作区不中断请求, 由需要工作区的 handler 自行拒绝
func (rt *Router) workspaceMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userId := currentUserId(c)
		if userId == "" {
			return c.Next()
		}
		team, err := rt.tenantSvc.ResolveWorkspace(userId, c.Cookies(consts.WorkspaceCookie))
		if err != nil {
			log.Errorf("resolve workspace failed: %v", err)
			return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
		if team != nil {
			c.Locals(consts.WorkspaceKey, team)
		}
		return c.Next()
	}
}

// currentWorkspaceId 当前工作区ID, 未选中返回空串
func currentWorkspaceId(c *fiber.Ctx) string {
	team, ok := c.Locals(consts.WorkspaceKey).(*model.Team)
	if !ok || team == nil {
		return ""
	}
	return team.TeamId
}

// requireWorkspaceId 需要工作区的 handler 用, 未选中时写响应并返回 false
func requireWorkspaceId(c *fiber.Ctx) (string, bool) {
	teamId := currentWorkspaceId(c)
	if teamId == "" {
		_ = http.WithRepErrMsg(c, http.WorkspaceNotSelected.Code, http.WorkspaceNotSelected.Msg, c.Path())
		return "", false
	}
	return teamId, true
}

// parseAndValidate 解析请求体并校验
func parseAndValidate(c *fiber.Ctx, out interface{}) bool {
	if err := c.BodyParser(out); err != nil {
		_ = http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
		return false
	}
	if err := validate.Struct(out); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			detail := make(map[string]string, len(fields))
			for _, f := range fields {
				detail[f.Field()] = f.Tag()
			}
			_ = http.WithRepErrFields(c, http.ValidationFailed.Code, detail, c.Path())
			return false
		}
		_ = http.WithRepErrMsg(c, http.ValidationFailed.Code, http.ValidationFailed.Msg, c.Path())
		return false
	}
	return true
}

// failWith 服务层错误映射到业务码
func failWith(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return http.WithRepErrMsg(c, http.PermissionDenied.Code, http.PermissionDenied.Msg, c.Path())
	case errors.Is(err, service.ErrNotFound):
		return http.WithRepErrMsg(c, http.NotFound.Code, http.NotFound.Msg, c.Path())
	case errors.Is(err, service.ErrConflict):
		return http.WithRepErrMsg(c, http.Conflict.Code, http.Conflict.Msg, c.Path())
	case errors.Is(err, service.ErrUserNotExist):
		return http.WithRepErrMsg(c, http.UserNotExist.Code, http.UserNotExist.Msg, c.Path())
	case errors.Is(err, service.ErrUserExists):
		return http.WithRepErrMsg(c, http.UserAlreadyExist.Code, http.UserAlreadyExist.Msg, c.Path())
	case errors.Is(err, service.ErrBadCredentials):
		return http.WithRepErrMsg(c, http.UserIncorrectPassword.Code, http.UserIncorrectPassword.Msg, c.Path())
	case errors.Is(err, service.ErrNoWorkspace):
		return http.WithRepErrMsg(c, http.WorkspaceNotSelected.Code, http.WorkspaceNotSelected.Msg, c.Path())
	case errors.Is(err, service.ErrInviteInvalid):
		return http.WithRepErrMsg(c, http.InviteInvalid.Code, http.InviteInvalid.Msg, c.Path())
	case errors.Is(err, service.ErrInviteExpired):
		return http.WithRepErrMsg(c, http.InviteExpired.Code, http.InviteExpired.Msg, c.Path())
	case errors.Is(err, service.ErrInviteMismatch):
		return http.WithRepErrMsg(c, http.InviteEmailMismatch.Code, http.InviteEmailMismatch.Msg, c.Path())
	case errors.Is(err, service.ErrInvitePending):
		return http.WithRepErrMsg(c, http.InviteAlreadyPending.Code, http.InviteAlreadyPending.Msg, c.Path())
	case errors.Is(err, service.ErrTimerRunning):
		return http.WithRepErrMsg(c, http.TimerAlreadyRunning.Code, http.TimerAlreadyRunning.Msg, c.Path())
	case errors.Is(err, service.ErrTimerNotRunning):
		return http.WithRepErrMsg(c, http.TimerNotRunning.Code, http.TimerNotRunning.Msg, c.Path())
	case errors.Is(err, service.ErrVaultPinNotSet):
		return http.WithRepErrMsg(c, http.VaultPinNotSet.Code, http.VaultPinNotSet.Msg, c.Path())
	case errors.Is(err, service.ErrVaultPinMismatch):
		return http.WithRepErrMsg(c, http.VaultPinIncorrect.Code, http.VaultPinIncorrect.Msg, c.Path())
	default:
		log.Errorf("request failed: %v", err)
		return http.WithRepErrMsg(c, http.Failed.Code, http.Failed.Msg, c.Path())
	}
}

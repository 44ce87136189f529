package service

import "errors"

// 服务层哨兵错误, 路由层据此映射业务码与 HTTP 状态
var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrUserNotExist     = errors.New("user does not exist")
	ErrUserExists       = errors.New("user already exists")
	ErrBadCredentials   = errors.New("incorrect email or password")
	ErrNoWorkspace      = errors.New("no workspace selected")
	ErrInviteInvalid    = errors.New("invite invalid")
	ErrInviteExpired    = errors.New("invite expired")
	ErrInviteMismatch   = errors.New("invite email mismatch")
	ErrInvitePending    = errors.New("pending invite already exists for email")
	ErrTimerRunning     = errors.New("a timer is already running")
	ErrTimerNotRunning  = errors.New("no running timer")
	ErrVaultPinNotSet   = errors.New("vault pin not set")
	ErrVaultPinMismatch = errors.New("vault pin incorrect")
)

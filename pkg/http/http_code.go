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

package http

import "github.com/gofiber/fiber/v2"

// statusByCode maps business codes to the HTTP status written on the wire.
var statusByCode = map[int]int{}

var (
	Failed                        = failed(fiber.StatusInternalServerError, 500, "Request failed")
	RequestParameterParsingFailed = failed(fiber.StatusBadRequest, 5001, "Request parameter parsing failed")
	ValidationFailed              = failed(fiber.StatusBadRequest, 5002, "Request validation failed")
	TeamIdIsEmpty                 = failed(fiber.StatusBadRequest, 5003, "Team id is empty")
	ProjectIdIsEmpty              = failed(fiber.StatusBadRequest, 5004, "Project id is empty")

	// Unauthorized 401
	Unauthorized         = failed(fiber.StatusUnauthorized, 4401, "Unauthorized")
	AuthenticationFailed = failed(fiber.StatusUnauthorized, 4402, "Authentication failed")
	AuthorizationEmpty   = failed(fiber.StatusUnauthorized, 4404, "Authorization is empty")
	InvalidToken         = failed(fiber.StatusUnauthorized, 4405, "Invalid token")
	TokenBeEmpty         = failed(fiber.StatusUnauthorized, 4406, "Token cannot be empty")
	TokenExpired         = failed(fiber.StatusUnauthorized, 4407, "Token is expired")

	// BadRequest 400
	BadRequest = failed(fiber.StatusBadRequest, 4000, "Bad request")
	NotFound   = failed(fiber.StatusNotFound, 4004, "Not found")
	Conflict   = failed(fiber.StatusConflict, 4009, "Conflict")

	// Forbidden 403
	Forbidden        = failed(fiber.StatusForbidden, 4030, "Forbidden")
	PermissionDenied = failed(fiber.StatusForbidden, 4031, "Permission denied")

	InternalError = failed(fiber.StatusInternalServerError, 5000, "Internal error, please contact the administrator")

	UserNotExist          = failed(fiber.StatusNotFound, 4041, "User does not exist")
	UserAlreadyExist      = failed(fiber.StatusConflict, 4042, "User already exists")
	UserIncorrectPassword = failed(fiber.StatusUnauthorized, 4043, "User incorrect password")

	WorkspaceNotSelected = failed(fiber.StatusBadRequest, 4101, "No active workspace")
	InviteInvalid        = failed(fiber.StatusBadRequest, 4102, "Invite is invalid")
	InviteExpired        = failed(fiber.StatusBadRequest, 4103, "Invite is expired")
	InviteEmailMismatch  = failed(fiber.StatusBadRequest, 4104, "Invite was issued for another email")
	InviteAlreadyPending = failed(fiber.StatusConflict, 4105, "A pending invite already exists for this email")

	TimerAlreadyRunning = failed(fiber.StatusConflict, 4201, "A timer is already running")
	TimerNotRunning     = failed(fiber.StatusBadRequest, 4202, "No running timer")

	VaultPinRequired  = failed(fiber.StatusForbidden, 4301, "Vault PIN is required")
	VaultPinIncorrect = failed(fiber.StatusForbidden, 4302, "Vault PIN is incorrect")
	VaultPinNotSet    = failed(fiber.StatusBadRequest, 4303, "Vault PIN has not been set")
)

var (
	Success = success(200, "Request Success")
)

// failed 构造函数
func failed(status, code int, msg string) *Response {
	statusByCode[code] = status
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

// success 构造函数
func success(code int, msg string) *Response {
	statusByCode[code] = fiber.StatusOK
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

// StatusOf returns the HTTP status associated with a business code.
// Unknown codes fall back to 500.
func StatusOf(code int) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

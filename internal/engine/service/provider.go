package service

import "github.com/google/wire"

// ProviderSet 提供 service 层依赖
var ProviderSet = wire.NewSet(
	NewTenantService,
	NewUserService,
	NewTeamService,
	NewProjectService,
	NewTaskService,
	NewTimesheetService,
	NewCredentialService,
	NewInviteService,
	NewMessageService,
	NewMediaService,
)
